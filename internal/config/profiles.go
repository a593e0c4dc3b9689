package config

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/finbridge-app/advisory-service/internal/domain"
)

//go:embed cultures.yaml
var culturesYAML []byte

//go:embed languages.yaml
var languagesYAML []byte

// Tables holds the static culture and language tables. It is read-only
// after construction and safe to share between requests.
type Tables struct {
	cultures        map[string]domain.CultureProfile
	cultureKeys     map[string]string // lower-cased name -> canonical name
	languages       map[string]domain.LanguageProfile
	defaultLanguage string
}

type languageFile struct {
	Default   string                   `yaml:"default"`
	Languages []domain.LanguageProfile `yaml:"languages"`
}

// DefaultTables parses the embedded tables.
func DefaultTables() (*Tables, error) {
	return ParseTables(culturesYAML, languagesYAML)
}

func ParseTables(culturesDoc, languagesDoc []byte) (*Tables, error) {
	var cultures map[string]domain.CultureProfile
	if err := yaml.Unmarshal(culturesDoc, &cultures); err != nil {
		return nil, fmt.Errorf("parse cultures: %w", err)
	}
	var langs languageFile
	if err := yaml.Unmarshal(languagesDoc, &langs); err != nil {
		return nil, fmt.Errorf("parse languages: %w", err)
	}

	t := &Tables{
		cultures:        cultures,
		cultureKeys:     make(map[string]string, len(cultures)),
		languages:       make(map[string]domain.LanguageProfile, len(langs.Languages)),
		defaultLanguage: langs.Default,
	}
	if t.cultures == nil {
		t.cultures = map[string]domain.CultureProfile{}
	}
	for name := range t.cultures {
		t.cultureKeys[strings.ToLower(name)] = name
	}
	for _, l := range langs.Languages {
		if l.Code == "" {
			return nil, fmt.Errorf("language entry without code")
		}
		if l.TranslatorCode == "" {
			l.TranslatorCode = l.Code
		}
		t.languages[l.Code] = l
	}
	if _, ok := t.languages[t.defaultLanguage]; !ok {
		return nil, fmt.Errorf("default language %q not in table", t.defaultLanguage)
	}
	return t, nil
}

// Culture resolves a culture name case-insensitively. An unknown or empty
// name returns the name unchanged and an empty profile.
func (t *Tables) Culture(name string) (string, domain.CultureProfile) {
	trimmed := strings.TrimSpace(name)
	if key, ok := t.cultureKeys[strings.ToLower(trimmed)]; ok {
		return key, t.cultures[key]
	}
	return trimmed, domain.CultureProfile{}
}

// Language returns the profile for code, or the default language profile.
func (t *Tables) Language(code string) domain.LanguageProfile {
	if l, ok := t.languages[strings.ToLower(strings.TrimSpace(code))]; ok {
		return l
	}
	return t.languages[t.defaultLanguage]
}

// HasLanguage reports whether code is a configured UI language.
func (t *Tables) HasLanguage(code string) bool {
	_, ok := t.languages[strings.ToLower(strings.TrimSpace(code))]
	return ok
}
