package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/finbridge-app/advisory-service/internal/domain"
)

// Rejection reasons. Parse wraps one of these; match with errors.Is.
var (
	ErrNoJSON       = errors.New("no JSON object in model output")
	ErrMalformed    = errors.New("malformed JSON in model output")
	ErrNotObject    = errors.New("model output is not a JSON object")
	ErrEmptyInsight = errors.New("model output has no usable summary or actions")
)

const (
	maxActions     = 4
	maxLabelRunes  = 120
	aiActionPrefix = "ai-"
)

// InsightParser is the one place that decides what counts as a usable
// generative insight.
type InsightParser struct {
	newID func() string
}

func NewInsightParser() *InsightParser {
	return &InsightParser{newID: uuid.NewString}
}

// Parse extracts the text between the first '{' and the last '}' and
// validates it field by field. Invalid actions are dropped, unknown intents
// become "plan", and at most four actions are kept.
func (p *InsightParser) Parse(raw string) (domain.Insight, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return domain.Insight{}, ErrNoJSON
	}
	body := raw[start : end+1]
	if !gjson.Valid(body) {
		return domain.Insight{}, fmt.Errorf("%w: %s", ErrMalformed, truncate(normalize(body), 80))
	}
	doc := gjson.Parse(body)
	if !doc.IsObject() {
		return domain.Insight{}, ErrNotObject
	}

	var out domain.Insight
	if s := doc.Get("summary"); s.Type == gjson.String {
		out.Summary = strings.TrimSpace(s.Str)
	}
	if list := doc.Get("actions"); list.IsArray() {
		out.Actions = p.actions(list.Array())
	}
	if out.Summary == "" && len(out.Actions) == 0 {
		return domain.Insight{}, ErrEmptyInsight
	}
	return out, nil
}

func (p *InsightParser) actions(items []gjson.Result) []domain.Action {
	var out []domain.Action
	for _, item := range items {
		if len(out) == maxActions {
			break
		}
		if !item.IsObject() {
			continue
		}
		label, ok := nonEmptyString(item.Get("label"))
		if !ok {
			continue
		}
		followUp, ok := nonEmptyString(item.Get("followUp"))
		if !ok {
			continue
		}
		intent := ""
		if v := item.Get("intent"); v.Type == gjson.String {
			intent = v.Str
		}
		out = append(out, domain.Action{
			ID:       aiActionPrefix + p.newID(),
			Intent:   domain.ParseIntent(intent),
			Label:    truncate(label, maxLabelRunes),
			FollowUp: followUp,
		})
	}
	return out
}

func nonEmptyString(r gjson.Result) (string, bool) {
	if r.Type != gjson.String {
		return "", false
	}
	s := strings.TrimSpace(r.Str)
	return s, s != ""
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
