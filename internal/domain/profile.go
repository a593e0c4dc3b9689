package domain

// CultureProfile flavors narrative text. The zero value is a valid, empty profile.
type CultureProfile struct {
	SavingTerm         string `json:"saving_term,omitempty" yaml:"saving_term"`
	Example            string `json:"example,omitempty" yaml:"example"`
	Values             string `json:"values,omitempty" yaml:"values"`
	BudgetingStyle     string `json:"budgeting_style,omitempty" yaml:"budgeting_style"`
	InvestmentAttitude string `json:"investment_attitude,omitempty" yaml:"investment_attitude"`
}

func (c CultureProfile) IsEmpty() bool { return c == CultureProfile{} }

// LanguageProfile describes how to present results in one UI language.
// PromptName is the language name given to the generative model.
type LanguageProfile struct {
	Code           string `json:"code" yaml:"code"`
	Label          string `json:"label" yaml:"label"`
	Locale         string `json:"locale" yaml:"locale"`
	TranslatorCode string `json:"translatorCode" yaml:"translator_code"`
	PromptName     string `json:"promptName" yaml:"prompt_name"`
}

// NeedsTranslation is false for English, which is the working language.
func (l LanguageProfile) NeedsTranslation() bool {
	return l.TranslatorCode != "" && l.TranslatorCode != "en"
}

type UserPreferences struct {
	UserID   string `json:"userId,omitempty"`
	Language string `json:"language"`
	Culture  string `json:"culture"`
}
