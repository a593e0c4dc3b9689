package domain

type KPIs struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
	Currency string  `json:"currency"`
}

type Chart struct {
	Type   string    `json:"type"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type Pie struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Metrics is the aggregate view of a scenario. LargestCategory is nil when
// there are no expenses.
type Metrics struct {
	KPIs            KPIs    `json:"kpis"`
	Chart           Chart   `json:"chart"`
	Pie             Pie     `json:"pie"`
	Table           Table   `json:"table"`
	LargestCategory *string `json:"largestCategory"`
}

type Intent string

const (
	IntentSave  Intent = "save"
	IntentPlan  Intent = "plan"
	IntentLearn Intent = "learn"
)

// ParseIntent maps anything outside the known set to IntentPlan.
func ParseIntent(s string) Intent {
	switch Intent(s) {
	case IntentSave, IntentPlan, IntentLearn:
		return Intent(s)
	}
	return IntentPlan
}

// Action is a suggested follow-up. FollowUp is a prompt meant to be sent back
// as a new message, always in English.
type Action struct {
	ID       string `json:"id,omitempty"`
	Intent   Intent `json:"intent"`
	Label    string `json:"label"`
	FollowUp string `json:"followUp"`
}

// AdviceResult is the UI recipe handed to the presentation layer.
type AdviceResult struct {
	Summary string   `json:"summary"`
	KPIs    KPIs     `json:"kpis"`
	Chart   Chart    `json:"chart"`
	Pie     Pie      `json:"pie"`
	Table   Table    `json:"table"`
	Actions []Action `json:"actions"`
}

// Clone deep-copies every slice so a localized copy never aliases the original.
func (r AdviceResult) Clone() AdviceResult {
	out := r
	out.Chart.Labels = append([]string{}, r.Chart.Labels...)
	out.Chart.Values = append([]float64{}, r.Chart.Values...)
	out.Pie.Labels = append([]string{}, r.Pie.Labels...)
	out.Pie.Values = append([]float64{}, r.Pie.Values...)
	out.Table.Columns = append([]string{}, r.Table.Columns...)
	out.Table.Rows = make([][]string, len(r.Table.Rows))
	for i, row := range r.Table.Rows {
		out.Table.Rows[i] = append([]string{}, row...)
	}
	out.Actions = append([]Action{}, r.Actions...)
	return out
}

// Insight is a generative-model suggestion that already passed validation.
// Either field may be empty, meaning "keep the baseline".
type Insight struct {
	Summary string
	Actions []Action
}

type AdviceRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
	Culture  string `json:"culture"`
	UserID   string `json:"userId,omitempty"`
}

type AdviceResponse struct {
	Reply string       `json:"reply"`
	UI    AdviceResult `json:"ui"`
}
