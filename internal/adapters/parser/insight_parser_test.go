package parser_test

import (
	"strings"
	"testing"

	"github.com/finbridge-app/advisory-service/internal/adapters/parser"
	"github.com/finbridge-app/advisory-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ValidInsightInsideChatter(t *testing.T) {
	raw := "Sure! Here you go:\n```json\n" + `{
		"summary": "  You saved a little this month.  ",
		"actions": [
			{"label": "Trim dining out", "followUp": "How do I cut restaurant spending?", "intent": "save"},
			{"label": "Learn index funds", "followUp": "Explain index funds.", "intent": "learn"}
		]
	}` + "\n```"

	got, err := parser.NewInsightParser().Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "You saved a little this month.", got.Summary)
	require.Len(t, got.Actions, 2)
	assert.Equal(t, domain.IntentSave, got.Actions[0].Intent)
	assert.Equal(t, "Trim dining out", got.Actions[0].Label)
	assert.True(t, strings.HasPrefix(got.Actions[0].ID, "ai-"))
	assert.NotEqual(t, got.Actions[0].ID, got.Actions[1].ID)
}

func TestParse_Rejections(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{"no braces", "I cannot help with that.", parser.ErrNoJSON},
		{"only open brace", "{ nope", parser.ErrNoJSON},
		{"reversed braces", "} backwards {", parser.ErrNoJSON},
		{"broken json", `{"summary": "x",}`, parser.ErrMalformed},
		{"empty object", `{}`, parser.ErrEmptyInsight},
		{"wrong types", `{"summary": 42, "actions": "many"}`, parser.ErrEmptyInsight},
		{"blank summary", `{"summary": "   ", "actions": []}`, parser.ErrEmptyInsight},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parser.NewInsightParser().Parse(tc.raw)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParse_FiltersAndCoercesActions(t *testing.T) {
	raw := `{"actions": [
		{"label": "", "followUp": "empty label", "intent": "save"},
		{"label": "No follow up", "intent": "save"},
		{"label": 7, "followUp": "numeric label"},
		"just a string",
		{"label": "Keep me", "followUp": "Tell me more", "intent": "invest"},
		{"label": "Shouting", "followUp": "Why", "intent": "SAVE"},
		{"label": "Missing intent", "followUp": "Ok"}
	]}`

	got, err := parser.NewInsightParser().Parse(raw)
	require.NoError(t, err)

	assert.Empty(t, got.Summary)
	require.Len(t, got.Actions, 3)
	for _, a := range got.Actions {
		assert.Equal(t, domain.IntentPlan, a.Intent)
		assert.NotEmpty(t, a.Label)
		assert.NotEmpty(t, a.FollowUp)
	}
	assert.Equal(t, "Keep me", got.Actions[0].Label)
}

func TestParse_AllActionsInvalidKeepsSummaryOnly(t *testing.T) {
	got, err := parser.NewInsightParser().Parse(`{"summary": "Fine.", "actions": [{"label": " "}]}`)
	require.NoError(t, err)
	assert.Equal(t, "Fine.", got.Summary)
	assert.Empty(t, got.Actions)
}

func TestParse_CapsActionCount(t *testing.T) {
	var b strings.Builder
	b.WriteString(`{"actions": [`)
	for i := 0; i < 7; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"label": "a", "followUp": "b", "intent": "learn"}`)
	}
	b.WriteString(`]}`)

	got, err := parser.NewInsightParser().Parse(b.String())
	require.NoError(t, err)
	assert.Len(t, got.Actions, 4)
}

func TestParse_TruncatesLongLabelsByRune(t *testing.T) {
	long := strings.Repeat("ü", 130)
	raw := `{"actions": [{"label": "` + long + `", "followUp": "` + long + `", "intent": "save"}]}`

	got, err := parser.NewInsightParser().Parse(raw)
	require.NoError(t, err)
	require.Len(t, got.Actions, 1)
	assert.Equal(t, strings.Repeat("ü", 120), got.Actions[0].Label)
	assert.Equal(t, long, got.Actions[0].FollowUp)
}
