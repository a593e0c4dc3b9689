package usecase

import (
	"fmt"
	"strings"

	"github.com/finbridge-app/advisory-service/internal/domain"
	"github.com/finbridge-app/advisory-service/internal/pkg/money"
)

const (
	fallbackTopCategory = "daily expenses"
	fallbackCultureName = "your community"
)

type actionParams struct {
	topCategory    string
	cultureName    string
	cultureExample string
}

type actionTemplate struct {
	id       string
	intent   domain.Intent
	label    func(actionParams) string
	followUp func(actionParams) string
}

var actionLibrary = []actionTemplate{
	{
		id:     "optimize_spending",
		intent: domain.IntentSave,
		label:  func(p actionParams) string { return fmt.Sprintf("Reduce %s costs", p.topCategory) },
		followUp: func(p actionParams) string {
			return fmt.Sprintf("Provide a step-by-step plan to help me lower my %s spending while respecting %s customs and preferences.", p.topCategory, p.cultureName)
		},
	},
	{
		id:     "automate_savings",
		intent: domain.IntentPlan,
		label:  func(actionParams) string { return "Automate weekly savings contributions" },
		followUp: func(actionParams) string {
			return "Show me how to set up an automatic weekly transfer into savings, including how much I should move each week to hit a 3-month cushion."
		},
	},
	{
		id:     "plan_cultural_events",
		intent: domain.IntentPlan,
		label: func(p actionParams) string {
			if p.cultureExample != "" {
				return "Plan for " + p.cultureExample
			}
			return "Plan for upcoming cultural or family events"
		},
		followUp: func(p actionParams) string {
			example := p.cultureExample
			if example == "" {
				example = "important celebrations"
			}
			return fmt.Sprintf("Help me budget for upcoming cultural or family events, like %s, with a monthly savings schedule.", example)
		},
	},
	{
		id:     "boost_income",
		intent: domain.IntentLearn,
		label:  func(actionParams) string { return "Explore additional income opportunities" },
		followUp: func(p actionParams) string {
			return fmt.Sprintf("Suggest practical side-income ideas suitable for someone from a %s background, including time commitment and expected earnings.", p.cultureName)
		},
	},
}

// ComposeBaseline builds the deterministic narrative and action set used
// whenever no generative insight is available.
func ComposeBaseline(m domain.Metrics, culture domain.CultureProfile, cultureName, currency, locale string) (string, []domain.Action) {
	return buildSummary(m, culture, currency, locale), buildActions(m, culture, cultureName)
}

func buildSummary(m domain.Metrics, culture domain.CultureProfile, currency, locale string) string {
	parts := []string{
		fmt.Sprintf("Income %s, expenses %s, savings %s.",
			money.Format(m.KPIs.Income, currency, locale),
			money.Format(m.KPIs.Expenses, currency, locale),
			money.Format(m.KPIs.Savings, currency, locale)),
	}
	if m.LargestCategory != nil {
		parts = append(parts, *m.LargestCategory+" is currently your largest expense.")
	} else {
		parts = append(parts, "Track your top expense categories to stay on target.")
	}
	if culture.Example != "" {
		parts = append(parts, "Consider traditions like "+culture.Example+".")
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func buildActions(m domain.Metrics, culture domain.CultureProfile, cultureName string) []domain.Action {
	p := actionParams{
		topCategory:    fallbackTopCategory,
		cultureName:    strings.TrimSpace(cultureName),
		cultureExample: culture.Example,
	}
	if m.LargestCategory != nil {
		p.topCategory = *m.LargestCategory
	}
	if p.cultureName == "" {
		p.cultureName = fallbackCultureName
	}

	actions := make([]domain.Action, 0, len(actionLibrary))
	for _, tpl := range actionLibrary {
		actions = append(actions, domain.Action{
			ID:       tpl.id,
			Intent:   tpl.intent,
			Label:    tpl.label(p),
			FollowUp: tpl.followUp(p),
		})
	}
	return actions
}
