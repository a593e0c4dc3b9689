package usecase

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/finbridge-app/advisory-service/internal/domain"
	"github.com/finbridge-app/advisory-service/internal/pkg/money"
)

const (
	maxChartCategories = 6
	maxTableRows       = 12
	defaultCategory    = "Other"
	chartTypeBar       = "bar"
)

var tableColumns = []string{"Date", "Category", "Note", "Amount"}

// DeriveMetrics aggregates a transaction list. Savings is computed from the
// already-rounded income and expenses, so savings == income - expenses holds
// exactly at cent precision.
func DeriveMetrics(txs []domain.Transaction, currency, locale string) domain.Metrics {
	if currency == "" {
		currency = money.DefaultCurrency
	}

	income, expenses := decimal.Zero, decimal.Zero
	totals := map[string]decimal.Decimal{}
	var order []string

	for _, t := range txs {
		amt := decimal.NewFromFloat(t.Amount)
		switch {
		case t.Amount > 0:
			income = income.Add(amt)
		case t.Amount < 0:
			expenses = expenses.Add(amt.Abs())
			cat := t.Category
			if cat == "" {
				cat = defaultCategory
			}
			if _, seen := totals[cat]; !seen {
				order = append(order, cat)
			}
			totals[cat] = totals[cat].Add(amt.Abs())
		}
	}

	income = income.Round(2)
	expenses = expenses.Round(2)

	// stable: equal totals keep first-seen order
	slices.SortStableFunc(order, func(a, b string) int {
		return totals[b].Cmp(totals[a])
	})
	if len(order) > maxChartCategories {
		order = order[:maxChartCategories]
	}

	labels := make([]string, 0, len(order))
	values := make([]float64, 0, len(order))
	for _, cat := range order {
		labels = append(labels, cat)
		values = append(values, totals[cat].Round(2).InexactFloat64())
	}

	rows := make([][]string, 0, min(len(txs), maxTableRows))
	for _, t := range txs {
		if len(rows) == maxTableRows {
			break
		}
		rows = append(rows, []string{t.Date, t.Category, t.Note, money.Format(t.Amount, currency, locale)})
	}

	m := domain.Metrics{
		KPIs: domain.KPIs{
			Income:   income.InexactFloat64(),
			Expenses: expenses.InexactFloat64(),
			Savings:  income.Sub(expenses).InexactFloat64(),
			Currency: currency,
		},
		Chart: domain.Chart{Type: chartTypeBar, Labels: labels, Values: values},
		Pie: domain.Pie{
			Labels: slices.Clone(labels),
			Values: slices.Clone(values),
		},
		Table: domain.Table{Columns: slices.Clone(tableColumns), Rows: rows},
	}
	if len(labels) > 0 {
		largest := labels[0]
		m.LargestCategory = &largest
	}
	return m
}
