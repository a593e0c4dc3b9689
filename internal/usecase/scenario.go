package usecase

import (
	"slices"
	"strings"
	"time"

	"github.com/finbridge-app/advisory-service/internal/domain"
	"github.com/finbridge-app/advisory-service/internal/pkg/money"
)

// RandomSource is the only thing the scenario code needs from a generator.
type RandomSource interface {
	Float64() float64
}

const (
	maxScenarioTransactions = 12
	dateLayout              = "2006-01-02"
)

// scenarioRule injects one transaction when any keyword occurs in the message.
// Rules are evaluated independently, so several can fire for one message.
type scenarioRule struct {
	keywords []string
	category string
	min, max float64
	note     string
}

func (r scenarioRule) matches(lowerMessage string) bool {
	for _, k := range r.keywords {
		if strings.Contains(lowerMessage, k) {
			return true
		}
	}
	return false
}

var expenseRules = []scenarioRule{
	{keywords: []string{"celebration", "party", "festival", "wedding"}, category: "Celebrations", min: -650, max: -120, note: "Event planning expense"},
	{keywords: []string{"travel", "flight", "vacation", "trip"}, category: "Travel", min: -900, max: -200, note: "Travel booking and preparation"},
	{keywords: []string{"medical", "health", "doctor", "hospital"}, category: "Healthcare", min: -450, max: -80, note: "Healthcare visit and prescriptions"},
	{keywords: []string{"education", "college", "school", "tuition"}, category: "Education", min: -700, max: -150, note: "Tuition and learning materials"},
	{keywords: []string{"business", "startup", "side hustle"}, category: "Business", min: -800, max: -200, note: "Small business investment"},
	{keywords: []string{"remittance", "family overseas", "support family"}, category: "Remittance", min: -400, max: -100, note: "Family support transfer"},
}

var incomeRules = []scenarioRule{
	{keywords: []string{"bonus", "raise", "increase"}, category: incomeCategory, min: 300, max: 900, note: "Workplace performance bonus"},
	{keywords: []string{"freelance", "contract", "gig"}, category: incomeCategory, min: 150, max: 600, note: "Freelance project payment"},
	{keywords: []string{"grant", "scholarship"}, category: incomeCategory, min: 250, max: 500, note: "Scholarship or grant received"},
}

var discretionaryRule = scenarioRule{category: "Everyday Life", min: -120, max: -15, note: "Discretionary purchase"}

const incomeCategory = "Income"

// GenerateScenario jitters the base history, injects keyword-driven events and
// one discretionary purchase, then keeps the 12 most recent entries.
func GenerateScenario(base []domain.Transaction, currency, message string, rnd RandomSource, now time.Time) domain.Scenario {
	if currency == "" {
		currency = money.DefaultCurrency
	}
	txs := make([]domain.Transaction, 0, len(base)+len(expenseRules)+len(incomeRules)+1)

	for i, t := range base {
		factor := 0.75 + rnd.Float64()*0.5
		amount := money.Round2(t.Amount * factor)
		if amount == 0 {
			amount = t.Amount
		}
		if t.Date == "" {
			t.Date = now.AddDate(0, 0, -i).Format(dateLayout)
		}
		t.Amount = amount
		txs = append(txs, t)
	}

	lower := strings.ToLower(message)
	for i, rule := range expenseRules {
		if !rule.matches(lower) {
			continue
		}
		txs = append(txs, domain.Transaction{
			Date:     now.Add(-time.Duration(i+1) * 12 * time.Hour).Format(dateLayout),
			Amount:   between(rule.min, rule.max, rnd),
			Category: rule.category,
			Note:     rule.note,
		})
	}
	for i, rule := range incomeRules {
		if !rule.matches(lower) {
			continue
		}
		txs = append(txs, domain.Transaction{
			Date:     now.Add(-time.Duration(i+2) * time.Hour).Format(dateLayout),
			Amount:   between(rule.min, rule.max, rnd),
			Category: rule.category,
			Note:     rule.note,
		})
	}

	txs = append(txs, domain.Transaction{
		Date:     now.Format(dateLayout),
		Amount:   between(discretionaryRule.min, discretionaryRule.max, rnd),
		Category: discretionaryRule.category,
		Note:     discretionaryRule.note,
	})

	slices.SortStableFunc(txs, func(a, b domain.Transaction) int {
		return parseDate(b.Date).Compare(parseDate(a.Date))
	})
	if len(txs) > maxScenarioTransactions {
		txs = txs[:maxScenarioTransactions]
	}
	return domain.Scenario{Transactions: txs, Currency: currency}
}

// between draws uniformly from the closed range spanned by a and b, signed
// like the range itself, rounded to cents.
func between(a, b float64, rnd RandomSource) float64 {
	lo, hi := min(a, b), max(a, b)
	return money.Round2(lo + rnd.Float64()*(hi-lo))
}

// parseDate accepts plain dates and RFC 3339 timestamps; anything else sorts last.
func parseDate(s string) time.Time {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
