package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/finbridge-app/advisory-service/internal/adapters/parser"
	"github.com/finbridge-app/advisory-service/internal/config"
	"github.com/finbridge-app/advisory-service/internal/domain"
	"github.com/finbridge-app/advisory-service/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultLedgers() map[string]domain.Ledger {
	return map[string]domain.Ledger{
		"default": {Currency: "USD", Transactions: []domain.Transaction{
			{Amount: 3200, Category: "Income", Note: "Salary"},
			{Amount: -1250, Category: "Housing", Note: "Rent"},
			{Amount: -240, Category: "Groceries", Note: "Weekly shop"},
		}},
		"maria": {Currency: "EUR", Transactions: []domain.Transaction{
			{Amount: 2100, Category: "Income", Note: "Salary"},
			{Amount: -900, Category: "Housing", Note: "Rent"},
		}},
	}
}

func newService(t *testing.T, store *fakeStore, users *fakeUsers, gen *fakeGenerator, tr *upperTranslator) *usecase.AIService {
	t.Helper()
	tables, err := config.DefaultTables()
	require.NoError(t, err)

	var merger *usecase.InsightMerger
	if gen != nil {
		merger = usecase.NewInsightMerger(gen, parser.NewInsightParser(), time.Second, 2, zerolog.Nop())
	}
	opts := []usecase.Option{
		usecase.WithClock(func() time.Time { return testNow }),
		usecase.WithRandom(func(string) usecase.RandomSource { return fixedRandom(0.5) }),
	}
	var svc *usecase.AIService
	switch {
	case tr != nil && users != nil:
		svc = usecase.NewAIService(store, users, merger, tr, tables, opts...)
	case tr != nil:
		svc = usecase.NewAIService(store, nil, merger, tr, tables, opts...)
	case users != nil:
		svc = usecase.NewAIService(store, users, merger, nil, tables, opts...)
	default:
		svc = usecase.NewAIService(store, nil, merger, nil, tables, opts...)
	}
	return svc
}

func TestAdvise_BaselineOnly(t *testing.T) {
	store := &fakeStore{ledgers: defaultLedgers()}
	svc := newService(t, store, nil, nil, nil)

	resp, err := svc.Advise(context.Background(), domain.AdviceRequest{
		Message: "saving for a wedding", Language: "en", Culture: "indian",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"default"}, store.calls)
	assert.Equal(t, resp.UI.Summary, resp.Reply)
	assert.Contains(t, resp.Reply, "Housing is currently your largest expense.")
	assert.Contains(t, resp.Reply, "Diwali")
	require.Len(t, resp.UI.Actions, 4)
	assert.Equal(t, "USD", resp.UI.KPIs.Currency)
	assert.Len(t, byCategoryRows(resp.UI.Table.Rows, "Celebrations"), 1)
	assert.Len(t, resp.UI.Table.Rows, 5)
}

func byCategoryRows(rows [][]string, cat string) [][]string {
	var out [][]string
	for _, r := range rows {
		if r[1] == cat {
			out = append(out, r)
		}
	}
	return out
}

func TestAdvise_UnknownUserFallsBackToDefault(t *testing.T) {
	store := &fakeStore{ledgers: defaultLedgers()}
	svc := newService(t, store, nil, nil, nil)

	_, err := svc.Advise(context.Background(), domain.AdviceRequest{UserID: "ghost", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost", "default"}, store.calls)
}

func TestAdvise_NoDataAtAllStillAdvises(t *testing.T) {
	svc := newService(t, &fakeStore{}, nil, nil, nil)

	resp, err := svc.Advise(context.Background(), domain.AdviceRequest{Message: "bonus", Culture: "Atlantis"})
	require.NoError(t, err)
	assert.Len(t, resp.UI.Table.Rows, 2)
	assert.Len(t, resp.UI.Actions, 4)
	assert.Contains(t, resp.UI.Actions[0].FollowUp, "Atlantis")
}

func TestAdvise_StoreFailureIsRequestError(t *testing.T) {
	svc := newService(t, &fakeStore{err: errBoom}, nil, nil, nil)

	_, err := svc.Advise(context.Background(), domain.AdviceRequest{Message: "hi"})
	assert.ErrorIs(t, err, usecase.ErrStoreUnavailable)
}

func TestAdvise_GeneratorFailureStillSucceeds(t *testing.T) {
	baseline := newService(t, &fakeStore{ledgers: defaultLedgers()}, nil, nil, nil)
	failing := newService(t, &fakeStore{ledgers: defaultLedgers()}, nil, &fakeGenerator{err: errBoom}, nil)

	req := domain.AdviceRequest{Message: "travel plans", Language: "en", Culture: "Japanese"}
	want, err := baseline.Advise(context.Background(), req)
	require.NoError(t, err)
	got, err := failing.Advise(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAdvise_LocalizesForNonEnglish(t *testing.T) {
	tr := &upperTranslator{}
	gen := &fakeGenerator{text: `{"summary":"Ahorra más.","actions":[{"label":"Ahorro","followUp":"Tell me about saving","intent":"save"}]}`}
	svc := newService(t, &fakeStore{ledgers: defaultLedgers()}, nil, gen, tr)

	resp, err := svc.Advise(context.Background(), domain.AdviceRequest{
		Message: "quiero ahorrar", Language: "es", Culture: "Spanish", UserID: "maria",
	})
	require.NoError(t, err)

	require.Len(t, tr.batches, 2)
	assert.Equal(t, []string{"quiero ahorrar"}, tr.batches[0])
	assert.Equal(t, "en", tr.targets[0])
	assert.Equal(t, "es", tr.targets[1])
	assert.Contains(t, gen.prompts[0], "User message: QUIERO AHORRAR")

	assert.Equal(t, "AHORRA MÁS.", resp.Reply)
	assert.Equal(t, resp.Reply, resp.UI.Summary)
	assert.Equal(t, "AHORRO", resp.UI.Actions[0].Label)
	assert.Equal(t, "Tell me about saving", resp.UI.Actions[0].FollowUp)
	assert.Equal(t, []string{"DATE", "CATEGORY", "NOTE", "AMOUNT"}, resp.UI.Table.Columns)
	assert.Equal(t, resp.UI.Chart.Labels, resp.UI.Pie.Labels)
	assert.Equal(t, "EUR", resp.UI.KPIs.Currency)
	for _, label := range resp.UI.Chart.Labels {
		assert.Equal(t, strings.ToUpper(label), label)
	}
}

func TestAdvise_PreferencesFillMissingFields(t *testing.T) {
	users := &fakeUsers{prefs: map[string]domain.UserPreferences{
		"maria": {UserID: "maria", Language: "en", Culture: "Haitian"},
	}}
	svc := newService(t, &fakeStore{ledgers: defaultLedgers()}, users, nil, nil)

	resp, err := svc.Advise(context.Background(), domain.AdviceRequest{UserID: "maria", Message: "hello"})
	require.NoError(t, err)
	assert.Contains(t, resp.Reply, "sending money to family overseas")
}

func TestTransactions(t *testing.T) {
	svc := newService(t, &fakeStore{ledgers: defaultLedgers()}, nil, nil, nil)

	l, err := svc.Transactions(context.Background(), "maria")
	require.NoError(t, err)
	assert.Equal(t, "EUR", l.Currency)

	l, err = svc.Transactions(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, "USD", l.Currency)

	empty := newService(t, &fakeStore{}, nil, nil, nil)
	_, err = empty.Transactions(context.Background(), "nobody")
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestTranslateAndUsers(t *testing.T) {
	users := &fakeUsers{}
	svc := newService(t, &fakeStore{}, users, nil, nil)
	ctx := context.Background()

	_, err := svc.Translate(ctx, []string{"hi"}, " ")
	assert.ErrorIs(t, err, usecase.ErrInvalidArgument)

	out, err := svc.Translate(ctx, []string{"hi"}, "es")
	require.NoError(t, err)
	assert.Equal(t, []string{"hi"}, out)

	_, err = svc.User(ctx, "u1")
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	require.NoError(t, svc.SaveUser(ctx, domain.UserPreferences{UserID: "u1", Language: "es", Culture: "Spanish"}))
	p, err := svc.User(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Spanish", p.Culture)

	assert.ErrorIs(t, svc.SaveUser(ctx, domain.UserPreferences{}), usecase.ErrInvalidArgument)
}

func TestCheck(t *testing.T) {
	svc := newService(t, &fakeStore{}, nil, &fakeGenerator{}, nil)
	ok, msg := svc.Check(context.Background(), "")
	assert.True(t, ok)
	assert.Contains(t, msg, "insights=generative")
	assert.Contains(t, msg, "translation=false")
}
