package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/finbridge-app/advisory-service/internal/domain"
)

// fixedRandom returns the same value forever.
type fixedRandom float64

func (f fixedRandom) Float64() float64 { return float64(f) }

// scriptedRandom cycles through values.
type scriptedRandom struct {
	values []float64
	i      int
}

func (s *scriptedRandom) Float64() float64 {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

var testNow = time.Date(2025, time.March, 14, 15, 0, 0, 0, time.UTC)

type fakeStore struct {
	ledgers map[string]domain.Ledger
	err     error
	calls   []string
}

func (f *fakeStore) Ledger(_ context.Context, userID string) (*domain.Ledger, error) {
	f.calls = append(f.calls, userID)
	if f.err != nil {
		return nil, f.err
	}
	l, ok := f.ledgers[userID]
	if !ok {
		return nil, nil
	}
	c := l.Clone()
	return &c, nil
}

type fakeUsers struct {
	mu    sync.Mutex
	prefs map[string]domain.UserPreferences
}

func (f *fakeUsers) User(_ context.Context, id string) (*domain.UserPreferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.prefs[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeUsers) SaveUser(_ context.Context, p domain.UserPreferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.prefs == nil {
		f.prefs = map[string]domain.UserPreferences{}
	}
	f.prefs[p.UserID] = p
	return nil
}

type fakeGenerator struct {
	text    string
	err     error
	block   bool
	prompts []string
	mu      sync.Mutex
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()
	if g.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return g.text, g.err
}

func (g *fakeGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

// upperTranslator upper-cases everything and records each batch.
type upperTranslator struct {
	batches [][]string
	targets []string
}

func (u *upperTranslator) Translate(_ context.Context, texts []string, target string) []string {
	u.batches = append(u.batches, append([]string{}, texts...))
	u.targets = append(u.targets, target)
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = strings.ToUpper(t)
	}
	return out
}

var errBoom = errors.New("boom")
