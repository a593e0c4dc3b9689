package mockstore

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/finbridge-app/advisory-service/internal/domain"
)

//go:embed mock_transactions.json
var mockJSON []byte

// Store serves the embedded mock ledgers. The dataset is parsed once, on
// first use, and is read-only afterwards.
type Store struct {
	raw []byte

	once    sync.Once
	ledgers map[string]domain.Ledger
	err     error
}

func New() *Store {
	return &Store{raw: mockJSON}
}

// NewFromJSON uses a caller-supplied dataset in the same shape as the
// embedded one: {"<userId>": {"currency": "...", "transactions": [...]}}.
func NewFromJSON(raw []byte) *Store {
	return &Store{raw: raw}
}

func (s *Store) load() (map[string]domain.Ledger, error) {
	s.once.Do(func() {
		var data map[string]domain.Ledger
		if err := json.Unmarshal(s.raw, &data); err != nil {
			s.err = fmt.Errorf("parse mock transactions: %w", err)
			return
		}
		s.ledgers = data
	})
	return s.ledgers, s.err
}

func (s *Store) Ledger(_ context.Context, userID string) (*domain.Ledger, error) {
	data, err := s.load()
	if err != nil {
		return nil, err
	}
	l, ok := data[userID]
	if !ok {
		return nil, nil
	}
	c := l.Clone()
	return &c, nil
}

// All returns copies of every ledger, keyed by user id. Used to seed other stores.
func (s *Store) All() (map[string]domain.Ledger, error) {
	data, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.Ledger, len(data))
	for id, l := range data {
		out[id] = l.Clone()
	}
	return out, nil
}

// UserIDs lists the users in the dataset, sorted.
func (s *Store) UserIDs() ([]string, error) {
	data, err := s.load()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(data))
	for id := range data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// UserStore keeps preferences in memory for the life of the process.
type UserStore struct {
	mu    sync.RWMutex
	prefs map[string]domain.UserPreferences
}

func NewUserStore() *UserStore {
	return &UserStore{prefs: map[string]domain.UserPreferences{}}
}

func (u *UserStore) User(_ context.Context, userID string) (*domain.UserPreferences, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	p, ok := u.prefs[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// SaveUser merges: empty fields keep the stored value.
func (u *UserStore) SaveUser(_ context.Context, prefs domain.UserPreferences) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	cur := u.prefs[prefs.UserID]
	cur.UserID = prefs.UserID
	if prefs.Language != "" {
		cur.Language = prefs.Language
	}
	if prefs.Culture != "" {
		cur.Culture = prefs.Culture
	}
	u.prefs[prefs.UserID] = cur
	return nil
}
