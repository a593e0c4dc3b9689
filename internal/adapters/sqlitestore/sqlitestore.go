// SQLite-backed ledger and user preference store
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/finbridge-app/advisory-service/internal/domain"
)

// Store implements ports.TransactionStorePort and ports.UserStorePort.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path. ":memory:" works for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection: sqlite serializes writers, and :memory: is per connection
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ledgers (
		user_id TEXT PRIMARY KEY,
		currency TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS transactions (
		user_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		date TEXT NOT NULL DEFAULT '',
		amount REAL NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		note TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (user_id, position),
		FOREIGN KEY (user_id) REFERENCES ledgers(user_id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		language TEXT NOT NULL DEFAULT '',
		culture TEXT NOT NULL DEFAULT '',
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Seed inserts ledgers for users that are not stored yet and returns how many
// were added. Existing ledgers are left alone.
func (s *Store) Seed(ctx context.Context, ledgers map[string]domain.Ledger) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin seed: %w", err)
	}
	defer tx.Rollback()

	added := 0
	for userID, l := range ledgers {
		res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO ledgers (user_id, currency) VALUES (?, ?)`, userID, l.Currency)
		if err != nil {
			return 0, fmt.Errorf("failed to seed ledger %q: %w", userID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			continue
		}
		for i, t := range l.Transactions {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO transactions (user_id, position, date, amount, category, note)
				VALUES (?, ?, ?, ?, ?, ?)
			`, userID, i, t.Date, t.Amount, t.Category, t.Note)
			if err != nil {
				return 0, fmt.Errorf("failed to seed transaction %d for %q: %w", i, userID, err)
			}
		}
		added++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	return added, nil
}

func (s *Store) Ledger(ctx context.Context, userID string) (*domain.Ledger, error) {
	var l domain.Ledger
	err := s.db.QueryRowContext(ctx, `SELECT currency FROM ledgers WHERE user_id = ?`, userID).Scan(&l.Currency)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, amount, category, note
		FROM transactions WHERE user_id = ?
		ORDER BY position ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	defer rows.Close()

	l.Transactions = []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.Date, &t.Amount, &t.Category, &t.Note); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		l.Transactions = append(l.Transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return &l, nil
}

func (s *Store) User(ctx context.Context, userID string) (*domain.UserPreferences, error) {
	p := domain.UserPreferences{UserID: userID}
	err := s.db.QueryRowContext(ctx, `SELECT language, culture FROM users WHERE user_id = ?`, userID).Scan(&p.Language, &p.Culture)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &p, nil
}

// SaveUser upserts preferences; empty fields keep the stored value.
func (s *Store) SaveUser(ctx context.Context, prefs domain.UserPreferences) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (user_id, language, culture, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			language = CASE WHEN excluded.language = '' THEN users.language ELSE excluded.language END,
			culture = CASE WHEN excluded.culture = '' THEN users.culture ELSE excluded.culture END,
			updated_at = CURRENT_TIMESTAMP
	`, prefs.UserID, prefs.Language, prefs.Culture)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}
