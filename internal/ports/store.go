package ports

import (
	"context"

	"github.com/finbridge-app/advisory-service/internal/domain"
)

type TransactionStorePort interface {
	// Ledger returns nil, nil when the user has no base data.
	Ledger(ctx context.Context, userID string) (*domain.Ledger, error)
}

type UserStorePort interface {
	// User returns nil, nil when no preferences are stored.
	User(ctx context.Context, userID string) (*domain.UserPreferences, error)
	SaveUser(ctx context.Context, prefs domain.UserPreferences) error
}
