package store

import (
	"context"

	"github.com/stepupp/account-server-go/internal/model"
)

// Store holds the two account collections: pending registrations and
// confirmed users. Each collection is read and rewritten as a whole
// snapshot. The store performs no validation and no locking; invariants
// and write serialization are the calling service's responsibility.
type Store interface {
	LoadPending(ctx context.Context) ([]model.PendingUser, error)
	SavePending(ctx context.Context, users []model.PendingUser) error
	LoadUsers(ctx context.Context) ([]model.User, error)
	SaveUsers(ctx context.Context, users []model.User) error
}
