// Package repository defines the storage contracts the ledger engine
// consumes. The engine never assumes which backend satisfies them: a
// document database and a flat JSON file both do.
package repository

import (
	"context"
	"errors"

	"github.com/amirasaad/greenpoints/pkg/domain/user"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when the requested account does not exist.
	ErrNotFound = errors.New("account not found")

	// ErrConflict is returned by Save when the stored version moved since
	// the snapshot was loaded. The caller should reload and retry the
	// whole operation.
	ErrConflict = errors.New("persist conflict")
)

// UserRepository loads and persists user aggregates.
//
// Save is a compare-and-swap on the aggregate's Version: it persists the
// snapshot and all derived fields atomically, bumps the version, and
// returns ErrConflict if a concurrent writer got there first. A failed
// Save leaves the stored record untouched.
type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	Create(ctx context.Context, u *user.User) error
	Save(ctx context.Context, u *user.User) error
}

// UnitOfWork brackets a load-apply-persist cycle so the repository it
// hands out shares one transaction/session.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an
	// error the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// UserRepository returns the repository bound to the current
	// transaction/session.
	UserRepository() (UserRepository, error)
}
