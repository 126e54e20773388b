package repository

import (
	"context"
	"errors"

	"github.com/amirasaad/greenpoints/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one
// abstraction, so every repository handed out inside Do shares the same
// DB session.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs the given function in a transaction boundary, providing a UoW
// bound to the transaction session.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// UserRepository returns the repository bound to the current session.
func (u *UoW) UserRepository() (repository.UserRepository, error) {
	session := u.tx
	if session == nil {
		session = u.db
	}
	if session == nil {
		return nil, errors.New("no database session")
	}
	return NewUserRepository(session), nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
