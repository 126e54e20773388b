// Package filestore persists user aggregates in a single JSON file. It
// is the zero-setup default backend; the gorm-backed store implements
// the same contract for deployments with a real database.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/amirasaad/greenpoints/pkg/domain/user"
	"github.com/amirasaad/greenpoints/pkg/domain/wallet"
	"github.com/amirasaad/greenpoints/pkg/repository"
	"github.com/google/uuid"
)

// record is the on-disk shape of a user aggregate. It exists because the
// aggregate hides Password and Version from its JSON form.
type record struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	Account      wallet.Account `json:"account"`
	Profile      user.Profile   `json:"profile"`
	ReferralCode string         `json:"referralCode,omitempty"`
	Version      int64          `json:"version"`
	LastLogin    time.Time      `json:"lastLogin"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// Store is a file-backed repository. A single mutex serializes every
// cycle; the version check still applies so the contract matches the
// database store exactly.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a store writing to the given path. The file is created on
// first persist.
func New(path string) *Store {
	return &Store{path: path}
}

// Do runs fn holding the store lock. The file-backed store has no real
// transactions; the lock gives the same one-writer-at-a-time guarantee.
func (s *Store) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s)
}

// UserRepository returns the store itself; it is its own repository.
func (s *Store) UserRepository() (repository.UserRepository, error) {
	return s, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	records, err := s.read()
	if err != nil {
		return nil, err
	}
	rec, ok := records[id.String()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return fromRecord(rec), nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	records, err := s.read()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.Email == email {
			return fromRecord(rec), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) Create(ctx context.Context, u *user.User) error {
	records, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := records[u.ID.String()]; ok {
		return errors.New("user already exists")
	}
	records[u.ID.String()] = toRecord(u)
	return s.write(records)
}

// Save persists the aggregate with a compare-and-swap on Version. A
// stale snapshot gets ErrConflict and leaves the file untouched.
func (s *Store) Save(ctx context.Context, u *user.User) error {
	records, err := s.read()
	if err != nil {
		return err
	}
	existing, ok := records[u.ID.String()]
	if !ok {
		return repository.ErrNotFound
	}
	if existing.Version != u.Version {
		return repository.ErrConflict
	}
	rec := toRecord(u)
	rec.Version = u.Version + 1
	records[u.ID.String()] = rec
	if err := s.write(records); err != nil {
		return err
	}
	u.Version++
	return nil
}

func (s *Store) read() (map[string]record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]record{}, nil
		}
		return nil, err
	}
	records := map[string]record{}
	if len(data) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// write replaces the file atomically via a temp file and rename, so a
// crash mid-write never leaves a truncated store behind.
func (s *Store) write(records map[string]record) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func toRecord(u *user.User) record {
	return record{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Password:     u.Password,
		Account:      u.Account,
		Profile:      u.Profile,
		ReferralCode: u.ReferralCode,
		Version:      u.Version,
		LastLogin:    u.LastLogin,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func fromRecord(rec record) *user.User {
	return &user.User{
		ID:           rec.ID,
		Name:         rec.Name,
		Email:        rec.Email,
		Password:     rec.Password,
		Account:      rec.Account,
		Profile:      rec.Profile,
		ReferralCode: rec.ReferralCode,
		Version:      rec.Version,
		LastLogin:    rec.LastLogin,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

var (
	_ repository.UnitOfWork     = (*Store)(nil)
	_ repository.UserRepository = (*Store)(nil)
)
