// Package user implements registration, profile management and the
// activity reports derived from the wallet history.
package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/greenpoints/pkg/domain/user"
	"github.com/amirasaad/greenpoints/pkg/domain/wallet"
	"github.com/amirasaad/greenpoints/pkg/dto"
	"github.com/amirasaad/greenpoints/pkg/repository"
	"github.com/google/uuid"
)

// Service manages user aggregates outside the points flows.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// New creates a user service using the wall clock.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return NewWithClock(uow, logger, time.Now)
}

// NewWithClock creates a user service with an injected clock, for tests.
func NewWithClock(uow repository.UnitOfWork, logger *slog.Logger, now func() time.Time) *Service {
	return &Service{uow: uow, logger: logger.With("service", "user"), now: now}
}

// Register creates a new user with a zero-valued wallet.
func (s *Service) Register(ctx context.Context, in dto.UserCreate) (*dto.UserRead, error) {
	u, err := user.New(in.Name, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	u.Profile = user.Profile{
		Phone:   in.Phone,
		Address: in.Address,
		City:    in.City,
		State:   in.State,
		ZipCode: in.ZipCode,
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if existing, err := repo.GetByEmail(ctx, u.Email); err == nil && existing != nil {
			return user.ErrEmailTaken
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return repo.Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", u.ID, "email", u.Email)
	r := ToUserRead(u)
	return &r, nil
}

// Get returns the profile read model.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*dto.UserRead, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	r := ToUserRead(u)
	return &r, nil
}

// Update applies a partial profile update.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, in dto.UserUpdate) (*dto.UserRead, error) {
	var r dto.UserRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := repo.Get(ctx, userID)
		if err != nil {
			return err
		}
		if in.Name != nil {
			u.Name = *in.Name
		}
		if in.Phone != nil {
			u.Profile.Phone = *in.Phone
		}
		if in.Address != nil {
			u.Profile.Address = *in.Address
		}
		if in.City != nil {
			u.Profile.City = *in.City
		}
		if in.State != nil {
			u.Profile.State = *in.State
		}
		if in.ZipCode != nil {
			u.Profile.ZipCode = *in.ZipCode
		}
		u.UpdatedAt = s.now()
		if err := repo.Save(ctx, u); err != nil {
			return err
		}
		r = ToUserRead(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ReferralCode returns the user's referral code, generating and
// persisting it on first access.
func (s *Service) ReferralCode(ctx context.Context, userID uuid.UUID) (string, error) {
	var code string
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := repo.Get(ctx, userID)
		if err != nil {
			return err
		}
		if u.EnsureReferralCode() {
			u.UpdatedAt = s.now()
			if err := repo.Save(ctx, u); err != nil {
				return err
			}
		}
		code = u.ReferralCode
		return nil
	})
	return code, err
}

// Dashboard aggregates the landing-page statistics from the wallet
// history.
func (s *Service) Dashboard(ctx context.Context, userID uuid.UUID) (*dto.DashboardRead, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	w := &u.Account.Wallet
	now := s.now()

	recent := w.HistoryNewestFirst("")
	if len(recent) > 5 {
		recent = recent[:5]
	}

	monthEarned, monthRedeemed := 0, 0
	itemsByType := map[string]int{}
	for i := range w.History {
		tx := &w.History[i]
		if sameMonth(tx.Timestamp, now) {
			switch tx.Kind {
			case wallet.KindCredit:
				monthEarned += tx.Points
			case wallet.KindDebit:
				monthRedeemed += -tx.Points
			}
		}
		if tx.Kind == wallet.KindCredit && tx.Metadata != nil && tx.Metadata.ItemType != "" {
			qty := tx.Metadata.Quantity
			if qty == 0 {
				qty = 1
			}
			itemsByType[tx.Metadata.ItemType] += qty
		}
	}

	avg := 0
	if credits := w.CreditCount(); credits > 0 {
		avg = w.TotalEarned / credits
	}

	return &dto.DashboardRead{
		Name:                u.Name,
		Email:               u.Email,
		Tier:                u.Account.Tier,
		MemberSince:         u.CreatedAt,
		Balance:             w.Balance,
		TotalEarned:         w.TotalEarned,
		TotalRedeemed:       w.TotalRedeemed,
		ThisMonthEarned:     monthEarned,
		ThisMonthRedeemed:   monthRedeemed,
		TotalTransactions:   len(w.History),
		TotalItemsSubmitted: u.Account.TotalItemsRecycled,
		ItemsByType:         itemsByType,
		AveragePerCredit:    avg,
		RecentTransactions:  recent,
	}, nil
}

// Stats reports the last six calendar months of wallet activity.
func (s *Service) Stats(ctx context.Context, userID uuid.UUID) (*dto.StatsRead, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	w := &u.Account.Wallet
	now := s.now()
	monthly := make([]dto.MonthlyStat, 0, 6)
	for i := 5; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		stat := dto.MonthlyStat{Month: start.Format("2006-01")}
		for j := range w.History {
			tx := &w.History[j]
			if tx.Timestamp.Before(start) || !tx.Timestamp.Before(end) {
				continue
			}
			stat.Transactions++
			switch tx.Kind {
			case wallet.KindCredit:
				stat.Earned += tx.Points
			case wallet.KindDebit:
				stat.Redeemed += -tx.Points
			}
		}
		monthly = append(monthly, stat)
	}

	return &dto.StatsRead{
		MonthlyStats: monthly,
		Totals: dto.BalanceRead{
			Balance:             w.Balance,
			TotalEarned:         w.TotalEarned,
			TotalRedeemed:       w.TotalRedeemed,
			Tier:                u.Account.Tier,
			TotalItemsRecycled:  u.Account.TotalItemsRecycled,
			TotalWeightRecycled: u.Account.TotalWeightRecycled,
		},
	}, nil
}

func (s *Service) load(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	var u *user.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, userID)
		return err
	})
	return u, err
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// ToUserRead maps the aggregate to its read model.
func ToUserRead(u *user.User) dto.UserRead {
	return dto.UserRead{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Tier:          u.Account.Tier,
		Balance:       u.Account.Wallet.Balance,
		TotalEarned:   u.Account.Wallet.TotalEarned,
		TotalRedeemed: u.Account.Wallet.TotalRedeemed,
		ReferralCode:  u.ReferralCode,
		Phone:         u.Profile.Phone,
		Address:       u.Profile.Address,
		City:          u.Profile.City,
		State:         u.Profile.State,
		ZipCode:       u.Profile.ZipCode,
		LastLogin:     u.LastLogin,
		CreatedAt:     u.CreatedAt,
	}
}
