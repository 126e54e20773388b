// Package points wires the calculator and the wallet domain to storage:
// it owns the load-apply-persist cycle for submissions and redemptions
// and the read paths for balance, history, badges and the 2X window.
package points

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/greenpoints/pkg/domain/user"
	"github.com/amirasaad/greenpoints/pkg/domain/wallet"
	"github.com/amirasaad/greenpoints/pkg/dto"
	"github.com/amirasaad/greenpoints/pkg/eventbus"
	"github.com/amirasaad/greenpoints/pkg/points"
	"github.com/amirasaad/greenpoints/pkg/repository"
	"github.com/google/uuid"
)

// maxPersistRetries bounds how often a conflicted load-apply-persist
// cycle is retried before the conflict is surfaced to the caller.
const maxPersistRetries = 3

// Service orchestrates wallet mutations and queries. Mutations run inside
// a unit of work and are retried on optimistic-concurrency conflicts;
// events are emitted only after a successful persist.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.EventBus
	logger *slog.Logger
	now    func() time.Time
}

// New creates a points service using the wall clock.
func New(uow repository.UnitOfWork, bus eventbus.EventBus, logger *slog.Logger) *Service {
	return NewWithClock(uow, bus, logger, time.Now)
}

// NewWithClock creates a points service with an injected clock, for tests.
func NewWithClock(uow repository.UnitOfWork, bus eventbus.EventBus, logger *slog.Logger, now func() time.Time) *Service {
	return &Service{uow: uow, bus: bus, logger: logger.With("service", "points"), now: now}
}

// mutate runs fn against a freshly loaded aggregate inside a unit of
// work and persists the result, retrying the whole cycle on conflict.
// fn observes and mutates only the in-cycle snapshot, so a failed persist
// leaves the stored account untouched.
func (s *Service) mutate(ctx context.Context, userID uuid.UUID, fn func(u *user.User) error) error {
	for attempt := 1; attempt <= maxPersistRetries; attempt++ {
		err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			repo, err := uow.UserRepository()
			if err != nil {
				return err
			}
			u, err := repo.Get(ctx, userID)
			if err != nil {
				return err
			}
			if err := fn(u); err != nil {
				return err
			}
			return repo.Save(ctx, u)
		})
		if errors.Is(err, repository.ErrConflict) {
			s.logger.Warn("persist conflict, retrying", "user_id", userID, "attempt", attempt)
			continue
		}
		return err
	}
	return fmt.Errorf("giving up after %d attempts: %w", maxPersistRetries, repository.ErrConflict)
}

// load fetches a read-only snapshot. Reads are not serialized against
// each other, only writes are.
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

func submissionFrom(in dto.SubmitEWaste, tier wallet.Tier) points.Submission {
	return points.Submission{
		ItemType:  points.ItemType(in.ItemType),
		Condition: points.Condition(in.Condition),
		Quantity:  in.Quantity,
		Weight:    in.Weight,
		Tier:      tier,
	}
}

// Submit validates the e-waste submission, credits the award to the
// wallet and persists the account with its recomputed tier and badges.
func (s *Service) Submit(ctx context.Context, userID uuid.UUID, in dto.SubmitEWaste) (*dto.SubmitResult, error) {
	var (
		result dto.SubmitResult
		earned []wallet.BadgeID
	)
	err := s.mutate(ctx, userID, func(u *user.User) error {
		sub := submissionFrom(in, u.Account.Tier)
		if errs := points.Validate(sub); len(errs) > 0 {
			return &points.ValidationError{Errors: errs}
		}

		breakdown := points.GetBreakdown(sub)
		md := &wallet.Metadata{
			ItemType:    in.ItemType,
			Condition:   in.Condition,
			Quantity:    in.Quantity,
			Weight:      in.Weight,
			Tier:        u.Account.Tier,
			Description: in.Description,
			ImageURL:    in.ImageURL,
		}
		source := "Sold " + in.ItemType
		tx, badges, err := u.Account.Credit(breakdown.Total, source, md, s.now())
		if err != nil {
			return err
		}
		u.UpdatedAt = s.now()

		earned = badges
		result = dto.SubmitResult{
			Points:      breakdown.Total,
			Breakdown:   breakdown,
			NewBalance:  u.Account.Wallet.Balance,
			Tier:        u.Account.Tier,
			Transaction: *tx,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("e-waste submission credited",
		"user_id", userID, "points", result.Points, "new_balance", result.NewBalance, "tier", result.Tier)
	s.emit(ctx, eventbus.PointsCredited{
		UserID:     userID,
		Points:     result.Points,
		Source:     result.Transaction.Source,
		NewBalance: result.NewBalance,
		Tier:       result.Tier,
	})
	for _, b := range earned {
		s.emit(ctx, eventbus.BadgeEarned{UserID: userID, Badge: b})
	}
	return &result, nil
}

// Calculate previews the award for a submission without touching the
// ledger.
func (s *Service) Calculate(ctx context.Context, userID uuid.UUID, in dto.SubmitEWaste) (*dto.CalculateResult, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	sub := submissionFrom(in, u.Account.Tier)
	if errs := points.Validate(sub); len(errs) > 0 {
		return nil, &points.ValidationError{Errors: errs}
	}
	breakdown := points.GetBreakdown(sub)
	return &dto.CalculateResult{
		EstimatedPoints: breakdown.Total,
		Breakdown:       breakdown,
		Tier:            u.Account.Tier,
	}, nil
}

// Redeem debits points from the wallet. Inside an active 2X window the
// reported effective value doubles and the source is annotated; the
// debited amount is never scaled.
func (s *Service) Redeem(ctx context.Context, userID uuid.UUID, in dto.Redeem) (*dto.RedeemResult, error) {
	var (
		result dto.RedeemResult
		source string
	)
	err := s.mutate(ctx, userID, func(u *user.User) error {
		now := s.now()
		status := u.Account.Wallet.BonusStatus(now)

		source = "Redeemed for " + in.RedeemFor
		multiplier := 1
		if status.Active {
			multiplier = wallet.BonusMultiplier
			source += " (2X value)"
		}

		if _, err := u.Account.Debit(in.Points, source, now); err != nil {
			return err
		}
		u.UpdatedAt = now

		result = dto.RedeemResult{
			PointsRedeemed: in.Points,
			EffectiveValue: in.Points * multiplier,
			Multiplier:     multiplier,
			Used2XValue:    status.Active,
			NewBalance:     u.Account.Wallet.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("points redeemed",
		"user_id", userID, "points", result.PointsRedeemed, "effective_value", result.EffectiveValue,
		"used_2x", result.Used2XValue, "new_balance", result.NewBalance)
	s.emit(ctx, eventbus.PointsRedeemed{
		UserID:         userID,
		Points:         result.PointsRedeemed,
		Source:         source,
		EffectiveValue: result.EffectiveValue,
		Used2XValue:    result.Used2XValue,
		NewBalance:     result.NewBalance,
	})
	return &result, nil
}

// Balance returns the balance/totals snapshot.
func (s *Service) Balance(ctx context.Context, userID uuid.UUID) (*dto.BalanceRead, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	b := balanceRead(u)
	return &b, nil
}

func balanceRead(u *user.User) dto.BalanceRead {
	return dto.BalanceRead{
		Balance:             u.Account.Wallet.Balance,
		TotalEarned:         u.Account.Wallet.TotalEarned,
		TotalRedeemed:       u.Account.Wallet.TotalRedeemed,
		Tier:                u.Account.Tier,
		TotalItemsRecycled:  u.Account.TotalItemsRecycled,
		TotalWeightRecycled: u.Account.TotalWeightRecycled,
	}
}

// History returns one newest-first page of transactions, optionally
// filtered by kind.
func (s *Service) History(ctx context.Context, userID uuid.UUID, page, limit int, kind wallet.Kind) (*dto.HistoryRead, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	all := u.Account.Wallet.HistoryNewestFirst(kind)
	total := len(all)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &dto.HistoryRead{
		History: all[start:end],
		Pagination: dto.Pagination{
			CurrentPage:       page,
			TotalPages:        totalPages,
			TotalTransactions: total,
			HasNext:           end < total,
			HasPrev:           start > 0,
		},
	}, nil
}

// Badges returns the earned badges with display metadata, in the order
// they were earned.
func (s *Service) Badges(ctx context.Context, userID uuid.UUID) ([]dto.BadgeRead, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BadgeRead, 0, len(u.Account.Badges))
	for _, id := range u.Account.Badges {
		b, ok := wallet.BadgeByID(id)
		if !ok {
			continue
		}
		out = append(out, dto.BadgeRead{ID: b.ID, Name: b.Name, Icon: b.Icon, Description: b.Description})
	}
	return out, nil
}

// BonusStatus reports the 2X window state with a formatted remaining time.
func (s *Service) BonusStatus(ctx context.Context, userID uuid.UUID) (*dto.BonusStatusRead, error) {
	u, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	status := u.Account.Wallet.BonusStatus(s.now())
	return &dto.BonusStatusRead{
		Active:             status.Active,
		Multiplier:         wallet.BonusMultiplier,
		Remaining:          status.Remaining.Milliseconds(),
		RemainingFormatted: status.FormattedRemaining(),
		LastCreditAt:       status.LastCreditAt,
	}, nil
}

func (s *Service) emit(ctx context.Context, e eventbus.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		s.logger.Error("event emit failed", "event", e.Type(), "error", err)
	}
}
