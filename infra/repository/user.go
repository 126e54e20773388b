package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/amirasaad/greenpoints/pkg/domain/user"
	"github.com/amirasaad/greenpoints/pkg/domain/wallet"
	"github.com/amirasaad/greenpoints/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a gorm-backed user repository bound to the
// given session.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var row User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return r.hydrate(ctx, &row)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var row User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return r.hydrate(ctx, &row)
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	row, err := toRow(u)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	return r.appendTransactions(ctx, u)
}

// Save persists the aggregate with a compare-and-swap on Version. New
// history entries are appended; existing entries are never touched, so a
// replayed insert is a no-op.
func (r *userRepository) Save(ctx context.Context, u *user.User) error {
	row, err := toRow(u)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&User{}).
		Where("id = ? AND version = ?", u.ID, u.Version).
		Updates(map[string]any{
			"name":                  row.Name,
			"email":                 row.Email,
			"password":              row.Password,
			"phone":                 row.Phone,
			"address":               row.Address,
			"city":                  row.City,
			"state":                 row.State,
			"zip_code":              row.ZipCode,
			"referral_code":         row.ReferralCode,
			"tier":                  row.Tier,
			"balance":               row.Balance,
			"total_earned":          row.TotalEarned,
			"total_redeemed":        row.TotalRedeemed,
			"total_items_recycled":  row.TotalItemsRecycled,
			"total_weight_recycled": row.TotalWeightRecycled,
			"badges":                row.Badges,
			"version":               u.Version + 1,
			"last_login":            row.LastLogin,
			"updated_at":            row.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", u.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return repository.ErrNotFound
		}
		return repository.ErrConflict
	}

	if err := r.appendTransactions(ctx, u); err != nil {
		return err
	}
	u.Version++
	return nil
}

// appendTransactions inserts the history rows, skipping any already
// stored.
func (r *userRepository) appendTransactions(ctx context.Context, u *user.User) error {
	history := u.Account.Wallet.History
	if len(history) == 0 {
		return nil
	}
	rows := make([]Transaction, 0, len(history))
	for i := range history {
		tx := &history[i]
		md := ""
		if tx.Metadata != nil {
			b, err := json.Marshal(tx.Metadata)
			if err != nil {
				return err
			}
			md = string(b)
		}
		rows = append(rows, Transaction{
			ID:        tx.ID,
			UserID:    u.ID,
			Seq:       i,
			Timestamp: tx.Timestamp,
			Points:    tx.Points,
			Kind:      string(tx.Kind),
			Source:    tx.Source,
			Metadata:  md,
		})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

func (r *userRepository) hydrate(ctx context.Context, row *User) (*user.User, error) {
	var txRows []Transaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", row.ID).
		Order("seq asc").
		Find(&txRows).Error; err != nil {
		return nil, err
	}

	history := make([]wallet.Transaction, 0, len(txRows))
	for i := range txRows {
		tr := &txRows[i]
		var md *wallet.Metadata
		if tr.Metadata != "" {
			md = &wallet.Metadata{}
			if err := json.Unmarshal([]byte(tr.Metadata), md); err != nil {
				return nil, err
			}
		}
		history = append(history, wallet.Transaction{
			ID:        tr.ID,
			Timestamp: tr.Timestamp,
			Points:    tr.Points,
			Kind:      wallet.Kind(tr.Kind),
			Source:    tr.Source,
			Metadata:  md,
		})
	}

	var badges []wallet.BadgeID
	if row.Badges != "" {
		if err := json.Unmarshal([]byte(row.Badges), &badges); err != nil {
			return nil, err
		}
	}

	return &user.User{
		ID:       row.ID,
		Name:     row.Name,
		Email:    row.Email,
		Password: row.Password,
		Account: wallet.Account{
			Wallet: wallet.Wallet{
				Balance:       row.Balance,
				TotalEarned:   row.TotalEarned,
				TotalRedeemed: row.TotalRedeemed,
				History:       history,
			},
			Tier:                wallet.Tier(row.Tier),
			Badges:              badges,
			TotalItemsRecycled:  row.TotalItemsRecycled,
			TotalWeightRecycled: row.TotalWeightRecycled,
		},
		Profile: user.Profile{
			Phone:   row.Phone,
			Address: row.Address,
			City:    row.City,
			State:   row.State,
			ZipCode: row.ZipCode,
		},
		ReferralCode: row.ReferralCode,
		Version:      row.Version,
		LastLogin:    row.LastLogin,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

func toRow(u *user.User) (*User, error) {
	badges := ""
	if len(u.Account.Badges) > 0 {
		b, err := json.Marshal(u.Account.Badges)
		if err != nil {
			return nil, err
		}
		badges = string(b)
	}
	return &User{
		ID:                  u.ID,
		Name:                u.Name,
		Email:               u.Email,
		Password:            u.Password,
		Phone:               u.Profile.Phone,
		Address:             u.Profile.Address,
		City:                u.Profile.City,
		State:               u.Profile.State,
		ZipCode:             u.Profile.ZipCode,
		ReferralCode:        u.ReferralCode,
		Tier:                string(u.Account.Tier),
		Balance:             u.Account.Wallet.Balance,
		TotalEarned:         u.Account.Wallet.TotalEarned,
		TotalRedeemed:       u.Account.Wallet.TotalRedeemed,
		TotalItemsRecycled:  u.Account.TotalItemsRecycled,
		TotalWeightRecycled: u.Account.TotalWeightRecycled,
		Badges:              badges,
		Version:             u.Version,
		LastLogin:           u.LastLogin,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}, nil
}
