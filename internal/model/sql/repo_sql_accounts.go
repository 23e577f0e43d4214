package sql

import (
	"context"
	"fmt"
	"strings"

	"wedora/internal/entity"
)

// CreateAccount persists a new account record. A unique index on email makes
// the insert the authoritative uniqueness check; violations surface as
// gorm.ErrDuplicatedKey.
func (r *GormRepository) CreateAccount(ctx context.Context, account *entity.DbAccount) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if account == nil {
		return fmt.Errorf("account is nil")
	}
	return r.db.WithContext(ctx).Create(account).Error
}

// GetAccountByEmail loads an account by email.
func (r *GormRepository) GetAccountByEmail(ctx context.Context, email string) (*entity.DbAccount, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return nil, fmt.Errorf("email is empty")
	}

	var account entity.DbAccount
	if err := r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(trimmed)).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccountByID loads an account by ID.
func (r *GormRepository) GetAccountByID(ctx context.Context, id uint) (*entity.DbAccount, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid account id")
	}
	var account entity.DbAccount
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// CountAccounts returns total account count.
func (r *GormRepository) CountAccounts(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbAccount{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
