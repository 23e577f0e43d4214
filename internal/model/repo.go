package model

import (
	"context"

	"wedora/internal/entity"
)

// Repository defines the persistence operations for accounts.
type Repository interface {
	CreateAccount(ctx context.Context, account *entity.DbAccount) error
	GetAccountByEmail(ctx context.Context, email string) (*entity.DbAccount, error)
	GetAccountByID(ctx context.Context, id uint) (*entity.DbAccount, error)
	CountAccounts(ctx context.Context) (int64, error)
}
