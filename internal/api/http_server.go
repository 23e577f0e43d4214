package api

import (
	"context"
	"time"

	"wedora/internal/auth"
	"wedora/internal/config"
	"wedora/internal/entity"
	"wedora/internal/model"
	"wedora/internal/service"
)

// AccountAuthenticator is the slice of the account service the HTTP layer
// depends on.
type AccountAuthenticator interface {
	Register(ctx context.Context, input service.RegisterInput) (*service.AuthResult, error)
	Login(ctx context.Context, input service.LoginInput) (*service.AuthResult, error)
}

// HTTPHandler handles HTTP requests.
type HTTPHandler struct {
	cfg         config.Config
	repo        model.Repository
	accounts    AccountAuthenticator
	authManager *auth.Manager
}

// NewHTTPHandler creates the handler and wires the account service.
func NewHTTPHandler(cfg config.Config, repo model.Repository) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	accountSvc := service.NewAccountService(repo, hasher, authManager)

	return &HTTPHandler{
		cfg:         cfg,
		repo:        repo,
		accounts:    accountSvc,
		authManager: authManager,
	}, nil
}

func makeAccountSummary(account *entity.DbAccount) entity.AccountSummary {
	if account == nil {
		return entity.AccountSummary{}
	}
	summary := entity.AccountSummary{
		ID:        account.ID,
		Role:      account.Role,
		Email:     account.Email,
		Name:      account.DisplayName,
		IsActive:  account.IsActive,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
	if account.IsVendor() {
		summary.OrganizationName = account.OrganizationName
		summary.Location = account.Location
		summary.Categories = account.Categories.ToSlice()
	}
	return summary
}
