package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"wedora/internal/auth"
	"wedora/internal/entity"
	"wedora/internal/model"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

var (
	// ErrEmailTaken signals a duplicate registration for an email.
	ErrEmailTaken = errors.New("account with this email already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login failures never reveal whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDisabled signals a login against a deactivated account.
	ErrAccountDisabled = errors.New("account deactivated")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError describes a malformed or missing input field. It is
// always raised before any storage access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Profile is the role-conditioned part of a registration. Exactly one
// variant exists per role family: PersonProfile for user/admin accounts,
// VendorProfile for vendors.
type Profile interface {
	isProfile()
}

// PersonProfile carries the fields required for user and admin accounts.
type PersonProfile struct {
	DisplayName string
}

func (PersonProfile) isProfile() {}

// VendorProfile carries the fields required for vendor accounts.
type VendorProfile struct {
	OrganizationName string
	Location         string
	Categories       []string
}

func (VendorProfile) isProfile() {}

// RegisterInput is the input to Register.
type RegisterInput struct {
	Role     string
	Email    string
	Password string
	Profile  Profile
}

// LoginInput is the input to Login.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned by Register and Login. The account's password hash
// is never serialised.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	Account   *entity.DbAccount
}

// AccountService validates credentials, persists accounts and issues
// session tokens.
type AccountService struct {
	repo   model.Repository
	hasher *auth.PasswordHasher
	tokens *auth.Manager
}

// NewAccountService creates the account service.
func NewAccountService(repo model.Repository, hasher *auth.PasswordHasher, tokens *auth.Manager) *AccountService {
	return &AccountService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register validates the input, enforces email uniqueness, hashes the
// password and persists a new active account, returning a session token
// bound to it.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailPattern.MatchString(email) {
		return nil, &ValidationError{Field: "email", Reason: "a valid email address is required"}
	}
	if utf8.RuneCountInString(input.Password) < MinPasswordLength {
		return nil, &ValidationError{
			Field:  "password",
			Reason: fmt.Sprintf("password must be at least %d characters", MinPasswordLength),
		}
	}

	account := &entity.DbAccount{
		Email:    email,
		Role:     input.Role,
		IsActive: true,
	}

	// Role-conditioned profile check. Each role accepts exactly one profile
	// variant; fields outside the variant never reach the account record.
	switch input.Role {
	case entity.AccountRoleUser, entity.AccountRoleAdmin:
		profile, ok := input.Profile.(PersonProfile)
		if !ok || strings.TrimSpace(profile.DisplayName) == "" {
			return nil, &ValidationError{Field: "name", Reason: "name is required"}
		}
		account.DisplayName = strings.TrimSpace(profile.DisplayName)
	case entity.AccountRoleVendor:
		profile, ok := input.Profile.(VendorProfile)
		if !ok || strings.TrimSpace(profile.OrganizationName) == "" {
			return nil, &ValidationError{Field: "organizationName", Reason: "organization name is required"}
		}
		if strings.TrimSpace(profile.Location) == "" {
			return nil, &ValidationError{Field: "location", Reason: "location is required"}
		}
		categories := normaliseCategories(profile.Categories)
		if len(categories) == 0 {
			return nil, &ValidationError{Field: "categories", Reason: "at least one category is required"}
		}
		account.OrganizationName = strings.TrimSpace(profile.OrganizationName)
		account.Location = strings.TrimSpace(profile.Location)
		account.Categories = categories
	default:
		return nil, &ValidationError{Field: "role", Reason: "role must be one of user, vendor, admin"}
	}

	// Fast-path duplicate check for a clean error message. The unique index
	// on accounts.email remains the authoritative guard against a concurrent
	// signup racing past this read.
	if _, err := s.repo.GetAccountByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	account.PasswordHash = hash

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return s.issueToken(account)
}

// Login validates the credentials against the stored hash and issues a
// session token. Unknown email and wrong password yield the same error.
func (s *AccountService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	password := input.Password
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if !account.IsActive {
		return nil, ErrAccountDisabled
	}

	if err := s.hasher.Verify(account.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(account)
}

func (s *AccountService) issueToken(account *entity.DbAccount) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.GenerateToken(account)
	if err != nil {
		return nil, fmt.Errorf("failed to create session token: %w", err)
	}
	return &AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   account,
	}, nil
}

func normaliseCategories(categories []string) entity.StringArray {
	out := make(entity.StringArray, 0, len(categories))
	for _, c := range categories {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
