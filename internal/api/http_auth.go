package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"wedora/internal/entity"
	"wedora/internal/service"
)

// Signup registers a new account and returns a session token bound to it.
func (h *HTTPHandler) Signup(c *gin.Context) {
	if h.accounts == nil {
		ServiceUnavailable(c, "account service not available")
		return
	}

	var req entity.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	result, err := h.accounts.Register(ctx, service.RegisterInput{
		Role:     req.Role,
		Email:    req.Email,
		Password: req.Password,
		Profile:  profileFromSignup(&req),
	})
	if err != nil {
		h.writeAuthError(c, err, "signup")
		return
	}

	c.JSON(http.StatusCreated, entity.AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      makeAccountSummary(result.Account),
	})
}

// Login validates credentials and returns a session token.
func (h *HTTPHandler) Login(c *gin.Context) {
	if h.accounts == nil {
		ServiceUnavailable(c, "account service not available")
		return
	}

	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	result, err := h.accounts.Login(ctx, service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeAuthError(c, err, "login")
		return
	}

	c.JSON(http.StatusOK, entity.AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      makeAccountSummary(result.Account),
	})
}

// Me returns the authenticated caller's account.
func (h *HTTPHandler) Me(c *gin.Context) {
	caller := CurrentAccount(c)
	if caller == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	account, err := h.repo.GetAccountByID(ctx, caller.ID)
	if err != nil {
		logrus.WithError(err).WithField("account_id", caller.ID).Error("failed to load account profile")
		InternalError(c, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, makeAccountSummary(account))
}

// profileFromSignup maps the flat wire payload to the role-conditioned
// profile variant; the service validates the variant contents.
func profileFromSignup(req *entity.SignupRequest) service.Profile {
	switch req.Role {
	case entity.AccountRoleVendor:
		return service.VendorProfile{
			OrganizationName: req.OrganizationName,
			Location:         req.Location,
			Categories:       req.Categories,
		}
	default:
		return service.PersonProfile{DisplayName: req.Name}
	}
}

// writeAuthError translates service errors to the API taxonomy. Only
// unexpected failures are logged with their cause; credential errors stay
// generic on the wire.
func (h *HTTPHandler) writeAuthError(c *gin.Context, err error, op string) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeInvalidRequest,
			validationErr.Reason, gin.H{"field": validationErr.Field})
	case errors.Is(err, service.ErrEmailTaken):
		ErrorResponse(c, http.StatusConflict, ErrCodeEmailExists, err.Error())
	case errors.Is(err, service.ErrAccountDisabled):
		ErrorResponse(c, http.StatusUnauthorized, ErrCodeAccountDisabled, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
	default:
		logrus.WithError(err).WithField("op", op).Error("account operation failed")
		InternalError(c, "failed to process request")
	}
}
