package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"wedora/internal/entity"
	"wedora/internal/service"
)

// ---- mock implementation ----

type mockAccounts struct {
	registerFn func(service.RegisterInput) (*service.AuthResult, error)
	loginFn    func(service.LoginInput) (*service.AuthResult, error)
}

func (m *mockAccounts) Register(_ context.Context, input service.RegisterInput) (*service.AuthResult, error) {
	if m.registerFn != nil {
		return m.registerFn(input)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockAccounts) Login(_ context.Context, input service.LoginInput) (*service.AuthResult, error) {
	if m.loginFn != nil {
		return m.loginFn(input)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func newAuthTestRouter(accounts AccountAuthenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &HTTPHandler{accounts: accounts}
	authGroup := r.Group("/auth")
	authGroup.POST("/signup", h.Signup)
	authGroup.POST("/login", h.Login)
	return r
}

func authDoRequest(router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func vendorResult() *service.AuthResult {
	return &service.AuthResult{
		Token:     "signed.session.token",
		ExpiresAt: time.Now().Add(time.Hour),
		Account: &entity.DbAccount{
			ID:               7,
			Role:             entity.AccountRoleVendor,
			Email:            "a@b.com",
			PasswordHash:     "$2a$10$notserialised",
			OrganizationName: "Acme",
			Location:         "Colombo",
			Categories:       entity.StringArray{"venue-accommodation"},
			IsActive:         true,
		},
	}
}

// ---- tests ----

func TestSignup(t *testing.T) {
	validVendorBody := map[string]interface{}{
		"role":             "vendor",
		"email":            "a@b.com",
		"password":         "secret1",
		"organizationName": "Acme",
		"location":         "Colombo",
		"categories":       []string{"venue-accommodation"},
	}

	tests := []struct {
		name           string
		body           interface{}
		registerFn     func(service.RegisterInput) (*service.AuthResult, error)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "created - valid vendor signup",
			body: validVendorBody,
			registerFn: func(service.RegisterInput) (*service.AuthResult, error) {
				return vendorResult(), nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "conflict - duplicate email",
			body: validVendorBody,
			registerFn: func(service.RegisterInput) (*service.AuthResult, error) {
				return nil, service.ErrEmailTaken
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   ErrCodeEmailExists,
		},
		{
			name: "bad request - service validation failure",
			body: map[string]interface{}{"role": "vendor", "email": "a@b.com", "password": "secret1"},
			registerFn: func(service.RegisterInput) (*service.AuthResult, error) {
				return nil, &service.ValidationError{Field: "organizationName", Reason: "organization name is required"}
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrCodeInvalidRequest,
		},
		{
			name:           "bad request - missing role",
			body:           map[string]interface{}{"email": "a@b.com", "password": "secret1"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - invalid email format",
			body:           map[string]interface{}{"role": "user", "email": "not-an-email", "password": "secret1", "name": "Amaya"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - password below minimum",
			body:           map[string]interface{}{"role": "user", "email": "a@b.com", "password": "five5", "name": "Amaya"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "internal error - storage failure stays generic",
			body: validVendorBody,
			registerFn: func(service.RegisterInput) (*service.AuthResult, error) {
				return nil, fmt.Errorf("failed to create account: connection refused")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthTestRouter(&mockAccounts{registerFn: tt.registerFn})
			w := authDoRequest(router, http.MethodPost, "/auth/signup", tt.body)
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected %d got %d; body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedCode != "" {
				var apiErr APIError
				if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
					t.Fatalf("failed to unmarshal error body: %v", err)
				}
				if apiErr.Code != tt.expectedCode {
					t.Fatalf("expected code %s, got %s", tt.expectedCode, apiErr.Code)
				}
			}
		})
	}
}

func TestSignupResponseShape(t *testing.T) {
	router := newAuthTestRouter(&mockAccounts{
		registerFn: func(service.RegisterInput) (*service.AuthResult, error) {
			return vendorResult(), nil
		},
	})

	w := authDoRequest(router, http.MethodPost, "/auth/signup", map[string]interface{}{
		"role":             "vendor",
		"email":            "a@b.com",
		"password":         "secret1",
		"organizationName": "Acme",
		"location":         "Colombo",
		"categories":       []string{"venue-accommodation"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d; body: %s", w.Code, w.Body.String())
	}

	var resp entity.AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected token in response")
	}
	if resp.User.OrganizationName != "Acme" {
		t.Fatalf("expected organizationName Acme, got %q", resp.User.OrganizationName)
	}
	if resp.User.Location != "Colombo" {
		t.Fatalf("expected location Colombo, got %q", resp.User.Location)
	}
	if strings.Contains(strings.ToLower(w.Body.String()), "password") {
		t.Fatalf("response leaks password material: %s", w.Body.String())
	}
}

func TestLoginEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		loginFn        func(service.LoginInput) (*service.AuthResult, error)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "success - valid credentials",
			body: map[string]string{"email": "a@b.com", "password": "secret1"},
			loginFn: func(service.LoginInput) (*service.AuthResult, error) {
				return vendorResult(), nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unauthorised - invalid credentials",
			body: map[string]string{"email": "a@b.com", "password": "wrongpass"},
			loginFn: func(service.LoginInput) (*service.AuthResult, error) {
				return nil, service.ErrInvalidCredentials
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   ErrCodeInvalidCredentials,
		},
		{
			name: "unauthorised - deactivated account has distinct code",
			body: map[string]string{"email": "a@b.com", "password": "secret1"},
			loginFn: func(service.LoginInput) (*service.AuthResult, error) {
				return nil, service.ErrAccountDisabled
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   ErrCodeAccountDisabled,
		},
		{
			name:           "bad request - missing password",
			body:           map[string]string{"email": "a@b.com"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - missing email",
			body:           map[string]string{"password": "secret1"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthTestRouter(&mockAccounts{loginFn: tt.loginFn})
			w := authDoRequest(router, http.MethodPost, "/auth/login", tt.body)
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected %d got %d; body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedCode != "" {
				var apiErr APIError
				if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
					t.Fatalf("failed to unmarshal error body: %v", err)
				}
				if apiErr.Code != tt.expectedCode {
					t.Fatalf("expected code %s, got %s", tt.expectedCode, apiErr.Code)
				}
			}
		})
	}
}
