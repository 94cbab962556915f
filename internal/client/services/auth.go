// Package services holds the application services behind the CLI commands.
// Each service composes the API client with local state and enforces
// client-side validation before anything reaches the network.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sisimpur/sisimpur-cli/internal/client/api"
	"github.com/sisimpur/sisimpur-cli/internal/client/models"
	"github.com/sisimpur/sisimpur-cli/internal/client/session"
	"github.com/sisimpur/sisimpur-cli/internal/common"
	"github.com/sisimpur/sisimpur-cli/internal/logging"
)

// AuthService defines the sign-in flows for the CLI.
type AuthService interface {
	SendOTP(ctx context.Context, email string) (string, error)
	VerifyOTP(ctx context.Context, email, code string) (*models.Principal, error)
	Login(ctx context.Context, email string, password []byte) (*models.Principal, error)
	Signup(ctx context.Context, req api.SignupRequest) (*models.Principal, error)
	Logout(ctx context.Context) error
	Revalidate(ctx context.Context) error
	Current() *models.Principal
	IsAuthenticated() bool
	SavedEmail(ctx context.Context) string
}

// authService is the concrete AuthService, keeping the session store in sync
// with flow outcomes.
type authService struct {
	client api.Client
	store  *session.Store
	log    logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(client api.Client, store *session.Store, log logging.Logger) AuthService {
	return &authService{client: client, store: store, log: log}
}

// SendOTP requests a one-time code for the given email and returns the
// server's confirmation message.
func (s *authService) SendOTP(ctx context.Context, email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", fmt.Errorf("%w: email is required", common.ErrorValidation)
	}
	return s.client.SendOTP(ctx, email)
}

// VerifyOTP exchanges the code for a token and signs the user in.
func (s *authService) VerifyOTP(ctx context.Context, email, code string) (*models.Principal, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: code is required", common.ErrorValidation)
	}
	token, p, err := s.client.VerifyOTP(ctx, email, code)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetAuthenticated(ctx, token, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Login signs in with email and password. The password buffer is wiped
// before returning.
func (s *authService) Login(ctx context.Context, email string, password []byte) (*models.Principal, error) {
	defer common.WipeByteArray(password)

	if strings.TrimSpace(email) == "" || len(password) == 0 {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	token, p, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetAuthenticated(ctx, token, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Signup registers a new account and signs it in. The password buffer is
// wiped before returning.
func (s *authService) Signup(ctx context.Context, req api.SignupRequest) (*models.Principal, error) {
	defer common.WipeByteArray(req.Password)

	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("%w: email and full name are required", common.ErrorValidation)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", common.ErrorValidation)
	}

	token, p, err := s.client.Signup(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetAuthenticated(ctx, token, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Logout ends the session. The server call is best-effort: the local token
// is discarded even when the backend is unreachable.
func (s *authService) Logout(ctx context.Context) error {
	if err := s.client.Logout(ctx); err != nil {
		s.log.Warn(ctx, "server-side logout failed, discarding token anyway", "error", err)
	}
	return s.store.Clear(ctx)
}

// Revalidate confirms a previously persisted token on startup.
func (s *authService) Revalidate(ctx context.Context) error {
	return s.store.Revalidate(ctx)
}

func (s *authService) Current() *models.Principal {
	return s.store.Current()
}

func (s *authService) IsAuthenticated() bool {
	return s.store.IsAuthenticated()
}

// SavedEmail returns the last signed-in email for prompt prefills.
func (s *authService) SavedEmail(ctx context.Context) string {
	return s.store.SavedEmail(ctx)
}
