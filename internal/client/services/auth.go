// Package services contains application services for the Warranty Reminder
// client. This file defines the authentication service: login, signup,
// Google login, profile lookup and the password-reset flow.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/warrantyreminder/internal/client/client"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/models"
)

// ErrNoToken is returned when an auth endpoint answers 2xx without a token.
var ErrNoToken = errors.New("auth response carries no token")

// AuthResult is the body of a successful login, signup or Google login.
type AuthResult struct {
	Token string              `json:"token"`
	User  *models.UserProfile `json:"user"`
}

// AuthService defines the authentication endpoints of the backend.
//
// Contract:
//   - Login/Signup/LoginWithGoogle: exchange credentials for a token and
//     the user profile. Nothing is persisted here.
//   - Me: resolve the profile behind the current bearer credential.
//   - ForgotPassword/ResetPassword: password-reset flow.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Signup(ctx context.Context, email, password string) (*AuthResult, error)
	LoginWithGoogle(ctx context.Context, providerToken string) (*AuthResult, error)
	Me(ctx context.Context) (*models.UserProfile, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, password string) error
}

type authService struct {
	client client.Client
}

func NewAuthService(c client.Client) AuthService {
	return &authService{client: c}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	return a.authenticate(ctx, "auth/login", credentials{Email: email, Password: password})
}

func (a *authService) Signup(ctx context.Context, email, password string) (*AuthResult, error) {
	return a.authenticate(ctx, "auth/signup", credentials{Email: email, Password: password})
}

func (a *authService) LoginWithGoogle(ctx context.Context, providerToken string) (*AuthResult, error) {
	return a.authenticate(ctx, "auth/google", map[string]string{"token": providerToken})
}

func (a *authService) authenticate(ctx context.Context, path string, body any) (*AuthResult, error) {
	var res AuthResult
	if err := a.client.Post(ctx, path, body, &res); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if res.Token == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrNoToken)
	}
	return &res, nil
}

// Me accepts both {"user": {...}} and a bare profile object.
func (a *authService) Me(ctx context.Context) (*models.UserProfile, error) {
	var raw json.RawMessage
	if err := a.client.Get(ctx, "auth/me", &raw); err != nil {
		return nil, fmt.Errorf("auth/me: %w", err)
	}

	var envelope struct {
		User *models.UserProfile `json:"user"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("auth/me: decode: %w", err)
	}
	if envelope.User != nil {
		return envelope.User, nil
	}

	var profile models.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("auth/me: decode: %w", err)
	}
	if profile.ID == "" && profile.Email == "" {
		return nil, errors.New("auth/me: empty profile")
	}
	return &profile, nil
}

func (a *authService) ForgotPassword(ctx context.Context, email string) error {
	return a.client.Post(ctx, "auth/forgot-password", map[string]string{"email": email}, nil)
}

func (a *authService) ResetPassword(ctx context.Context, resetToken, password string) error {
	path := "auth/reset-password/" + url.PathEscape(resetToken)
	return a.client.Post(ctx, path, map[string]string{"password": password}, nil)
}
