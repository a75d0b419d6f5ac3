// Package google obtains a Google ID token for the backend's Google login.
//
// A terminal has no browser widget, so the OAuth2 device authorization flow
// is used: the user opens a URL on any device, enters a short code, and the
// client polls for the tokens. The ID token is verified against Google's
// keys before it is handed to the session store.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

const DefaultIssuer = "https://accounts.google.com"

var (
	ErrDisabled  = errors.New("google sign-in is not configured")
	ErrNoIDToken = errors.New("token response carries no id_token")
)

type Config struct {
	ClientID     string
	ClientSecret string
	// Issuer defaults to DefaultIssuer.
	Issuer string
}

// Claims are the identity fields read from a verified ID token.
type Claims struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// PromptFunc shows the verification URL and the code the user has to enter.
type PromptFunc func(verificationURL, userCode string)

type SignIn struct {
	cfg  Config
	http *http.Client
}

type Option func(*SignIn)

func WithHTTPClient(c *http.Client) Option {
	return func(s *SignIn) { s.http = c }
}

func New(cfg Config, opts ...Option) *SignIn {
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}
	s := &SignIn{cfg: cfg}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *SignIn) Enabled() bool {
	return s.cfg.ClientID != ""
}

// IDToken runs the device flow and returns the raw, verified ID token.
func (s *SignIn) IDToken(ctx context.Context, prompt PromptFunc) (string, *Claims, error) {
	if !s.Enabled() {
		return "", nil, ErrDisabled
	}

	if s.http != nil {
		ctx = oidc.ClientContext(ctx, s.http)
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.http)
	}

	provider, err := oidc.NewProvider(ctx, s.cfg.Issuer)
	if err != nil {
		return "", nil, fmt.Errorf("discover %s: %w", s.cfg.Issuer, err)
	}

	endpoint := provider.Endpoint()
	if endpoint.DeviceAuthURL == "" {
		var meta struct {
			DeviceAuthURL string `json:"device_authorization_endpoint"`
		}
		if err := provider.Claims(&meta); err != nil {
			return "", nil, fmt.Errorf("read provider metadata: %w", err)
		}
		endpoint.DeviceAuthURL = meta.DeviceAuthURL
	}

	conf := &oauth2.Config{
		ClientID:     s.cfg.ClientID,
		ClientSecret: s.cfg.ClientSecret,
		Endpoint:     endpoint,
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}

	da, err := conf.DeviceAuth(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("device authorization: %w", err)
	}

	if prompt != nil {
		url := da.VerificationURIComplete
		if url == "" {
			url = da.VerificationURI
		}
		prompt(url, da.UserCode)
	}

	tok, err := conf.DeviceAccessToken(ctx, da)
	if err != nil {
		return "", nil, fmt.Errorf("device token: %w", err)
	}

	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" {
		return "", nil, ErrNoIDToken
	}

	idToken, err := provider.Verifier(&oidc.Config{ClientID: s.cfg.ClientID}).Verify(ctx, raw)
	if err != nil {
		return "", nil, fmt.Errorf("verify id token: %w", err)
	}

	var claims Claims
	if err := idToken.Claims(&claims); err != nil {
		return "", nil, fmt.Errorf("read id token claims: %w", err)
	}

	return raw, &claims, nil
}
