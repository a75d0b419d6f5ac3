package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/warrantyreminder/internal/client/client"
)

func TestLogin_ReturnsTokenAndUser(t *testing.T) {
	fc := newFakeClient()
	fc.responses["POST auth/login"] = `{"token":"jwt","user":{"_id":"u1","email":"a@b.com"}}`

	res, err := NewAuthService(fc).Login(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "jwt", res.Token)
	assert.Equal(t, "u1", res.User.ID)
	assert.Equal(t, credentials{Email: "a@b.com", Password: "secret1"}, fc.bodies["POST auth/login"])
}

func TestSignup_UsesSignupEndpoint(t *testing.T) {
	fc := newFakeClient()
	fc.responses["POST auth/signup"] = `{"token":"jwt","user":{"email":"a@b.com"}}`

	_, err := NewAuthService(fc).Signup(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, []string{"POST auth/signup"}, fc.calls)
}

func TestLoginWithGoogle_SendsProviderToken(t *testing.T) {
	fc := newFakeClient()
	fc.responses["POST auth/google"] = `{"token":"jwt","user":{"email":"g@b.com"}}`

	_, err := NewAuthService(fc).LoginWithGoogle(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"token": "id-token"}, fc.bodies["POST auth/google"])
}

func TestLogin_MissingToken(t *testing.T) {
	fc := newFakeClient()
	fc.responses["POST auth/login"] = `{"user":{"email":"a@b.com"}}`

	_, err := NewAuthService(fc).Login(context.Background(), "a@b.com", "secret1")
	require.ErrorIs(t, err, ErrNoToken)
}

func TestLogin_ErrorWrapped(t *testing.T) {
	fc := newFakeClient()
	fc.errs["POST auth/login"] = &client.APIError{Status: 401, Message: "Invalid credentials", Kind: client.ErrUnauthorized}

	_, err := NewAuthService(fc).Login(context.Background(), "a@b.com", "bad")
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, "Invalid credentials", client.MessageOf(err, "x"))
}

func TestMe_Envelope(t *testing.T) {
	fc := newFakeClient()
	fc.responses["GET auth/me"] = `{"user":{"id":"u1","email":"a@b.com"}}`

	u, err := NewAuthService(fc).Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", u.Email)
}

func TestMe_BareProfile(t *testing.T) {
	fc := newFakeClient()
	fc.responses["GET auth/me"] = `{"_id":"u1","email":"a@b.com"}`

	u, err := NewAuthService(fc).Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
}

func TestMe_EmptyProfile(t *testing.T) {
	fc := newFakeClient()
	fc.responses["GET auth/me"] = `{}`

	_, err := NewAuthService(fc).Me(context.Background())
	require.Error(t, err)
}

func TestForgotAndResetPassword(t *testing.T) {
	fc := newFakeClient()
	svc := NewAuthService(fc)

	require.NoError(t, svc.ForgotPassword(context.Background(), "a@b.com"))
	require.NoError(t, svc.ResetPassword(context.Background(), "tok/en", "newpass"))

	assert.Equal(t, []string{"POST auth/forgot-password", "POST auth/reset-password/tok%2Fen"}, fc.calls)
	assert.Equal(t, map[string]string{"password": "newpass"}, fc.bodies["POST auth/reset-password/tok%2Fen"])
}

func TestAuthService_OverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body["email"])
		_, _ = w.Write([]byte(`{"token":"jwt","user":{"_id":"u1","email":"a@b.com"}}`))
	}))
	defer srv.Close()

	svc := NewAuthService(client.New(srv.URL+"/api", nil))
	res, err := svc.Login(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "jwt", res.Token)
}
