package views

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/warrantyreminder/internal/client/services"
)

// ForgotPasswordForm requests a reset link for an email address.
type ForgotPasswordForm struct {
	machine
	env    Env
	auth   services.AuthService
	fields struct {
		Email string `json:"email" validate:"required,email"`
	}
}

func NewForgotPasswordForm(auth services.AuthService, env Env) *ForgotPasswordForm {
	return &ForgotPasswordForm{auth: auth, env: env.Anonymous()}
}

func (f *ForgotPasswordForm) SetEmail(v string) {
	f.fields.Email = strings.TrimSpace(v)
}

func (f *ForgotPasswordForm) Submit(ctx context.Context) error {
	if err := f.begin(func() error { return nilIfEmpty(check(f.fields)) }); err != nil {
		return err
	}

	if err := f.auth.ForgotPassword(ctx, f.fields.Email); err != nil {
		f.env.Fail(ctx, err, "Failed to send reset link")
		return f.end(err)
	}

	f.env.Succeed("Reset link sent to your email")
	f.fields.Email = ""
	return f.end(nil)
}

// ResetPasswordForm sets a new password using the token from a reset link.
type ResetPasswordForm struct {
	machine
	env    Env
	auth   services.AuthService
	token  string
	fields struct {
		Password string `json:"password" validate:"required,min=6,max=64"`
	}
}

func NewResetPasswordForm(auth services.AuthService, env Env, token string) *ResetPasswordForm {
	return &ResetPasswordForm{auth: auth, env: env.Anonymous(), token: token}
}

func (f *ResetPasswordForm) SetPassword(v string) {
	f.fields.Password = v
}

func (f *ResetPasswordForm) Submit(ctx context.Context) error {
	if err := f.begin(func() error { return nilIfEmpty(check(f.fields)) }); err != nil {
		return err
	}

	if err := f.auth.ResetPassword(ctx, f.token, f.fields.Password); err != nil {
		f.env.Fail(ctx, err, "Reset failed")
		return f.end(err)
	}

	f.env.Succeed("Password reset successfully")
	return f.end(nil)
}

// nilIfEmpty keeps a nil FieldErrors from turning into a non-nil error.
func nilIfEmpty(fe FieldErrors) error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}
