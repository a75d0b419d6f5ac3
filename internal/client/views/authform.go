package views

import (
	"context"
	"strings"
	"sync"
)

// AuthFunc performs the network side of login or signup.
type AuthFunc func(ctx context.Context, email, password string) error

type authFields struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=64"`
}

// AuthForm is the email/password form of the login and signup screens.
// Setters re-validate as the user types and record per-field errors without
// rejecting the input.
type AuthForm struct {
	machine

	mu      sync.Mutex
	fields  authFields
	touched map[string]bool
	errs    FieldErrors
}

func NewAuthForm() *AuthForm {
	return &AuthForm{touched: map[string]bool{}, errs: FieldErrors{}}
}

func (f *AuthForm) SetEmail(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.Email = strings.TrimSpace(v)
	f.touched["email"] = true
	f.revalidate()
}

func (f *AuthForm) SetPassword(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.Password = v
	f.touched["password"] = true
	f.revalidate()
}

func (f *AuthForm) revalidate() {
	all := check(f.fields)
	f.errs = FieldErrors{}
	for name, msg := range all {
		if f.touched[name] {
			f.errs[name] = msg
		}
	}
}

// Errors returns the current per-field errors.
func (f *AuthForm) Errors() FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(FieldErrors, len(f.errs))
	for k, v := range f.errs {
		out[k] = v
	}
	return out
}

// Submit validates every field and, when they pass, calls fn. Validation
// failures return FieldErrors (matching ErrValidation) and fn is not called.
func (f *AuthForm) Submit(ctx context.Context, fn AuthFunc) error {
	var email, password string

	err := f.begin(func() error {
		f.mu.Lock()
		defer f.mu.Unlock()

		f.touched["email"], f.touched["password"] = true, true
		f.revalidate()
		if len(f.errs) > 0 {
			out := make(FieldErrors, len(f.errs))
			for k, v := range f.errs {
				out[k] = v
			}
			return out
		}
		email, password = f.fields.Email, f.fields.Password
		return nil
	})
	if err != nil {
		return err
	}

	return f.end(fn(ctx, email, password))
}
