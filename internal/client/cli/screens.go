package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/common-nighthawk/go-figure"

	"github.com/dmitrijs2005/warrantyreminder/internal/client/client"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/router"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/views"
	"github.com/dmitrijs2005/warrantyreminder/internal/common"
)

const appName = "Warranty Reminder"

func (a *App) welcomeScreen(context.Context, map[string]string) error {
	fmt.Fprintln(a.out, figure.NewFigure(appName, "", true).String())
	fmt.Fprintln(a.out, "Keep track of your product warranties and never miss an expiry date.")
	fmt.Fprintln(a.out, helpText(a.isLoggedIn()))
	return nil
}

func (a *App) loginScreen(ctx context.Context, _ map[string]string) error {
	fmt.Fprintln(a.out, "Log in to your account")
	if a.google.Enabled() {
		fmt.Fprintln(a.out, "Tip: use 'google' to sign in with Google, 'forgot' if you lost your password.")
	}
	return a.authenticate(ctx, a.session.Login, "Login successful!", "Login failed")
}

func (a *App) signupScreen(ctx context.Context, _ map[string]string) error {
	fmt.Fprintln(a.out, "Create an account")
	return a.authenticate(ctx, a.session.Signup, "Signup successful!", "Signup failed")
}

// authenticate runs the email/password form. Field errors are shown as soon
// as a field is entered and again when submit rejects the form.
func (a *App) authenticate(ctx context.Context, fn views.AuthFunc, okMsg, failMsg string) error {
	form := views.NewAuthForm()

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	form.SetEmail(email)
	if msg, ok := form.Errors()["email"]; ok {
		fmt.Fprintf(a.out, "  email %s\n", msg)
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	form.SetPassword(string(password))

	err = form.Submit(ctx, fn)
	var fe views.FieldErrors
	switch {
	case errors.As(err, &fe):
		a.printFieldErrors(fe)
		return err
	case err != nil:
		a.notify.Error(client.MessageOf(err, failMsg))
		return err
	}

	a.notify.Success(okMsg)
	return nil
}

func (a *App) forgotPasswordScreen(ctx context.Context, _ map[string]string) error {
	form := views.NewForgotPasswordForm(a.auth, a.env)

	email, err := getSimpleText(a.reader, "Enter the email of your account", a.out)
	if err != nil {
		return err
	}
	form.SetEmail(email)

	return a.showFieldErrors(form.Submit(ctx))
}

func (a *App) resetPasswordScreen(ctx context.Context, params map[string]string) error {
	form := views.NewResetPasswordForm(a.auth, a.env, params["token"])

	fmt.Fprintln(a.out, "Choose a new password")
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	form.SetPassword(string(password))

	if err := a.showFieldErrors(form.Submit(ctx)); err != nil {
		return err
	}
	a.redirect(router.PathLogin)
	return nil
}

func (a *App) showFieldErrors(err error) error {
	var fe views.FieldErrors
	if errors.As(err, &fe) {
		a.printFieldErrors(fe)
	}
	return err
}

func (a *App) printFieldErrors(fe views.FieldErrors) {
	fmt.Fprintln(a.out, "Please fix the following fields:")
	for _, name := range slices.Sorted(maps.Keys(fe)) {
		fmt.Fprintf(a.out, "  %s: %s\n", name, fe[name])
	}
}
