package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/warrantyreminder/internal/client/client"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/google"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/router"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/views"
	"github.com/dmitrijs2005/warrantyreminder/internal/filex"
)

// getSimpleText, getDefaultText, getPassword and confirm are indirections
// used to facilitate testing. They point to interactive input helpers and can
// be swapped in tests.
var (
	getSimpleText  = GetSimpleText
	getDefaultText = GetDefaultText
	getPassword    = GetPassword
	confirm        = Confirm
)

func (a *App) getStatus() string {
	st := a.session.State()
	switch {
	case st.Loading:
		return "(loading)"
	case st.User != nil:
		return fmt.Sprintf("(%s)", st.User.DisplayName())
	}
	return ""
}

// Open navigates to a client path such as /dashboard or /warranty/42.
func (a *App) Open(ctx context.Context, path string) error {
	return a.router.Navigate(ctx, path)
}

func (a *App) Login(ctx context.Context) error {
	return a.Open(ctx, router.PathLogin)
}

func (a *App) Signup(ctx context.Context) error {
	return a.Open(ctx, router.PathSignup)
}

func (a *App) Forgot(ctx context.Context) error {
	return a.Open(ctx, router.PathForgotPassword)
}

func (a *App) Reset(ctx context.Context, token string) error {
	return a.Open(ctx, router.Build(router.PathResetPassword, "token", token))
}

func (a *App) List(ctx context.Context) error {
	return a.Open(ctx, router.PathDashboard)
}

func (a *App) Create(ctx context.Context) error {
	return a.Open(ctx, router.PathCreate)
}

func (a *App) Edit(ctx context.Context, id string) error {
	return a.Open(ctx, router.Build(router.PathEdit, "id", id))
}

func (a *App) Show(ctx context.Context, id string) error {
	return a.Open(ctx, router.Build(router.PathDetail, "id", id))
}

// Google signs in through the device flow and exchanges the verified ID
// token for a backend session.
func (a *App) Google(ctx context.Context) error {
	if !a.google.Enabled() {
		fmt.Fprintln(a.out, "Google sign-in is not configured (set WR_GOOGLE_CLIENT_ID).")
		return google.ErrDisabled
	}

	raw, claims, err := a.google.IDToken(ctx, func(verificationURL, userCode string) {
		fmt.Fprintf(a.out, "To sign in with Google, visit %s and enter the code %s\n", verificationURL, userCode)
	})
	if err != nil {
		a.notify.Error("Google login failed")
		return err
	}
	a.log.Debug(ctx, "google identity verified", "subject", claims.Subject)

	if err := a.session.LoginWithGoogle(ctx, raw); err != nil {
		a.notify.Error(client.MessageOf(err, "Google login failed"))
		return err
	}
	a.notify.Success("Login successful!")
	return nil
}

// Logout never fails; the session event sends the user to the login screen.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.notify.Success("Logged out")
	return nil
}

func (a *App) WhoAmI(context.Context) error {
	st := a.session.State()
	switch {
	case st.Loading:
		fmt.Fprintln(a.out, router.LoadingPlaceholder)
	case st.User == nil:
		fmt.Fprintln(a.out, "Not signed in")
	default:
		fmt.Fprintf(a.out, "Signed in as %s <%s>\n", st.User.DisplayName(), st.User.Email)
	}
	return nil
}

// ensureDashboard makes the list screen current. It reports false when the
// guard sent the user elsewhere.
func (a *App) ensureDashboard(ctx context.Context) (bool, error) {
	if onRoute(a.router.Current(), router.PathDashboard) {
		return true, nil
	}
	if err := a.Open(ctx, router.PathDashboard); err != nil {
		return false, err
	}
	return onRoute(a.router.Current(), router.PathDashboard), nil
}

func (a *App) Search(ctx context.Context, query string) error {
	ok, err := a.ensureDashboard(ctx)
	if err != nil || !ok {
		return err
	}
	if err := a.dashboard.Search(ctx, query); err != nil {
		return err
	}
	a.dashboard.Render(a.out, a.now())
	return nil
}

func (a *App) Sort(ctx context.Context, key string) error {
	ok, err := a.ensureDashboard(ctx)
	if err != nil || !ok {
		return err
	}
	if err := a.dashboard.Sort(key); err != nil {
		if errors.Is(err, views.ErrUnknownSortKey) {
			fmt.Fprintf(a.out, "Unknown sort key %q. Available: %s\n", key, strings.Join(views.SortKeys(), ", "))
		}
		return err
	}
	a.dashboard.Render(a.out, a.now())
	return nil
}

// Delete asks for confirmation before anything is sent to the backend.
func (a *App) Delete(ctx context.Context, id string) error {
	ok, err := a.ensureDashboard(ctx)
	if err != nil || !ok {
		return err
	}

	if err := a.dashboard.RequestDelete(id); err != nil {
		fmt.Fprintf(a.out, "No warranty with id %s in the list\n", id)
		return err
	}

	name := id
	for _, w := range a.dashboard.Items() {
		if w.ID == id {
			name = w.ProductName
			break
		}
	}

	yes, err := confirm(a.reader, fmt.Sprintf("Delete warranty %q? This cannot be undone.", name), a.out)
	if err != nil || !yes {
		a.dashboard.CancelDelete()
		fmt.Fprintln(a.out, "Cancelled")
		return err
	}

	if err := a.dashboard.ConfirmDelete(ctx); err != nil {
		return err
	}
	a.dashboard.Render(a.out, a.now())
	return nil
}

// Download shows the record and saves its document under the downloads
// directory.
func (a *App) Download(ctx context.Context, id string) error {
	if err := a.Show(ctx, id); err != nil {
		return err
	}
	if !onRoute(a.router.Current(), router.PathDetail) {
		return nil
	}

	rec := a.detail.Record()
	if rec == nil {
		return views.ErrNotLoaded
	}
	if rec.WarrantyDocs == "" {
		fmt.Fprintln(a.out, "This warranty has no document attached.")
		return nil
	}

	data, name, err := a.docs.Fetch(ctx, rec.WarrantyDocs)
	if err != nil {
		a.notify.Error("Failed to download document")
		return err
	}

	path, err := filex.WriteUnique(a.downloads, name, data)
	if err != nil {
		a.notify.Error("Failed to save document")
		return err
	}
	a.notify.Success(fmt.Sprintf("Document saved to %s", path))
	return nil
}
