package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/warrantyreminder/internal/client/client"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/config"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/credentials"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/docs"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/google"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/router"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/services"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/session"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/views"
	"github.com/dmitrijs2005/warrantyreminder/internal/filex"
	"github.com/dmitrijs2005/warrantyreminder/internal/logging"
)

// maxRedirects bounds how many session-driven navigations run after one
// command.
const maxRedirects = 3

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	session    *session.Store
	auth       services.AuthService
	warranties services.WarrantyService
	router     *router.Router
	notify     *views.Notifier
	env        views.Env
	dashboard  *views.Dashboard
	detail     *views.Detail
	google     *google.SignIn
	docs       *docs.Fetcher
	downloads  string

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	mu          sync.Mutex
	pending     string
	unsubscribe func()
}

// NewApp opens the local database under the configured data directory and
// wires the API client, services, session store and screens. in and out are
// the interactive streams, normally os.Stdin and os.Stdout.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	dataDir, err := resolveDataDir(c.DataDir)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dataDir, client.DatabaseFile))
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	downloads, err := filex.EnsureSubdDir(dataDir, "downloads")
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	tokens := credentials.NewStore(db)
	api := client.New(c.ServerBaseURL, tokens,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log),
	)

	as := services.NewAuthService(api)
	ws := services.NewWarrantyService(api)
	sess := session.NewStore(as, tokens, session.WithLogger(log))

	a := &App{
		config:     c,
		log:        log,
		db:         db,
		session:    sess,
		auth:       as,
		warranties: ws,
		notify:     views.NewNotifier(out),
		google: google.New(google.Config{
			ClientID:     c.GoogleClientID,
			ClientSecret: c.GoogleClientSecret,
		}),
		docs: docs.NewFetcher(&http.Client{Timeout: c.RequestTimeout}, docs.S3Config{
			Region:    c.S3Region,
			Endpoint:  c.S3Endpoint,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
		}),
		downloads: downloads,
		reader:    bufio.NewReader(in),
		out:       out,
		now:       time.Now,
	}

	a.env = views.Env{Warranties: ws, Notify: a.notify, Unauthorized: sess.Invalidate}
	a.dashboard = views.NewDashboard(a.env)
	a.detail = views.NewDetail(a.env)
	a.router = a.routes()
	a.unsubscribe = sess.Subscribe(a.onSessionEvent)

	return a, nil
}

func resolveDataDir(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return filex.EnsureSubdDir(dir, "")
	}
	return filex.EnsureSubdDir("", dir)
}

func (a *App) routes() *router.Router {
	r := router.New(router.NewGuard(a.session, a.out))

	r.Handle(router.PathWelcome, false, a.welcomeScreen)
	r.Handle(router.PathLogin, false, a.loginScreen)
	r.Handle(router.PathSignup, false, a.signupScreen)
	r.Handle(router.PathForgotPassword, false, a.forgotPasswordScreen)
	r.Handle(router.PathResetPassword, false, a.resetPasswordScreen)
	r.Handle(router.PathDashboard, true, a.dashboardScreen)
	r.Handle(router.PathCreate, true, a.createScreen)
	r.Handle(router.PathEdit, true, a.editScreen)
	r.Handle(router.PathDetail, true, a.detailScreen)

	return r
}

// Run validates the stored credential in the background, shows the welcome
// screen and blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	go a.session.Initialize(ctx)

	if err := a.Open(ctx, router.PathWelcome); err != nil {
		a.log.Debug(ctx, "welcome screen failed", "error", err)
	}

	runREPL(ctx, a, a.log, a.getStatus, a.reader)
}

// Close releases the router, the session subscription and the database.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	a.router.Close()
	if err := a.db.Close(); err != nil {
		a.log.Error(context.Background(), "error closing database", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.State().User != nil
}

// onSessionEvent turns session transitions into navigations. They run after
// the current command returns.
func (a *App) onSessionEvent(e session.Event) {
	a.log.Info(context.Background(), "session changed", "event", e.String())

	switch e {
	case session.EventLoggedIn:
		a.redirect(router.PathDashboard)
	case session.EventLoggedOut, session.EventSessionExpired:
		a.redirect(router.PathLogin)
	}
}

func (a *App) redirect(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = path
}

func (a *App) takeRedirect() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	p := a.pending
	a.pending = ""
	return p
}

// settle performs navigations queued while the last command ran.
func (a *App) settle(ctx context.Context) error {
	for i := 0; i < maxRedirects; i++ {
		path := a.takeRedirect()
		if path == "" {
			return nil
		}
		if err := a.router.Navigate(ctx, path); err != nil {
			return fmt.Errorf("navigate %s: %w", path, err)
		}
	}
	return nil
}

func onRoute(m *router.Match, pattern string) bool {
	return m != nil && m.Pattern == pattern
}
