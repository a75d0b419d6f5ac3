// Package session holds the authentication state of the client.
//
// A Store is created once by the application and passed explicitly to the
// screens that need it. It never navigates: screens subscribe to its events
// and decide where to go.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/warrantyreminder/internal/client/models"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/services"
	"github.com/dmitrijs2005/warrantyreminder/internal/logging"
)

// ErrTokenExpired marks a stored token whose exp claim is already past.
var ErrTokenExpired = errors.New("stored token expired")

type Event int

const (
	EventLoggedIn Event = iota + 1
	EventLoggedOut
	EventSessionExpired
)

func (e Event) String() string {
	switch e {
	case EventLoggedIn:
		return "logged_in"
	case EventLoggedOut:
		return "logged_out"
	case EventSessionExpired:
		return "session_expired"
	default:
		return "unknown"
	}
}

// TokenStore persists the bearer credential between runs.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type Store struct {
	auth   services.AuthService
	tokens TokenStore
	log    logging.Logger
	now    func() time.Time

	// mu also serializes token writes so the stored token always matches
	// state. gen counts completed logins and logouts.
	mu    sync.Mutex
	state models.Session
	gen   uint64

	once  sync.Once
	ready chan struct{}

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns a store in the loading state. Call Initialize to resolve
// it.
func NewStore(auth services.AuthService, tokens TokenStore, opts ...Option) *Store {
	s := &Store{
		auth:   auth,
		tokens: tokens,
		log:    logging.Nop(),
		now:    time.Now,
		state:  models.Session{Loading: true},
		ready:  make(chan struct{}),
		subs:   map[int]func(Event){},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Initialize validates the stored token against the backend. It runs at
// most once per store; later calls return immediately. A failure clears the
// stored token and leaves the session without a user, unless a login or
// logout finished while the check was in flight. The newer outcome wins.
func (s *Store) Initialize(ctx context.Context) {
	s.once.Do(func() {
		defer close(s.ready)

		s.mu.Lock()
		start := s.gen
		s.mu.Unlock()

		token, user, err := s.validate(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.gen != start {
			s.log.Debug(ctx, "session changed during validation, result dropped")
			return
		}
		if err != nil {
			s.log.Info(ctx, "stored session rejected", "error", err)
			s.clearIfCurrent(ctx, token)
		}
		s.state = models.Session{User: user, Loading: false}
	})
}

// clearIfCurrent removes the stored token only if it is still token.
// Callers hold mu.
func (s *Store) clearIfCurrent(ctx context.Context, token string) {
	current, err := s.tokens.Token(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to read token", "error", err)
		return
	}
	if current != token {
		return
	}
	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear token", "error", err)
	}
}

// validate returns the token it checked along with the result.
func (s *Store) validate(ctx context.Context) (string, *models.UserProfile, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return "", nil, err
	}
	if token == "" {
		return "", nil, nil
	}

	if tokenExpired(token, s.now()) {
		return token, nil, ErrTokenExpired
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		return token, nil, err
	}
	return token, user, nil
}

func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

func (s *Store) Login(ctx context.Context, email, password string) error {
	res, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.establish(ctx, res)
}

func (s *Store) Signup(ctx context.Context, email, password string) error {
	res, err := s.auth.Signup(ctx, email, password)
	if err != nil {
		return err
	}
	return s.establish(ctx, res)
}

// LoginWithGoogle exchanges a Google ID token for a backend session.
func (s *Store) LoginWithGoogle(ctx context.Context, providerToken string) error {
	res, err := s.auth.LoginWithGoogle(ctx, providerToken)
	if err != nil {
		return err
	}
	return s.establish(ctx, res)
}

func (s *Store) establish(ctx context.Context, res *services.AuthResult) error {
	user := res.User
	if user == nil {
		user = &models.UserProfile{}
	}

	s.mu.Lock()
	if err := s.tokens.Set(ctx, res.Token); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persist token: %w", err)
	}
	s.state = models.Session{User: user, Loading: false}
	s.gen++
	s.mu.Unlock()

	s.emit(EventLoggedIn)
	return nil
}

// Logout clears the stored token and the user. A storage failure is logged,
// never returned.
func (s *Store) Logout(ctx context.Context) {
	s.drop(ctx)
	s.emit(EventLoggedOut)
}

// Invalidate is Logout for a credential the backend rejected.
func (s *Store) Invalidate(ctx context.Context) {
	s.drop(ctx)
	s.emit(EventSessionExpired)
}

func (s *Store) drop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear token", "error", err)
	}
	s.state = models.Session{User: nil, Loading: false}
	s.gen++
}

// State returns a snapshot of the session.
func (s *Store) State() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// Ready is closed once Initialize has finished.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Subscribe registers fn for session events and returns a function that
// removes it. fn runs synchronously on the goroutine that caused the event.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) emit(e Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}
