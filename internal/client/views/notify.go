package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/warrantyreminder/internal/client/client"
	"github.com/dmitrijs2005/warrantyreminder/internal/client/services"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notification struct {
	Level   Level
	Message string
}

// Notifier prints one-line, non-blocking messages and keeps the last one.
type Notifier struct {
	mu   sync.Mutex
	out  io.Writer
	last *Notification
}

func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

func (n *Notifier) Success(msg string) { n.push(LevelSuccess, msg) }

func (n *Notifier) Error(msg string) { n.push(LevelError, msg) }

func (n *Notifier) push(level Level, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.last = &Notification{Level: level, Message: msg}
	if n.out == nil {
		return
	}
	switch level {
	case LevelSuccess:
		fmt.Fprintf(n.out, "[ok] %s\n", msg)
	default:
		fmt.Fprintf(n.out, "[error] %s\n", msg)
	}
}

// Last returns the most recent notification, if any.
func (n *Notifier) Last() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.last == nil {
		return Notification{}, false
	}
	return *n.last, true
}

// Env is what the data-backed views share.
type Env struct {
	Warranties services.WarrantyService
	Notify     *Notifier
	// Unauthorized is called when the backend rejects the credential.
	Unauthorized func(ctx context.Context)
}

// Fail reports a backend error. Cancelled requests belong to a screen the
// user already left and are dropped silently.
func (e Env) Fail(ctx context.Context, err error, fallback string) {
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return
	}
	if e.Notify != nil {
		e.Notify.Error(client.MessageOf(err, fallback))
	}
	if errors.Is(err, client.ErrUnauthorized) && e.Unauthorized != nil {
		e.Unauthorized(ctx)
	}
}

// Anonymous returns a copy that reports failures without touching the
// session. Forms used before sign-in take it: a 401 there is about the
// submitted data, not a stored credential.
func (e Env) Anonymous() Env {
	e.Unauthorized = nil
	return e
}

func (e Env) Succeed(msg string) {
	if e.Notify != nil {
		e.Notify.Success(msg)
	}
}
