package router

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/warrantyreminder/internal/client/models"
)

const LoadingPlaceholder = "Loading session..."

// SessionState is the part of the session store the guard reads.
type SessionState interface {
	State() models.Session
	Ready() <-chan struct{}
}

// Guard gates protected screens on the session state.
type Guard struct {
	session   SessionState
	out       io.Writer
	loginPath string
}

func NewGuard(session SessionState, out io.Writer) *Guard {
	return &Guard{session: session, out: out, loginPath: PathLogin}
}

// Check blocks until the session is resolved. While it is loading only the
// placeholder is printed. It returns the path to redirect to, or "" when the
// protected screen may run.
func (g *Guard) Check(ctx context.Context) (string, error) {
	if g.session.State().Loading {
		fmt.Fprintln(g.out, LoadingPlaceholder)

		select {
		case <-g.session.Ready():
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if g.session.State().User == nil {
		return g.loginPath, nil
	}
	return "", nil
}
