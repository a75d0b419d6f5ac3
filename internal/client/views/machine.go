package views

import (
	"errors"
	"sync"
)

var ErrSubmitInFlight = errors.New("submit already in progress")

// FormState is the submit lifecycle shared by the forms:
// idle -> validating -> submitting -> success | idle (with error).
type FormState string

const (
	StateIdle       FormState = "idle"
	StateValidating FormState = "validating"
	StateSubmitting FormState = "submitting"
	StateSuccess    FormState = "success"
)

type machine struct {
	mu      sync.Mutex
	state   FormState
	lastErr error
}

func (m *machine) State() FormState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == "" {
		return StateIdle
	}
	return m.state
}

// Err is the error of the last failed submit, cleared by the next one.
func (m *machine) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// begin moves to validating, runs check and then moves to submitting. It
// refuses while a submit is in flight.
func (m *machine) begin(check func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	m.state = StateValidating
	m.lastErr = nil

	if err := check(); err != nil {
		m.state = StateIdle
		m.lastErr = err
		return err
	}

	m.state = StateSubmitting
	return nil
}

func (m *machine) end(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.state = StateIdle
		m.lastErr = err
		return err
	}
	m.state = StateSuccess
	return nil
}
