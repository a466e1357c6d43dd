// Package ask implements the valentine_ask interaction: the
// answer state machine, response recording, and the evasive "no"
// button placement.
package ask

import (
	"context"
	"errors"
	"fmt"

	"github.com/giftloom/core/internal/models"
)

// ErrInvalidTransition is returned when a flow method is called in a
// state that does not permit it.
var ErrInvalidTransition = errors.New("invalid state transition")

// State of one ask-flow instance.
type State string

const (
	StateAsking     State = "asking"
	StateAnswering  State = "answering"
	StateSubmitting State = "submitting"
	StateAnswered   State = "answered"
)

// ResponseWriter persists one visitor response.
type ResponseWriter interface {
	Insert(ctx context.Context, giftSiteID string, kind models.ResponseKind, message, date *string) error
}

// Flow drives one view instance of a valentine_ask page. Yes/maybe
// answers detour through an optional message-and-date form; a no
// answer submits immediately and never collects either. Answered is
// terminal.
type Flow struct {
	giftSiteID string
	writer     ResponseWriter

	state   State
	kind    models.ResponseKind
	message string
	date    string
}

func NewFlow(giftSiteID string, writer ResponseWriter) *Flow {
	return &Flow{giftSiteID: giftSiteID, writer: writer, state: StateAsking}
}

func (f *Flow) State() State { return f.state }

// Kind returns the selected response kind, empty before selection.
func (f *Flow) Kind() models.ResponseKind { return f.kind }

// Select picks an answer from the Asking state. Yes and maybe move to
// the form; no submits right away with no message or date.
func (f *Flow) Select(ctx context.Context, kind models.ResponseKind) error {
	if f.state != StateAsking {
		return fmt.Errorf("%w: select from %s", ErrInvalidTransition, f.state)
	}
	if !kind.Valid() {
		return fmt.Errorf("unknown response kind %q", kind)
	}

	f.kind = kind
	if kind == models.ResponseNo {
		return f.submit(ctx, StateAsking)
	}
	f.state = StateAnswering
	return nil
}

// SetMessage records the optional free-text message while answering.
func (f *Flow) SetMessage(message string) error {
	if f.state != StateAnswering {
		return fmt.Errorf("%w: set message from %s", ErrInvalidTransition, f.state)
	}
	f.message = message
	return nil
}

// SetDate records the optional date while answering.
func (f *Flow) SetDate(date string) error {
	if f.state != StateAnswering {
		return fmt.Errorf("%w: set date from %s", ErrInvalidTransition, f.state)
	}
	f.date = date
	return nil
}

// Back abandons the form and returns to Asking, dropping any entered
// message and date.
func (f *Flow) Back() error {
	if f.state != StateAnswering {
		return fmt.Errorf("%w: back from %s", ErrInvalidTransition, f.state)
	}
	f.state = StateAsking
	f.kind = ""
	f.message = ""
	f.date = ""
	return nil
}

// Submit persists the yes/maybe answer with whatever was entered.
func (f *Flow) Submit(ctx context.Context) error {
	if f.state != StateAnswering {
		return fmt.Errorf("%w: submit from %s", ErrInvalidTransition, f.state)
	}
	return f.submit(ctx, StateAnswering)
}

// submit performs the single write. On failure the flow returns to
// recoverTo so the visitor can retry; it never sticks in Submitting.
func (f *Flow) submit(ctx context.Context, recoverTo State) error {
	f.state = StateSubmitting

	var message, date *string
	if f.message != "" {
		m := f.message
		message = &m
	}
	if f.date != "" {
		d := f.date
		date = &d
	}

	if err := f.writer.Insert(ctx, f.giftSiteID, f.kind, message, date); err != nil {
		f.state = recoverTo
		return fmt.Errorf("record response: %w", err)
	}

	f.state = StateAnswered
	return nil
}
