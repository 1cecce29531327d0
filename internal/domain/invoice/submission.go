package invoice

import (
	"fmt"

	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
)

// State is a step of the submission flow.
type State string

const (
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailed     State = "failed"
)

var transitions = map[State][]State{
	StateEditing:    {StateValidating},
	StateValidating: {StateSubmitting, StateFailed},
	StateSubmitting: {StateSuccess, StateFailed},
	StateFailed:     {StateEditing},
}

// Submission tracks where a draft is in the
// Editing -> Validating -> Submitting -> Success | Failed (-> Editing) flow.
type Submission struct {
	state     State
	lastError string
}

// NewSubmission starts in Editing.
func NewSubmission() Submission {
	return Submission{state: StateEditing}
}

func (s *Submission) State() State { return s.state }

// LastError is the message of the most recent failure, cleared on success or edit.
func (s *Submission) LastError() string { return s.lastError }

// CanTransition reports whether the flow allows moving to next.
func (s *Submission) CanTransition(next State) bool {
	for _, allowed := range transitions[s.state] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s *Submission) transition(next State) error {
	if !s.CanTransition(next) {
		return fmt.Errorf("invoice submission: illegal transition %s -> %s", s.state, next)
	}
	s.state = next
	return nil
}

// Edit is called before every draft mutation. A failed submission returns to
// Editing; a running or finished one refuses the mutation.
func (s *Submission) Edit() error {
	switch s.state {
	case StateSubmitting, StateValidating:
		return apperror.ErrSubmitInProgress
	case StateSuccess:
		return apperror.ErrDraftSubmitted
	case StateFailed:
		s.lastError = ""
		return s.transition(StateEditing)
	}
	return nil
}

// Begin moves the draft into Validating.
func (s *Submission) Begin() error {
	if err := s.Edit(); err != nil {
		return err
	}
	return s.transition(StateValidating)
}

// Submit moves a validated draft into Submitting.
func (s *Submission) Submit() error {
	return s.transition(StateSubmitting)
}

// Succeed records a saved invoice.
func (s *Submission) Succeed() error {
	if err := s.transition(StateSuccess); err != nil {
		return err
	}
	s.lastError = ""
	return nil
}

// Fail records a validation or submission failure.
func (s *Submission) Fail(err error) {
	if s.CanTransition(StateFailed) {
		s.state = StateFailed
	}
	if err != nil {
		s.lastError = err.Error()
	}
}
