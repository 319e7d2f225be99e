package scoring

import (
	"errors"
	"fmt"
	"strings"
)

// State rejection reasons, matched with errors.Is against a *StateError.
var (
	ErrVotingClosed   = errors.New("voting is currently closed")
	ErrDuplicateVote  = errors.New("already voted for this contestant")
	ErrScoreFinalized = errors.New("score has been finalized and can no longer be changed")
	ErrCategoryInUse  = errors.New("category still has contestants")
)

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Message string

	// Missing lists contestant names that block a finalize.
	Missing []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Missing, ", "))
	}
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an unknown contestant, category, judge or audience member.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// StateError reports an operation that is not allowed in the current state.
type StateError struct {
	Reason error
	Detail string
}

func (e *StateError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%v: %s", e.Reason, e.Detail)
	}
	return e.Reason.Error()
}

func (e *StateError) Unwrap() error { return e.Reason }

func NewStateError(reason error, detail string) *StateError {
	return &StateError{Reason: reason, Detail: detail}
}

// PersistenceError wraps a store failure. Nothing is retried.
type PersistenceError struct {
	Op         string
	Collection string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error: op=%s, collection=%s, err=%v", e.Op, e.Collection, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistenceError(op, collection string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Collection: collection, Err: err}
}
