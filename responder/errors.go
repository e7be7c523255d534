package responder

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHandler is matched by errors returned from Send when neither a
	// local handler nor a target could take the action.
	ErrNoHandler = errors.New("no action handler")

	// ErrInvalidAction is matched by errors returned from SendAction when the
	// resolved action is neither nil, a string nor a callable.
	ErrInvalidAction = errors.New("invalid action")

	// ErrInvalidTarget is matched when a responder's target does not
	// implement Sender.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrNoTarget is matched when a named action is triggered on a responder
	// without a target.
	ErrNoTarget = errors.New("no target")
)

// NoHandlerError reports an action that fell off the end of the chain.
type NoHandlerError struct {
	Owner  string
	Action string
}

func (e *NoHandlerError) Error() string {
	return fmt.Sprintf("%s had no action handler for: %s", e.Owner, e.Action)
}

func (e *NoHandlerError) Is(target error) bool { return target == ErrNoHandler }

// InvalidActionError reports a resolved action of an unsupported type.
type InvalidActionError struct {
	Owner string
	Key   string
	Value any
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("the action %q that %s tried to send must be nil, a string, an Invoker or a func(...any) returning nothing, an error or (any, error), got %T (%v)",
		e.Key, e.Owner, e.Value, e.Value)
}

func (e *InvalidActionError) Is(target error) bool { return target == ErrInvalidAction }

// InvalidTargetError reports a target that cannot receive actions.
type InvalidTargetError struct {
	Owner  string
	Target any
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("the target for %s (%T) does not have a Send method", e.Owner, e.Target)
}

func (e *InvalidTargetError) Is(target error) bool { return target == ErrInvalidTarget }
