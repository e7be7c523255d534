package responder

import (
	"go.uber.org/zap"
)

// DefaultActionKey is used by SendAction when no key is given.
const DefaultActionKey = "action"

// Func is an action that is invoked directly instead of being sent by name.
type Func func(args ...any) error

// Invoker is implemented by action values that know how to run themselves.
type Invoker interface {
	Invoke(args ...any) error
}

// Resolver wraps an action reference whose value is computed on demand.
type Resolver interface {
	Value() any
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func() any

// Value calls f.
func (f ResolverFunc) Value() any { return f() }

// Payload is what a Trigger receives for a named action.
type Payload struct {
	Action  string
	Context []any
}

// Trigger delivers a named action on behalf of a responder.
type Trigger interface {
	TriggerAction(owner *Responder, p Payload) error
}

// TriggerFunc adapts a function to Trigger.
type TriggerFunc func(owner *Responder, p Payload) error

// TriggerAction calls f.
func (f TriggerFunc) TriggerAction(owner *Responder, p Payload) error {
	return f(owner, p)
}

// TargetTrigger sends the action to the owner's target. It is used when a
// responder has no trigger of its own.
type TargetTrigger struct{}

// TriggerAction forwards p to the owner's target.
func (TargetTrigger) TriggerAction(owner *Responder, p Payload) error {
	target := owner.Target()
	if target == nil {
		return &noTargetError{owner: owner.String(), action: p.Action}
	}
	next, ok := target.(Sender)
	if !ok {
		return &InvalidTargetError{Owner: owner.String(), Target: target}
	}
	return next.Send(p.Action, p.Context...)
}

type noTargetError struct {
	owner  string
	action string
}

func (e *noTargetError) Error() string {
	return "cannot trigger " + e.action + ": " + e.owner + " has no target"
}

func (e *noTargetError) Is(target error) bool { return target == ErrNoTarget }

// SendAction resolves the action bound to key and runs it with contexts.
//
// An empty key means DefaultActionKey. The value is looked up as an
// attribute first and as a property second; a Resolver is replaced by its
// value. A nil or empty result is a no-op. Callables (Func, HandlerFunc,
// Invoker and their plain func forms) are invoked directly with contexts and
// nothing else happens. A string is handed to the
// responder's Trigger as the action name with contexts as payload. Any other
// value yields an *InvalidActionError.
func (r *Responder) SendAction(key string, contexts ...any) error {
	if key == "" {
		key = DefaultActionKey
	}

	v, _ := r.Lookup(key)
	if res, ok := v.(Resolver); ok {
		v = res.Value()
	}

	log := r.log.With(zap.String("responder", r.name), zap.String("key", key))

	switch action := v.(type) {
	case nil:
		log.Debug("no action bound")
		return nil
	case string:
		if action == "" {
			log.Debug("no action bound")
			return nil
		}
		r.mu.RLock()
		trigger := r.trigger
		r.mu.RUnlock()
		if trigger == nil {
			trigger = TargetTrigger{}
		}
		log.Debug("triggering named action", zap.String("action", action))
		return trigger.TriggerAction(r, Payload{Action: action, Context: contexts})
	case Func:
		if action == nil {
			return nil
		}
		return action(contexts...)
	case func(...any) error:
		if action == nil {
			return nil
		}
		return action(contexts...)
	case func(...any):
		if action == nil {
			return nil
		}
		action(contexts...)
		return nil
	case HandlerFunc:
		return invokeHandler(action, contexts)
	case func(...any) (any, error):
		return invokeHandler(action, contexts)
	case Invoker:
		return action.Invoke(contexts...)
	default:
		return &InvalidActionError{Owner: r.String(), Key: key, Value: v}
	}
}

// invokeHandler runs a handler as a plain callable. Its return value only
// matters to Send, so it is dropped here.
func invokeHandler(h HandlerFunc, contexts []any) error {
	if h == nil {
		return nil
	}
	_, err := h(contexts...)
	return err
}
