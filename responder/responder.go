package responder

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// TargetKey is the property holding a responder's target.
const TargetKey = "target"

// Sender is implemented by anything that can take part in a responder chain.
type Sender interface {
	Send(name string, args ...any) error
}

// HandlerFunc handles a named action locally. Returning exactly true lets
// the action bubble on to the target; any other value stops it.
type HandlerFunc func(args ...any) (any, error)

// Responder is a link in a responder chain.
type Responder struct {
	mu      sync.RWMutex
	name    string
	actions map[string]HandlerFunc
	attrs   map[string]any
	props   map[string]any
	trigger Trigger
	log     *zap.Logger
}

// Option configures a Responder.
type Option func(*Responder)

// WithLogger sets the logger used to trace dispatch.
func WithLogger(l *zap.Logger) Option {
	return func(r *Responder) {
		if l != nil {
			r.log = l
		}
	}
}

// WithTarget sets the responder's target.
func WithTarget(target any) Option {
	return func(r *Responder) {
		r.props[TargetKey] = target
	}
}

// WithTrigger replaces the default TargetTrigger.
func WithTrigger(t Trigger) Option {
	return func(r *Responder) {
		r.trigger = t
	}
}

// New creates a Responder. The name is only used for logs and errors.
func New(name string, opts ...Option) *Responder {
	r := &Responder{
		name:    name,
		actions: make(map[string]HandlerFunc),
		attrs:   make(map[string]any),
		props:   make(map[string]any),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the responder's name.
func (r *Responder) Name() string {
	return r.name
}

func (r *Responder) String() string {
	return fmt.Sprintf("<responder:%s>", r.name)
}

// On registers h as the local handler for action, replacing any previous one.
func (r *Responder) On(action string, h HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[action] = h
}

// OnSelf registers a handler that receives the responder as its receiver.
func (r *Responder) OnSelf(action string, h func(self *Responder, args ...any) (any, error)) {
	r.On(action, func(args ...any) (any, error) {
		return h(r, args...)
	})
}

// Off removes the local handler for action.
func (r *Responder) Off(action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.actions, action)
}

// Handles reports whether a local handler exists for action.
func (r *Responder) Handles(action string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.actions[action]
	return ok
}

// SetAttr sets a bound attribute. Attributes shadow properties of the same
// name during SendAction.
func (r *Responder) SetAttr(key string, v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attrs[key] = v
}

// SetProp sets a plain property.
func (r *Responder) SetProp(key string, v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.props[key] = v
}

// SetTarget sets the next link of the chain. A nil target ends the chain.
func (r *Responder) SetTarget(target any) {
	r.SetProp(TargetKey, target)
}

// Target returns the current target, or nil. A typed nil such as a nil
// *Responder counts as no target.
func (r *Responder) Target() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	target := r.props[TargetKey]
	if isNil(target) {
		return nil
	}
	return target
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Interface, reflect.Slice, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// SetTrigger replaces the trigger used for named actions in SendAction.
func (r *Responder) SetTrigger(t Trigger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trigger = t
}

// Lookup returns the value bound to key, checking attributes before
// properties. A nil or empty string attribute falls through to the property.
func (r *Responder) Lookup(key string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v, ok := r.attrs[key]; ok && v != nil && v != "" {
		return v, true
	}
	v, ok := r.props[key]
	return v, ok
}

// Send delivers the named action into the chain starting at r.
//
// The local handler runs first. Unless it returns exactly true the action
// stops there. Otherwise, or when there is no local handler, the action is
// forwarded with the same arguments to the target. An action with neither a
// handler nor a target fails with a *NoHandlerError.
func (r *Responder) Send(name string, args ...any) error {
	r.mu.RLock()
	h, handled := r.actions[name]
	r.mu.RUnlock()

	log := r.log.With(zap.String("responder", r.name), zap.String("action", name))

	if handled {
		log.Debug("invoking local handler", zap.Int("args", len(args)))
		ret, err := h(args...)
		if err != nil {
			return err
		}
		if ret != true {
			return nil
		}
		log.Debug("handler asked to bubble")
	}

	target := r.Target()
	if target == nil {
		if handled {
			return nil
		}
		return &NoHandlerError{Owner: r.String(), Action: name}
	}

	next, ok := target.(Sender)
	if !ok {
		return &InvalidTargetError{Owner: r.String(), Target: target}
	}
	log.Debug("forwarding to target", zap.Stringer("target", stringer(target)))
	return next.Send(name, args...)
}

type stringValue struct{ v any }

func (s stringValue) String() string {
	if st, ok := s.v.(fmt.Stringer); ok {
		return st.String()
	}
	return fmt.Sprintf("%T", s.v)
}

func stringer(v any) fmt.Stringer {
	return stringValue{v}
}
