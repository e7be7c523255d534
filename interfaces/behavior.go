// Package interfaces defines extensible interfaces for action behaviors.
// Each behavior named in a chain definition (e.g. log, fail) must be
// registered here before a chain is built.
package interfaces

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mfulz/actionchain/internal/chainconfig"
	"github.com/mfulz/actionchain/responder"
	"go.uber.org/zap"
)

// Behavior builds the local handler for one declared action.
//
// The returned handler's result is ignored when the action is declared with
// bubble: true; the chain builder then returns true on its behalf.
type Behavior interface {
	Handler(owner *responder.Responder, spec chainconfig.Action, log *zap.Logger) (responder.HandlerFunc, error)
}

// BehaviorFunc adapts a function to Behavior.
type BehaviorFunc func(owner *responder.Responder, spec chainconfig.Action, log *zap.Logger) (responder.HandlerFunc, error)

// Handler calls f.
func (f BehaviorFunc) Handler(owner *responder.Responder, spec chainconfig.Action, log *zap.Logger) (responder.HandlerFunc, error) {
	return f(owner, spec, log)
}

var (
	behaviorsMu         sync.RWMutex
	registeredBehaviors = make(map[string]Behavior)
)

// RegisterBehavior adds a new behavior to the global registry under a unique name.
func RegisterBehavior(name string, b Behavior) {
	behaviorsMu.Lock()
	defer behaviorsMu.Unlock()
	if _, exists := registeredBehaviors[name]; exists {
		panic(fmt.Sprintf("behavior already registered: %s", name))
	}
	registeredBehaviors[name] = b
}

// GetBehavior retrieves a previously registered behavior by name.
func GetBehavior(name string) (Behavior, error) {
	behaviorsMu.RLock()
	defer behaviorsMu.RUnlock()
	b, ok := registeredBehaviors[name]
	if !ok {
		return nil, fmt.Errorf("no behavior registered with name: %s", name)
	}
	return b, nil
}

// Behaviors lists the registered behavior names, sorted.
func Behaviors() []string {
	behaviorsMu.RLock()
	defer behaviorsMu.RUnlock()
	names := make([]string, 0, len(registeredBehaviors))
	for name := range registeredBehaviors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
