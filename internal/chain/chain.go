// Package chain builds responder chains from a chain definition and keeps
// them addressable by name.
package chain

import (
	"errors"
	"fmt"

	"github.com/mfulz/actionchain/interfaces"
	"github.com/mfulz/actionchain/internal/acl"
	"github.com/mfulz/actionchain/internal/chainconfig"
	"github.com/mfulz/actionchain/protocol"
	"github.com/mfulz/actionchain/responder"
	"go.uber.org/zap"

	_ "github.com/mfulz/actionchain/internal/behavior"
)

// ErrUnknownResponder is returned when addressing an undeclared responder.
var ErrUnknownResponder = errors.New("unknown responder")

// Chain holds the responders built from one definition.
type Chain struct {
	order      []string
	responders map[string]*responder.Responder
	specs      map[string]chainconfig.Responder
	journal    *Journal
	log        *zap.Logger
}

// Build creates every declared responder, wires targets and installs the
// declared actions and bindings.
func Build(cfg *chainconfig.Config, log *zap.Logger) (*Chain, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Chain{
		responders: make(map[string]*responder.Responder, len(cfg.Responders)),
		specs:      make(map[string]chainconfig.Responder, len(cfg.Responders)),
		journal:    NewJournal(cfg.Journal.Size),
		log:        log,
	}

	for _, spec := range cfg.Responders {
		c.order = append(c.order, spec.Name)
		c.specs[spec.Name] = spec
		c.responders[spec.Name] = responder.New(spec.Name, responder.WithLogger(log.Named("responder")))
	}

	for _, spec := range cfg.Responders {
		r := c.responders[spec.Name]
		if spec.Target != "" {
			r.SetTarget(c.responders[spec.Target])
		}
		for _, b := range spec.Bindings {
			if b.Attr {
				r.SetAttr(b.Key, b.Action)
			} else {
				r.SetProp(b.Key, b.Action)
			}
		}
		for _, action := range spec.Actions {
			h, err := c.handler(r, action)
			if err != nil {
				return nil, fmt.Errorf("responder '%s': %w", spec.Name, err)
			}
			r.On(action.Name, h)
		}
	}

	log.Debug("chain built", zap.Strings("responders", c.order))
	return c, nil
}

// handler resolves the declared behavior and wraps it so every call is
// journaled and bubble: true is honoured.
func (c *Chain) handler(r *responder.Responder, spec chainconfig.Action) (responder.HandlerFunc, error) {
	b, err := interfaces.GetBehavior(spec.Behavior)
	if err != nil {
		return nil, fmt.Errorf("action '%s': %w", spec.Name, err)
	}
	inner, err := b.Handler(r, spec, c.log.Named("behavior"))
	if err != nil {
		return nil, err
	}

	name := r.Name()
	return func(args ...any) (any, error) {
		ret, err := inner(args...)
		entry := protocol.JournalEntry{
			Responder: name,
			Action:    spec.Name,
			Args:      args,
			Bubbled:   err == nil && spec.Bubble,
		}
		if err != nil {
			entry.Error = err.Error()
		}
		c.journal.Record(entry)

		if err != nil {
			return nil, err
		}
		if spec.Bubble {
			return true, nil
		}
		return ret, nil
	}, nil
}

// Get returns the responder declared under name.
func (c *Chain) Get(name string) (*responder.Responder, bool) {
	r, ok := c.responders[name]
	return r, ok
}

// Names returns the responder names in declaration order.
func (c *Chain) Names() []string {
	return append([]string(nil), c.order...)
}

// Rules returns the ACL rules declared for the named responder.
func (c *Chain) Rules(name string) acl.RuleSet {
	return c.specs[name].ACLs
}

// Journal returns the journal of handled actions.
func (c *Chain) Journal() *Journal {
	return c.journal
}

// Describe summarizes the chain for listing.
func (c *Chain) Describe() []protocol.ResponderInfo {
	out := make([]protocol.ResponderInfo, 0, len(c.order))
	for _, name := range c.order {
		spec := c.specs[name]
		info := protocol.ResponderInfo{Name: name, Target: spec.Target}
		for _, a := range spec.Actions {
			info.Actions = append(info.Actions, a.Name)
		}
		out = append(out, info)
	}
	return out
}

// Send delivers an action into the chain at the named responder.
func (c *Chain) Send(at, action string, args ...any) error {
	r, ok := c.Get(at)
	if !ok {
		return fmt.Errorf("%w '%s'", ErrUnknownResponder, at)
	}
	return r.Send(action, args...)
}

// SendAction runs the action bound to key on the named responder.
func (c *Chain) SendAction(at, key string, args ...any) error {
	r, ok := c.Get(at)
	if !ok {
		return fmt.Errorf("%w '%s'", ErrUnknownResponder, at)
	}
	return r.SendAction(key, args...)
}
