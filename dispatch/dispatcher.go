// Package dispatch provides a central registry and dispatcher for protocol-based
// commands handled by the chaind daemon.
package dispatch

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/mfulz/actionchain/protocol"
	"go.uber.org/zap"
)

// HandlerFunc defines the signature of a command handler.
type HandlerFunc func(req *protocol.Request) *protocol.Response

// Dispatcher maps command strings to their handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
	log      *zap.Logger
}

// New creates a new Dispatcher. A nil logger disables logging.
func New(log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		log:      log,
	}
}

// Register binds a command string to a handler.
func (d *Dispatcher) Register(command string, handler HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[command] = handler
}

// Commands returns the registered command strings, sorted.
func (d *Dispatcher) Commands() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	cmds := make([]string, 0, len(d.handlers))
	for c := range d.handlers {
		cmds = append(cmds, c)
	}
	sort.Strings(cmds)
	return cmds
}

// Dispatch executes the handler for a given request. Every response is
// stamped with a fresh dispatch id that also appears in the log.
func (d *Dispatcher) Dispatch(req *protocol.Request) *protocol.Response {
	id := uuid.NewString()
	log := d.log.With(zap.String("dispatch_id", id), zap.String("command", req.Type))

	d.mu.RLock()
	handler, ok := d.handlers[req.Type]
	d.mu.RUnlock()

	var resp *protocol.Response
	if !ok {
		resp = protocol.ErrorResponse("unknown command")
	} else {
		resp = handler(req)
		if resp == nil {
			resp = &protocol.Response{Status: protocol.StatusOK}
		}
	}
	resp.ID = id

	if resp.Status == protocol.StatusError {
		log.Warn("dispatch failed", zap.String("error", resp.Error))
	} else {
		log.Debug("dispatched")
	}
	return resp
}
