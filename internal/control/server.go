// Package control provides the server-side daemon logic to accept remote
// actions over unix or tcp sockets and deliver them into a responder chain.
package control

import (
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/mfulz/actionchain/dispatch"
	"github.com/mfulz/actionchain/internal/acl"
	"github.com/mfulz/actionchain/internal/chain"
	"github.com/mfulz/actionchain/internal/chainconfig"
	"github.com/mfulz/actionchain/protocol"
	"go.uber.org/zap"
)

// connTimeout bounds a single request/response exchange.
const connTimeout = 30 * time.Second

// Server serves one chain on any number of control instances.
type Server struct {
	chain      *chain.Chain
	acl        *acl.Engine
	dispatcher *dispatch.Dispatcher
	log        *zap.Logger

	mu        sync.Mutex
	listeners []net.Listener
	wg        sync.WaitGroup
}

// NewServer creates a server for c. engine may be nil only when every
// instance has auth disabled and no ACL is wanted; a nil engine rejects all
// permission checks.
func NewServer(c *chain.Chain, engine *acl.Engine, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		chain:      c,
		acl:        engine,
		dispatcher: dispatch.New(log.Named("dispatch")),
		log:        log,
	}
	s.registerHandlers(s.dispatcher)
	return s
}

// StartAll starts every enabled control instance.
func (s *Server) StartAll(instances []chainconfig.ControlInstance) error {
	started := 0
	for _, inst := range instances {
		if !inst.Enabled {
			continue
		}
		if err := s.Start(inst); err != nil {
			return err
		}
		started++
	}
	if started == 0 {
		return fmt.Errorf("no control instance enabled")
	}
	return nil
}

// Start binds the instance's listener and serves it in the background.
func (s *Server) Start(inst chainconfig.ControlInstance) error {
	var (
		l   net.Listener
		err error
	)
	switch inst.Mode {
	case "unix":
		// Clean up existing socket
		if _, statErr := os.Stat(inst.Listen); statErr == nil {
			_ = os.Remove(inst.Listen)
		}
		l, err = net.Listen("unix", inst.Listen)
	case "tcp":
		l, err = net.Listen("tcp", inst.Listen)
	default:
		return fmt.Errorf("control instance '%s': unsupported mode '%s'", inst.Name, inst.Mode)
	}
	if err != nil {
		return fmt.Errorf("control instance '%s': failed to listen on %s: %w", inst.Name, inst.Listen, err)
	}

	s.Serve(l, inst)
	return nil
}

// Serve accepts connections on l until the server is closed.
func (s *Server) Serve(l net.Listener, inst chainconfig.ControlInstance) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()

	log := s.log.With(zap.String("instance", inst.Name))
	log.Info("listening", zap.String("mode", inst.Mode), zap.String("addr", l.Addr().String()))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := l.Accept()
			if err != nil {
				if errors.Is(err, net.ErrClosed) {
					return
				}
				log.Warn("accept error", zap.Error(err))
				continue
			}
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.handleConn(conn, inst, log)
			}()
		}
	}()
}

// Close stops all listeners and waits for in-flight connections.
func (s *Server) Close() error {
	s.mu.Lock()
	listeners := s.listeners
	s.listeners = nil
	s.mu.Unlock()

	var errs []error
	for _, l := range listeners {
		if err := l.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, err)
		}
	}
	s.wg.Wait()
	return errors.Join(errs...)
}

// Handle authenticates req for inst and dispatches it.
func (s *Server) Handle(req *protocol.Request, inst chainconfig.ControlInstance) *protocol.Response {
	if inst.Auth && !s.acl.Authenticate(req.Auth) {
		return protocol.ErrorResponse("authentication failed")
	}
	return s.dispatcher.Dispatch(req)
}

func (s *Server) handleConn(conn net.Conn, inst chainconfig.ControlInstance, log *zap.Logger) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(connTimeout))

	req, err := protocol.ReadRequest(conn)
	if err != nil {
		log.Warn("failed to read request", zap.Error(err))
		_ = protocol.WriteResponse(conn, protocol.ErrorResponse(err.Error()))
		return
	}

	resp := s.Handle(req, inst)
	if err := protocol.WriteResponse(conn, resp); err != nil {
		log.Warn("failed to write response", zap.Error(err))
	}
}
