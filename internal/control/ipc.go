package control

import (
	"errors"

	"github.com/mfulz/actionchain/dispatch"
	"github.com/mfulz/actionchain/internal/acl"
	"github.com/mfulz/actionchain/internal/chain"
	"github.com/mfulz/actionchain/protocol"
)

// extractUser returns the request auth user or "unauthenticated".
func extractUser(req *protocol.Request) string {
	if req.Auth != nil && req.Auth.User != "" {
		return req.Auth.User
	}
	return "unauthenticated"
}

// errorFor converts a dispatch error into a response.
func errorFor(err error) *protocol.Response {
	if errors.Is(err, chain.ErrUnknownResponder) {
		return protocol.ErrorResponse("unknown responder")
	}
	return protocol.ErrorResponse(err.Error())
}

// registerHandlers binds every protocol command to its handler.
func (s *Server) registerHandlers(d *dispatch.Dispatcher) {
	d.Register(protocol.CmdPing, PingHandler())
	d.Register(protocol.CmdActionSend, SendHandler(s.chain, s.acl))
	d.Register(protocol.CmdActionSendAction, SendActionHandler(s.chain, s.acl))
	d.Register(protocol.CmdChainList, ListHandler(s.chain, s.acl))
	d.Register(protocol.CmdChainJournal, JournalHandler(s.chain, s.acl))
}

func PingHandler() dispatch.HandlerFunc {
	return func(req *protocol.Request) *protocol.Response {
		return &protocol.Response{Status: protocol.StatusOK, Data: "pong"}
	}
}

func SendHandler(c *chain.Chain, engine *acl.Engine) dispatch.HandlerFunc {
	return func(req *protocol.Request) *protocol.Response {
		var payload protocol.SendRequest
		if err := protocol.DecodePayload(req.Data, &payload); err != nil {
			return protocol.ErrorResponse(err.Error())
		}
		if payload.Action == "" {
			return protocol.ErrorResponse("action name required")
		}
		if _, ok := c.Get(payload.Responder); !ok {
			return protocol.ErrorResponse("unknown responder")
		}

		if !engine.Can(extractUser(req), acl.PermActionSend, c.Rules(payload.Responder)) {
			return protocol.ErrorResponse("not allowed")
		}

		if err := c.Send(payload.Responder, payload.Action, payload.Args...); err != nil {
			return errorFor(err)
		}
		return &protocol.Response{Status: protocol.StatusOK}
	}
}

func SendActionHandler(c *chain.Chain, engine *acl.Engine) dispatch.HandlerFunc {
	return func(req *protocol.Request) *protocol.Response {
		var payload protocol.SendActionRequest
		if err := protocol.DecodePayload(req.Data, &payload); err != nil {
			return protocol.ErrorResponse(err.Error())
		}
		if _, ok := c.Get(payload.Responder); !ok {
			return protocol.ErrorResponse("unknown responder")
		}

		if !engine.Can(extractUser(req), acl.PermActionSend, c.Rules(payload.Responder)) {
			return protocol.ErrorResponse("not allowed")
		}

		if err := c.SendAction(payload.Responder, payload.Key, payload.Args...); err != nil {
			return errorFor(err)
		}
		return &protocol.Response{Status: protocol.StatusOK}
	}
}

func ListHandler(c *chain.Chain, engine *acl.Engine) dispatch.HandlerFunc {
	return func(req *protocol.Request) *protocol.Response {
		if !engine.Can(extractUser(req), acl.PermChainList, acl.RuleSet{}) {
			return protocol.ErrorResponse("not allowed")
		}
		return &protocol.Response{
			Status: protocol.StatusOK,
			Data:   protocol.ListResponse{Responders: c.Describe()},
		}
	}
}

func JournalHandler(c *chain.Chain, engine *acl.Engine) dispatch.HandlerFunc {
	return func(req *protocol.Request) *protocol.Response {
		var payload protocol.JournalRequest
		if req.Data != nil {
			if err := protocol.DecodePayload(req.Data, &payload); err != nil {
				return protocol.ErrorResponse(err.Error())
			}
		}

		if !engine.Can(extractUser(req), acl.PermChainJournal, acl.RuleSet{}) {
			return protocol.ErrorResponse("not allowed")
		}
		return &protocol.Response{
			Status: protocol.StatusOK,
			Data:   protocol.JournalResponse{Entries: c.Journal().Entries(payload.Limit)},
		}
	}
}
