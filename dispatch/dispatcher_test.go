package dispatch

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mfulz/actionchain/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch_RoutesByType(t *testing.T) {
	d := New(nil)
	d.Register(protocol.CmdPing, func(req *protocol.Request) *protocol.Response {
		return &protocol.Response{Status: protocol.StatusOK, Data: "pong"}
	})

	resp := d.Dispatch(&protocol.Request{Type: protocol.CmdPing})
	assert.Equal(t, protocol.StatusOK, resp.Status)
	assert.Equal(t, "pong", resp.Data)

	_, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
}

func TestDispatch_UnknownCommand(t *testing.T) {
	resp := New(nil).Dispatch(&protocol.Request{Type: "nope"})
	assert.Equal(t, protocol.StatusError, resp.Status)
	assert.Equal(t, "unknown command", resp.Error)
	assert.NotEmpty(t, resp.ID)
}

func TestDispatch_NilResponseIsOK(t *testing.T) {
	d := New(nil)
	d.Register("x", func(req *protocol.Request) *protocol.Response { return nil })

	assert.Equal(t, protocol.StatusOK, d.Dispatch(&protocol.Request{Type: "x"}).Status)
}

func TestDispatch_IDsAreUnique(t *testing.T) {
	d := New(nil)
	a := d.Dispatch(&protocol.Request{Type: "x"})
	b := d.Dispatch(&protocol.Request{Type: "x"})
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCommands_Sorted(t *testing.T) {
	d := New(nil)
	noop := func(req *protocol.Request) *protocol.Response { return nil }
	d.Register(protocol.CmdPing, noop)
	d.Register(protocol.CmdActionSend, noop)

	assert.Equal(t, []string{protocol.CmdActionSend, protocol.CmdPing}, d.Commands())
}
