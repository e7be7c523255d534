package protocol

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestOverTheWire(t *testing.T) {
	var buf bytes.Buffer
	err := WriteRequest(&buf, &Request{
		Type: CmdActionSend,
		Auth: &Auth{User: "admin", Token: "secret"},
		Data: SendRequest{Responder: "view", Action: "save", Args: []any{"doc", 3}},
	})
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(buf.String(), "\n"))

	req, err := ReadRequest(&buf)
	require.NoError(t, err)
	assert.Equal(t, CmdActionSend, req.Type)
	assert.Equal(t, "admin", req.Auth.User)

	var payload SendRequest
	require.NoError(t, DecodePayload(req.Data, &payload))
	assert.Equal(t, "view", payload.Responder)
	assert.Equal(t, "save", payload.Action)
	// numbers come back as float64 after a JSON round trip
	assert.Equal(t, []any{"doc", float64(3)}, payload.Args)
}

func TestReadResponse_Errors(t *testing.T) {
	_, err := ReadResponse(strings.NewReader(`{"status":"ok"}`))
	assert.ErrorContains(t, err, "read error")

	_, err = ReadResponse(strings.NewReader("not json\n"))
	assert.ErrorContains(t, err, "decode error")
}

func TestErrorResponse(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResponse(&buf, ErrorResponse("nope")))

	resp, err := ReadResponse(&buf)
	require.NoError(t, err)
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "nope", resp.Error)
}
