package control

import (
	"net"
	"testing"

	"github.com/mfulz/actionchain/internal/acl"
	"github.com/mfulz/actionchain/internal/chain"
	"github.com/mfulz/actionchain/internal/chainconfig"
	"github.com/mfulz/actionchain/internal/controlcli"
	"github.com/mfulz/actionchain/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const definition = `
responders:
  - name: view
    target: controller
    bindings:
      - key: action
        action: save
  - name: controller
    actions:
      - name: save
        behavior: noop
  - name: vault
    actions:
      - name: open
        behavior: noop
    acls:
      rules:
        - subjects: [admin]
          permissions: [action_send]
`

var aclConfig = acl.Config{
	Enabled: true,
	Users: map[string]acl.User{
		"admin": {Roles: []string{"operator"}, Token: "s3cret"},
		"guest": {Roles: []string{"sender"}, Token: "guest"},
	},
	Roles: map[string]acl.Role{
		"operator": {Permissions: acl.AllPermissions},
		"sender":   {Permissions: []acl.Permission{acl.PermActionSend}},
	},
}

func startServer(t *testing.T, auth bool) (*Server, string) {
	t.Helper()

	cfg, err := chainconfig.Decode([]byte(definition))
	require.NoError(t, err)
	c, err := chain.Build(cfg, nil)
	require.NoError(t, err)
	engine, err := acl.New(aclConfig, acl.AllPermissions, nil)
	require.NoError(t, err)

	s := NewServer(c, engine, nil)
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s.Serve(l, chainconfig.ControlInstance{Name: "test", Enabled: true, Mode: "tcp", Auth: auth})
	t.Cleanup(func() { _ = s.Close() })
	return s, l.Addr().String()
}

func TestServer_SendOverTCP(t *testing.T) {
	_, addr := startServer(t, true)
	admin := controlcli.Target{Addr: addr, User: "admin", Token: "s3cret"}

	require.NoError(t, controlcli.Ping(nil, admin))
	require.NoError(t, controlcli.Send(nil, admin, "view", "save", []any{"doc"}))
	require.NoError(t, controlcli.SendAction(nil, admin, "view", "", []any{"doc", 2}))

	journal, err := controlcli.Journal(nil, admin, 0)
	require.NoError(t, err)
	require.Len(t, journal.Entries, 2)
	assert.Equal(t, "controller", journal.Entries[0].Responder)
	assert.Equal(t, []any{"doc", float64(2)}, journal.Entries[1].Args)

	list, err := controlcli.List(nil, admin)
	require.NoError(t, err)
	require.Len(t, list.Responders, 3)
	assert.Equal(t, "view", list.Responders[0].Name)
	assert.Equal(t, "controller", list.Responders[0].Target)
}

func TestServer_Errors(t *testing.T) {
	_, addr := startServer(t, true)
	admin := controlcli.Target{Addr: addr, User: "admin", Token: "s3cret"}

	err := controlcli.Send(nil, admin, "view", "missingAction", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "had no action handler for: missingAction")

	err = controlcli.Send(nil, admin, "nowhere", "save", nil)
	assert.EqualError(t, err, "unknown responder")

	err = controlcli.Send(nil, admin, "view", "", nil)
	assert.EqualError(t, err, "action name required")
}

func TestServer_Authentication(t *testing.T) {
	_, addr := startServer(t, true)

	err := controlcli.Ping(nil, controlcli.Target{Addr: addr, User: "admin", Token: "wrong"})
	assert.EqualError(t, err, "authentication failed")
}

func TestServer_ACL(t *testing.T) {
	_, addr := startServer(t, true)
	guest := controlcli.Target{Addr: addr, User: "guest", Token: "guest"}

	require.NoError(t, controlcli.Send(nil, guest, "view", "save", nil))

	err := controlcli.Send(nil, guest, "vault", "open", nil)
	assert.EqualError(t, err, "not allowed", "responder rules only admit admin")

	_, err = controlcli.List(nil, guest)
	assert.EqualError(t, err, "not allowed")

	require.NoError(t, controlcli.Send(nil, controlcli.Target{Addr: addr, User: "admin", Token: "s3cret"}, "vault", "open", nil))
}

func TestHandle_UnknownCommandCarriesID(t *testing.T) {
	s, _ := startServer(t, false)

	resp := s.Handle(&protocol.Request{Type: "bogus"}, chainconfig.ControlInstance{})
	assert.Equal(t, protocol.StatusError, resp.Status)
	assert.NotEmpty(t, resp.ID)
}

func TestStart_UnixSocket(t *testing.T) {
	cfg, err := chainconfig.Decode([]byte(definition))
	require.NoError(t, err)
	c, err := chain.Build(cfg, nil)
	require.NoError(t, err)
	engine, err := acl.New(acl.Config{}, acl.AllPermissions, nil)
	require.NoError(t, err)

	dir, err := mkShortTempDir(t)
	require.NoError(t, err)
	sock := dir + "/c.sock"

	s := NewServer(c, engine, nil)
	require.NoError(t, s.StartAll([]chainconfig.ControlInstance{
		{Name: "off", Enabled: false, Mode: "tcp", Listen: "127.0.0.1:1"},
		{Name: "local", Enabled: true, Mode: "unix", Listen: sock},
	}))
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, controlcli.Ping(nil, controlcli.Target{Addr: sock}))
	require.NoError(t, controlcli.Send(nil, controlcli.Target{Addr: sock}, "view", "save", nil))
}

func TestStartAll_NothingEnabled(t *testing.T) {
	s := NewServer(nil, nil, nil)
	assert.Error(t, s.StartAll(nil))
}
