package chainconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sample = `
responders:
  - name: view
    target: controller
    bindings:
      - key: action
        action: didSave
      - key: submit
        action: didSave
        attr: true
  - name: controller
    target: route
    actions:
      - name: didSave
        behavior: log
        bubble: true
  - name: route
    actions:
      - name: didSave
        behavior: echo
    acls:
      rules:
        - subjects: [admin]
          permissions: [action_send]
control:
  instances:
    - name: local
      enabled: true
      mode: unix
      listen: /tmp/chaind.sock
log:
  level: debug
  to_stderr: true
acl:
  enabled: true
  users:
    admin:
      token: s3cret
      roles: [operator]
  roles:
    operator:
      permissions: [action_send, chain_list]
`

func TestDecode(t *testing.T) {
	cfg, err := Decode([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, []string{"view", "controller", "route"}, cfg.Names())
	assert.Equal(t, DefaultJournalSize, cfg.Journal.Size)

	view, ok := cfg.Responder("view")
	require.True(t, ok)
	assert.Equal(t, "controller", view.Target)
	require.Len(t, view.Bindings, 2)
	assert.Equal(t, "didSave", view.Bindings[0].Action, "action names keep their case")
	assert.True(t, view.Bindings[1].Attr)

	controller, _ := cfg.Responder("controller")
	require.Len(t, controller.Actions, 1)
	assert.Equal(t, Action{Name: "didSave", Behavior: "log", Bubble: true}, controller.Actions[0])

	route, _ := cfg.Responder("route")
	require.Len(t, route.ACLs.Rules, 1)
	assert.Equal(t, []string{"admin"}, route.ACLs.Rules[0].Subjects)

	require.Len(t, cfg.Control.Instances, 1)
	assert.Equal(t, "unix", cfg.Control.Instances[0].Mode)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, cfg.ACL.Enabled)
	assert.Equal(t, "s3cret", cfg.ACL.Users["admin"].Token)

	_, ok = cfg.Responder("missing")
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chaind.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Responders, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "responders: []\n", "no responders"},
		{"unknown target", "responders:\n  - name: a\n    target: b\n", "unknown target 'b'"},
		{"duplicate responder", "responders:\n  - name: a\n  - name: a\n", "duplicate responder"},
		{"self cycle", "responders:\n  - name: a\n    target: a\n", "target cycle: a -> a"},
		{"cycle", "responders:\n  - name: a\n    target: b\n  - name: b\n    target: a\n", "target cycle"},
		{"missing behavior", "responders:\n  - name: a\n    actions:\n      - name: x\n", "has no behavior"},
		{"duplicate action", "responders:\n  - name: a\n    actions:\n      - {name: x, behavior: log}\n      - {name: x, behavior: log}\n", "duplicate action"},
		{"target binding", "responders:\n  - name: a\n    bindings:\n      - {key: target, action: x}\n", "instead of a binding"},
		{"bad mode", "responders:\n  - name: a\ncontrol:\n  instances:\n    - {name: c, enabled: true, mode: pipe, listen: x}\n", "unsupported mode"},
		{"no listen", "responders:\n  - name: a\ncontrol:\n  instances:\n    - {name: c, enabled: true, mode: tcp}\n", "listen address required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEncode_OmitsACL(t *testing.T) {
	cfg, err := Decode([]byte(sample))
	require.NoError(t, err)

	out, err := Encode(cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "s3cret")

	var back struct {
		Responders []Responder `yaml:"responders"`
	}
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, cfg.Responders, back.Responders)
}
