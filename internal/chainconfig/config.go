// Package chainconfig provides loading and validation of the chaind
// configuration file using Viper. It defines the configuration schema for
// responder chains, control endpoints, logging and ACLs.
package chainconfig

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mfulz/actionchain/internal/acl"
	"github.com/mfulz/actionchain/internal/configloader"
	"github.com/mfulz/actionchain/internal/logging"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultJournalSize is used when journal.size is unset.
const DefaultJournalSize = 256

// Config represents the full structure of the chaind configuration file.
//
// Responders, bindings and actions are lists rather than maps so that their
// names keep their case; viper folds map keys to lower case.
type Config struct {
	Responders []Responder    `mapstructure:"responders" yaml:"responders"`
	Control    ControlConfig  `mapstructure:"control" yaml:"control,omitempty"`
	Journal    JournalConfig  `mapstructure:"journal" yaml:"journal,omitempty"`
	Logger     logging.Config `mapstructure:"log" yaml:"log,omitempty"`
	ACL        acl.Config     `mapstructure:"acl" yaml:"-"`
}

// Responder declares one link of a chain.
type Responder struct {
	Name     string      `mapstructure:"name" yaml:"name"`
	Target   string      `mapstructure:"target" yaml:"target,omitempty"`
	Bindings []Binding   `mapstructure:"bindings" yaml:"bindings,omitempty"`
	Actions  []Action    `mapstructure:"actions" yaml:"actions,omitempty"`
	ACLs     acl.RuleSet `mapstructure:"acls" yaml:"acls,omitempty"`
}

// Binding stores an action name under Key, either as a bound attribute or
// as a plain property.
type Binding struct {
	Key    string `mapstructure:"key" yaml:"key"`
	Action string `mapstructure:"action" yaml:"action"`
	Attr   bool   `mapstructure:"attr" yaml:"attr,omitempty"`
}

// Action declares a local handler.
type Action struct {
	Name     string `mapstructure:"name" yaml:"name"`
	Behavior string `mapstructure:"behavior" yaml:"behavior"`
	Bubble   bool   `mapstructure:"bubble" yaml:"bubble,omitempty"`
	Message  string `mapstructure:"message" yaml:"message,omitempty"`
}

// ControlConfig lists the control endpoints of the daemon.
type ControlConfig struct {
	Instances []ControlInstance `mapstructure:"instances" yaml:"instances,omitempty"`
}

// ControlInstance describes a single control interface (e.g. unix socket or TCP listener).
type ControlInstance struct {
	Name    string `mapstructure:"name" yaml:"name"`       // instance identifier
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"` // whether this instance is active
	Mode    string `mapstructure:"mode" yaml:"mode"`       // "unix" or "tcp"
	Listen  string `mapstructure:"listen" yaml:"listen"`   // address or socket path
	Auth    bool   `mapstructure:"auth" yaml:"auth"`       // require a valid token
}

// JournalConfig bounds the in-memory journal of handled actions.
type JournalConfig struct {
	Size int `mapstructure:"size" yaml:"size,omitempty"`
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return unmarshal(v)
}

// Decode parses and validates a YAML chain definition held in memory.
func Decode(data []byte) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return unmarshal(v)
}

// LoadDefault resolves the daemon config path, loads it and registers the
// result with configloader.
func LoadDefault() (*Config, error) {
	path, err := configloader.ResolveConfigPath("chaind", "chaind.yaml")
	if err != nil {
		return nil, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	configloader.ReplaceConfig(cfg)
	return cfg, nil
}

// Encode renders the chain definition as YAML. ACL users and tokens are
// never included.
func Encode(cfg *Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode error: %w", err)
	}
	return out, nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}
	if cfg.Journal.Size <= 0 {
		cfg.Journal.Size = DefaultJournalSize
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Responder returns the responder declared under name.
func (c *Config) Responder(name string) (Responder, bool) {
	for _, r := range c.Responders {
		if r.Name == name {
			return r, true
		}
	}
	return Responder{}, false
}

// Names returns the responder names in declaration order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Responders))
	for _, r := range c.Responders {
		names = append(names, r.Name)
	}
	return names
}

// Validate checks names are unique, that targets exist, that no target
// chain loops back on itself and that control instances are usable.
func (c *Config) Validate() error {
	if len(c.Responders) == 0 {
		return fmt.Errorf("no responders defined")
	}

	targets := make(map[string]string, len(c.Responders))
	for _, r := range c.Responders {
		if r.Name == "" {
			return fmt.Errorf("responder without name")
		}
		if _, dup := targets[r.Name]; dup {
			return fmt.Errorf("duplicate responder '%s'", r.Name)
		}
		targets[r.Name] = r.Target
	}

	for _, r := range c.Responders {
		if r.Target != "" {
			if _, ok := targets[r.Target]; !ok {
				return fmt.Errorf("responder '%s': unknown target '%s'", r.Name, r.Target)
			}
		}
		for _, b := range r.Bindings {
			if b.Key == "" {
				return fmt.Errorf("responder '%s': binding without key", r.Name)
			}
			if b.Key == "target" {
				return fmt.Errorf("responder '%s': use 'target' instead of a binding", r.Name)
			}
		}
		actions := make(map[string]struct{}, len(r.Actions))
		for _, a := range r.Actions {
			if a.Name == "" {
				return fmt.Errorf("responder '%s': action without name", r.Name)
			}
			if _, dup := actions[a.Name]; dup {
				return fmt.Errorf("responder '%s': duplicate action '%s'", r.Name, a.Name)
			}
			actions[a.Name] = struct{}{}
			if a.Behavior == "" {
				return fmt.Errorf("responder '%s': action '%s' has no behavior", r.Name, a.Name)
			}
		}
	}

	for _, r := range c.Responders {
		if err := checkCycle(targets, r.Name); err != nil {
			return err
		}
	}

	seen := make(map[string]struct{})
	for _, inst := range c.Control.Instances {
		if _, dup := seen[inst.Name]; dup {
			return fmt.Errorf("duplicate control instance '%s'", inst.Name)
		}
		seen[inst.Name] = struct{}{}
		if !inst.Enabled {
			continue
		}
		if inst.Mode != "unix" && inst.Mode != "tcp" {
			return fmt.Errorf("control instance '%s': unsupported mode '%s'", inst.Name, inst.Mode)
		}
		if inst.Listen == "" {
			return fmt.Errorf("control instance '%s': listen address required", inst.Name)
		}
	}
	return nil
}

func checkCycle(targets map[string]string, start string) error {
	visited := map[string]bool{start: true}
	path := []string{start}
	for cur := targets[start]; cur != ""; cur = targets[cur] {
		path = append(path, cur)
		if visited[cur] {
			return fmt.Errorf("target cycle: %s", strings.Join(path, " -> "))
		}
		visited[cur] = true
	}
	return nil
}
