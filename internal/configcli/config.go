// Package configcli handles loading and managing local chainctl configuration.
// This includes user tokens and known daemon connection targets.
package configcli

import (
	"fmt"

	"github.com/mfulz/actionchain/internal/configloader"
	"github.com/mfulz/actionchain/internal/logging"
	"github.com/spf13/viper"
)

// UserConfig represents authentication info for a specific logical user.
type UserConfig struct {
	Token string `mapstructure:"token"`
}

// DaemonConfig represents one connection target (unix socket or TCP).
type DaemonConfig struct {
	Socket string `mapstructure:"socket,omitempty"`
	TCP    string `mapstructure:"tcp,omitempty"`
}

// Config holds the entire client-side chainctl configuration.
type Config struct {
	Users   map[string]UserConfig   `mapstructure:"users"`
	Daemons map[string]DaemonConfig `mapstructure:"daemons"`
	Logger  logging.Config          `mapstructure:"log"`
}

// Load reads the client configuration at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}
	return &cfg, nil
}

// LoadConfig resolves the chainctl config file, loads it, initializes
// logging from it and registers it with configloader.
func LoadConfig() error {
	path, err := configloader.ResolveConfigPath("chainctl", "chainctl.yaml")
	if err != nil {
		return err
	}

	cfg, err := Load(path)
	if err != nil {
		return err
	}

	if err := logging.Init(cfg.Logger); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	configloader.ReplaceConfig(cfg)
	return nil
}
