package configloader

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvConfig names the environment variable that overrides config lookup.
const EnvConfig = "ACTIONCHAIN_CONFIG"

// ResolveConfigPath returns the best config path for a given subsystem and filename.
// It checks, in order:
// 1. $ACTIONCHAIN_CONFIG if set
// 2. ~/.actionchain/<subsystem>/<file>
// 3. /etc/actionchain/<file>
func ResolveConfigPath(subsystem, file string) (string, error) {
	if env := os.Getenv(EnvConfig); env != "" {
		return env, nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(home, ".actionchain", subsystem, file)
		if _, err := os.Stat(userPath); err == nil {
			return userPath, nil
		}
	}
	systemPath := filepath.Join("/etc/actionchain", file)
	if _, err := os.Stat(systemPath); err == nil {
		return systemPath, nil
	}
	return "", fmt.Errorf("no config found for %s/%s", subsystem, file)
}
