package control

import (
	"os"
	"testing"
)

// mkShortTempDir keeps unix socket paths under the platform length limit.
func mkShortTempDir(t *testing.T) (string, error) {
	t.Helper()
	dir, err := os.MkdirTemp("", "ac")
	if err != nil {
		return "", err
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return dir, nil
}
