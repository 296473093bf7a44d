// Package config loads the ledger's settings and resolves the paths they name.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a ledger, export or config path given on the command line or in
// config.yaml. A leading "~" or "~/" becomes the home directory and $VAR or ${VAR}
// references are substituted. "~name" forms are left alone, as is the tilde when the
// home directory is unknown.
func ExpandPath(path string) string {
	if rest, ok := strings.CutPrefix(path, "~"); ok && (rest == "" || rest[0] == '/') {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, rest)
		}
	}
	return os.ExpandEnv(path)
}
