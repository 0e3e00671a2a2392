// Package dirs resolves the directories cmdseq reads from and writes to.
package dirs

import (
	"os"
	"path/filepath"
)

// ConfigDir returns the cmdseq configuration directory.
// Resolution order: XDG_CONFIG_HOME/cmdseq > ~/.config/cmdseq.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cmdseq")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "cmdseq")
	}
	return filepath.Join(home, ".config", "cmdseq")
}

// DefaultStateDir returns the directory for state files when none is configured.
// Resolution order: CMDSEQ_STATE_DIR > system temp dir.
func DefaultStateDir() string {
	if dir := os.Getenv("CMDSEQ_STATE_DIR"); dir != "" {
		return dir
	}
	return os.TempDir()
}
