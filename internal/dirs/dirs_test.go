package dirs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDir(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		envVars  map[string]string
		expected string
	}{
		{
			name:     "default uses ~/.config/cmdseq",
			envVars:  map[string]string{"XDG_CONFIG_HOME": ""},
			expected: filepath.Join(home, ".config", "cmdseq"),
		},
		{
			name:     "respects XDG_CONFIG_HOME",
			envVars:  map[string]string{"XDG_CONFIG_HOME": "/custom/config"},
			expected: filepath.Join("/custom/config", "cmdseq"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.envVars {
				t.Setenv(k, v)
			}
			assert.Equal(t, tc.expected, ConfigDir())
		})
	}
}

func TestDefaultStateDir(t *testing.T) {
	t.Run("defaults to temp dir", func(t *testing.T) {
		t.Setenv("CMDSEQ_STATE_DIR", "")
		assert.Equal(t, os.TempDir(), DefaultStateDir())
	})

	t.Run("respects CMDSEQ_STATE_DIR", func(t *testing.T) {
		t.Setenv("CMDSEQ_STATE_DIR", "/custom/state")
		assert.Equal(t, "/custom/state", DefaultStateDir())
	})
}
