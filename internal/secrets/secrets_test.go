// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "semantic-scholar-api-key", "  sk_xyz789  \n")
				writeFile(t, dir, "other-key", "other\n")
				return dir
			},
			want: map[string]string{
				"semantic-scholar-api-key": "sk_xyz789",
				"other-key":                "other",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files, dotfiles, and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "semantic-scholar-api-key", "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				writeFile(t, dir, ".gitkeep", "x")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
				return dir
			},
			want: map[string]string{
				"semantic-scholar-api-key": "valid-key",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAPIKeyPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SemanticScholarKey, "from-file")
	t.Setenv(SemanticScholarEnv, "from-env")

	key, source, err := APIKey("from-flag", dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", key)
	assert.Equal(t, "config", source)

	key, source, err = APIKey("", dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-file", key)
	assert.Equal(t, filepath.Join(dir, SemanticScholarKey), source)

	key, source, err = APIKey("", filepath.Join(dir, "missing"), nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)
	assert.Equal(t, SemanticScholarEnv, source)
}

func TestAPIKeyNoneConfigured(t *testing.T) {
	t.Setenv(SemanticScholarEnv, "")

	key, source, err := APIKey("  ", t.TempDir(), nil)
	require.NoError(t, err)
	assert.Empty(t, key)
	assert.Empty(t, source)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
