package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOutputFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "plain", content: "hello world", want: "hello world"},
		{name: "surrounding_whitespace", content: "\n  olá mundo \n", want: "olá mundo"},
		{name: "empty", content: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := ReadOutputFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadOutputFile_Missing(t *testing.T) {
	_, err := ReadOutputFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestEnsureDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDirectory(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// second call is a no-op
	assert.NoError(t, EnsureDirectory(dir))
}

func TestRemoveIfExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.bin")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	assert.NoError(t, RemoveIfExists(path))
	assert.NoFileExists(t, path)
	assert.NoError(t, RemoveIfExists(path))
	assert.NoError(t, RemoveIfExists(""))
}
