package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	apperrors "audio-api/internal/app/errors"
)

// Manager allocates request-scoped workspaces under a base directory.
type Manager struct {
	baseDir string
}

// NewManager creates a Manager rooted at baseDir. An empty baseDir means os.TempDir().
func NewManager(baseDir string) (*Manager, error) {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	if err := EnsureDirectory(baseDir); err != nil {
		return nil, err
	}
	return &Manager{baseDir: baseDir}, nil
}

// BaseDir returns the directory workspaces are created in.
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// NewWorkspace creates a fresh directory for a single request.
// Callers must defer Cleanup.
func (m *Manager) NewWorkspace() (*Workspace, error) {
	dir, err := os.MkdirTemp(m.baseDir, "req-*")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFileWriteFailed, fmt.Sprintf("failed to create workspace: %v", err))
	}
	return &Workspace{dir: dir}, nil
}

// Workspace is a directory owned by exactly one request. Every file handed out
// by Path lives inside it, so Cleanup removes all of them at once.
type Workspace struct {
	dir  string
	once sync.Once
	err  error
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path returns a unique file path inside the workspace. Nothing is created on
// disk, so no handle is held on the file.
func (w *Workspace) Path(prefix, ext string) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s_%s%s", prefix, uuid.NewString(), ext))
}

// WriteUpload copies r into path and closes the file before returning.
func (w *Workspace) WriteUpload(path string, r io.Reader) (int64, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrFileWriteFailed, err.Error())
	}

	n, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if copyErr != nil {
		return n, apperrors.Wrap(apperrors.ErrFileWriteFailed, copyErr.Error())
	}
	if closeErr != nil {
		return n, apperrors.Wrap(apperrors.ErrFileWriteFailed, closeErr.Error())
	}
	return n, nil
}

// Remove deletes a single file from the workspace.
func (w *Workspace) Remove(path string) error {
	return RemoveIfExists(path)
}

// Cleanup removes the workspace and everything in it. Safe to call more than once.
func (w *Workspace) Cleanup() error {
	w.once.Do(func() {
		w.err = os.RemoveAll(w.dir)
	})
	return w.err
}
