package filesystem

import (
	"os"
)

// Adapter provides file system operations.
type Adapter struct{}

// New creates a new filesystem adapter.
func New() *Adapter {
	return &Adapter{}
}

// ReadFile reads a file from disk.
func (a *Adapter) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to a file. Existing files keep their mode, so the
// mode is re-applied after writing.
func (a *Adapter) WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := os.WriteFile(path, data, perm); err != nil {
		return err
	}
	return os.Chmod(path, perm)
}

// MkdirAll creates a directory and all necessary parents.
func (a *Adapter) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Stat returns file info.
func (a *Adapter) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Chmod changes the file permissions.
func (a *Adapter) Chmod(path string, perm os.FileMode) error {
	return os.Chmod(path, perm)
}

// TempDir returns the temporary directory.
func (a *Adapter) TempDir() string {
	return os.TempDir()
}
