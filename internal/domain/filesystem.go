package domain

import (
	"context"
	"os"
	"time"
)

// FileSystemAdapter defines the interface for file operations.
type FileSystemAdapter interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	Stat(path string) (os.FileInfo, error)
	Chmod(path string, perm os.FileMode) error
	TempDir() string
}

// EnvironmentSetter publishes a variable to the process and to later steps.
type EnvironmentSetter interface {
	SetEnv(key, value string) error
}

// FileWaiter blocks until a file exists and is non-empty.
type FileWaiter interface {
	WaitForFile(ctx context.Context, path string, timeout time.Duration) error
}
