// Package env detects the isolated environment kiln installs binaries into.
package env

import (
	"os"
	"path/filepath"
)

// Marker is the environment variable that points at the active
// virtual environment's root directory.
const Marker = "VIRTUAL_ENV"

// NotReadyError is returned when no virtual environment is active.
type NotReadyError struct{}

func (*NotReadyError) Error() string {
	return "no virtual environment detected"
}

// Env describes the active virtual environment.
type Env struct {
	Root   string // environment root directory
	BinDir string // where built programs are installed
}

// Detect reads the environment marker once and resolves the install
// directory. It must be called before any descriptor I/O so that a
// missing environment aborts the pipeline up front.
func Detect() (*Env, error) {
	root := os.Getenv(Marker)
	if root == "" {
		return nil, &NotReadyError{}
	}
	return &Env{
		Root:   root,
		BinDir: filepath.Join(root, "bin"),
	}, nil
}
