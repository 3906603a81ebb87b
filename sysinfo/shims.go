package sysinfo

import (
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// Shims wraps the OS calls made by the producers so tests can replace them.
type Shims struct {
	ReadFile func(string) ([]byte, error)
	Glob     func(string) ([]string, error)
	Readable func(string) bool
	Output   func(string, ...string) ([]byte, error)
	Now      func() time.Time
}

// NewShims returns shims backed by the real system.
func NewShims() *Shims {
	return &Shims{
		ReadFile: os.ReadFile,
		Glob:     filepath.Glob,
		Readable: readable,
		Output: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).Output()
		},
		Now: time.Now,
	}
}

// openable tries to open path for reading.
func openable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
