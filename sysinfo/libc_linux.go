//go:build linux
// +build linux

package sysinfo

import (
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// R_OK from unistd.h.
const accessReadOK = 4

var libc struct {
	once   sync.Once
	err    error
	access func(path *byte, mode int32) int32
}

// loadLibc resolves access(2) from the C library on first use.
func loadLibc() error {
	libc.once.Do(func() {
		var handle uintptr
		for _, name := range []string{"libc.so.6", "libc.so"} {
			h, err := purego.Dlopen(name, purego.RTLD_LAZY|purego.RTLD_LOCAL)
			if err != nil {
				libc.err = errors.Wrapf(err, "Failed to load %s.", name)
				continue
			}
			handle = h
			break
		}
		if handle == 0 {
			return
		}
		sym, err := purego.Dlsym(handle, "access")
		if err != nil {
			purego.Dlclose(handle)
			libc.err = errors.Wrap(err, "Failed to resolve access in libc.")
			return
		}
		libc.err = nil
		purego.RegisterFunc(&libc.access, sym)
	})
	return libc.err
}

// readable reports whether the sysfs node at path may be read by this
// process. Root-only attributes such as some charge counters exist but
// fail this check, so producers can move on to the next candidate.
func readable(path string) bool {
	if path == "" {
		return false
	}
	if loadLibc() != nil {
		return openable(path)
	}
	p, err := unix.BytePtrFromString(path)
	if err != nil {
		return false
	}
	ok := libc.access(p, accessReadOK) == 0
	runtime.KeepAlive(p)
	return ok
}
