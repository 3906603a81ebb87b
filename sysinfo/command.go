package sysinfo

import (
	"strings"

	"github.com/pkg/errors"
)

// Lines runs a command and returns its output split into lines, with
// trailing newlines removed.
func (r *Reader) Lines(name string, args ...string) ([]string, error) {
	out, err := r.shims.Output(name, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to run %s.", name)
	}
	text := strings.TrimRight(string(out), "\n")
	if text == "" {
		return nil, errors.Errorf("Failed to read output from %s.", name)
	}
	return strings.Split(text, "\n"), nil
}
