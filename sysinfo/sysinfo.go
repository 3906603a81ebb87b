// Package sysinfo produces the text of the non-network status blocks:
// date, time, battery, volume and screen brightness.
package sysinfo

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Font Awesome glyphs used as block labels.
const (
	iconDate       = "\uf073"
	iconTime       = "\uf017"
	iconBattery    = "\uf0e7"
	iconBrightness = "\uf108"
	iconVolumeOff  = "\uf026"
	iconVolumeOn   = "\uf028"
)

// Reader reads system state through a set of Shims.
type Reader struct {
	shims *Shims
	log   logrus.FieldLogger
}

func New(log logrus.FieldLogger) *Reader {
	return NewWithShims(NewShims(), log)
}

func NewWithShims(shims *Shims, log logrus.FieldLogger) *Reader {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Reader{shims: shims, log: log}
}

// Date returns the current local date block.
func (r *Reader) Date() string {
	return fmt.Sprintf("%s  %s", iconDate, r.shims.Now().Format("2006-01-02"))
}

// Time returns the current local time block.
func (r *Reader) Time() string {
	return fmt.Sprintf("%s  %s", iconTime, r.shims.Now().Format("15:04"))
}

// candidates returns the preferred entry under root followed by every
// other entry matching pattern.
func (r *Reader) candidates(root, preferred, pattern string) ([]string, error) {
	matches, err := r.shims.Glob(filepath.Join(root, pattern))
	if err != nil {
		return nil, err
	}
	first := filepath.Join(root, preferred)
	dirs := []string{first}
	for _, m := range matches {
		if m != first {
			dirs = append(dirs, m)
		}
	}
	return dirs, nil
}

// readInt reads a sysfs attribute holding a single integer.
func (r *Reader) readInt(path string) (int64, error) {
	raw, err := r.shims.ReadFile(path)
	if err != nil {
		return 0, errors.Wrapf(err, "Failed to read %s.", path)
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "Failed to parse %s.", path)
	}
	return v, nil
}

// readString reads a sysfs attribute with the trailing newline removed.
func (r *Reader) readString(path string) (string, error) {
	raw, err := r.shims.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "Failed to read %s.", path)
	}
	return strings.TrimRight(string(raw), "\n"), nil
}

// ratio returns now/full capped at 1.
func ratio(now, full int64) (float64, error) {
	if full <= 0 {
		return 0, errors.Errorf("maximum value %d is not positive", full)
	}
	return math.Min(1, float64(now)/float64(full)), nil
}
