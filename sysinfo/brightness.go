package sysinfo

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
)

const backlightDir = "/sys/class/backlight"

// Brightness returns the screen brightness block.
func (r *Reader) Brightness() (string, error) {
	dir, err := r.backlightDir()
	if err != nil {
		return "", err
	}
	r.log.WithField("path", dir).Debug("reading backlight")

	now, err := r.readInt(filepath.Join(dir, "brightness"))
	if err != nil {
		return "", err
	}
	peak, err := r.readInt(filepath.Join(dir, "max_brightness"))
	if err != nil {
		return "", err
	}
	level, err := ratio(now, peak)
	if err != nil {
		return "", errors.Wrapf(err, "Invalid brightness values in %s.", dir)
	}
	return fmt.Sprintf("%s   %0.0f%%", iconBrightness, level*100), nil
}

// backlightDir picks the first backlight device, intel_backlight first,
// whose level attributes are readable.
func (r *Reader) backlightDir() (string, error) {
	dirs, err := r.candidates(backlightDir, "intel_backlight", "*")
	if err != nil {
		return "", errors.Wrap(err, "Failed to list backlight devices.")
	}
	for _, d := range dirs {
		if r.shims.Readable(filepath.Join(d, "brightness")) && r.shims.Readable(filepath.Join(d, "max_brightness")) {
			return d, nil
		}
		r.log.WithField("path", d).Debug("backlight not readable, skipping")
	}
	return "", errors.Errorf("No readable backlight found under %s.", backlightDir)
}
