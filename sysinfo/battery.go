package sysinfo

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const powerSupplyDir = "/sys/class/power_supply"

var batteryStatus = map[string]string{
	"Charging":    "CHR",
	"Discharging": "BAT",
	"Full":        "FULL",
}

// counterPairs lists the now/full attribute pairs a battery may expose,
// in order of preference.
var counterPairs = [][2]string{
	{"charge_now", "charge_full"},
	{"energy_now", "energy_full"},
}

// Battery returns the charge block of the first readable battery.
func (r *Reader) Battery() (string, error) {
	dir, nowPath, fullPath, err := r.batterySource()
	if err != nil {
		return "", err
	}
	r.log.WithFields(logrus.Fields{"path": dir, "counter": filepath.Base(nowPath)}).Debug("reading battery")

	now, err := r.readInt(nowPath)
	if err != nil {
		return "", err
	}
	full, err := r.readInt(fullPath)
	if err != nil {
		return "", err
	}
	level, err := ratio(now, full)
	if err != nil {
		return "", errors.Wrapf(err, "Invalid battery counters in %s.", dir)
	}

	status, err := r.readString(filepath.Join(dir, "status"))
	if err != nil {
		return "", err
	}
	if short, ok := batteryStatus[status]; ok {
		status = short
	}

	return fmt.Sprintf("%s  %s %0.2f%%", iconBattery, status, level*100), nil
}

// batterySource picks the first battery, BAT0 first, that has a readable
// pair of counters. Charge counters win over energy counters.
func (r *Reader) batterySource() (dir, nowPath, fullPath string, err error) {
	dirs, err := r.candidates(powerSupplyDir, "BAT0", "BAT*")
	if err != nil {
		return "", "", "", errors.Wrap(err, "Failed to list power supplies.")
	}
	for _, d := range dirs {
		for _, pair := range counterPairs {
			n, f := filepath.Join(d, pair[0]), filepath.Join(d, pair[1])
			if r.shims.Readable(n) && r.shims.Readable(f) {
				return d, n, f, nil
			}
		}
		r.log.WithField("path", d).Debug("no readable counters, skipping")
	}
	return "", "", "", errors.Errorf("No readable battery found under %s.", powerSupplyDir)
}
