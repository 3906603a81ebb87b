package sysinfo

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupShims returns shims over an in-memory file map and a canned command
// output.
func setupShims(t *testing.T, files map[string]string, output string, outputErr error) *Shims {
	t.Helper()
	return &Shims{
		ReadFile: func(path string) ([]byte, error) {
			v, ok := files[path]
			if !ok {
				return nil, os.ErrNotExist
			}
			return []byte(v), nil
		},
		Glob: func(pattern string) ([]string, error) {
			var matches []string
			for path := range files {
				dir := filepath.Dir(path)
				if ok, _ := filepath.Match(pattern, dir); ok && !contains(matches, dir) {
					matches = append(matches, dir)
				}
			}
			sort.Strings(matches)
			return matches, nil
		},
		Readable: func(path string) bool {
			_, ok := files[path]
			return ok
		},
		Output: func(name string, args ...string) ([]byte, error) {
			return []byte(output), outputErr
		},
		Now: func() time.Time {
			return time.Date(2024, 3, 9, 7, 5, 0, 0, time.Local)
		},
	}
}

// denyRead makes paths unreadable while leaving them in place for Glob and
// ReadFile, as sysfs does for root-only attributes.
func denyRead(shims *Shims, paths ...string) *Shims {
	readable := shims.Readable
	shims.Readable = func(path string) bool {
		if contains(paths, path) {
			return false
		}
		return readable(path)
	}
	return shims
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestClock(t *testing.T) {
	r := NewWithShims(setupShims(t, nil, "", nil), nil)

	assert.Equal(t, "\uf073  2024-03-09", r.Date())
	assert.Equal(t, "\uf017  07:05", r.Time())
}

func TestBattery(t *testing.T) {
	t.Run("Charging", func(t *testing.T) {
		r := NewWithShims(setupShims(t, map[string]string{
			"/sys/class/power_supply/BAT0/charge_now":  "2500000\n",
			"/sys/class/power_supply/BAT0/charge_full": "5000000\n",
			"/sys/class/power_supply/BAT0/status":      "Charging\n",
		}, "", nil), nil)

		got, err := r.Battery()

		require.NoError(t, err)
		assert.Equal(t, "\uf0e7  CHR 50.00%", got)
	})

	t.Run("StatusMapping", func(t *testing.T) {
		for status, want := range map[string]string{
			"Discharging":  "BAT",
			"Full":         "FULL",
			"Not charging": "Not charging",
		} {
			r := NewWithShims(setupShims(t, map[string]string{
				"/sys/class/power_supply/BAT0/charge_now":  "1",
				"/sys/class/power_supply/BAT0/charge_full": "4",
				"/sys/class/power_supply/BAT0/status":      status + "\n",
			}, "", nil), nil)

			got, err := r.Battery()

			require.NoError(t, err)
			assert.Equal(t, "\uf0e7  "+want+" 25.00%", got)
		}
	})

	t.Run("ClampsOverfullCharge", func(t *testing.T) {
		r := NewWithShims(setupShims(t, map[string]string{
			"/sys/class/power_supply/BAT0/charge_now":  "5200000",
			"/sys/class/power_supply/BAT0/charge_full": "5000000",
			"/sys/class/power_supply/BAT0/status":      "Full",
		}, "", nil), nil)

		got, err := r.Battery()

		require.NoError(t, err)
		assert.Equal(t, "\uf0e7  FULL 100.00%", got)
	})

	t.Run("EnergyCountersOnOtherBattery", func(t *testing.T) {
		r := NewWithShims(setupShims(t, map[string]string{
			"/sys/class/power_supply/BAT1/energy_now":  "30",
			"/sys/class/power_supply/BAT1/energy_full": "40",
			"/sys/class/power_supply/BAT1/status":      "Discharging",
		}, "", nil), nil)

		got, err := r.Battery()

		require.NoError(t, err)
		assert.Equal(t, "\uf0e7  BAT 75.00%", got)
	})

	t.Run("UnreadableChargeCounters", func(t *testing.T) {
		shims := denyRead(setupShims(t, map[string]string{
			"/sys/class/power_supply/BAT0/charge_now":  "1",
			"/sys/class/power_supply/BAT0/charge_full": "1",
			"/sys/class/power_supply/BAT0/energy_now":  "10",
			"/sys/class/power_supply/BAT0/energy_full": "40",
			"/sys/class/power_supply/BAT0/status":      "Discharging",
		}, "", nil), "/sys/class/power_supply/BAT0/charge_full")
		r := NewWithShims(shims, nil)

		got, err := r.Battery()

		require.NoError(t, err)
		assert.Equal(t, "\uf0e7  BAT 25.00%", got)
	})

	t.Run("SkipsUnreadableBattery", func(t *testing.T) {
		shims := denyRead(setupShims(t, map[string]string{
			"/sys/class/power_supply/BAT0/charge_now":  "1",
			"/sys/class/power_supply/BAT0/charge_full": "1",
			"/sys/class/power_supply/BAT0/status":      "Full",
			"/sys/class/power_supply/BAT1/charge_now":  "3",
			"/sys/class/power_supply/BAT1/charge_full": "4",
			"/sys/class/power_supply/BAT1/status":      "Charging",
		}, "", nil), "/sys/class/power_supply/BAT0/charge_now")
		r := NewWithShims(shims, nil)

		got, err := r.Battery()

		require.NoError(t, err)
		assert.Equal(t, "\uf0e7  CHR 75.00%", got)
	})

	t.Run("NothingReadable", func(t *testing.T) {
		shims := denyRead(setupShims(t, map[string]string{
			"/sys/class/power_supply/BAT0/charge_now":  "1",
			"/sys/class/power_supply/BAT0/charge_full": "1",
			"/sys/class/power_supply/BAT0/status":      "Full",
		}, "", nil), "/sys/class/power_supply/BAT0/charge_now")
		r := NewWithShims(shims, nil)

		_, err := r.Battery()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "No readable battery")
	})

	t.Run("NoBattery", func(t *testing.T) {
		r := NewWithShims(setupShims(t, map[string]string{}, "", nil), nil)

		_, err := r.Battery()

		assert.Error(t, err)
	})

	t.Run("ZeroFullCharge", func(t *testing.T) {
		r := NewWithShims(setupShims(t, map[string]string{
			"/sys/class/power_supply/BAT0/charge_now":  "10",
			"/sys/class/power_supply/BAT0/charge_full": "0",
			"/sys/class/power_supply/BAT0/status":      "Full",
		}, "", nil), nil)

		_, err := r.Battery()

		assert.Error(t, err)
	})

	t.Run("GarbageCounter", func(t *testing.T) {
		r := NewWithShims(setupShims(t, map[string]string{
			"/sys/class/power_supply/BAT0/charge_now":  "n/a",
			"/sys/class/power_supply/BAT0/charge_full": "10",
			"/sys/class/power_supply/BAT0/status":      "Full",
		}, "", nil), nil)

		_, err := r.Battery()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "charge_now")
	})
}

func TestBrightness(t *testing.T) {
	t.Run("IntelBacklight", func(t *testing.T) {
		r := NewWithShims(setupShims(t, map[string]string{
			"/sys/class/backlight/acpi_video0/brightness":         "1",
			"/sys/class/backlight/acpi_video0/max_brightness":     "1",
			"/sys/class/backlight/intel_backlight/brightness":     "1200\n",
			"/sys/class/backlight/intel_backlight/max_brightness": "4800\n",
		}, "", nil), nil)

		got, err := r.Brightness()

		require.NoError(t, err)
		assert.Equal(t, "\uf108   25%", got)
	})

	t.Run("FirstDevice", func(t *testing.T) {
		r := NewWithShims(setupShims(t, map[string]string{
			"/sys/class/backlight/amdgpu_bl0/brightness":     "200",
			"/sys/class/backlight/amdgpu_bl0/max_brightness": "255",
		}, "", nil), nil)

		got, err := r.Brightness()

		require.NoError(t, err)
		assert.Equal(t, "\uf108   78%", got)
	})

	t.Run("SkipsUnreadableDevice", func(t *testing.T) {
		shims := denyRead(setupShims(t, map[string]string{
			"/sys/class/backlight/intel_backlight/brightness":     "1",
			"/sys/class/backlight/intel_backlight/max_brightness": "1",
			"/sys/class/backlight/acpi_video0/brightness":         "5",
			"/sys/class/backlight/acpi_video0/max_brightness":     "10",
		}, "", nil), "/sys/class/backlight/intel_backlight/brightness")
		r := NewWithShims(shims, nil)

		got, err := r.Brightness()

		require.NoError(t, err)
		assert.Equal(t, "\uf108   50%", got)
	})

	t.Run("NoBacklight", func(t *testing.T) {
		r := NewWithShims(setupShims(t, map[string]string{}, "", nil), nil)

		_, err := r.Brightness()

		assert.Error(t, err)
	})
}

const amixerOutput = `Simple mixer control 'Master',0
  Capabilities: pvolume pswitch pswitch-joined
  Playback channels: Front Left - Front Right
  Limits: Playback 0 - 65536
  Mono:
  Front Left: Playback 39321 [60%] [on]
  Front Right: Playback 39321 [60%] [on]
`

func TestVolume(t *testing.T) {
	t.Run("On", func(t *testing.T) {
		r := NewWithShims(setupShims(t, nil, amixerOutput, nil), nil)

		got, err := r.Volume()

		require.NoError(t, err)
		assert.Equal(t, "\uf028  60%", got)
	})

	t.Run("Muted", func(t *testing.T) {
		out := strings.ReplaceAll(amixerOutput, "[on]", "[off]")
		r := NewWithShims(setupShims(t, nil, out, nil), nil)

		got, err := r.Volume()

		require.NoError(t, err)
		assert.Equal(t, "\uf026  OFF (60%)", got)
	})

	t.Run("Unparseable", func(t *testing.T) {
		r := NewWithShims(setupShims(t, nil, "amixer: Unable to find simple control 'Master',0\n", nil), nil)

		_, err := r.Volume()

		assert.True(t, errors.Is(err, ErrVolumeParse))
	})

	t.Run("CommandFailure", func(t *testing.T) {
		r := NewWithShims(setupShims(t, nil, "", errors.New("exec: \"amixer\": executable file not found in $PATH")), nil)

		_, err := r.Volume()

		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrVolumeParse))
	})
}

func TestParseVolume(t *testing.T) {
	tests := []struct {
		line      string
		level     int
		muted     bool
		wantError bool
	}{
		{"Front Left: Playback 39321 [60%] [-15.00dB] [off]", 60, true, false},
		{"Mono: Playback 65536 [100%] [0.00dB] [on]", 100, false, false},
		{"Mono: Playback 0 [0%] [on]", 0, false, false},
		{"", 0, false, true},
		{"Mono: [on]", 0, false, true},
		{"Mono: [x%] [on]", 0, false, true},
	}
	for _, tc := range tests {
		level, muted, err := parseVolume(tc.line)
		if tc.wantError {
			assert.True(t, errors.Is(err, ErrVolumeParse), "parseVolume(%q)", tc.line)
			continue
		}
		require.NoError(t, err, "parseVolume(%q)", tc.line)
		assert.Equal(t, tc.level, level, "parseVolume(%q)", tc.line)
		assert.Equal(t, tc.muted, muted, "parseVolume(%q)", tc.line)
	}
}

func TestLines(t *testing.T) {
	t.Run("SplitsOutput", func(t *testing.T) {
		r := NewWithShims(setupShims(t, nil, "first\nsecond\n", nil), nil)

		got, err := r.Lines("anything")

		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, got)
	})

	t.Run("NoOutput", func(t *testing.T) {
		r := NewWithShims(setupShims(t, nil, "", nil), nil)

		_, err := r.Lines("anything")

		assert.Error(t, err)
	})
}
