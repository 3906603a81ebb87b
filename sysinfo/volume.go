package sysinfo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrVolumeParse is returned when the mixer output has no volume level.
var ErrVolumeParse = errors.New("volume output could not be parsed")

// Volume returns the master volume block, read from amixer.
func (r *Reader) Volume() (string, error) {
	lines, err := r.Lines("amixer", "get", "Master")
	if err != nil {
		return "", err
	}
	level, muted, err := parseVolume(lines[len(lines)-1])
	if err != nil {
		return "", err
	}
	if muted {
		return fmt.Sprintf("%s  OFF (%d%%)", iconVolumeOff, level), nil
	}
	return fmt.Sprintf("%s  %d%%", iconVolumeOn, level), nil
}

// parseVolume reads the bracketed fields of an amixer channel line, e.g.
// "Front Left: Playback 39321 [60%] [-15.00dB] [off]".
func parseVolume(line string) (int, bool, error) {
	var (
		level int
		found bool
		muted bool
	)
	for _, tok := range strings.Fields(line) {
		if !strings.HasPrefix(tok, "[") || !strings.HasSuffix(tok, "]") {
			continue
		}
		inner := tok[1 : len(tok)-1]
		if pct, ok := strings.CutSuffix(inner, "%"); ok {
			v, err := strconv.Atoi(pct)
			if err != nil {
				return 0, false, errors.Wrapf(ErrVolumeParse, "bad level %q", tok)
			}
			level, found = v, true
			continue
		}
		if inner == "off" {
			muted = true
		}
	}
	if !found {
		return 0, false, ErrVolumeParse
	}
	return level, muted, nil
}
