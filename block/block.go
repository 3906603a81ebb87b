// Package block renders status-bar blocks as Pango markup for i3blocks.
package block

import (
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
)

// Empty is the block text that produces no output at all.
const Empty = ""

const (
	DefaultForeground = "#FFFFFF"
	DefaultBackground = "#000000"

	errorForeground = "#000000"
	errorBackground = "#B41717"

	DefaultPadding = 5
	MaxPadding     = 10
)

// Error codes shown in error blocks.
const (
	ErrArgs     = "ARGS ERROR"
	ErrInvalid  = "INVALID CMD"
	ErrVolParse = "VOL PARSE FAIL"
)

var colorRegex = regexp.MustCompile(`^#[A-Za-z0-9]{6}$`)

// ValidColor reports whether s is a '#' followed by six ASCII alphanumerics.
func ValidColor(s string) bool {
	return colorRegex.MatchString(s)
}

// ClampPadding limits the padding to [0, MaxPadding], taking the absolute
// value of negative input.
func ClampPadding(pad int) int {
	if pad < 0 {
		pad = -pad
	}
	if pad > MaxPadding {
		pad = MaxPadding
	}
	return pad
}

// Render wraps text in a colored span. Invalid colors are replaced by the
// defaults. The right padding is two spaces narrower than the left.
func Render(fg, bg, text string, padding int) string {
	if text == Empty {
		return Empty
	}
	if !ValidColor(fg) {
		fg = DefaultForeground
	}
	if !ValidColor(bg) {
		bg = DefaultBackground
	}
	padding = ClampPadding(padding)
	padl := strings.Repeat(" ", padding)
	padr := strings.Repeat(" ", max(0, padding-2))
	return fmt.Sprintf("<span foreground=\"%s\" background=\"%s\">%s%s%s</span>\n",
		fg, bg, padl, html.EscapeString(text), padr)
}

// Writer writes rendered blocks to an output stream.
type Writer struct {
	out     io.Writer
	padding int
}

func NewWriter(out io.Writer, padding int) *Writer {
	return &Writer{out: out, padding: ClampPadding(padding)}
}

// Write renders text with the given colors. Empty text writes nothing.
func (w *Writer) Write(fg, bg, text string) error {
	s := Render(fg, bg, text, w.padding)
	if s == Empty {
		return nil
	}
	_, err := io.WriteString(w.out, s)
	return err
}

// Error writes an error block with fixed colors.
func (w *Writer) Error(code string) error {
	return w.Write(errorForeground, errorBackground, code)
}
