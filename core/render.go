package core

import (
	"fmt"

	"i3blk/block"
)

// Font Awesome glyphs.
const (
	iconWired    = "\uf1e6"
	iconWireless = "\uf1eb"
)

// RenderWired formats a wired record, or returns block.Empty when the
// interface is not both up and running.
func RenderWired(rec InterfaceRecord) string {
	p, ok := rec.Wired()
	if !ok || !p.Flags.UpAndRunning() {
		return block.Empty
	}
	return fmt.Sprintf("%s  ETH %s", iconWired, rec.Name)
}

// RenderWireless formats a wireless record. Visibility is decided by the
// live flags, not by anything stored on the record.
func RenderWireless(rec InterfaceRecord, live Flags) string {
	p, ok := rec.Wireless()
	if !ok || !live.UpAndRunning() {
		return block.Empty
	}
	return fmt.Sprintf("%s  %s", iconWireless, p.ESSID)
}

// Describe returns a one-line summary of a record for the interface survey.
func Describe(rec InterfaceRecord) string {
	switch p := rec.Properties.(type) {
	case WiredProperties:
		return fmt.Sprintf("%s - %s (%#x)", rec.Name, rec.Category, uint32(p.Flags))
	case WirelessProperties:
		return fmt.Sprintf("%s - %s (%s)", rec.Name, rec.Category, p.ESSID)
	default:
		return fmt.Sprintf("%s - %s", rec.Name, rec.Category)
	}
}
