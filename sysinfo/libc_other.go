//go:build !linux
// +build !linux

package sysinfo

func readable(path string) bool {
	if path == "" {
		return false
	}
	return openable(path)
}
