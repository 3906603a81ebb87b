//go:build linux
// +build linux

package core

import (
	"bytes"
	"runtime"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/safchain/ethtool"
	"golang.org/x/sys/unix"
)

// Wireless extension requests, see linux/wireless.h.
const (
	siocgiwname    = 0x8B01
	siocgiwessid   = 0x8B1B
	iwEssidMaxSize = 32
)

// iwPoint mirrors struct iw_point.
type iwPoint struct {
	pointer unsafe.Pointer
	length  uint16
	flags   uint16
}

// iwreqPoint mirrors struct iwreq when the union holds an iw_point.
type iwreqPoint struct {
	name [unix.IFNAMSIZ]byte
	data iwPoint
	_    [unix.IFNAMSIZ - unsafe.Sizeof(iwPoint{})]byte
}

// iwreqName mirrors struct iwreq when the union holds the protocol name.
type iwreqName struct {
	name  [unix.IFNAMSIZ]byte
	proto [unix.IFNAMSIZ]byte
}

// Channel issues control requests to the networking stack. It owns a
// datagram socket used only for ioctls and an ethtool handle.
type Channel struct {
	fd int
	et *ethtool.Ethtool
}

// OpenChannel creates the request socket and the ethtool handle.
func OpenChannel() (*Channel, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create default request socket.")
	}
	et, err := ethtool.NewEthtool()
	if err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "Failed to create ethtool request socket.")
	}
	return &Channel{fd: fd, et: et}, nil
}

// Flags issues SIOCGIFFLAGS.
func (c *Channel) Flags(name string) (Flags, error) {
	ifr, err := unix.NewIfreq(name)
	if err != nil {
		return 0, err
	}
	if err := unix.IoctlIfreq(c.fd, unix.SIOCGIFFLAGS, ifr); err != nil {
		return 0, err
	}
	return Flags(ifr.Uint16()), nil
}

// LinkState issues an ETHTOOL_GLINK request.
func (c *Channel) LinkState(name string) (uint32, error) {
	return c.et.LinkState(name)
}

// WirelessName issues SIOCGIWNAME and returns the reported protocol name.
func (c *Channel) WirelessName(name string) (string, error) {
	var req iwreqName
	if err := setName(req.name[:], name); err != nil {
		return "", err
	}
	if err := c.ioctl(siocgiwname, unsafe.Pointer(&req)); err != nil {
		return "", err
	}
	return cString(req.proto[:]), nil
}

// ESSID issues SIOCGIWESSID.
func (c *Channel) ESSID(name string) (string, error) {
	buf := new([iwEssidMaxSize + 1]byte)
	req := iwreqPoint{}
	if err := setName(req.name[:], name); err != nil {
		return "", err
	}
	req.data.pointer = unsafe.Pointer(buf)
	req.data.length = uint16(len(buf))

	err := c.ioctl(siocgiwessid, unsafe.Pointer(&req))
	runtime.KeepAlive(buf)
	if err != nil {
		return "", err
	}

	n := int(req.data.length)
	if n > len(buf) {
		n = len(buf)
	}
	return cString(buf[:n]), nil
}

func (c *Channel) Close() error {
	c.et.Close()
	return unix.Close(c.fd)
}

func (c *Channel) ioctl(req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(c.fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func setName(dst []byte, name string) error {
	if len(name) >= len(dst) {
		return unix.EINVAL
	}
	copy(dst, name)
	return nil
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
