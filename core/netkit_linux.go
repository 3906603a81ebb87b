//go:build linux
// +build linux

package core

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

// Netlink lookups, replaced in tests.
var (
	addrList    = netlink.AddrList
	linkByIndex = netlink.LinkByIndex
)

// LinuxNetkit answers queries through netlink and a lazily opened Channel.
type LinuxNetkit struct {
	log logrus.FieldLogger

	chOnce sync.Once
	ch     *Channel
	chErr  error
}

func DefaultNetkit(log logrus.FieldLogger) (Netkit, error) {
	return NewLinuxNetkit(log), nil
}

func NewLinuxNetkit(log logrus.FieldLogger) *LinuxNetkit {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &LinuxNetkit{log: log}
}

// channel returns the request channel, opening it on first use.
func (p *LinuxNetkit) channel() (*Channel, error) {
	p.chOnce.Do(func() {
		p.ch, p.chErr = OpenChannel()
		if p.chErr == nil {
			p.log.Debug("opened request channel")
		}
	})
	return p.ch, p.chErr
}

func (p *LinuxNetkit) InetAddresses() ([]InetAddress, error) {
	addrs, err := addrList(nil, netlink.FAMILY_V4)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to get interface list.")
	}

	// link index to name for this pass; empty once the link has vanished
	names := make(map[int]string)
	out := make([]InetAddress, 0, len(addrs))
	for _, a := range addrs {
		name, ok := names[a.LinkIndex]
		if !ok {
			link, err := linkByIndex(a.LinkIndex)
			var notFound netlink.LinkNotFoundError
			switch {
			case errors.As(err, &notFound):
				p.log.WithField("index", a.LinkIndex).Debug("link vanished during enumeration")
			case err != nil:
				return nil, errors.Wrapf(err, "Failed to resolve interface index %d.", a.LinkIndex)
			default:
				name = link.Attrs().Name
			}
			names[a.LinkIndex] = name
		}
		if name == "" {
			continue
		}
		entry := InetAddress{Name: name, Label: a.Label}
		if a.IPNet != nil {
			entry.IP = a.IP
		}
		out = append(out, entry)
	}
	return out, nil
}

func (p *LinuxNetkit) Flags(name string) (Flags, error) {
	ch, err := p.channel()
	if err != nil {
		return 0, err
	}
	return ch.Flags(name)
}

func (p *LinuxNetkit) ProbeWired(name string) (bool, error) {
	ch, err := p.channel()
	if err != nil {
		return false, err
	}
	_, err = ch.LinkState(name)
	return probeAnswer(err)
}

func (p *LinuxNetkit) ProbeWireless(name string) (bool, error) {
	ch, err := p.channel()
	if err != nil {
		return false, err
	}
	_, err = ch.WirelessName(name)
	return probeAnswer(err)
}

func (p *LinuxNetkit) ESSID(name string) (string, error) {
	ch, err := p.channel()
	if err != nil {
		return "", err
	}
	return ch.ESSID(name)
}

func (p *LinuxNetkit) Close() error {
	if p.ch == nil {
		return nil
	}
	return p.ch.Close()
}

// probeAnswer turns the result of a capability request into a yes/no
// answer. Only errors that mean the channel itself is unusable are
// returned; anything else is the interface saying no.
func probeAnswer(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	var errno unix.Errno
	if errors.As(err, &errno) {
		switch errno {
		case unix.EBADF, unix.EFAULT, unix.ENOTSOCK:
			return false, err
		}
	}
	return false, nil
}
