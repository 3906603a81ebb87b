package core

import (
	"net"

	"github.com/pkg/errors"
)

// fakeIface scripts the answers a fakeNetkit gives for one interface.
type fakeIface struct {
	flags     Flags
	wired     bool
	wireless  bool
	essid     string
	flagsErr  error
	probeErr  error
	essidErr  error
	liveFlags *Flags
}

type fakeNetkit struct {
	addrs    []InetAddress
	addrsErr error
	ifaces   map[string]*fakeIface

	// per-interface request counts
	flagCalls  map[string]int
	probeCalls map[string]int
	essidCalls map[string]int
	closed     bool
}

func newFakeNetkit() *fakeNetkit {
	return &fakeNetkit{
		ifaces:     map[string]*fakeIface{},
		flagCalls:  map[string]int{},
		probeCalls: map[string]int{},
		essidCalls: map[string]int{},
	}
}

// add registers an interface with one IPv4 address per ip.
func (f *fakeNetkit) add(name string, iface *fakeIface, ips ...string) {
	f.ifaces[name] = iface
	if len(ips) == 0 {
		ips = []string{"10.0.0.1"}
	}
	for _, ip := range ips {
		f.addrs = append(f.addrs, InetAddress{Name: name, Label: name, IP: net.ParseIP(ip)})
	}
}

func (f *fakeNetkit) lookup(name string) (*fakeIface, error) {
	iface, ok := f.ifaces[name]
	if !ok {
		return nil, errors.Errorf("no such device %s", name)
	}
	return iface, nil
}

func (f *fakeNetkit) InetAddresses() ([]InetAddress, error) {
	return f.addrs, f.addrsErr
}

func (f *fakeNetkit) Flags(name string) (Flags, error) {
	iface, err := f.lookup(name)
	if err != nil {
		return 0, err
	}
	f.flagCalls[name]++
	if iface.flagsErr != nil {
		return 0, iface.flagsErr
	}
	// the first flag request is the classification one
	if iface.liveFlags != nil && f.flagCalls[name] > 1 {
		return *iface.liveFlags, nil
	}
	return iface.flags, nil
}

func (f *fakeNetkit) ProbeWired(name string) (bool, error) {
	iface, err := f.lookup(name)
	if err != nil {
		return false, err
	}
	f.probeCalls[name]++
	return iface.wired, iface.probeErr
}

func (f *fakeNetkit) ProbeWireless(name string) (bool, error) {
	iface, err := f.lookup(name)
	if err != nil {
		return false, err
	}
	f.probeCalls[name]++
	return iface.wireless, iface.probeErr
}

func (f *fakeNetkit) ESSID(name string) (string, error) {
	iface, err := f.lookup(name)
	if err != nil {
		return "", err
	}
	f.essidCalls[name]++
	return iface.essid, iface.essidErr
}

func (f *fakeNetkit) Close() error {
	f.closed = true
	return nil
}
