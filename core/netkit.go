package core

import (
	"github.com/pkg/errors"
)

// Netkit issues the OS queries the core needs. Each call is one blocking
// request; nothing is cached between calls.
type Netkit interface {
	// InetAddresses lists every IPv4 address entry, duplicates included.
	InetAddresses() ([]InetAddress, error)
	// Flags returns the operational flags of the named interface.
	Flags(name string) (Flags, error)
	// ProbeWired reports whether the interface answers a link-status request.
	ProbeWired(name string) (bool, error)
	// ProbeWireless reports whether the interface answers a wireless-name request.
	ProbeWireless(name string) (bool, error)
	// ESSID returns the network name the wireless interface is bound to.
	ESSID(name string) (string, error)
	Close() error
}

// ListInetInterfaces returns the distinct names of all IPv4-bearing
// interfaces in first-seen order.
func ListInetInterfaces(kit Netkit) ([]string, error) {
	addrs, err := kit.InetAddresses()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(addrs))
	var names []string
	for _, a := range addrs {
		if _, ok := seen[a.Name]; ok {
			continue
		}
		seen[a.Name] = struct{}{}
		names = append(names, a.Name)
	}
	return names, nil
}

// Classify determines the category of the named interface. Loopback is
// decided by flag, then the wired probe is tried before the wireless one;
// the first positive answer wins.
func Classify(kit Netkit, name string) (Category, error) {
	flags, err := kit.Flags(name)
	if err != nil {
		return CategoryUnknown, errors.Wrap(err, "Interface flag-check error.")
	}
	if flags&FlagLoopback != 0 {
		return CategoryLoopback, nil
	}

	ok, err := kit.ProbeWired(name)
	if err != nil {
		return CategoryUnknown, errors.Wrapf(err, "link probe failed for %s", name)
	}
	if ok {
		return CategoryWired, nil
	}

	ok, err = kit.ProbeWireless(name)
	if err != nil {
		return CategoryUnknown, errors.Wrapf(err, "wireless probe failed for %s", name)
	}
	if ok {
		return CategoryWireless, nil
	}
	return CategoryUnknown, nil
}

// WiredPropertiesOf fetches the operational flags of a wired interface.
func WiredPropertiesOf(kit Netkit, name string) (WiredProperties, error) {
	flags, err := kit.Flags(name)
	if err != nil {
		return WiredProperties{}, errors.Wrap(err, "Interface flag-check failed for eth interface.")
	}
	return WiredProperties{Flags: flags}, nil
}

// WirelessPropertiesOf fetches the ESSID of a wireless interface.
func WirelessPropertiesOf(kit Netkit, name string) (WirelessProperties, error) {
	essid, err := kit.ESSID(name)
	if err != nil {
		return WirelessProperties{}, errors.Wrap(err, "Wireless interface ESSID request failed.")
	}
	return WirelessProperties{ESSID: essid}, nil
}

// extract populates the record's properties according to its category.
// Loopback and unknown interfaces carry no properties.
func extract(kit Netkit, rec *InterfaceRecord) error {
	var p Properties
	switch rec.Category {
	case CategoryWired:
		wp, err := WiredPropertiesOf(kit, rec.Name)
		if err != nil {
			return err
		}
		p = wp
	case CategoryWireless:
		wp, err := WirelessPropertiesOf(kit, rec.Name)
		if err != nil {
			return err
		}
		p = wp
	default:
		return nil
	}
	if !rec.attach(p) {
		return errors.Errorf("properties of %s do not match category %s", rec.Name, rec.Category)
	}
	return nil
}
