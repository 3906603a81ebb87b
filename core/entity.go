package core

import "net"

// Category is the classification assigned to a network interface.
type Category int32

const (
	CategoryUnknown Category = iota
	CategoryLoopback
	CategoryWired
	CategoryWireless
)

func (c Category) String() string {
	switch c {
	case CategoryLoopback:
		return "LOOP"
	case CategoryWired:
		return "WIRED"
	case CategoryWireless:
		return "WIRELESS"
	default:
		return "UNKNOWN"
	}
}

// Flags holds the operational state bits of an interface.
// Values match the kernel's IFF_* constants.
type Flags uint32

const (
	FlagUp       Flags = 0x1
	FlagLoopback Flags = 0x8
	FlagRunning  Flags = 0x40
)

// UpAndRunning reports whether both the up and running bits are set.
func (f Flags) UpAndRunning() bool {
	return f&FlagUp != 0 && f&FlagRunning != 0
}

// InetAddress is one IPv4 address entry as reported by the OS.
// The same interface appears once per configured address.
type InetAddress struct {
	// link name of the interface e.g. eth0
	Name string `json:"name"`
	// kernel address label, may be an alias e.g. eth0:1
	Label string `json:"label"`
	// the IPv4 address itself
	IP net.IP `json:"ip"`
}

// Properties is the category-specific payload of an InterfaceRecord.
// The only implementations are WiredProperties and WirelessProperties.
type Properties interface {
	Category() Category
	isProperties()
}

// WiredProperties holds data fetched for a wired interface.
type WiredProperties struct {
	Flags Flags `json:"flags"`
}

func (WiredProperties) Category() Category { return CategoryWired }
func (WiredProperties) isProperties()      {}

// WirelessProperties holds data fetched for a wireless interface.
type WirelessProperties struct {
	// essid of the associated network, empty when unassociated
	ESSID string `json:"essid"`
}

func (WirelessProperties) Category() Category { return CategoryWireless }
func (WirelessProperties) isProperties()      {}

// InterfaceRecord is one discovered network interface.
type InterfaceRecord struct {
	Name       string     `json:"name"`
	Category   Category   `json:"category"`
	Properties Properties `json:"properties,omitempty"`
}

// attach sets the properties payload, refusing one whose tag does not
// match the record's category.
func (r *InterfaceRecord) attach(p Properties) bool {
	if p == nil || p.Category() != r.Category {
		return false
	}
	r.Properties = p
	return true
}

// Wired returns the wired payload, if any.
func (r InterfaceRecord) Wired() (WiredProperties, bool) {
	p, ok := r.Properties.(WiredProperties)
	return p, ok
}

// Wireless returns the wireless payload, if any.
func (r InterfaceRecord) Wireless() (WirelessProperties, bool) {
	p, ok := r.Properties.(WirelessProperties)
	return p, ok
}
