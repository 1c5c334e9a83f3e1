package entities

// DefaultSpeed is reported for interfaces without a speed line
const DefaultSpeed = "auto"

// InterfaceConfig is the observed attribute snapshot of one interface.
// MTU is zero when the running configuration has no explicit mtu line.
type InterfaceConfig struct {
	Name        string
	Description string
	Speed       string
	MTU         int
	Disabled    bool
}

// InterfaceParams is a normalized desired interface. An empty Speed or a
// zero MTU leaves the attribute untouched; Disabled is nil when enabled
// was not supplied.
type InterfaceParams struct {
	Name        string
	Description string
	Speed       string
	MTU         int
	Disabled    *bool
}
