package entities

// State is the desired lifecycle of an entity.
type State string

const (
	StatePresent State = "present"
	StateAbsent  State = "absent"
)

// DefaultVlanID is the VLAN the switch ships with; it is never deleted.
const DefaultVlanID = 1

// VlanRecord is a VLAN observed on the switch
type VlanRecord struct {
	ID   int
	Name string
}

// VlanParams is a normalized desired VLAN
type VlanParams struct {
	VlanID             int
	Name               string
	TaggedInterfaces   []string
	UntaggedInterfaces []string
	ExcludedInterfaces []string
	AutoTag            bool
	AutoUntag          bool
	AutoExclude        bool
	State              State
}
