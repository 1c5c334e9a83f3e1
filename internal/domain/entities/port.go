package entities

import "slices"

// MembershipMode is how an interface participates in a VLAN
type MembershipMode string

const (
	ModeTag     MembershipMode = "tag"
	ModeUntag   MembershipMode = "untag"
	ModeExclude MembershipMode = "exclude"
)

// SwitchPort holds the VLAN membership of one interface as reported by
// "show interfaces switchport".
type SwitchPort struct {
	Interface      string
	PVID           int
	UntaggedVLANs  []int
	TaggedVLANs    []int
	ForbiddenVLANs []int
}

// IsTagged reports whether vlan is in the tagged set
func (p SwitchPort) IsTagged(vlan int) bool {
	return slices.Contains(p.TaggedVLANs, vlan)
}

// IsUntagged reports whether vlan is in the untagged set
func (p SwitchPort) IsUntagged(vlan int) bool {
	return slices.Contains(p.UntaggedVLANs, vlan)
}

// IsForbidden reports whether vlan is in the forbidden set
func (p SwitchPort) IsForbidden(vlan int) bool {
	return slices.Contains(p.ForbiddenVLANs, vlan)
}
