package entities

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// StringList accepts either a single YAML scalar or a sequence of scalars,
// so "tagged_interfaces: 0/1-0/4" and "tagged_interfaces: [0/1, 0/4]" are
// both valid. A nil list means the field was omitted.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler
func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*l = StringList{value.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = StringList(items)
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", value.Line)
	}
}

// VlanSpec is one VLAN entry as written by the caller. Pointer fields stay
// nil when omitted so aggregate entries can inherit top-level values.
type VlanSpec struct {
	VlanID             *int       `yaml:"vlan_id"`
	Name               *string    `yaml:"name"`
	TaggedInterfaces   StringList `yaml:"tagged_interfaces"`
	UntaggedInterfaces StringList `yaml:"untagged_interfaces"`
	ExcludedInterfaces StringList `yaml:"excluded_interfaces"`
	AutoTag            *bool      `yaml:"auto_tag"`
	AutoUntag          *bool      `yaml:"auto_untag"`
	AutoExclude        *bool      `yaml:"auto_exclude"`
	State              *string    `yaml:"state"`
}

// VlanInput is the VLAN domain parameter set: an inline entry or an
// aggregate, plus the purge policy.
type VlanInput struct {
	VlanSpec  `yaml:",inline"`
	Aggregate []VlanSpec `yaml:"aggregate"`
	Purge     bool       `yaml:"purge"`
}

// InterfaceSpec is one interface entry as written by the caller
type InterfaceSpec struct {
	Name        *string `yaml:"name"`
	Description *string `yaml:"description"`
	Speed       *string `yaml:"speed"`
	MTU         *int    `yaml:"mtu"`
	Enabled     *bool   `yaml:"enabled"`
}

// InterfaceInput is the interface domain parameter set
type InterfaceInput struct {
	InterfaceSpec `yaml:",inline"`
	Aggregate     []InterfaceSpec `yaml:"aggregate"`
}

// VoiceSpec is one voice entry as written by the caller
type VoiceSpec struct {
	Interfaces StringList `yaml:"interfaces"`
	VlanID     *int       `yaml:"vlan_id"`
	DSCP       *string    `yaml:"dscp"`
	LLDP       StringList `yaml:"lldp"`
	State      *string    `yaml:"state"`
}

// VoiceInput is the voice domain parameter set
type VoiceInput struct {
	VoiceSpec `yaml:",inline"`
	Aggregate []VoiceSpec `yaml:"aggregate"`
}

// DesiredState groups the desired parameters of every domain. A nil
// section leaves that domain alone.
type DesiredState struct {
	VLANs      *VlanInput      `yaml:"vlans"`
	Interfaces *InterfaceInput `yaml:"interfaces"`
	Voice      *VoiceInput     `yaml:"voice"`
}
