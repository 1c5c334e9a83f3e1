package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSwitchConfig_Verbosity(t *testing.T) {
	for _, tt := range []struct {
		level int
		debug bool
		raw   bool
	}{
		{0, false, false},
		{1, true, false},
		{2, false, true},
		{3, true, true},
		{4, false, false},
	} {
		cfg := SwitchConfig{VerbosityLevel: tt.level}
		assert.Equal(t, tt.debug, cfg.IsDebugEnabled(), "debug at level %d", tt.level)
		assert.Equal(t, tt.raw, cfg.IsRawOutputEnabled(), "raw at level %d", tt.level)
	}
}

func TestSwitchConfig_PlatformID(t *testing.T) {
	assert.Equal(t, "edgeswitch", SwitchConfig{}.PlatformID())
	assert.Equal(t, "edgeswitch", SwitchConfig{Platform: "  EdgeSwitch "}.PlatformID())
	assert.Equal(t, "auto", SwitchConfig{Platform: "AUTO"}.PlatformID())
}

func TestSwitchConfig_Address(t *testing.T) {
	assert.Equal(t, "10.0.0.2:23", SwitchConfig{Target: "10.0.0.2", Transport: "telnet"}.Address())
	assert.Equal(t, "10.0.0.2:22", SwitchConfig{Target: "10.0.0.2", Transport: "ssh"}.Address())
	assert.Equal(t, "10.0.0.2:2222", SwitchConfig{Target: "10.0.0.2", Transport: "ssh", Port: 2222}.Address())
	assert.Equal(t, "[fe80::1]:22", SwitchConfig{Target: "fe80::1", Transport: "ssh"}.Address())
}

func TestStringList_UnmarshalYAML(t *testing.T) {
	var doc struct {
		Scalar StringList `yaml:"scalar"`
		List   StringList `yaml:"list"`
		Absent StringList `yaml:"absent"`
	}
	err := yaml.Unmarshal([]byte("scalar: 0/45-0/48\nlist: [0/1, 0/4-0/6]\n"), &doc)
	require.NoError(t, err)
	assert.Equal(t, StringList{"0/45-0/48"}, doc.Scalar)
	assert.Equal(t, StringList{"0/1", "0/4-0/6"}, doc.List)
	assert.Nil(t, doc.Absent)

	err = yaml.Unmarshal([]byte("scalar: {a: b}\n"), &doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a string or a list of strings")
}

func TestVlanInput_UnmarshalYAML(t *testing.T) {
	var in VlanInput
	err := yaml.Unmarshal([]byte(`
purge: true
state: present
aggregate:
  - { vlan_id: 1, name: default, auto_untag: true, excluded_interfaces: 0/45-0/48 }
  - { vlan_id: 100, name: voice, auto_tag: true }
`), &in)
	require.NoError(t, err)

	assert.True(t, in.Purge)
	require.NotNil(t, in.State)
	assert.Equal(t, "present", *in.State)
	assert.Nil(t, in.VlanID)
	require.Len(t, in.Aggregate, 2)
	assert.Equal(t, 1, *in.Aggregate[0].VlanID)
	assert.Equal(t, StringList{"0/45-0/48"}, in.Aggregate[0].ExcludedInterfaces)
	assert.Nil(t, in.Aggregate[1].AutoUntag)
	assert.True(t, *in.Aggregate[1].AutoTag)
}

func TestVoiceSpec_NumericDSCP(t *testing.T) {
	var in VoiceInput
	require.NoError(t, yaml.Unmarshal([]byte("interfaces: all\nvlan_id: 100\ndscp: 46\n"), &in))
	require.NotNil(t, in.DSCP)
	assert.Equal(t, "46", *in.DSCP)
	assert.Equal(t, StringList{"all"}, in.Interfaces)
}

func TestSwitchPort_Membership(t *testing.T) {
	port := SwitchPort{
		Interface:      "0/1",
		PVID:           1,
		UntaggedVLANs:  []int{1},
		TaggedVLANs:    []int{100, 200},
		ForbiddenVLANs: []int{300},
	}
	assert.True(t, port.IsUntagged(1))
	assert.True(t, port.IsTagged(200))
	assert.False(t, port.IsTagged(1))
	assert.True(t, port.IsForbidden(300))
	assert.False(t, port.IsForbidden(100))
}

func TestResult_Add(t *testing.T) {
	var result Result
	result.Add(Plan{})
	assert.False(t, result.Changed)
	assert.NotNil(t, result.Commands)
	assert.NotNil(t, result.Warnings)

	result.Add(Plan{Warnings: []string{"interface 0/9 does not exist on target"}})
	assert.False(t, result.Changed)

	result.Add(Plan{Commands: []string{"interface 0/2", "no shutdown"}})
	assert.True(t, result.Changed)
	assert.Equal(t, []string{"interface 0/2", "no shutdown"}, result.Commands)
	assert.Len(t, result.Warnings, 1)
}

func TestPlan_Merge(t *testing.T) {
	a := Plan{Commands: []string{"vlan database", "vlan 100", "exit"}}
	b := Plan{Commands: []string{"interface 0/1", "vlan tagging 100"}, Warnings: []string{"w"}}
	merged := a.Merge(b)
	assert.Equal(t, []string{"vlan database", "vlan 100", "exit", "interface 0/1", "vlan tagging 100"}, merged.Commands)
	assert.Equal(t, []string{"w"}, merged.Warnings)
	assert.Len(t, a.Commands, 3)
}
