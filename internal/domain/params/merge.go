// Package params turns caller-supplied parameter sets into ordered,
// validated desired-object lists.
package params

import (
	"fmt"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/util"
)

// MergeVLANSpec fills every omitted field of entry from defaults
func MergeVLANSpec(entry, defaults entities.VlanSpec) entities.VlanSpec {
	entry.VlanID = pick(entry.VlanID, defaults.VlanID)
	entry.Name = pick(entry.Name, defaults.Name)
	entry.TaggedInterfaces = pickList(entry.TaggedInterfaces, defaults.TaggedInterfaces)
	entry.UntaggedInterfaces = pickList(entry.UntaggedInterfaces, defaults.UntaggedInterfaces)
	entry.ExcludedInterfaces = pickList(entry.ExcludedInterfaces, defaults.ExcludedInterfaces)
	entry.AutoTag = pick(entry.AutoTag, defaults.AutoTag)
	entry.AutoUntag = pick(entry.AutoUntag, defaults.AutoUntag)
	entry.AutoExclude = pick(entry.AutoExclude, defaults.AutoExclude)
	entry.State = pick(entry.State, defaults.State)
	return entry
}

// MergeInterfaceSpec fills every omitted field of entry from defaults
func MergeInterfaceSpec(entry, defaults entities.InterfaceSpec) entities.InterfaceSpec {
	entry.Name = pick(entry.Name, defaults.Name)
	entry.Description = pick(entry.Description, defaults.Description)
	entry.Speed = pick(entry.Speed, defaults.Speed)
	entry.MTU = pick(entry.MTU, defaults.MTU)
	entry.Enabled = pick(entry.Enabled, defaults.Enabled)
	return entry
}

// MergeVoiceSpec fills every omitted field of entry from defaults
func MergeVoiceSpec(entry, defaults entities.VoiceSpec) entities.VoiceSpec {
	entry.Interfaces = pickList(entry.Interfaces, defaults.Interfaces)
	entry.VlanID = pick(entry.VlanID, defaults.VlanID)
	entry.DSCP = pick(entry.DSCP, defaults.DSCP)
	entry.LLDP = pickList(entry.LLDP, defaults.LLDP)
	entry.State = pick(entry.State, defaults.State)
	return entry
}

func pick[T any](value, fallback *T) *T {
	if value != nil {
		return value
	}
	return fallback
}

func pickList(value, fallback entities.StringList) entities.StringList {
	if value != nil {
		return value
	}
	return fallback
}

// selectEntries applies the inline/aggregate exclusivity rule and returns
// the entries to normalize, aggregate entries merged with the inline
// defaults.
func selectEntries[S any](inline S, aggregate []S, hasKey bool, key string, merge func(S, S) S) ([]S, error) {
	if hasKey && len(aggregate) > 0 {
		return nil, util.NewValidationError(fmt.Sprintf("parameters are mutually exclusive: %s|aggregate", key))
	}
	if !hasKey && len(aggregate) == 0 {
		return nil, util.NewValidationError(fmt.Sprintf("one of the following is required: %s, aggregate", key))
	}
	if hasKey {
		return []S{inline}, nil
	}
	out := make([]S, 0, len(aggregate))
	for _, entry := range aggregate {
		out = append(out, merge(entry, inline))
	}
	return out, nil
}

func parseState(raw *string) (entities.State, error) {
	if raw == nil {
		return entities.StatePresent, nil
	}
	switch state := entities.State(*raw); state {
	case entities.StatePresent, entities.StateAbsent:
		return state, nil
	default:
		return "", util.NewValidationError(fmt.Sprintf("value of state must be one of: present, absent, got: %s", *raw))
	}
}

func deref[T any](value *T) T {
	var zero T
	if value == nil {
		return zero
	}
	return *value
}
