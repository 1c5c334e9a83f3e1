package params

import (
	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/util"
)

// NormalizeVLANs validates a VLAN parameter set and returns the desired
// VLANs in input order.
func NormalizeVLANs(in entities.VlanInput) ([]entities.VlanParams, error) {
	specs, err := selectEntries(in.VlanSpec, in.Aggregate, in.VlanID != nil, "vlan_id", MergeVLANSpec)
	if err != nil {
		return nil, err
	}

	vb := &util.ValidationBuilder{}
	var formatErr error
	out := make([]entities.VlanParams, 0, len(specs))
	for _, spec := range specs {
		if err := runChecks(vlanChecks, spec, vb); err != nil && formatErr == nil {
			formatErr = err
		}
		state, err := parseState(spec.State)
		if err != nil {
			return nil, err
		}
		out = append(out, entities.VlanParams{
			VlanID:             deref(spec.VlanID),
			Name:               deref(spec.Name),
			TaggedInterfaces:   spec.TaggedInterfaces,
			UntaggedInterfaces: spec.UntaggedInterfaces,
			ExcludedInterfaces: spec.ExcludedInterfaces,
			AutoTag:            deref(spec.AutoTag),
			AutoUntag:          deref(spec.AutoUntag),
			AutoExclude:        deref(spec.AutoExclude),
			State:              state,
		})
	}
	if err := finish(vb, formatErr); err != nil {
		return nil, err
	}
	return out, nil
}
