package params

import (
	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/util"
)

// NormalizeVoice validates a voice parameter set and returns the desired
// voice entries in input order.
func NormalizeVoice(in entities.VoiceInput) ([]entities.VoiceParams, error) {
	specs, err := selectEntries(in.VoiceSpec, in.Aggregate, in.Interfaces != nil, "interfaces", MergeVoiceSpec)
	if err != nil {
		return nil, err
	}

	vb := &util.ValidationBuilder{}
	var formatErr error
	out := make([]entities.VoiceParams, 0, len(specs))
	for _, spec := range specs {
		state, err := parseState(spec.State)
		if err != nil {
			return nil, err
		}
		if err := runChecks(voiceChecks, spec, vb); err != nil && formatErr == nil {
			formatErr = err
		}
		out = append(out, entities.VoiceParams{
			Interfaces: spec.Interfaces,
			VlanID:     deref(spec.VlanID),
			DSCP:       deref(spec.DSCP),
			LLDP:       spec.LLDP,
			State:      state,
		})
	}
	if err := finish(vb, formatErr); err != nil {
		return nil, err
	}
	return out, nil
}
