package params

import (
	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/util"
)

// NormalizeInterfaces validates an interface parameter set and returns the
// desired interfaces in input order.
func NormalizeInterfaces(in entities.InterfaceInput) ([]entities.InterfaceParams, error) {
	specs, err := selectEntries(in.InterfaceSpec, in.Aggregate, in.Name != nil, "name", MergeInterfaceSpec)
	if err != nil {
		return nil, err
	}

	vb := &util.ValidationBuilder{}
	var formatErr error
	out := make([]entities.InterfaceParams, 0, len(specs))
	for _, spec := range specs {
		if err := runChecks(interfaceChecks, spec, vb); err != nil && formatErr == nil {
			formatErr = err
		}
		want := entities.InterfaceParams{
			Name:        deref(spec.Name),
			Description: deref(spec.Description),
			Speed:       deref(spec.Speed),
			MTU:         deref(spec.MTU),
		}
		if spec.Enabled != nil {
			disabled := !*spec.Enabled
			want.Disabled = &disabled
		}
		out = append(out, want)
	}
	if err := finish(vb, formatErr); err != nil {
		return nil, err
	}
	return out, nil
}
