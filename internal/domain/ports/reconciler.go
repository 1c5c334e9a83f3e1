package ports

import "github.com/carlosrabelo/edgesync/internal/domain/entities"

// Reconciler defines the port used by front ends to reconcile a switch
type Reconciler interface {
	ApplyVLANs(in entities.VlanInput) (entities.Result, error)
	ApplyInterfaces(in entities.InterfaceInput) (entities.Result, error)
	ApplyVoice(in entities.VoiceInput) (entities.Result, error)
	ApplyAll(desired entities.DesiredState) (entities.Result, error)
}
