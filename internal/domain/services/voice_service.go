package services

import (
	"slices"
	"strconv"

	"github.com/samber/lo"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/domain/ifrange"
)

// VoiceCommands computes the voice VLAN and LLDP commands for every desired
// entry. "all" stands for every observed physical interface.
func VoiceCommands(want []entities.VoiceParams, have map[string]entities.VoicePort) (entities.Plan, error) {
	known := physical(lo.Keys(have))
	acc := interfaceCommands{}
	var notes warnings

	for _, w := range want {
		names, err := ifrange.ExpandAll(w.Interfaces, known)
		if err != nil {
			return entities.Plan{}, err
		}
		for _, name := range names {
			port, ok := have[name]
			if !ok {
				notes.missing(name)
				continue
			}
			acc.add(name, voiceCommands(w, port)...)
		}
	}

	return entities.Plan{Commands: acc.emit(), Warnings: notes}, nil
}

func voiceCommands(w entities.VoiceParams, port entities.VoicePort) []string {
	var cmds []string

	if w.State == entities.StateAbsent {
		if port.VoiceVLAN != entities.VoiceUnset {
			cmds = append(cmds, "no voice vlan")
		}
		if port.VoiceDSCP != entities.VoiceUnset {
			cmds = append(cmds, "no voice vlan dscp")
		}
		return cmds
	}

	if vlan := strconv.Itoa(w.VlanID); port.VoiceVLAN != vlan {
		cmds = append(cmds, "voice vlan "+vlan)
	}
	if w.DSCP != "" && port.VoiceDSCP != w.DSCP {
		cmds = append(cmds, "voice vlan dscp "+w.DSCP)
	}
	for _, mode := range lo.Uniq(w.LLDP) {
		if !slices.Contains(port.LLDP, mode) {
			cmds = append(cmds, "lldp "+mode)
		}
	}
	return cmds
}
