package services

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/domain/ifrange"
)

// MTUProbe reads the running MTU of one interface from the device
type MTUProbe func(iface string) (int, error)

// HydrateRunningMTU fills the observed MTU of every interface that a
// desired entry wants to set an MTU on but whose running configuration has
// no mtu line. It is the only part of the interface pass that talks to the
// device, so it runs before InterfaceCommands.
func HydrateRunningMTU(want []entities.InterfaceParams, have []entities.InterfaceConfig, probe MTUProbe) error {
	index := make(map[string]int, len(have))
	for i, h := range have {
		index[h.Name] = i
	}
	known := physical(lo.Keys(index))

	for _, w := range want {
		if w.MTU == 0 {
			continue
		}
		names, err := ifrange.ExpandAll([]string{w.Name}, known)
		if err != nil {
			return err
		}
		for _, name := range names {
			i, ok := index[name]
			if !ok || have[i].MTU != 0 {
				continue
			}
			mtu, err := probe(name)
			if err != nil {
				return err
			}
			have[i].MTU = mtu
		}
	}
	return nil
}

// InterfaceCommands computes the attribute commands for every desired
// interface. Fields are compared independently and emitted in the order
// mtu, description, speed, shutdown.
func InterfaceCommands(want []entities.InterfaceParams, have []entities.InterfaceConfig) (entities.Plan, error) {
	observed := lo.SliceToMap(have, func(h entities.InterfaceConfig) (string, entities.InterfaceConfig) {
		return h.Name, h
	})
	known := physical(lo.Keys(observed))
	acc := interfaceCommands{}
	var notes warnings

	for _, w := range want {
		names, err := ifrange.ExpandAll([]string{w.Name}, known)
		if err != nil {
			return entities.Plan{}, err
		}
		for _, name := range names {
			current, ok := observed[name]
			if !ok {
				notes.missing(name)
				continue
			}
			acc.add(name, attributeCommands(w, current)...)
		}
	}

	return entities.Plan{Commands: acc.emit(), Warnings: notes}, nil
}

func attributeCommands(w entities.InterfaceParams, h entities.InterfaceConfig) []string {
	var cmds []string

	if w.MTU != 0 && w.MTU != h.MTU {
		cmds = append(cmds, fmt.Sprintf("mtu %d", w.MTU))
	}

	if w.Description != "" {
		if w.Description != h.Description {
			cmds = append(cmds, fmt.Sprintf("description '%s'", w.Description))
		}
	} else if h.Description != "" {
		cmds = append(cmds, "no description")
	}

	if w.Speed != "" && w.Speed != h.Speed {
		cmds = append(cmds, "speed "+w.Speed)
	}

	if w.Disabled != nil && *w.Disabled != h.Disabled {
		if *w.Disabled {
			cmds = append(cmds, "shutdown")
		} else {
			cmds = append(cmds, "no shutdown")
		}
	}

	return cmds
}
