package services

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/domain/ifrange"
)

const (
	vlanDatabaseEnter = "vlan database"
	vlanDatabaseExit  = "exit"
)

// VLANCommands computes the vlan database commands creating, renaming and
// deleting VLANs. With purge set every observed VLAN missing from want is
// deleted. The default VLAN is never deleted nor renamed.
func VLANCommands(want []entities.VlanParams, have []entities.VlanRecord, purge bool) entities.Plan {
	observed := lo.SliceToMap(have, func(v entities.VlanRecord) (int, entities.VlanRecord) {
		return v.ID, v
	})

	var cmds []string
	var notes warnings
	for _, w := range want {
		current, exists := observed[w.VlanID]

		switch w.State {
		case entities.StateAbsent:
			if !exists {
				continue
			}
			if w.VlanID == entities.DefaultVlanID {
				notes.add(fmt.Sprintf("vlan %d is the default vlan and cannot be deleted", w.VlanID))
				continue
			}
			cmds = append(cmds, fmt.Sprintf("no vlan %d", w.VlanID))

		case entities.StatePresent:
			if !exists {
				cmds = append(cmds, fmt.Sprintf("vlan %d", w.VlanID))
				if w.Name != "" {
					cmds = append(cmds, vlanNameCommand(w.VlanID, w.Name))
				}
				continue
			}
			if w.Name == "" || w.Name == current.Name {
				continue
			}
			if w.VlanID == entities.DefaultVlanID {
				notes.add(fmt.Sprintf("vlan %d is the default vlan and cannot be renamed", w.VlanID))
				continue
			}
			cmds = append(cmds, vlanNameCommand(w.VlanID, w.Name))
		}
	}

	if purge {
		wanted := lo.SliceToMap(want, func(w entities.VlanParams) (int, struct{}) {
			return w.VlanID, struct{}{}
		})
		for _, h := range have {
			if _, ok := wanted[h.ID]; ok || h.ID == entities.DefaultVlanID {
				continue
			}
			cmds = append(cmds, fmt.Sprintf("no vlan %d", h.ID))
		}
	}

	if len(cmds) > 0 {
		cmds = append([]string{vlanDatabaseEnter}, cmds...)
		cmds = append(cmds, vlanDatabaseExit)
	}
	return entities.Plan{Commands: cmds, Warnings: notes}
}

func vlanNameCommand(id int, name string) string {
	return fmt.Sprintf(`vlan name %d "%s"`, id, name)
}

// MembershipCommands computes the per-interface participation commands for
// every present VLAN of want. The auto policy of an entry applies to every
// observed port, then the explicit tagged, untagged and excluded lists
// override it in that order.
func MembershipCommands(want []entities.VlanParams, ports map[string]entities.SwitchPort) (entities.Plan, error) {
	known := physical(lo.Keys(ports))
	acc := interfaceCommands{}
	var notes warnings

	for _, w := range want {
		if w.State != entities.StatePresent {
			continue
		}

		modes := make(map[string]entities.MembershipMode)
		var order []string
		assign := func(name string, mode entities.MembershipMode) {
			if _, seen := modes[name]; !seen {
				order = append(order, name)
			}
			modes[name] = mode
		}

		if auto, ok := autoMode(w); ok {
			for _, name := range known {
				assign(name, auto)
			}
		}

		for _, explicit := range []struct {
			tokens []string
			mode   entities.MembershipMode
		}{
			{w.TaggedInterfaces, entities.ModeTag},
			{w.UntaggedInterfaces, entities.ModeUntag},
			{w.ExcludedInterfaces, entities.ModeExclude},
		} {
			names, err := ifrange.ExpandAll(explicit.tokens, known)
			if err != nil {
				return entities.Plan{}, err
			}
			for _, name := range names {
				assign(name, explicit.mode)
			}
		}

		for _, name := range order {
			port, ok := ports[name]
			if !ok {
				notes.missing(name)
				continue
			}
			acc.add(name, membershipCommands(w.VlanID, modes[name], port)...)
		}
	}

	return entities.Plan{Commands: acc.emit(), Warnings: notes}, nil
}

func autoMode(w entities.VlanParams) (entities.MembershipMode, bool) {
	switch {
	case w.AutoTag:
		return entities.ModeTag, true
	case w.AutoUntag:
		return entities.ModeUntag, true
	case w.AutoExclude:
		return entities.ModeExclude, true
	}
	return "", false
}

func membershipCommands(vlan int, mode entities.MembershipMode, port entities.SwitchPort) []string {
	switch mode {
	case entities.ModeExclude:
		if port.IsForbidden(vlan) {
			return nil
		}
		return []string{
			fmt.Sprintf("vlan participation exclude %d", vlan),
			fmt.Sprintf("no vlan tagging %d", vlan),
		}
	case entities.ModeUntag:
		if port.IsUntagged(vlan) && port.PVID == vlan {
			return nil
		}
		return []string{
			fmt.Sprintf("vlan pvid %d", vlan),
			fmt.Sprintf("vlan participation include %d", vlan),
		}
	case entities.ModeTag:
		if port.IsTagged(vlan) {
			return nil
		}
		return []string{
			fmt.Sprintf("vlan participation include %d", vlan),
			fmt.Sprintf("vlan tagging %d", vlan),
		}
	}
	return nil
}
