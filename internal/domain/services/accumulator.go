// Package services holds the reconciliation engine: pure functions that
// compare desired and observed state and return the command plan turning
// one into the other.
package services

import (
	"slices"

	"github.com/samber/lo"

	"github.com/carlosrabelo/edgesync/internal/domain/ifrange"
	"github.com/carlosrabelo/edgesync/internal/util"
)

// interfaceCommands collects pending sub-commands per interface
type interfaceCommands map[string][]string

func (a interfaceCommands) add(name string, cmds ...string) {
	if len(cmds) == 0 {
		return
	}
	a[name] = append(a[name], cmds...)
}

// emit renders the accumulator in ascending interface order. Interfaces
// without sub-commands get no header.
func (a interfaceCommands) emit() []string {
	names := lo.Keys(a)
	ifrange.Sort(names)

	var out []string
	for _, name := range names {
		cmds := a[name]
		if len(cmds) == 0 {
			continue
		}
		out = append(out, "interface "+name)
		out = append(out, cmds...)
	}
	return out
}

// warnings keeps notices in first-seen order without duplicates
type warnings []string

func (w *warnings) missing(name string) {
	w.add(util.NewLookupError(name).Error())
}

func (w *warnings) add(msg string) {
	if slices.Contains(*w, msg) {
		return
	}
	*w = append(*w, msg)
}

// physical returns the sorted physical interface names among known
func physical(known []string) []string {
	out := lo.Filter(known, func(name string, _ int) bool {
		return ifrange.IsPhysical(name)
	})
	ifrange.Sort(out)
	return out
}
