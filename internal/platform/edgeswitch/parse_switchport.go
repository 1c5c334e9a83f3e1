package edgeswitch

import (
	"strconv"
	"strings"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/domain/ifrange"
)

// switchportBlock is the labelled fields of one "Port:" block
type switchportBlock struct {
	port   string
	fields map[string]string
}

// ParseSwitchports extracts the general mode membership of every port from
// "show interfaces switchport". Blocks missing one of the membership labels
// are skipped.
func ParseSwitchports(output string) map[string]entities.SwitchPort {
	ports := make(map[string]entities.SwitchPort)
	for _, block := range switchportBlocks(output) {
		port, ok := block.toSwitchPort()
		if !ok {
			continue
		}
		ports[port.Interface] = port
	}
	return ports
}

func switchportBlocks(output string) []switchportBlock {
	var blocks []switchportBlock
	var current *switchportBlock

	for _, line := range splitLines(output) {
		label, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		label = strings.TrimSpace(label)
		value = strings.TrimSpace(value)

		if label == labelPort {
			blocks = append(blocks, switchportBlock{port: value, fields: map[string]string{}})
			current = &blocks[len(blocks)-1]
			continue
		}
		if current != nil {
			current.fields[label] = value
		}
	}
	return blocks
}

func (b switchportBlock) toSwitchPort() (entities.SwitchPort, bool) {
	if !ifrange.IsPhysical(b.port) {
		return entities.SwitchPort{}, false
	}
	for _, label := range switchportLabels {
		if _, ok := b.fields[label]; !ok {
			return entities.SwitchPort{}, false
		}
	}

	pvid, _ := strconv.Atoi(stripDefault(b.fields[labelPVID]))
	return entities.SwitchPort{
		Interface:      b.port,
		PVID:           pvid,
		UntaggedVLANs:  parseVLANList(b.fields[labelUntagged]),
		TaggedVLANs:    parseVLANList(b.fields[labelTagged]),
		ForbiddenVLANs: parseVLANList(b.fields[labelForbidden]),
	}, true
}

func stripDefault(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, defaultMarker, ""))
}

// maxVLAN is the highest id a switch can report
const maxVLAN = 4094

// parseVLANList parses "1,10-12,100". Items that are not ids or id runs,
// or that fall outside 1-4094, are ignored.
func parseVLANList(value string) []int {
	var ids []int
	for _, item := range strings.Split(stripDefault(value), ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if from, to, isRun := strings.Cut(item, "-"); isRun {
			start, err1 := strconv.Atoi(strings.TrimSpace(from))
			end, err2 := strconv.Atoi(strings.TrimSpace(to))
			if err1 != nil || err2 != nil || start > end || !validVLAN(start) || !validVLAN(end) {
				continue
			}
			for id := start; id <= end; id++ {
				ids = append(ids, id)
			}
			continue
		}
		if id, err := strconv.Atoi(item); err == nil && validVLAN(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func validVLAN(id int) bool {
	return id >= 1 && id <= maxVLAN
}
