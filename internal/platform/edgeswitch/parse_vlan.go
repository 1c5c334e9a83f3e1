package edgeswitch

import (
	"strconv"
	"strings"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
)

// column is a byte span of a fixed-width table
type column struct {
	start, end int
}

// ParseVLANBrief extracts VLAN id and name from "show vlan brief". When the
// table has a dashed separator the name is read from its column, which keeps
// names with spaces intact; otherwise the second field is used.
func ParseVLANBrief(output string) []entities.VlanRecord {
	var records []entities.VlanRecord
	var columns []column

	for _, line := range splitLines(output) {
		if cols, ok := separatorColumns(line); ok {
			columns = cols
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil || id <= 0 {
			continue
		}

		name := fields[1]
		if len(columns) >= 2 {
			if cell := columnText(line, columns[1]); cell != "" {
				name = cell
			}
		}
		records = append(records, entities.VlanRecord{ID: id, Name: name})
	}
	return records
}

// separatorColumns reports the dash runs of a separator line such as
// "------- ---------------- ---------".
func separatorColumns(line string) ([]column, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.Trim(trimmed, "- ") != "" {
		return nil, false
	}

	var cols []column
	start := -1
	for i, ch := range line {
		switch {
		case ch == '-' && start < 0:
			start = i
		case ch != '-' && start >= 0:
			cols = append(cols, column{start: start, end: i})
			start = -1
		}
	}
	if start >= 0 {
		cols = append(cols, column{start: start, end: len(line)})
	}
	return cols, len(cols) > 0
}

func columnText(line string, col column) string {
	if col.start >= len(line) {
		return ""
	}
	end := col.end
	if end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(line[col.start:end])
}

// splitLines splits CLI output into lines without trailing carriage returns
func splitLines(output string) []string {
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}
