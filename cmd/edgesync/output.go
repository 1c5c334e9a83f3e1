package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
)

func green(a ...interface{}) string  { return color.New(color.FgGreen).Sprint(a...) }
func yellow(a ...interface{}) string { return color.New(color.FgYellow).Sprint(a...) }
func red(a ...interface{}) string    { return color.New(color.FgRed).Sprint(a...) }
func bold(a ...interface{}) string   { return color.New(color.Bold).Sprint(a...) }

// switchResult is the JSON shape of one switch's run
type switchResult struct {
	Target   string `json:"target"`
	Platform string `json:"platform"`
	Sandbox  bool   `json:"sandbox"`
	entities.Result
}

// formatResult renders a run result as text, or as one JSON line
func formatResult(cfg entities.SwitchConfig, result entities.Result, asJSON bool) (string, error) {
	if asJSON {
		data, err := json.Marshal(switchResult{
			Target:   cfg.Target,
			Platform: cfg.Platform,
			Sandbox:  cfg.Sandbox,
			Result:   result,
		})
		if err != nil {
			return "", errors.Wrap(err, "failed to encode result")
		}
		return string(data) + "\n", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", bold(fmt.Sprintf("== %s (%s) ==", cfg.Target, cfg.Platform)))
	for _, cmd := range result.Commands {
		fmt.Fprintf(&b, "  %s\n", cmd)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(&b, "%s %s\n", yellow("warning:"), w)
	}
	switch {
	case !result.Changed:
		fmt.Fprintln(&b, green("No changes required"))
	case cfg.Sandbox:
		fmt.Fprintln(&b, yellow("DRY-RUN: No changes applied. Use --write to apply."))
	default:
		fmt.Fprintln(&b, green(fmt.Sprintf("Applied %d commands", len(result.Commands))))
	}
	return b.String(), nil
}

// renderTable lays rows out in borderless, left-aligned columns
func renderTable(headers []string, rows [][]string) (string, error) {
	b := &strings.Builder{}
	cell := tw.CellConfig{
		Formatting: tw.CellFormatting{
			AutoWrap:  tw.WrapNormal,
			Alignment: tw.AlignLeft,
		},
		Padding: tw.CellPadding{Global: tw.Padding{Right: "  "}},
	}
	table := tablewriter.NewTable(b,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		})),
		tablewriter.WithConfig(tablewriter.Config{Row: cell, Header: cell}),
	)
	table.Header(headers)
	if err := table.Bulk(rows); err != nil {
		return "", errors.Wrap(err, "failed to add table rows")
	}
	if err := table.Render(); err != nil {
		return "", errors.Wrap(err, "failed to render table")
	}
	return b.String(), nil
}

// vlanList renders VLAN ids as a comma list, "-" when empty
func vlanList(ids []int) string {
	if len(ids) == 0 {
		return "-"
	}
	return strings.Join(lo.Map(ids, func(id int, _ int) string {
		return strconv.Itoa(id)
	}), ",")
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
