package main

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/domain/ifrange"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the observed switch state",
}

var showVlansCmd = &cobra.Command{
	Use:   "vlans",
	Short: "List VLANs (show vlan brief)",
	Args:  cobra.NoArgs,
	RunE: showCommand(func(run *switchRun) (interface{}, []string, [][]string, error) {
		vlans, err := run.driver.GetVLANs(run.repo, run.cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		rows := lo.Map(vlans, func(v entities.VlanRecord, _ int) []string {
			return []string{strconv.Itoa(v.ID), dash(v.Name)}
		})
		return vlans, []string{"VLAN", "Name"}, rows, nil
	}),
}

var showPortsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List port VLAN membership (show interfaces switchport)",
	Args:  cobra.NoArgs,
	RunE: showCommand(func(run *switchRun) (interface{}, []string, [][]string, error) {
		ports, err := run.driver.GetSwitchports(run.repo, run.cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		rows := lo.Map(sortedKeys(ports), func(name string, _ int) []string {
			p := ports[name]
			return []string{name, strconv.Itoa(p.PVID), vlanList(p.UntaggedVLANs), vlanList(p.TaggedVLANs), vlanList(p.ForbiddenVLANs)}
		})
		return ports, []string{"Interface", "PVID", "Untagged", "Tagged", "Forbidden"}, rows, nil
	}),
}

var showInterfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "List interface attributes from the running configuration",
	Args:  cobra.NoArgs,
	RunE: showCommand(func(run *switchRun) (interface{}, []string, [][]string, error) {
		configs, err := run.driver.GetInterfaceConfigs(run.repo, run.cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		rows := lo.Map(configs, func(c entities.InterfaceConfig, _ int) []string {
			mtu := "-"
			if c.MTU != 0 {
				mtu = strconv.Itoa(c.MTU)
			}
			admin := "up"
			if c.Disabled {
				admin = "down"
			}
			return []string{c.Name, dash(c.Description), c.Speed, mtu, admin}
		})
		return configs, []string{"Interface", "Description", "Speed", "MTU", "Admin"}, rows, nil
	}),
}

var showVoiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "List voice VLAN and LLDP settings",
	Args:  cobra.NoArgs,
	RunE: showCommand(func(run *switchRun) (interface{}, []string, [][]string, error) {
		ports, err := run.driver.GetVoicePorts(run.repo, run.cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		rows := lo.Map(sortedKeys(ports), func(name string, _ int) []string {
			p := ports[name]
			lldp := "-"
			if len(p.LLDP) > 0 {
				lldp = strings.Join(p.LLDP, ",")
			}
			return []string{name, p.VoiceVLAN, p.VoiceDSCP, lldp}
		})
		return ports, []string{"Interface", "Voice VLAN", "DSCP", "LLDP"}, rows, nil
	}),
}

func init() {
	showCmd.AddCommand(showVlansCmd, showPortsCmd, showInterfacesCmd, showVoiceCmd)
}

// observeFunc reads one view of the switch: the raw value for --json plus
// the table headers and rows.
type observeFunc func(run *switchRun) (interface{}, []string, [][]string, error)

func showCommand(observe observeFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return forEachSwitch(cmd.OutOrStdout(), cmd.ErrOrStderr(), nil, func(run *switchRun) (string, error) {
			value, headers, rows, err := observe(run)
			if err != nil {
				return "", err
			}
			return formatView(run.cfg.Target, value, headers, rows, jsonOutput)
		})
	}
}

func formatView(target string, value interface{}, headers []string, rows [][]string, asJSON bool) (string, error) {
	if asJSON {
		data, err := json.Marshal(map[string]interface{}{"target": target, "state": value})
		if err != nil {
			return "", errors.Wrap(err, "failed to encode state")
		}
		return string(data) + "\n", nil
	}
	table, err := renderTable(headers, rows)
	if err != nil {
		return "", err
	}
	return bold("== "+target+" ==") + "\n" + table, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	ifrange.Sort(keys)
	return keys
}
