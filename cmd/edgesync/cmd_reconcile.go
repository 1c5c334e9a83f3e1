package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/carlosrabelo/edgesync/internal/application/services"
	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/domain/params"
	"github.com/carlosrabelo/edgesync/internal/domain/ports"
)

// reconcileFunc runs one reconciliation against a switch
type reconcileFunc func(r ports.Reconciler, desired entities.DesiredState) (entities.Result, error)

var vlanCmd = &cobra.Command{
	Use:   "vlan",
	Short: "Reconcile VLANs and port membership",
	Long: `Reconcile the vlans section: create, rename and delete VLANs, then set
tagged, untagged and excluded membership on the listed ports.`,
	Args: cobra.NoArgs,
	RunE: reconcileCommand(services.DomainVLANs, func(r ports.Reconciler, d entities.DesiredState) (entities.Result, error) {
		return r.ApplyVLANs(*d.VLANs)
	}),
}

var interfaceCmd = &cobra.Command{
	Use:     "interface",
	Aliases: []string{"interfaces"},
	Short:   "Reconcile interface description, speed, MTU and admin state",
	Args:    cobra.NoArgs,
	RunE: reconcileCommand(services.DomainInterfaces, func(r ports.Reconciler, d entities.DesiredState) (entities.Result, error) {
		return r.ApplyInterfaces(*d.Interfaces)
	}),
}

var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Reconcile voice VLAN, DSCP and LLDP settings",
	Args:  cobra.NoArgs,
	RunE: reconcileCommand(services.DomainVoice, func(r ports.Reconciler, d entities.DesiredState) (entities.Result, error) {
		return r.ApplyVoice(*d.Voice)
	}),
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Reconcile every configured section, VLANs first",
	Args:  cobra.NoArgs,
	RunE:  reconcileCommand(services.DomainAll, applyAll),
}

func applyAll(r ports.Reconciler, d entities.DesiredState) (entities.Result, error) {
	return r.ApplyAll(d)
}

// reconcileCommand builds the RunE of a reconciliation subcommand
func reconcileCommand(domainName string, apply reconcileFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return forEachSwitch(cmd.OutOrStdout(), cmd.ErrOrStderr(), checkSections(domainName), reconcileTask(domainName, apply))
	}
}

// reconcileTask reconciles one domain of a connected switch
func reconcileTask(domainName string, apply reconcileFunc) switchTask {
	return func(run *switchRun) (string, error) {
		svc := services.NewReconcileApplicationService(run.cfg, run.repo, run.driver, recorder)
		result, err := apply(svc, run.cfg.DesiredState)
		if err != nil {
			return "", err
		}
		return formatResult(run.cfg, result, jsonOutput)
	}
}

// checkSections requires and normalizes the sections domainName reconciles
func checkSections(domainName string) switchCheck {
	return func(cfg entities.SwitchConfig) error {
		if err := requireSection(domainName, cfg); err != nil {
			return err
		}
		return validateSections(domainName, cfg)
	}
}

func validateSections(domainName string, cfg entities.SwitchConfig) error {
	all := domainName == services.DomainAll
	d := cfg.DesiredState

	if d.VLANs != nil && (all || domainName == services.DomainVLANs) {
		if _, err := params.NormalizeVLANs(*d.VLANs); err != nil {
			return errors.Wrapf(err, "invalid vlans section for switch %s", cfg.Target)
		}
	}
	if d.Interfaces != nil && (all || domainName == services.DomainInterfaces) {
		if _, err := params.NormalizeInterfaces(*d.Interfaces); err != nil {
			return errors.Wrapf(err, "invalid interfaces section for switch %s", cfg.Target)
		}
	}
	if d.Voice != nil && (all || domainName == services.DomainVoice) {
		if _, err := params.NormalizeVoice(*d.Voice); err != nil {
			return errors.Wrapf(err, "invalid voice section for switch %s", cfg.Target)
		}
	}
	return nil
}

// requireSection fails when the section a command reconciles is missing
func requireSection(domainName string, cfg entities.SwitchConfig) error {
	var present bool
	switch domainName {
	case services.DomainVLANs:
		present = cfg.VLANs != nil
	case services.DomainInterfaces:
		present = cfg.Interfaces != nil
	case services.DomainVoice:
		present = cfg.Voice != nil
	default:
		return nil
	}
	if !present {
		return errors.Errorf("no %s section configured for switch %s", domainName, cfg.Target)
	}
	return nil
}
