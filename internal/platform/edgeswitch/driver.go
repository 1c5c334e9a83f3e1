// Package edgeswitch implements the driver and the CLI text grammars of
// Ubiquiti EdgeSwitch (FASTPATH based) firmware.
package edgeswitch

import (
	"fmt"
	"strings"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/domain/ports"
	"github.com/carlosrabelo/edgesync/internal/util"
)

const driverName = "edgeswitch"

// Login prompts of the EdgeSwitch CLI
const (
	PromptUser       = "User:"
	PromptPassword   = "Password:"
	PromptEnable     = ">"
	PromptPrivileged = "#"
)

// Driver implements SwitchDriver for EdgeSwitch firmware.
type Driver struct{}

// New creates a new EdgeSwitch driver.
func New() *Driver {
	return &Driver{}
}

// Name returns the canonical platform identifier.
func (d *Driver) Name() string {
	return driverName
}

// Detect determines whether the connected device runs EdgeSwitch firmware.
func (d *Driver) Detect(repo ports.SwitchRepository) (bool, error) {
	if !repo.IsConnected() {
		if err := repo.Connect(); err != nil {
			return false, err
		}
	}
	output, err := repo.ExecuteCommand(cmdShowVersion)
	if err != nil {
		return false, util.NewTransportError(cmdShowVersion, err)
	}
	lower := strings.ToLower(output)
	for _, hint := range detectHints {
		if strings.Contains(lower, hint) {
			return true, nil
		}
	}
	return false, nil
}

// GetAuthenticationSequence returns the telnet login dialogue: user,
// password, enable, then unpaged output.
func (d *Driver) GetAuthenticationSequence(username, password, enablePassword string) []entities.AuthPrompt {
	return []entities.AuthPrompt{
		{WaitFor: PromptUser, SendCmd: username + "\n"},
		{WaitFor: PromptPassword, SendCmd: password + "\n"},
		{WaitFor: PromptEnable, SendCmd: "enable\n"},
		{WaitFor: PromptPassword, SendCmd: enablePassword + "\n"},
		{WaitFor: PromptPrivileged, SendCmd: "terminal length 0\n"},
		{WaitFor: PromptPrivileged, SendCmd: ""},
	}
}

// GetVLANs reads the VLAN table.
func (d *Driver) GetVLANs(repo ports.SwitchRepository, cfg entities.SwitchConfig) ([]entities.VlanRecord, error) {
	output, err := d.read(repo, cfg, cmdShowVLANBrief)
	if err != nil {
		return nil, err
	}
	vlans := ParseVLANBrief(output)
	if cfg.IsDebugEnabled() {
		util.WithDevice(cfg.Target).Debugf("Found %d VLANs", len(vlans))
	}
	return vlans, nil
}

// GetSwitchports reads the VLAN membership of every port.
func (d *Driver) GetSwitchports(repo ports.SwitchRepository, cfg entities.SwitchConfig) (map[string]entities.SwitchPort, error) {
	output, err := d.read(repo, cfg, cmdShowSwitchport)
	if err != nil {
		return nil, err
	}
	switchports := ParseSwitchports(output)
	if cfg.IsDebugEnabled() {
		util.WithDevice(cfg.Target).Debugf("Found %d switchports", len(switchports))
	}
	return switchports, nil
}

// GetInterfaceConfigs reads the attribute snapshot of every interface.
func (d *Driver) GetInterfaceConfigs(repo ports.SwitchRepository, cfg entities.SwitchConfig) ([]entities.InterfaceConfig, error) {
	output, err := d.read(repo, cfg, cmdShowRunningConfig)
	if err != nil {
		return nil, err
	}
	return ParseInterfaceConfigs(output), nil
}

// GetVoicePorts reads the voice VLAN and LLDP settings of every interface.
func (d *Driver) GetVoicePorts(repo ports.SwitchRepository, cfg entities.SwitchConfig) (map[string]entities.VoicePort, error) {
	output, err := d.read(repo, cfg, cmdShowRunningConfig)
	if err != nil {
		return nil, err
	}
	return ParseVoicePorts(output), nil
}

// GetRunningMTU reads the live maximum frame size of one interface.
func (d *Driver) GetRunningMTU(repo ports.SwitchRepository, cfg entities.SwitchConfig, iface string) (int, error) {
	output, err := d.read(repo, cfg, fmt.Sprintf(cmdShowEthernet, iface))
	if err != nil {
		return 0, err
	}
	return ParseMaxFrameSize(output), nil
}

// RunCommands sends commands in exec mode, stopping at the first one the
// CLI rejects.
func (d *Driver) RunCommands(repo ports.SwitchRepository, cfg entities.SwitchConfig, commands []string) error {
	for _, cmd := range commands {
		if err := d.write(repo, cfg, cmd); err != nil {
			return err
		}
	}
	return nil
}

// LoadConfig sends commands inside a configure session. The session is
// closed even when a command fails.
func (d *Driver) LoadConfig(repo ports.SwitchRepository, cfg entities.SwitchConfig, commands []string) error {
	if len(commands) == 0 {
		return nil
	}
	if err := d.write(repo, cfg, cmdConfigure); err != nil {
		return err
	}
	for _, cmd := range commands {
		if err := d.write(repo, cfg, cmd); err != nil {
			_, _ = repo.ExecuteCommand(cmdEnd)
			return err
		}
	}
	return d.write(repo, cfg, cmdEnd)
}

// SaveCommands returns the commands persisting the running configuration,
// in the order they should be tried.
func (d *Driver) SaveCommands() []string {
	return []string{cmdWriteMemory, cmdCopyStartup}
}

func (d *Driver) read(repo ports.SwitchRepository, cfg entities.SwitchConfig, cmd string) (string, error) {
	output, err := repo.ExecuteCommand(cmd)
	if err != nil {
		return "", util.NewTransportError(cmd, err)
	}
	if cfg.IsRawOutputEnabled() {
		util.WithDevice(cfg.Target).Infof("Raw output of '%s':\n%s", cmd, output)
	}
	if IsCommandError(output) {
		return "", util.NewTransportError(cmd, fmt.Errorf("command '%s' unsupported by switch", cmd))
	}
	return output, nil
}

func (d *Driver) write(repo ports.SwitchRepository, cfg entities.SwitchConfig, cmd string) error {
	if cfg.IsDebugEnabled() {
		util.WithDevice(cfg.Target).Debugf("Sending: %s", cmd)
	}
	output, err := repo.ExecuteCommand(cmd)
	if err != nil {
		return util.NewTransportError(cmd, err)
	}
	if IsCommandError(output) {
		return util.NewTransportError(cmd, fmt.Errorf("rejected by switch: %s", strings.TrimSpace(output)))
	}
	return nil
}
