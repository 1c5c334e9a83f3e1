package platform

import (
	"fmt"
	"strings"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/domain/ports"
	"github.com/carlosrabelo/edgesync/internal/platform/edgeswitch"
)

// Auto asks Resolve to detect the platform from the device
const Auto = "auto"

// SwitchDriver defines the behaviour required to support a switching platform.
type SwitchDriver interface {
	Name() string
	Detect(repo ports.SwitchRepository) (bool, error)

	// GetAuthenticationSequence returns the login sequence for this platform
	GetAuthenticationSequence(username, password, enablePassword string) []entities.AuthPrompt

	GetVLANs(repo ports.SwitchRepository, cfg entities.SwitchConfig) ([]entities.VlanRecord, error)
	GetSwitchports(repo ports.SwitchRepository, cfg entities.SwitchConfig) (map[string]entities.SwitchPort, error)
	GetInterfaceConfigs(repo ports.SwitchRepository, cfg entities.SwitchConfig) ([]entities.InterfaceConfig, error)
	GetVoicePorts(repo ports.SwitchRepository, cfg entities.SwitchConfig) (map[string]entities.VoicePort, error)
	GetRunningMTU(repo ports.SwitchRepository, cfg entities.SwitchConfig, iface string) (int, error)

	// RunCommands sends commands in exec mode; LoadConfig wraps them in a
	// configure session.
	RunCommands(repo ports.SwitchRepository, cfg entities.SwitchConfig, commands []string) error
	LoadConfig(repo ports.SwitchRepository, cfg entities.SwitchConfig, commands []string) error
	SaveCommands() []string
}

var registry = []SwitchDriver{
	edgeswitch.New(),
}

// Get returns a driver by normalized platform name.
func Get(name string) (SwitchDriver, error) {
	normalized := normalizeName(name)
	for _, driver := range registry {
		if driver.Name() == normalized {
			return driver, nil
		}
	}
	return nil, fmt.Errorf("unknown switch platform: %s", name)
}

// Available returns all registered drivers.
func Available() []SwitchDriver {
	out := make([]SwitchDriver, len(registry))
	copy(out, registry)
	return out
}

// Names returns the identifiers of the registered drivers.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, driver := range registry {
		names = append(names, driver.Name())
	}
	return names
}

// Detect tries all registered drivers until one matches.
func Detect(repo ports.SwitchRepository) (SwitchDriver, error) {
	var lastErr error
	for _, driver := range registry {
		matched, err := driver.Detect(repo)
		if err != nil {
			lastErr = err
			continue
		}
		if matched {
			return driver, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("unable to detect switch platform")
}

// Resolve returns the driver named by name, detecting it when name is
// "auto".
func Resolve(name string, repo ports.SwitchRepository) (SwitchDriver, error) {
	if normalizeName(name) == Auto {
		return Detect(repo)
	}
	return Get(name)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
