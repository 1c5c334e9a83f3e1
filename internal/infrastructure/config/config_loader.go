// Package config loads the edgesync YAML file and resolves per-switch
// settings against the global section.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/util"
)

// FileName is the configuration file looked up on the search path
const FileName = "config.yaml"

// Config defines the global configuration
type Config struct {
	Platform       string                  `yaml:"platform"`
	Transport      string                  `yaml:"transport"`
	Port           int                     `yaml:"port"`
	Username       string                  `yaml:"username"`
	Password       string                  `yaml:"password"`
	EnablePassword string                  `yaml:"enable_password"`
	Switches       []entities.SwitchConfig `yaml:"switches"`

	// Desired state inherited by switches that do not define their own
	entities.DesiredState `yaml:",inline"`
}

// Options carries the run-wide settings the CLI applies on top of the file
type Options struct {
	Platform       string // overrides every switch when set
	Write          bool
	Save           bool
	VerbosityLevel int
}

// SearchPath lists where Find looks for the configuration file, in order
func SearchPath() []string {
	paths := []string{FileName}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "edgesync", FileName))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "edgesync", FileName))
	}
	return append(paths, filepath.Join("/etc", "edgesync", FileName))
}

// Find returns explicit when set, otherwise the first existing file on the
// search path.
func Find(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	for _, path := range SearchPath() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", errors.Errorf("no %s found in %s", FileName, strings.Join(SearchPath(), ", "))
}

func validatePlatform(platform string) error {
	switch platform {
	case "edgeswitch", "auto":
		return nil
	default:
		return errors.Errorf("platform %s is invalid, must be 'edgeswitch' or 'auto'", platform)
	}
}

func validateTransport(transport string) error {
	switch transport {
	case "telnet", "ssh":
		return nil
	default:
		return errors.Errorf("transport %s is invalid, must be 'telnet' or 'ssh'", transport)
	}
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Load reads and validates the configuration at path
func Load(path string, opts Options) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read YAML file %s", path)
	}
	return Parse(data, opts)
}

// Parse validates a configuration document and resolves every switch
func Parse(data []byte, opts Options) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}

	cfg.Platform = normalize(cfg.Platform)
	if cfg.Platform == "" {
		cfg.Platform = "edgeswitch"
	}
	if err := validatePlatform(cfg.Platform); err != nil {
		return nil, err
	}

	cfg.Transport = normalize(cfg.Transport)
	if cfg.Transport == "" {
		cfg.Transport = "telnet"
	}
	if err := validateTransport(cfg.Transport); err != nil {
		return nil, err
	}

	if len(cfg.Switches) == 0 {
		return nil, errors.New("no switches defined in the YAML configuration")
	}

	override := normalize(opts.Platform)
	if override != "" {
		if err := validatePlatform(override); err != nil {
			return nil, err
		}
	}

	seen := make(map[string]bool, len(cfg.Switches))
	for i := range cfg.Switches {
		sw, err := cfg.resolve(i, override, opts)
		if err != nil {
			return nil, err
		}
		if seen[sw.Target] {
			return nil, errors.Errorf("switch %s is defined more than once", sw.Target)
		}
		seen[sw.Target] = true
		cfg.Switches[i] = sw
	}
	return &cfg, nil
}

// resolve applies global inheritance and run options to switch i
func (c *Config) resolve(i int, platform string, opts Options) (entities.SwitchConfig, error) {
	sw := c.Switches[i]
	sw.Target = strings.TrimSpace(sw.Target)
	if sw.Target == "" {
		return sw, errors.Errorf("target is required for switch %d", i)
	}
	log := util.WithDevice(sw.Target)
	debug := opts.VerbosityLevel == 1 || opts.VerbosityLevel == 3

	sw.Transport = normalize(sw.Transport)
	if sw.Transport == "" {
		sw.Transport = c.Transport
	}
	if err := validateTransport(sw.Transport); err != nil {
		return sw, errors.Wrapf(err, "invalid transport for switch %s", sw.Target)
	}

	sw.Platform = normalize(sw.Platform)
	if platform != "" {
		sw.Platform = platform
	} else if sw.Platform == "" {
		sw.Platform = c.Platform
	}
	if err := validatePlatform(sw.Platform); err != nil {
		return sw, errors.Wrapf(err, "invalid platform for switch %s", sw.Target)
	}

	if sw.Port == 0 {
		sw.Port = c.Port
	}
	if sw.Port < 0 || sw.Port > 65535 {
		return sw, errors.Errorf("port %d is invalid for switch %s", sw.Port, sw.Target)
	}

	if sw.Username == "" {
		sw.Username = c.Username
	}
	if sw.Username == "" {
		return sw, errors.Errorf("username is required for switch %s", sw.Target)
	}
	if sw.Password == "" {
		sw.Password = c.Password
	}
	if sw.EnablePassword == "" {
		sw.EnablePassword = c.EnablePassword
	}

	if sw.VLANs == nil {
		sw.VLANs = c.VLANs
	}
	if sw.Interfaces == nil {
		sw.Interfaces = c.Interfaces
	}
	if sw.Voice == nil {
		sw.Voice = c.Voice
	}

	sw.Sandbox = !opts.Write
	sw.Save = opts.Save
	sw.VerbosityLevel = opts.VerbosityLevel

	if debug {
		log.Debugf("Resolved switch: Platform=%s, Transport=%s, Address=%s, Sandbox=%v, Sections=%s",
			sw.Platform, sw.Transport, sw.Address(), sw.Sandbox, strings.Join(sections(sw.DesiredState), ","))
	}
	return sw, nil
}

func sections(ds entities.DesiredState) []string {
	var names []string
	if ds.VLANs != nil {
		names = append(names, "vlans")
	}
	if ds.Interfaces != nil {
		names = append(names, "interfaces")
	}
	if ds.Voice != nil {
		names = append(names, "voice")
	}
	return names
}

// Switch returns the resolved configuration for target
func (c *Config) Switch(target string) (entities.SwitchConfig, error) {
	for _, sw := range c.Switches {
		if sw.Target == target {
			return sw, nil
		}
	}
	return entities.SwitchConfig{}, errors.Errorf("switch %s not found in configuration", target)
}

// MissingSecrets reports which required credentials of sw are still empty.
// An empty enable_password is valid: the switch then takes a bare return.
func MissingSecrets(sw entities.SwitchConfig) []string {
	var missing []string
	if sw.Password == "" {
		missing = append(missing, "password")
	}
	return missing
}
