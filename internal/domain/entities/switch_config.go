package entities

import (
	"net"
	"strconv"
	"strings"
)

// SwitchConfig defines the configuration for a single switch
type SwitchConfig struct {
	Target         string `yaml:"target"`
	Port           int    `yaml:"port"`
	Platform       string `yaml:"platform"`
	Transport      string `yaml:"transport"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	EnablePassword string `yaml:"enable_password"`
	DesiredState   `yaml:",inline"`
	Sandbox        bool `yaml:"-"`
	Save           bool `yaml:"-"`
	VerbosityLevel int  `yaml:"-"`
}

// IsDebugEnabled returns true if debug logs are enabled
func (sc SwitchConfig) IsDebugEnabled() bool {
	return sc.VerbosityLevel == 1 || sc.VerbosityLevel == 3
}

// IsRawOutputEnabled returns true if raw switch output is enabled
func (sc SwitchConfig) IsRawOutputEnabled() bool {
	return sc.VerbosityLevel == 2 || sc.VerbosityLevel == 3
}

// PlatformID returns the normalized platform identifier
func (sc SwitchConfig) PlatformID() string {
	platform := strings.ToLower(strings.TrimSpace(sc.Platform))
	if platform == "" {
		return "edgeswitch"
	}
	return platform
}

// Address returns host:port for the configured transport
func (sc SwitchConfig) Address() string {
	port := sc.Port
	if port == 0 {
		port = 23
		if sc.Transport == "ssh" {
			port = 22
		}
	}
	return net.JoinHostPort(sc.Target, strconv.Itoa(port))
}
