package edgeswitch

import (
	"strconv"
	"strings"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
)

// InterfaceBlock is the body of one "interface <name>" section of the
// running configuration, without the header and the closing exit.
type InterfaceBlock struct {
	Name  string
	Lines []string
}

// SplitInterfaceBlocks returns the interface sections of a running
// configuration in the order they appear. A section left open at the end of
// the output is kept.
func SplitInterfaceBlocks(output string) []InterfaceBlock {
	var blocks []InterfaceBlock
	var current *InterfaceBlock

	for _, raw := range splitLines(output) {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}

		if name, ok := keywordValue(line, kwInterface); ok && name != "" {
			blocks = append(blocks, InterfaceBlock{Name: name})
			current = &blocks[len(blocks)-1]
			continue
		}
		if current == nil {
			continue
		}
		if line == kwExit {
			current = nil
			continue
		}
		current.Lines = append(current.Lines, line)
	}
	return blocks
}

// ParseInterfaceConfigs extracts the attribute snapshot of every interface
// in a running configuration.
func ParseInterfaceConfigs(output string) []entities.InterfaceConfig {
	blocks := SplitInterfaceBlocks(output)
	configs := make([]entities.InterfaceConfig, 0, len(blocks))
	for _, block := range blocks {
		configs = append(configs, block.interfaceConfig())
	}
	return configs
}

func (b InterfaceBlock) interfaceConfig() entities.InterfaceConfig {
	cfg := entities.InterfaceConfig{Name: b.Name, Speed: entities.DefaultSpeed}
	for _, line := range b.Lines {
		if line == kwShutdown {
			cfg.Disabled = true
			continue
		}
		if value, ok := keywordValue(line, kwDescription); ok {
			cfg.Description = unquote(value)
			continue
		}
		if value, ok := keywordValue(line, kwSpeed); ok && value != "" {
			cfg.Speed = value
			continue
		}
		if value, ok := keywordValue(line, kwMTU); ok {
			if mtu, err := strconv.Atoi(value); err == nil {
				cfg.MTU = mtu
			}
		}
	}
	return cfg
}

// ParseVoicePorts extracts the voice VLAN and LLDP settings of every
// interface. LAG interfaces carry no voice settings and are left out.
func ParseVoicePorts(output string) map[string]entities.VoicePort {
	ports := make(map[string]entities.VoicePort)
	for _, block := range SplitInterfaceBlocks(output) {
		if strings.HasPrefix(block.Name, lagPrefix) {
			continue
		}
		ports[block.Name] = block.voicePort()
	}
	return ports
}

func (b InterfaceBlock) voicePort() entities.VoicePort {
	port := entities.VoicePort{
		Interface: b.Name,
		VoiceVLAN: entities.VoiceUnset,
		VoiceDSCP: entities.VoiceUnset,
	}
	for _, line := range b.Lines {
		if value, ok := keywordValue(line, kwVoiceDSCP); ok {
			if isNumber(value) {
				port.VoiceDSCP = value
			}
			continue
		}
		if value, ok := keywordValue(line, kwVoiceVLAN); ok {
			if isNumber(value) {
				port.VoiceVLAN = value
			}
			continue
		}
		if value, ok := keywordValue(line, kwLLDP); ok && value != "" {
			port.LLDP = append(port.LLDP, value)
		}
	}
	return port
}

// ParseMaxFrameSize reads the "Max Frame Size......... 1518" line of
// "show interface ethernet <if>". It returns 0 when the line is missing.
func ParseMaxFrameSize(output string) int {
	for _, line := range splitLines(output) {
		_, rest, found := strings.Cut(line, labelMaxFrameSize)
		if !found {
			continue
		}
		rest = strings.TrimLeft(rest, ". \t")
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		if size, err := strconv.Atoi(fields[0]); err == nil {
			return size
		}
	}
	return 0
}

// IsCommandError reports whether output carries a CLI rejection
func IsCommandError(output string) bool {
	lower := strings.ToLower(output)
	for _, hint := range commandErrHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// keywordValue matches "<keyword> <value>" and "<keyword>" on their own
func keywordValue(line, keyword string) (string, bool) {
	if line == keyword {
		return "", true
	}
	if !strings.HasPrefix(line, keyword+" ") {
		return "", false
	}
	return strings.TrimSpace(line[len(keyword)+1:]), true
}

func unquote(value string) string {
	if len(value) >= 2 && value[0] == '\'' && value[len(value)-1] == '\'' {
		return value[1 : len(value)-1]
	}
	return value
}

func isNumber(value string) bool {
	_, err := strconv.Atoi(value)
	return err == nil && value != ""
}
