package params

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/domain/ifrange"
	"github.com/carlosrabelo/edgesync/internal/util"
)

const (
	MinVlanID = 1
	MaxVlanID = 4093
	MinMTU    = 1518
	MaxMTU    = 9216
	MaxDSCP   = 63
)

// fieldCheck binds a field name to its validator. A check returns a
// *util.FormatError for malformed interface tokens, a message for every
// other violation, or neither. Text fields that end up inside a command
// must not carry control characters or the quote that delimits them.
type fieldCheck[S any] struct {
	field string
	check func(S) (string, error)
}

var vlanChecks = []fieldCheck[entities.VlanSpec]{
	{"vlan_id", func(s entities.VlanSpec) (string, error) {
		if s.VlanID == nil {
			return "vlan_id is required", nil
		}
		return checkVlanID(*s.VlanID), nil
	}},
	{"name", func(s entities.VlanSpec) (string, error) {
		return checkText("name", deref(s.Name), '"'), nil
	}},
	{"auto_tag", func(s entities.VlanSpec) (string, error) {
		set := lo.Count([]bool{deref(s.AutoTag), deref(s.AutoUntag), deref(s.AutoExclude)}, true)
		if set > 1 {
			return "parameters are mutually exclusive: auto_tag, auto_untag, auto_exclude", nil
		}
		return "", nil
	}},
	{"tagged_interfaces", func(s entities.VlanSpec) (string, error) {
		return "", checkTokens(s.TaggedInterfaces)
	}},
	{"untagged_interfaces", func(s entities.VlanSpec) (string, error) {
		return "", checkTokens(s.UntaggedInterfaces)
	}},
	{"excluded_interfaces", func(s entities.VlanSpec) (string, error) {
		return "", checkTokens(s.ExcludedInterfaces)
	}},
}

var interfaceChecks = []fieldCheck[entities.InterfaceSpec]{
	{"name", func(s entities.InterfaceSpec) (string, error) {
		if s.Name == nil || *s.Name == "" {
			return "name is required", nil
		}
		return "", ifrange.Validate(*s.Name)
	}},
	{"description", func(s entities.InterfaceSpec) (string, error) {
		return checkText("description", deref(s.Description), '\''), nil
	}},
	{"speed", func(s entities.InterfaceSpec) (string, error) {
		return checkText("speed", deref(s.Speed)), nil
	}},
	{"mtu", func(s entities.InterfaceSpec) (string, error) {
		if s.MTU != nil && (*s.MTU < MinMTU || *s.MTU > MaxMTU) {
			return fmt.Sprintf("mtu must be between %d and %d", MinMTU, MaxMTU), nil
		}
		return "", nil
	}},
}

var voiceChecks = []fieldCheck[entities.VoiceSpec]{
	{"interfaces", func(s entities.VoiceSpec) (string, error) {
		if len(s.Interfaces) == 0 {
			return "interfaces is required", nil
		}
		return "", checkTokens(s.Interfaces)
	}},
	{"vlan_id", func(s entities.VoiceSpec) (string, error) {
		if s.VlanID == nil {
			if s.State == nil || entities.State(*s.State) == entities.StatePresent {
				return "state is 'present' but the following is missing: vlan_id", nil
			}
			return "", nil
		}
		return checkVlanID(*s.VlanID), nil
	}},
	{"dscp", func(s entities.VoiceSpec) (string, error) {
		if s.DSCP == nil {
			return "", nil
		}
		value, err := strconv.Atoi(*s.DSCP)
		if err != nil || value < 0 || value > MaxDSCP {
			return fmt.Sprintf("dscp must be an integer between 0 and %d, got: %s", MaxDSCP, *s.DSCP), nil
		}
		return "", nil
	}},
	{"lldp", func(s entities.VoiceSpec) (string, error) {
		allowed := []string{entities.LLDPTransmit, entities.LLDPReceive, entities.LLDPMed}
		for _, mode := range s.LLDP {
			if !lo.Contains(allowed, mode) {
				return fmt.Sprintf("value of lldp must be one or more of: transmit, receive, med, got: %s", mode), nil
			}
		}
		return "", nil
	}},
}

// runChecks runs every check of the table against spec. Violations are
// collected in vb; the first malformed interface token is returned.
func runChecks[S any](checks []fieldCheck[S], spec S, vb *util.ValidationBuilder) error {
	var formatErr error
	for _, c := range checks {
		msg, err := c.check(spec)
		if err != nil && formatErr == nil {
			formatErr = err
		}
		if msg != "" {
			vb.AddErrorf("%s", msg)
		}
	}
	return formatErr
}

// finish reports the collected violations ahead of a malformed token
func finish(vb *util.ValidationBuilder, formatErr error) error {
	if err := vb.Build(); err != nil {
		return err
	}
	return formatErr
}

func checkVlanID(id int) string {
	if id < MinVlanID || id > MaxVlanID {
		return fmt.Sprintf("vlan_id must be between %d and %d, got: %d", MinVlanID, MaxVlanID, id)
	}
	return ""
}

func checkTokens(tokens []string) error {
	for _, token := range tokens {
		if err := ifrange.Validate(token); err != nil {
			return err
		}
	}
	return nil
}

func checkText(field, value string, quotes ...rune) string {
	bad := strings.ContainsFunc(value, func(r rune) bool {
		return unicode.IsControl(r) || strings.ContainsRune(string(quotes), r)
	})
	if !bad {
		return ""
	}
	if len(quotes) == 0 {
		return fmt.Sprintf("%s must not contain control characters", field)
	}
	return fmt.Sprintf("%s must not contain control characters or %s", field, string(quotes))
}
