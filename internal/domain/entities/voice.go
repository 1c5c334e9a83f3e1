package entities

// VoiceUnset is the sentinel used for a voice setting that is not configured
const VoiceUnset = "no"

// LLDP modes accepted on voice ports
const (
	LLDPTransmit = "transmit"
	LLDPReceive  = "receive"
	LLDPMed      = "med"
)

// VoicePort is the observed voice VLAN and LLDP state of one interface
type VoicePort struct {
	Interface string
	VoiceVLAN string
	VoiceDSCP string
	LLDP      []string
}

// VoiceParams is a normalized desired voice configuration
type VoiceParams struct {
	Interfaces []string
	VlanID     int
	DSCP       string
	LLDP       []string
	State      State
}
