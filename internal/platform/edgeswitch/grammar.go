package edgeswitch

// Labels of "show interfaces switchport". A block starts at labelPort and
// is kept only when every label of switchportLabels was seen.
const (
	labelPort      = "Port"
	labelPVID      = "General Mode PVID"
	labelUntagged  = "General Mode Untagged VLANs"
	labelTagged    = "General Mode Tagged VLANs"
	labelForbidden = "General Mode Forbidden VLANs"

	defaultMarker = "(default)"
)

var switchportLabels = []string{labelPVID, labelUntagged, labelTagged, labelForbidden}

// Keywords of the running configuration
const (
	kwInterface   = "interface"
	kwExit        = "exit"
	kwDescription = "description"
	kwSpeed       = "speed"
	kwMTU         = "mtu"
	kwShutdown    = "shutdown"
	kwVoiceVLAN   = "voice vlan"
	kwVoiceDSCP   = "voice vlan dscp"
	kwLLDP        = "lldp"

	lagPrefix = "lag"
)

// labelMaxFrameSize prefixes the MTU line of "show interface ethernet <if>"
const labelMaxFrameSize = "Max Frame Size"

// Read commands
const (
	cmdShowVersion       = "show version"
	cmdShowVLANBrief     = "show vlan brief"
	cmdShowSwitchport    = "show interfaces switchport"
	cmdShowRunningConfig = "show running-config"
	cmdShowEthernet      = "show interface ethernet %s"
)

// Session commands
const (
	cmdConfigure   = "configure"
	cmdEnd         = "end"
	cmdWriteMemory = "write memory confirm"
	cmdCopyStartup = "copy system:running-config nvram:startup-config"
)

// commandErrHints are lowercase fragments the CLI prints when it rejects
// a command.
var commandErrHints = []string{
	"% invalid input",
	"invalid input detected",
	"command not found",
	"incomplete command",
	"% error",
}

// detectHints identify EdgeSwitch firmware in "show version"
var detectHints = []string{"edgeswitch", "ubnt", "ubiquiti"}
