package transport

import (
	"net"

	"github.com/pkg/errors"
	"github.com/ziutek/telnet"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/util"
)

// TelnetClient manages a Telnet connection to a switch
type TelnetClient struct {
	conn         net.Conn
	sess         *session
	config       entities.SwitchConfig
	authSequence []entities.AuthPrompt
}

// NewTelnetClient creates a new Telnet client with the given configuration
func NewTelnetClient(cfg entities.SwitchConfig) *TelnetClient {
	return &TelnetClient{config: cfg}
}

// SetAuthSequence configures the authentication sequence for this client
func (tc *TelnetClient) SetAuthSequence(prompts []entities.AuthPrompt) {
	tc.authSequence = prompts
}

// Connect establishes a Telnet connection to the switch
func (tc *TelnetClient) Connect() error {
	if tc.IsConnected() {
		return nil
	}
	raw, err := net.DialTimeout("tcp", tc.config.Address(), DefaultTimeout)
	if err != nil {
		return errors.Wrapf(err, "failed to connect to %s", tc.config.Target)
	}
	conn, err := telnet.NewConn(raw)
	if err != nil {
		raw.Close()
		return errors.Wrapf(err, "failed to open telnet session to %s", tc.config.Target)
	}
	return tc.attach(conn)
}

// attach runs the login dialogue over an established connection
func (tc *TelnetClient) attach(conn net.Conn) error {
	tc.conn = conn
	tc.sess = newSession(conn, conn, tc.config)
	if tc.config.IsDebugEnabled() {
		util.WithDevice(tc.config.Target).Debug("Connected")
	}

	if err := tc.sess.authenticate(tc.prompts(), tc.config.IsDebugEnabled()); err != nil {
		tc.Disconnect()
		return err
	}
	return nil
}

// prompts returns the configured sequence or the EdgeSwitch default
func (tc *TelnetClient) prompts() []entities.AuthPrompt {
	if len(tc.authSequence) > 0 {
		return tc.authSequence
	}
	return []entities.AuthPrompt{
		{WaitFor: PromptUser, SendCmd: tc.config.Username + "\n"},
		{WaitFor: PromptPassword, SendCmd: tc.config.Password + "\n"},
		{WaitFor: PromptEnable, SendCmd: "enable\n"},
		{WaitFor: PromptPassword, SendCmd: tc.config.EnablePassword + "\n"},
		{WaitFor: PromptPrivileged, SendCmd: TerminalLengthCmd},
		{WaitFor: PromptPrivileged, SendCmd: ""},
	}
}

// Disconnect closes the Telnet connection
func (tc *TelnetClient) Disconnect() {
	if tc.conn == nil {
		return
	}
	tc.sess.close()
	tc.conn.Close()
	tc.conn = nil
	tc.sess = nil
	if tc.config.IsDebugEnabled() {
		util.WithDevice(tc.config.Target).Debug("Disconnected")
	}
}

func (tc *TelnetClient) IsConnected() bool {
	return tc.conn != nil
}

// ExecuteCommand sends a command to the switch and returns its output
func (tc *TelnetClient) ExecuteCommand(cmd string) (string, error) {
	if !tc.IsConnected() {
		return "", errors.Errorf("not connected to %s", tc.config.Target)
	}
	if tc.config.IsDebugEnabled() {
		util.WithDevice(tc.config.Target).Debugf("Executing: %s", cmd)
	}
	output, err := tc.sess.execute(cmd)
	if err != nil {
		return "", err
	}
	if tc.config.IsRawOutputEnabled() {
		util.WithDevice(tc.config.Target).Infof("Switch output for '%s':\n%s", cmd, output)
	}
	return output, nil
}
