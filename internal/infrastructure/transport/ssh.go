package transport

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/util"
)

// SSHClient manages an SSH session with a switch
type SSHClient struct {
	config  entities.SwitchConfig
	client  *ssh.Client
	session *ssh.Session
	sess    *session
}

// NewSSHClient creates a new SSH client with the given configuration
func NewSSHClient(cfg entities.SwitchConfig) *SSHClient {
	return &SSHClient{config: cfg}
}

func (sc *SSHClient) Connect() error {
	if sc.IsConnected() {
		return nil
	}
	addr := sc.config.Address()
	sshConfig := &ssh.ClientConfig{
		User: sc.config.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(sc.config.Password),
			ssh.KeyboardInteractive(sc.answerChallenge),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         DefaultTimeout,
	}

	client, err := ssh.Dial("tcp", addr, sshConfig)
	if err != nil {
		return errors.Wrapf(err, "failed to connect to %s via SSH", sc.config.Target)
	}

	session, err := client.NewSession()
	if err != nil {
		client.Close()
		return errors.Wrapf(err, "failed to create SSH session for %s", sc.config.Target)
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 9600,
		ssh.TTY_OP_OSPEED: 9600,
	}
	if err := session.RequestPty("vt100", 80, 40, modes); err != nil {
		session.Close()
		client.Close()
		return errors.Wrapf(err, "failed to request PTY for %s", sc.config.Target)
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		session.Close()
		client.Close()
		return errors.Wrapf(err, "failed to get stdin pipe for %s", sc.config.Target)
	}

	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		client.Close()
		return errors.Wrapf(err, "failed to get stdout pipe for %s", sc.config.Target)
	}

	if err := session.Shell(); err != nil {
		session.Close()
		client.Close()
		return errors.Wrapf(err, "failed to start shell for %s", sc.config.Target)
	}

	sc.client = client
	sc.session = session
	sc.sess = newSession(stdout, stdin, sc.config)

	if sc.config.IsDebugEnabled() {
		util.WithDevice(sc.config.Target).Debug("Connected via SSH")
	}

	if err := sc.elevate(); err != nil {
		sc.Disconnect()
		return err
	}
	return nil
}

// elevate enters privileged mode when the shell starts unprivileged and
// turns paging off.
func (sc *SSHClient) elevate() error {
	initial, err := sc.sess.readUntilAny(PromptPrivileged, PromptEnable)
	if err != nil {
		return err
	}

	if !strings.HasSuffix(strings.TrimSpace(initial), PromptPrivileged) {
		if sc.config.IsDebugEnabled() {
			util.WithDevice(sc.config.Target).Debug("Elevating to privileged mode")
		}
		if err := sc.sess.send("enable\n"); err != nil {
			return errors.Wrapf(err, "failed to send enable to %s", sc.config.Target)
		}
		err := sc.sess.authenticate([]entities.AuthPrompt{
			{WaitFor: PromptPassword, SendCmd: sc.config.EnablePassword + "\n"},
			{WaitFor: PromptPrivileged, SendCmd: ""},
		}, sc.config.IsDebugEnabled())
		if err != nil {
			return err
		}
	} else if sc.config.IsDebugEnabled() {
		util.WithDevice(sc.config.Target).Debug("Already in privileged mode")
	}

	if err := sc.sess.send(TerminalLengthCmd); err != nil {
		return errors.Wrapf(err, "failed to send terminal length command to %s", sc.config.Target)
	}
	_, err = sc.sess.readUntilAny(PromptPrivileged)
	return err
}

// answerChallenge answers keyboard-interactive password questions
func (sc *SSHClient) answerChallenge(_, _ string, questions []string, _ []bool) ([]string, error) {
	answers := make([]string, len(questions))
	for i := range questions {
		answers[i] = sc.config.Password
	}
	return answers, nil
}

func (sc *SSHClient) Disconnect() {
	if sc.sess != nil {
		sc.sess.close()
		sc.sess = nil
	}
	if sc.session != nil {
		sc.session.Close()
		sc.session = nil
	}
	if sc.client != nil {
		sc.client.Close()
		sc.client = nil
	}
	if sc.config.IsDebugEnabled() {
		util.WithDevice(sc.config.Target).Debug("Disconnected")
	}
}

func (sc *SSHClient) IsConnected() bool {
	return sc.session != nil && sc.client != nil
}

func (sc *SSHClient) ExecuteCommand(cmd string) (string, error) {
	if !sc.IsConnected() {
		return "", errors.Errorf("not connected to %s", sc.config.Target)
	}
	if sc.config.IsDebugEnabled() {
		util.WithDevice(sc.config.Target).Debugf("Executing: %s", cmd)
	}
	output, err := sc.sess.execute(cmd)
	if err != nil {
		return "", err
	}
	if sc.config.IsRawOutputEnabled() {
		util.WithDevice(sc.config.Target).Infof("Switch output for '%s':\n%s", cmd, output)
	}
	return output, nil
}
