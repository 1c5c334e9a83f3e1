package transport

import (
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/util"
)

const (
	DefaultTimeout    = 60 * time.Second
	BufferSize        = 4096
	PromptUser        = "User:"
	PromptPassword    = "Password:"
	PromptEnable      = ">"
	PromptPrivileged  = "#"
	TerminalLengthCmd = "terminal length 0\n"
)

// session drives the EdgeSwitch CLI over a byte stream. A pump goroutine
// moves everything the device prints into data until the stream fails or
// the session is closed.
type session struct {
	w       io.Writer
	data    chan []byte
	done    chan struct{}
	err     error
	timeout time.Duration
	device  string
	raw     bool
}

func newSession(r io.Reader, w io.Writer, cfg entities.SwitchConfig) *session {
	s := &session{
		w:       w,
		data:    make(chan []byte, 16),
		done:    make(chan struct{}),
		timeout: DefaultTimeout,
		device:  cfg.Target,
		raw:     cfg.IsRawOutputEnabled(),
	}
	go s.pump(r)
	return s
}

func (s *session) pump(r io.Reader) {
	defer close(s.data)
	buffer := make([]byte, BufferSize)
	for {
		n, err := r.Read(buffer)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buffer[:n])
			select {
			case s.data <- chunk:
			case <-s.done:
				return
			}
		}
		if err != nil {
			s.err = err
			return
		}
	}
}

func (s *session) close() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

func (s *session) send(data string) error {
	_, err := s.w.Write([]byte(data))
	return err
}

// readUntilAny reads until the output ends with one of patterns, ignoring
// trailing blanks.
func (s *session) readUntilAny(patterns ...string) (string, error) {
	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	var output strings.Builder
	for {
		select {
		case chunk, ok := <-s.data:
			if !ok {
				err := s.err
				if err == nil {
					err = io.EOF
				}
				return output.String(), errors.Wrap(err, "read error")
			}
			output.Write(chunk)
			if s.raw {
				util.WithDevice(s.device).Infof("Switch output: Read: %s", string(chunk))
			}
			text := strings.TrimRight(output.String(), " \t\r\n")
			for _, pattern := range patterns {
				if strings.HasSuffix(text, pattern) {
					return output.String(), nil
				}
			}
		case <-timer.C:
			return output.String(), errors.Errorf("timeout waiting for %s", strings.Join(patterns, ", "))
		}
	}
}

// authenticate walks the login dialogue
func (s *session) authenticate(prompts []entities.AuthPrompt, debug bool) error {
	for _, p := range prompts {
		output, err := s.readUntilAny(p.WaitFor)
		if err != nil {
			return errors.Wrapf(err, "failed to wait for %s, output: %s", p.WaitFor, output)
		}
		if p.SendCmd == "" {
			continue
		}
		if err := s.send(p.SendCmd); err != nil {
			return errors.Wrapf(err, "failed to answer %s", p.WaitFor)
		}
		if debug {
			util.WithDevice(s.device).Debugf("Answered prompt %s", p.WaitFor)
		}
	}
	return nil
}

// execute sends one command and returns what the device printed between
// the echoed command and the next privileged prompt.
func (s *session) execute(cmd string) (string, error) {
	if err := s.send(cmd + "\n"); err != nil {
		return "", errors.Wrapf(err, "failed to send command %s", cmd)
	}
	output, err := s.readUntilAny(PromptPrivileged)
	if err != nil {
		return "", errors.Wrapf(err, "error executing %s", cmd)
	}
	return stripEchoAndPrompt(output), nil
}

func stripEchoAndPrompt(output string) string {
	lines := strings.Split(strings.ReplaceAll(output, "\r", ""), "\n")
	if len(lines) <= 2 {
		return ""
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}
