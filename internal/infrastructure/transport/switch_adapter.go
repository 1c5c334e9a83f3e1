package transport

import (
	"sync"

	"github.com/carlosrabelo/edgesync/internal/domain/ports"
)

// SwitchAdapter exposes a Client as a ports.SwitchRepository. Commands are
// serialized so one CLI session is never interleaved.
type SwitchAdapter struct {
	mu       sync.Mutex
	client   Client
	commands int
}

var _ ports.SwitchRepository = (*SwitchAdapter)(nil)

// NewSwitchAdapter creates a new switch adapter
func NewSwitchAdapter(client Client) *SwitchAdapter {
	return &SwitchAdapter{client: client}
}

func (s *SwitchAdapter) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client.Connect()
}

func (s *SwitchAdapter) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client.Disconnect()
}

// ExecuteCommand executes a command on the switch
func (s *SwitchAdapter) ExecuteCommand(cmd string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands++
	return s.client.ExecuteCommand(cmd)
}

func (s *SwitchAdapter) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client.IsConnected()
}

// CommandCount returns how many commands went through the adapter
func (s *SwitchAdapter) CommandCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commands
}
