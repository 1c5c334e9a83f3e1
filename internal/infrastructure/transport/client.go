package transport

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
)

// Client is a line-oriented CLI connection to a switch
type Client interface {
	Connect() error
	Disconnect()
	ExecuteCommand(cmd string) (string, error)
	IsConnected() bool
}

// AuthConfigurable allows setting authentication prompts after client creation
type AuthConfigurable interface {
	SetAuthSequence(prompts []entities.AuthPrompt)
}

// Pool hands out one client per distinct switch login and closes them
// together. It is safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	clients map[string]Client
	dial    func(entities.SwitchConfig) Client
}

// NewPool creates an empty client pool
func NewPool() *Pool {
	return &Pool{clients: make(map[string]Client), dial: newClient}
}

// Get returns the pooled client for cfg, creating it on first use
func (p *Pool) Get(cfg entities.SwitchConfig) Client {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := cacheKey(cfg)
	if client, ok := p.clients[key]; ok {
		return client
	}
	client := p.dial(cfg)
	p.clients[key] = client
	return client
}

// Len reports how many clients are pooled
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.clients)
}

// CloseAll disconnects and forgets every pooled client
func (p *Pool) CloseAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for key, client := range p.clients {
		client.Disconnect()
		delete(p.clients, key)
	}
}

func cacheKey(cfg entities.SwitchConfig) string {
	keyData := struct {
		Transport      string
		Target         string
		Port           int
		Username       string
		Password       string
		EnablePassword string
	}{
		Transport:      transportName(cfg),
		Target:         cfg.Target,
		Port:           cfg.Port,
		Username:       cfg.Username,
		Password:       cfg.Password,
		EnablePassword: cfg.EnablePassword,
	}
	bytes, _ := json.Marshal(keyData)
	hash := sha256.Sum256(bytes)
	return hex.EncodeToString(hash[:])
}

func transportName(cfg entities.SwitchConfig) string {
	if strings.EqualFold(strings.TrimSpace(cfg.Transport), "ssh") {
		return "ssh"
	}
	return "telnet"
}

func newClient(cfg entities.SwitchConfig) Client {
	if transportName(cfg) == "ssh" {
		return NewSSHClient(cfg)
	}
	return NewTelnetClient(cfg)
}
