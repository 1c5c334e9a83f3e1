package transport

import (
	"bufio"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
)

// fakeSwitch plays the device side of an EdgeSwitch login over conn
func fakeSwitch(t *testing.T, conn net.Conn, commands map[string]string) {
	t.Helper()
	r := bufio.NewReader(conn)
	expect := func(want string) bool {
		line, err := r.ReadString('\n')
		if err != nil {
			return false
		}
		return assert.Equal(t, want, line)
	}
	write := func(s string) {
		_, _ = conn.Write([]byte(s))
	}

	write("\r\nUser:")
	if !expect("admin\n") {
		return
	}
	write("Password:")
	if !expect("secret\n") {
		return
	}
	write("\r\n(UBNT EdgeSwitch) >")
	if !expect("enable\n") {
		return
	}
	write("Password:")
	if !expect("enable-secret\n") {
		return
	}
	write("\r\n(UBNT EdgeSwitch) #")
	if !expect("terminal length 0\n") {
		return
	}
	write("terminal length 0\r\n(UBNT EdgeSwitch) #")

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimSuffix(line, "\n")
		write(cmd + "\r\n" + commands[cmd] + "\r\n(UBNT EdgeSwitch) #")
	}
}

func testConfig() entities.SwitchConfig {
	return entities.SwitchConfig{
		Target:         "10.0.0.2",
		Username:       "admin",
		Password:       "secret",
		EnablePassword: "enable-secret",
	}
}

func TestTelnetClient_LoginAndExecute(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	go fakeSwitch(t, server, map[string]string{
		"show vlan brief": "VLAN ID VLAN Name\r\n1       default",
	})

	tc := NewTelnetClient(testConfig())
	require.NoError(t, tc.attach(client))
	assert.True(t, tc.IsConnected())

	output, err := tc.ExecuteCommand("show vlan brief")
	require.NoError(t, err)
	assert.Equal(t, "VLAN ID VLAN Name\n1       default", output)

	tc.Disconnect()
	assert.False(t, tc.IsConnected())
	_, err = tc.ExecuteCommand("show vlan brief")
	assert.EqualError(t, err, "not connected to 10.0.0.2")
}

func TestTelnetClient_CustomAuthSequence(t *testing.T) {
	tc := NewTelnetClient(testConfig())
	assert.Len(t, tc.prompts(), 6)

	custom := []entities.AuthPrompt{{WaitFor: "#", SendCmd: ""}}
	tc.SetAuthSequence(custom)
	assert.Equal(t, custom, tc.prompts())

	var _ AuthConfigurable = tc
}

func TestTelnetClient_LoginFailure(t *testing.T) {
	client, server := net.Pipe()
	go func() {
		_, _ = server.Write([]byte("User:"))
		server.Close()
	}()

	tc := NewTelnetClient(testConfig())
	err := tc.attach(client)
	require.Error(t, err)
	assert.False(t, tc.IsConnected(), "failed login disconnects")
}

func TestSession_ReadTimeout(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	s := newSession(r, io.Discard, testConfig())
	defer s.close()
	s.timeout = 20 * time.Millisecond

	_, err := s.readUntilAny("#", ">")
	assert.EqualError(t, err, "timeout waiting for #, >")
}

func TestSession_ReadEOF(t *testing.T) {
	s := newSession(strings.NewReader("partial output"), io.Discard, testConfig())
	defer s.close()

	output, err := s.readUntilAny("#")
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.EOF))
	assert.Equal(t, "partial output", output)
}

func TestSession_PromptIgnoresTrailingBlanks(t *testing.T) {
	s := newSession(strings.NewReader("(UBNT EdgeSwitch) #  \r\n"), io.Discard, testConfig())
	defer s.close()

	_, err := s.readUntilAny("#")
	assert.NoError(t, err)
}

func TestStripEchoAndPrompt(t *testing.T) {
	assert.Equal(t, "line one\nline two", stripEchoAndPrompt("cmd\r\nline one\r\nline two\r\n(sw) #"))
	assert.Equal(t, "", stripEchoAndPrompt("cmd\r\n(sw) #"))
	assert.Equal(t, "", stripEchoAndPrompt("(sw) #"))
}

type fakeClient struct {
	connected    bool
	disconnected int
	commands     []string
}

func (f *fakeClient) Connect() error {
	f.connected = true
	return nil
}

func (f *fakeClient) Disconnect() {
	f.connected = false
	f.disconnected++
}

func (f *fakeClient) ExecuteCommand(cmd string) (string, error) {
	f.commands = append(f.commands, cmd)
	return "ok", nil
}

func (f *fakeClient) IsConnected() bool {
	return f.connected
}

func TestPool(t *testing.T) {
	var dialed []*fakeClient
	pool := NewPool()
	pool.dial = func(entities.SwitchConfig) Client {
		c := &fakeClient{}
		dialed = append(dialed, c)
		return c
	}

	a := testConfig()
	b := testConfig()
	b.Port = 2323

	first := pool.Get(a)
	assert.Same(t, first, pool.Get(a))
	assert.NotSame(t, first, pool.Get(b))
	assert.Equal(t, 2, pool.Len())

	pool.CloseAll()
	assert.Equal(t, 0, pool.Len())
	for _, c := range dialed {
		assert.Equal(t, 1, c.disconnected)
	}
}

func TestCacheKey(t *testing.T) {
	a := testConfig()
	b := testConfig()
	assert.Equal(t, cacheKey(a), cacheKey(b))

	b.Transport = "TELNET"
	assert.Equal(t, cacheKey(a), cacheKey(b), "empty transport means telnet")

	b.Transport = "ssh"
	assert.NotEqual(t, cacheKey(a), cacheKey(b))

	b = testConfig()
	b.EnablePassword = "other"
	assert.NotEqual(t, cacheKey(a), cacheKey(b))
}

func TestNewClient(t *testing.T) {
	cfg := testConfig()
	assert.IsType(t, &TelnetClient{}, newClient(cfg))

	cfg.Transport = " SSH "
	assert.IsType(t, &SSHClient{}, newClient(cfg))
}

func TestSwitchAdapter(t *testing.T) {
	fc := &fakeClient{}
	adapter := NewSwitchAdapter(fc)

	require.NoError(t, adapter.Connect())
	assert.True(t, adapter.IsConnected())

	out, err := adapter.ExecuteCommand("show version")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	_, _ = adapter.ExecuteCommand("show vlan brief")
	assert.Equal(t, 2, adapter.CommandCount())
	assert.Equal(t, []string{"show version", "show vlan brief"}, fc.commands)

	adapter.Disconnect()
	assert.False(t, adapter.IsConnected())
}
