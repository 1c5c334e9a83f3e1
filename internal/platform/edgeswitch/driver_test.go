package edgeswitch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosrabelo/edgesync/internal/domain/entities"
	"github.com/carlosrabelo/edgesync/internal/util"
)

type mockSwitchRepo struct {
	connected  bool
	connectErr error
	executed   []string
	responses  map[string]string
	execErrors map[string]error
}

func (m *mockSwitchRepo) Connect() error {
	if m.connectErr != nil {
		return m.connectErr
	}
	m.connected = true
	return nil
}

func (m *mockSwitchRepo) Disconnect() {
	m.connected = false
}

func (m *mockSwitchRepo) ExecuteCommand(cmd string) (string, error) {
	m.executed = append(m.executed, cmd)
	if err, ok := m.execErrors[cmd]; ok {
		return "", err
	}
	return m.responses[cmd], nil
}

func (m *mockSwitchRepo) IsConnected() bool {
	return m.connected
}

func TestDriver_Detect(t *testing.T) {
	d := New()

	repo := &mockSwitchRepo{responses: map[string]string{"show version": fixture(t, "show_version.txt")}}
	matched, err := d.Detect(repo)
	require.NoError(t, err)
	assert.True(t, matched)
	assert.True(t, repo.connected, "Detect connects first")

	repo = &mockSwitchRepo{connected: true, responses: map[string]string{"show version": "Cisco IOS Software"}}
	matched, err = d.Detect(repo)
	require.NoError(t, err)
	assert.False(t, matched)

	repo = &mockSwitchRepo{connectErr: errors.New("refused")}
	_, err = d.Detect(repo)
	assert.EqualError(t, err, "refused")
}

func TestDriver_Reads(t *testing.T) {
	d := New()
	cfg := entities.SwitchConfig{Target: "10.0.0.2"}
	repo := &mockSwitchRepo{connected: true, responses: map[string]string{
		"show vlan brief":              fixture(t, "show_vlan_brief.txt"),
		"show interfaces switchport":   fixture(t, "show_interfaces_switchport.txt"),
		"show running-config":          fixture(t, "show_running_config.txt"),
		"show interface ethernet 0/3":  fixture(t, "show_interface_ethernet.txt"),
		"show interface ethernet 0/99": "% Invalid input detected at '^' marker.",
	}}

	vlans, err := d.GetVLANs(repo, cfg)
	require.NoError(t, err)
	assert.Len(t, vlans, 4)

	switchports, err := d.GetSwitchports(repo, cfg)
	require.NoError(t, err)
	assert.Len(t, switchports, 3)

	configs, err := d.GetInterfaceConfigs(repo, cfg)
	require.NoError(t, err)
	assert.Len(t, configs, 5)

	voice, err := d.GetVoicePorts(repo, cfg)
	require.NoError(t, err)
	assert.Len(t, voice, 4)

	mtu, err := d.GetRunningMTU(repo, cfg, "0/3")
	require.NoError(t, err)
	assert.Equal(t, 1518, mtu)

	_, err = d.GetRunningMTU(repo, cfg, "0/99")
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrTransport))
}

func TestDriver_ReadFailure(t *testing.T) {
	boom := errors.New("connection reset")
	repo := &mockSwitchRepo{connected: true, execErrors: map[string]error{"show vlan brief": boom}}

	_, err := New().GetVLANs(repo, entities.SwitchConfig{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrTransport))
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "show vlan brief")
}

func TestDriver_LoadConfig(t *testing.T) {
	d := New()
	repo := &mockSwitchRepo{connected: true}

	require.NoError(t, d.LoadConfig(repo, entities.SwitchConfig{}, []string{"interface 0/2", "no shutdown"}))
	assert.Equal(t, []string{"configure", "interface 0/2", "no shutdown", "end"}, repo.executed)

	repo = &mockSwitchRepo{connected: true}
	require.NoError(t, d.LoadConfig(repo, entities.SwitchConfig{}, nil))
	assert.Empty(t, repo.executed)
}

func TestDriver_LoadConfigRejected(t *testing.T) {
	d := New()
	repo := &mockSwitchRepo{connected: true, responses: map[string]string{
		"speed 40000 full-duplex": "% Invalid input detected at '^' marker.",
	}}

	err := d.LoadConfig(repo, entities.SwitchConfig{}, []string{"interface 0/2", "speed 40000 full-duplex", "no shutdown"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrTransport))
	assert.Equal(t, []string{"configure", "interface 0/2", "speed 40000 full-duplex", "end"}, repo.executed)
}

func TestDriver_RunCommands(t *testing.T) {
	d := New()
	repo := &mockSwitchRepo{connected: true}
	cmds := []string{"vlan database", "vlan 100", `vlan name 100 "voice"`, "exit"}

	require.NoError(t, d.RunCommands(repo, entities.SwitchConfig{}, cmds))
	assert.Equal(t, cmds, repo.executed)
}

func TestDriver_AuthenticationSequence(t *testing.T) {
	prompts := New().GetAuthenticationSequence("admin", "secret", "enable-secret")
	require.Len(t, prompts, 6)
	assert.Equal(t, entities.AuthPrompt{WaitFor: "User:", SendCmd: "admin\n"}, prompts[0])
	assert.Equal(t, entities.AuthPrompt{WaitFor: "Password:", SendCmd: "enable-secret\n"}, prompts[3])
	assert.Equal(t, "terminal length 0\n", prompts[4].SendCmd)
}

func TestDriver_SaveCommands(t *testing.T) {
	assert.Equal(t, []string{"write memory confirm", "copy system:running-config nvram:startup-config"}, New().SaveCommands())
}
