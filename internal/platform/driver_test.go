package platform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSwitchRepo struct {
	connected bool
	output    string
	err       error
}

func (m *mockSwitchRepo) Connect() error {
	m.connected = true
	return nil
}

func (m *mockSwitchRepo) Disconnect() {
	m.connected = false
}

func (m *mockSwitchRepo) ExecuteCommand(string) (string, error) {
	return m.output, m.err
}

func (m *mockSwitchRepo) IsConnected() bool {
	return m.connected
}

func TestNormalizeName(t *testing.T) {
	for input, want := range map[string]string{
		"edgeswitch":     "edgeswitch",
		"EdgeSwitch":     "edgeswitch",
		"  EDGESWITCH  ": "edgeswitch",
		"AuTo":           "auto",
		"":               "",
	} {
		assert.Equal(t, want, normalizeName(input), "input %q", input)
	}
}

func TestGet(t *testing.T) {
	driver, err := Get(" EdgeSwitch ")
	require.NoError(t, err)
	assert.Equal(t, "edgeswitch", driver.Name())

	_, err = Get("ios")
	assert.EqualError(t, err, "unknown switch platform: ios")
}

func TestAvailable(t *testing.T) {
	drivers := Available()
	require.NotEmpty(t, drivers)
	drivers[0] = nil
	assert.NotNil(t, Available()[0], "Available returns a copy")
	assert.Equal(t, []string{"edgeswitch"}, Names())
}

func TestResolve(t *testing.T) {
	repo := &mockSwitchRepo{output: "Machine Type....... EdgeSwitch 24-Port Lite"}
	driver, err := Resolve("auto", repo)
	require.NoError(t, err)
	assert.Equal(t, "edgeswitch", driver.Name())

	_, err = Resolve("auto", &mockSwitchRepo{output: "Cisco IOS Software"})
	assert.EqualError(t, err, "unable to detect switch platform")

	boom := errors.New("timeout")
	_, err = Resolve("auto", &mockSwitchRepo{err: boom})
	assert.ErrorIs(t, err, boom)

	driver, err = Resolve("edgeswitch", nil)
	require.NoError(t, err)
	assert.Equal(t, "edgeswitch", driver.Name())
}
