package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
platform: edgeswitch
transport: telnet
username: admin
password: secret
enable_password: enable-secret
vlans:
  aggregate:
    - vlan_id: 100
      name: voice
    - vlan_id: 200
      name: data
  purge: true
voice:
  interfaces: 0/1-0/8
  vlan_id: 100
switches:
  - target: 10.0.0.2
  - target: 10.0.0.3
    transport: SSH
    port: 2222
    username: ops
    interfaces:
      name: 0/1
      description: uplink
    voice:
      interfaces: 0/1
      state: absent
`

func TestParse_Inheritance(t *testing.T) {
	cfg, err := Parse([]byte(sample), Options{VerbosityLevel: 1})
	require.NoError(t, err)
	require.Len(t, cfg.Switches, 2)

	first := cfg.Switches[0]
	assert.Equal(t, "edgeswitch", first.Platform)
	assert.Equal(t, "telnet", first.Transport)
	assert.Equal(t, "admin", first.Username)
	assert.Equal(t, "secret", first.Password)
	assert.Equal(t, "enable-secret", first.EnablePassword)
	assert.Equal(t, "10.0.0.2:23", first.Address())
	require.NotNil(t, first.VLANs)
	assert.Len(t, first.VLANs.Aggregate, 2)
	assert.True(t, first.VLANs.Purge)
	assert.Nil(t, first.Interfaces)
	require.NotNil(t, first.Voice)
	assert.Equal(t, 100, *first.Voice.VlanID)

	second := cfg.Switches[1]
	assert.Equal(t, "ssh", second.Transport)
	assert.Equal(t, "ops", second.Username)
	assert.Equal(t, "10.0.0.3:2222", second.Address())
	require.NotNil(t, second.Interfaces)
	assert.Equal(t, "uplink", *second.Interfaces.Description)
	require.NotNil(t, second.Voice)
	assert.Equal(t, "absent", *second.Voice.State, "switch section replaces the global one")
	assert.Same(t, first.VLANs, second.VLANs)
}

func TestParse_RunOptions(t *testing.T) {
	cfg, err := Parse([]byte(sample), Options{})
	require.NoError(t, err)
	assert.True(t, cfg.Switches[0].Sandbox, "dry run unless write is requested")
	assert.False(t, cfg.Switches[0].Save)

	cfg, err = Parse([]byte(sample), Options{Write: true, Save: true, VerbosityLevel: 2, Platform: "AUTO"})
	require.NoError(t, err)
	for _, sw := range cfg.Switches {
		assert.False(t, sw.Sandbox)
		assert.True(t, sw.Save)
		assert.Equal(t, 2, sw.VerbosityLevel)
		assert.Equal(t, "auto", sw.Platform)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		opts Options
		want string
	}{
		{
			name: "no switches",
			doc:  "username: admin\n",
			want: "no switches defined in the YAML configuration",
		},
		{
			name: "bad global platform",
			doc:  "platform: ios\nswitches: [{target: a}]\n",
			want: "platform ios is invalid, must be 'edgeswitch' or 'auto'",
		},
		{
			name: "bad override platform",
			doc:  "username: admin\nswitches: [{target: a}]\n",
			opts: Options{Platform: "dmos"},
			want: "platform dmos is invalid, must be 'edgeswitch' or 'auto'",
		},
		{
			name: "bad global transport",
			doc:  "transport: http\nswitches: [{target: a}]\n",
			want: "transport http is invalid, must be 'telnet' or 'ssh'",
		},
		{
			name: "bad switch transport",
			doc:  "username: admin\nswitches: [{target: a, transport: serial}]\n",
			want: "invalid transport for switch a: transport serial is invalid, must be 'telnet' or 'ssh'",
		},
		{
			name: "missing target",
			doc:  "username: admin\nswitches: [{username: x}]\n",
			want: "target is required for switch 0",
		},
		{
			name: "missing username",
			doc:  "switches: [{target: a}]\n",
			want: "username is required for switch a",
		},
		{
			name: "bad port",
			doc:  "username: admin\nswitches: [{target: a, port: 70000}]\n",
			want: "port 70000 is invalid for switch a",
		},
		{
			name: "duplicate target",
			doc:  "username: admin\nswitches: [{target: a}, {target: a}]\n",
			want: "switch a is defined more than once",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), tt.opts)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("switches: [\n"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path, Options{})
	require.NoError(t, err)

	sw, err := cfg.Switch("10.0.0.3")
	require.NoError(t, err)
	assert.Equal(t, "ops", sw.Username)

	_, err = cfg.Switch("10.0.0.9")
	assert.EqualError(t, err, "switch 10.0.0.9 not found in configuration")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read YAML file")
}

func TestFind(t *testing.T) {
	path, err := Find("/tmp/explicit.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/explicit.yaml", path)

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	assert.Contains(t, SearchPath(), filepath.Join(xdg, "edgesync", FileName))

	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "edgesync"), 0o755))
	want := filepath.Join(xdg, "edgesync", FileName)
	require.NoError(t, os.WriteFile(want, []byte(sample), 0o600))

	if _, err := os.Stat(filepath.Join("/etc", "edgesync", FileName)); err == nil {
		t.Skip("system configuration present")
	}
	path, err = Find("")
	require.NoError(t, err)
	assert.Equal(t, want, path)
}

func TestMissingSecrets(t *testing.T) {
	cfg, err := Parse([]byte("username: admin\nswitches: [{target: a, password: x}, {target: b}]\n"), Options{})
	require.NoError(t, err)
	assert.Empty(t, MissingSecrets(cfg.Switches[0]))
	assert.Equal(t, []string{"password"}, MissingSecrets(cfg.Switches[1]))
}
