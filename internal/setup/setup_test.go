package setup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterPreservesOtherServers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Claude", "claude_desktop_config.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	existing := `{"globalShortcut": "Ctrl+Space", "mcpServers": {"other": {"command": "/bin/other"}}}`
	require.NoError(t, os.WriteFile(path, []byte(existing), 0644))

	binary := filepath.Join(dir, "mcp-server")
	require.NoError(t, os.WriteFile(binary, []byte("#!/bin/sh\n"), 0755))

	written, err := Register(Options{ConfigPath: path, BinaryPath: binary, DataDir: "/var/lib/risk", Audit: true})
	require.NoError(t, err)
	assert.Equal(t, path, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, `"Ctrl+Space"`, string(raw["globalShortcut"]))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/bin/other", cfg.MCPServers["other"].Command)
	entry := cfg.MCPServers[ServerKey]
	assert.Equal(t, binary, entry.Command)
	assert.Equal(t, "/var/lib/risk", entry.Env[DataDirEnv])
	assert.Equal(t, "true", entry.Env["RISK_GATEWAY_AUDIT"])

	status, err := GetStatus(path)
	require.NoError(t, err)
	assert.True(t, status.Registered)
	assert.Empty(t, status.Issues)
}

func TestRegisterCreatesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	_, err := Register(Options{ConfigPath: path, BinaryPath: "/opt/risk/mcp-server"})
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Contains(t, cfg.MCPServers, ServerKey)
	assert.Empty(t, cfg.MCPServers[ServerKey].Env)

	status, err := GetStatus(path)
	require.NoError(t, err)
	assert.True(t, status.Registered)
	assert.Equal(t, []string{"server binary not found: /opt/risk/mcp-server"}, status.Issues)
}

func TestGetStatusUnregistered(t *testing.T) {
	status, err := GetStatus(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.False(t, status.Registered)
	assert.Equal(t, []string{"server is not registered"}, status.Issues)
}

func TestLoadRejectsMalformedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestDefaultConfigPathHonoursXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	path, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/Claude/claude_desktop_config.json", path)
}
