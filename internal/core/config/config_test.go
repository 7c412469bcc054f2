package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rendezvous.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 5*time.Second, cfg.Collaborators.TimeoutDuration())
	assert.False(t, cfg.Metrics.Strict)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  host: "127.0.0.1"
database:
  type: "memory"
collaborators:
  stats_url: "http://stats:9090"
  users_url: "http://users:8081"
  timeout: "2s"
metrics:
  strict: true
log:
  format: "json"
`)
	t.Setenv("RENDEZVOUS_SERVER__PORT", "7070")
	t.Setenv("RENDEZVOUS_COLLABORATORS__REQUESTS_URL", "http://requests:8082")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port, "env overrides file")
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "memory", cfg.Database.Type)
	assert.Equal(t, 2*time.Second, cfg.Collaborators.TimeoutDuration())
	assert.Equal(t, "http://requests:8082", cfg.Collaborators.RequestsURL)
	assert.True(t, cfg.Metrics.Strict)
	assert.Equal(t, "json", cfg.Log.Format)

	require.NoError(t, cfg.RequireCollaborators(Stats, Users, Requests))
	err = cfg.RequireCollaborators(Events)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collaborators.events_url")
}

func TestLoad_InvalidValuesFailStartup(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "bad timeout", body: "collaborators:\n  timeout: \"soon\"\n", wantErr: "invalid collaborators.timeout"},
		{name: "bad database type", body: "database:\n  type: \"sqlite\"\n", wantErr: "unsupported database.type"},
		{name: "bad log level", body: "log:\n  level: \"verbose\"\n", wantErr: "invalid log.level"},
		{name: "bad url", body: "collaborators:\n  stats_url: \"stats\"\n", wantErr: "invalid collaborators.stats_url"},
		{name: "bad mode", body: "server:\n  mode: \"prod\"\n", wantErr: "invalid server.mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), "got %v", err)
		})
	}
}

func TestDump_RedactsPassword(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	out, err := cfg.Dump()
	require.NoError(t, err)
	assert.Contains(t, string(out), "rendezvous:xxxxx@localhost")
	assert.NotContains(t, string(out), "rendezvous:rendezvous@")
	assert.Contains(t, string(out), "last_known_cache_size: 4096")
}
