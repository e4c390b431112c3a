// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"app": {
			"recent_window": "10m",
			"refresh_interval": "15s",
			"log_file": "/var/log/trace-backup.log"
		},
		"storage": {
			"path": "/var/lib/trace-backup/store.db",
			"lock_timeout": "2s"
		},
		"vault": {
			"backend": "file",
			"file_path": "/var/lib/trace-backup/keys.json",
			"passphrase": "secret",
			"key_id": "custom.key",
			"keyring_service": "svc"
		},
		"diagnostics": {
			"endpoint": "https://errors.example.org/api/report",
			"timeout": "3s"
		}
	}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 10*time.Minute, cfg.App.RecentWindow)
	assert.Equal(t, 15*time.Second, cfg.App.RefreshInterval)
	assert.Equal(t, "/var/log/trace-backup.log", cfg.App.LogFile)

	assert.Equal(t, "/var/lib/trace-backup/store.db", cfg.Storage.Path)
	assert.Equal(t, 2*time.Second, cfg.Storage.LockTimeout)

	assert.Equal(t, "file", cfg.Vault.Backend)
	assert.Equal(t, "/var/lib/trace-backup/keys.json", cfg.Vault.FilePath)
	assert.Equal(t, "secret", cfg.Vault.Passphrase)
	assert.Equal(t, "custom.key", cfg.Vault.KeyID)
	assert.Equal(t, "svc", cfg.Vault.KeyringService)

	assert.Equal(t, "https://errors.example.org/api/report", cfg.Diagnostics.Endpoint)
	assert.Equal(t, 3*time.Second, cfg.Diagnostics.Timeout)

	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	// Act
	cfg, err := parseJSON("definitely-does-not-exist.json")

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(p, []byte(`{ this is not json }`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "bad_duration.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"app": {"recent_window": "not-a-duration"}}`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_EmptyObject(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(p, []byte(`{}`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, StructuredConfig{}, *cfg)
}

func TestParseJSON_PartialObject(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "partial.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"storage": {"path": "store.db"}}`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "store.db", cfg.Storage.Path)
	assert.Zero(t, cfg.Storage.LockTimeout)
	assert.Equal(t, App{}, cfg.App)
	assert.Equal(t, Vault{}, cfg.Vault)
	assert.Equal(t, Diagnostics{}, cfg.Diagnostics)
}

func TestDuration_JSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Duration
	}{
		{name: "string", in: `"1m30s"`, want: 90 * time.Second},
		{name: "nanoseconds", in: `1000`, want: time.Microsecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			require.NoError(t, json.Unmarshal([]byte(tt.in), &d))
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}

	out, err := json.Marshal(Duration(5 * time.Minute))
	require.NoError(t, err)
	assert.JSONEq(t, `"5m0s"`, string(out))
}
