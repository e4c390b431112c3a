// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGooseLogger(t *testing.T) {
	var buf bytes.Buffer
	g := NewGooseLogger(&Logger{zerolog.New(&buf)})

	g.Printf("OK   %s (%s)\n", "00001_create_backup_entries.sql", "1ms")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "goose", entry["component"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "OK   00001_create_backup_entries.sql (1ms)", entry["message"])

	buf.Reset()
	g.Fatalf("failed: %v", "boom")

	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "failed: boom", entry["message"])
}
