package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryIsRecorded(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { _ = Close() })

	Warn("SWEEP", "deadline reached after ", 3, " accounts")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "SWEEP", line["category"])
	assert.Equal(t, "deadline reached after 3 accounts", line["message"])
}

func TestErrorfReturnsError(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { _ = Close() })

	base := errors.New("boom")
	err := Errorf("rpc failed: %w", base)
	assert.ErrorIs(t, err, base)
	assert.Contains(t, buf.String(), "rpc failed: boom")
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "walletsync.log")
	require.NoError(t, Init(Options{File: path, MaxSizeMB: 1, MaxAgeDays: 1, Level: "debug"}))
	Info("TEST", "hello")
	require.NoError(t, Close())
	assert.FileExists(t, path)
}
