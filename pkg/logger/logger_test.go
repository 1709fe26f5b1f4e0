package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var line map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &line))
		lines = append(lines, line)
	}
	return lines
}

func TestLoggerCarriesContextFields(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "api", Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-1")
	ctx = logg.WithIdentity(ctx, "user-9", "vendor", "vndr-clay")
	logg.Info(ctx, "product.created")
	logg.Info(logg.WithIdentity(context.Background(), "user-1", "customer", ""), "order.placed")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "api", lines[0]["service"])
	assert.Equal(t, "req-1", lines[0]["request_id"])
	assert.Equal(t, "user-9", lines[0]["user_id"])
	assert.Equal(t, "vendor", lines[0]["actor_role"])
	assert.Equal(t, "vndr-clay", lines[0]["vendor_id"])
	assert.Equal(t, "product.created", lines[0]["message"])
	assert.NotContains(t, lines[1], "vendor_id")
	assert.NotContains(t, lines[1], "request_id")
}

func TestLoggerDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "seed", Output: &buf})

	logg.Debug(context.Background(), "request.start")
	assert.Zero(t, buf.Len())

	debugLogg := New(Options{ServiceName: "seed", Level: "debug", Output: &buf})
	debugLogg.Debug(context.Background(), "request.start")
	assert.NotZero(t, buf.Len())
}

func TestLoggerErrorIncludesStack(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "api", Output: &buf})

	logg.Error(context.Background(), "boom", errors.New("disk full"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "disk full", lines[0]["error"])
	assert.NotEmpty(t, lines[0]["stack"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
}
