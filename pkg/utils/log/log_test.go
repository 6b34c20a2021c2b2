package log

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/jdoccov/pkg/configs"
)

func withConsole(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := consoleOut
	consoleOut = buf
	t.Cleanup(func() {
		consoleOut = prev
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	})
	return buf
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"bogus":   zerolog.WarnLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}

func TestInitLoggerQuietDiscards(t *testing.T) {
	buf := withConsole(t)
	logger := InitLogger(context.Background(), &configs.LogConfig{Level: "trace", Mode: "console", JSON: true}, &configs.AppConfig{Quiet: true})

	logger.Error().Msg("should not appear")
	assert.Zero(t, buf.Len())
}

func TestInitLoggerRespectsLevel(t *testing.T) {
	buf := withConsole(t)
	logger := InitLogger(context.Background(), &configs.LogConfig{Level: "warn", Mode: "console", JSON: true}, &configs.AppConfig{Name: "jdoccov"})

	logger.Info().Msg("hidden")
	logger.Warn().Str("file", "A.java").Msg("skip unreadable file")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"file":"A.java"`)
	assert.Same(t, logger, GetLogger())
}

func TestInitLoggerFileMode(t *testing.T) {
	withConsole(t)
	path := filepath.Join(t.TempDir(), "logs", "jdoccov.log")
	logger := InitLogger(context.Background(), &configs.LogConfig{Level: "info", Mode: "file", FilePath: path, MaxSize: 1}, &configs.AppConfig{})
	require.NotNil(t, logger)

	logger.Info().Msg("to file")
	assert.FileExists(t, path)
}
