package cmd

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "logtidy", configBaseName)
	assert.Equal(t, "logtidy.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "scheme", schemeFlagName)
	assert.Equal(t, "mapping", mappingFlagName)
	assert.Equal(t, "paths.extensions", extensionsConfigKey)
	assert.Equal(t, "build.command", buildCommandConfigKey)
	assert.Equal(t, "eventid-mappings.txt", defaultMappingFile)
	assert.Equal(t, "dotnet build", defaultBuildCommand)
	assert.Equal(t, "CLEANUP_ANALYSIS.md", defaultCleanupReport)
	assert.Equal(t, "cleanup.sh", defaultCleanupScript)
	assert.Equal(t, "LOGTIDY", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{"empty uses default", "", slog.LevelWarn},
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"warning alias", "warning", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"mixed case", "DeBuG", slog.LevelDebug},
		{"padded", "  info  ", slog.LevelInfo},
		{"numeric", "-4", slog.LevelDebug},
		{"numeric positive", "8", slog.LevelError},
		{"garbage uses default", "loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseSlogLevel(tt.input, slog.LevelWarn))
		})
	}
}
