package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/tictactoe/internal/config"
)

func TestInitLogger(t *testing.T) {
	ctx := context.Background()

	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"ERROR": slog.LevelError,
	}

	for name, level := range cases {
		t.Run(name, func(t *testing.T) {
			logger := initLogger(&bytes.Buffer{}, &config.Config{LogLevel: name})

			assert.True(t, logger.Enabled(ctx, level))
			assert.False(t, logger.Enabled(ctx, level-1))
		})
	}

	t.Run("Unknown level falls back to info with a warning", func(t *testing.T) {
		var out bytes.Buffer

		logger := initLogger(&out, &config.Config{LogLevel: "verbose"})

		assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
		assert.False(t, logger.Enabled(ctx, slog.LevelDebug))
		assert.Contains(t, out.String(), "unknown log level")
	})
}
