package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"lintang/cityroute/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("json handler respects level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := logger.New("warn", "json", buf)
		l.Info("hidden")
		l.Warn("shown", "city", "Lyon")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "shown", rec["msg"])
		assert.Equal(t, "Lyon", rec["city"])
	})

	t.Run("parse level", func(t *testing.T) {
		assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
		assert.Equal(t, slog.LevelInfo, logger.ParseLevel("whatever"))
		assert.Equal(t, slog.LevelError, logger.ParseLevel("error"))
	})

	t.Run("discard", func(t *testing.T) {
		assert.False(t, logger.Discard().Enabled(context.Background(), slog.LevelError))
	})
}
