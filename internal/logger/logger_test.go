package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/portfolio-site/backend/internal/logger"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "warn", "json")

	log.Info().Msg("dropped")
	require.Zero(t, buf.Len())

	log.Warn().Str("exam_id", "e1").Msg("kept")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "kept", entry["message"])
	require.Equal(t, "e1", entry["exam_id"])
	require.Equal(t, "portfolio-backend", entry["service"])
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "loud", "json")

	log.Debug().Msg("dropped")
	require.Zero(t, buf.Len())
	log.Info().Msg("kept")
	require.NotZero(t, buf.Len())
}
