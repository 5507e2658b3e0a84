package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerFormatsAndTagsComponent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core), "matcher")

	l.Info("ranked %d recipes", 3)
	l.With("chat_id", int64(42)).Warn("pantry is %s", "empty")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "ranked 3 recipes", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "matcher", entries[0].ContextMap()["component"])

	assert.Equal(t, "pantry is empty", entries[1].Message)
	assert.Equal(t, int64(42), entries[1].ContextMap()["chat_id"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"DEBUG", zapcore.DebugLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Setup("verbose", "console"))
	assert.NoError(t, Setup("debug", "json"))
	assert.NotNil(t, Global)
}
