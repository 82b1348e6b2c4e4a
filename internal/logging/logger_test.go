package logging

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"info":    zapcore.InfoLevel,
		"DEBUG":   zapcore.DebugLevel,
		" warn ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewFallsBackOnZeroLogger(t *testing.T) {
	l := New(logr.Logger{})
	assert.NotNil(t, l.Logr().GetSink())

	discard := New(logr.Discard())
	discard.WithName("x").WithValues("k", "v").Debug("ignored")
}

func TestNewZapDebugEnablesV1(t *testing.T) {
	z, err := NewZap("debug")
	require.NoError(t, err)
	l := New(zaprLogger(z))
	assert.True(t, l.Logr().V(1).Enabled())

	z, err = NewZap("info")
	require.NoError(t, err)
	l = New(zaprLogger(z))
	assert.False(t, l.Logr().V(1).Enabled())
}
