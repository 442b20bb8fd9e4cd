package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestZapWrapper_FieldsAndChildren(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "predict-career-paths"})

	log.Info("prediction complete", map[string]interface{}{"userId": "42", "topScore": 87})
	log.WithError(errors.New("boom")).Error("archive failed", nil)

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "predict-career-paths", first["taskType"])
	assert.Equal(t, "42", first["userId"])
	assert.EqualValues(t, 87, first["topScore"])

	assert.Equal(t, "archive failed", entries[1].Message)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestToZapFields_Ordered(t *testing.T) {
	fields := toZapFields(map[string]interface{}{"b": 1, "a": 2, "err": errors.New("x")})
	require.Len(t, fields, 3)
	assert.Equal(t, "a", fields[0].Key)
	assert.Equal(t, "b", fields[1].Key)
	assert.Equal(t, "err", fields[2].Key)
	assert.Nil(t, toZapFields(nil))
}

func TestNoOpAndTestLoggers(t *testing.T) {
	NewNoOpLogger().Info("ignored", map[string]interface{}{"k": "v"})
	NewTestLogger(t).With(map[string]interface{}{"component": "test"}).Debug("visible in -v", nil)
	assert.NotNil(t, New("info", "json"))
	assert.NotNil(t, NewStructured("debug", "console"))
}
