package helpers

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_LevelByEnv(t *testing.T) {
	dev := NewLogger("app", "development", "")
	assert.Equal(t, logrus.DebugLevel, dev.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, dev.Formatter)

	prod := NewLogger("app", "production", "")
	assert.Equal(t, logrus.InfoLevel, prod.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, prod.Formatter)
}

func TestNewLogger_LevelOverride(t *testing.T) {
	assert.Equal(t, logrus.WarnLevel, NewLogger("app", "production", "warn").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("app", "production", "loud").GetLevel())
}

func TestLogError_AttachesError(t *testing.T) {
	logger, hook := test.NewNullLogger()

	LogError(logger, "boom", errors.New("db down"), logrus.Fields{"user_id": "u1"})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "u1", entry.Data["user_id"])
	assert.EqualError(t, entry.Data[logrus.ErrorKey].(error), "db down")
}

func TestLogInfo_NilFields(t *testing.T) {
	logger, hook := test.NewNullLogger()

	LogInfo(logger, "hello", nil)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "hello", hook.LastEntry().Message)
}
