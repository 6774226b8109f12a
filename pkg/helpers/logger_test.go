package helpers

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogError_AddsErrorField(t *testing.T) {
	logger, hook := test.NewNullLogger()

	LogError(logger, "create user failed", errors.New("boom"), logrus.Fields{"user_id": int64(7)})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "create user failed", entry.Message)
	assert.Equal(t, "boom", entry.Data["error"])
	assert.Equal(t, int64(7), entry.Data["user_id"])
}

func TestLogInfo_NilFields(t *testing.T) {
	logger, hook := test.NewNullLogger()

	LogInfo(logger, "user registered", nil)

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
}

func TestOrDiscard(t *testing.T) {
	assert.NotNil(t, OrDiscard(nil))

	logger, _ := test.NewNullLogger()
	assert.Same(t, logger, OrDiscard(logger))
}
