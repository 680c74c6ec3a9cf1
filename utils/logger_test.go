package utils

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, logrus.InfoLevel, NewLogger(false).GetLevel())
	assert.Equal(t, logrus.DebugLevel, NewLogger(true).GetLevel())

	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, logrus.WarnLevel, NewLogger(true).GetLevel())

	t.Setenv("LOG_LEVEL", "loud")
	assert.Equal(t, logrus.DebugLevel, NewLogger(true).GetLevel())
}
