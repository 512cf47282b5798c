package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGormLoggerWritesThroughZap(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	gl := newGormLogger(zap.New(core), "debug")

	gl.Info(context.Background(), "migrated %s", "welds")
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "gorm", entry.LoggerName)
	assert.Contains(t, entry.Message, "migrated welds")

	quiet := newGormLogger(zap.New(core), "info")
	quiet.Info(context.Background(), "hidden")
	quiet.Warn(context.Background(), "slow %d", 1)
	assert.Equal(t, 2, logs.Len())
	assert.Contains(t, logs.All()[1].Message, "slow 1")
}
