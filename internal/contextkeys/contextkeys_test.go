package contextkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextWithRequest(t *testing.T) {
	ctx := ContextWithRequest(context.Background(), discardLogger{}, "trace-1")

	assert.Equal(t, "trace-1", TraceIDFromContext(ctx))
	assert.NotNil(t, LoggerFromContext(ctx))
}

func TestFromEmptyContext(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, TraceIDFromContext(ctx))
	logger := LoggerFromContext(ctx)
	assert.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.WithFields(nil).Error("msg", nil, nil) })
}
