package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/govcongiants/encore/pkg/logging"
)

func TestContextFunctions(t *testing.T) {
	t.Run("WithChannel adds channel to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithChannel(ctx, "youtube")

		// Extract logger and verify it has the channel field
		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithStage adds stage to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithStage(ctx, "resolve")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithOperation adds operation to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithOperation(ctx, "publish_date_lookup")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithFields adds custom fields to context", func(t *testing.T) {
		ctx := context.Background()
		fields := map[string]interface{}{
			"rows":       412,
			"request_id": "abc-def",
		}
		ctx = logging.WithFields(ctx, fields)

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("FromContext returns logger from context", func(t *testing.T) {
		ctx := context.Background()

		// First call should create a new logger
		logger1 := logging.FromContext(ctx)
		assert.NotNil(t, logger1)

		// Add channel and get logger again
		ctx = logging.WithChannel(ctx, "linkedin")
		logger2 := logging.FromContext(ctx)
		assert.NotNil(t, logger2)
	})

	t.Run("Ctx extracts logger from context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithChannel(ctx, "podcast")

		logger := logging.Ctx(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("chaining context functions", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithChannel(ctx, "instagram")
		ctx = logging.WithStage(ctx, "merge")
		ctx = logging.WithOperation(ctx, "dedup")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})
}
