package handler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/librarium/library-admin/internal/handler"
	"github.com/librarium/library-admin/pkg/kafka"
)

func TestConsumer_SetupAcrossSessions(t *testing.T) {
	t.Parallel()
	consumer := handler.NewConsumer(
		func(ctx context.Context, ev kafka.ChangeEvent) error { return nil },
		zap.NewExample().Named("test"),
	)

	// sarama runs Setup at the start of every session: the first
	// rebalance calls it a second time on the same handler
	require.NotPanics(t, func() {
		require.NoError(t, consumer.Setup(nil))
		require.NoError(t, consumer.Setup(nil))
	})
	require.NoError(t, consumer.Cleanup(nil))
}
