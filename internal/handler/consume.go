package handler

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/librarium/library-admin/pkg/kafka"
)

type changeEvent func(ctx context.Context, ev kafka.ChangeEvent) error

// Consumer bridges the broker into the process: every consumed change
// event is handed to the fan-out callback feeding the watch hub.
type Consumer struct {
	changeEventHandler changeEvent
	log                *zap.Logger
}

func NewConsumer(changeEvent changeEvent, log *zap.Logger) *Consumer {
	return &Consumer{
		changeEventHandler: changeEvent,
		log:                log.Named("consumer"),
	}
}

// Setup runs at the start of every consumer-group session, so it must
// stay safe to call again after a rebalance.
func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	consumer.log.Debug("consumer session setup")
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited.
func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var ev kafka.ChangeEvent
			if err := json.Unmarshal(message.Value, &ev); err != nil {
				consumer.log.Error("", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			if err := consumer.changeEventHandler(context.Background(), ev); err != nil {
				consumer.log.Error("consumer.changeEventHandler", zap.Error(err))
				continue
			}

			consumer.log.Debug("Message claimed:", zap.String("value", string(message.Value)), zap.Time("timestamp", message.Timestamp), zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
