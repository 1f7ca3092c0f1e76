package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type Config struct {
	Addrs []string `yaml:"addrs" envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
}

const (
	BooksTopic = "library-admin.books"
	LoansTopic = "library-admin.borrowers"
	ChatsTopic = "library-admin.chats"

	AdminConsumerGroup = "library-admin"
)

// ChangeEvent is published after every successful mutation and drives
// the watch hub fan-out on the consuming side.
type ChangeEvent struct {
	Entity string    `json:"entity"`
	Op     string    `json:"op"`
	Uid    string    `json:"uid"`
	At     time.Time `json:"at"`
}

const (
	EntityBook = "book"
	EntityLoan = "loan"
	EntityChat = "chat"

	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
)

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumer(cfg Config, group string) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()
	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetNewest

	return sarama.NewConsumerGroup(cfg.Addrs, group, defaultCfg)
}

// Consume runs the consumer-group session loop until the group is closed.
func Consume(cg sarama.ConsumerGroup, h sarama.ConsumerGroupHandler, log *zap.Logger, topics ...string) {
	ctx := context.Background()
	for {
		if err := cg.Consume(ctx, topics, h); err != nil {
			if err == sarama.ErrClosedConsumerGroup {
				return
			}
			log.Error("kafka consume", zap.Error(err))
		}
	}
}

type Publisher interface {
	Publish(topic string, v any) error
}

func NewPublisher(producer sarama.SyncProducer) Publisher {
	return &publisherImpl{producer: producer}
}

type publisherImpl struct {
	producer sarama.SyncProducer
}

func (p *publisherImpl) Publish(topic string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{Topic: topic, Value: sarama.StringEncoder(data)}
	if _, _, err = p.producer.SendMessage(msg); err != nil {
		return err
	}
	return nil
}
