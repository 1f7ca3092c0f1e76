package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/librarium/library-admin/config"
	"github.com/librarium/library-admin/internal/handler"
	"github.com/librarium/library-admin/internal/repository"
	"github.com/librarium/library-admin/internal/server"
	"github.com/librarium/library-admin/internal/service"
	"github.com/librarium/library-admin/migrations"
	"github.com/librarium/library-admin/pkg/auth"
	"github.com/librarium/library-admin/pkg/kafka"
	"github.com/librarium/library-admin/pkg/logger"
	"github.com/librarium/library-admin/pkg/postgres"
	"github.com/librarium/library-admin/pkg/watch"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "library-admin")
	auth.SetJWTKey(cfg.JWT.Secret)

	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		log.Fatal("kafka.NewProducer", zap.Error(err))
	}
	svc := service.NewService(repo, kafka.NewPublisher(producer), log)

	hub := watch.NewHub()
	consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.AdminConsumerGroup)
	if err != nil {
		log.Fatal("kafka.NewConsumer", zap.Error(err))
	}
	go kafka.Consume(consumer, handler.NewConsumer(fanout(hub), log), log,
		kafka.BooksTopic, kafka.LoansTopic, kafka.ChatsTopic)

	h := handler.New(svc, svc, svc, svc, hub, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if err := consumer.Close(); err != nil {
		log.Error("consumer close", zap.Error(err))
	}
	if err := producer.Close(); err != nil {
		log.Error("producer close", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}

// fanout republishes consumed change events into the in-process hub
// keyed by entity, which drives the SSE watch endpoints.
func fanout(hub *watch.Hub) func(ctx context.Context, ev kafka.ChangeEvent) error {
	topics := map[string]string{
		kafka.EntityBook: watch.TopicBooks,
		kafka.EntityLoan: watch.TopicLoans,
		kafka.EntityChat: watch.TopicChats,
	}
	return func(_ context.Context, ev kafka.ChangeEvent) error {
		topic, ok := topics[ev.Entity]
		if !ok {
			return nil
		}
		hub.Publish(topic, watch.Event{
			Entity: ev.Entity,
			Op:     ev.Op,
			Uid:    ev.Uid,
			At:     ev.At,
		})
		return nil
	}
}
