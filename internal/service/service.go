package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/librarium/library-admin/internal/repository"
	"github.com/librarium/library-admin/pkg/kafka"
)

type Service struct {
	log  *zap.Logger
	repo repository.Repository
	pub  kafka.Publisher
	now  func() time.Time
}

func NewService(repo repository.Repository, pub kafka.Publisher, log *zap.Logger) *Service {
	return &Service{
		log:  log,
		repo: repo,
		pub:  pub,
		now:  time.Now,
	}
}

// publish is fire-and-forget: a lost event only delays watchers until
// the next change, it never fails the mutation that produced it.
func (s *Service) publish(topic, entity, op, uid string) {
	if s.pub == nil {
		return
	}
	ev := kafka.ChangeEvent{
		Entity: entity,
		Op:     op,
		Uid:    uid,
		At:     time.Now().UTC(),
	}
	if err := s.pub.Publish(topic, ev); err != nil {
		s.log.Warn("publish change event", zap.String("topic", topic), zap.Error(err))
	}
}
