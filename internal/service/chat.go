package service

import (
	"context"

	"github.com/librarium/library-admin/internal/model"
	"github.com/librarium/library-admin/pkg/kafka"
)

func (s *Service) StartChat(ctx context.Context) (model.Chat, error) {
	return s.repo.CreateChat(ctx)
}

func (s *Service) SendMessage(ctx context.Context, chatUid string, req model.SendMessageRequest) (model.ChatMessage, error) {
	msg, err := s.repo.CreateMessage(ctx, chatUid, req)
	if err != nil {
		return model.ChatMessage{}, err
	}
	s.publish(kafka.ChatsTopic, kafka.EntityChat, kafka.OpCreated, chatUid)
	return msg, nil
}

func (s *Service) Messages(ctx context.Context, chatUid string) ([]model.ChatMessage, error) {
	return s.repo.ListMessages(ctx, chatUid)
}
