package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/librarium/library-admin/internal/errs"
	"github.com/librarium/library-admin/internal/model"
)

func (r *repository) CreateChat(ctx context.Context) (model.Chat, error) {
	guest := fmt.Sprintf("guest-%s", uuid.New())
	query, args, err := qb.Insert(chatsTableName).
		Columns("chat_uid", "guest").
		Values(uuid.New(), guest).
		Suffix("returning id, chat_uid, guest, created_at").
		ToSql()
	if err != nil {
		return model.Chat{}, err
	}

	var chat model.Chat
	if err := r.db.GetContext(ctx, &chat, query, args...); err != nil {
		return model.Chat{}, err
	}
	return chat, nil
}

func (r *repository) CreateMessage(ctx context.Context, chatUid string, req model.SendMessageRequest) (model.ChatMessage, error) {
	query, args, err := qb.Insert(messagesTableName).
		Columns("chat_uid", "sender", "text").
		Values(chatUid, req.Sender, req.Text).
		Suffix("returning id, chat_uid, sender, text, sent_at").
		ToSql()
	if err != nil {
		return model.ChatMessage{}, err
	}

	var msg model.ChatMessage
	if err := r.db.GetContext(ctx, &msg, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return model.ChatMessage{}, errs.ErrNotFound
		}
		return model.ChatMessage{}, err
	}
	return msg, nil
}

func (r *repository) ListMessages(ctx context.Context, chatUid string) ([]model.ChatMessage, error) {
	query, args, err := qb.Select("id", "chat_uid", "sender", "text", "sent_at").
		From(messagesTableName).
		Where(sq.Eq{"chat_uid": chatUid}).
		OrderBy("sent_at", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var msgs []model.ChatMessage
	if err := r.db.SelectContext(ctx, &msgs, query, args...); err != nil {
		return nil, err
	}
	return msgs, nil
}
