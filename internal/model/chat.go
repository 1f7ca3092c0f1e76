package model

import "time"

// Chat is an ephemeral guest conversation; the guest identifier is
// generated server-side per chat and not reused across sessions.
type Chat struct {
	ID        int       `json:"-" db:"id"`
	ChatUid   string    `json:"chatUid" db:"chat_uid"`
	Guest     string    `json:"guest" db:"guest"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type ChatMessage struct {
	ID      int       `json:"-" db:"id"`
	ChatUid string    `json:"chatUid" db:"chat_uid"`
	Sender  string    `json:"sender" db:"sender"`
	Text    string    `json:"text" db:"text"`
	SentAt  time.Time `json:"sentAt" db:"sent_at"`
}

type SendMessageRequest struct {
	Sender string `json:"sender" validate:"required"`
	Text   string `json:"text" validate:"required"`
}
