package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/librarium/library-admin/internal/model"
)

type Repository interface {
	CreateBooks(ctx context.Context, books []model.Book) ([]model.Book, error)
	ListBooks(ctx context.Context, search string, page, size int) (model.ListBooks, error)
	GetBook(ctx context.Context, bookUid string) (model.Book, error)
	GetBookByCallNumber(ctx context.Context, callNumber string) (model.Book, error)
	GetBookByTitle(ctx context.Context, title string) (model.Book, error)
	UpdateBook(ctx context.Context, bookUid string, req model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, bookUid string) error
	CountBooks(ctx context.Context) (int, error)

	CreateLoan(ctx context.Context, req model.CreateLoanRequest) (model.Loan, error)
	ListLoans(ctx context.Context, search string, page, size int) (model.ListLoans, error)
	GetLoan(ctx context.Context, loanUid string) (model.Loan, error)
	UpdateLoanStatus(ctx context.Context, loanUid string, status model.LoanStatus, returnedAt *model.Date) (model.Loan, error)
	DeleteLoan(ctx context.Context, loanUid string) error
	CountLoans(ctx context.Context) (int, error)
	DueLoans(ctx context.Context, date model.Date, mode model.NotificationMode) ([]model.Notification, error)

	CreateUser(ctx context.Context, user model.User) error
	GetUser(ctx context.Context, email string) (model.User, error)

	CreateChat(ctx context.Context) (model.Chat, error)
	CreateMessage(ctx context.Context, chatUid string, req model.SendMessageRequest) (model.ChatMessage, error)
	ListMessages(ctx context.Context, chatUid string) ([]model.ChatMessage, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	usersTableName     = `users`
	booksTableName     = `books`
	borrowersTableName = `borrowers`
	chatsTableName     = `chats`
	messagesTableName  = `chat_messages`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
