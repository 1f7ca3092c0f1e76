package handler

import (
	"context"

	"github.com/librarium/library-admin/internal/model"
	"github.com/librarium/library-admin/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go -package=mocks

var (
	_ CatalogService = (*service.Service)(nil)
	_ LoanService    = (*service.Service)(nil)
	_ AuthService    = (*service.Service)(nil)
	_ ChatService    = (*service.Service)(nil)
)

type CatalogService interface {
	CreateBooks(ctx context.Context, req model.CreateBooksRequest) ([]model.Book, error)
	ListBooks(ctx context.Context, search string, page, size int) (model.ListBooks, error)
	GetBook(ctx context.Context, bookUid string) (model.Book, error)
	LookupBook(ctx context.Context, callNumber, title string) (model.Book, error)
	UpdateBook(ctx context.Context, bookUid string, req model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, bookUid string) error
	Stats(ctx context.Context) (model.Stats, error)
}

type LoanService interface {
	CreateLoan(ctx context.Context, req model.CreateLoanRequest) (model.Loan, error)
	ListLoans(ctx context.Context, search string, page, size int) (model.ListLoans, error)
	GetLoan(ctx context.Context, loanUid string) (model.Loan, error)
	ChangeStatus(ctx context.Context, loanUid string, to model.LoanStatus) (model.Loan, error)
	DeleteLoan(ctx context.Context, loanUid string) error
	Notifications(ctx context.Context, date model.Date, mode model.NotificationMode) ([]model.Notification, error)
}

type AuthService interface {
	Register(ctx context.Context, req model.UserCreateRequest) error
	Authorize(ctx context.Context, email, password string) (model.User, error)
}

type ChatService interface {
	StartChat(ctx context.Context) (model.Chat, error)
	SendMessage(ctx context.Context, chatUid string, req model.SendMessageRequest) (model.ChatMessage, error)
	Messages(ctx context.Context, chatUid string) ([]model.ChatMessage, error)
}
