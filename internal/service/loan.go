package service

import (
	"context"

	"github.com/librarium/library-admin/internal/model"
	"github.com/librarium/library-admin/pkg/kafka"
)

func (s *Service) CreateLoan(ctx context.Context, req model.CreateLoanRequest) (model.Loan, error) {
	loan, err := s.repo.CreateLoan(ctx, req)
	if err != nil {
		return model.Loan{}, err
	}
	s.publish(kafka.LoansTopic, kafka.EntityLoan, kafka.OpCreated, loan.LoanUid)
	return loan, nil
}

func (s *Service) ListLoans(ctx context.Context, search string, page, size int) (model.ListLoans, error) {
	return s.repo.ListLoans(ctx, search, page, size)
}

func (s *Service) GetLoan(ctx context.Context, loanUid string) (model.Loan, error) {
	return s.repo.GetLoan(ctx, loanUid)
}

// ChangeStatus applies the status state machine: the returned-at date is
// derived from the target status, never set directly by the caller.
func (s *Service) ChangeStatus(ctx context.Context, loanUid string, to model.LoanStatus) (model.Loan, error) {
	returnedAt, err := model.Transition(to, s.now())
	if err != nil {
		return model.Loan{}, err
	}
	loan, err := s.repo.UpdateLoanStatus(ctx, loanUid, to, returnedAt)
	if err != nil {
		return model.Loan{}, err
	}
	s.publish(kafka.LoansTopic, kafka.EntityLoan, kafka.OpUpdated, loan.LoanUid)
	return loan, nil
}

func (s *Service) DeleteLoan(ctx context.Context, loanUid string) error {
	if err := s.repo.DeleteLoan(ctx, loanUid); err != nil {
		return err
	}
	s.publish(kafka.LoansTopic, kafka.EntityLoan, kafka.OpDeleted, loanUid)
	return nil
}

func (s *Service) Notifications(ctx context.Context, date model.Date, mode model.NotificationMode) ([]model.Notification, error) {
	return s.repo.DueLoans(ctx, date, mode)
}
