package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/librarium/library-admin/internal/errs"
	"github.com/librarium/library-admin/internal/model"
)

const loanColumns = `id, loan_uid, member_id, full_name, course_year, call_number, book_title, author, copyright, date_issued, due_date, returned_at, status, created_at`

func (r *repository) CreateLoan(ctx context.Context, req model.CreateLoanRequest) (model.Loan, error) {
	query, args, err := qb.Insert(borrowersTableName).
		Columns("loan_uid", "member_id", "full_name", "course_year", "call_number", "book_title", "author", "copyright", "date_issued", "due_date", "status").
		Values(uuid.New(), req.MemberID, req.FullName, req.CourseYear, req.CallNumber, req.BookTitle, req.Author, req.Copyright, req.DateIssued, req.DueDate, model.StatusIssued).
		Suffix("returning " + loanColumns).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}

	var loan model.Loan
	if err := r.db.GetContext(ctx, &loan, query, args...); err != nil {
		r.log.Error("CreateLoan", zap.String("q", query), zap.Any("args", args))
		return model.Loan{}, err
	}
	return loan, nil
}

func (r *repository) ListLoans(ctx context.Context, search string, page, size int) (model.ListLoans, error) {
	var filter sq.Sqlizer
	if search != "" {
		pat := "%" + search + "%"
		filter = sq.Or{
			sq.ILike{"full_name": pat},
			sq.ILike{"call_number": pat},
			sq.ILike{"book_title": pat},
		}
	}

	q := qb.Select(loanColumns).
		From(borrowersTableName).
		OrderBy("date_issued desc", "id desc")
	countQ := qb.Select("count(*)").From(borrowersTableName)
	if filter != nil {
		q = q.Where(filter)
		countQ = countQ.Where(filter)
	}
	if page != 0 && size != 0 {
		q = q.Limit(uint64(size)).Offset(uint64((page - 1) * size))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.ListLoans{}, err
	}

	var loans []model.Loan
	if err := r.db.SelectContext(ctx, &loans, query, args...); err != nil {
		return model.ListLoans{}, err
	}

	countQuery, countArgs, err := countQ.ToSql()
	if err != nil {
		return model.ListLoans{}, err
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return model.ListLoans{}, err
	}

	return model.ListLoans{
		Paging: model.Paging{
			Page:          page,
			PageSize:      size,
			TotalElements: total,
		},
		Items: loans,
	}, nil
}

func (r *repository) GetLoan(ctx context.Context, loanUid string) (model.Loan, error) {
	query, args, err := qb.Select(loanColumns).
		From(borrowersTableName).
		Where(sq.Eq{"loan_uid": loanUid}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}

	var loan model.Loan
	if err := r.db.GetContext(ctx, &loan, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.ErrNotFound
		}
		return model.Loan{}, err
	}
	return loan, nil
}

// UpdateLoanStatus writes status and returned_at together so the pair
// can never drift apart.
func (r *repository) UpdateLoanStatus(ctx context.Context, loanUid string, status model.LoanStatus, returnedAt *model.Date) (model.Loan, error) {
	q := qb.Update(borrowersTableName).
		Set("status", status).
		Where(sq.Eq{"loan_uid": loanUid}).
		Suffix("returning " + loanColumns)
	if returnedAt != nil {
		q = q.Set("returned_at", *returnedAt)
	} else {
		q = q.Set("returned_at", nil)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.Loan{}, err
	}

	var loan model.Loan
	if err := r.db.GetContext(ctx, &loan, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.ErrNotFound
		}
		r.log.Error("UpdateLoanStatus", zap.String("q", query), zap.Any("args", args))
		return model.Loan{}, err
	}
	return loan, nil
}

func (r *repository) DeleteLoan(ctx context.Context, loanUid string) error {
	query, args, err := qb.Delete(borrowersTableName).
		Where(sq.Eq{"loan_uid": loanUid}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) CountLoans(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `select count(*) from `+borrowersTableName).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) DueLoans(ctx context.Context, date model.Date, mode model.NotificationMode) ([]model.Notification, error) {
	q := qb.Select("loan_uid", "full_name", "due_date").
		From(borrowersTableName).
		OrderBy("due_date", "id")

	switch mode {
	case model.ModeOverdue:
		q = q.Where(sq.LtOrEq{"due_date": date}).
			Where(sq.NotEq{"status": model.StatusReturned})
	default:
		q = q.Where(sq.Eq{"due_date": date})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var due []model.Notification
	if err := r.db.SelectContext(ctx, &due, query, args...); err != nil {
		return nil, err
	}
	return due, nil
}
