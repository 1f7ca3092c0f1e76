package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/librarium/library-admin/internal/errs"
	"github.com/librarium/library-admin/internal/model"
)

const bookColumns = `id, book_uid, title, author, call_number, copyright, availability, location, cover_url, created_at`

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// CreateBooks inserts a parsed batch in one transaction. The
// (title, call_number) uniqueness lives in the schema, so a duplicate
// anywhere in the batch rolls the whole submission back.
func (r *repository) CreateBooks(ctx context.Context, books []model.Book) ([]model.Book, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	created := make([]model.Book, 0, len(books))
	for _, book := range books {
		query, args, err := qb.Insert(booksTableName).
			Columns("book_uid", "title", "author", "call_number", "copyright", "availability", "location", "cover_url").
			Values(uuid.New(), book.Title, book.Author, book.CallNumber, book.Copyright, book.Availability, book.Location, book.CoverURL).
			Suffix("returning " + bookColumns).
			ToSql()
		if err != nil {
			return nil, err
		}
		var res model.Book
		if err := tx.GetContext(ctx, &res, query, args...); err != nil {
			if isUniqueViolation(err) {
				return nil, errs.ErrDuplicateBook
			}
			r.log.Error("CreateBooks", zap.String("q", query), zap.Any("args", args))
			return nil, err
		}
		created = append(created, res)
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	return created, nil
}

func (r *repository) ListBooks(ctx context.Context, search string, page, size int) (model.ListBooks, error) {
	var filter sq.Sqlizer
	if search != "" {
		pat := "%" + search + "%"
		filter = sq.Or{
			sq.ILike{"title": pat},
			sq.ILike{"author": pat},
			sq.ILike{"call_number": pat},
			sq.ILike{"location": pat},
		}
	}

	q := qb.Select(bookColumns).
		From(booksTableName).
		OrderBy("created_at desc")
	countQ := qb.Select("count(*)").From(booksTableName)
	if filter != nil {
		q = q.Where(filter)
		countQ = countQ.Where(filter)
	}
	if page != 0 && size != 0 {
		q = q.Limit(uint64(size)).Offset(uint64((page - 1) * size))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.ListBooks{}, err
	}
	r.log.Debug("ListBooks", zap.String("query", query), zap.Any("args", args))

	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return model.ListBooks{}, err
	}

	// total is counted over the filter, not the page
	countQuery, countArgs, err := countQ.ToSql()
	if err != nil {
		return model.ListBooks{}, err
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return model.ListBooks{}, err
	}

	return model.ListBooks{
		Paging: model.Paging{
			Page:          page,
			PageSize:      size,
			TotalElements: total,
		},
		Items: books,
	}, nil
}

func (r *repository) GetBook(ctx context.Context, bookUid string) (model.Book, error) {
	return r.getBookWhere(ctx, sq.Eq{"book_uid": bookUid})
}

func (r *repository) GetBookByCallNumber(ctx context.Context, callNumber string) (model.Book, error) {
	return r.getBookWhere(ctx, sq.Eq{"call_number": callNumber})
}

func (r *repository) GetBookByTitle(ctx context.Context, title string) (model.Book, error) {
	return r.getBookWhere(ctx, sq.Eq{"title": title})
}

func (r *repository) getBookWhere(ctx context.Context, pred sq.Eq) (model.Book, error) {
	query, args, err := qb.Select(bookColumns).
		From(booksTableName).
		Where(pred).
		OrderBy("created_at").
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) UpdateBook(ctx context.Context, bookUid string, req model.UpdateBookRequest) (model.Book, error) {
	query, args, err := qb.Update(booksTableName).
		Set("title", req.Title).
		Set("author", req.Author).
		Set("call_number", req.CallNumber).
		Set("copyright", req.Copyright).
		Set("availability", req.Availability).
		Set("location", req.Location).
		Set("cover_url", req.CoverURL).
		Where(sq.Eq{"book_uid": bookUid}).
		Suffix("returning " + bookColumns).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		if isUniqueViolation(err) {
			return model.Book{}, errs.ErrDuplicateBook
		}
		r.log.Error("UpdateBook", zap.String("q", query), zap.Any("args", args))
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) DeleteBook(ctx context.Context, bookUid string) error {
	query, args, err := qb.Delete(booksTableName).
		Where(sq.Eq{"book_uid": bookUid}).
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

func (r *repository) CountBooks(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `select count(*) from `+booksTableName).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
