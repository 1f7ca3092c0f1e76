package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/librarium/library-admin/internal/repository"
)

func newMockRepo(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, repository.Repository) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sdb := sqlx.NewDb(db, "sqlmock")
	repo, err := repository.NewRepository(sdb, zap.NewExample().Named("test"))
	require.NoError(t, err)
	return sdb, mock, repo
}

var bookRowColumns = []string{
	"id", "book_uid", "title", "author", "call_number", "copyright",
	"availability", "location", "cover_url", "created_at",
}

// TotalElements must report the filtered match count, not the page length.
func TestRepository_ListBooks_TotalElements(t *testing.T) {
	t.Parallel()
	_, mock, repo := newMockRepo(t)

	rows := sqlmock.NewRows(bookRowColumns).
		AddRow(1, "b-1", "Principles of Taxation", "Jane Cruz", "123", "2024", 5, "Shelf A", "", time.Now()).
		AddRow(2, "b-2", "Taxation II", "Jane Cruz", "124", "2023", 2, "Shelf A", "", time.Now())
	mock.ExpectQuery(`^SELECT id, book_uid, .+ FROM books WHERE .+ LIMIT 2 OFFSET 0$`).
		WithArgs("%tax%", "%tax%", "%tax%", "%tax%").
		WillReturnRows(rows)
	mock.ExpectQuery(`^SELECT count\(\*\) FROM books WHERE`).
		WithArgs("%tax%", "%tax%", "%tax%", "%tax%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	got, err := repo.ListBooks(context.Background(), "tax", 1, 2)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	require.Equal(t, 42, got.TotalElements)
	require.Equal(t, 1, got.Page)
	require.Equal(t, 2, got.PageSize)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListLoans_TotalElements(t *testing.T) {
	t.Parallel()
	_, mock, repo := newMockRepo(t)

	rows := sqlmock.NewRows([]string{
		"id", "loan_uid", "member_id", "full_name", "course_year", "call_number",
		"book_title", "author", "copyright", "date_issued", "due_date",
		"returned_at", "status", "created_at",
	}).AddRow(
		1, "l-1", "2021-00123", "Maria Santos", "BSA-3", "123",
		"Principles of Taxation", "Jane Cruz", "2024",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		nil, "ISSUED", time.Now(),
	)
	mock.ExpectQuery(`^SELECT id, loan_uid, .+ FROM borrowers WHERE .+ LIMIT 1 OFFSET 0$`).
		WithArgs("%santos%", "%santos%", "%santos%").
		WillReturnRows(rows)
	mock.ExpectQuery(`^SELECT count\(\*\) FROM borrowers WHERE`).
		WithArgs("%santos%", "%santos%", "%santos%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	got, err := repo.ListLoans(context.Background(), "santos", 1, 1)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, 7, got.TotalElements)
	require.NoError(t, mock.ExpectationsWereMet())
}
