package service

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/librarium/library-admin/internal/errs"
	"github.com/librarium/library-admin/internal/model"
	"github.com/librarium/library-admin/pkg/kafka"
)

// bookLineRe matches one batch-entry line:
// Title, (CallNumber), (CopyrightYear), (Availability), (Location)
var bookLineRe = regexp.MustCompile(`^(.+?),\s?\((\d+)\),\s?\((\d{4})\),\s?\((\d+)\),\s?\((.+?)\)$`)

// ParseBookBatch parses a multi-line submission where every line shares
// one author. Lines that do not match the grammar are dropped; an
// all-dropped submission is rejected as a whole.
func ParseBookBatch(author, entries string) ([]model.Book, error) {
	author = strings.TrimSpace(author)
	var books []model.Book
	for _, line := range strings.Split(entries, "\n") {
		m := bookLineRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		availability, err := strconv.Atoi(strings.TrimSpace(m[4]))
		if err != nil {
			continue
		}
		books = append(books, model.Book{
			Title:        strings.TrimSpace(m[1]),
			CallNumber:   strings.TrimSpace(m[2]),
			Copyright:    strings.TrimSpace(m[3]),
			Availability: availability,
			Location:     strings.TrimSpace(m[5]),
			Author:       author,
		})
	}
	if len(books) == 0 {
		return nil, errs.ErrInvalidBatch
	}
	return books, nil
}

func (s *Service) CreateBooks(ctx context.Context, req model.CreateBooksRequest) ([]model.Book, error) {
	books, err := ParseBookBatch(req.Author, req.Entries)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateBooks(ctx, books)
	if err != nil {
		return nil, err
	}
	for _, book := range created {
		s.publish(kafka.BooksTopic, kafka.EntityBook, kafka.OpCreated, book.BookUid)
	}
	return created, nil
}

func (s *Service) ListBooks(ctx context.Context, search string, page, size int) (model.ListBooks, error) {
	return s.repo.ListBooks(ctx, search, page, size)
}

func (s *Service) GetBook(ctx context.Context, bookUid string) (model.Book, error) {
	return s.repo.GetBook(ctx, bookUid)
}

// LookupBook backs the add-borrower assist: exactly one of callNumber
// or title is expected.
func (s *Service) LookupBook(ctx context.Context, callNumber, title string) (model.Book, error) {
	if callNumber != "" {
		return s.repo.GetBookByCallNumber(ctx, strings.TrimSpace(callNumber))
	}
	return s.repo.GetBookByTitle(ctx, strings.TrimSpace(title))
}

func (s *Service) UpdateBook(ctx context.Context, bookUid string, req model.UpdateBookRequest) (model.Book, error) {
	book, err := s.repo.UpdateBook(ctx, bookUid, req)
	if err != nil {
		return model.Book{}, err
	}
	s.publish(kafka.BooksTopic, kafka.EntityBook, kafka.OpUpdated, book.BookUid)
	return book, nil
}

func (s *Service) DeleteBook(ctx context.Context, bookUid string) error {
	if err := s.repo.DeleteBook(ctx, bookUid); err != nil {
		return err
	}
	s.publish(kafka.BooksTopic, kafka.EntityBook, kafka.OpDeleted, bookUid)
	return nil
}

// Stats aggregates the dashboard counters concurrently.
func (s *Service) Stats(ctx context.Context) (model.Stats, error) {
	var stats model.Stats
	gg, ctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		n, err := s.repo.CountBooks(ctx)
		stats.Books = n
		return err
	})
	gg.Go(func() error {
		n, err := s.repo.CountLoans(ctx)
		stats.Loans = n
		return err
	})
	gg.Go(func() error {
		due, err := s.repo.DueLoans(ctx, model.DateOf(s.now()), model.ModeDueToday)
		stats.DueToday = len(due)
		return err
	})
	if err := gg.Wait(); err != nil {
		return model.Stats{}, err
	}
	return stats, nil
}
