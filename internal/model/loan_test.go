package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/librarium/library-admin/internal/model"
)

func TestTransition(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 8, 15, 4, 5, 0, time.UTC)

	t.Run("returned sets the date", func(t *testing.T) {
		t.Parallel()
		got, err := model.Transition(model.StatusReturned, now)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, "2024-01-08", got.String())
	})

	t.Run("issued clears the date", func(t *testing.T) {
		t.Parallel()
		got, err := model.Transition(model.StatusIssued, now)
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("overdue clears the date", func(t *testing.T) {
		t.Parallel()
		got, err := model.Transition(model.StatusOverdue, now)
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("unknown status", func(t *testing.T) {
		t.Parallel()
		_, err := model.Transition("LOST", now)
		require.Error(t, err)
	})
}

func TestParseNotificationMode(t *testing.T) {
	t.Parallel()
	var tests = []struct {
		in      string
		want    model.NotificationMode
		wantErr bool
	}{
		{in: "", want: model.ModeDueToday},
		{in: "dueToday", want: model.ModeDueToday},
		{in: "overdue", want: model.ModeOverdue},
		{in: "bogus", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := model.ParseNotificationMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestMatchBook(t *testing.T) {
	t.Parallel()
	book := model.Book{
		Title:      "Principles of Taxation",
		Author:     "Jane Cruz",
		CallNumber: "123",
		Location:   "Shelf A",
	}

	var tests = []struct {
		name string
		term string
		want bool
	}{
		{name: "empty term matches", term: "", want: true},
		{name: "title substring", term: "taxation", want: true},
		{name: "author substring", term: "CRUZ", want: true},
		{name: "call number", term: "123", want: true},
		{name: "location", term: "shelf", want: true},
		{name: "no match", term: "chemistry", want: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, model.MatchBook(book, tt.term))
		})
	}
}

func TestMatchLoan(t *testing.T) {
	t.Parallel()
	loan := model.Loan{
		FullName:   "Maria Santos",
		CallNumber: "123",
		BookTitle:  "Principles of Taxation",
		Author:     "Jane Cruz",
	}

	require.True(t, model.MatchLoan(loan, "santos"))
	require.True(t, model.MatchLoan(loan, "taxation"))
	require.True(t, model.MatchLoan(loan, "123"))
	require.False(t, model.MatchLoan(loan, "cruz")) // author is not searched
}
