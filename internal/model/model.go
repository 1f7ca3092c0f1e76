package model

import (
	"strings"
	"time"
)

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
}

type Book struct {
	ID           int       `json:"-" db:"id"`
	BookUid      string    `json:"bookUid" db:"book_uid"`
	Title        string    `json:"title" db:"title"`
	Author       string    `json:"author" db:"author"`
	CallNumber   string    `json:"callNumber" db:"call_number"`
	Copyright    string    `json:"copyright" db:"copyright"`
	Availability int       `json:"availability" db:"availability"`
	Location     string    `json:"location" db:"location"`
	CoverURL     string    `json:"coverUrl,omitempty" db:"cover_url"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type ListBooks struct {
	Paging `json:",inline"`
	Items  []Book `json:"items"`
}

// CreateBooksRequest is a batch submission: many titles, one author.
// Entries holds one book per line in the form
// `Title, (CallNumber), (CopyrightYear), (Availability), (Location)`.
type CreateBooksRequest struct {
	Author  string `json:"author" validate:"required"`
	Entries string `json:"entries" validate:"required"`
}

type UpdateBookRequest struct {
	Title        string `json:"title" validate:"required"`
	Author       string `json:"author" validate:"required"`
	CallNumber   string `json:"callNumber" validate:"required"`
	Copyright    string `json:"copyright"`
	Availability int    `json:"availability" validate:"gte=0"`
	Location     string `json:"location"`
	CoverURL     string `json:"coverUrl"`
}

// MatchBook reports whether the book matches a case-insensitive substring
// query against title, author, call number or location.
func MatchBook(b Book, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, field := range []string{b.Title, b.Author, b.CallNumber, b.Location} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

type Stats struct {
	Books    int `json:"books"`
	Loans    int `json:"loans"`
	DueToday int `json:"dueToday"`
}
