package model

import (
	"fmt"
	"strings"
	"time"
)

type LoanStatus string

const (
	StatusIssued   LoanStatus = "ISSUED"
	StatusReturned LoanStatus = "RETURNED"
	StatusOverdue  LoanStatus = "OVERDUE"
)

func (s LoanStatus) Valid() bool {
	switch s {
	case StatusIssued, StatusReturned, StatusOverdue:
		return true
	}
	return false
}

// Transition derives the returned-at date for a status change: set on
// transition to RETURNED, cleared otherwise. Any status may follow any
// other; only the date derivation is fixed.
func Transition(to LoanStatus, now time.Time) (*Date, error) {
	switch to {
	case StatusReturned:
		d := DateOf(now)
		return &d, nil
	case StatusIssued, StatusOverdue:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown loan status %q", to)
	}
}

// Loan is a borrower's checkout record. Book fields are denormalized
// copies taken at creation time; editing the source book later does not
// touch existing loans.
type Loan struct {
	ID         int        `json:"-" db:"id"`
	LoanUid    string     `json:"loanUid" db:"loan_uid"`
	MemberID   string     `json:"memberId" db:"member_id"`
	FullName   string     `json:"fullName" db:"full_name"`
	CourseYear string     `json:"courseYear" db:"course_year"`
	CallNumber string     `json:"callNumber" db:"call_number"`
	BookTitle  string     `json:"bookTitle" db:"book_title"`
	Author     string     `json:"author" db:"author"`
	Copyright  string     `json:"copyright" db:"copyright"`
	DateIssued Date       `json:"dateIssued" db:"date_issued"`
	DueDate    Date       `json:"dueDate" db:"due_date"`
	ReturnedAt *Date      `json:"returnedAt,omitempty" db:"returned_at"`
	Status     LoanStatus `json:"status" db:"status"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
}

type ListLoans struct {
	Paging `json:",inline"`
	Items  []Loan `json:"items"`
}

type CreateLoanRequest struct {
	MemberID   string `json:"memberId" validate:"required"`
	FullName   string `json:"fullName" validate:"required"`
	CourseYear string `json:"courseYear" validate:"required"`
	CallNumber string `json:"callNumber" validate:"required"`
	BookTitle  string `json:"bookTitle" validate:"required"`
	Author     string `json:"author" validate:"required"`
	Copyright  string `json:"copyright" validate:"required"`
	DateIssued Date   `json:"dateIssued" validate:"required"`
	DueDate    Date   `json:"dueDate" validate:"required"`
}

type ChangeStatusRequest struct {
	Status LoanStatus `json:"status" validate:"required"`
}

// NotificationMode selects the due-date comparison: DueToday matches
// loans due exactly on the given date, Overdue matches everything due on
// or before it that has not been returned.
type NotificationMode string

const (
	ModeDueToday NotificationMode = "dueToday"
	ModeOverdue  NotificationMode = "overdue"
)

func ParseNotificationMode(s string) (NotificationMode, error) {
	switch NotificationMode(s) {
	case "", ModeDueToday:
		return ModeDueToday, nil
	case ModeOverdue:
		return ModeOverdue, nil
	default:
		return "", fmt.Errorf("unknown notification mode %q", s)
	}
}

type Notification struct {
	LoanUid  string `json:"loanUid" db:"loan_uid"`
	FullName string `json:"fullName" db:"full_name"`
	DueDate  Date   `json:"dueDate" db:"due_date"`
}

// MatchLoan mirrors MatchBook for borrower rows: full name, call number
// or book title.
func MatchLoan(l Loan, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, field := range []string{l.FullName, l.CallNumber, l.BookTitle} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
