package errs

import (
	"errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateBook      = errors.New("book with this title and call number already exists")
	ErrInvalidBatch       = errors.New("no valid book entries in submission")
	ErrConflict           = errors.New("already exists")
	ErrConfirmRequired    = errors.New("confirmation required")
	ErrInvalidCredentials = errors.New("Invalid credentials")
)

type ValidationErrorResponse struct {
	Message string `json:"message"`
	Errors  struct {
		AdditionalProperties string `json:"additionalProperties"`
	} `json:"errors"`
}

func NewValidationErrorResponse(err error) ValidationErrorResponse {
	var resp ValidationErrorResponse
	resp.Message = "invalid request"
	resp.Errors.AdditionalProperties = err.Error()
	return resp
}
