package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/librarium/library-admin/internal/errs"
	"github.com/librarium/library-admin/internal/handler"
	"github.com/librarium/library-admin/internal/model"
	"github.com/librarium/library-admin/pkg/validate"
	"github.com/librarium/library-admin/pkg/watch"

	service_mocks "github.com/librarium/library-admin/internal/handler/mocks"
)

func newLoanHandler(t *testing.T) (*handler.Handler, *service_mocks.MockLoanService) {
	t.Helper()
	c := gomock.NewController(t)
	t.Cleanup(c.Finish)
	svc := service_mocks.NewMockLoanService(c)
	log := zap.NewExample().Named("test")
	return handler.New(nil, svc, nil, nil, watch.NewHub(), log), svc
}

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestHandler_ChangeStatus(t *testing.T) {
	t.Parallel()
	const loanUid = "5e6fa6cd-6a67-4f0f-9a4f-2a0d4c7a9b11"

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(t *testing.T, r *service_mocks.MockLoanService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		body         string
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			mockBehavior: func(t *testing.T, r *service_mocks.MockLoanService) {
				returnedAt := mustDate(t, "2024-01-08")
				r.EXPECT().
					ChangeStatus(context.Background(), loanUid, model.StatusReturned).
					Return(model.Loan{
						LoanUid:    loanUid,
						MemberID:   "2021-00123",
						FullName:   "Maria Santos",
						CourseYear: "BSA-3",
						CallNumber: "123",
						BookTitle:  "Principles of Taxation",
						Author:     "Jane Cruz",
						Copyright:  "2024",
						DateIssued: mustDate(t, "2024-01-01"),
						DueDate:    mustDate(t, "2024-01-08"),
						ReturnedAt: &returnedAt,
						Status:     model.StatusReturned,
					}, nil)
			},
			body: `{"status":"RETURNED"}`,
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"loanUid":"5e6fa6cd-6a67-4f0f-9a4f-2a0d4c7a9b11","memberId":"2021-00123","fullName":"Maria Santos","courseYear":"BSA-3","callNumber":"123","bookTitle":"Principles of Taxation","author":"Jane Cruz","copyright":"2024","dateIssued":"2024-01-01","dueDate":"2024-01-08","returnedAt":"2024-01-08","status":"RETURNED","createdAt":"0001-01-01T00:00:00Z"}`,
			},
			wantErr: false,
		},
		{
			name:         "err. unknown status",
			mockBehavior: func(t *testing.T, r *service_mocks.MockLoanService) {},
			body:         `{"status":"LOST"}`,
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"unknown loan status \"LOST\""}`,
			},
			wantErr: true,
		},
		{
			name: "err. not found",
			mockBehavior: func(t *testing.T, r *service_mocks.MockLoanService) {
				r.EXPECT().
					ChangeStatus(context.Background(), loanUid, model.StatusOverdue).
					Return(model.Loan{}, errs.ErrNotFound)
			},
			body: `{"status":"OVERDUE"}`,
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
			wantErr: true,
		},
		{
			name: "err. internal",
			mockBehavior: func(t *testing.T, r *service_mocks.MockLoanService) {
				r.EXPECT().
					ChangeStatus(context.Background(), loanUid, model.StatusReturned).
					Return(model.Loan{}, errors.New("db internal"))
			},
			body: `{"status":"RETURNED"}`,
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc := newLoanHandler(t)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.PATCH("/borrowers/:loanUid/status", h.ChangeStatus)

			r := httptest.NewRequest(
				http.MethodPatch, fmt.Sprintf("/borrowers/%s/status", loanUid), strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(t, svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_GetNotifications(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(t *testing.T, r *service_mocks.MockLoanService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		query        string
		response     response
		wantErr      bool
	}{
		{
			name: "due today",
			mockBehavior: func(t *testing.T, r *service_mocks.MockLoanService) {
				r.EXPECT().
					Notifications(context.Background(), mustDate(t, "2024-01-08"), model.ModeDueToday).
					Return([]model.Notification{
						{
							LoanUid:  "5e6fa6cd-6a67-4f0f-9a4f-2a0d4c7a9b11",
							FullName: "Maria Santos",
							DueDate:  mustDate(t, "2024-01-08"),
						},
					}, nil)
			},
			query: "?date=2024-01-08",
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[{"loanUid":"5e6fa6cd-6a67-4f0f-9a4f-2a0d4c7a9b11","fullName":"Maria Santos","dueDate":"2024-01-08"}]`,
			},
			wantErr: false,
		},
		{
			name: "overdue, none due",
			mockBehavior: func(t *testing.T, r *service_mocks.MockLoanService) {
				r.EXPECT().
					Notifications(context.Background(), mustDate(t, "2024-01-08"), model.ModeOverdue).
					Return(nil, nil)
			},
			query: "?date=2024-01-08&mode=overdue",
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[]`,
			},
			wantErr: false,
		},
		{
			name:         "err. unknown mode",
			mockBehavior: func(t *testing.T, r *service_mocks.MockLoanService) {},
			query:        "?date=2024-01-08&mode=bogus",
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"unknown notification mode \"bogus\""}`,
			},
			wantErr: true,
		},
		{
			name:         "err. invalid date",
			mockBehavior: func(t *testing.T, r *service_mocks.MockLoanService) {},
			query:        "?date=01-08-2024",
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"date is invalid"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc := newLoanHandler(t)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.GET("/notifications", h.GetNotifications)

			r := httptest.NewRequest(http.MethodGet, "/notifications"+tt.query, http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(t, svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}
