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

func newCatalogHandler(t *testing.T) (*handler.Handler, *service_mocks.MockCatalogService) {
	t.Helper()
	c := gomock.NewController(t)
	t.Cleanup(c.Finish)
	svc := service_mocks.NewMockCatalogService(c)
	log := zap.NewExample().Named("test")
	return handler.New(svc, nil, nil, nil, watch.NewHub(), log), svc
}

func TestHandler_GetBooks(t *testing.T) {
	t.Parallel()
	type input struct {
		search     string
		page, size string
	}
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockCatalogService, inp input)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		input        input
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockCatalogService, inp input) {
				r.EXPECT().
					ListBooks(context.Background(), inp.search, 1, 10).
					Return(model.ListBooks{
						Paging: model.Paging{
							Page:          1,
							PageSize:      10,
							TotalElements: 1,
						},
						Items: []model.Book{
							{
								BookUid:      "f7cdc58f-2caf-4b15-9727-f89dcc629b27",
								Title:        "Principles of Taxation",
								Author:       "Jane Cruz",
								CallNumber:   "123",
								Copyright:    "2024",
								Availability: 5,
								Location:     "Shelf A",
							},
						},
					}, nil)
			},
			input: input{
				search: "tax",
				page:   "1",
				size:   "10",
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"page":1,"pageSize":10,"totalElements":1,"items":[{"bookUid":"f7cdc58f-2caf-4b15-9727-f89dcc629b27","title":"Principles of Taxation","author":"Jane Cruz","callNumber":"123","copyright":"2024","availability":5,"location":"Shelf A","createdAt":"0001-01-01T00:00:00Z"}]}`,
			},
			wantErr: false,
		},
		{
			name:         "err. page invalid",
			mockBehavior: func(r *service_mocks.MockCatalogService, inp input) {},
			input: input{
				page: "abc",
				size: "10",
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"page is invalid"}`,
			},
			wantErr: true,
		},
		{
			name: "err. internal",
			mockBehavior: func(r *service_mocks.MockCatalogService, inp input) {
				r.EXPECT().
					ListBooks(context.Background(), inp.search, 0, 0).
					Return(model.ListBooks{}, errors.New("db internal"))
			},
			input: input{
				search: "tax",
				page:   "0",
				size:   "0",
			},
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
			h, svc := newCatalogHandler(t)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.GET("/books", h.GetBooks)

			r := httptest.NewRequest(
				http.MethodGet, fmt.Sprintf("/books?search=%s&page=%s&size=%s", tt.input.search, tt.input.page, tt.input.size), http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc, tt.input)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_CreateBooks(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockCatalogService, req model.CreateBooksRequest)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		body         string
		input        model.CreateBooksRequest
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockCatalogService, req model.CreateBooksRequest) {
				r.EXPECT().
					CreateBooks(context.Background(), req).
					Return([]model.Book{
						{
							BookUid:      "f7cdc58f-2caf-4b15-9727-f89dcc629b27",
							Title:        "Taxation",
							Author:       "Jane Cruz",
							CallNumber:   "123",
							Copyright:    "2024",
							Availability: 5,
							Location:     "Shelf A",
						},
					}, nil)
			},
			body: `{"author":"Jane Cruz","entries":"Taxation, (123), (2024), (5), (Shelf A)"}`,
			input: model.CreateBooksRequest{
				Author:  "Jane Cruz",
				Entries: "Taxation, (123), (2024), (5), (Shelf A)",
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `[{"bookUid":"f7cdc58f-2caf-4b15-9727-f89dcc629b27","title":"Taxation","author":"Jane Cruz","callNumber":"123","copyright":"2024","availability":5,"location":"Shelf A","createdAt":"0001-01-01T00:00:00Z"}]`,
			},
			wantErr: false,
		},
		{
			name: "err. invalid batch",
			mockBehavior: func(r *service_mocks.MockCatalogService, req model.CreateBooksRequest) {
				r.EXPECT().
					CreateBooks(context.Background(), req).
					Return(nil, errs.ErrInvalidBatch)
			},
			body: `{"author":"Jane Cruz","entries":"not a book entry"}`,
			input: model.CreateBooksRequest{
				Author:  "Jane Cruz",
				Entries: "not a book entry",
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"no valid book entries in submission"}`,
			},
			wantErr: true,
		},
		{
			name: "err. duplicate",
			mockBehavior: func(r *service_mocks.MockCatalogService, req model.CreateBooksRequest) {
				r.EXPECT().
					CreateBooks(context.Background(), req).
					Return(nil, errs.ErrDuplicateBook)
			},
			body: `{"author":"Jane Cruz","entries":"Taxation, (123), (2024), (5), (Shelf A)"}`,
			input: model.CreateBooksRequest{
				Author:  "Jane Cruz",
				Entries: "Taxation, (123), (2024), (5), (Shelf A)",
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"book with this title and call number already exists"}`,
			},
			wantErr: true,
		},
		{
			name:         "err. author required",
			mockBehavior: func(r *service_mocks.MockCatalogService, req model.CreateBooksRequest) {},
			body:         `{"entries":"Taxation, (123), (2024), (5), (Shelf A)"}`,
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"invalid request","errors":{"additionalProperties":"Key: 'CreateBooksRequest.Author' Error:Field validation for 'Author' failed on the 'required' tag"}}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc := newCatalogHandler(t)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/books", h.CreateBooks)

			r := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc, tt.input)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_DeleteBook(t *testing.T) {
	t.Parallel()
	const bookUid = "f7cdc58f-2caf-4b15-9727-f89dcc629b27"

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockCatalogService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		confirm      string
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().
					DeleteBook(context.Background(), bookUid).
					Return(nil)
			},
			confirm: "true",
			response: response{
				expectedCode: http.StatusNoContent,
				expectedBody: ``,
			},
			wantErr: false,
		},
		{
			name:         "err. not confirmed",
			mockBehavior: func(r *service_mocks.MockCatalogService) {},
			confirm:      "",
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"confirmation required"}`,
			},
			wantErr: true,
		},
		{
			name: "err. not found",
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().
					DeleteBook(context.Background(), bookUid).
					Return(errs.ErrNotFound)
			},
			confirm: "true",
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc := newCatalogHandler(t)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.DELETE("/books/:bookUid", h.DeleteBook)

			r := httptest.NewRequest(
				http.MethodDelete, fmt.Sprintf("/books/%s?confirm=%s", bookUid, tt.confirm), http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}
