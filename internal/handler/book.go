package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/librarium/library-admin/internal/errs"
	"github.com/librarium/library-admin/internal/model"
	"github.com/librarium/library-admin/pkg/auth"
)

func listParams(c echo.Context) (search string, page, size int, err error) {
	search = c.QueryParam("search")
	if pageParam := c.QueryParam("page"); pageParam != "" {
		if page, err = strconv.Atoi(pageParam); err != nil {
			return "", 0, 0, errors.New("page is invalid")
		}
	}
	if sizeParam := c.QueryParam("size"); sizeParam != "" {
		if size, err = strconv.Atoi(sizeParam); err != nil {
			return "", 0, 0, errors.New("size is invalid")
		}
	}
	return search, page, size, nil
}

// confirmed implements the blocking delete prompt server-side: the
// caller must pass confirm=true or the store stays untouched.
func confirmed(c echo.Context) bool {
	ok, err := strconv.ParseBool(c.QueryParam("confirm"))
	return err == nil && ok
}

func (h *Handler) GetBooks(c echo.Context) error {
	search, page, size, err := listParams(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	books, err := h.catalogSvc.ListBooks(c.Request().Context(), search, page, size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) CreateBooks(c echo.Context) error {
	var req model.CreateBooksRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errs.NewValidationErrorResponse(err))
	}

	books, err := h.catalogSvc.CreateBooks(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidBatch):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, errs.ErrDuplicateBook):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, books)
}

func (h *Handler) GetBook(c echo.Context) error {
	book, err := h.catalogSvc.GetBook(c.Request().Context(), c.Param("bookUid"))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) LookupBook(c echo.Context) error {
	callNumber := c.QueryParam("callNumber")
	title := c.QueryParam("title")
	if callNumber == "" && title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("callNumber or title is required"))
	}

	book, err := h.catalogSvc.LookupBook(c.Request().Context(), callNumber, title)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	var req model.UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.catalogSvc.UpdateBook(c.Request().Context(), c.Param("bookUid"), req)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, errs.ErrDuplicateBook):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	if !confirmed(c) {
		return echo.NewHTTPError(http.StatusConflict, errs.ErrConfirmRequired.Error())
	}

	ctx := c.Request().Context()
	bookUid := c.Param("bookUid")
	if err := h.catalogSvc.DeleteBook(ctx, bookUid); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.log.Info("book deleted",
		zap.String("bookUid", bookUid),
		zap.String("user", auth.UserName(ctx)),
		zap.String("role", auth.UserRole(ctx)))
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetStats(c echo.Context) error {
	stats, err := h.catalogSvc.Stats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}
