package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/librarium/library-admin/internal/errs"
	"github.com/librarium/library-admin/internal/model"
	"github.com/librarium/library-admin/pkg/auth"
)

func today() model.Date {
	return model.DateOf(time.Now())
}

func (h *Handler) GetLoans(c echo.Context) error {
	search, page, size, err := listParams(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	loans, err := h.loanSvc.ListLoans(c.Request().Context(), search, page, size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *Handler) CreateLoan(c echo.Context) error {
	var req model.CreateLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	loan, err := h.loanSvc.CreateLoan(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, loan)
}

func (h *Handler) GetLoan(c echo.Context) error {
	loan, err := h.loanSvc.GetLoan(c.Request().Context(), c.Param("loanUid"))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) ChangeStatus(c echo.Context) error {
	var req model.ChangeStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !req.Status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, errors.Errorf("unknown loan status %q", req.Status))
	}

	loan, err := h.loanSvc.ChangeStatus(c.Request().Context(), c.Param("loanUid"), req.Status)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) DeleteLoan(c echo.Context) error {
	if !confirmed(c) {
		return echo.NewHTTPError(http.StatusConflict, errs.ErrConfirmRequired.Error())
	}

	ctx := c.Request().Context()
	loanUid := c.Param("loanUid")
	if err := h.loanSvc.DeleteLoan(ctx, loanUid); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.log.Info("borrower record deleted",
		zap.String("loanUid", loanUid),
		zap.String("user", auth.UserName(ctx)),
		zap.String("role", auth.UserRole(ctx)))
	return c.NoContent(http.StatusNoContent)
}

func notificationParams(c echo.Context, now func() model.Date) (model.Date, model.NotificationMode, error) {
	date := now()
	if dateParam := c.QueryParam("date"); dateParam != "" {
		parsed, err := model.ParseDate(dateParam)
		if err != nil {
			return model.Date{}, "", errors.New("date is invalid")
		}
		date = parsed
	}
	mode, err := model.ParseNotificationMode(c.QueryParam("mode"))
	if err != nil {
		return model.Date{}, "", err
	}
	return date, mode, nil
}

func (h *Handler) GetNotifications(c echo.Context) error {
	date, mode, err := notificationParams(c, today)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	due, err := h.loanSvc.Notifications(c.Request().Context(), date, mode)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if due == nil {
		due = []model.Notification{}
	}
	return c.JSON(http.StatusOK, due)
}
