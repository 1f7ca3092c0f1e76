package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/librarium/library-admin/internal/errs"
	"github.com/librarium/library-admin/internal/model"
)

func (h *Handler) StartChat(c echo.Context) error {
	chat, err := h.chatSvc.StartChat(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, chat)
}

func (h *Handler) SendMessage(c echo.Context) error {
	var req model.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.chatSvc.SendMessage(c.Request().Context(), c.Param("chatUid"), req)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, msg)
}

func (h *Handler) GetMessages(c echo.Context) error {
	msgs, err := h.chatSvc.Messages(c.Request().Context(), c.Param("chatUid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if msgs == nil {
		msgs = []model.ChatMessage{}
	}
	return c.JSON(http.StatusOK, msgs)
}
