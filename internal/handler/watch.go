package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/librarium/library-admin/internal/model"
	"github.com/librarium/library-admin/pkg/watch"
)

// The watch endpoints are the live-query surface: one subscription per
// request, torn down with the request context, pushing a full snapshot
// on every relevant change. A client paging or re-filtering opens a new
// request and the old subscription dies with it, so subscriptions can
// never stack.

func sseHeaders(w *echo.Response) {
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
}

func writeSSE(w *echo.Response, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	w.Flush()
	return nil
}

func (h *Handler) watchLoop(c echo.Context, topic string, match func(watch.Event) bool, snapshot func() (any, error)) error {
	sub := h.hub.Subscribe(topic)
	defer sub.Cancel()

	w := c.Response()
	sseHeaders(w)

	push := func() error {
		v, err := snapshot()
		if err != nil {
			return err
		}
		return writeSSE(w, v)
	}
	if err := push(); err != nil {
		return err
	}

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-sub.C():
			if match != nil && !match(ev) {
				continue
			}
			if err := push(); err != nil {
				return err
			}
		}
	}
}

func (h *Handler) WatchBooks(c echo.Context) error {
	search, page, size, err := listParams(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	return h.watchLoop(c, watch.TopicBooks, nil, func() (any, error) {
		return h.catalogSvc.ListBooks(ctx, search, page, size)
	})
}

func (h *Handler) WatchLoans(c echo.Context) error {
	search, page, size, err := listParams(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	return h.watchLoop(c, watch.TopicLoans, nil, func() (any, error) {
		return h.loanSvc.ListLoans(ctx, search, page, size)
	})
}

func (h *Handler) WatchNotifications(c echo.Context) error {
	date, mode, err := notificationParams(c, today)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	return h.watchLoop(c, watch.TopicLoans, nil, func() (any, error) {
		due, err := h.loanSvc.Notifications(ctx, date, mode)
		if due == nil {
			due = []model.Notification{}
		}
		return due, err
	})
}

func (h *Handler) WatchMessages(c echo.Context) error {
	chatUid := c.Param("chatUid")
	ctx := c.Request().Context()
	return h.watchLoop(c, watch.TopicChats,
		func(ev watch.Event) bool { return ev.Uid == chatUid },
		func() (any, error) {
			msgs, err := h.chatSvc.Messages(ctx, chatUid)
			if msgs == nil {
				msgs = []model.ChatMessage{}
			}
			return msgs, err
		})
}
