package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/travelbooking/internal/countdown"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
)

// TickMessage is one countdown frame pushed over the websocket.
type TickMessage struct {
	RemainingSeconds int    `json:"remaining_seconds"`
	Remaining        string `json:"remaining"`
	Expired          bool   `json:"expired"`
	Timestamp        int64  `json:"timestamp"`
}

func (h *Handler) SessionStatus(c echo.Context) error {
	sess, err := h.session(c, false)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, h.svc.Status(c.Request().Context(), sess))
}

func (h *Handler) ResetSession(c echo.Context) error {
	sess, err := h.session(c, false)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.Reset(c.Request().Context(), sess); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CountdownStream pushes the remaining hold once per second and closes the
// socket after the final zero frame. Browsers cannot set headers on a
// websocket, so the session id may come as ?session_id=.
func (h *Handler) CountdownStream(c echo.Context) error {
	sess, err := h.session(c, false)
	if err != nil {
		return respondError(c, err)
	}
	cd, err := h.svc.Countdown(c.Request().Context(), sess)
	if err != nil {
		return respondError(c, err)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.WarnContext(c.Request().Context(), "websocket upgrade failed", "session_id", sess.ID, "error", err)
		return nil
	}
	defer conn.Close()

	// The hijacked connection is no longer watched by net/http, so a read
	// loop notices the client going away.
	ctx, cancel := context.WithCancel(context.WithoutCancel(c.Request().Context()))
	defer cancel()
	go readPump(conn, cancel)

	for left := range cd.Ticks(ctx) {
		msg := TickMessage{
			RemainingSeconds: left,
			Remaining:        countdown.Format(left),
			Expired:          left == 0,
			Timestamp:        time.Now().UnixMilli(),
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			slog.InfoContext(ctx, "countdown stream closed", "session_id", sess.ID, "error", err)
			return nil
		}
		if msg.Expired {
			// Reset the flow the same way a status poll would.
			h.svc.Status(ctx, sess)
		}
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "countdown finished"))
	return nil
}

func readPump(conn *websocket.Conn, done context.CancelFunc) {
	defer done()
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
