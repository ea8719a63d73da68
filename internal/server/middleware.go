package server

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jholtmann/todocast/internal/requestid"
)

// requestIDHeader carries the client-generated mutation identifier. It is
// echoed back in broadcast payloads so the originating browser can drop
// its own event.
const requestIDHeader = "X-Request-ID"

func requestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := requestid.Sanitize(c.Request().Header.Get(requestIDHeader))
		ctx := requestid.WithID(c.Request().Context(), id)
		c.SetRequest(c.Request().WithContext(ctx))
		c.Response().Header().Set(requestIDHeader, id)
		return next(c)
	}
}

// actionLogMiddleware logs each request with its user-facing action.
func actionLogMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		req := c.Request()
		slog.InfoContext(req.Context(), "Request handled",
			"action", actionDescription(req.Method, c.Path()),
			"method", req.Method,
			"path", req.URL.Path,
			"status", c.Response().Status,
			"client_ip", c.RealIP(),
			"duration", time.Since(start),
		)
		return err
	}
}

func actionDescription(method, route string) string {
	switch method + " " + route {
	case "GET /":
		return "view main page"
	case "GET /todos":
		return "list todos"
	case "POST /todos":
		return "create todo"
	case "PUT /todos/:id/toggle":
		return "toggle todo"
	case "DELETE /todos/:id":
		return "delete todo"
	case "GET /ws/todos":
		return "open sync channel"
	default:
		return "other"
	}
}
