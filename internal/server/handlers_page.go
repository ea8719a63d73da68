package server

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jholtmann/todocast/internal/version"
)

func (s *Server) handleIndex(c echo.Context) error {
	data := map[string]any{
		"Version": version.Get().Version,
	}

	var buf bytes.Buffer
	if err := s.pageTemplate.Execute(&buf, data); err != nil {
		slog.ErrorContext(c.Request().Context(), "Failed to render page", "error", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
