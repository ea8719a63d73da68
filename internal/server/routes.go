package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jholtmann/todocast/web"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Main page and static assets
	s.echo.GET("/", s.handleIndex)
	s.echo.StaticFS("/static", echo.MustSubFS(web.Static, "static"))

	// Todo fragment endpoints
	s.echo.GET("/todos", s.handleListTodos)
	s.echo.POST("/todos", s.handleCreateTodo)
	s.echo.PUT("/todos/:id/toggle", s.handleToggleTodo)
	s.echo.DELETE("/todos/:id", s.handleDeleteTodo)

	// Real-time sync channel
	s.echo.GET("/ws/todos", s.handleWebSocket)
}
