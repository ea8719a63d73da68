package server

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jholtmann/todocast/internal/config"
	"github.com/jholtmann/todocast/internal/domain"
	"github.com/jholtmann/todocast/internal/render"
	"github.com/jholtmann/todocast/web"
)

// todoBroadcaster is what the server needs from the broadcast layer:
// connection management for the WebSocket endpoint plus the mutation
// notifications sent by the todo handlers.
type todoBroadcaster interface {
	domain.Notifier
	Register(conn *websocket.Conn) error
	Unregister(conn *websocket.Conn)
}

type Server struct {
	echo         *echo.Echo
	config       *config.Config
	store        domain.TodoStore
	broadcaster  todoBroadcaster
	renderer     *render.Renderer
	pageTemplate *template.Template
	startTime    time.Time
}

func NewServer(cfg *config.Config, store domain.TodoStore, broadcaster todoBroadcaster, renderer *render.Renderer) (*Server, error) {
	// Parse templates once at startup
	pageTmpl, err := template.ParseFS(web.Templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(requestIDMiddleware)
	e.Use(actionLogMiddleware)

	srv := &Server{
		echo:         e,
		config:       cfg,
		store:        store,
		broadcaster:  broadcaster,
		renderer:     renderer,
		pageTemplate: pageTmpl,
		startTime:    time.Now(),
	}

	// Register routes
	srv.registerRoutes()

	return srv, nil
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
