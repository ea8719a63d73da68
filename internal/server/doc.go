// Package server implements the HTTP server using Echo framework.
//
// Routes: page (/), todo fragments (/todos CRUD), WebSocket sync channel
// (/ws/todos), observability (/health, /metrics, /version). Handlers split
// by concern: handlers_todos.go, handlers_page.go, handlers_ws.go,
// handlers_health.go.
package server
