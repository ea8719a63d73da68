package server

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/jholtmann/todocast/internal/domain"
)

// recordingBroadcaster captures notifications instead of fanning them out.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recordingBroadcaster) record(e domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingBroadcaster) Events() []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Event(nil), r.events...)
}

func (r *recordingBroadcaster) NotifyAdded(todo domain.Todo, html, origin string) {
	createdAt := todo.CreatedAt
	r.record(domain.Event{
		Name:   domain.EventTodoAdded,
		Origin: origin,
		Data: domain.EventPayload{
			ID:        todo.ID,
			Title:     todo.Title,
			Completed: todo.Completed,
			CreatedAt: &createdAt,
			HTML:      html,
		},
	})
}

func (r *recordingBroadcaster) NotifyToggled(todo domain.Todo, html, origin string) {
	r.record(domain.Event{
		Name:   domain.EventTodoToggled,
		Origin: origin,
		Data: domain.EventPayload{
			ID:        todo.ID,
			Title:     todo.Title,
			Completed: todo.Completed,
			HTML:      html,
		},
	})
}

func (r *recordingBroadcaster) NotifyDeleted(id int64, title, origin string) {
	r.record(domain.Event{
		Name:   domain.EventTodoDeleted,
		Origin: origin,
		Data:   domain.EventPayload{ID: id, Title: title},
	})
}

func (r *recordingBroadcaster) Register(_ *websocket.Conn) error { return nil }

func (r *recordingBroadcaster) Unregister(_ *websocket.Conn) {}
