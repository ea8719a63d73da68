package domain

import "time"

// Event names pushed over the broadcast channel.
const (
	EventTodoAdded   = "TodoAdded"
	EventTodoToggled = "TodoToggled"
	EventTodoDeleted = "TodoDeleted"
)

// Event is the wire envelope for a broadcast notification. Origin carries
// the request ID of the mutation that produced the event so the
// originating client can recognise and drop its own echo.
type Event struct {
	Name   string       `json:"event"`
	Origin string       `json:"origin,omitempty"`
	Data   EventPayload `json:"data"`
}

// EventPayload describes the mutated item. HTML holds the rendered item
// fragment used by remote clients as DOM patch material; it is empty for
// deletions. CreatedAt is only set for additions.
type EventPayload struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"isCompleted"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	HTML      string     `json:"html,omitempty"`
}

// Notifier fans out mutation events to all connected clients. Delivery is
// best effort: failures for individual subscribers are dropped silently
// and never surface to the caller.
type Notifier interface {
	NotifyAdded(todo Todo, html, origin string)
	NotifyToggled(todo Todo, html, origin string)
	NotifyDeleted(id int64, title, origin string)
}
