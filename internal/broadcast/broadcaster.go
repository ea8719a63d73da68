package broadcast

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/jholtmann/todocast/internal/domain"
	"github.com/jholtmann/todocast/internal/metrics"
)

const (
	commandTimeout = 5 * time.Second
	stopTimeout    = 10 * time.Second
)

// broadcasterCmd is the command interface for the Broadcaster actor.
type broadcasterCmd interface{ isBroadcasterCmd() }

type baseBroadcasterCmd struct{}

func (baseBroadcasterCmd) isBroadcasterCmd() {}

type registerCmd struct {
	baseBroadcasterCmd
	connection   *websocket.Conn
	errorChannel chan error
}

type unregisterCmd struct {
	baseBroadcasterCmd
	connection *websocket.Conn
}

type publishCmd struct {
	baseBroadcasterCmd
	data []byte
}

type getClientCountCmd struct {
	baseBroadcasterCmd
	replyChannel chan int
}

type stopCmd struct {
	baseBroadcasterCmd
}

// Broadcaster fans mutation events out to every connected WebSocket client.
// Events are published after a store mutation succeeds, never before, and
// delivery is fire-and-forget: a client that cannot keep up is evicted
// without affecting the others or the HTTP response already sent.
type Broadcaster struct {
	cmdCh      chan broadcasterCmd
	clock      clockwork.Clock
	clients    map[*websocket.Conn]*clientWriter
	done       chan struct{}
	maxClients int
}

// NewBroadcaster creates a broadcaster and starts its actor goroutine.
// maxClients limits concurrent connections (prevents resource exhaustion).
func NewBroadcaster(clock clockwork.Clock, maxClients int) *Broadcaster {
	b := &Broadcaster{
		cmdCh:      make(chan broadcasterCmd, 256),
		clock:      clock,
		clients:    make(map[*websocket.Conn]*clientWriter),
		done:       make(chan struct{}),
		maxClients: maxClients,
	}
	go b.run()
	return b
}

// Register adds a client connection. Returns an error only if the client
// limit is reached or the broadcaster is stuck.
func (b *Broadcaster) Register(conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	b.cmdCh <- registerCmd{connection: conn, errorChannel: errCh}

	// Use timeout to prevent blocking forever if broadcaster is stuck
	timer := b.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case err := <-errCh:
		return err
	case <-timer.Chan():
		return fmt.Errorf("register command timed out after %v", commandTimeout)
	}
}

// Unregister removes a client connection.
func (b *Broadcaster) Unregister(conn *websocket.Conn) {
	b.cmdCh <- unregisterCmd{connection: conn}
}

// ClientCount returns the number of connected clients.
// Returns -1 if the command times out.
func (b *Broadcaster) ClientCount() int {
	replyCh := make(chan int, 1)
	b.cmdCh <- getClientCountCmd{replyChannel: replyCh}

	timer := b.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case count := <-replyCh:
		return count
	case <-timer.Chan():
		slog.Warn("ClientCount timed out", "timeout", commandTimeout)
		return -1
	}
}

// Publish fans the event out to all connected clients. The event is
// marshalled once; marshalling failures are logged and dropped.
func (b *Broadcaster) Publish(event domain.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal broadcast event", "event", event.Name, "error", err)
		return
	}
	metrics.BroadcasterEventsTotal.WithLabelValues(event.Name).Inc()
	b.cmdCh <- publishCmd{data: data}
}

// NotifyAdded implements domain.Notifier.
func (b *Broadcaster) NotifyAdded(todo domain.Todo, html, origin string) {
	createdAt := todo.CreatedAt
	b.Publish(domain.Event{
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

// NotifyToggled implements domain.Notifier.
func (b *Broadcaster) NotifyToggled(todo domain.Todo, html, origin string) {
	b.Publish(domain.Event{
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

// NotifyDeleted implements domain.Notifier.
func (b *Broadcaster) NotifyDeleted(id int64, title, origin string) {
	b.Publish(domain.Event{
		Name:   domain.EventTodoDeleted,
		Origin: origin,
		Data: domain.EventPayload{
			ID:    id,
			Title: title,
		},
	})
}

// Stop shuts down the broadcaster, closing all client connections.
// Blocks until the broadcaster goroutine has exited or timeout is reached.
func (b *Broadcaster) Stop() {
	b.cmdCh <- stopCmd{}

	timer := b.clock.NewTimer(stopTimeout)
	defer timer.Stop()

	select {
	case <-b.done:
		slog.Info("Broadcaster stopped gracefully")
	case <-timer.Chan():
		slog.Warn("Broadcaster stop timeout exceeded, forcing exit", "timeout", stopTimeout)
	}
}

func (b *Broadcaster) run() {
	defer close(b.done)

	for cmd := range b.cmdCh {
		switch c := cmd.(type) {
		case registerCmd:
			b.handleRegister(c)
		case unregisterCmd:
			b.handleUnregister(c)
		case publishCmd:
			b.handlePublish(c)
		case getClientCountCmd:
			c.replyChannel <- len(b.clients)
		case stopCmd:
			b.handleStop()
			return
		default:
			slog.Warn("Broadcaster received unknown command type", "command_type", fmt.Sprintf("%T", cmd))
		}
	}
}

func (b *Broadcaster) handleRegister(c registerCmd) {
	if len(b.clients) >= b.maxClients {
		slog.Warn("Rejecting client: max clients reached", "max_clients", b.maxClients)
		c.connection.Close()
		c.errorChannel <- fmt.Errorf("max clients (%d) reached", b.maxClients)
		return
	}

	cw := newClientWriter(c.connection, b.clock)
	b.clients[c.connection] = cw

	metrics.BroadcasterConnectedClients.Set(float64(len(b.clients)))

	slog.Debug("Client registered", "total_clients", len(b.clients))
	c.errorChannel <- nil
}

func (b *Broadcaster) handleUnregister(c unregisterCmd) {
	cw, exists := b.clients[c.connection]
	if !exists {
		return
	}

	cw.stop()
	delete(b.clients, c.connection)

	metrics.BroadcasterConnectedClients.Set(float64(len(b.clients)))

	slog.Debug("Client unregistered", "remaining_clients", len(b.clients))
}

func (b *Broadcaster) handlePublish(c publishCmd) {
	var slow []*websocket.Conn
	for conn, writer := range b.clients {
		select {
		case writer.sendCh <- c.data:
		default:
			slow = append(slow, conn)
		}
	}

	for _, conn := range slow {
		slog.Warn("Disconnecting slow client")
		metrics.BroadcasterSlowClientsEvicted.Inc()
		b.handleUnregister(unregisterCmd{connection: conn})
	}
}

func (b *Broadcaster) handleStop() {
	slog.Info("Broadcaster shutting down", "clients", len(b.clients))

	for conn, cw := range b.clients {
		cw.stopGraceful("Server shutting down")
		delete(b.clients, conn)
	}
	metrics.BroadcasterConnectedClients.Set(0)
}
