// Package broadcast implements the WebSocket fan-out using the actor pattern.
//
// The Broadcaster pushes mutation events to every connected client as they
// happen. Uses single goroutine + command channel (no mutexes). Per-connection
// write goroutines handle slow clients gracefully.
package broadcast
