// Package websocket pushes park updates to browser clients.
//
// A central Hub owns every connection. Clients join a session with
// /ws?session=<id> and receive JSON messages for that session only:
//
//	{"session_id": "ab12", "event": "state_update", "park_state": {...}}
//	{"session_id": "ab12", "event": "invalidate", "data": [{"x": 3, "y": 4}]}
//
// state_update carries a full park snapshot after an action, a reset or a
// tick that ran queued actions. invalidate lists the tiles a client has to
// redraw.
//
// Concurrency:
//
// Only the Run goroutine touches the client map. Broadcast calls queue
// messages on a buffered channel and never block the caller; when the queue
// is full the message is dropped with a warning. A client whose own send
// buffer fills up is disconnected.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	hub.BroadcastToSession(sessionID, state)
//	hub.BroadcastInvalidated(sessionID, outcome.Invalidated)
package websocket
