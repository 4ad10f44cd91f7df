package api

import (
	"context"
	"log"

	"github.com/wricardo/mcp-training/parkserver/game/engine"
	"github.com/wricardo/mcp-training/parkserver/game/service"
	"github.com/wricardo/mcp-training/parkserver/transport/websocket"
)

// broadcastState pushes a fresh snapshot and the tiles to redraw to the session's clients
func (s *Server) broadcastState(ctx context.Context, sessionID string, invalidated []engine.Position) {
	if s.hub == nil {
		return
	}

	state, err := s.service.GetParkState(ctx, sessionID)
	if err != nil {
		log.Printf("Warning: failed to snapshot session %s for broadcast: %v", sessionID, err)
		return
	}
	s.hub.BroadcastToSession(sessionID, state)
	s.hub.BroadcastInvalidated(sessionID, invalidated)
}

// BroadcastTick tells a session's clients the clock moved. A full snapshot
// only goes out when queued actions ran.
func (s *Server) BroadcastTick(ctx context.Context, report *service.TickReport) {
	if s.hub == nil || report == nil {
		return
	}

	s.hub.BroadcastEvent(report.SessionID, websocket.EventTick, map[string]interface{}{
		"tick":   report.Tick,
		"paused": report.Paused,
	})
	if len(report.Executed) > 0 {
		s.broadcastState(ctx, report.SessionID, report.Invalidated)
	}
}
