package service

import (
	"time"

	"github.com/wricardo/mcp-training/parkserver/game/action"
	"github.com/wricardo/mcp-training/parkserver/game/engine"
	"github.com/wricardo/mcp-training/parkserver/game/journal"
)

// SessionInfo provides information about a park session
type SessionInfo struct {
	ID             string                 `json:"id"`
	ConfigName     string                 `json:"config_name"`
	CreatedAt      time.Time              `json:"created_at"`
	LastAccessedAt time.Time              `json:"last_accessed_at"`
	PendingActions int                    `json:"pending_actions"`
	ParkState      *engine.ParkState      `json:"park_state"`
	Scenario       *engine.ScenarioConfig `json:"scenario"`
}

// ActionOutcome is what a query or execute call reports back
type ActionOutcome struct {
	ActionID    string            `json:"action_id,omitempty"`
	ActionType  string            `json:"action_type"`
	Tick        uint32            `json:"tick"`
	Executed    bool              `json:"executed"`
	Result      action.Result     `json:"result"`
	Invalidated []engine.Position `json:"invalidated,omitempty"`
	Cash        engine.Money      `json:"cash"`
	JournalSeq  int64             `json:"journal_seq,omitempty"`
}

// SubmitReceipt confirms an action was queued for a later tick
type SubmitReceipt struct {
	ActionID   string `json:"action_id"`
	ActionType string `json:"action_type"`
	Tick       uint32 `json:"tick"`
	Pending    int    `json:"pending"`
}

// TickReport summarizes a run of ticks for one session
type TickReport struct {
	SessionID   string            `json:"session_id"`
	Tick        uint32            `json:"tick"`
	Advanced    int               `json:"advanced"`
	Paused      bool              `json:"paused"`
	Executed    []*ActionOutcome  `json:"executed"`
	Invalidated []engine.Position `json:"invalidated,omitempty"`
}

// GameEvent represents something worth telling connected clients
type GameEvent struct {
	Type      string           `json:"type"` // "action", "invalidate", "reset", "tick"
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Position  *engine.Location `json:"position,omitempty"`
}

// TileInfo describes one tile for clients and tools
type TileInfo struct {
	Position engine.Position      `json:"position"`
	Surface  engine.Surface       `json:"surface"`
	Elements []engine.TileElement `json:"elements"`
	Owned    bool                 `json:"owned"`
}

// HistoryOptions configures action history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated action history
type HistoryResponse struct {
	Actions      []engine.ActionHistoryEntry `json:"actions"`
	TotalActions int                         `json:"total_actions"`
	Page         int                         `json:"page"`
	PageSize     int                         `json:"page_size"`
	TotalPages   int                         `json:"total_pages"`
	HasNext      bool                        `json:"has_next"`
	HasPrevious  bool                        `json:"has_previous"`
}

// JournalPage is a slice of a session's journal
type JournalPage struct {
	SessionID string          `json:"session_id"`
	Entries   []journal.Entry `json:"entries"`
	Total     int             `json:"total"`
	NextAfter int64           `json:"next_after"`
}

// ReplayReport compares a replayed journal with the live park
type ReplayReport struct {
	SessionID  string `json:"session_id"`
	Entries    int    `json:"entries"`
	Consistent bool   `json:"consistent"`
	Error      string `json:"error,omitempty"`
}

// ConfigInfo provides information about a scenario
type ConfigInfo struct {
	Filename     string       `json:"filename"`
	ConfigID     string       `json:"config_id"` // The identifier to use for session creation
	Name         string       `json:"name"`      // Display name
	Description  string       `json:"description"`
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	StartingCash engine.Money `json:"starting_cash"`
}
