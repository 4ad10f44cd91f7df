package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/wricardo/mcp-training/parkserver/game/action"
	"github.com/wricardo/mcp-training/parkserver/game/engine"
	"github.com/wricardo/mcp-training/parkserver/game/journal"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrConfigNotFound  = errors.New("configuration not found")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrJournalDisabled = errors.New("journal is not enabled")
	ErrInvalidTicks    = errors.New("tick count out of range")
)

// MaxTicksPerCall bounds AdvanceTicks
const MaxTicksPerCall = 1000

// GameService defines all park operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error
	Reset(ctx context.Context, sessionID string) (*engine.ParkState, error)

	// Actions
	QueryAction(ctx context.Context, sessionID string, a action.GameAction) (*ActionOutcome, error)
	ExecuteAction(ctx context.Context, sessionID string, a action.GameAction) (*ActionOutcome, error)
	SubmitAction(ctx context.Context, sessionID string, a action.GameAction) (*SubmitReceipt, error)
	AdvanceTicks(ctx context.Context, sessionID string, ticks int) (*TickReport, error)
	TickAll(ctx context.Context) []*TickReport
	ListActionTypes(ctx context.Context) []string

	// Park State
	GetParkState(ctx context.Context, sessionID string) (*engine.ParkState, error)
	DescribeTile(ctx context.Context, sessionID string, pos engine.Position) (*TileInfo, error)
	GetActionHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Journal
	GetJournal(ctx context.Context, sessionID string, afterSeq int64, limit int) (*JournalPage, error)
	ReplaySession(ctx context.Context, sessionID string) (*ReplayReport, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.ScenarioConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.ScenarioConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, configName string, config *engine.ScenarioConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles scenario loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.ScenarioConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.ScenarioConfig
	SaveConfig(name string, config *engine.ScenarioConfig) error
}

// Journal records executed actions so a session can be replayed
type Journal interface {
	RegisterSession(ctx context.Context, sessionID, configName string) error
	Append(ctx context.Context, sessionID string, env action.Envelope, res action.Result) (int64, error)
	EntriesAfter(ctx context.Context, sessionID string, afterSeq int64, limit int) ([]journal.Entry, error)
	Count(ctx context.Context, sessionID string) (int, error)
	Truncate(ctx context.Context, sessionID string) error
	DeleteSession(ctx context.Context, sessionID string) error
	ReplaySession(ctx context.Context, sessionID string, config *engine.ScenarioConfig) (*engine.ParkState, error)
}

// Session represents an active park session
type Session struct {
	ID             string
	ConfigName     string
	Engine         *engine.ParkEngine
	Config         *engine.ScenarioConfig
	Queue          *action.Queue
	CreatedAt      time.Time
	LastAccessedAt time.Time

	// ids of every action executed, failed or queued since the last reset
	actionIDs map[string]struct{}
}

// HasActionID reports whether id was already used in this park
func (s *Session) HasActionID(id string) bool {
	_, ok := s.actionIDs[id]
	return ok
}

// UseActionID records id as used
func (s *Session) UseActionID(id string) {
	if id == "" {
		return
	}
	if s.actionIDs == nil {
		s.actionIDs = make(map[string]struct{})
	}
	s.actionIDs[id] = struct{}{}
}

// ActionIDs returns the used ids in sorted order
func (s *Session) ActionIDs() []string {
	ids := make([]string, 0, len(s.actionIDs))
	for id := range s.actionIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ResetActionIDs forgets every used id
func (s *Session) ResetActionIDs() {
	s.actionIDs = nil
}
