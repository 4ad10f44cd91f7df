package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/wricardo/mcp-training/parkserver/game/action"
	"github.com/wricardo/mcp-training/parkserver/game/engine"
	"github.com/wricardo/mcp-training/parkserver/game/journal"
)

var (
	ErrDuplicateAction = errors.New("action id already used")
	ErrOutOfBounds     = errors.New("position is off the map")
)

const (
	// defaultJournalPage is the journal page size when none is given
	defaultJournalPage = 50

	// persistEveryTicks is how often TickAll saves a session that ran no actions
	persistEveryTicks = 30
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	journal  Journal
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// NewGameServiceWithJournal creates a game service that journals every executed action
func NewGameServiceWithJournal(sessions SessionManager, configs ConfigManager, j Journal) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		journal:  j,
	}
}

// getConfigID returns the config_id for a scenario display name
func (s *gameServiceImpl) getConfigID(displayName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == displayName {
				return cfg.ConfigID
			}
		}
	}
	if displayName == "" {
		return "default"
	}
	return displayName
}

// CreateSession creates a new park session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.ScenarioConfig
	var err error
	configID := configName
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				var configIDs []string
				if available, listErr := s.configs.ListConfigs(); listErr == nil {
					for _, cfg := range available {
						configIDs = append(configIDs, cfg.ConfigID)
					}
				}
				return nil, fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configName, configIDs)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
		configID = s.getConfigID(config.Name)
	}

	sess, err := s.sessions.Create("", configID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if s.journal != nil {
		if err := s.journal.RegisterSession(ctx, sess.ID, configID); err != nil {
			log.Printf("Warning: failed to register journal for session %s: %v", sess.ID, err)
		}
	}

	return s.sessionInfo(sess)
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return s.sessionInfo(sess)
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		info, err := s.sessionInfo(sess)
		if err != nil {
			return nil, err
		}
		result = append(result, info)
	}
	return result, nil
}

// DeleteSession removes a session and its journal
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	if s.journal != nil {
		if err := s.journal.DeleteSession(ctx, sessionID); err != nil {
			log.Printf("Warning: failed to delete journal for session %s: %v", sessionID, err)
		}
	}
	return nil
}

// Reset rebuilds a session's park from its scenario
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.ParkState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	sess.Engine.Reset()
	sess.Queue = action.NewQueue()
	sess.ResetActionIDs()

	// The journal replays from the fresh scenario
	if s.journal != nil {
		if err := s.journal.Truncate(ctx, sessionID); err != nil {
			log.Printf("Warning: failed to truncate journal for session %s: %v", sessionID, err)
		}
	}

	s.persist(sessionID, "reset")
	return sess.Engine.Snapshot()
}

// QueryAction validates an action against the live park without changing it
func (s *gameServiceImpl) QueryAction(ctx context.Context, sessionID string, a action.GameAction) (*ActionOutcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	ps := sess.Engine.GetState()
	res := action.Query(ps, a)
	return &ActionOutcome{
		ActionID:   a.GetHeader().ID,
		ActionType: a.Type(),
		Tick:       ps.Tick,
		Result:     res,
		Cash:       ps.Finance.Cash,
	}, nil
}

// ExecuteAction runs an action immediately at the current tick
func (s *gameServiceImpl) ExecuteAction(ctx context.Context, sessionID string, a action.GameAction) (*ActionOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	if err := checkDuplicate(sess, a); err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	outcome := s.run(ctx, sess, a)
	if outcome.Executed {
		s.persist(sessionID, "execute")
	}
	return outcome, nil
}

// SubmitAction queues an action to run when the session's clock next advances
func (s *gameServiceImpl) SubmitAction(ctx context.Context, sessionID string, a action.GameAction) (*SubmitReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	if err := checkDuplicate(sess, a); err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	id := action.EnsureID(a)
	sess.UseActionID(id)
	tick := sess.Engine.CurrentTick()
	sess.Queue.Enqueue(a, tick)

	return &SubmitReceipt{
		ActionID:   id,
		ActionType: a.Type(),
		Tick:       tick,
		Pending:    sess.Queue.Len(),
	}, nil
}

// AdvanceTicks moves a session's clock forward, executing queued actions as they come due
func (s *gameServiceImpl) AdvanceTicks(ctx context.Context, sessionID string, ticks int) (*TickReport, error) {
	if ticks < 1 || ticks > MaxTicksPerCall {
		return nil, fmt.Errorf("%w: %d (1-%d)", ErrInvalidTicks, ticks, MaxTicksPerCall)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	report := s.advance(ctx, sess, ticks)
	s.persist(sessionID, "ticks")
	return report, nil
}

// TickAll advances every session by one tick. Access times are left alone
// so idle sessions still expire.
func (s *gameServiceImpl) TickAll(ctx context.Context) []*TickReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	reports := make([]*TickReport, 0, len(sessions))
	for _, sess := range sessions {
		report := s.advance(ctx, sess, 1)
		if len(report.Executed) > 0 || (report.Advanced > 0 && report.Tick%persistEveryTicks == 0) {
			s.persist(sess.ID, "tick")
		}
		reports = append(reports, report)
	}
	return reports
}

// ListActionTypes returns the registered action types
func (s *gameServiceImpl) ListActionTypes(ctx context.Context) []string {
	return action.Types()
}

// GetParkState returns a copy of the current park
func (s *gameServiceImpl) GetParkState(ctx context.Context, sessionID string) (*engine.ParkState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.Snapshot()
}

// DescribeTile returns the surface and elements of one tile
func (s *gameServiceImpl) DescribeTile(ctx context.Context, sessionID string, pos engine.Position) (*TileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	tile := sess.Engine.GetState().TileAt(pos)
	if tile == nil {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, pos.X, pos.Y)
	}

	elements := make([]engine.TileElement, len(tile.Elements))
	copy(elements, tile.Elements)
	return &TileInfo{
		Position: pos,
		Surface:  tile.Surface,
		Elements: elements,
		Owned:    tile.Surface.Ownership == engine.Owned,
	}, nil
}

// GetActionHistory returns paginated action history
func (s *gameServiceImpl) GetActionHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetActionHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > engine.MaxHistoryPage {
		opts.Limit = engine.MaxHistoryPage
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	actions := []engine.ActionHistoryEntry{}
	if start < total {
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				actions = append(actions, history[i])
			}
		} else {
			actions = append(actions, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Actions:      actions,
		TotalActions: total,
		Page:         opts.Page,
		PageSize:     opts.Limit,
		TotalPages:   totalPages,
		HasNext:      opts.Page < totalPages,
		HasPrevious:  opts.Page > 1,
	}, nil
}

// GetJournal returns journal entries after a sequence number
func (s *gameServiceImpl) GetJournal(ctx context.Context, sessionID string, afterSeq int64, limit int) (*JournalPage, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.getSession(sessionID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultJournalPage
	}
	if limit > engine.MaxHistoryPage {
		limit = engine.MaxHistoryPage
	}

	entries, err := s.journal.EntriesAfter(ctx, sessionID, afterSeq, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.journal.Count(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []journal.Entry{}
	}

	next := afterSeq
	if len(entries) > 0 {
		next = entries[len(entries)-1].Seq
	}
	return &JournalPage{
		SessionID: sessionID,
		Entries:   entries,
		Total:     total,
		NextAfter: next,
	}, nil
}

// ReplaySession rebuilds the park from its journal and compares it with the live one
func (s *gameServiceImpl) ReplaySession(ctx context.Context, sessionID string) (*ReplayReport, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	count, err := s.journal.Count(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	report := &ReplayReport{SessionID: sessionID, Entries: count}

	replayed, err := s.journal.ReplaySession(ctx, sessionID, sess.Config)
	if err != nil {
		if errors.Is(err, journal.ErrReplayDiverged) {
			report.Error = err.Error()
			return report, nil
		}
		return nil, err
	}

	same, err := journal.Equivalent(replayed, sess.Engine.GetState())
	if err != nil {
		return nil, err
	}
	report.Consistent = same
	if !same {
		report.Error = "replayed park differs from the live park"
	}
	return report, nil
}

// ListConfigs returns available scenarios
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific scenario
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.ScenarioConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a scenario to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.ScenarioConfig) error {
	return s.configs.SaveConfig(configName, config)
}

func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	return sess, nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session) (*SessionInfo, error) {
	state, err := sess.Engine.Snapshot()
	if err != nil {
		return nil, err
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     sess.ConfigName,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		PendingActions: sess.Queue.Len(),
		ParkState:      state,
		Scenario:       sess.Config,
	}, nil
}

// run executes one action at the session's current tick and journals it.
// The header tick is stamped with the execution tick so a replay books
// payments on the same tick.
func (s *gameServiceImpl) run(ctx context.Context, sess *Session, a action.GameAction) *ActionOutcome {
	ps := sess.Engine.GetState()
	id := action.EnsureID(a)
	sess.UseActionID(id)
	a.GetHeader().Tick = ps.Tick

	res := action.Execute(ps, a)
	outcome := &ActionOutcome{
		ActionID:    id,
		ActionType:  a.Type(),
		Tick:        ps.Tick,
		Executed:    res.OK(),
		Result:      res,
		Invalidated: ps.DrainInvalidated(),
		Cash:        ps.Finance.Cash,
	}

	if s.journal != nil {
		env, err := action.Encode(a)
		if err != nil {
			log.Printf("Warning: failed to encode action %s for session %s: %v", id, sess.ID, err)
			return outcome
		}
		seq, err := s.journal.Append(ctx, sess.ID, env, res)
		if err != nil {
			log.Printf("Warning: failed to journal action %s for session %s: %v", id, sess.ID, err)
			return outcome
		}
		outcome.JournalSeq = seq
	}
	return outcome
}

// advance ticks a session and executes everything that came due. Due actions
// still drain while the park is paused so a queued unpause can run.
func (s *gameServiceImpl) advance(ctx context.Context, sess *Session, ticks int) *TickReport {
	report := &TickReport{SessionID: sess.ID, Executed: []*ActionOutcome{}}
	seen := make(map[engine.Position]bool)

	for i := 0; i < ticks; i++ {
		before := sess.Engine.CurrentTick()
		tick := sess.Engine.Tick()
		if tick != before {
			report.Advanced++
		}
		for _, a := range sess.Queue.Drain(tick) {
			outcome := s.run(ctx, sess, a)
			report.Executed = append(report.Executed, outcome)
			for _, pos := range outcome.Invalidated {
				if !seen[pos] {
					seen[pos] = true
					report.Invalidated = append(report.Invalidated, pos)
				}
			}
		}
	}

	report.Tick = sess.Engine.CurrentTick()
	report.Paused = sess.Engine.IsPaused()
	return report
}

func (s *gameServiceImpl) persist(sessionID, after string) {
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: failed to persist session %s after %s: %v", sessionID, after, err)
	}
}

// checkDuplicate rejects a caller-supplied id the park has already seen,
// whether it executed, failed or is still queued
func checkDuplicate(sess *Session, a action.GameAction) error {
	id := a.GetHeader().ID
	if id != "" && sess.HasActionID(id) {
		return fmt.Errorf("%w: %s", ErrDuplicateAction, id)
	}
	return nil
}
