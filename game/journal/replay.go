package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wricardo/mcp-training/parkserver/game/action"
	"github.com/wricardo/mcp-training/parkserver/game/engine"
)

var ErrReplayDiverged = errors.New("replay diverged from journal")

// Replay rebuilds a park from its scenario by executing journaled actions in
// order. An entry whose replayed status differs from the journaled one stops
// the replay with ErrReplayDiverged.
func Replay(config *engine.ScenarioConfig, entries []Entry) (*engine.ParkState, error) {
	ps := engine.InitParkStateFromConfig(config)
	for _, e := range entries {
		a, err := action.Decode(e.Envelope)
		if err != nil {
			return nil, fmt.Errorf("replay entry %d: %w", e.Seq, err)
		}
		ps.Tick = e.Tick
		res := action.Execute(ps, a)
		ps.DrainInvalidated()
		if res.Status != e.Status {
			return ps, fmt.Errorf("%w: entry %d (%s) journaled %s, replayed %s",
				ErrReplayDiverged, e.Seq, e.ActionType, e.Status, res.Status)
		}
	}
	return ps, nil
}

// ReplaySession loads a session's journal and replays it
func (s *Store) ReplaySession(ctx context.Context, sessionID string, config *engine.ScenarioConfig) (*engine.ParkState, error) {
	entries, err := s.Entries(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return Replay(config, entries)
}

// Equivalent reports whether two parks have the same world. Action history,
// the clock and pending redraws are not compared.
func Equivalent(a, b *engine.ParkState) (bool, error) {
	ja, err := worldJSON(a)
	if err != nil {
		return false, err
	}
	jb, err := worldJSON(b)
	if err != nil {
		return false, err
	}
	return string(ja) == string(jb), nil
}

func worldJSON(ps *engine.ParkState) ([]byte, error) {
	clone, err := engine.CloneState(ps)
	if err != nil {
		return nil, err
	}
	clone.ActionHistory = nil
	clone.TotalActions = 0
	clone.Tick = 0
	clone.Invalidated = nil
	clone.Message = ""
	return json.Marshal(clone)
}
