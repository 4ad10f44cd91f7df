package engine

import (
	"encoding/json"
	"fmt"
)

// Engine provides the main interface for park operations
type Engine interface {
	// Park state management
	GetState() *ParkState
	SetState(state *ParkState) error
	Reset() *ParkState
	Snapshot() (*ParkState, error)

	// Simulation
	Tick() uint32
	CurrentTick() uint32
	IsPaused() bool

	// Configuration
	GetConfig() *ScenarioConfig
	SetConfig(config *ScenarioConfig) error

	// History
	GetActionHistory() []ActionHistoryEntry
	RecordAction(entry ActionHistoryEntry)
}

// ParkEngine implements the Engine interface
type ParkEngine struct {
	state  *ParkState
	config *ScenarioConfig
}

// NewEngine creates a new park engine with the provided scenario
func NewEngine(config *ScenarioConfig) (*ParkEngine, error) {
	if err := ValidateScenarioConfig(config); err != nil {
		return nil, err
	}

	return &ParkEngine{
		config: config,
		state:  InitParkStateFromConfig(config),
	}, nil
}

// NewEngineWithDefaults creates a new park engine with the built-in scenario
func NewEngineWithDefaults() *ParkEngine {
	config := DefaultScenarioConfig()
	return &ParkEngine{
		config: config,
		state:  InitParkStateFromConfig(config),
	}
}

// GetState returns the current park state
func (e *ParkEngine) GetState() *ParkState {
	return e.state
}

// SetState sets the park state (used for persistence loading)
func (e *ParkEngine) SetState(state *ParkState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	e.state = state
	return nil
}

// Reset rebuilds the park from its scenario
func (e *ParkEngine) Reset() *ParkState {
	// Action history survives a reset
	prevHistory := e.state.ActionHistory
	prevTotal := e.state.TotalActions

	e.state = InitParkStateFromConfig(e.config)
	e.state.ActionHistory = prevHistory
	e.state.TotalActions = prevTotal

	return e.state
}

// Snapshot returns a deep copy of the park state
func (e *ParkEngine) Snapshot() (*ParkState, error) {
	return CloneState(e.state)
}

// Tick advances the simulation clock unless the park is paused
func (e *ParkEngine) Tick() uint32 {
	if !e.state.Paused {
		e.state.Tick++
	}
	return e.state.Tick
}

// CurrentTick returns the current simulation tick
func (e *ParkEngine) CurrentTick() uint32 {
	return e.state.Tick
}

// IsPaused reports whether the park is paused
func (e *ParkEngine) IsPaused() bool {
	return e.state.Paused
}

// GetConfig returns the current scenario
func (e *ParkEngine) GetConfig() *ScenarioConfig {
	return e.config
}

// SetConfig sets a new scenario and rebuilds the park
func (e *ParkEngine) SetConfig(config *ScenarioConfig) error {
	if err := ValidateScenarioConfig(config); err != nil {
		return err
	}

	e.config = config
	e.state = InitParkStateFromConfig(config)
	return nil
}

// GetActionHistory returns the complete action history
func (e *ParkEngine) GetActionHistory() []ActionHistoryEntry {
	return e.state.ActionHistory
}

// RecordAction appends an entry to the action history
func (e *ParkEngine) RecordAction(entry ActionHistoryEntry) {
	RecordAction(e.state, entry)
}

// RecordAction appends an entry to a park's action history and numbers it
func RecordAction(ps *ParkState, entry ActionHistoryEntry) {
	ps.TotalActions++
	entry.ActionNumber = ps.TotalActions
	ps.ActionHistory = append(ps.ActionHistory, entry)
}

// CloneState deep-copies a park state through its JSON form
func CloneState(ps *ParkState) (*ParkState, error) {
	if ps == nil {
		return nil, fmt.Errorf("state cannot be nil")
	}
	data, err := json.Marshal(ps)
	if err != nil {
		return nil, fmt.Errorf("snapshot park: %w", err)
	}
	var out ParkState
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("snapshot park: %w", err)
	}
	return &out, nil
}
