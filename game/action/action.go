package action

import (
	"github.com/google/uuid"

	"github.com/wricardo/mcp-training/parkserver/game/engine"
)

// Header is the part of every action that is not a parameter
type Header struct {
	ID     string `json:"id"`
	Player string `json:"player,omitempty"`
	Flags  Flags  `json:"flags,omitempty"`
	Tick   uint32 `json:"tick"`
}

// GetHeader gives access to the embedded header
func (h *Header) GetHeader() *Header {
	return h
}

// GameAction is a world-mutating command.
//
// Query validates against the park and computes a cost without changing
// anything. Execute re-derives the same validations and mutates only when
// all of them still hold. Neither phase charges the park; the pipeline does.
type GameAction interface {
	Type() string
	GetHeader() *Header
	ActionFlags() ActionFlags
	Query(ps *engine.ParkState) Result
	Execute(ps *engine.ParkState) Result
}

// EnsureID assigns a fresh id to an action that has none and returns it
func EnsureID(a GameAction) string {
	h := a.GetHeader()
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return h.ID
}

func isGhost(a GameAction) bool {
	return a.GetHeader().Flags.Has(FlagGhost)
}
