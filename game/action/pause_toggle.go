package action

import "github.com/wricardo/mcp-training/parkserver/game/engine"

// PauseToggle pauses or resumes the park
type PauseToggle struct {
	Header `json:"-"`
}

func NewPauseToggle() *PauseToggle {
	return &PauseToggle{}
}

func (a *PauseToggle) Type() string { return TypePauseToggle }

func (a *PauseToggle) ActionFlags() ActionFlags { return AllowWhilePaused }

func (a *PauseToggle) Query(ps *engine.ParkState) Result {
	return Result{Status: StatusOK}
}

func (a *PauseToggle) Execute(ps *engine.ParkState) Result {
	ps.Paused = !ps.Paused
	return Result{Status: StatusOK, Data: map[string]any{"paused": ps.Paused}}
}
