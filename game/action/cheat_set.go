package action

import (
	"sort"

	"github.com/wricardo/mcp-training/parkserver/game/engine"
	"github.com/wricardo/mcp-training/parkserver/game/i18n"
)

var cheatFields = map[string]func(c *engine.Cheats) *bool{
	"sandbox_mode":             func(c *engine.Cheats) *bool { return &c.SandboxMode },
	"disable_clearance_checks": func(c *engine.Cheats) *bool { return &c.DisableClearanceChecks },
	"disable_support_limits":   func(c *engine.Cheats) *bool { return &c.DisableSupportLimits },
	"build_in_pause_mode":      func(c *engine.Cheats) *bool { return &c.BuildInPauseMode },
	"no_money":                 func(c *engine.Cheats) *bool { return &c.NoMoney },
}

// CheatNames lists the cheats CheatSet accepts
func CheatNames() []string {
	names := make([]string, 0, len(cheatFields))
	for name := range cheatFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheatSet turns a named cheat on or off
type CheatSet struct {
	Header  `json:"-"`
	Cheat   string `json:"cheat"`
	Enabled bool   `json:"enabled"`
}

func NewCheatSet(cheat string, enabled bool) *CheatSet {
	return &CheatSet{Cheat: cheat, Enabled: enabled}
}

func (a *CheatSet) Type() string { return TypeCheatSet }

func (a *CheatSet) ActionFlags() ActionFlags { return AllowWhilePaused }

func (a *CheatSet) Query(ps *engine.ParkState) Result {
	if _, ok := cheatFields[a.Cheat]; !ok {
		return Result{}.fail(StatusInvalidParameters, i18n.CantDoThisKey, i18n.UnknownCheatKey)
	}
	return Result{Status: StatusOK}
}

func (a *CheatSet) Execute(ps *engine.ParkState) Result {
	res := a.Query(ps)
	if !res.OK() {
		return res
	}
	*cheatFields[a.Cheat](&ps.Cheats) = a.Enabled
	return res
}
