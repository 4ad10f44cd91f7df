package action

import (
	"github.com/wricardo/mcp-training/parkserver/game/engine"
	"github.com/wricardo/mcp-training/parkserver/game/i18n"
)

// Query runs the side-effect-free phase of an action, including the
// park-wide checks every action shares
func Query(ps *engine.ParkState, a GameAction) Result {
	if res, ok := checkPaused(ps, a); !ok {
		return res
	}

	res := a.Query(ps)
	if !res.OK() {
		return res
	}

	return checkFunds(ps, a, res)
}

// Execute queries the action and, if that succeeds, applies it, charges the
// park and records it in the action history. A failed Execute leaves the
// park unchanged.
func Execute(ps *engine.ParkState, a GameAction) Result {
	res := Query(ps, a)
	if !res.OK() {
		return res
	}

	res = a.Execute(ps)
	if !res.OK() {
		return res
	}

	if spends(ps, a) && res.Cost != 0 {
		ps.Pay(res.Cost, res.Expenditure, a.Type())
	}

	header := a.GetHeader()
	engine.RecordAction(ps, engine.ActionHistoryEntry{
		ActionID:    header.ID,
		ActionType:  a.Type(),
		Player:      header.Player,
		Status:      string(res.Status),
		Cost:        res.Cost,
		Expenditure: res.Expenditure,
		Position:    res.Position,
		Tick:        ps.Tick,
	})

	return res
}

func checkPaused(ps *engine.ParkState, a GameAction) (Result, bool) {
	if !ps.Paused || ps.Cheats.BuildInPauseMode {
		return Result{}, true
	}
	if a.ActionFlags()&AllowWhilePaused != 0 {
		return Result{}, true
	}
	return Result{
		Status:       StatusGamePaused,
		ErrorTitle:   i18n.CantDoThisKey,
		ErrorMessage: i18n.GamePausedKey,
	}, false
}

func checkFunds(ps *engine.ParkState, a GameAction, res Result) Result {
	if !spends(ps, a) {
		return res
	}
	if res.Cost > 0 && res.Cost > ps.Finance.Cash {
		return res.fail(StatusInsufficientFunds, i18n.CantDoThisKey, i18n.NotEnoughCashKey)
	}
	return res
}

// spends reports whether the action's cost is taken from the park
func spends(ps *engine.ParkState, a GameAction) bool {
	flags := a.GetHeader().Flags
	if flags.Has(FlagGhost) || flags.Has(FlagNoSpend) {
		return false
	}
	return !ps.Cheats.NoMoney
}
