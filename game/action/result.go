package action

import (
	"golang.org/x/text/language"

	"github.com/wricardo/mcp-training/parkserver/game/engine"
	"github.com/wricardo/mcp-training/parkserver/game/i18n"
)

// Status is the outcome kind of an action phase
type Status string

const (
	StatusOK                Status = "ok"
	StatusInvalidParameters Status = "invalid_parameters"
	StatusDisallowed        Status = "disallowed"
	StatusGamePaused        Status = "game_paused"
	StatusInsufficientFunds Status = "insufficient_funds"
	StatusNotOwned          Status = "not_owned"
	StatusTooLow            Status = "too_low"
	StatusTooHigh           Status = "too_high"
	StatusNoClearance       Status = "no_clearance"
	StatusItemAlreadyPlaced Status = "item_already_placed"
	StatusNoFreeElements    Status = "no_free_elements"
	StatusUnknown           Status = "unknown"
)

// Result is what Query and Execute report. Failures are results, not errors.
type Result struct {
	Status       Status                 `json:"status"`
	ErrorTitle   string                 `json:"error_title,omitempty"`
	ErrorMessage string                 `json:"error_message,omitempty"`
	Cost         engine.Money           `json:"cost"`
	Expenditure  engine.ExpenditureType `json:"expenditure,omitempty"`
	Position     engine.Location        `json:"position"`
	Data         map[string]any         `json:"data,omitempty"`
}

// OK reports whether the phase succeeded
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// Localize renders the title and message keys in the given language
func (r Result) Localize(tag language.Tag) (title, message string) {
	title = i18n.Text(tag, r.ErrorTitle)
	if r.ErrorMessage == i18n.NotEnoughCashKey {
		message = i18n.Text(tag, r.ErrorMessage, i18n.Money(tag, int64(r.Cost)))
	} else {
		message = i18n.Text(tag, r.ErrorMessage)
	}
	return title, message
}

// fail turns a result into a failure of the given kind, keeping cost and position
func (r Result) fail(status Status, title, message string) Result {
	r.Status = status
	r.ErrorTitle = title
	r.ErrorMessage = message
	return r
}
