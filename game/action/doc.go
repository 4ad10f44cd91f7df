// Package action implements the command pipeline every park mutation goes
// through.
//
// Each GameAction has two phases. Query checks the action against the park
// and prices it without touching anything. Execute re-runs those checks and
// applies the change only if they all still hold. The package-level Query
// and Execute functions wrap both phases with the checks every action
// shares: the pause rule, affordability, charging the park and recording
// the action history.
//
// Actions travel as an Envelope (type, header, raw JSON params) and are
// rebuilt through a registry keyed by type name. A Queue orders submitted
// actions by tick and arrival so that every participant executes them in
// the same order.
//
// Failures are Result values with a Status and i18n message keys; Go errors
// are only returned for decoding problems.
package action
