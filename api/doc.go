// Package api provides the HTTP REST API for the park server.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a park from a scenario ({"config_id": "starter"})
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=n)
//   - GET /api/sessions/unified - Side-by-side summaries (?sessionIds=a,b or ?configName=x)
//   - GET /api/sessions/{id} - Session info with a park snapshot
//   - DELETE /api/sessions/{id} - Delete a session and its journal
//
// Park:
//   - GET /api/sessions/{id}/state - Current park state
//   - POST /api/sessions/{id}/reset - Rebuild the park from its scenario
//   - GET /api/sessions/{id}/history - Executed actions (?page=&limit=&order=)
//   - GET /api/sessions/{id}/tiles/{x}/{y} - One tile's surface and elements
//
// Actions:
//   - POST /api/sessions/{id}/actions/query - Validate and price without changing the park
//   - POST /api/sessions/{id}/actions/execute - Run now at the current tick
//   - POST /api/sessions/{id}/actions/submit - Queue for the next tick (202 Accepted)
//   - POST /api/sessions/{id}/ticks - Advance the clock ({"ticks": n}, default 1)
//   - GET /api/action-types - Registered action type names
//
// Actions travel as envelopes:
//
//	{
//	  "type": "maze_place_track",
//	  "header": {"id": "optional-client-id", "flags": 0},
//	  "params": {"loc": {"x": 32, "y": 32, "z": 16}, "ride_id": 0, "maze_entry": 0}
//	}
//
// A rejected action is not an HTTP error. The response is 200 with
// "executed": false, the result status, and the error title and message
// localized from ?lang= or Accept-Language.
//
// Journal:
//   - GET /api/sessions/{id}/journal - Journaled actions (?after=seq&limit=n)
//   - POST /api/sessions/{id}/replay - Replay the journal and compare with the live park
//
// Both return 501 when the server runs without a journal.
//
// Configuration:
//   - GET /api/configs - List scenarios
//   - GET /api/configs/{name} - Load one scenario
//   - POST /api/configs?id=name - Validate and save a scenario
//
// Other:
//   - GET /ws?session={id} - WebSocket updates for a session
//   - GET /health - Liveness check
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message",
//	  "code": 400
//	}
package api
