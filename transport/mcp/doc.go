// Package mcp exposes the park server to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool call becomes a REST request
// against a running park server and the JSON reply is rendered as text.
// It holds no park state of its own.
//
// MCP Tools:
//   - create_session, get_session, list_sessions, delete_session
//   - park_state: Map, cash, clock and rides
//   - describe_tile: One tile's surface and elements
//   - query_action, execute_action, submit_action: The action pipeline
//   - advance_ticks: Move the clock and run queued actions
//   - reset_park, action_history
//   - action_journal, replay_journal: The persistent journal
//   - list_configs, list_action_types, park_instructions
//
// Action tools take the same envelope fields as the REST API: a type,
// a params object, and optionally an action_id and the ghost flag.
// A rejected action is reported as text with its status and the
// localized message; only transport failures become tool errors.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
