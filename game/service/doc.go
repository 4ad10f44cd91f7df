// Package service provides the business logic layer of the park server.
//
// Every transport (REST, WebSocket, MCP) goes through GameService. It owns:
//   - Multi-session park management
//   - Scenario listing, loading and saving
//   - Running actions through the query/execute pipeline
//   - The per-session tick clock and its queue of submitted actions
//   - Paginated action history
//   - The optional action journal and its replay check
//
// Core Interfaces:
//
// GameService is the facade the transports use. SessionManager stores
// sessions, ConfigManager loads scenarios and Journal records executed
// actions. A nil Journal disables journaling.
//
// Actions:
//
// ExecuteAction runs an action at once on the session's current tick.
// SubmitAction queues it; it runs the next time the clock advances, either
// through AdvanceTicks or the server's TickAll loop. Queued actions run in
// (tick, arrival) order, so replaying the journal rebuilds the same park.
// Failed actions come back as results, not errors. Errors are reserved for
// unknown sessions, bad tick counts and infrastructure problems.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "starter")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	out, err := gameService.ExecuteAction(ctx, info.ID, action.NewRideCreate(engine.RideTypeMaze, ""))
package service
