// Package engine provides the park world model.
//
// The engine package implements:
//   - A tile map where every tile has a land surface and a stack of elements
//   - Rides, finance and construction cheats
//   - Clearance checks used by construction actions
//   - Scenario loading and validation
//
// Core Types:
//
// ParkState is the authoritative state of one park. ParkEngine wraps it
// together with the ScenarioConfig it was built from. World coordinates are
// in units of 1/32 of a tile horizontally and 1/8 of a height step
// vertically; Location.Tile converts to tile coordinates.
//
// Usage:
//
//	config, err := engine.LoadScenarioConfig("configs/starter.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	parkEngine, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	state := parkEngine.GetState()
//	res, obstruction := state.CanConstructWithClearAt(engine.Position{X: 3, Y: 3}, 16, 48, engine.AllQuadrants, false)
//
// The engine never decides whether an action is allowed; that is the job
// of the action package, which reads and mutates ParkState.
package engine
