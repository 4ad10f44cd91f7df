// Package config provides scenario management for the park server.
//
// Scenarios are JSON files in a configs directory. Each one describes the
// starting park:
//   - Map size and a character layout (. owned, S for sale, N not owned,
//     W water, H hill, T tree, R rock, F footpath)
//   - Base land and water heights
//   - Starting cash, land price and tree removal cost
//   - The park-wide element budget
//   - A welcome message
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	scenario, err := manager.LoadConfig("lakeside")
//	defaultScenario := manager.GetDefault()
//	scenarios, err := manager.ListConfigs()
//
// The default scenario is starter.json when present, then the first valid
// file in the directory, then the built-in engine.DefaultScenarioConfig.
package config
