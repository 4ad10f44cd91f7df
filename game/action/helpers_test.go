package action

import (
	"encoding/json"
	"testing"

	"github.com/wricardo/mcp-training/parkserver/game/engine"
)

func testScenario() *engine.ScenarioConfig {
	config := &engine.ScenarioConfig{
		Name:            "action-test",
		Description:     "Park used by action tests",
		Width:           8,
		Height:          8,
		BaseLandHeight:  16,
		WaterHeight:     32,
		StartingCash:    10000,
		LandPrice:       300,
		TreeRemovalCost: 40,
		MaxElements:     256,
		Layout: []string{
			"NNNNNNNN",
			"N......S",
			"N.T.R..S",
			"N.F.W..S",
			"N..H...S",
			"N......S",
			"N......S",
			"NSSSSSSS",
		},
		Legend: map[string]string{
			".": "owned",
			"S": "for_sale",
			"N": "not_owned",
			"W": "water",
			"H": "hill",
			"T": "tree",
			"R": "rock",
			"F": "footpath",
		},
	}
	config.Messages.Welcome = "welcome"
	return config
}

// newTestPark returns a park with a maze (ride 0) and a car ride (ride 1)
func newTestPark(t *testing.T) *engine.ParkState {
	t.Helper()
	ps := engine.InitParkStateFromConfig(testScenario())
	for _, rt := range []engine.RideType{engine.RideTypeMaze, engine.RideTypeCarRide} {
		if res := Execute(ps, NewRideCreate(rt, "")); !res.OK() {
			t.Fatalf("Failed to create %s ride: %+v", rt, res)
		}
	}
	return ps
}

// tileLoc converts a tile to a world location at height z
func tileLoc(x, y, z int) engine.Location {
	return engine.Location{X: x * engine.CoordsXYStep, Y: y * engine.CoordsXYStep, Z: z}
}

func snapshot(t *testing.T, ps *engine.ParkState) string {
	t.Helper()
	data, err := json.Marshal(ps)
	if err != nil {
		t.Fatalf("Failed to snapshot park: %v", err)
	}
	return string(data)
}

func withFlags(a GameAction, flags Flags) GameAction {
	a.GetHeader().Flags = flags
	return a
}
