package action

import (
	"testing"

	"github.com/wricardo/mcp-training/parkserver/game/engine"
	"github.com/wricardo/mcp-training/parkserver/game/i18n"
)

func TestMazeRemoveTrack(t *testing.T) {
	ps := newTestPark(t)
	loc := tileLoc(1, 1, 16)
	if res := Execute(ps, NewMazePlaceTrack(loc, 0, 0)); !res.OK() {
		t.Fatalf("Setup placement failed: %+v", res)
	}
	cash := ps.Finance.Cash
	ps.DrainInvalidated()

	res := Query(ps, NewMazeRemoveTrack(loc, 0))
	if !res.OK() || res.Cost != -130 {
		t.Fatalf("Expected refund of 130, got %+v", res)
	}

	res = Execute(ps, NewMazeRemoveTrack(loc, 0))
	if !res.OK() {
		t.Fatalf("Expected removal to succeed, got %+v", res)
	}
	if len(ps.TileAt(engine.Position{X: 1, Y: 1}).Elements) != 0 {
		t.Error("Expected maze element removed")
	}
	if ps.Finance.Cash != cash+130 {
		t.Errorf("Expected refund to cash, got %d want %d", ps.Finance.Cash, cash+130)
	}
	ride := ps.GetRide(0)
	if ride.MazeTiles != 0 || ride.Station.Set || ride.OverallView != nil {
		t.Errorf("Expected ride reset after last tile removed, got %+v", ride)
	}
	if len(ps.DrainInvalidated()) != 1 {
		t.Error("Expected removal to invalidate the tile")
	}

	res = Query(ps, NewMazeRemoveTrack(loc, 0))
	if res.Status != StatusInvalidParameters || res.ErrorMessage != i18n.MazeTrackNotFoundKey {
		t.Errorf("Expected missing maze to be reported, got %+v", res)
	}
}

func TestMazeRemoveTrackValidation(t *testing.T) {
	tests := []struct {
		name        string
		a           *MazeRemoveTrack
		wantStatus  Status
		wantMessage string
	}{
		{"misaligned", NewMazeRemoveTrack(tileLoc(1, 1, 20), 0), StatusInvalidParameters, i18n.ConstructionErrUnknownKey},
		{"off map", NewMazeRemoveTrack(tileLoc(20, 1, 16), 0), StatusInvalidParameters, i18n.OffEdgeOfMapKey},
		{"not owned", NewMazeRemoveTrack(tileLoc(0, 0, 16), 0), StatusNotOwned, i18n.LandNotOwnedByParkKey},
		{"missing ride", NewMazeRemoveTrack(tileLoc(1, 1, 16), 42), StatusInvalidParameters, i18n.InvalidSelectionOfObjectsKey},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ps := newTestPark(t)
			res := test.a.Query(ps)
			if res.Status != test.wantStatus || res.ErrorMessage != test.wantMessage {
				t.Errorf("Expected %s/%s, got %s/%s", test.wantStatus, test.wantMessage, res.Status, res.ErrorMessage)
			}
			if res.ErrorTitle != i18n.CantRemoveThisKey {
				t.Errorf("Expected removal title, got %q", res.ErrorTitle)
			}
		})
	}
}

func TestMazeRemoveGhostIsFree(t *testing.T) {
	ps := newTestPark(t)
	loc := tileLoc(1, 1, 16)
	Execute(ps, withFlags(NewMazePlaceTrack(loc, 0, 0), FlagGhost))

	res := Execute(ps, withFlags(NewMazeRemoveTrack(loc, 0), FlagGhost))
	if !res.OK() || res.Cost != 0 {
		t.Errorf("Expected free ghost removal, got %+v", res)
	}
	if ps.GetRide(0).MazeTiles != 0 {
		t.Error("Expected ghost removal not to touch maze tiles")
	}
}

func TestRideCreate(t *testing.T) {
	ps := engine.InitParkStateFromConfig(testScenario())

	q := Query(ps, NewRideCreate(engine.RideTypeMaze, "Hedges"))
	if !q.OK() || q.Data["ride_id"] != 0 {
		t.Fatalf("Expected ride id 0 predicted, got %+v", q)
	}

	res := Execute(ps, NewRideCreate(engine.RideTypeMaze, "Hedges"))
	if !res.OK() || res.Data["ride_id"] != 0 {
		t.Fatalf("Expected ride id 0, got %+v", res)
	}
	res = Execute(ps, NewRideCreate(engine.RideTypeGhostTrain, ""))
	if res.Data["ride_id"] != 1 {
		t.Fatalf("Expected ride id 1, got %+v", res)
	}

	if ps.GetRide(0).Name != "Hedges" {
		t.Errorf("Expected given name, got %q", ps.GetRide(0).Name)
	}
	if ps.GetRide(1).Name != "Ghost Train 2" {
		t.Errorf("Expected default name, got %q", ps.GetRide(1).Name)
	}
	if ps.NextRideID != 2 {
		t.Errorf("Expected next ride id 2, got %d", ps.NextRideID)
	}

	bad := Query(ps, NewRideCreate("teacups", ""))
	if bad.Status != StatusInvalidParameters || bad.ErrorMessage != i18n.InvalidRideTypeKey {
		t.Errorf("Expected invalid ride type, got %+v", bad)
	}

	ps.NextRideID = engine.MaxRides
	full := Query(ps, NewRideCreate(engine.RideTypeMaze, ""))
	if full.Status != StatusDisallowed || full.ErrorMessage != i18n.TooManyRidesKey {
		t.Errorf("Expected ride limit, got %+v", full)
	}
}

func TestLandBuyRights(t *testing.T) {
	ps := newTestPark(t)
	cash := ps.Finance.Cash
	pos := engine.Position{X: 7, Y: 1}

	res := Execute(ps, NewLandBuyRights(pos))
	if !res.OK() || res.Cost != 300 || res.Expenditure != engine.ExpenditureLandPurchase {
		t.Fatalf("Expected land purchase of 300, got %+v", res)
	}
	if ps.TileAt(pos).Surface.Ownership != engine.Owned {
		t.Error("Expected tile to be owned")
	}
	if ps.Finance.Cash != cash-300 {
		t.Errorf("Expected cash %d, got %d", cash-300, ps.Finance.Cash)
	}
	if res.Position != (engine.Location{X: 7*32 + 16, Y: 48, Z: 16}) {
		t.Errorf("Unexpected position %+v", res.Position)
	}

	// Bought land can be built on
	if res := Query(ps, NewMazePlaceTrack(tileLoc(7, 1, 16), 0, 0)); !res.OK() {
		t.Errorf("Expected maze on bought land, got %+v", res)
	}

	tests := []struct {
		name    string
		pos     engine.Position
		message string
	}{
		{"already owned", pos, i18n.LandAlreadyOwnedKey},
		{"not for sale", engine.Position{X: 0, Y: 0}, i18n.LandNotForSaleKey},
		{"off map", engine.Position{X: 8, Y: 0}, i18n.OffEdgeOfMapKey},
	}
	for _, test := range tests {
		res := Query(ps, NewLandBuyRights(test.pos))
		if res.OK() || res.ErrorMessage != test.message {
			t.Errorf("%s: expected %q, got %+v", test.name, test.message, res)
		}
	}
}

func TestPauseToggle(t *testing.T) {
	ps := newTestPark(t)

	if res := Execute(ps, NewPauseToggle()); !res.OK() || !ps.Paused {
		t.Fatalf("Expected park paused, got %+v", res)
	}
	if res := Execute(ps, NewPauseToggle()); !res.OK() || ps.Paused {
		t.Fatalf("Expected park resumed while paused, got %+v", res)
	}
}

func TestCheatSet(t *testing.T) {
	ps := newTestPark(t)

	for _, name := range CheatNames() {
		if res := Execute(ps, NewCheatSet(name, true)); !res.OK() {
			t.Errorf("Expected cheat %s to be set, got %+v", name, res)
		}
	}
	want := engine.Cheats{
		SandboxMode:            true,
		DisableClearanceChecks: true,
		DisableSupportLimits:   true,
		BuildInPauseMode:       true,
		NoMoney:                true,
	}
	if ps.Cheats != want {
		t.Errorf("Expected all cheats on, got %+v", ps.Cheats)
	}

	Execute(ps, NewCheatSet("no_money", false))
	if ps.Cheats.NoMoney {
		t.Error("Expected no_money to be turned off")
	}

	res := Query(ps, NewCheatSet("infinite_guests", true))
	if res.Status != StatusInvalidParameters || res.ErrorMessage != i18n.UnknownCheatKey {
		t.Errorf("Expected unknown cheat, got %+v", res)
	}
}
