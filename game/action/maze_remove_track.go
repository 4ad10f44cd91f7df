package action

import (
	"github.com/wricardo/mcp-training/parkserver/game/engine"
	"github.com/wricardo/mcp-training/parkserver/game/i18n"
)

// MazeRemoveTrack removes one tile of maze hedge and refunds its price
type MazeRemoveTrack struct {
	Header `json:"-"`
	Loc    engine.Location `json:"loc"`
	RideID int             `json:"ride_id"`
}

// NewMazeRemoveTrack creates a removal at loc for the given ride
func NewMazeRemoveTrack(loc engine.Location, rideID int) *MazeRemoveTrack {
	return &MazeRemoveTrack{Loc: loc, RideID: rideID}
}

func (a *MazeRemoveTrack) Type() string { return TypeMazeRemoveTrack }

func (a *MazeRemoveTrack) ActionFlags() ActionFlags { return 0 }

func (a *MazeRemoveTrack) Query(ps *engine.ParkState) Result {
	res, _, _ := a.validate(ps)
	return res
}

func (a *MazeRemoveTrack) Execute(ps *engine.ParkState) Result {
	res, ride, index := a.validate(ps)
	if !res.OK() {
		return res
	}

	pos := a.Loc.Tile()
	wasGhost := ps.TileAt(pos).Elements[index].Ghost
	ps.RemoveElementAt(pos, index)

	if !wasGhost {
		ride.MazeTiles--
		if ride.MazeTiles <= 0 {
			ride.MazeTiles = 0
			ride.Station = engine.Station{}
			ride.OverallView = nil
		}
	}

	ps.InvalidateTile(pos)
	return res
}

func (a *MazeRemoveTrack) validate(ps *engine.ParkState) (Result, *engine.Ride, int) {
	res := Result{
		Status:      StatusOK,
		Expenditure: engine.ExpenditureRideConstruction,
		Position:    a.Loc.Add(8, 8, 0),
	}
	fail := func(status Status, message string) (Result, *engine.Ride, int) {
		return res.fail(status, i18n.CantRemoveThisKey, message), nil, -1
	}

	if a.Loc.Z%engine.LandHeightStep != 0 {
		return fail(StatusInvalidParameters, i18n.ConstructionErrUnknownKey)
	}
	if !ps.LocationValid(a.Loc) {
		return fail(StatusInvalidParameters, i18n.OffEdgeOfMapKey)
	}
	if !ps.IsLocationOwned(a.Loc) && !ps.Cheats.SandboxMode {
		return fail(StatusNotOwned, i18n.LandNotOwnedByParkKey)
	}

	ride := ps.GetRide(a.RideID)
	if ride == nil {
		return fail(StatusInvalidParameters, i18n.InvalidSelectionOfObjectsKey)
	}

	index := ps.FindTrackElement(a.Loc.Tile(), a.Loc.Z, a.RideID, engine.TrackMaze)
	if index < 0 {
		return fail(StatusInvalidParameters, i18n.MazeTrackNotFoundKey)
	}

	if !ps.TileAt(a.Loc.Tile()).Elements[index].Ghost {
		res.Cost = -engine.TrackPieceCost(ride.Type, engine.TrackMaze)
	}
	return res, ride, index
}
