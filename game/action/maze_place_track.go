package action

import (
	"github.com/wricardo/mcp-training/parkserver/game/engine"
	"github.com/wricardo/mcp-training/parkserver/game/i18n"
)

// MazePlaceTrack places one tile of maze hedge for a maze ride
type MazePlaceTrack struct {
	Header    `json:"-"`
	Loc       engine.Location `json:"loc"`
	RideID    int             `json:"ride_id"`
	MazeEntry uint16          `json:"maze_entry"`
}

// NewMazePlaceTrack creates a placement at loc for the given ride
func NewMazePlaceTrack(loc engine.Location, rideID int, mazeEntry uint16) *MazePlaceTrack {
	return &MazePlaceTrack{Loc: loc, RideID: rideID, MazeEntry: mazeEntry}
}

func (a *MazePlaceTrack) Type() string { return TypeMazePlaceTrack }

func (a *MazePlaceTrack) ActionFlags() ActionFlags { return 0 }

// mazePlacement is what validation learns and execution needs
type mazePlacement struct {
	pos        engine.Position
	ride       *engine.Ride
	clearanceZ int
	clearance  engine.ClearanceResult
}

func (a *MazePlaceTrack) Query(ps *engine.ParkState) Result {
	res, _ := a.validate(ps)
	return res
}

func (a *MazePlaceTrack) Execute(ps *engine.ParkState) Result {
	res, p := a.validate(ps)
	if !res.OK() {
		return res
	}

	ghost := isGhost(a)
	if !ghost {
		ps.RemoveElements(p.pos, p.clearance.Removals)
		ps.RemoveWallsAt(p.pos, a.Loc.Z, p.clearanceZ)
	}

	_, err := ps.InsertElement(p.pos, engine.TileElement{
		Type:       engine.TrackElement,
		BaseZ:      a.Loc.Z,
		ClearanceZ: p.clearanceZ,
		Quadrants:  engine.AllQuadrants,
		Ghost:      ghost,
		RideID:     p.ride.ID,
		TrackType:  engine.TrackMaze,
		RideType:   p.ride.Type,
		MazeEntry:  a.MazeEntry,
	})
	if err != nil {
		return res.fail(StatusUnknown, i18n.CantConstructThisHereKey, i18n.ConstructionErrUnknownKey)
	}

	if !ghost {
		p.ride.MazeTiles++
		p.ride.Station.BaseZ = a.Loc.Z
		if !p.ride.Station.Set {
			p.ride.Station.Start = p.pos
			p.ride.Station.Set = true
		}
		if p.ride.OverallView == nil {
			view := p.pos
			p.ride.OverallView = &view
		}
	}

	ps.InvalidateTile(p.pos)
	return res
}

func (a *MazePlaceTrack) validate(ps *engine.ParkState) (Result, mazePlacement) {
	var p mazePlacement
	res := Result{
		Status:      StatusOK,
		Expenditure: engine.ExpenditureRideConstruction,
		Position:    a.Loc.Add(8, 8, 0),
	}
	fail := func(status Status, message string) (Result, mazePlacement) {
		return res.fail(status, i18n.CantConstructThisHereKey, message), p
	}

	if a.Loc.Z%engine.LandHeightStep != 0 {
		return fail(StatusInvalidParameters, i18n.ConstructionErrUnknownKey)
	}
	if a.Loc.Z < engine.MinTrackHeight {
		return fail(StatusTooLow, i18n.TooLowKey)
	}
	if a.Loc.Z+engine.MazeClearanceHeight > engine.MaxTrackHeight {
		return fail(StatusTooHigh, i18n.TooHighKey)
	}
	if !ps.LocationValid(a.Loc) || (!ps.IsLocationOwned(a.Loc) && !ps.Cheats.SandboxMode) {
		return fail(StatusNotOwned, i18n.LandNotOwnedByParkKey)
	}

	p.pos = a.Loc.Tile()
	if !ps.CheckCapacity(p.pos, 1) {
		return fail(StatusNoFreeElements, i18n.TileElementLimitReachedKey)
	}

	// The ride is needed for the support limit; otherwise it is only
	// checked once the tile is known to be buildable
	surface := ps.TileAt(p.pos).Surface
	if heightDifference := a.Loc.Z - surface.BaseZ; heightDifference >= 0 && !ps.Cheats.DisableSupportLimits {
		desc, ok := mazeRide(ps, a.RideID, &p)
		if !ok {
			return fail(StatusInvalidParameters, i18n.InvalidSelectionOfObjectsKey)
		}
		if heightDifference/engine.CoordsZPerTinyZ > desc.MaxHeight {
			return fail(StatusTooHigh, i18n.TooHighForSupportsKey)
		}
	}

	p.clearanceZ = a.Loc.Z + engine.MazeClearanceHeight
	clearance, obstruction := ps.CanConstructWithClearAt(p.pos, a.Loc.Z, p.clearanceZ, engine.AllQuadrants, isGhost(a))
	if obstruction != nil {
		return fail(StatusNoClearance, obstructionKey(obstruction))
	}
	if clearance.GroundFlags&engine.ElementIsUnderwater != 0 {
		return fail(StatusNoClearance, i18n.RideCantBuildThisUnderwaterKey)
	}
	if clearance.GroundFlags&engine.ElementIsUnderground != 0 {
		return fail(StatusNoClearance, i18n.CanOnlyBuildAboveGroundKey)
	}
	p.clearance = clearance

	if p.ride == nil {
		if _, ok := mazeRide(ps, a.RideID, &p); !ok {
			return fail(StatusInvalidParameters, i18n.InvalidSelectionOfObjectsKey)
		}
	}

	res.Cost = clearance.Cost + engine.TrackPieceCost(p.ride.Type, engine.TrackMaze)
	return res, p
}

// mazeRide looks up a ride that can hold maze track and stores it in p
func mazeRide(ps *engine.ParkState, rideID int, p *mazePlacement) (engine.RideTypeDescriptor, bool) {
	ride := ps.GetRide(rideID)
	if ride == nil {
		return engine.RideTypeDescriptor{}, false
	}
	desc, ok := engine.GetRideTypeDescriptor(ride.Type)
	if !ok || !desc.IsMaze {
		return desc, false
	}
	p.ride = ride
	return desc, true
}

// obstructionKey names what is in the way
func obstructionKey(o *engine.Obstruction) string {
	switch o.Kind {
	case engine.ObstructionLand:
		return i18n.RaiseOrLowerLandFirstKey
	case engine.ObstructionOutOfBounds:
		return i18n.OffEdgeOfMapKey
	}
	if o.Element == nil {
		return i18n.ObjectInTheWayKey
	}
	switch o.Element.Type {
	case engine.PathElement:
		return i18n.FootpathInTheWayKey
	case engine.SceneryElement:
		return i18n.SceneryInTheWayKey
	case engine.TrackElement:
		return i18n.RideInTheWayKey
	case engine.WallElement:
		return i18n.WallInTheWayKey
	}
	return i18n.ObjectInTheWayKey
}
