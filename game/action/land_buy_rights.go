package action

import (
	"github.com/wricardo/mcp-training/parkserver/game/engine"
	"github.com/wricardo/mcp-training/parkserver/game/i18n"
)

// LandBuyRights buys a tile of land that is for sale
type LandBuyRights struct {
	Header `json:"-"`
	Pos    engine.Position `json:"pos"`
}

// NewLandBuyRights creates a purchase of the tile at pos
func NewLandBuyRights(pos engine.Position) *LandBuyRights {
	return &LandBuyRights{Pos: pos}
}

func (a *LandBuyRights) Type() string { return TypeLandBuyRights }

func (a *LandBuyRights) ActionFlags() ActionFlags { return 0 }

func (a *LandBuyRights) Query(ps *engine.ParkState) Result {
	res := Result{
		Status:      StatusOK,
		Expenditure: engine.ExpenditureLandPurchase,
	}

	tile := ps.TileAt(a.Pos)
	if tile == nil {
		return res.fail(StatusInvalidParameters, i18n.CantBuyLandKey, i18n.OffEdgeOfMapKey)
	}
	res.Position = engine.Location{
		X: a.Pos.X*engine.CoordsXYStep + engine.CoordsXYStep/2,
		Y: a.Pos.Y*engine.CoordsXYStep + engine.CoordsXYStep/2,
		Z: tile.Surface.BaseZ,
	}

	switch tile.Surface.Ownership {
	case engine.Owned:
		return res.fail(StatusDisallowed, i18n.CantBuyLandKey, i18n.LandAlreadyOwnedKey)
	case engine.ForSale:
	default:
		return res.fail(StatusDisallowed, i18n.CantBuyLandKey, i18n.LandNotForSaleKey)
	}

	res.Cost = ps.LandPrice
	return res
}

func (a *LandBuyRights) Execute(ps *engine.ParkState) Result {
	res := a.Query(ps)
	if !res.OK() {
		return res
	}
	ps.TileAt(a.Pos).Surface.Ownership = engine.Owned
	ps.InvalidateTile(a.Pos)
	return res
}
