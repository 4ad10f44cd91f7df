package main

import (
	"fmt"
	"io"

	"github.com/wricardo/mcp-training/parkserver/game/engine"
)

// Analysis summarizes what a scenario offers a player at tick zero
type Analysis struct {
	Name           string
	Width          int
	Height         int
	Owned          int
	ForSale        int
	NotOwned       int
	Water          int
	Scenery        int
	Paths          int
	FreeTiles      int
	Cash           engine.Money
	LandCost       engine.Money
	MazePiece      engine.Money
	AffordableMaze int
}

// analyzeScenario builds the starting park and measures it
func analyzeScenario(config *engine.ScenarioConfig) Analysis {
	ps := engine.InitParkStateFromConfig(config)

	a := Analysis{
		Name:      config.Name,
		Width:     ps.Width,
		Height:    ps.Height,
		Owned:     engine.CountOwnership(ps.Tiles, engine.Owned),
		ForSale:   engine.CountOwnership(ps.Tiles, engine.ForSale),
		NotOwned:  engine.CountOwnership(ps.Tiles, engine.NotOwned),
		Scenery:   engine.CountElements(ps.Tiles, engine.SceneryElement),
		Paths:     engine.CountElements(ps.Tiles, engine.PathElement),
		Cash:      ps.Finance.Cash,
		MazePiece: engine.TrackPieceCost(engine.RideTypeMaze, engine.TrackMaze),
	}
	a.LandCost = engine.Money(a.ForSale) * ps.LandPrice

	for _, row := range ps.Tiles {
		for _, tile := range row {
			if tile.Surface.WaterHeight > tile.Surface.BaseZ {
				a.Water++
				continue
			}
			if tile.Surface.Ownership == engine.Owned && len(tile.Elements) == 0 {
				a.FreeTiles++
			}
		}
	}

	a.AffordableMaze = a.FreeTiles
	if a.MazePiece > 0 {
		if n := int(a.Cash / a.MazePiece); n < a.AffordableMaze {
			a.AffordableMaze = n
		}
	}
	return a
}

// printAnalysis writes a human-readable report
func printAnalysis(w io.Writer, a Analysis) {
	fmt.Fprintf(w, "Name: %s\n", a.Name)
	fmt.Fprintf(w, "Map: %d x %d\n", a.Width, a.Height)
	fmt.Fprintf(w, "Owned: %d, For sale: %d, Not owned: %d\n", a.Owned, a.ForSale, a.NotOwned)
	fmt.Fprintf(w, "Water: %d, Scenery: %d, Paths: %d\n", a.Water, a.Scenery, a.Paths)
	fmt.Fprintf(w, "Starting cash: %s\n", engine.FormatMoney(a.Cash))
	fmt.Fprintf(w, "Buying all land: %s\n", engine.FormatMoney(a.LandCost))

	if a.LandCost > a.Cash {
		fmt.Fprintf(w, "⚠️  Not all land is affordable at the start (short %s)\n", engine.FormatMoney(a.LandCost-a.Cash))
	} else {
		fmt.Fprintf(w, "✅ All land for sale is affordable at the start\n")
	}

	fmt.Fprintf(w, "Free owned tiles: %d\n", a.FreeTiles)
	fmt.Fprintf(w, "Maze tiles affordable now: %d (at %s each)\n", a.AffordableMaze, engine.FormatMoney(a.MazePiece))
	if a.AffordableMaze == 0 {
		fmt.Fprintf(w, "⚠️  CRITICAL: No maze tile can be built at the start\n")
	}
}
