package engine

// Ground flags reported by a clearance check
const (
	ElementIsAboveGround uint8 = 1 << iota
	ElementIsUnderwater
	ElementIsUnderground
)

// ObstructionKind says what stopped a clearance check
type ObstructionKind int

const (
	ObstructionNone ObstructionKind = iota
	ObstructionOutOfBounds
	ObstructionLand
	ObstructionElement
)

// Obstruction describes what is in the way of a construction
type Obstruction struct {
	Kind    ObstructionKind
	Element *TileElement
}

// ClearanceResult is the outcome of a successful clearance check
type ClearanceResult struct {
	GroundFlags uint8
	// Cost of removing scenery that the construction clears
	Cost Money
	// Removals are indices of tile elements the construction would clear
	Removals []int
}

// CanConstructWithClearAt checks that [baseZ, clearanceZ) over the given quadrants
// of a tile is free. Removable scenery is collected for clearing unless ghost is set.
// It never modifies the park.
func (ps *ParkState) CanConstructWithClearAt(pos Position, baseZ, clearanceZ int, quadrants uint8, ghost bool) (ClearanceResult, *Obstruction) {
	var res ClearanceResult
	tile := ps.TileAt(pos)
	if tile == nil {
		return res, &Obstruction{Kind: ObstructionOutOfBounds}
	}

	checkElements := !ps.Cheats.DisableClearanceChecks || ghost
	if checkElements {
		for i := range tile.Elements {
			el := &tile.Elements[i]
			if el.Ghost {
				continue
			}
			if el.Quadrants&quadrants == 0 {
				continue
			}
			if baseZ >= el.ClearanceZ || clearanceZ <= el.BaseZ {
				continue
			}
			if el.Type == SceneryElement && el.Removable && !ghost {
				res.Cost += el.RemovalCost
				res.Removals = append(res.Removals, i)
				continue
			}
			found := *el
			return ClearanceResult{}, &Obstruction{Kind: ObstructionElement, Element: &found}
		}
	}

	surface := tile.Surface
	switch {
	case clearanceZ <= surface.BaseZ:
		res.GroundFlags |= ElementIsUnderground
	case baseZ < surface.BaseZ:
		if !ps.Cheats.DisableClearanceChecks {
			return ClearanceResult{}, &Obstruction{Kind: ObstructionLand}
		}
		res.GroundFlags |= ElementIsAboveGround
	default:
		res.GroundFlags |= ElementIsAboveGround
	}
	if surface.WaterHeight > 0 && baseZ < surface.WaterHeight && res.GroundFlags&ElementIsUnderground == 0 {
		res.GroundFlags |= ElementIsUnderwater
	}

	return res, nil
}
