package engine

import "fmt"

// InBounds reports whether a tile lies on the map
func (ps *ParkState) InBounds(pos Position) bool {
	return pos.Y >= 0 && pos.Y < len(ps.Tiles) && pos.X >= 0 && pos.X < len(ps.Tiles[pos.Y])
}

// LocationValid reports whether a world location lies on the map
func (ps *ParkState) LocationValid(loc Location) bool {
	return ps.InBounds(loc.Tile())
}

// TileAt returns the tile at pos, or nil when out of bounds
func (ps *ParkState) TileAt(pos Position) *Tile {
	if !ps.InBounds(pos) {
		return nil
	}
	return &ps.Tiles[pos.Y][pos.X]
}

// IsLocationOwned reports whether the park holds the rights to the tile at loc
func (ps *ParkState) IsLocationOwned(loc Location) bool {
	tile := ps.TileAt(loc.Tile())
	if tile == nil {
		return false
	}
	return tile.Surface.Ownership == Owned
}

// GetRide returns the ride with the given id, or nil
func (ps *ParkState) GetRide(id int) *Ride {
	for _, r := range ps.Rides {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// CheckCapacity reports whether n more elements fit in the park budget and on the tile
func (ps *ParkState) CheckCapacity(pos Position, n int) bool {
	if ps.ElementCount+n > ps.MaxElements {
		return false
	}
	tile := ps.TileAt(pos)
	if tile == nil {
		return false
	}
	return len(tile.Elements)+n <= MaxElementsPerTile
}

// InsertElement stacks el on the tile and returns its index
func (ps *ParkState) InsertElement(pos Position, el TileElement) (int, error) {
	tile := ps.TileAt(pos)
	if tile == nil {
		return -1, fmt.Errorf("tile (%d,%d) out of bounds", pos.X, pos.Y)
	}
	if !ps.CheckCapacity(pos, 1) {
		return -1, fmt.Errorf("tile element limit reached")
	}
	tile.Elements = append(tile.Elements, el)
	ps.ElementCount++
	return len(tile.Elements) - 1, nil
}

// RemoveElementAt deletes the element at index i of the tile
func (ps *ParkState) RemoveElementAt(pos Position, i int) {
	tile := ps.TileAt(pos)
	if tile == nil || i < 0 || i >= len(tile.Elements) {
		return
	}
	tile.Elements = append(tile.Elements[:i], tile.Elements[i+1:]...)
	ps.ElementCount--
}

// RemoveElements deletes several elements of one tile; indices may be in any order
func (ps *ParkState) RemoveElements(pos Position, indices []int) {
	sorted := append([]int(nil), indices...)
	// remove from the top of the stack down so earlier indices stay valid
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j] > sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	for _, i := range sorted {
		ps.RemoveElementAt(pos, i)
	}
}

// RemoveWallsAt deletes walls overlapping [baseZ, clearanceZ) and returns how many were removed
func (ps *ParkState) RemoveWallsAt(pos Position, baseZ, clearanceZ int) int {
	tile := ps.TileAt(pos)
	if tile == nil {
		return 0
	}
	var doomed []int
	for i, el := range tile.Elements {
		if el.Type != WallElement {
			continue
		}
		if baseZ >= el.ClearanceZ || clearanceZ <= el.BaseZ {
			continue
		}
		doomed = append(doomed, i)
	}
	ps.RemoveElements(pos, doomed)
	return len(doomed)
}

// FindTrackElement returns the index of the track element of rideID at baseZ, ghost or not
func (ps *ParkState) FindTrackElement(pos Position, baseZ int, rideID int, trackType TrackType) int {
	tile := ps.TileAt(pos)
	if tile == nil {
		return -1
	}
	for i, el := range tile.Elements {
		if el.Type == TrackElement && el.BaseZ == baseZ && el.RideID == rideID && el.TrackType == trackType {
			return i
		}
	}
	return -1
}

// InvalidateTile marks a tile for redraw
func (ps *ParkState) InvalidateTile(pos Position) {
	for _, p := range ps.Invalidated {
		if p == pos {
			return
		}
	}
	ps.Invalidated = append(ps.Invalidated, pos)
}

// DrainInvalidated returns and clears the tiles marked for redraw
func (ps *ParkState) DrainInvalidated() []Position {
	out := ps.Invalidated
	ps.Invalidated = nil
	return out
}

// Pay books an amount against the park's cash under the given category
func (ps *ParkState) Pay(amount Money, expenditure ExpenditureType, description string) {
	ps.Finance.Cash -= amount
	if ps.Finance.Expenditures == nil {
		ps.Finance.Expenditures = make(map[ExpenditureType]Money)
	}
	ps.Finance.Expenditures[expenditure] += amount
	ps.Finance.Ledger = append(ps.Finance.Ledger, LedgerEntry{
		Tick:        ps.Tick,
		Amount:      amount,
		Expenditure: expenditure,
		Description: description,
	})
}

// CountElements counts the elements of the given type across the map
func CountElements(tiles [][]Tile, elementType ElementType) int {
	count := 0
	for _, row := range tiles {
		for _, tile := range row {
			for _, el := range tile.Elements {
				if el.Type == elementType {
					count++
				}
			}
		}
	}
	return count
}

// CountOwnership counts the tiles with the given ownership
func CountOwnership(tiles [][]Tile, ownership Ownership) int {
	count := 0
	for _, row := range tiles {
		for _, tile := range row {
			if tile.Surface.Ownership == ownership {
				count++
			}
		}
	}
	return count
}

// FormatMoney renders an amount in tenths as a decimal string
func FormatMoney(m Money) string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%d.%d0", sign, m/10, m%10)
}

// floorDiv divides rounding toward negative infinity
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
