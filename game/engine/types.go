package engine

// ElementType identifies what occupies part of a tile above its surface
type ElementType string

const (
	TrackElement   ElementType = "track"
	PathElement    ElementType = "path"
	WallElement    ElementType = "wall"
	SceneryElement ElementType = "scenery"
)

// Ownership describes who holds the rights to a tile
type Ownership string

const (
	Owned    Ownership = "owned"
	ForSale  Ownership = "for_sale"
	NotOwned Ownership = "not_owned"
)

// RideType names a ride family. Only the numeric traits the actions need are modeled.
type RideType string

const (
	RideTypeMaze       RideType = "maze"
	RideTypeCarRide    RideType = "car_ride"
	RideTypeMiniGolf   RideType = "mini_golf"
	RideTypeGhostTrain RideType = "ghost_train"
)

// TrackType identifies a track piece
type TrackType string

const (
	TrackMaze TrackType = "maze"
)

// ExpenditureType is the ledger category an action's cost is booked under
type ExpenditureType string

const (
	ExpenditureRideConstruction ExpenditureType = "ride_construction"
	ExpenditureLandPurchase     ExpenditureType = "land_purchase"
)

// Money is an amount in tenths of the park currency
type Money int64

const (
	// World coordinate steps
	CoordsXYStep    = 32
	CoordsZStep     = 8
	LandHeightStep  = 2 * CoordsZStep
	CoordsZPerTinyZ = 16

	MazeClearanceHeight = 4 * CoordsZStep
	MinTrackHeight      = 2 * CoordsZStep
	MaxTrackHeight      = 254 * CoordsZStep

	// Validation constants
	MinMapSize          = 4
	MaxMapSize          = 256
	MaxRides            = 255
	MaxElementsPerTile  = 64
	MaxHistoryPage      = 100
	WebSocketBufferSize = 256

	// AllQuadrants is the quarter-tile occupancy mask of a full tile
	AllQuadrants uint8 = 0b1111
)

// Position is a tile coordinate
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Location is a world coordinate; X and Y are in world units, not tiles
type Location struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Tile returns the tile containing the location
func (l Location) Tile() Position {
	return Position{X: floorDiv(l.X, CoordsXYStep), Y: floorDiv(l.Y, CoordsXYStep)}
}

// ToTileStart snaps the location to the corner of its tile
func (l Location) ToTileStart() Location {
	t := l.Tile()
	return Location{X: t.X * CoordsXYStep, Y: t.Y * CoordsXYStep, Z: l.Z}
}

// Add offsets a location
func (l Location) Add(dx, dy, dz int) Location {
	return Location{X: l.X + dx, Y: l.Y + dy, Z: l.Z + dz}
}

// Surface is the land at the bottom of every tile
type Surface struct {
	BaseZ       int       `json:"base_z"`
	WaterHeight int       `json:"water_height,omitempty"`
	Ownership   Ownership `json:"ownership"`
}

// TileElement is anything placed on a tile above its surface
type TileElement struct {
	Type       ElementType `json:"type"`
	BaseZ      int         `json:"base_z"`
	ClearanceZ int         `json:"clearance_z"`
	Quadrants  uint8       `json:"quadrants"`
	Ghost      bool        `json:"ghost,omitempty"`

	// Track
	RideID    int       `json:"ride_id,omitempty"`
	TrackType TrackType `json:"track_type,omitempty"`
	RideType  RideType  `json:"ride_type,omitempty"`
	MazeEntry uint16    `json:"maze_entry,omitempty"`

	// Scenery
	Name        string `json:"name,omitempty"`
	Removable   bool   `json:"removable,omitempty"`
	RemovalCost Money  `json:"removal_cost,omitempty"`
}

// Tile is one map square: a surface plus the elements stacked on it
type Tile struct {
	Surface  Surface       `json:"surface"`
	Elements []TileElement `json:"elements,omitempty"`
}

// Station records where a ride loads guests
type Station struct {
	BaseZ int      `json:"base_z"`
	Start Position `json:"start"`
	Set   bool     `json:"set"`
}

// Ride is a ride instance in the park
type Ride struct {
	ID          int       `json:"id"`
	Type        RideType  `json:"type"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	MazeTiles   int       `json:"maze_tiles"`
	Station     Station   `json:"station"`
	OverallView *Position `json:"overall_view,omitempty"`
}

// LedgerEntry is a single booked payment
type LedgerEntry struct {
	Tick        uint32          `json:"tick"`
	Amount      Money           `json:"amount"`
	Expenditure ExpenditureType `json:"expenditure"`
	Description string          `json:"description"`
}

// Finance tracks park cash and spending per category
type Finance struct {
	Cash         Money                     `json:"cash"`
	Expenditures map[ExpenditureType]Money `json:"expenditures"`
	Ledger       []LedgerEntry             `json:"ledger"`
}

// Cheats relax construction rules
type Cheats struct {
	SandboxMode            bool `json:"sandbox_mode"`
	DisableClearanceChecks bool `json:"disable_clearance_checks"`
	DisableSupportLimits   bool `json:"disable_support_limits"`
	BuildInPauseMode       bool `json:"build_in_pause_mode"`
	NoMoney                bool `json:"no_money"`
}

// ActionHistoryEntry records one action that went through the execute pipeline
type ActionHistoryEntry struct {
	ActionID     string          `json:"action_id"`
	ActionType   string          `json:"action_type"`
	Player       string          `json:"player,omitempty"`
	Status       string          `json:"status"`
	Cost         Money           `json:"cost"`
	Expenditure  ExpenditureType `json:"expenditure,omitempty"`
	Position     Location        `json:"position"`
	Tick         uint32          `json:"tick"`
	ActionNumber int             `json:"action_number"`
}

// ParkState represents the complete authoritative park state
type ParkState struct {
	Name         string   `json:"name"`
	ConfigName   string   `json:"config_name"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	Tiles        [][]Tile `json:"tiles"`
	Rides        []*Ride  `json:"rides"`
	NextRideID   int      `json:"next_ride_id"`
	Finance      Finance  `json:"finance"`
	LandPrice    Money    `json:"land_price"`
	Cheats       Cheats   `json:"cheats"`
	Paused       bool     `json:"paused"`
	Tick         uint32   `json:"tick"`
	ElementCount int      `json:"element_count"`
	MaxElements  int      `json:"max_elements"`
	Message      string   `json:"message"`

	// Invalidated holds tiles touched since the last drain, for client redraw
	Invalidated []Position `json:"invalidated,omitempty"`

	ActionHistory []ActionHistoryEntry `json:"action_history"`
	TotalActions  int                  `json:"total_actions"`
}
