package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ScenarioConfig describes a starting park loaded from JSON
type ScenarioConfig struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Width           int               `json:"width"`
	Height          int               `json:"height"`
	BaseLandHeight  int               `json:"base_land_height"`
	WaterHeight     int               `json:"water_height"`
	StartingCash    Money             `json:"starting_cash"`
	LandPrice       Money             `json:"land_price"`
	TreeRemovalCost Money             `json:"tree_removal_cost"`
	MaxElements     int               `json:"max_elements"`
	Layout          []string          `json:"layout"`
	Legend          map[string]string `json:"legend"`
	Messages        struct {
		Welcome string `json:"welcome"`
	} `json:"messages"`
}

// legendMeanings is what each layout character must be declared as in the legend
var legendMeanings = map[rune]string{
	'.': "owned",
	'S': "for_sale",
	'N': "not_owned",
	'W': "water",
	'H': "hill",
	'T': "tree",
	'R': "rock",
	'F': "footpath",
}

// ValidateScenarioConfig validates a scenario for correctness
func ValidateScenarioConfig(config *ScenarioConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.Width < MinMapSize || config.Width > MaxMapSize {
		return fmt.Errorf("config validation: width must be between %d and %d, got %d", MinMapSize, MaxMapSize, config.Width)
	}
	if config.Height < MinMapSize || config.Height > MaxMapSize {
		return fmt.Errorf("config validation: height must be between %d and %d, got %d", MinMapSize, MaxMapSize, config.Height)
	}

	if config.BaseLandHeight < 0 || config.BaseLandHeight%LandHeightStep != 0 {
		return fmt.Errorf("config validation: base_land_height must be a non-negative multiple of %d, got %d", LandHeightStep, config.BaseLandHeight)
	}
	if config.StartingCash < 0 {
		return fmt.Errorf("config validation: starting_cash must not be negative, got %d", config.StartingCash)
	}
	if config.LandPrice < 0 {
		return fmt.Errorf("config validation: land_price must not be negative, got %d", config.LandPrice)
	}
	if config.TreeRemovalCost < 0 {
		return fmt.Errorf("config validation: tree_removal_cost must not be negative, got %d", config.TreeRemovalCost)
	}
	if config.MaxElements < config.Width*config.Height {
		return fmt.Errorf("config validation: max_elements must be at least the tile count (%d), got %d",
			config.Width*config.Height, config.MaxElements)
	}

	if len(config.Layout) != config.Height {
		return fmt.Errorf("config validation: layout must have %d rows to match height, got %d",
			config.Height, len(config.Layout))
	}

	used := make(map[rune]bool)
	for i, row := range config.Layout {
		if len(row) != config.Width {
			return fmt.Errorf("config validation: row %d must have %d characters to match width, got %d",
				i+1, config.Width, len(row))
		}
		for j, char := range row {
			if _, ok := legendMeanings[char]; !ok {
				return fmt.Errorf("config validation: invalid character '%c' at row %d, col %d", char, i+1, j+1)
			}
			used[char] = true
		}
	}

	for char := range used {
		expected := legendMeanings[char]
		if value, ok := config.Legend[string(char)]; !ok || value != expected {
			return fmt.Errorf("config validation: legend['%c'] must be '%s', got '%s'", char, expected, value)
		}
	}

	if used['W'] && config.WaterHeight <= config.BaseLandHeight {
		return fmt.Errorf("config validation: water_height must be above base_land_height (%d) when the layout has water, got %d",
			config.BaseLandHeight, config.WaterHeight)
	}

	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}

	return nil
}

// LoadScenarioConfig loads a scenario from a JSON file
func LoadScenarioConfig(filename string) (*ScenarioConfig, error) {
	// CONFIG_DIR replaces the default configs/ directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	return ParseScenarioConfig(data)
}

// ParseScenarioConfig decodes and validates a scenario
func ParseScenarioConfig(data []byte) (*ScenarioConfig, error) {
	var config ScenarioConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	if err := ValidateScenarioConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// DefaultScenarioConfig returns the built-in scenario used when none is given
func DefaultScenarioConfig() *ScenarioConfig {
	config := &ScenarioConfig{
		Name:            "default",
		Description:     "A small starter park with a pond, a hill and some land for sale",
		Width:           12,
		Height:          12,
		BaseLandHeight:  16,
		WaterHeight:     32,
		StartingCash:    100000,
		LandPrice:       900,
		TreeRemovalCost: 40,
		MaxElements:     1024,
		Layout: []string{
			"NNNNNNNNNNNN",
			"N..........S",
			"N.FFFFFF...S",
			"N.F....T...S",
			"N.F..WW....S",
			"N.F..WW..H.S",
			"N.F......H.S",
			"N.F..T..R..S",
			"N.F........S",
			"N.FFFFFF...S",
			"N..........S",
			"NSSSSSSSSSSS",
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
	config.Messages.Welcome = "Welcome to your park! Build a maze to get started."
	return config
}

// InitParkStateFromConfig creates a new park using the provided scenario
func InitParkStateFromConfig(config *ScenarioConfig) *ParkState {
	if config == nil {
		config = DefaultScenarioConfig()
	}

	tiles := make([][]Tile, config.Height)
	elementCount := 0
	for y := range tiles {
		tiles[y] = make([]Tile, config.Width)
		for x := range tiles[y] {
			var char byte = '.'
			if y < len(config.Layout) && x < len(config.Layout[y]) {
				char = config.Layout[y][x]
			}
			tiles[y][x] = buildTile(char, config)
			elementCount += len(tiles[y][x].Elements)
		}
	}

	return &ParkState{
		Name:       config.Name,
		ConfigName: config.Name,
		Width:      config.Width,
		Height:     config.Height,
		Tiles:      tiles,
		Rides:      []*Ride{},
		NextRideID: 0,
		Finance: Finance{
			Cash:         config.StartingCash,
			Expenditures: make(map[ExpenditureType]Money),
			Ledger:       []LedgerEntry{},
		},
		LandPrice:     config.LandPrice,
		ElementCount:  elementCount,
		MaxElements:   config.MaxElements,
		Message:       config.Messages.Welcome,
		ActionHistory: []ActionHistoryEntry{},
	}
}

func buildTile(char byte, config *ScenarioConfig) Tile {
	base := config.BaseLandHeight
	tile := Tile{Surface: Surface{BaseZ: base, Ownership: Owned}}

	switch char {
	case 'S':
		tile.Surface.Ownership = ForSale
	case 'N':
		tile.Surface.Ownership = NotOwned
	case 'W':
		tile.Surface.WaterHeight = config.WaterHeight
	case 'H':
		tile.Surface.BaseZ = base + 2*LandHeightStep
	case 'T':
		tile.Elements = append(tile.Elements, TileElement{
			Type:        SceneryElement,
			BaseZ:       base,
			ClearanceZ:  base + 8*CoordsZStep,
			Quadrants:   AllQuadrants,
			Name:        "tree",
			Removable:   true,
			RemovalCost: config.TreeRemovalCost,
		})
	case 'R':
		tile.Elements = append(tile.Elements, TileElement{
			Type:       SceneryElement,
			BaseZ:      base,
			ClearanceZ: base + 4*CoordsZStep,
			Quadrants:  AllQuadrants,
			Name:       "rock",
		})
	case 'F':
		tile.Elements = append(tile.Elements, TileElement{
			Type:       PathElement,
			BaseZ:      base,
			ClearanceZ: base + 4*CoordsZStep,
			Quadrants:  AllQuadrants,
		})
	}
	return tile
}
