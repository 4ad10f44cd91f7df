package action

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Action type names
const (
	TypeMazePlaceTrack  = "maze_place_track"
	TypeMazeRemoveTrack = "maze_remove_track"
	TypeRideCreate      = "ride_create"
	TypeLandBuyRights   = "land_buy_rights"
	TypePauseToggle     = "pause_toggle"
	TypeCheatSet        = "cheat_set"
)

var ErrUnknownActionType = errors.New("unknown action type")

// Constructor returns a zero-valued action ready to receive parameters
type Constructor func() GameAction

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Constructor)
)

func init() {
	Register(TypeMazePlaceTrack, func() GameAction { return &MazePlaceTrack{} })
	Register(TypeMazeRemoveTrack, func() GameAction { return &MazeRemoveTrack{} })
	Register(TypeRideCreate, func() GameAction { return &RideCreate{} })
	Register(TypeLandBuyRights, func() GameAction { return &LandBuyRights{} })
	Register(TypePauseToggle, func() GameAction { return &PauseToggle{} })
	Register(TypeCheatSet, func() GameAction { return &CheatSet{} })
}

// Register adds an action type. Registering a name twice panics.
func Register(typ string, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[typ]; exists {
		panic(fmt.Sprintf("action: type %q registered twice", typ))
	}
	registry[typ] = ctor
}

// New creates an empty action of the named type
func New(typ string) (GameAction, error) {
	registryMu.RLock()
	ctor, ok := registry[typ]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownActionType, typ)
	}
	return ctor(), nil
}

// Types lists the registered action types in name order
func Types() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	types := make([]string, 0, len(registry))
	for typ := range registry {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}
