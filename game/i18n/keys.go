package i18n

// Message keys carried in action results. Clients render them through the catalog.
const (
	// Titles
	CantConstructThisHereKey  = "ride_construction_cant_construct_this_here"
	CantRemoveThisKey         = "ride_construction_cant_remove_this"
	CantCreateNewRideKey      = "cant_create_new_ride_attraction"
	CantBuyLandKey            = "cant_buy_land"
	CantDoThisKey             = "cant_do_this"
	ConstructionErrUnknownKey = "construction_err_unknown"

	// Messages
	GamePausedKey                  = "construction_not_possible_while_paused"
	NotEnoughCashKey               = "not_enough_cash_requires"
	LandNotOwnedByParkKey          = "land_not_owned_by_park"
	TileElementLimitReachedKey     = "tile_element_limit_reached"
	InvalidSelectionOfObjectsKey   = "invalid_selection_of_objects"
	TooHighForSupportsKey          = "too_high_for_supports"
	TooLowKey                      = "too_low"
	TooHighKey                     = "too_high"
	RaiseOrLowerLandFirstKey       = "raise_or_lower_land_first"
	RideCantBuildThisUnderwaterKey = "ride_cant_build_this_underwater"
	CanOnlyBuildAboveGroundKey     = "can_only_build_this_above_ground"
	OffEdgeOfMapKey                = "off_edge_of_map"
	FootpathInTheWayKey            = "footpath_in_the_way"
	SceneryInTheWayKey             = "scenery_in_the_way"
	RideInTheWayKey                = "ride_in_the_way"
	WallInTheWayKey                = "wall_in_the_way"
	ObjectInTheWayKey              = "object_in_the_way"
	TooManyRidesKey                = "too_many_rides"
	InvalidRideTypeKey             = "invalid_ride_type"
	MazeTrackNotFoundKey           = "maze_track_not_found"
	LandAlreadyOwnedKey            = "land_already_owned"
	LandNotForSaleKey              = "land_not_for_sale"
	UnknownCheatKey                = "unknown_cheat"
)

// Keys lists every message key the server can emit
func Keys() []string {
	return []string{
		CantConstructThisHereKey, CantRemoveThisKey, CantCreateNewRideKey, CantBuyLandKey,
		CantDoThisKey, ConstructionErrUnknownKey, GamePausedKey, NotEnoughCashKey,
		LandNotOwnedByParkKey, TileElementLimitReachedKey, InvalidSelectionOfObjectsKey,
		TooHighForSupportsKey, TooLowKey, TooHighKey, RaiseOrLowerLandFirstKey, RideCantBuildThisUnderwaterKey,
		CanOnlyBuildAboveGroundKey, OffEdgeOfMapKey, FootpathInTheWayKey, SceneryInTheWayKey,
		RideInTheWayKey, WallInTheWayKey, ObjectInTheWayKey, TooManyRidesKey, InvalidRideTypeKey,
		MazeTrackNotFoundKey, LandAlreadyOwnedKey, LandNotForSaleKey, UnknownCheatKey,
	}
}
