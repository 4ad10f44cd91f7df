package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, CantConstructThisHereKey, "Can't construct this here...")
	message.SetString(lang, CantRemoveThisKey, "Can't remove this...")
	message.SetString(lang, CantCreateNewRideKey, "Can't create new ride/attraction...")
	message.SetString(lang, CantBuyLandKey, "Can't buy land...")
	message.SetString(lang, CantDoThisKey, "Can't do this...")
	message.SetString(lang, ConstructionErrUnknownKey, "Unknown construction error")

	message.SetString(lang, GamePausedKey, "Construction is not possible while the game is paused!")
	message.SetString(lang, NotEnoughCashKey, "Not enough cash - requires %s")
	message.SetString(lang, LandNotOwnedByParkKey, "Land not owned by park!")
	message.SetString(lang, TileElementLimitReachedKey, "Too many objects in game")
	message.SetString(lang, InvalidSelectionOfObjectsKey, "Invalid selection of objects")
	message.SetString(lang, TooHighForSupportsKey, "Too high for supports!")
	message.SetString(lang, TooLowKey, "Too low!")
	message.SetString(lang, TooHighKey, "Too high!")
	message.SetString(lang, RaiseOrLowerLandFirstKey, "Raise or lower land first")
	message.SetString(lang, RideCantBuildThisUnderwaterKey, "Can't build this underwater!")
	message.SetString(lang, CanOnlyBuildAboveGroundKey, "Can only build this above ground!")
	message.SetString(lang, OffEdgeOfMapKey, "Off edge of map!")
	message.SetString(lang, FootpathInTheWayKey, "Footpath in the way")
	message.SetString(lang, SceneryInTheWayKey, "Scenery in the way")
	message.SetString(lang, RideInTheWayKey, "Ride in the way")
	message.SetString(lang, WallInTheWayKey, "Wall in the way")
	message.SetString(lang, ObjectInTheWayKey, "Object in the way")
	message.SetString(lang, TooManyRidesKey, "Too many rides/attractions")
	message.SetString(lang, InvalidRideTypeKey, "Unknown ride type")
	message.SetString(lang, MazeTrackNotFoundKey, "No maze section of this ride here")
	message.SetString(lang, LandAlreadyOwnedKey, "Land already owned by park")
	message.SetString(lang, LandNotForSaleKey, "Land not for sale!")
	message.SetString(lang, UnknownCheatKey, "Unknown cheat")
}
