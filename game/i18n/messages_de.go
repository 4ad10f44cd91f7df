package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.German

	message.SetString(lang, CantConstructThisHereKey, "Kann hier nicht gebaut werden...")
	message.SetString(lang, CantRemoveThisKey, "Kann nicht entfernt werden...")
	message.SetString(lang, CantCreateNewRideKey, "Kann keine neue Attraktion erstellen...")
	message.SetString(lang, CantBuyLandKey, "Kann Land nicht kaufen...")
	message.SetString(lang, CantDoThisKey, "Das ist nicht möglich...")
	message.SetString(lang, ConstructionErrUnknownKey, "Unbekannter Baufehler")

	message.SetString(lang, GamePausedKey, "Bauen ist nicht möglich, solange das Spiel pausiert ist!")
	message.SetString(lang, NotEnoughCashKey, "Nicht genug Geld - benötigt %s")
	message.SetString(lang, LandNotOwnedByParkKey, "Land gehört nicht zum Park!")
	message.SetString(lang, TileElementLimitReachedKey, "Zu viele Objekte im Spiel")
	message.SetString(lang, InvalidSelectionOfObjectsKey, "Ungültige Objektauswahl")
	message.SetString(lang, TooHighForSupportsKey, "Zu hoch für Stützen!")
	message.SetString(lang, TooLowKey, "Zu niedrig!")
	message.SetString(lang, TooHighKey, "Zu hoch!")
	message.SetString(lang, RaiseOrLowerLandFirstKey, "Zuerst Land anheben oder absenken")
	message.SetString(lang, RideCantBuildThisUnderwaterKey, "Kann nicht unter Wasser gebaut werden!")
	message.SetString(lang, CanOnlyBuildAboveGroundKey, "Kann nur oberirdisch gebaut werden!")
	message.SetString(lang, OffEdgeOfMapKey, "Außerhalb der Karte!")
	message.SetString(lang, FootpathInTheWayKey, "Fußweg im Weg")
	message.SetString(lang, SceneryInTheWayKey, "Szenerie im Weg")
	message.SetString(lang, RideInTheWayKey, "Attraktion im Weg")
	message.SetString(lang, WallInTheWayKey, "Mauer im Weg")
	message.SetString(lang, ObjectInTheWayKey, "Objekt im Weg")
	message.SetString(lang, TooManyRidesKey, "Zu viele Attraktionen")
	message.SetString(lang, InvalidRideTypeKey, "Unbekannter Attraktionstyp")
	message.SetString(lang, MazeTrackNotFoundKey, "Hier ist kein Labyrinthteil dieser Attraktion")
	message.SetString(lang, LandAlreadyOwnedKey, "Land gehört bereits zum Park")
	message.SetString(lang, LandNotForSaleKey, "Land steht nicht zum Verkauf!")
	message.SetString(lang, UnknownCheatKey, "Unbekannter Cheat")
}
