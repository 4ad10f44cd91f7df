package engine

// RideTypeDescriptor carries the numeric traits of a ride type that construction needs
type RideTypeDescriptor struct {
	Type RideType `json:"type"`
	// MaxHeight is the highest a piece may sit above the surface, in tiny-z units
	MaxHeight       int   `json:"max_height"`
	ClearanceHeight int   `json:"clearance_height"`
	TrackPrice      Money `json:"track_price"`
	SupportPrice    Money `json:"support_price"`
	IsMaze          bool  `json:"is_maze"`
}

var rideTypeDescriptors = map[RideType]RideTypeDescriptor{
	RideTypeMaze:       {Type: RideTypeMaze, MaxHeight: 6, ClearanceHeight: 24, TrackPrice: 27, SupportPrice: 1, IsMaze: true},
	RideTypeCarRide:    {Type: RideTypeCarRide, MaxHeight: 6, ClearanceHeight: 24, TrackPrice: 42, SupportPrice: 5},
	RideTypeMiniGolf:   {Type: RideTypeMiniGolf, MaxHeight: 7, ClearanceHeight: 32, TrackPrice: 23, SupportPrice: 2},
	RideTypeGhostTrain: {Type: RideTypeGhostTrain, MaxHeight: 8, ClearanceHeight: 24, TrackPrice: 52, SupportPrice: 6},
}

// trackPriceModifiers are fixed-point (16.16) multipliers applied to a ride type's track price
var trackPriceModifiers = map[TrackType]int64{
	TrackMaze: 65536,
}

// GetRideTypeDescriptor looks up the descriptor of a ride type
func GetRideTypeDescriptor(rideType RideType) (RideTypeDescriptor, bool) {
	d, ok := rideTypeDescriptors[rideType]
	return d, ok
}

// RideTypes lists every known ride type
func RideTypes() []RideType {
	return []RideType{RideTypeMaze, RideTypeCarRide, RideTypeMiniGolf, RideTypeGhostTrain}
}

// TrackPieceCost returns the build cost of one piece of track for the ride type
func TrackPieceCost(rideType RideType, trackType TrackType) Money {
	d, ok := rideTypeDescriptors[rideType]
	if !ok {
		return 0
	}
	modifier, ok := trackPriceModifiers[trackType]
	if !ok {
		modifier = 65536
	}
	price := (int64(d.TrackPrice) * modifier) >> 16
	return Money(price / 2 * 10)
}
