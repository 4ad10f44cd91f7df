package action

import (
	"fmt"
	"strings"

	"github.com/wricardo/mcp-training/parkserver/game/engine"
	"github.com/wricardo/mcp-training/parkserver/game/i18n"
)

// RideCreate adds a new, empty ride to the park
type RideCreate struct {
	Header   `json:"-"`
	RideType engine.RideType `json:"ride_type"`
	Name     string          `json:"name,omitempty"`
}

// NewRideCreate creates a ride of the given type
func NewRideCreate(rideType engine.RideType, name string) *RideCreate {
	return &RideCreate{RideType: rideType, Name: name}
}

func (a *RideCreate) Type() string { return TypeRideCreate }

func (a *RideCreate) ActionFlags() ActionFlags { return 0 }

func (a *RideCreate) Query(ps *engine.ParkState) Result {
	res := Result{
		Status:      StatusOK,
		Expenditure: engine.ExpenditureRideConstruction,
	}

	if _, ok := engine.GetRideTypeDescriptor(a.RideType); !ok {
		return res.fail(StatusInvalidParameters, i18n.CantCreateNewRideKey, i18n.InvalidRideTypeKey)
	}
	if len(ps.Rides) >= engine.MaxRides || ps.NextRideID >= engine.MaxRides {
		return res.fail(StatusDisallowed, i18n.CantCreateNewRideKey, i18n.TooManyRidesKey)
	}

	res.Data = map[string]any{"ride_id": ps.NextRideID}
	return res
}

func (a *RideCreate) Execute(ps *engine.ParkState) Result {
	res := a.Query(ps)
	if !res.OK() {
		return res
	}

	id := ps.NextRideID
	ps.NextRideID++

	name := a.Name
	if name == "" {
		name = defaultRideName(a.RideType, id)
	}
	ps.Rides = append(ps.Rides, &engine.Ride{
		ID:     id,
		Type:   a.RideType,
		Name:   name,
		Status: "closed",
	})

	return res
}

func defaultRideName(rideType engine.RideType, id int) string {
	words := strings.Split(string(rideType), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return fmt.Sprintf("%s %d", strings.Join(words, " "), id+1)
}
