package engine

import "testing"

func TestLocationTile(t *testing.T) {
	tests := []struct {
		loc  Location
		want Position
	}{
		{Location{0, 0, 0}, Position{0, 0}},
		{Location{31, 31, 0}, Position{0, 0}},
		{Location{32, 64, 16}, Position{1, 2}},
		{Location{-1, 0, 0}, Position{-1, 0}},
		{Location{-32, -33, 0}, Position{-1, -2}},
	}

	for _, test := range tests {
		if got := test.loc.Tile(); got != test.want {
			t.Errorf("%+v.Tile() = %+v, want %+v", test.loc, got, test.want)
		}
	}
}

func TestLocationHelpers(t *testing.T) {
	loc := Location{X: 70, Y: 40, Z: 16}
	if got := loc.ToTileStart(); got != (Location{X: 64, Y: 32, Z: 16}) {
		t.Errorf("ToTileStart() = %+v", got)
	}
	if got := loc.Add(8, 8, 0); got != (Location{X: 78, Y: 48, Z: 16}) {
		t.Errorf("Add() = %+v", got)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   Money
		want string
	}{
		{0, "0.00"},
		{130, "13.00"},
		{1355, "135.50"},
		{-130, "-13.00"},
	}
	for _, test := range tests {
		if got := FormatMoney(test.in); got != test.want {
			t.Errorf("FormatMoney(%d) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestTrackPieceCost(t *testing.T) {
	if got := TrackPieceCost(RideTypeMaze, TrackMaze); got != 130 {
		t.Errorf("Expected maze piece cost 130, got %d", got)
	}
	if got := TrackPieceCost(RideType("teacups"), TrackMaze); got != 0 {
		t.Errorf("Expected unknown ride type to cost 0, got %d", got)
	}
}

func TestGetRideTypeDescriptor(t *testing.T) {
	for _, rt := range RideTypes() {
		d, ok := GetRideTypeDescriptor(rt)
		if !ok {
			t.Errorf("Expected descriptor for %s", rt)
			continue
		}
		if d.Type != rt {
			t.Errorf("Descriptor for %s reports type %s", rt, d.Type)
		}
	}
	if d, _ := GetRideTypeDescriptor(RideTypeMaze); !d.IsMaze {
		t.Error("Expected maze descriptor to be flagged as maze")
	}
	if _, ok := GetRideTypeDescriptor(RideType("teacups")); ok {
		t.Error("Expected unknown ride type to be missing")
	}
}
