package domain

import (
	"errors"
	"fmt"
)

// Station is one physical weather station.
type Station struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"` // e.g. "CSV", "API", or both via separate entries
}

// NewStation validates the required fields and returns a Station.
// ID must be positive and Name non-empty; Type defaults to "CSV" when blank.
func NewStation(id int, name, stationType string) (Station, error) {
	if id <= 0 {
		return Station{}, fmt.Errorf("station id must be positive, got %d", id)
	}
	if name == "" {
		return Station{}, errors.New("station name is required")
	}
	if stationType == "" {
		stationType = "CSV"
	}
	return Station{ID: id, Name: name, Type: stationType}, nil
}

// String renders the station the way the console lists it.
func (s Station) String() string {
	return fmt.Sprintf("Station %s (ID: %d) - Type: %s", s.Name, s.ID, s.Type)
}
