// Package repository provides access to station measurements: a CSV-backed
// source, and a cached source that fronts the remote API with the hash-table
// cache and the pending-request queue.
package repository

import (
	"context"
	"errors"

	"github.com/tlsemeteo/meteo-console/internal/domain"
)

// ErrStationNotFound is returned when a station ID does not match any
// configured station, or the station has no data in the requested source.
var ErrStationNotFound = errors.New("station not found")

// Source serves stations and their measurements.
type Source interface {
	Stations() []domain.Station
	Measurements(ctx context.Context, stationID, limit int) ([]domain.Measurement, error)
}
