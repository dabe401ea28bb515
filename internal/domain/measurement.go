package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate holds the shared validator instance; struct tags below carry the
// range rules, so one instance serves every Measurement.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Measurement is one weather observation from one station at one instant.
//
// Pressure, WindSpeed, and WindDirection are optional in the source data;
// zero means unreported, which is why Pressure validates as "0 or a sane
// surface pressure".
type Measurement struct {
	ID        string    `json:"id"`
	StationID int       `json:"station_id" validate:"gt=0"`
	Timestamp time.Time `json:"timestamp"`

	Temperature   float64 `json:"temperature" validate:"gte=-100,lte=60"`
	Humidity      float64 `json:"humidity" validate:"gte=0,lte=100"`
	Pressure      float64 `json:"pressure" validate:"omitempty,gte=800,lte=1100"` // hPa
	Rainfall      float64 `json:"rainfall" validate:"gte=0"`
	WindSpeed     float64 `json:"wind_speed" validate:"gte=0"`
	WindDirection int     `json:"wind_direction" validate:"gte=0,lte=360"`

	// RetrievedAt records when the measurement entered the system,
	// stamped from the package clock.
	RetrievedAt time.Time `json:"retrieved_at"`
}

// NewMeasurement assembles a Measurement, deriving its deterministic ID and
// stamping RetrievedAt. The timestamp is normalized to UTC and the pressure
// to hPa before either is used, so equal observations always produce equal
// measurements regardless of source formatting.
func NewMeasurement(stationID int, timestamp time.Time, temperature, humidity, pressure, rainfall float64) Measurement {
	timestamp = timestamp.UTC()
	return Measurement{
		ID:          measurementID(stationID, timestamp),
		StationID:   stationID,
		Timestamp:   timestamp,
		Temperature: temperature,
		Humidity:    humidity,
		Pressure:    NormalizePressure(pressure),
		Rainfall:    rainfall,
		RetrievedAt: clock.Now().UTC(),
	}
}

// Validate checks the measurement against the physical range rules.
// The error carries the offending fields and is safe to log.
func (m Measurement) Validate() error {
	if m.Timestamp.IsZero() {
		return fmt.Errorf("measurement %s: timestamp is required", m.ID)
	}
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("measurement %s: %w", m.ID, err)
	}
	return nil
}

// String renders the measurement the way the console lists it.
func (m Measurement) String() string {
	return fmt.Sprintf("[%s] Temperature: %.1f°C, Humidity: %.0f%%",
		m.Timestamp.Format("2006-01-02 15:04"), m.Temperature, m.Humidity)
}

// DetailedString includes the optional readings when they are present.
func (m Measurement) DetailedString() string {
	s := m.String()
	if m.Pressure != 0 {
		s += fmt.Sprintf(", Pressure: %.1f hPa", m.Pressure)
	}
	if m.Rainfall > 0 {
		s += fmt.Sprintf(", Rain: %.1f mm", m.Rainfall)
	}
	if m.WindSpeed > 0 {
		s += fmt.Sprintf(", Wind: %.1f km/h (%d°)", m.WindSpeed, m.WindDirection)
	}
	return s
}

// NormalizePressure converts pascal readings to hectopascals. Station exports
// are inconsistent about the unit; anything above 10000 cannot be a surface
// pressure in hPa, so it is treated as Pa.
func NormalizePressure(pressure float64) float64 {
	if pressure > 10000 {
		return pressure / 100
	}
	return pressure
}

// measurementID produces a deterministic ID from the fields that identify a
// reading. Re-fetching the same record always yields the same ID, which is
// what cache merges dedupe on.
func measurementID(stationID int, timestamp time.Time) string {
	input := fmt.Sprintf("%d|%s", stationID, timestamp.UTC().Format(time.RFC3339))
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:8])
}
