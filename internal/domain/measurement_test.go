package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeasurement_DeterministicID(t *testing.T) {
	ts := time.Date(2022, 12, 13, 23, 30, 0, 0, time.UTC)

	m1 := NewMeasurement(42, ts, 10.6, 79, 980, 0)
	m2 := NewMeasurement(42, ts, 11.2, 80, 985, 0.2)

	assert.Equal(t, m1.ID, m2.ID, "same station and timestamp must yield the same ID")
	assert.NotEmpty(t, m1.ID)
}

func TestNewMeasurement_IDVariesByStationAndTime(t *testing.T) {
	ts := time.Date(2022, 12, 13, 23, 30, 0, 0, time.UTC)

	base := NewMeasurement(42, ts, 10, 70, 0, 0)
	otherStation := NewMeasurement(2, ts, 10, 70, 0, 0)
	otherTime := NewMeasurement(42, ts.Add(30*time.Minute), 10, 70, 0, 0)

	assert.NotEqual(t, base.ID, otherStation.ID)
	assert.NotEqual(t, base.ID, otherTime.ID)
}

func TestNewMeasurement_TimezoneInsensitiveID(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	utc := time.Date(2022, 12, 13, 22, 30, 0, 0, time.UTC)
	local := time.Date(2022, 12, 13, 23, 30, 0, 0, paris)

	m1 := NewMeasurement(42, utc, 10, 70, 0, 0)
	m2 := NewMeasurement(42, local, 10, 70, 0, 0)

	assert.Equal(t, m1.ID, m2.ID, "equal instants in different zones are the same reading")
	assert.Equal(t, time.UTC, m2.Timestamp.Location())
}

func TestNewMeasurement_NormalizesPressure(t *testing.T) {
	ts := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	m := NewMeasurement(1, ts, 10, 70, 98000, 0)
	assert.Equal(t, 980.0, m.Pressure, "pascal readings convert to hPa")

	m = NewMeasurement(1, ts, 10, 70, 1013, 0)
	assert.Equal(t, 1013.0, m.Pressure, "hPa readings pass through")
}

func TestNewMeasurement_StampsRetrievedAt(t *testing.T) {
	frozen := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	t.Cleanup(func() { SetClock(nil) })

	m := NewMeasurement(1, frozen.Add(-time.Hour), 10, 70, 0, 0)

	assert.Equal(t, frozen, m.RetrievedAt)
}

func TestMeasurement_ValidateAcceptsSaneReading(t *testing.T) {
	m := NewMeasurement(42, time.Now(), 21.5, 55, 1013, 0.4)
	require.NoError(t, m.Validate())
}

func TestMeasurement_ValidateAcceptsUnreportedPressure(t *testing.T) {
	m := NewMeasurement(42, time.Now(), 21.5, 55, 0, 0)
	require.NoError(t, m.Validate())
}

func TestMeasurement_ValidateRejectsOutOfRange(t *testing.T) {
	ts := time.Now()

	cases := []struct {
		name string
		m    Measurement
	}{
		{"temperature too high", NewMeasurement(1, ts, 75, 50, 0, 0)},
		{"temperature too low", NewMeasurement(1, ts, -120, 50, 0, 0)},
		{"humidity above 100", NewMeasurement(1, ts, 20, 140, 0, 0)},
		{"negative humidity", NewMeasurement(1, ts, 20, -5, 0, 0)},
		{"pressure below plausible range", NewMeasurement(1, ts, 20, 50, 500, 0)},
		{"negative rainfall", NewMeasurement(1, ts, 20, 50, 0, -1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.m.Validate())
		})
	}
}

func TestMeasurement_ValidateRejectsZeroTimestamp(t *testing.T) {
	m := Measurement{ID: "x", StationID: 1, Temperature: 20, Humidity: 50}
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timestamp")
}

func TestMeasurement_Strings(t *testing.T) {
	ts := time.Date(2022, 12, 13, 23, 30, 0, 0, time.UTC)
	m := NewMeasurement(42, ts, 10.6, 79, 98000, 0.5)
	m.WindSpeed = 12
	m.WindDirection = 180

	assert.Equal(t, "[2022-12-13 23:30] Temperature: 10.6°C, Humidity: 79%", m.String())

	detailed := m.DetailedString()
	assert.Contains(t, detailed, "Pressure: 980.0 hPa")
	assert.Contains(t, detailed, "Rain: 0.5 mm")
	assert.Contains(t, detailed, "Wind: 12.0 km/h (180°)")
}

func TestNormalizePressure(t *testing.T) {
	assert.Equal(t, 980.0, NormalizePressure(98000))
	assert.Equal(t, 1013.25, NormalizePressure(1013.25))
	assert.Equal(t, 0.0, NormalizePressure(0))
}
