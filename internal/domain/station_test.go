package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStation(t *testing.T) {
	s, err := NewStation(42, "Compans", "API")
	require.NoError(t, err)

	assert.Equal(t, 42, s.ID)
	assert.Equal(t, "Compans", s.Name)
	assert.Equal(t, "API", s.Type)
}

func TestNewStation_DefaultsType(t *testing.T) {
	s, err := NewStation(1, "Marengo", "")
	require.NoError(t, err)
	assert.Equal(t, "CSV", s.Type)
}

func TestNewStation_RejectsMissingFields(t *testing.T) {
	_, err := NewStation(0, "Compans", "CSV")
	assert.Error(t, err)

	_, err = NewStation(-3, "Compans", "CSV")
	assert.Error(t, err)

	_, err = NewStation(1, "", "CSV")
	assert.Error(t, err)
}

func TestStation_String(t *testing.T) {
	s, err := NewStation(42, "Compans", "API")
	require.NoError(t, err)
	assert.Equal(t, "Station Compans (ID: 42) - Type: API", s.String())
}
