package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tlsemeteo/meteo-console/internal/config"
	"github.com/tlsemeteo/meteo-console/internal/domain"
)

// timestampLayouts are the formats seen across station CSV exports.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CSVSource reads measurements from per-station CSV exports under dataDir.
// Files are semicolon-delimited with the dataset's French column names.
type CSVSource struct {
	dataDir  string
	stations []config.StationConfig
	logger   *slog.Logger
}

// NewCSVSource creates a source over the configured stations' data files.
func NewCSVSource(dataDir string, stations []config.StationConfig, logger *slog.Logger) *CSVSource {
	return &CSVSource{
		dataDir:  dataDir,
		stations: stations,
		logger:   logger,
	}
}

// Stations returns every configured station that has a data file.
func (s *CSVSource) Stations() []domain.Station {
	stations := make([]domain.Station, 0, len(s.stations))
	for _, sc := range s.stations {
		if sc.DataFile == "" {
			continue
		}
		station, err := domain.NewStation(sc.ID, sc.Name, sc.Type)
		if err != nil {
			s.logger.Warn("skipping misconfigured station", "station_id", sc.ID, "error", err)
			continue
		}
		stations = append(stations, station)
	}
	return stations
}

// Measurements reads up to limit rows from the station's data file.
// Returns ErrStationNotFound when the ID is unknown or the station has no
// data file configured.
func (s *CSVSource) Measurements(_ context.Context, stationID, limit int) ([]domain.Measurement, error) {
	var file string
	for _, sc := range s.stations {
		if sc.ID == stationID {
			file = sc.DataFile
			break
		}
	}
	if file == "" {
		return nil, fmt.Errorf("%w: id %d", ErrStationNotFound, stationID)
	}

	return ReadMeasurementsCSV(filepath.Join(s.dataDir, file), stationID, limit, s.logger)
}

// ReadMeasurementsCSV parses a station CSV export into measurements. Rows
// that fail to parse or validate are skipped with a warning; limit <= 0 means
// no limit. The update service reads its update files through the same path.
func ReadMeasurementsCSV(path string, stationID, limit int, logger *slog.Logger) ([]domain.Measurement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open station data: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header from %s: %w", path, err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var measurements []domain.Measurement
	for limit <= 0 || len(measurements) < limit {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn("skipping malformed CSV row", "file", path, "error", err)
			continue
		}

		m, err := parseRow(stationID, columns, row)
		if err != nil {
			logger.Warn("skipping CSV row", "file", path, "error", err)
			continue
		}
		measurements = append(measurements, m)
	}

	return measurements, nil
}

func parseRow(stationID int, columns map[string]int, row []string) (domain.Measurement, error) {
	rawTime, err := field(columns, row, "heure_de_paris")
	if err != nil {
		// Some exports carry UTC timestamps instead of local ones.
		rawTime, err = field(columns, row, "heure_utc")
		if err != nil {
			return domain.Measurement{}, err
		}
	}
	ts, err := parseTimestamp(rawTime)
	if err != nil {
		return domain.Measurement{}, err
	}

	temperature, err := floatField(columns, row, "temperature")
	if err != nil {
		return domain.Measurement{}, err
	}
	humidity, err := floatField(columns, row, "humidite")
	if err != nil {
		return domain.Measurement{}, err
	}

	// Pressure and rain are optional in the exports.
	pressure, _ := floatField(columns, row, "pression")
	rain, _ := floatField(columns, row, "pluie")

	m := domain.NewMeasurement(stationID, ts, temperature, humidity, pressure, rain)
	if err := m.Validate(); err != nil {
		return domain.Measurement{}, err
	}
	return m, nil
}

func field(columns map[string]int, row []string, name string) (string, error) {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return "", fmt.Errorf("missing column %q", name)
	}
	v := strings.TrimSpace(row[i])
	if v == "" {
		return "", fmt.Errorf("empty column %q", name)
	}
	return v, nil
}

func floatField(columns map[string]int, row []string, name string) (float64, error) {
	raw, err := field(columns, row, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", name, raw, err)
	}
	return v, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
