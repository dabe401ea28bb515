package config

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// StationConfig describes one station entry from the stations JSON file.
// DataFile and UpdateFile are paths relative to DATA_DIR; Dataset is the
// OpenDataSoft dataset identifier used by the API client, empty for
// CSV-only stations.
type StationConfig struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	DataFile   string `json:"data_file,omitempty"`
	UpdateFile string `json:"update_file,omitempty"`
	Dataset    string `json:"dataset,omitempty"`
}

// LoadStations reads and decodes the stations file, rejecting entries
// missing an ID or a name and duplicate IDs.
func LoadStations(path string) ([]StationConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stations file: %w", err)
	}

	var stations []StationConfig
	if err := json.Unmarshal(raw, &stations); err != nil {
		return nil, fmt.Errorf("decode stations file %s: %w", path, err)
	}

	seen := make(map[int]struct{}, len(stations))
	for _, s := range stations {
		if s.ID <= 0 {
			return nil, fmt.Errorf("stations file %s: station %q needs a positive id", path, s.Name)
		}
		if s.Name == "" {
			return nil, fmt.Errorf("stations file %s: station %d needs a name", path, s.ID)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("stations file %s: duplicate station id %d", path, s.ID)
		}
		seen[s.ID] = struct{}{}
	}

	return stations, nil
}
