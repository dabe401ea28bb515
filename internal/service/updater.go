// Package service holds the operations the menu drives that are more than a
// single repository call.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/tlsemeteo/meteo-console/internal/config"
	"github.com/tlsemeteo/meteo-console/internal/container"
	"github.com/tlsemeteo/meteo-console/internal/domain"
	"github.com/tlsemeteo/meteo-console/internal/repository"
)

// UpdateResult describes one merge of an update file into a station's data.
type UpdateResult struct {
	Measurements *container.List[domain.Measurement]
	Before       int
	Added        int
}

// Updater merges per-station update files into the station's base
// measurements. Duplicate rows already present in the base are dropped and
// the result stays in chronological order.
type Updater struct {
	source   repository.Source
	dataDir  string
	stations []config.StationConfig
	logger   *slog.Logger
}

// NewUpdater creates an updater reading base data from source and update
// files from dataDir.
func NewUpdater(source repository.Source, dataDir string, stations []config.StationConfig, logger *slog.Logger) *Updater {
	return &Updater{
		source:   source,
		dataDir:  dataDir,
		stations: stations,
		logger:   logger,
	}
}

// Update loads the station's base measurements and its update file, merges
// them, and reports how many rows the update actually added.
func (u *Updater) Update(ctx context.Context, stationID int) (*UpdateResult, error) {
	var updateFile string
	for _, sc := range u.stations {
		if sc.ID == stationID {
			updateFile = sc.UpdateFile
			break
		}
	}
	if updateFile == "" {
		return nil, fmt.Errorf("%w: station %d has no update file", repository.ErrStationNotFound, stationID)
	}

	base, err := u.source.Measurements(ctx, stationID, 0)
	if err != nil {
		return nil, fmt.Errorf("load base measurements: %w", err)
	}
	existing := container.NewList[domain.Measurement]()
	for _, m := range base {
		existing.Append(m)
	}

	rows, err := repository.ReadMeasurementsCSV(filepath.Join(u.dataDir, updateFile), stationID, 0, u.logger)
	if err != nil {
		return nil, fmt.Errorf("load update file: %w", err)
	}
	updates := container.NewList[domain.Measurement]()
	for _, m := range rows {
		updates.Append(m)
	}

	merged := domain.Merge(existing, updates)
	result := &UpdateResult{
		Measurements: merged,
		Before:       existing.Len(),
		Added:        merged.Len() - existing.Len(),
	}

	u.logger.Info("update file merged",
		"station_id", stationID,
		"update_file", updateFile,
		"before", result.Before,
		"added", result.Added,
	)
	return result, nil
}
