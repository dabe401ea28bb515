// Package cli implements the interactive station console.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tlsemeteo/meteo-console/internal/container"
	"github.com/tlsemeteo/meteo-console/internal/domain"
	"github.com/tlsemeteo/meteo-console/internal/repository"
	"github.com/tlsemeteo/meteo-console/internal/service"
)

const menuText = `
=== Meteo Console ===
1. List stations
2. Show station measurements (file)
3. Walk measurements one by one
4. Merge station update file
5. Online measurements
6. Refresh online data
7. Quit
`

// OnlineSource is the cached API side of the console.
type OnlineSource interface {
	Stations() []domain.Station
	Measurements(ctx context.Context, stationID int) (*container.List[domain.Measurement], error)
	RefreshAll(ctx context.Context) error
}

// Menu drives the interactive loop. The reader and writer are injectable so
// tests can script a session.
type Menu struct {
	in      *bufio.Scanner
	out     io.Writer
	files   repository.Source
	online  OnlineSource
	updater *service.Updater
	logger  *slog.Logger
}

// NewMenu creates the console over the file-backed source, the cached online
// source, and the updater.
func NewMenu(in io.Reader, out io.Writer, files repository.Source, online OnlineSource, updater *service.Updater, logger *slog.Logger) *Menu {
	return &Menu{
		in:      bufio.NewScanner(in),
		out:     out,
		files:   files,
		online:  online,
		updater: updater,
		logger:  logger,
	}
}

// Run loops until the user quits, the input ends, or ctx is cancelled.
// Errors from individual actions are printed and the loop continues; only
// input exhaustion or cancellation ends the session.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(m.out, menuText)
		choice, err := m.prompt("Choice: ")
		if err != nil {
			return err
		}

		var actionErr error
		switch strings.TrimSpace(choice) {
		case "1":
			m.listStations()
		case "2":
			actionErr = m.showFileMeasurements(ctx)
		case "3":
			actionErr = m.walkMeasurements(ctx)
		case "4":
			actionErr = m.mergeUpdate(ctx)
		case "5":
			actionErr = m.onlineMeasurements(ctx)
		case "6":
			actionErr = m.refreshOnline(ctx)
		case "7", "q", "quit":
			fmt.Fprintln(m.out, "Bye.")
			return nil
		default:
			fmt.Fprintf(m.out, "Unknown choice %q, pick 1-7.\n", strings.TrimSpace(choice))
		}

		if actionErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			m.logger.Warn("menu action failed", "error", actionErr)
			fmt.Fprintf(m.out, "Error: %v\n", actionErr)
		}
	}
}

func (m *Menu) listStations() {
	fmt.Fprintln(m.out, "\nFile stations:")
	for _, s := range m.files.Stations() {
		fmt.Fprintf(m.out, "  %s\n", s)
	}
	fmt.Fprintln(m.out, "Online stations:")
	for _, s := range m.online.Stations() {
		fmt.Fprintf(m.out, "  %s\n", s)
	}
}

func (m *Menu) showFileMeasurements(ctx context.Context) error {
	id, err := m.promptStationID()
	if err != nil {
		return err
	}
	measurements, err := m.files.Measurements(ctx, id, 0)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "\n%d measurement(s) for station %d:\n", len(measurements), id)
	for _, mm := range measurements {
		fmt.Fprintf(m.out, "  %s\n", mm)
	}
	return nil
}

// walkMeasurements shows the same file data but steps through it index by
// index, the way the cached lists are traversed.
func (m *Menu) walkMeasurements(ctx context.Context) error {
	id, err := m.promptStationID()
	if err != nil {
		return err
	}
	rows, err := m.files.Measurements(ctx, id, 0)
	if err != nil {
		return err
	}
	list := container.NewList[domain.Measurement]()
	for _, mm := range rows {
		list.Append(mm)
	}

	for i := 0; i < list.Len(); i++ {
		mm, err := list.Get(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(m.out, "  [%d/%d] %s\n", i+1, list.Len(), mm.DetailedString())
	}
	if list.Empty() {
		fmt.Fprintln(m.out, "  no measurements")
	}
	return nil
}

func (m *Menu) mergeUpdate(ctx context.Context) error {
	id, err := m.promptStationID()
	if err != nil {
		return err
	}
	result, err := m.updater.Update(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "\nMerged update for station %d: %d existing, %d added, %d total.\n",
		id, result.Before, result.Added, result.Measurements.Len())
	for mm := range result.Measurements.All() {
		fmt.Fprintf(m.out, "  %s\n", mm)
	}
	return nil
}

func (m *Menu) onlineMeasurements(ctx context.Context) error {
	id, err := m.promptStationID()
	if err != nil {
		return err
	}
	list, err := m.online.Measurements(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "\n%d online measurement(s) for station %d:\n", list.Len(), id)
	for mm := range list.All() {
		fmt.Fprintf(m.out, "  %s\n", mm)
	}
	return nil
}

func (m *Menu) refreshOnline(ctx context.Context) error {
	fmt.Fprintln(m.out, "Refreshing online data...")
	if err := m.online.RefreshAll(ctx); err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Done.")
	return nil
}

func (m *Menu) promptStationID() (int, error) {
	raw, err := m.prompt("Station ID: ")
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("not a station ID: %q", strings.TrimSpace(raw))
	}
	return id, nil
}

func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return m.in.Text(), nil
}
