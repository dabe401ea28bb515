package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/tlsemeteo/meteo-console/internal/config"
	"github.com/tlsemeteo/meteo-console/internal/container"
	"github.com/tlsemeteo/meteo-console/internal/domain"
	"github.com/tlsemeteo/meteo-console/internal/observability"
)

// Fetcher performs the actual remote fetch for one station dataset.
// *opendata.Client satisfies it.
type Fetcher interface {
	FetchMeasurements(ctx context.Context, stationID int, dataset string, limit int) ([]domain.Measurement, error)
}

// pendingRequest is one queued station lookup. The uuid ties the enqueue and
// the eventual fetch together in the logs.
type pendingRequest struct {
	id         uuid.UUID
	stationID  int
	enqueuedAt time.Time
}

// CachedSource serves API measurements through the custom containers: a
// lookup first hits the hash-table cache keyed by station ID; a miss enqueues
// a pending request, and the queue is drained in arrival order, each fetch
// filling the cache with a linked list of measurements. Repeat lookups after
// the first successful fetch are pure cache hits with no I/O and no
// re-enqueue.
//
// The containers themselves are single-owner and unsynchronized; the mutex
// here is the external serialization layer that lets the menu loop and the
// background refresh job share one instance.
type CachedSource struct {
	mu sync.Mutex

	fetcher  Fetcher
	stations []config.StationConfig
	cache    *container.Dict[int, *container.List[domain.Measurement]]
	pending  *container.Queue[pendingRequest]

	fetchLimit int
	clock      clockwork.Clock
	logger     *slog.Logger
	metrics    *observability.Metrics

	served atomic.Bool
}

// NewCachedSource creates a cached source over the configured API stations.
func NewCachedSource(
	fetcher Fetcher,
	stations []config.StationConfig,
	cacheCapacity, fetchLimit int,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *CachedSource {
	return &CachedSource{
		fetcher:    fetcher,
		stations:   stations,
		cache:      container.NewDict[int, *container.List[domain.Measurement]](cacheCapacity),
		pending:    container.NewQueue[pendingRequest](),
		fetchLimit: fetchLimit,
		clock:      clockwork.NewRealClock(),
		logger:     logger,
		metrics:    metrics,
	}
}

// Stations returns every configured station that has an API dataset.
func (c *CachedSource) Stations() []domain.Station {
	stations := make([]domain.Station, 0, len(c.stations))
	for _, sc := range c.stations {
		if sc.Dataset == "" {
			continue
		}
		station, err := domain.NewStation(sc.ID, sc.Name, "API")
		if err != nil {
			c.logger.Warn("skipping misconfigured station", "station_id", sc.ID, "error", err)
			continue
		}
		stations = append(stations, station)
	}
	return stations
}

// Measurements returns the station's cached measurement list, fetching (and
// caching) it on a miss. The returned list is the cached instance; callers
// read it, they do not mutate it.
func (c *CachedSource) Measurements(ctx context.Context, stationID int) (*container.List[domain.Measurement], error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, err := c.cache.Get(stationID); err == nil {
		c.metrics.CacheLookups.WithLabelValues("hit").Inc()
		c.logger.Debug("cache hit", "station_id", stationID, "measurements", cached.Len())
		c.served.Store(true)
		return cached, nil
	}
	c.metrics.CacheLookups.WithLabelValues("miss").Inc()

	c.enqueueLocked(stationID)
	drainErr := c.processPendingLocked(ctx)

	// The drain may also service requests queued earlier for other stations;
	// their failures are logged but must not fail this lookup when its own
	// station was cached.
	cached, err := c.cache.Get(stationID)
	if err == nil {
		c.served.Store(true)
		return cached, nil
	}
	if drainErr != nil {
		return nil, drainErr
	}
	return nil, fmt.Errorf("station %d: fetch produced no data", stationID)
}

// EnqueueRefresh queues a station for the next ProcessPending pass without
// fetching anything yet.
func (c *CachedSource) EnqueueRefresh(stationID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enqueueLocked(stationID)
}

// ProcessPending drains the request queue in arrival order. Stations already
// cached get their fresh measurements merged in chronological order with
// duplicates dropped; new stations are cached as-is.
func (c *CachedSource) ProcessPending(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.processPendingLocked(ctx)
}

// RefreshAll clears the cache and re-fetches every API station in
// configuration order.
func (c *CachedSource) RefreshAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Clear()
	c.metrics.CacheEntries.Set(0)

	for _, sc := range c.stations {
		if sc.Dataset == "" {
			continue
		}
		c.enqueueLocked(sc.ID)
	}

	if err := c.processPendingLocked(ctx); err != nil {
		return err
	}
	c.metrics.RefreshRuns.Inc()
	return nil
}

// ClearCache drops every cached station list.
func (c *CachedSource) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Clear()
	c.metrics.CacheEntries.Set(0)
	c.logger.Info("measurement cache cleared")
}

// Cached reports whether the station currently has a cached entry.
func (c *CachedSource) Cached(stationID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Contains(stationID)
}

// SetClock swaps the time source used for request stamps and fetch timing.
// Pass nil to reset to real time.
func (c *CachedSource) SetClock(clk clockwork.Clock) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if clk == nil {
		c.clock = clockwork.NewRealClock()
		return
	}
	c.clock = clk
}

// Stats reports the current number of cached stations and queued lookups.
func (c *CachedSource) Stats() (cached, pending int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len(), c.pending.Len()
}

// PendingRequests returns the number of queued lookups.
func (c *CachedSource) PendingRequests() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending.Len()
}

// CheckReadiness returns nil once at least one lookup has been served.
func (c *CachedSource) CheckReadiness(_ context.Context) error {
	if !c.served.Load() {
		return errors.New("no measurements served yet")
	}
	return nil
}

func (c *CachedSource) enqueueLocked(stationID int) {
	req := pendingRequest{
		id:         uuid.New(),
		stationID:  stationID,
		enqueuedAt: c.clock.Now(),
	}
	c.pending.Enqueue(req)
	c.metrics.QueueDepth.Set(float64(c.pending.Len()))
	c.logger.Debug("request queued", "request_id", req.id, "station_id", stationID)
}

// processPendingLocked drains the queue strictly first-come-first-served.
// A failed fetch leaves its station uncached (or stale) and is reported
// after the drain so one broken dataset does not starve the rest.
func (c *CachedSource) processPendingLocked(ctx context.Context) error {
	var errs []error

	for !c.pending.Empty() {
		req, err := c.pending.Dequeue()
		if err != nil {
			return err
		}
		c.metrics.QueueDepth.Set(float64(c.pending.Len()))

		if err := c.fulfillLocked(ctx, req); err != nil {
			c.logger.Error("fetch failed",
				"request_id", req.id,
				"station_id", req.stationID,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("station %d: %w", req.stationID, err))
		}
	}

	return errors.Join(errs...)
}

func (c *CachedSource) fulfillLocked(ctx context.Context, req pendingRequest) error {
	dataset, err := c.datasetFor(req.stationID)
	if err != nil {
		return err
	}

	start := c.clock.Now()
	fetched, err := c.fetcher.FetchMeasurements(ctx, req.stationID, dataset, c.fetchLimit)
	c.metrics.FetchDuration.WithLabelValues("api").Observe(c.clock.Since(start).Seconds())
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues("api", "error").Inc()
		return err
	}
	c.metrics.FetchRequests.WithLabelValues("api", "success").Inc()

	list := container.NewList[domain.Measurement]()
	for _, m := range fetched {
		list.Append(m)
	}

	if existing, err := c.cache.Get(req.stationID); err == nil {
		list = domain.Merge(existing, list)
	}

	c.cache.Put(req.stationID, list)
	c.metrics.CacheEntries.Set(float64(c.cache.Len()))

	c.logger.Info("station cached",
		"request_id", req.id,
		"station_id", req.stationID,
		"measurements", list.Len(),
		"waited", c.clock.Since(req.enqueuedAt),
	)
	return nil
}

func (c *CachedSource) datasetFor(stationID int) (string, error) {
	for _, sc := range c.stations {
		if sc.ID == stationID {
			if sc.Dataset == "" {
				return "", fmt.Errorf("%w: station %d has no dataset", ErrStationNotFound, stationID)
			}
			return sc.Dataset, nil
		}
	}
	return "", fmt.Errorf("%w: id %d", ErrStationNotFound, stationID)
}
