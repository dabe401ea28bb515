package domain

import (
	"sort"
	"strings"

	"github.com/tlsemeteo/meteo-console/internal/container"
)

// Merge combines a station's cached measurements with freshly fetched ones
// into a single chronologically ordered list.
//
// Rules:
//   - an update whose ID already exists in the cached list is dropped; the
//     existing entry wins, since IDs are derived from station and timestamp
//     the reading is the same,
//   - the result is sorted by timestamp ascending; measurements sharing a
//     timestamp are ordered by ID, which makes the ordering total and
//     repeatable rather than dependent on arrival order,
//   - neither input list is mutated.
func Merge(existing, updates *container.List[Measurement]) *container.List[Measurement] {
	combined := existing.Slice()

	seen := container.NewDict[string, struct{}](container.DefaultCapacity)
	for _, m := range combined {
		seen.Put(m.ID, struct{}{})
	}

	for m := range updates.All() {
		if seen.Contains(m.ID) {
			continue
		}
		seen.Put(m.ID, struct{}{})
		combined = append(combined, m)
	}

	sort.SliceStable(combined, func(i, j int) bool {
		if !combined[i].Timestamp.Equal(combined[j].Timestamp) {
			return combined[i].Timestamp.Before(combined[j].Timestamp)
		}
		return strings.Compare(combined[i].ID, combined[j].ID) < 0
	})

	merged := container.NewList[Measurement]()
	for i := len(combined) - 1; i >= 0; i-- {
		merged.Prepend(combined[i])
	}
	return merged
}
