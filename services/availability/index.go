package availability

import (
	"fmt"
	"sync"

	"refugio/models"
)

// Queries is the read-only view of an Index handed to consumers. Only the
// owning sync adapter rebuilds; everything else asks questions.
type Queries interface {
	Ready() bool
	IsBlocked(d models.DateOnly) bool
	IsAvailable(d models.DateOnly) bool
	HasConflict(from, to models.DateOnly) bool
}

// Index holds the current booked-interval set for one property plus the today
// boundary, the first day eligible for selection. It is rebuilt wholesale on
// every repository snapshot; a query never observes a mix of old and new
// state.
type Index struct {
	mu       sync.RWMutex
	ready    bool
	boundary models.DateOnly
	booked   []models.BookedInterval
}

func NewIndex() *Index { return &Index{} }

// Rebuild atomically replaces the held set and boundary. A batch containing
// any inverted interval is rejected whole with ErrMalformedSnapshot and the
// previous snapshot stays in effect.
func (ix *Index) Rebuild(intervals []models.BookedInterval, todayBoundary models.DateOnly) error {
	for _, iv := range intervals {
		if !iv.Valid() {
			return fmt.Errorf("%w: interval %s..%s", ErrMalformedSnapshot, iv.From, iv.To)
		}
	}
	next := make([]models.BookedInterval, len(intervals))
	copy(next, intervals)

	ix.mu.Lock()
	ix.booked = next
	ix.boundary = todayBoundary
	ix.ready = true
	ix.mu.Unlock()
	return nil
}

// Ready reports whether at least one snapshot has been applied. Until then
// callers must treat every query as indeterminate.
func (ix *Index) Ready() bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.ready
}

// IsBlocked reports whether d falls before the today boundary or inside any
// held interval. The two policies block independently: the temporal floor
// applies even with an empty booking set, and a booked day stays blocked no
// matter how far out it is.
func (ix *Index) IsBlocked(d models.DateOnly) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if d.Before(ix.boundary) {
		return true
	}
	for _, iv := range ix.booked {
		if iv.Contains(d) {
			return true
		}
	}
	return false
}

// IsAvailable is the UI-facing complement of IsBlocked; callers want "green"
// versus "disabled", not a double negative.
func (ix *Index) IsAvailable(d models.DateOnly) bool { return !ix.IsBlocked(d) }

// HasConflict reports whether any day in the inclusive range [from, to] is
// blocked. Ranges are weeks-scale, so the linear day scan is deliberate.
func (ix *Index) HasConflict(from, to models.DateOnly) bool {
	for d := from; !d.After(to); d = d.Next() {
		if ix.IsBlocked(d) {
			return true
		}
	}
	return false
}
