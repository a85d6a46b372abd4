package availability

import (
	"context"
	"sync"
	"time"

	"refugio/models"

	"go.uber.org/zap"
)

// SnapshotSource is the push-based capability the adapter consumes: a live
// sequence of full booking-set snapshots for one property, terminating only
// on unsubscribe or unrecoverable error. The mongo booking repository
// implements it.
type SnapshotSource interface {
	Subscribe(ctx context.Context, propertyID string, onSnapshot func([]models.Booking), onError func(error)) (func(), error)
}

// Syncer bridges one property's snapshot stream into Index rebuilds. It owns
// the index exclusively: once the syncer is running, Rebuild is never called
// from anywhere else, and snapshot application is serialized.
type Syncer struct {
	propertyID string
	source     SnapshotSource
	index      *Index
	logger     *zap.Logger
	now        func() time.Time

	mu          sync.Mutex
	unsubscribe func()
	stopped     bool
	lastGood    []models.BookedInterval
	hasSnapshot bool
	onRebuild   []func()
	onSyncError func(error)
}

func NewSyncer(source SnapshotSource, propertyID string, logger *zap.Logger) *Syncer {
	return &Syncer{
		propertyID: propertyID,
		source:     source,
		index:      NewIndex(),
		logger:     logger,
		now:        time.Now,
	}
}

// Index exposes read-only queries over the synced snapshot.
func (s *Syncer) Index() Queries { return s.index }

// OnRebuild registers fn to run after every applied snapshot, in arrival
// order. The selection layer uses this to re-validate in-flight picks.
func (s *Syncer) OnRebuild(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRebuild = append(s.onRebuild, fn)
}

// OnSyncError registers the side channel for ingestion failures. Errors never
// surface through query calls.
func (s *Syncer) OnSyncError(fn func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSyncError = fn
}

// Start begins observation. The index stays in the loading state until the
// first snapshot applies; a second Start on a live syncer is a no-op.
func (s *Syncer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return &SyncError{PropertyID: s.propertyID, Err: context.Canceled}
	}
	if s.unsubscribe != nil {
		return nil
	}
	unsub, err := s.source.Subscribe(ctx, s.propertyID, s.apply, s.transportError)
	if err != nil {
		return &SyncError{PropertyID: s.propertyID, Err: err}
	}
	s.unsubscribe = unsub
	return nil
}

// Stop releases the subscription. No rebuild can happen afterwards; snapshots
// still in flight are discarded silently.
func (s *Syncer) Stop() {
	s.mu.Lock()
	unsub := s.unsubscribe
	s.unsubscribe = nil
	s.stopped = true
	s.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// RollBoundary re-applies the current snapshot with a fresh today boundary.
// The manager calls this just after midnight so the temporal floor keeps
// trailing the wall clock between repository updates.
func (s *Syncer) RollBoundary() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || !s.hasSnapshot {
		return
	}
	if err := s.index.Rebuild(s.lastGood, models.TomorrowOf(s.now())); err != nil {
		return
	}
	s.fireRebuildLocked()
}

// apply converts one full snapshot into a rebuild. A batch containing a
// record whose dates invert is dropped whole: the last good snapshot keeps
// answering and the failure goes out on the side channel.
func (s *Syncer) apply(docs []models.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	intervals := make([]models.BookedInterval, 0, len(docs))
	for _, doc := range docs {
		iv, err := doc.Interval()
		if err != nil {
			s.logger.Warn("dropping malformed booking snapshot",
				zap.String("propertyId", s.propertyID),
				zap.String("bookingId", doc.ID),
				zap.Time("startDate", doc.StartDate),
				zap.Time("endDate", doc.EndDate))
			s.reportLocked(&SyncError{PropertyID: s.propertyID, Err: ErrMalformedSnapshot})
			return
		}
		intervals = append(intervals, iv)
	}

	if err := s.index.Rebuild(intervals, models.TomorrowOf(s.now())); err != nil {
		s.reportLocked(&SyncError{PropertyID: s.propertyID, Err: err})
		return
	}
	s.lastGood = intervals
	s.hasSnapshot = true
	s.logger.Debug("availability snapshot applied",
		zap.String("propertyId", s.propertyID),
		zap.Int("bookings", len(intervals)))
	s.fireRebuildLocked()
}

// transportError handles a failure pushed by the subscription itself. The
// index is untouched: stale-but-valid data beats failing queries.
func (s *Syncer) transportError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.logger.Error("booking subscription error",
		zap.String("propertyId", s.propertyID), zap.Error(err))
	s.reportLocked(&SyncError{PropertyID: s.propertyID, Err: err})
}

func (s *Syncer) reportLocked(err *SyncError) {
	if s.onSyncError != nil {
		s.onSyncError(err)
	}
}

func (s *Syncer) fireRebuildLocked() {
	for _, fn := range s.onRebuild {
		fn()
	}
}
