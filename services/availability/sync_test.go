package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"refugio/models"

	"go.uber.org/zap"
)

// fakeSource hands the subscription callbacks back to the test so it can push
// snapshots and errors like a live change stream would.
type fakeSource struct {
	onSnapshot   func([]models.Booking)
	onError      func(error)
	subscribeErr error
	unsubscribed bool
}

func (f *fakeSource) Subscribe(ctx context.Context, propertyID string, onSnapshot func([]models.Booking), onError func(error)) (func(), error) {
	if f.subscribeErr != nil {
		return nil, f.subscribeErr
	}
	f.onSnapshot = onSnapshot
	f.onError = onError
	return func() { f.unsubscribed = true }, nil
}

func booking(t *testing.T, from, to string) models.Booking {
	t.Helper()
	return models.Booking{
		ID:        "b-" + from,
		StartDate: date(t, from).Time(),
		EndDate:   date(t, to).Time(),
		Type:      models.BookingTypeAdmin,
	}
}

func startedSyncer(t *testing.T) (*Syncer, *fakeSource) {
	t.Helper()
	src := &fakeSource{}
	sy := NewSyncer(src, "casa-principal", zap.NewNop())
	sy.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }
	if err := sy.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return sy, src
}

func TestSyncerFirstSnapshotMakesIndexReady(t *testing.T) {
	sy, src := startedSyncer(t)
	if sy.Index().Ready() {
		t.Fatal("index ready before any snapshot")
	}

	src.onSnapshot([]models.Booking{booking(t, "2026-09-10", "2026-09-12")})

	q := sy.Index()
	if !q.Ready() {
		t.Fatal("index not ready after first snapshot")
	}
	if !q.IsBlocked(date(t, "2026-09-11")) {
		t.Error("snapshot booking not reflected")
	}
	if q.IsBlocked(date(t, "2026-09-02")) {
		t.Error("boundary day blocked; now is 2026-09-01 so tomorrow should be free")
	}
	if !q.IsBlocked(date(t, "2026-09-01")) {
		t.Error("today not blocked")
	}
}

func TestSyncerSnapshotReplacesPrevious(t *testing.T) {
	sy, src := startedSyncer(t)
	src.onSnapshot([]models.Booking{booking(t, "2026-09-10", "2026-09-12")})
	src.onSnapshot([]models.Booking{booking(t, "2026-09-20", "2026-09-22")})

	q := sy.Index()
	if q.IsBlocked(date(t, "2026-09-11")) {
		t.Error("deleted booking still blocks")
	}
	if !q.IsBlocked(date(t, "2026-09-21")) {
		t.Error("new booking not applied")
	}
}

func TestSyncerMalformedSnapshotKeepsLastGood(t *testing.T) {
	sy, src := startedSyncer(t)
	var reported error
	sy.OnSyncError(func(err error) { reported = err })

	src.onSnapshot([]models.Booking{booking(t, "2026-09-10", "2026-09-12")})
	src.onSnapshot([]models.Booking{
		booking(t, "2026-09-20", "2026-09-22"),
		booking(t, "2026-09-28", "2026-09-25"),
	})

	q := sy.Index()
	if !q.IsBlocked(date(t, "2026-09-11")) {
		t.Error("last good snapshot lost after malformed batch")
	}
	if q.IsBlocked(date(t, "2026-09-21")) {
		t.Error("record from a malformed batch was applied")
	}
	if !errors.Is(reported, ErrMalformedSnapshot) {
		t.Errorf("side channel got %v, want ErrMalformedSnapshot", reported)
	}
	var syncErr *SyncError
	if !errors.As(reported, &syncErr) || syncErr.PropertyID != "casa-principal" {
		t.Errorf("side channel error %v does not carry the property", reported)
	}
}

func TestSyncerTransportErrorLeavesIndexUntouched(t *testing.T) {
	sy, src := startedSyncer(t)
	var reported error
	sy.OnSyncError(func(err error) { reported = err })

	src.onSnapshot([]models.Booking{booking(t, "2026-09-10", "2026-09-12")})
	src.onError(errors.New("stream reset"))

	q := sy.Index()
	if !q.Ready() || !q.IsBlocked(date(t, "2026-09-11")) {
		t.Error("transport error disturbed the last good snapshot")
	}
	if reported == nil {
		t.Error("transport error not reported on the side channel")
	}
}

func TestSyncerStopDiscardsLateSnapshots(t *testing.T) {
	sy, src := startedSyncer(t)
	src.onSnapshot([]models.Booking{booking(t, "2026-09-10", "2026-09-12")})
	sy.Stop()

	if !src.unsubscribed {
		t.Error("Stop did not release the subscription")
	}

	// A snapshot still in flight when Stop lands must not rebuild.
	src.onSnapshot(nil)
	if !sy.Index().IsBlocked(date(t, "2026-09-11")) {
		t.Error("late snapshot applied after Stop")
	}
}

func TestSyncerStartAfterStopFails(t *testing.T) {
	sy, _ := startedSyncer(t)
	sy.Stop()
	if err := sy.Start(context.Background()); err == nil {
		t.Fatal("Start succeeded on a stopped syncer")
	}
}

func TestSyncerSubscribeFailureSurfaces(t *testing.T) {
	src := &fakeSource{subscribeErr: errors.New("no replica set")}
	sy := NewSyncer(src, "cabana", zap.NewNop())
	err := sy.Start(context.Background())
	var syncErr *SyncError
	if !errors.As(err, &syncErr) || syncErr.PropertyID != "cabana" {
		t.Fatalf("Start err = %v, want SyncError for cabana", err)
	}
}

func TestSyncerOnRebuildFiresPerSnapshot(t *testing.T) {
	sy, src := startedSyncer(t)
	calls := 0
	sy.OnRebuild(func() { calls++ })

	src.onSnapshot(nil)
	src.onSnapshot([]models.Booking{booking(t, "2026-09-10", "2026-09-12")})
	src.onSnapshot([]models.Booking{booking(t, "2026-09-28", "2026-09-25")})

	if calls != 2 {
		t.Errorf("rebuild hook fired %d times, want 2 (malformed batch must not fire)", calls)
	}
}

func TestSyncerRollBoundary(t *testing.T) {
	sy, src := startedSyncer(t)
	src.onSnapshot(nil)

	q := sy.Index()
	if q.IsBlocked(date(t, "2026-09-02")) {
		t.Fatal("tomorrow blocked before the roll")
	}

	// Midnight passes.
	sy.now = func() time.Time { return time.Date(2026, 9, 2, 0, 1, 0, 0, time.UTC) }
	sy.RollBoundary()

	if !q.IsBlocked(date(t, "2026-09-02")) {
		t.Error("old today still selectable after the boundary roll")
	}
	if q.IsBlocked(date(t, "2026-09-03")) {
		t.Error("new tomorrow blocked after the boundary roll")
	}
}

func TestManagerQueriesUnknownProperty(t *testing.T) {
	m := NewManager(&fakeSource{}, zap.NewNop())
	if err := m.Start(context.Background(), []models.Property{{ID: "casa-principal"}}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer m.Stop()

	if _, err := m.Queries("casa-principal"); err != nil {
		t.Errorf("Queries for a configured property failed: %v", err)
	}
	if _, err := m.Queries("nope"); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("Queries err = %v, want ErrUnknownProperty", err)
	}
}
