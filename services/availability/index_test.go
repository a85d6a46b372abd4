package availability

import (
	"errors"
	"testing"

	"refugio/models"
)

func date(t *testing.T, s string) models.DateOnly {
	t.Helper()
	d, err := models.ParseDateOnly(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func interval(t *testing.T, from, to string) models.BookedInterval {
	t.Helper()
	iv, err := models.NewBookedInterval(date(t, from), date(t, to))
	if err != nil {
		t.Fatalf("bad test interval %s..%s: %v", from, to, err)
	}
	return iv
}

func builtIndex(t *testing.T, boundary string, intervals ...models.BookedInterval) *Index {
	t.Helper()
	ix := NewIndex()
	if err := ix.Rebuild(intervals, date(t, boundary)); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	return ix
}

func TestIndexNotReadyBeforeFirstRebuild(t *testing.T) {
	ix := NewIndex()
	if ix.Ready() {
		t.Fatal("fresh index reports ready")
	}
	if err := ix.Rebuild(nil, date(t, "2026-09-02")); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if !ix.Ready() {
		t.Fatal("index not ready after first rebuild")
	}
}

func TestIndexIsBlocked(t *testing.T) {
	ix := builtIndex(t, "2026-09-02",
		interval(t, "2026-09-10", "2026-09-12"),
		interval(t, "2026-09-20", "2026-09-20"),
	)
	tests := []struct {
		name string
		d    string
		want bool
	}{
		{name: "before boundary", d: "2026-09-01", want: true},
		{name: "boundary itself selectable", d: "2026-09-02", want: false},
		{name: "free day", d: "2026-09-05", want: false},
		{name: "interval start", d: "2026-09-10", want: true},
		{name: "interval middle", d: "2026-09-11", want: true},
		{name: "interval end", d: "2026-09-12", want: true},
		{name: "day after interval", d: "2026-09-13", want: false},
		{name: "single day block", d: "2026-09-20", want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := date(t, tc.d)
			if got := ix.IsBlocked(d); got != tc.want {
				t.Errorf("IsBlocked(%s) = %v, want %v", tc.d, got, tc.want)
			}
			if got := ix.IsAvailable(d); got == ix.IsBlocked(d) {
				t.Errorf("IsAvailable(%s) does not negate IsBlocked", tc.d)
			}
		})
	}
}

func TestIndexPastBlockedEvenWithNoBookings(t *testing.T) {
	ix := builtIndex(t, "2026-09-02")
	if !ix.IsBlocked(date(t, "2026-08-15")) {
		t.Error("past date not blocked on an empty booking set")
	}
	if ix.IsBlocked(date(t, "2027-01-01")) {
		t.Error("far future date blocked on an empty booking set")
	}
}

func TestIndexHasConflict(t *testing.T) {
	ix := builtIndex(t, "2026-09-02", interval(t, "2026-09-10", "2026-09-12"))
	tests := []struct {
		name     string
		from, to string
		want     bool
	}{
		{name: "clear range", from: "2026-09-03", to: "2026-09-09", want: false},
		{name: "touches interval start", from: "2026-09-08", to: "2026-09-10", want: true},
		{name: "inside interval", from: "2026-09-11", to: "2026-09-11", want: true},
		{name: "spans interval", from: "2026-09-05", to: "2026-09-15", want: true},
		{name: "starts before boundary", from: "2026-09-01", to: "2026-09-03", want: true},
		{name: "single free day", from: "2026-09-05", to: "2026-09-05", want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ix.HasConflict(date(t, tc.from), date(t, tc.to)); got != tc.want {
				t.Errorf("HasConflict(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestIndexRebuildReplacesWholesale(t *testing.T) {
	ix := builtIndex(t, "2026-09-02", interval(t, "2026-09-10", "2026-09-12"))

	if err := ix.Rebuild([]models.BookedInterval{interval(t, "2026-09-20", "2026-09-22")}, date(t, "2026-09-02")); err != nil {
		t.Fatalf("second Rebuild failed: %v", err)
	}
	if ix.IsBlocked(date(t, "2026-09-11")) {
		t.Error("old interval survived the rebuild")
	}
	if !ix.IsBlocked(date(t, "2026-09-21")) {
		t.Error("new interval not applied")
	}
}

func TestIndexRejectsMalformedBatchWhole(t *testing.T) {
	ix := builtIndex(t, "2026-09-02", interval(t, "2026-09-10", "2026-09-12"))

	bad := []models.BookedInterval{
		interval(t, "2026-09-20", "2026-09-22"),
		{From: date(t, "2026-09-30"), To: date(t, "2026-09-25")},
	}
	err := ix.Rebuild(bad, date(t, "2026-09-02"))
	if !errors.Is(err, ErrMalformedSnapshot) {
		t.Fatalf("Rebuild err = %v, want ErrMalformedSnapshot", err)
	}

	// The prior snapshot must still answer, including the good record from
	// the rejected batch staying absent.
	if !ix.IsBlocked(date(t, "2026-09-11")) {
		t.Error("prior snapshot lost after rejected rebuild")
	}
	if ix.IsBlocked(date(t, "2026-09-21")) {
		t.Error("record from a rejected batch was applied")
	}
}

func TestIndexRebuildIdempotent(t *testing.T) {
	iv := interval(t, "2026-09-10", "2026-09-12")
	ix := builtIndex(t, "2026-09-02", iv)

	before := make([]bool, 0, 20)
	for d := date(t, "2026-09-01"); !d.After(date(t, "2026-09-20")); d = d.Next() {
		before = append(before, ix.IsBlocked(d))
	}

	if err := ix.Rebuild([]models.BookedInterval{iv}, date(t, "2026-09-02")); err != nil {
		t.Fatalf("repeat Rebuild failed: %v", err)
	}

	i := 0
	for d := date(t, "2026-09-01"); !d.After(date(t, "2026-09-20")); d = d.Next() {
		if ix.IsBlocked(d) != before[i] {
			t.Errorf("IsBlocked(%s) changed across identical rebuilds", d)
		}
		i++
	}
}
