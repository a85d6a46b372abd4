package models

import (
	"errors"
	"testing"
	"time"
)

func date(s string) DateOnly {
	d, err := ParseDateOnly(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestParseDateOnly(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "2026-09-01"},
		{name: "single digit rejected", input: "2026-9-1", wantErr: true},
		{name: "with time rejected", input: "2026-09-01T10:00:00Z", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := ParseDateOnly(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseDateOnly(%q) succeeded, want error", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateOnly(%q) failed: %v", tc.input, err)
			}
			if got := d.String(); got != tc.input {
				t.Errorf("round trip got %q, want %q", got, tc.input)
			}
		})
	}
}

func TestNewDateOnlyDropsTime(t *testing.T) {
	late := time.Date(2026, 9, 1, 23, 59, 59, 0, time.FixedZone("X", -3*3600))
	d := NewDateOnly(late)
	if d.Time().Hour() != 0 || d.Time().Minute() != 0 {
		t.Errorf("NewDateOnly kept a time component: %v", d.Time())
	}
}

func TestTomorrowOf(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)
	if got := TomorrowOf(now); got != date("2026-09-02") {
		t.Errorf("TomorrowOf = %s, want 2026-09-02", got)
	}
}

func TestNewBookedInterval(t *testing.T) {
	tests := []struct {
		name     string
		from, to DateOnly
		wantErr  bool
	}{
		{name: "normal range", from: date("2026-09-01"), to: date("2026-09-05")},
		{name: "single day", from: date("2026-09-01"), to: date("2026-09-01")},
		{name: "inverted", from: date("2026-09-05"), to: date("2026-09-01"), wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBookedInterval(tc.from, tc.to)
			if tc.wantErr != (err != nil) {
				t.Fatalf("NewBookedInterval(%s, %s) err = %v, wantErr %v", tc.from, tc.to, err, tc.wantErr)
			}
			if tc.wantErr && !errors.Is(err, ErrInvalidInterval) {
				t.Errorf("error %v is not ErrInvalidInterval", err)
			}
		})
	}
}

func TestIntervalContains(t *testing.T) {
	iv := BookedInterval{From: date("2026-09-10"), To: date("2026-09-12")}
	tests := []struct {
		name string
		d    DateOnly
		want bool
	}{
		{name: "before", d: date("2026-09-09"), want: false},
		{name: "start endpoint", d: date("2026-09-10"), want: true},
		{name: "middle", d: date("2026-09-11"), want: true},
		{name: "end endpoint", d: date("2026-09-12"), want: true},
		{name: "after", d: date("2026-09-13"), want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := iv.Contains(tc.d); got != tc.want {
				t.Errorf("Contains(%s) = %v, want %v", tc.d, got, tc.want)
			}
		})
	}
}

func TestIntervalOverlaps(t *testing.T) {
	iv := BookedInterval{From: date("2026-09-10"), To: date("2026-09-12")}
	tests := []struct {
		name     string
		from, to DateOnly
		want     bool
	}{
		{name: "disjoint before", from: date("2026-09-01"), to: date("2026-09-09"), want: false},
		{name: "touching start", from: date("2026-09-08"), to: date("2026-09-10"), want: true},
		{name: "contained", from: date("2026-09-11"), to: date("2026-09-11"), want: true},
		{name: "covering", from: date("2026-09-01"), to: date("2026-09-30"), want: true},
		{name: "disjoint after", from: date("2026-09-13"), to: date("2026-09-20"), want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := iv.Overlaps(tc.from, tc.to); got != tc.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestBookingInterval(t *testing.T) {
	good := Booking{StartDate: date("2026-09-01").Time(), EndDate: date("2026-09-03").Time()}
	if _, err := good.Interval(); err != nil {
		t.Fatalf("Interval() failed on a valid booking: %v", err)
	}

	bad := Booking{StartDate: date("2026-09-03").Time(), EndDate: date("2026-09-01").Time()}
	if _, err := bad.Interval(); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("Interval() on inverted booking err = %v, want ErrInvalidInterval", err)
	}
}
