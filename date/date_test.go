package date

import (
	"testing"
	"time"
)

func TestNew_Normalizes(t *testing.T) {
	// Day 32 of January normalizes into February.
	d := New(2025, time.January, 32)
	if got, want := d.String(), "2025-02-01"; got != want {
		t.Errorf("New(2025, January, 32) = %q, want %q", got, want)
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2025-07-01", want: "2025-07-01"},
		{in: "2025-7-1", want: "2025-07-01"},
		{in: "not-a-date", wantErr: true},
		{in: "2025/07/01", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := Parse(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err == nil && got.String() != tc.want {
			t.Errorf("Parse(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAdd(t *testing.T) {
	d := New(2024, time.February, 28)
	if got, want := d.Add(1).String(), "2024-02-29"; got != want {
		t.Errorf("Add(1) = %q, want %q (leap year)", got, want)
	}
	if got, want := d.Add(2).String(), "2024-03-01"; got != want {
		t.Errorf("Add(2) = %q, want %q", got, want)
	}
}

func TestAddMonths(t *testing.T) {
	d := New(2025, time.December, 15)
	if got, want := d.AddMonths(1).String(), "2026-01-15"; got != want {
		t.Errorf("AddMonths(1) = %q, want %q", got, want)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(2025, time.March, 9)
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() failed: %v", err)
	}
	var back Date
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatalf("UnmarshalJSON(%s) failed: %v", b, err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestOrdering(t *testing.T) {
	a := New(2025, time.January, 1)
	b := New(2025, time.January, 2)
	if !a.Before(b) || b.Before(a) {
		t.Errorf("Before ordering broken for %v and %v", a, b)
	}
	if !b.After(a) || a.After(b) {
		t.Errorf("After ordering broken for %v and %v", a, b)
	}
}
