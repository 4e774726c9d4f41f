package engine

import (
	"testing"
	"time"
)

func TestTruncMonth(t *testing.T) {
	got := truncMonth(time.Date(2023, 3, 17, 14, 5, 0, 0, time.UTC))
	want := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTruncDay(t *testing.T) {
	got := truncDay(time.Date(2023, 3, 17, 14, 5, 9, 0, time.UTC))
	want := time.Date(2023, 3, 17, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMonthsBetween(t *testing.T) {
	cases := []struct {
		from, to time.Time
		want     int
	}{
		{time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC), 2},
		{time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 3},
		{time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 5, 31, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), -1},
	}
	for _, c := range cases {
		if got := monthsBetween(c.from, c.to); got != c.want {
			t.Fatalf("monthsBetween(%v, %v) = %d, want %d", c.from, c.to, got, c.want)
		}
	}
}
