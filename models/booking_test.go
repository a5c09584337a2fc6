package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2026, time.September, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRangesOverlap(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"identical ranges", day(1), day(5), day(1), day(5), true},
		{"contained range", day(1), day(10), day(3), day(5), true},
		{"partial overlap left", day(1), day(5), day(4), day(8), true},
		{"partial overlap right", day(4), day(8), day(1), day(5), true},
		{"disjoint", day(1), day(3), day(10), day(12), false},
		{"touching, a ends where b starts", day(1), day(5), day(5), day(8), false},
		{"touching, b ends where a starts", day(5), day(8), day(1), day(5), false},
		{"one night inside", day(3), day(4), day(1), day(10), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DateRangesOverlap(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, DateRangesOverlap(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func TestBookingOverlapsRange(t *testing.T) {
	b := Booking{CheckInDate: day(10), CheckOutDate: day(15)}

	assert.True(t, b.OverlapsRange(day(14), day(20)))
	assert.False(t, b.OverlapsRange(day(15), day(20)), "checkout day is free for the next guest")
	assert.False(t, b.OverlapsRange(day(5), day(10)))
}
