package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func interval(startHour, startMin, endHour, endMin int) Interval {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	return Interval{
		Start: day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		End:   day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
	}
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{
			name: "identical intervals overlap",
			a:    interval(10, 0, 10, 30),
			b:    interval(10, 0, 10, 30),
			want: true,
		},
		{
			name: "partial overlap",
			a:    interval(10, 0, 11, 0),
			b:    interval(10, 30, 11, 30),
			want: true,
		},
		{
			name: "containment",
			a:    interval(9, 0, 12, 0),
			b:    interval(10, 0, 10, 30),
			want: true,
		},
		{
			name: "touching end-to-start do not overlap",
			a:    interval(10, 0, 10, 30),
			b:    interval(10, 30, 11, 0),
			want: false,
		},
		{
			name: "touching start-to-end do not overlap",
			a:    interval(10, 30, 11, 0),
			b:    interval(10, 0, 10, 30),
			want: false,
		},
		{
			name: "disjoint",
			a:    interval(9, 0, 9, 30),
			b:    interval(15, 0, 16, 0),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestIntervalIsValid(t *testing.T) {
	assert.True(t, interval(10, 0, 10, 15).IsValid())
	assert.False(t, interval(10, 0, 10, 0).IsValid())
	assert.False(t, interval(11, 0, 10, 0).IsValid())
}

func TestIntervalDurationMinutes(t *testing.T) {
	assert.Equal(t, 30, interval(10, 0, 10, 30).DurationMinutes())
	assert.Equal(t, 90, interval(10, 0, 11, 30).DurationMinutes())
}
