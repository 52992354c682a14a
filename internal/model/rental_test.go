package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFeeAt(t *testing.T) {
	now := time.Now().UTC()
	r := Rental{
		DateOut: now.Add(-7 * 24 * time.Hour),
		Movie:   MovieSnapshot{DailyRentalRate: 2},
	}
	assert.Equal(t, 14.0, r.FeeAt(now))
}

func TestFeeAt_FloorsPartialDays(t *testing.T) {
	now := time.Now().UTC()
	r := Rental{
		DateOut: now.Add(-(3*24 + 23) * time.Hour), // 3 days 23 hours out
		Movie:   MovieSnapshot{DailyRentalRate: 1.5},
	}
	assert.Equal(t, 4.5, r.FeeAt(now))
}

func TestFeeAt_SameDayIsFree(t *testing.T) {
	now := time.Now().UTC()
	r := Rental{
		DateOut: now.Add(-5 * time.Hour),
		Movie:   MovieSnapshot{DailyRentalRate: 3},
	}
	assert.Equal(t, 0.0, r.FeeAt(now))
}

func TestOpen(t *testing.T) {
	r := Rental{}
	assert.True(t, r.Open())

	now := time.Now().UTC()
	r.DateReturned = &now
	assert.False(t, r.Open())
}
