package model

import "time"

// CustomerSnapshot is the customer value copied into a rental at
// creation time.
type CustomerSnapshot struct {
	ID    uint64 `json:"id"`    // rentals.customer_id
	Name  string `json:"name"`  // rentals.customer_name
	Phone string `json:"phone"` // rentals.customer_phone
}

// MovieSnapshot is the movie value copied into a rental at creation
// time. DailyRentalRate is frozen here so the fee on return uses the
// rate that applied when the movie went out.
type MovieSnapshot struct {
	ID              uint64  `json:"id"`              // rentals.movie_id
	Title           string  `json:"title"`           // rentals.movie_title
	DailyRentalRate float64 `json:"dailyRentalRate"` // rentals.movie_daily_rate
}

// Rental records a single checkout of one movie by one customer. The
// embedded snapshots are owned values, not foreign keys, so history
// stays accurate if the customer or movie record changes later.
//
// A rental is OPEN while DateReturned is nil. Closing it sets
// DateReturned and RentalFee together, exactly once; the transition is
// irreversible.
type Rental struct {
	ID           uint64           `json:"id"`           // rentals.id
	Customer     CustomerSnapshot `json:"customer"`     // embedded snapshot
	Movie        MovieSnapshot    `json:"movie"`        // embedded snapshot
	DateOut      time.Time        `json:"dateOut"`      // rentals.date_out
	DateReturned *time.Time       `json:"dateReturned"` // rentals.date_returned (nullable)
	RentalFee    *float64         `json:"rentalFee"`    // rentals.rental_fee (nullable)
}

// Open reports whether the rental has not been returned yet.
func (r *Rental) Open() bool { return r.DateReturned == nil }

// FeeAt computes the fee owed if the rental were returned at the given
// time: whole elapsed calendar days, floored, times the snapshotted
// daily rate. A same-day return costs nothing.
func (r *Rental) FeeAt(at time.Time) float64 {
	days := int(at.Sub(r.DateOut).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return float64(days) * r.Movie.DailyRentalRate
}
