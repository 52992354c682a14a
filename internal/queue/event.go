// Package queue defines message payloads exchanged over the message
// broker and the background consumer that drains them.
package queue

// RentalEvent is published on the rental.events queue whenever a rental
// opens or closes. It carries the full snapshot so downstream consumers
// can log or notify without querying the primary database.
//
// Kind is "opened" or "closed". RentalFee is only set on "closed".
type RentalEvent struct {
	Kind          string   `json:"kind"`
	RentalID      uint64   `json:"rental_id"`
	CustomerID    uint64   `json:"customer_id"`
	CustomerName  string   `json:"customer_name"`
	MovieID       uint64   `json:"movie_id"`
	MovieTitle    string   `json:"movie_title"`
	DateOut       string   `json:"date_out"`
	DateReturned  string   `json:"date_returned,omitempty"`
	RentalFee     *float64 `json:"rental_fee,omitempty"`
}

// EventKind values for RentalEvent.Kind.
const (
	EventRentalOpened = "opened"
	EventRentalClosed = "closed"
)
