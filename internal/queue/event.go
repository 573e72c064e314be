// Package queue defines message payloads exchanged over the message broker
// and the publisher/consumer pair for booking lifecycle events.
package queue

// BookingEvent is published whenever a booking is created or decided.
// It carries enough denormalized information for downstream consumers to
// log, notify, or feed analytics without querying the primary database.
type BookingEvent struct {
	Action     string `json:"action"` // created | decided
	BookingID  uint64 `json:"booking_id"`
	ItemID     uint64 `json:"item_id"`
	ItemName   string `json:"item_name"`
	OwnerID    uint64 `json:"owner_id"`
	BookerID   uint64 `json:"booker_id"`
	BookerName string `json:"booker_name"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Status     string `json:"status"`
	OccurredAt string `json:"occurred_at"`
}
