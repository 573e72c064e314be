package model

import (
    "strings"
    "time"
)

// BookingStatus is the lifecycle state of a booking.  WAITING is the only
// initial state and is assigned by the service at creation time; APPROVED
// and REJECTED are terminal and are reached exactly once through the
// owner's confirmation decision.
type BookingStatus string

const (
    StatusWaiting  BookingStatus = "WAITING"  // awaiting the owner's decision
    StatusApproved BookingStatus = "APPROVED" // confirmed by the item owner
    StatusRejected BookingStatus = "REJECTED" // declined by the item owner
)

// Booking records one user's reservation of an item for a time window.
// The ItemName, ItemOwnerID and BookerName fields are denormalized from
// the items and users tables by the repository's joins so that callers
// can render a booking without extra lookups.
//
// Fields:
//  ID          – primary key identifier.
//  ItemID      – item being booked.
//  ItemName    – display name of the item (joined).
//  ItemOwnerID – owner of the item (joined); used for access checks.
//  BookerID    – user who made the booking.
//  BookerName  – display name of the booker (joined).
//  Start       – beginning of the reserved window (UTC).
//  End         – end of the reserved window (UTC), strictly after Start.
//  Status      – lifecycle state (WAITING, APPROVED, REJECTED).
//  CreatedAt   – creation timestamp.
type Booking struct {
    ID          uint64        // bookings.id
    ItemID      uint64        // bookings.item_id
    ItemName    string        // items.name (joined)
    ItemOwnerID uint64        // items.owner_id (joined)
    BookerID    uint64        // bookings.booker_id
    BookerName  string        // users.name (joined)
    Start       time.Time     // bookings.start_at
    End         time.Time     // bookings.end_at
    Status      BookingStatus // bookings.status
    CreatedAt   time.Time     // bookings.created_at
}

// BookingView is the caller-chosen bucket used when listing bookings.  It
// is independent of the persisted BookingStatus: CURRENT, FUTURE and PAST
// are derived from the booking's time window relative to "now", while
// WAITING and REJECTED filter on the status field of the same name.
// Views exist only as query parameters and are never stored.
type BookingView int

const (
    ViewAll BookingView = iota
    ViewCurrent
    ViewFuture
    ViewPast
    ViewWaiting
    ViewRejected
)

// ParseBookingView maps a query-parameter string onto a BookingView.  The
// match is case-insensitive and fails closed: anything outside the six
// known names reports ok=false so that callers can answer with a dedicated
// unsupported-state error instead of silently defaulting.
func ParseBookingView(s string) (BookingView, bool) {
    switch strings.ToUpper(strings.TrimSpace(s)) {
    case "ALL":
        return ViewAll, true
    case "CURRENT":
        return ViewCurrent, true
    case "FUTURE":
        return ViewFuture, true
    case "PAST":
        return ViewPast, true
    case "WAITING":
        return ViewWaiting, true
    case "REJECTED":
        return ViewRejected, true
    }
    return ViewAll, false
}
