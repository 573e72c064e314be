package model

import "time"

// Item represents a thing offered for sharing, as stored in the `items`
// table.  The Available flag gates whether new bookings may be created for
// the item; it is a plain boolean and is not interval-aware.
//
// Fields:
//  ID          – primary key identifier.
//  OwnerID     – user who listed the item.
//  Name        – short display name, never blank.
//  Description – free-form description, never blank.
//  Available   – whether the item currently accepts bookings.
//  RequestID   – item request this item answers, if any (nullable).
//  CreatedAt   – creation timestamp.
type Item struct {
    ID          uint64    // items.id
    OwnerID     uint64    // items.owner_id
    Name        string    // items.name
    Description string    // items.description
    Available   bool      // items.available
    RequestID   *uint64   // items.request_id (nullable)
    CreatedAt   time.Time // items.created_at
}
