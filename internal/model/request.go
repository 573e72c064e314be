package model

import "time"

// ItemRequest is a wish published by a user looking for an item that is
// not listed yet ("looking for a drill").  Items can be created as answers
// to a request by referencing its id.
//
// Fields:
//  ID          – primary key identifier.
//  RequestorID – user who published the request.
//  Description – what the requestor is looking for, never blank.
//  CreatedAt   – creation timestamp.
type ItemRequest struct {
    ID          uint64    // requests.id
    RequestorID uint64    // requests.requestor_id
    Description string    // requests.description
    CreatedAt   time.Time // requests.created_at
}
