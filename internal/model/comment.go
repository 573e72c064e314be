package model

import "time"

// Comment is feedback left on an item by a user who completed an approved
// booking of it.  A user may leave at most one comment per item.  The
// AuthorName field is denormalized from the users table by the repository.
//
// Fields:
//  ID         – primary key identifier.
//  ItemID     – item the comment refers to.
//  AuthorID   – user who wrote the comment.
//  AuthorName – display name of the author (joined).
//  Text       – comment body, never blank.
//  CreatedAt  – creation timestamp.
type Comment struct {
    ID         uint64    // comments.id
    ItemID     uint64    // comments.item_id
    AuthorID   uint64    // comments.author_id
    AuthorName string    // users.name (joined)
    Text       string    // comments.text
    CreatedAt  time.Time // comments.created_at
}
