package service

import (
	"context"
	"time"

	"github.com/akarpova/shareit/internal/model"
)

// The store interfaces below are the services' only view of persistence.
// They are satisfied by the repositories in internal/repository and by
// in-memory fakes in tests.  Point lookups report a missing row as a nil
// record with a nil error; only infrastructure failures travel as errors.

// UserStore resolves users.
type UserStore interface {
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

// ItemStore persists items.
type ItemStore interface {
	Create(ctx context.Context, it *model.Item) error
	GetByID(ctx context.Context, id uint64) (*model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	ListByOwner(ctx context.Context, ownerID uint64, limit, offset int) ([]model.Item, error)
	Search(ctx context.Context, text string, limit, offset int) ([]model.Item, error)
	ListByRequest(ctx context.Context, requestID uint64) ([]model.Item, error)
}

// BookingStore persists bookings.  List results are ordered by id
// descending; the point queries LastApproved/NextApproved and the bulk
// queries ApprovedEndedBefore/ApprovedStartingAfter order by start so
// that last/next resolution is deterministic.  UpdateStatus is a
// compare-and-set: the write succeeds only if the row still carries the
// expected status.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id uint64, expect, next model.BookingStatus) (bool, error)
	ListByBooker(ctx context.Context, bookerID uint64, limit, offset int) ([]model.Booking, error)
	ListByOwner(ctx context.Context, ownerID uint64, limit, offset int) ([]model.Booking, error)
	ListByBookerAndItem(ctx context.Context, bookerID, itemID uint64) ([]model.Booking, error)
	LastApproved(ctx context.Context, itemID uint64, now time.Time) (*model.Booking, error)
	NextApproved(ctx context.Context, itemID uint64, now time.Time) (*model.Booking, error)
	ApprovedEndedBefore(ctx context.Context, now time.Time) ([]model.Booking, error)
	ApprovedStartingAfter(ctx context.Context, now time.Time) ([]model.Booking, error)
}

// CommentStore persists item comments.
type CommentStore interface {
	Create(ctx context.Context, cm *model.Comment) error
	ListByItem(ctx context.Context, itemID uint64) ([]model.Comment, error)
}

// RequestStore persists item requests.
type RequestStore interface {
	Create(ctx context.Context, req *model.ItemRequest) error
	GetByID(ctx context.Context, id uint64) (*model.ItemRequest, error)
	ListByRequestor(ctx context.Context, requestorID uint64) ([]model.ItemRequest, error)
	ListOthers(ctx context.Context, requestorID uint64, limit, offset int) ([]model.ItemRequest, error)
}
