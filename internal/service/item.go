package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akarpova/shareit/internal/model"
)

// ItemService implements item CRUD, search, the last/next availability
// summary and comment posting.
type ItemService struct {
	items    ItemStore
	users    UserStore
	bookings BookingStore
	comments CommentStore
	requests RequestStore
	now      func() time.Time
}

// NewItemService constructs an ItemService over the given stores.
func NewItemService(items ItemStore, users UserStore, bookings BookingStore, comments CommentStore, requests RequestStore) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
		requests: requests,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ItemInput carries the caller-supplied item fields.  Pointers
// distinguish "absent" from zero values: creation requires all three,
// update patches only the fields present.
type ItemInput struct {
	Name        *string
	Description *string
	Available   *bool
	RequestID   *uint64
}

// ItemDetails is the owner-aware view of an item: its comments plus,
// for the owner only, the resolved last/next approved bookings.
type ItemDetails struct {
	Item        model.Item
	Comments    []model.Comment
	LastBooking *model.Booking
	NextBooking *model.Booking
}

// Create validates and persists a new item owned by the caller.
func (s *ItemService) Create(ctx context.Context, callerID uint64, in ItemInput) (*model.Item, error) {
	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", callerID, ErrNotFound)
	}
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("item name must not be blank: %w", ErrInvalidOperation)
	}
	if in.Description == nil || strings.TrimSpace(*in.Description) == "" {
		return nil, fmt.Errorf("item description must not be blank: %w", ErrInvalidOperation)
	}
	if in.Available == nil {
		return nil, fmt.Errorf("item availability must be set: %w", ErrInvalidOperation)
	}
	it := &model.Item{
		OwnerID:     user.ID,
		Name:        *in.Name,
		Description: *in.Description,
		Available:   *in.Available,
	}
	if in.RequestID != nil {
		req, err := s.requests.GetByID(ctx, *in.RequestID)
		if err != nil {
			return nil, err
		}
		if req == nil {
			return nil, fmt.Errorf("request %d: %w", *in.RequestID, ErrNotFound)
		}
		it.RequestID = in.RequestID
	}
	if err := s.items.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Update patches an item's name, description or availability.  Only the
// owner may update; for anyone else the item is reported as absent.
func (s *ItemService) Update(ctx context.Context, callerID, itemID uint64, in ItemInput) (*model.Item, error) {
	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, fmt.Errorf("item %d: %w", itemID, ErrNotFound)
	}
	if it.OwnerID != callerID {
		return nil, fmt.Errorf("item %d: %w", itemID, ErrNotFound)
	}
	if in.Name != nil {
		it.Name = *in.Name
	}
	if in.Description != nil {
		it.Description = *in.Description
	}
	if in.Available != nil {
		it.Available = *in.Available
	}
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Get returns an item with its comments.  The last/next booking summary
// is resolved only when the caller owns the item; other viewers see the
// item and its comments alone.
func (s *ItemService) Get(ctx context.Context, callerID, itemID uint64) (*ItemDetails, error) {
	now := s.now()
	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, fmt.Errorf("item %d: %w", itemID, ErrNotFound)
	}
	comments, err := s.comments.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	det := &ItemDetails{Item: *it, Comments: comments}
	if it.OwnerID == callerID {
		if det.LastBooking, err = s.bookings.LastApproved(ctx, itemID, now); err != nil {
			return nil, err
		}
		if det.NextBooking, err = s.bookings.NextApproved(ctx, itemID, now); err != nil {
			return nil, err
		}
	}
	return det, nil
}

// ListOwned returns a page of the caller's items, each with its last/next
// approved booking resolved.  The two booking sets are fetched once and
// matched per item in memory; the stores return them ordered by start
// (descending for ended, ascending for upcoming) so the first match per
// item is deterministic.
func (s *ItemService) ListOwned(ctx context.Context, callerID uint64, from, size int) ([]ItemDetails, error) {
	now := s.now()
	if err := checkPage(from, size); err != nil {
		return nil, err
	}
	items, err := s.items.ListByOwner(ctx, callerID, size, from)
	if err != nil {
		return nil, err
	}
	ended, err := s.bookings.ApprovedEndedBefore(ctx, now)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.bookings.ApprovedStartingAfter(ctx, now)
	if err != nil {
		return nil, err
	}
	details := make([]ItemDetails, 0, len(items))
	for _, it := range items {
		details = append(details, ItemDetails{
			Item:        it,
			LastBooking: firstForItem(ended, it.ID),
			NextBooking: firstForItem(upcoming, it.ID),
		})
	}
	return details, nil
}

// firstForItem returns the first booking in the (pre-ordered) set that
// belongs to the item, or nil.
func firstForItem(bookings []model.Booking, itemID uint64) *model.Booking {
	for i := range bookings {
		if bookings[i].ItemID == itemID {
			return &bookings[i]
		}
	}
	return nil
}

// Search returns available items matching the text in name or
// description.  A blank query yields an empty result, not an error.
func (s *ItemService) Search(ctx context.Context, text string, from, size int) ([]model.Item, error) {
	if err := checkPage(from, size); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	return s.items.Search(ctx, text, size, from)
}

// AddComment records the caller's feedback on an item, provided the
// caller has a completed approved booking of it and has not commented on
// it before.
func (s *ItemService) AddComment(ctx context.Context, callerID, itemID uint64, text string) (*model.Comment, error) {
	now := s.now()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("comment text must not be blank: %w", ErrInvalidOperation)
	}
	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, fmt.Errorf("item %d: %w", itemID, ErrNotFound)
	}
	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", callerID, ErrNotFound)
	}
	bookings, err := s.bookings.ListByBookerAndItem(ctx, user.ID, it.ID)
	if err != nil {
		return nil, err
	}
	if !hasCompletedBooking(bookings, now) {
		return nil, fmt.Errorf("user %d has no completed booking of item %d: %w", user.ID, it.ID, ErrInvalidOperation)
	}
	comments, err := s.comments.ListByItem(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	if hasAuthorComment(comments, user.ID) {
		return nil, fmt.Errorf("user %d has already commented on item %d: %w", user.ID, it.ID, ErrInvalidOperation)
	}
	cm := &model.Comment{
		ItemID:     it.ID,
		AuthorID:   user.ID,
		AuthorName: user.Name,
		Text:       text,
		CreatedAt:  now,
	}
	if err := s.comments.Create(ctx, cm); err != nil {
		return nil, err
	}
	return cm, nil
}

// hasCompletedBooking reports whether the set contains at least one
// approved booking that ended before now.
func hasCompletedBooking(bookings []model.Booking, now time.Time) bool {
	for _, b := range bookings {
		if b.Status == model.StatusApproved && b.End.Before(now) {
			return true
		}
	}
	return false
}

// hasAuthorComment reports whether the author already commented within
// the given item's comment set.
func hasAuthorComment(comments []model.Comment, authorID uint64) bool {
	for _, cm := range comments {
		if cm.AuthorID == authorID {
			return true
		}
	}
	return false
}
