package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/akarpova/shareit/internal/model"
)

// BookingService implements the booking lifecycle: creation with its
// precondition chain, the owner's approve/reject decision, and the
// view-filtered listings.  Each operation reads the clock exactly once so
// that a multi-step check is internally consistent.
type BookingService struct {
	bookings BookingStore
	items    ItemStore
	users    UserStore
	now      func() time.Time
}

// NewBookingService constructs a BookingService over the given stores.
func NewBookingService(bookings BookingStore, items ItemStore, users UserStore) *BookingService {
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateInput carries the caller-supplied booking fields.  Start and End
// are pointers because their absence is a distinct validation failure.
type CreateInput struct {
	ItemID uint64
	Start  *time.Time
	End    *time.Time
}

// Create validates a booking candidate and persists it in WAITING status.
func (s *BookingService) Create(ctx context.Context, callerID uint64, in CreateInput) (*model.Booking, error) {
	now := s.now()

	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", callerID, ErrNotFound)
	}
	item, err := s.items.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item %d: %w", in.ItemID, ErrNotFound)
	}
	if err := validateCreate(item, callerID, in.Start, in.End, now); err != nil {
		return nil, err
	}

	b := &model.Booking{
		ItemID:      item.ID,
		ItemName:    item.Name,
		ItemOwnerID: item.OwnerID,
		BookerID:    user.ID,
		BookerName:  user.Name,
		Start:       in.Start.UTC(),
		End:         in.End.UTC(),
		Status:      model.StatusWaiting,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// validateCreate runs the creation precondition chain in order, returning
// the first violated condition.  It is a pure function over its inputs
// and the supplied clock reading.
func validateCreate(item *model.Item, callerID uint64, start, end *time.Time, now time.Time) error {
	if item.OwnerID == callerID {
		// The owner must not see their own item as bookable; report the
		// resource as absent rather than forbidden.
		return fmt.Errorf("item %d is not bookable by its owner: %w", item.ID, ErrNotFound)
	}
	if !item.Available {
		return fmt.Errorf("item %d is not available for booking: %w", item.ID, ErrInvalidOperation)
	}
	if start == nil || end == nil {
		return fmt.Errorf("booking start and end are required: %w", ErrInvalidOperation)
	}
	if start.Before(now) || end.Before(now) {
		return fmt.Errorf("booking cannot start or end in the past: %w", ErrInvalidOperation)
	}
	if !end.After(*start) {
		return fmt.Errorf("booking end must be after its start: %w", ErrInvalidOperation)
	}
	return nil
}

// Confirm applies the owner's decision to a WAITING booking.  The status
// write is a compare-and-set against the observed status, so a concurrent
// decision on the same booking causes the loser to fail instead of
// silently overwriting.
func (s *BookingService) Confirm(ctx context.Context, callerID, bookingID uint64, approve bool) (*model.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
	}
	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", callerID, ErrNotFound)
	}
	if b.ItemOwnerID != user.ID {
		// Non-owners must not learn that the booking exists.
		return nil, fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
	}

	next, err := nextStatus(b.Status, approve)
	if err != nil {
		return nil, err
	}
	if next == b.Status {
		// Re-rejecting a rejected booking changes nothing; there is no
		// write to race.
		return b, nil
	}
	ok, err := s.bookings.UpdateStatus(ctx, b.ID, b.Status, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		// The status changed under us; the booking has been decided.
		return nil, fmt.Errorf("booking %d has already been decided: %w", b.ID, ErrInvalidOperation)
	}
	b.Status = next
	return b, nil
}

// nextStatus encodes the WAITING→{APPROVED,REJECTED} transition.  An
// already-approved booking rejects any further decision, whatever value
// is requested; a rejected booking confirmed again stays rejected.
func nextStatus(cur model.BookingStatus, approve bool) (model.BookingStatus, error) {
	switch {
	case cur == model.StatusWaiting && approve:
		return model.StatusApproved, nil
	case cur == model.StatusApproved:
		return "", fmt.Errorf("booking has already been approved: %w", ErrInvalidOperation)
	default:
		return model.StatusRejected, nil
	}
}

// Get returns a booking visible to the caller: only the booker and the
// item's owner may see it; everyone else gets not-found.
func (s *BookingService) Get(ctx context.Context, callerID, bookingID uint64) (*model.Booking, error) {
	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", callerID, ErrNotFound)
	}
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
	}
	if user.ID != b.BookerID && user.ID != b.ItemOwnerID {
		return nil, fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
	}
	return b, nil
}

// ListByBooker returns the caller's own bookings filtered by view.
func (s *BookingService) ListByBooker(ctx context.Context, callerID uint64, state string, from, size int) ([]model.Booking, error) {
	return s.list(ctx, callerID, state, from, size, s.bookings.ListByBooker)
}

// ListByOwner returns the bookings made against the caller's items
// filtered by view.
func (s *BookingService) ListByOwner(ctx context.Context, callerID uint64, state string, from, size int) ([]model.Booking, error) {
	return s.list(ctx, callerID, state, from, size, s.bookings.ListByOwner)
}

func (s *BookingService) list(ctx context.Context, callerID uint64, state string, from, size int,
	fetch func(context.Context, uint64, int, int) ([]model.Booking, error)) ([]model.Booking, error) {
	now := s.now()
	if err := checkPage(from, size); err != nil {
		return nil, err
	}
	view, ok := model.ParseBookingView(state)
	if !ok {
		return nil, ErrUnsupportedView
	}
	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", callerID, ErrNotFound)
	}
	bookings, err := fetch(ctx, user.ID, size, from)
	if err != nil {
		return nil, err
	}
	return classifyBookings(view, bookings, now), nil
}

// classifyBookings keeps the bookings matching the view and returns them
// sorted by start descending (most recent first), for every view.  It is
// a pure function; "now" is the single clock reading of the operation.
func classifyBookings(view model.BookingView, bookings []model.Booking, now time.Time) []model.Booking {
	out := make([]model.Booking, 0, len(bookings))
	for _, b := range bookings {
		var keep bool
		switch view {
		case model.ViewAll:
			keep = true
		case model.ViewFuture:
			keep = b.Start.After(now)
		case model.ViewCurrent:
			keep = !b.Start.After(now) && b.End.After(now)
		case model.ViewPast:
			keep = b.End.Before(now)
		case model.ViewWaiting:
			keep = b.Status == model.StatusWaiting
		case model.ViewRejected:
			keep = b.Status == model.StatusRejected
		}
		if keep {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.After(out[j].Start) })
	return out
}

// checkPage validates offset pagination parameters.
func checkPage(from, size int) error {
	if from < 0 || size <= 0 {
		return fmt.Errorf("from must be >= 0 and size > 0: %w", ErrInvalidPagination)
	}
	return nil
}
