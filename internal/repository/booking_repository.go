package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/akarpova/shareit/internal/model"
)

// BookingRepo provides persistence for bookings.  Every read joins the
// items and users tables so that the returned model.Booking carries the
// item name, the item's owner id and the booker name alongside the raw
// booking columns.  All timestamps are stored in UTC.
type BookingRepo struct{ db *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingSelect = `SELECT b.id, b.item_id, i.name, i.owner_id, b.booker_id, u.name,
                              b.start_at, b.end_at, b.status, b.created_at
                       FROM bookings b
                       JOIN items i ON i.id = b.item_id
                       JOIN users u ON u.id = b.booker_id`

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.ItemID, &b.ItemName, &b.ItemOwnerID, &b.BookerID, &b.BookerName,
		&b.Start, &b.End, &b.Status, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBookings(rows *sql.Rows) ([]model.Booking, error) {
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// Create inserts a booking and populates the generated ID on the record.
// Identity is assigned by the database sequence, never by the caller.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO bookings (item_id, booker_id, start_at, end_at, status) VALUES (?,?,?,?,?)",
		b.ItemID, b.BookerID, b.Start.UTC(), b.End.UTC(), b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// GetByID fetches a booking by id.  A missing row yields (nil, nil).
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, bookingSelect+" WHERE b.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

// UpdateStatus performs a conditional status write: the row is updated
// only when its current status still equals expect.  The returned bool
// reports whether a row matched the expected status (the pool is opened
// with clientFoundRows, so a write that leaves the value unchanged still
// counts), so two concurrent confirmations cannot both succeed from the
// same observed state.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, expect, next model.BookingStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=? AND status=?",
		next, id, expect)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByBooker returns the booker's bookings ordered by id descending,
// sliced by limit/offset.
func (r *BookingRepo) ListByBooker(ctx context.Context, bookerID uint64, limit, offset int) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		bookingSelect+" WHERE b.booker_id = ? ORDER BY b.id DESC LIMIT ? OFFSET ?",
		bookerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// ListByOwner returns bookings of all items owned by ownerID, ordered by
// id descending, sliced by limit/offset.
func (r *BookingRepo) ListByOwner(ctx context.Context, ownerID uint64, limit, offset int) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		bookingSelect+" WHERE i.owner_id = ? ORDER BY b.id DESC LIMIT ? OFFSET ?",
		ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// ListByBookerAndItem returns all bookings the user has made for one
// item; used for the comment eligibility check.
func (r *BookingRepo) ListByBookerAndItem(ctx context.Context, bookerID, itemID uint64) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		bookingSelect+" WHERE b.booker_id = ? AND b.item_id = ?",
		bookerID, itemID)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// LastApproved returns the approved booking of the item with the greatest
// start before now, or (nil, nil) when no such booking exists.
func (r *BookingRepo) LastApproved(ctx context.Context, itemID uint64, now time.Time) (*model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		bookingSelect+" WHERE b.item_id = ? AND b.status = ? AND b.start_at < ? ORDER BY b.start_at DESC LIMIT 1",
		itemID, model.StatusApproved, now.UTC()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

// NextApproved returns the approved booking of the item with the smallest
// start after now, or (nil, nil) when no such booking exists.
func (r *BookingRepo) NextApproved(ctx context.Context, itemID uint64, now time.Time) (*model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		bookingSelect+" WHERE b.item_id = ? AND b.status = ? AND b.start_at > ? ORDER BY b.start_at ASC LIMIT 1",
		itemID, model.StatusApproved, now.UTC()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

// ApprovedEndedBefore returns all approved bookings ending before now,
// ordered by start descending so that the first booking seen for an item
// is its most recent one.  Used for the bulk owner item listing.
func (r *BookingRepo) ApprovedEndedBefore(ctx context.Context, now time.Time) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		bookingSelect+" WHERE b.status = ? AND b.end_at < ? ORDER BY b.start_at DESC",
		model.StatusApproved, now.UTC())
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// ApprovedStartingAfter returns all approved bookings starting after now,
// ordered by start ascending so that the first booking seen for an item
// is its nearest upcoming one.
func (r *BookingRepo) ApprovedStartingAfter(ctx context.Context, now time.Time) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		bookingSelect+" WHERE b.status = ? AND b.start_at > ? ORDER BY b.start_at ASC",
		model.StatusApproved, now.UTC())
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}
