package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akarpova/shareit/internal/model"
)

// RequestRepo persists item requests.
type RequestRepo struct{ db *sql.DB }

func NewRequestRepo(db *sql.DB) *RequestRepo { return &RequestRepo{db: db} }

const requestColumns = "id, requestor_id, description, created_at"

// Create inserts a request and populates the generated ID on the record.
func (r *RequestRepo) Create(ctx context.Context, req *model.ItemRequest) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO requests (requestor_id, description) VALUES (?,?)",
		req.RequestorID, req.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	req.ID = uint64(id)
	return nil
}

// GetByID fetches a request by id.  A missing row yields (nil, nil).
func (r *RequestRepo) GetByID(ctx context.Context, id uint64) (*model.ItemRequest, error) {
	var req model.ItemRequest
	err := r.db.QueryRowContext(ctx,
		"SELECT "+requestColumns+" FROM requests WHERE id=? LIMIT 1", id).
		Scan(&req.ID, &req.RequestorID, &req.Description, &req.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListByRequestor returns the user's own requests ordered by creation
// time ascending.
func (r *RequestRepo) ListByRequestor(ctx context.Context, requestorID uint64) ([]model.ItemRequest, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+requestColumns+" FROM requests WHERE requestor_id=? ORDER BY created_at ASC",
		requestorID)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

// ListOthers returns requests published by everyone except the given
// user, ordered by creation time ascending, sliced by limit/offset.
func (r *RequestRepo) ListOthers(ctx context.Context, requestorID uint64, limit, offset int) ([]model.ItemRequest, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+requestColumns+" FROM requests WHERE requestor_id<>? ORDER BY created_at ASC LIMIT ? OFFSET ?",
		requestorID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func collectRequests(rows *sql.Rows) ([]model.ItemRequest, error) {
	defer rows.Close()
	requests := make([]model.ItemRequest, 0)
	for rows.Next() {
		var req model.ItemRequest
		if err := rows.Scan(&req.ID, &req.RequestorID, &req.Description, &req.CreatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
