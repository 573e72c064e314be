package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akarpova/shareit/internal/model"
)

// ItemRepo provides CRUD operations and search for items.
type ItemRepo struct{ db *sql.DB }

func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{db: db} }

const itemColumns = "id, owner_id, name, description, available, request_id, created_at"

func scanItem(row interface{ Scan(...any) error }) (*model.Item, error) {
	var (
		it        model.Item
		requestID sql.NullInt64
	)
	err := row.Scan(&it.ID, &it.OwnerID, &it.Name, &it.Description, &it.Available, &requestID, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	if requestID.Valid {
		rid := uint64(requestID.Int64)
		it.RequestID = &rid
	}
	return &it, nil
}

func collectItems(rows *sql.Rows) ([]model.Item, error) {
	defer rows.Close()
	items := make([]model.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// Create inserts an item and populates the generated ID on the record.
func (r *ItemRepo) Create(ctx context.Context, it *model.Item) error {
	var requestID any
	if it.RequestID != nil {
		requestID = *it.RequestID
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO items (owner_id, name, description, available, request_id) VALUES (?,?,?,?,?)",
		it.OwnerID, it.Name, it.Description, it.Available, requestID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)
	return nil
}

// GetByID fetches an item by id.  A missing row yields (nil, nil).
func (r *ItemRepo) GetByID(ctx context.Context, id uint64) (*model.Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return it, err
}

// Update persists the mutable item fields (name, description, available).
func (r *ItemRepo) Update(ctx context.Context, it *model.Item) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE items SET name=?, description=?, available=? WHERE id=?",
		it.Name, it.Description, it.Available, it.ID)
	return err
}

// ListByOwner returns the owner's items ordered by id ascending, sliced
// by limit/offset.
func (r *ItemRepo) ListByOwner(ctx context.Context, ownerID uint64, limit, offset int) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE owner_id=? ORDER BY id ASC LIMIT ? OFFSET ?",
		ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

// Search returns available items whose name or description contains the
// given text, case-insensitively, ordered by id ascending.
func (r *ItemRepo) Search(ctx context.Context, text string, limit, offset int) ([]model.Item, error) {
	pattern := "%" + text + "%"
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items
		 WHERE available = TRUE AND (LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?))
		 ORDER BY id ASC LIMIT ? OFFSET ?`,
		pattern, pattern, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

// ListByRequest returns all items created as answers to a request.
func (r *ItemRepo) ListByRequest(ctx context.Context, requestID uint64) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE request_id=? ORDER BY id ASC", requestID)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}
