package repository

import (
	"context"
	"database/sql"

	"github.com/akarpova/shareit/internal/model"
)

// CommentRepo persists item comments.  Reads join the users table so the
// author's display name travels with the comment.
type CommentRepo struct{ db *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{db: db} }

// Create inserts a comment and populates the generated ID on the record.
func (r *CommentRepo) Create(ctx context.Context, cm *model.Comment) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO comments (item_id, author_id, text) VALUES (?,?,?)",
		cm.ItemID, cm.AuthorID, cm.Text)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cm.ID = uint64(id)
	return nil
}

// ListByItem returns all comments for an item ordered by creation time
// ascending (oldest first).
func (r *CommentRepo) ListByItem(ctx context.Context, itemID uint64) ([]model.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.item_id, c.author_id, u.name, c.text, c.created_at
		 FROM comments c
		 JOIN users u ON u.id = c.author_id
		 WHERE c.item_id = ?
		 ORDER BY c.created_at ASC`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	comments := make([]model.Comment, 0)
	for rows.Next() {
		var cm model.Comment
		if err := rows.Scan(&cm.ID, &cm.ItemID, &cm.AuthorID, &cm.AuthorName, &cm.Text, &cm.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, cm)
	}
	return comments, rows.Err()
}
