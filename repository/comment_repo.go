package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-api/models"
)

type CommentRepo struct {
	DB *pgxpool.Pool
}

func NewCommentRepo(db *pgxpool.Pool) *CommentRepo { return &CommentRepo{DB: db} }

func (r *CommentRepo) Create(ctx context.Context, postID, authorID, content string) (*models.Comment, error) {
	id := uuid.NewString()
	if _, err := r.DB.Exec(ctx,
		`INSERT INTO comments(id, content, post_id, author_id) VALUES ($1,$2,$3,$4)`,
		id, content, postID, authorID); err != nil {
		return nil, mapErr(err)
	}
	row := r.DB.QueryRow(ctx,
		`SELECT cm.id, cm.content, cm.post_id, cm.author_id, u.username, cm.created_at
		 FROM comments cm JOIN users u ON u.id = cm.author_id
		 WHERE cm.id=$1`, id)
	var c models.Comment
	if err := row.Scan(&c.ID, &c.Content, &c.PostID, &c.AuthorID, &c.AuthorName, &c.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

// ListByPost returns a post's comments newest first, author name resolved.
func (r *CommentRepo) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT cm.id, cm.content, cm.post_id, cm.author_id, u.username, cm.created_at
		 FROM comments cm JOIN users u ON u.id = cm.author_id
		 WHERE cm.post_id=$1
		 ORDER BY cm.created_at DESC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.Content, &c.PostID, &c.AuthorID, &c.AuthorName, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
