package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-api/models"
)

type CategoryRepo struct {
	DB *pgxpool.Pool
}

func NewCategoryRepo(db *pgxpool.Pool) *CategoryRepo { return &CategoryRepo{DB: db} }

func (r *CategoryRepo) Create(ctx context.Context, name string) (*models.Category, error) {
	id := uuid.NewString()
	row := r.DB.QueryRow(ctx,
		`INSERT INTO categories(id, name, slug) VALUES ($1,$2,$3)
		 RETURNING id, name, slug, created_at, updated_at`,
		id, name, models.Slugify(name))
	return scanCategory(row)
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM categories WHERE id=$1`, id)
	return scanCategory(row)
}

func (r *CategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM categories`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCategory(row rowScanner) (*models.Category, error) {
	var c models.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}
