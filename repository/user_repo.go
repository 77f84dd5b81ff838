package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-api/models"
)

type UserRepo struct {
	DB *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	id := uuid.NewString()
	row := r.DB.QueryRow(ctx,
		`INSERT INTO users(id, username, email, password_hash) VALUES ($1,$2,$3,$4)
		 RETURNING id, username, email, password_hash, created_at`,
		id, username, email, passwordHash)
	return scanUser(row)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE email=$1`, email)
	return scanUser(row)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE id=$1`, id)
	return scanUser(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}
