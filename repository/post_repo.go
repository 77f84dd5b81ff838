package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-api/models"
)

type PostRepo struct {
	DB *pgxpool.Pool
}

func NewPostRepo(db *pgxpool.Pool) *PostRepo { return &PostRepo{DB: db} }

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const postCols = `p.id, p.title, p.slug, p.content, p.category_id, c.name,
	p.author_id, u.username, p.featured_image, p.excerpt, p.tags,
	p.view_count, p.is_published, p.created_at, p.updated_at`

func (r *PostRepo) Create(ctx context.Context, req models.CreatePostReq, authorID, featuredImage string) (*models.Post, error) {
	id := uuid.NewString()
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	_, err := r.DB.Exec(ctx,
		`INSERT INTO posts(id, title, slug, content, category_id, author_id,
		   featured_image, excerpt, tags, is_published)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		id, req.Title, models.Slugify(req.Title), req.Content, req.Category,
		authorID, featuredImage, req.Excerpt, tags, req.IsPublished)
	if err != nil {
		return nil, mapErr(err)
	}
	return r.GetByID(ctx, id)
}

func (r *PostRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+postCols+`
		 FROM posts p
		 JOIN categories c ON c.id = p.category_id
		 JOIN users u ON u.id = p.author_id
		 WHERE p.id=$1`, id)
	return scanPost(row)
}

// List applies the combinable keyword/category filters and returns one page
// plus the total match count.
func (r *PostRepo) List(ctx context.Context, f models.PostFilter) ([]models.Post, int, error) {
	conds := sq.And{}
	if f.Keyword != "" {
		conds = append(conds, sq.ILike{"p.title": "%" + f.Keyword + "%"})
	}
	if f.Category != "" {
		conds = append(conds, sq.Eq{"p.category_id": f.Category})
	}

	countSQL, countArgs, err := psql.Select("count(*)").From("posts p").Where(conds).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.DB.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listSQL, listArgs, err := psql.Select(postCols).
		From("posts p").
		Join("categories c ON c.id = p.category_id").
		Join("users u ON u.id = p.author_id").
		Where(conds).
		OrderBy("p.created_at DESC", "p.id DESC").
		Limit(uint64(f.PageSize)).
		Offset(uint64((f.Page - 1) * f.PageSize)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

func (r *PostRepo) Update(ctx context.Context, id string, req models.UpdatePostReq) (*models.Post, error) {
	ub := psql.Update("posts").Set("updated_at", sq.Expr("now()"))
	changed := false
	if req.Title != nil {
		ub = ub.Set("title", *req.Title).Set("slug", models.Slugify(*req.Title))
		changed = true
	}
	if req.Content != nil {
		ub = ub.Set("content", *req.Content)
		changed = true
	}
	if req.Category != nil {
		ub = ub.Set("category_id", *req.Category)
		changed = true
	}
	if req.FeaturedImage != nil {
		ub = ub.Set("featured_image", *req.FeaturedImage)
		changed = true
	}
	if req.Excerpt != nil {
		ub = ub.Set("excerpt", *req.Excerpt)
		changed = true
	}
	if req.Tags != nil {
		ub = ub.Set("tags", *req.Tags)
		changed = true
	}
	if req.IsPublished != nil {
		ub = ub.Set("is_published", *req.IsPublished)
		changed = true
	}
	if !changed {
		return nil, errors.New("nothing to update")
	}

	updSQL, updArgs, err := ub.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	tag, err := r.DB.Exec(ctx, updSQL, updArgs...)
	if err != nil {
		return nil, mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementViewCount is bookkeeping on single-post reads; callers treat
// failures as non-fatal.
func (r *PostRepo) IncrementViewCount(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `UPDATE posts SET view_count = view_count + 1 WHERE id=$1`, id)
	return err
}

func scanPost(row rowScanner) (*models.Post, error) {
	var p models.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.CategoryID, &p.CategoryName,
		&p.AuthorID, &p.AuthorName, &p.FeaturedImage, &p.Excerpt, &p.Tags,
		&p.ViewCount, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}
