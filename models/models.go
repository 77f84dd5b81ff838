package models

import "time"

// DefaultFeaturedImage is stored on posts created without a cover image.
const DefaultFeaturedImage = "default-post.jpg"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Post struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Content       string    `json:"content"`
	CategoryID    string    `json:"category"`
	CategoryName  string    `json:"category_name,omitempty"`
	AuthorID      string    `json:"author"`
	AuthorName    string    `json:"author_name,omitempty"`
	FeaturedImage string    `json:"featured_image"`
	Excerpt       string    `json:"excerpt"`
	Tags          []string  `json:"tags"`
	ViewCount     int       `json:"view_count"`
	IsPublished   bool      `json:"is_published"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Comment struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	PostID     string    `json:"post"`
	AuthorID   string    `json:"author"`
	AuthorName string    `json:"author_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type RegisterReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreatePostReq is bound from multipart form fields; the optional cover
// image file is handled separately by the upload store.
type CreatePostReq struct {
	Title       string   `form:"title"`
	Content     string   `form:"content"`
	Category    string   `form:"category"`
	Excerpt     string   `form:"excerpt"`
	Tags        []string `form:"tags"`
	IsPublished bool     `form:"is_published"`
}

type UpdatePostReq struct {
	Title         *string   `json:"title"`
	Content       *string   `json:"content"`
	Category      *string   `json:"category"`
	FeaturedImage *string   `json:"featured_image"`
	Excerpt       *string   `json:"excerpt"`
	Tags          *[]string `json:"tags"`
	IsPublished   *bool     `json:"is_published"`
}

type CreateCommentReq struct {
	Content string `json:"content"`
}

type CreateCategoryReq struct {
	Name string `json:"name" binding:"required"`
}

// PostFilter narrows ListPosts. Zero values mean "no filter".
type PostFilter struct {
	Keyword  string
	Category string
	Page     int
	PageSize int
}
