package handlers

import (
	"context"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"blog-api/auth"
	"blog-api/models"
	"blog-api/storage"
)

// pageSize is the fixed number of posts per list page.
const pageSize = 6

type UserStore interface {
	Create(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type PostStore interface {
	Create(ctx context.Context, req models.CreatePostReq, authorID, featuredImage string) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, f models.PostFilter) ([]models.Post, int, error)
	Update(ctx context.Context, id string, req models.UpdatePostReq) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	IncrementViewCount(ctx context.Context, id string) error
}

type CategoryStore interface {
	Create(ctx context.Context, name string) (*models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
}

type CommentStore interface {
	Create(ctx context.Context, postID, authorID, content string) (*models.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)
}

type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, val any) error
	Del(ctx context.Context, key string) error
}

type Searcher interface {
	IndexPost(ctx context.Context, p *models.Post) error
	DeletePost(ctx context.Context, id string) error
	SearchPosts(ctx context.Context, q string) (map[string]any, error)
	RelatedPosts(ctx context.Context, tags []string, excludeID string, size int) (map[string]any, error)
}

// API holds the explicitly injected collaborators for every handler.
// Cache and Search may be nil; the corresponding features degrade.
type API struct {
	Users      UserStore
	Posts      PostStore
	Categories CategoryStore
	Comments   CommentStore
	Cache      Cache
	Search     Searcher
	Tokens     *auth.Issuer
	Uploads    storage.Store

	MaxUploadBytes int64
	Logger         *slog.Logger
}

// Router wires every route. Body format per route is explicit: handlers
// bind JSON or multipart themselves, there is no global body parsing.
func (a *API) Router() *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	api := r.Group("/api")
	{
		api.POST("/auth/register", a.Register)
		api.POST("/auth/login", a.Login)

		api.GET("/posts", a.ListPosts)
		api.GET("/posts/search", a.SearchPosts)
		api.GET("/posts/:id", a.GetPost)
		api.GET("/posts/:id/related", a.RelatedPosts)
		api.POST("/posts", a.RequireAuth(), a.CreatePost)
		api.PUT("/posts/:id", a.RequireAuth(), a.UpdatePost)
		api.DELETE("/posts/:id", a.RequireAuth(), a.DeletePost)

		api.GET("/posts/:id/comments", a.ListComments)
		api.POST("/posts/:id/comments", a.RequireAuth(), a.CreateComment)

		api.GET("/categories", a.ListCategories)
		api.POST("/categories", a.RequireAuth(), a.CreateCategory)

		api.POST("/upload", a.RequireAuth(), a.Upload)
	}
	return r
}

func (a *API) log() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}
