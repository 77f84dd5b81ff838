package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"blog-api/auth"
	"blog-api/cache"
	"blog-api/config"
	"blog-api/db"
	"blog-api/handlers"
	"blog-api/repository"
	"blog-api/search"
	"blog-api/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ---- DB
	if err := db.MigrationsUp(cfg.DatabaseURL); err != nil {
		log.Fatalf("migrations error: %v", err)
	}
	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pool.Close()
	logger.Info("DB connected")

	// ---- Search
	es, err := search.New(cfg.ESAddr, cfg.ESIndex)
	if err != nil {
		log.Fatalf("es init error: %v", err)
	}
	// best-effort: ES answers 400 when the index already exists
	_ = es.EnsureIndex(context.Background())

	// ---- Cache
	rc := cache.New(cfg.RedisAddr, cfg.RedisDB, cfg.CacheTTL)

	// ---- Upload storage
	var uploads storage.Store
	if cfg.S3Bucket != "" {
		uploads, err = storage.NewS3(cfg.S3Bucket, cfg.S3Region)
	} else {
		uploads, err = storage.NewLocal(cfg.UploadDir)
	}
	if err != nil {
		log.Fatalf("storage init error: %v", err)
	}

	api := &handlers.API{
		Users:          repository.NewUserRepo(pool),
		Posts:          repository.NewPostRepo(pool),
		Categories:     repository.NewCategoryRepo(pool),
		Comments:       repository.NewCommentRepo(pool),
		Cache:          rc,
		Search:         es,
		Tokens:         auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Uploads:        uploads,
		MaxUploadBytes: cfg.UploadMaxMB << 20,
		Logger:         logger,
	}

	r := api.Router()

	if cfg.S3Bucket == "" {
		r.Static("/uploads", cfg.UploadDir)
	}

	// Health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now()})
	})
	r.GET("/db/health", func(c *gin.Context) {
		var cnt int
		if err := pool.QueryRow(c, "SELECT count(*) FROM posts").Scan(&cnt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"db_ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"db_ok": true, "posts_count": cnt})
	})

	logger.Info("listening", "addr", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
