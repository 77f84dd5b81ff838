package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Store persists uploaded files and returns the reference (path or URL)
// that clients later supply as a post's featured image. Stores know
// nothing about posts.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

// GenerateName produces a collision-avoiding file name from the original:
// a timestamp suffix plus a short random component, original extension kept.
func GenerateName(original string) string {
	ext := filepath.Ext(original)
	return fmt.Sprintf("post-%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}
