package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"blog-api/auth"
	"blog-api/models"
	"blog-api/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memStore backs every store interface with maps so handler behavior can
// be exercised without a database.
type memStore struct {
	users      map[string]*models.User
	categories map[string]*models.Category
	posts      map[string]*models.Post
	comments   map[string]*models.Comment
	seq        int
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[string]*models.User{},
		categories: map[string]*models.Category{},
		posts:      map[string]*models.Post{},
		comments:   map[string]*models.Comment{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%04d", prefix, m.seq)
}

func (m *memStore) Create(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email || u.Username == username {
			return nil, repository.ErrConflict
		}
	}
	u := &models.User{
		ID: m.nextID("user"), Username: username, Email: email,
		PasswordHash: passwordHash, CreatedAt: time.Now(),
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *memStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

type categoryStore struct{ m *memStore }

func (s categoryStore) Create(ctx context.Context, name string) (*models.Category, error) {
	for _, c := range s.m.categories {
		if c.Name == name {
			return nil, repository.ErrConflict
		}
	}
	c := &models.Category{
		ID: s.m.nextID("cat"), Name: name, Slug: models.Slugify(name),
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	s.m.categories[c.ID] = c
	return c, nil
}

func (s categoryStore) GetByID(ctx context.Context, id string) (*models.Category, error) {
	if c, ok := s.m.categories[id]; ok {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

func (s categoryStore) List(ctx context.Context) ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range s.m.categories {
		out = append(out, *c)
	}
	return out, nil
}

type postStore struct{ m *memStore }

func (s postStore) Create(ctx context.Context, req models.CreatePostReq, authorID, featuredImage string) (*models.Post, error) {
	for _, p := range s.m.posts {
		if p.Title == req.Title {
			return nil, repository.ErrConflict
		}
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	p := &models.Post{
		ID: s.m.nextID("post"), Title: req.Title, Slug: models.Slugify(req.Title),
		Content: req.Content, CategoryID: req.Category,
		AuthorID: authorID, FeaturedImage: featuredImage,
		Excerpt: req.Excerpt, Tags: tags, IsPublished: req.IsPublished,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	if c, ok := s.m.categories[req.Category]; ok {
		p.CategoryName = c.Name
	}
	if u, ok := s.m.users[authorID]; ok {
		p.AuthorName = u.Username
	}
	s.m.posts[p.ID] = p
	return p, nil
}

func (s postStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if p, ok := s.m.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (s postStore) List(ctx context.Context, f models.PostFilter) ([]models.Post, int, error) {
	matched := []models.Post{}
	for _, p := range s.m.posts {
		if f.Keyword != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Keyword)) {
			continue
		}
		if f.Category != "" && p.CategoryID != f.Category {
			continue
		}
		matched = append(matched, *p)
	}
	// newest first; ids are monotonic so they break timestamp ties
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := len(matched)
	start := (f.Page - 1) * f.PageSize
	if start > total {
		start = total
	}
	end := start + f.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s postStore) Update(ctx context.Context, id string, req models.UpdatePostReq) (*models.Post, error) {
	p, ok := s.m.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if req.Title != nil {
		for _, other := range s.m.posts {
			if other.ID != id && other.Title == *req.Title {
				return nil, repository.ErrConflict
			}
		}
		p.Title = *req.Title
		p.Slug = models.Slugify(*req.Title)
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if req.Category != nil {
		p.CategoryID = *req.Category
	}
	if req.FeaturedImage != nil {
		p.FeaturedImage = *req.FeaturedImage
	}
	if req.Excerpt != nil {
		p.Excerpt = *req.Excerpt
	}
	if req.Tags != nil {
		p.Tags = *req.Tags
	}
	if req.IsPublished != nil {
		p.IsPublished = *req.IsPublished
	}
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (s postStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.m.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.m.posts, id)
	for cid, cm := range s.m.comments {
		if cm.PostID == id {
			delete(s.m.comments, cid)
		}
	}
	return nil
}

func (s postStore) IncrementViewCount(ctx context.Context, id string) error {
	if p, ok := s.m.posts[id]; ok {
		p.ViewCount++
	}
	return nil
}

type commentStore struct{ m *memStore }

func (s commentStore) Create(ctx context.Context, postID, authorID, content string) (*models.Comment, error) {
	c := &models.Comment{
		ID: s.m.nextID("comment"), Content: content,
		PostID: postID, AuthorID: authorID, CreatedAt: time.Now(),
	}
	if u, ok := s.m.users[authorID]; ok {
		c.AuthorName = u.Username
	}
	s.m.comments[c.ID] = c
	return c, nil
}

func (s commentStore) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, c := range s.m.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type memCache struct{ entries map[string][]byte }

func newMemCache() *memCache { return &memCache{entries: map[string][]byte{}} }

func (c *memCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *memCache) SetJSON(ctx context.Context, key string, val any) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.entries[key] = b
	return nil
}

func (c *memCache) Del(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

type memUploads struct{ saved []string }

func (u *memUploads) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	u.saved = append(u.saved, name)
	return "/uploads/" + name, nil
}

type testEnv struct {
	api     *API
	router  *gin.Engine
	store   *memStore
	cache   *memCache
	uploads *memUploads
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemStore()
	c := newMemCache()
	u := &memUploads{}
	api := &API{
		Users:          store,
		Posts:          postStore{store},
		Categories:     categoryStore{store},
		Comments:       commentStore{store},
		Cache:          c,
		Tokens:         auth.NewIssuer("test-secret", time.Hour),
		Uploads:        u,
		MaxUploadBytes: 5 << 20,
	}
	return &testEnv{api: api, router: api.Router(), store: store, cache: c, uploads: u}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case *multipartBody:
		reader = b.buf
		contentType = b.contentType
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
		contentType = "application/json"
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type multipartBody struct {
	buf         *bytes.Buffer
	contentType string
}

func newMultipart(t *testing.T, fields map[string]string, fileName string, fileContent []byte) *multipartBody {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &multipartBody{buf: buf, contentType: mw.FormDataContentType()}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// register creates a user through the API and returns its id and token.
func (e *testEnv) register(t *testing.T, username, email, password string) (string, string) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/register", "",
		map[string]string{"username": username, "email": email, "password": password})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	return body["id"].(string), body["token"].(string)
}

func (e *testEnv) createCategory(t *testing.T, token, name string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/categories", token, map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeBody(t, w)["data"].(map[string]any)
	return data["id"].(string)
}

func (e *testEnv) createPost(t *testing.T, token, title, content, categoryID string) string {
	t.Helper()
	body := newMultipart(t, map[string]string{
		"title": title, "content": content, "category": categoryID,
	}, "", nil)
	w := e.do(t, http.MethodPost, "/api/posts", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeBody(t, w)["data"].(map[string]any)
	return data["id"].(string)
}
