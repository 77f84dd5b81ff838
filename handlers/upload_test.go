package handlers

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register(t, "alice", "alice@example.com", "secret1")

	body := newMultipart(t, nil, "photo.jpg", []byte("jpeg-bytes"))
	w := env.do(t, http.MethodPost, "/api/upload", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decodeBody(t, w)
	filename := resp["filename"].(string)
	assert.True(t, strings.HasPrefix(filename, "post-"))
	assert.True(t, strings.HasSuffix(filename, ".jpg"))
	assert.Equal(t, "/uploads/"+filename, resp["imagePath"])
}

func TestUploadRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	body := newMultipart(t, nil, "photo.jpg", []byte("jpeg-bytes"))
	w := env.do(t, http.MethodPost, "/api/upload", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadNoFile(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register(t, "alice", "alice@example.com", "secret1")

	body := newMultipart(t, map[string]string{"unrelated": "field"}, "", nil)
	w := env.do(t, http.MethodPost, "/api/upload", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded.", decodeBody(t, w)["error"])
}

func TestUploadTooLarge(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register(t, "alice", "alice@example.com", "secret1")
	env.api.MaxUploadBytes = 16

	body := newMultipart(t, nil, "big.png", bytes.Repeat([]byte("x"), 64))
	w := env.do(t, http.MethodPost, "/api/upload", token, body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Empty(t, env.uploads.saved)
}

// Two uploads of the same original never collide on disk.
func TestUploadNamesDoNotCollide(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register(t, "alice", "alice@example.com", "secret1")

	for i := 0; i < 2; i++ {
		body := newMultipart(t, nil, "same.png", []byte("data"))
		w := env.do(t, http.MethodPost, "/api/upload", token, body)
		require.Equal(t, http.StatusCreated, w.Code)
	}
	require.Len(t, env.uploads.saved, 2)
	assert.NotEqual(t, env.uploads.saved[0], env.uploads.saved[1])
}
