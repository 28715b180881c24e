package utils

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestWriteJSONResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSONResponse(rec, http.StatusCreated, true, "ok", map[string]interface{}{"course": map[string]string{"id": "c1"}}, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["message"])
	assert.Equal(t, map[string]interface{}{"id": "c1"}, body["course"])
	assert.NotContains(t, body, "error")

	rec = httptest.NewRecorder()
	WriteJSONResponse(rec, http.StatusBadRequest, false, "", nil, errors.New("Bu program dolu"))
	body = map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Bu program dolu", body["error"])
	assert.NotContains(t, body, "message")
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := ComparePasswordAndHash("secret123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ComparePasswordAndHash("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = ComparePasswordAndHash("x", "not-a-hash")
	assert.Error(t, err)
}

func TestTokens(t *testing.T) {
	a, b := RandomToken(), RandomToken()
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, HashToken(a), HashToken(a))
	assert.NotEqual(t, a, HashToken(a))
}

func TestFileStorage(t *testing.T) {
	ctx := context.Background()
	fs := NewFileStorage(t.TempDir(), "http://localhost:8080/")

	key, err := fs.SaveFile(ctx, "courses", "Photo.JPG", strings.NewReader("img"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "courses/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	url, err := fs.URL(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/"+key, url)

	path := filepath.Join(fs.BaseDir, filepath.FromSlash(key))
	require.FileExists(t, path)
	require.NoError(t, fs.DeleteFile(ctx, key))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, fs.DeleteFile(ctx, key))
}

func TestFileStorage_FailedWriteLeavesNothing(t *testing.T) {
	fs := NewFileStorage(t.TempDir(), "http://localhost:8080")
	broken := io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(errors.New("connection reset")))

	_, err := fs.SaveFile(context.Background(), "courses", "cover.png", broken)
	require.Error(t, err)

	entries, err := os.ReadDir(filepath.Join(fs.BaseDir, "courses"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
