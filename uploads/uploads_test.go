package uploads

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"http://api.test", "/uploads/products/a.png", "http://api.test/uploads/products/a.png"},
		{"http://api.test/", "uploads/a.png", "http://api.test/uploads/a.png"},
		{"http://api.test", "https://cdn.test/a.png", "https://cdn.test/a.png"},
		{"http://api.test", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AbsoluteURL(tt.base, tt.path))
	}
}

func TestBaseURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "http://shop.test:8080/api/products", nil)

	assert.Equal(t, "http://shop.test:8080", BaseURL(c, ""))
	assert.Equal(t, "https://cdn.test", BaseURL(c, "https://cdn.test/"))

	c.Request.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://shop.test:8080", BaseURL(c, ""))
}

func multipartContext(t *testing.T, filename string, content []byte) (*gin.Context, *multipart.FileHeader) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", &body)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())

	fh, err := c.FormFile("image")
	require.NoError(t, err)
	return c, fh
}

func TestStore_SaveAndRemoveImage(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	store.now = func() time.Time { return time.Unix(0, 1700) }

	c, fh := multipartContext(t, "my shirt.png", []byte("png-bytes"))
	rel, err := store.SaveImage(c, fh, "products")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/products/1700_my_shirt.png", rel)

	local := filepath.Join(dir, "products", "1700_my_shirt.png")
	data, err := os.ReadFile(local)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Remove(rel))
	_, err = os.Stat(local)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Remove("/uploads/../etc/passwd"))
	assert.NoError(t, store.Remove("https://cdn.test/a.png"))
}

func TestStore_RejectsNonImages(t *testing.T) {
	store := NewStore(t.TempDir())
	c, fh := multipartContext(t, "script.sh", []byte("#!/bin/sh"))

	_, err := store.SaveImage(c, fh, "products")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestBackupAndCleanup(t *testing.T) {
	src := t.TempDir()
	backups := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "products"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "products", "a.png"), []byte("a"), 0o644))

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	dest, err := Backup(src, backups, at)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(dest, "2026-01-02_03-04-05"))

	data, err := os.ReadFile(filepath.Join(dest, "products", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))

	CleanupOldBackups(backups, time.Hour, time.Now())
	_, err = os.Stat(dest)
	assert.NoError(t, err, "fresh backup is kept")

	CleanupOldBackups(backups, time.Hour, time.Now().Add(48*time.Hour))
	_, err = os.Stat(dest)
	assert.True(t, os.IsNotExist(err))
}
