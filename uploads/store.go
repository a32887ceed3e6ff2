// Package uploads stores user-supplied images on local disk and turns their
// stored relative paths into absolute URLs for clients.
package uploads

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/gin-gonic/gin"
)

// PublicPrefix is the URL prefix the uploads directory is served under.
const PublicPrefix = "/uploads"

// MaxImageSize caps a single image upload.
const MaxImageSize = 5 << 20

var (
	unsafeChars     = regexp.MustCompile(`[^\w\-.]`)
	imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}
)

type Store struct {
	dir string
	now func() time.Time
}

func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

func (s *Store) Dir() string { return s.dir }

// SaveImage writes the upload under <dir>/<subdir> and returns its relative
// public path, e.g. "/uploads/products/1700000000_shirt.png".
func (s *Store) SaveImage(c *gin.Context, file *multipart.FileHeader, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		return "", apperror.Validation("Invalid image", map[string]string{"image": "must be a jpg, png, gif or webp file"})
	}
	if file.Size > MaxImageSize {
		return "", apperror.Validation("Invalid image", map[string]string{"image": "must be at most 5MB"})
	}

	targetDir := filepath.Join(s.dir, subdir)
	if err := os.MkdirAll(targetDir, os.ModePerm); err != nil {
		return "", apperror.Internal("Failed to create upload folder", err)
	}

	base := strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename))
	base = unsafeChars.ReplaceAllString(strings.ReplaceAll(base, " ", "_"), "_")
	filename := fmt.Sprintf("%d_%s%s", s.now().UnixNano(), base, ext)

	if err := c.SaveUploadedFile(file, filepath.Join(targetDir, filename)); err != nil {
		return "", apperror.Internal("Failed to save image", err)
	}
	return fmt.Sprintf("%s/%s/%s", PublicPrefix, subdir, filename), nil
}

// Remove deletes a previously stored image. Paths outside the store, remote
// URLs and the shared default images are ignored.
func (s *Store) Remove(relPath string) error {
	if relPath == "" || !strings.HasPrefix(relPath, PublicPrefix+"/") || strings.Contains(relPath, "..") {
		return nil
	}
	if strings.HasSuffix(relPath, "/default.png") {
		return nil
	}
	local := filepath.Join(s.dir, filepath.FromSlash(strings.TrimPrefix(relPath, PublicPrefix+"/")))
	if err := os.Remove(local); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
