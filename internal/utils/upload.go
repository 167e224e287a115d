package utils

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var ErrUnsupportedImageType = errors.New("unsupported image type")

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// SaveUploadedImage stages an uploaded image under uploadDir with a random
// filename and returns the path it was written to. Callers must remove the
// staged file if the request fails afterwards.
func SaveUploadedImage(c *gin.Context, file *multipart.FileHeader, uploadDir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return "", ErrUnsupportedImageType
	}

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(uploadDir, uuid.New().String()+ext)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}

	return path, nil
}

// RemoveStagedFile deletes a previously staged upload. Missing files are
// not an error.
func RemoveStagedFile(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
