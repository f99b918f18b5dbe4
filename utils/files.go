// utils/files.go - Upload storage helpers
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadBytes caps uploaded document size at 10 MB.
const MaxUploadBytes = 10 << 20

var allowedUploadTypes = map[string]bool{
	"application/pdf":  true,
	"image/jpeg":       true,
	"image/jpg":        true,
	"image/png":        true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

// AllowedUploadType reports whether a mime type is accepted for document
// uploads.
func AllowedUploadType(mimeType string) bool {
	return allowedUploadTypes[strings.ToLower(strings.TrimSpace(mimeType))]
}

// UploadBasePath returns the root directory for stored uploads.
func UploadBasePath() string {
	base := os.Getenv("UPLOAD_PATH")
	if base == "" {
		base = "./uploads"
	}
	return base
}

// UploadDir returns (and creates) the storage directory for one application.
func UploadDir(module string, applicationID int) (string, error) {
	dir := filepath.Join(UploadBasePath(), module, strconv.Itoa(applicationID))
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}
	return dir, nil
}

// StoredFileName builds a collision-free stored name, keeping the original
// extension for download content-type detection.
func StoredFileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s%s", uuid.New().String(), ext)
}
