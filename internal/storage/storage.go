// Package storage persists uploaded bytes under generated keys.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned by Open when no object exists for the key.
var ErrNotFound = errors.New("storage: object not found")

// Object describes bytes that were written by Store.
type Object struct {
	Key  string
	Size int64
}

// Storage is implemented by the local disk and MinIO backends.
type Storage interface {
	// Store streams r to a new object. The size is measured from what was
	// written, not from any client-supplied length.
	Store(ctx context.Context, r io.Reader, originalName, mimeType string) (*Object, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Remove deletes the object. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// safeExt matches extensions that are kept in storage keys.
var safeExt = regexp.MustCompile(`^\.[A-Za-z0-9]{1,16}$`)

// NewKey returns a random name that keeps the extension of originalName as
// given. Extensions that are long or not alphanumeric are dropped.
func NewKey(originalName string) string {
	ext := filepath.Ext(filepath.Base(originalName))
	if !safeExt.MatchString(ext) {
		ext = ""
	}
	return uuid.New().String() + ext
}

// Classify infers a file kind from its MIME type.
func Classify(mimeType string) models.FileKind {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return models.FileKindImage
	case mimeType == "application/pdf":
		return models.FileKindDocument
	default:
		return models.FileKindOther
	}
}
