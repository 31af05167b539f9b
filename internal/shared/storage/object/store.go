package object

import (
	"context"
	"fmt"
	"io"
	"path"

	"outreach-backend/internal/shared/util"
)

// ObjectStore saves and retrieves exported documents.
type ObjectStore interface {
	// Put writes r under the caller's namespace and returns the storage key.
	// Writing the same userID and name again replaces the object.
	Put(ctx context.Context, userID, name, contentType string, r io.Reader) (storageKey string, sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}

// KeyFor builds the storage key for a user's document. The user id is hashed so keys
// never expose raw identifiers.
func KeyFor(userID, name string) (string, error) {
	sanitized, err := util.SanitizeFileName(name)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	return path.Join(util.HashUserKey(userID), sanitized), nil
}
