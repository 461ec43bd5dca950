package storage

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// UserPrefix returns the key prefix holding the archives of one user.
func UserPrefix(keyPrefix string, userID int64) string {
	prefix := strings.Trim(keyPrefix, "/")
	if prefix == "" {
		return fmt.Sprintf("user-%d/", userID)
	}
	return fmt.Sprintf("%s/user-%d/", prefix, userID)
}

// ArchiveKey returns a fresh object key for an export of userID.
func ArchiveKey(keyPrefix string, userID int64, ext string) string {
	return UserPrefix(keyPrefix, userID) + uuid.NewString() + "." + strings.TrimPrefix(ext, ".")
}
