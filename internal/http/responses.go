package http

import (
	"time"

	"github.com/shopspring/decimal"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/storage"
)

type EntryResponse struct {
	ID           int64              `json:"id"`
	Description  string             `json:"description"`
	Month        *int               `json:"month"`
	Year         *int               `json:"year"`
	Amount       *decimal.Decimal   `json:"amount"`
	Type         domain.EntryType   `json:"type"`
	Status       domain.EntryStatus `json:"status"`
	UserID       int64              `json:"user_id"`
	RegisteredAt *string            `json:"registered_at,omitempty"`
}

// UserResponse never carries password material.
type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
}

type StorageObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified,omitempty"`
}

func objectToResponse(obj storage.ObjectInfo) StorageObjectResponse {
	resp := StorageObjectResponse{
		Key:  obj.Key,
		Size: obj.Size,
	}
	if obj.LastModified != nil && !obj.LastModified.IsZero() {
		v := obj.LastModified.Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}

func entryToResponse(entry domain.Entry) EntryResponse {
	resp := EntryResponse{
		ID:          entry.ID,
		Description: entry.Description,
		Month:       entry.Month,
		Year:        entry.Year,
		Amount:      entry.Amount,
		Type:        entry.Type,
		Status:      entry.Status,
		UserID:      entry.UserID,
	}
	if entry.RegisteredAt != nil {
		v := entry.RegisteredAt.Format(time.DateOnly)
		resp.RegisteredAt = &v
	}
	return resp
}

func entriesToResponse(entries []domain.Entry) []EntryResponse {
	resp := make([]EntryResponse, len(entries))
	for i := range entries {
		resp[i] = entryToResponse(entries[i])
	}
	return resp
}

func userToResponse(user domain.User) UserResponse {
	resp := UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
	if !user.CreatedAt.IsZero() {
		resp.CreatedAt = user.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
