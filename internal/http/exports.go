package http

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"finance-tracker/internal/export"
	"finance-tracker/internal/storage"
)

// render writes the current user's entries in the requested format. It
// answers the request itself on failure.
func (h *Handler) render(c *gin.Context) (*bytes.Buffer, export.Format, bool) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		badRequest(c, err.Error())
		return nil, "", false
	}

	entries, err := h.entries.ListByUser(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.writeError(c, err)
		return nil, "", false
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, entries); err != nil {
		h.writeError(c, err)
		return nil, "", false
	}
	return &buf, format, true
}

func (h *Handler) exportEntries(c *gin.Context) {
	buf, format, ok := h.render(c)
	if !ok {
		return
	}

	filename := fmt.Sprintf("entries_%s.%s", time.Now().UTC().Format("20060102"), format.Extension())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (h *Handler) archiveEntries(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": storage.ErrNotConfigured.Error()})
		return
	}

	buf, format, ok := h.render(c)
	if !ok {
		return
	}

	key := storage.ArchiveKey(h.keyPrefix, currentUser(c).ID, format.Extension())
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	location, err := h.storage.Put(ctx, h.bucket, key, buf, format.ContentType())
	if err != nil {
		h.writeError(c, fmt.Errorf("upload archive: %w", err))
		return
	}

	h.log.WithField("user_id", currentUser(c).ID).
		WithField("location", location).
		Info("entries archived")
	c.JSON(http.StatusCreated, gin.H{"location": location, "key": key})
}

func (h *Handler) listArchives(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": storage.ErrNotConfigured.Error()})
		return
	}

	prefix := storage.UserPrefix(h.keyPrefix, currentUser(c).ID)
	objects, err := h.storage.ListObjects(c.Request.Context(), h.bucket, prefix)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]StorageObjectResponse, len(objects))
	for i := range objects {
		resp[i] = objectToResponse(objects[i])
	}
	c.JSON(http.StatusOK, resp)
}
