package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finance-tracker/internal/domain"
)

type entryRequest struct {
	Description  string           `json:"description"`
	Month        *int             `json:"month"`
	Year         *int             `json:"year"`
	Amount       *decimal.Decimal `json:"amount"`
	Type         string           `json:"type" binding:"omitempty,entry_type"`
	Status       string           `json:"status" binding:"omitempty,entry_status"`
	RegisteredAt string           `json:"registered_at"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// toEntry builds an entry owned by userID. The type may be empty; the
// service rejects that with its own validation message.
func (r entryRequest) toEntry(userID int64) (domain.Entry, error) {
	entry := domain.Entry{
		Description: r.Description,
		Month:       r.Month,
		Year:        r.Year,
		Amount:      r.Amount,
		UserID:      userID,
	}
	if r.Type != "" {
		entry.Type, _ = domain.ParseEntryType(r.Type)
	}
	if r.Status != "" {
		entry.Status, _ = domain.ParseEntryStatus(r.Status)
	}
	if r.RegisteredAt != "" {
		registered, err := parseDate(r.RegisteredAt)
		if err != nil {
			return domain.Entry{}, err
		}
		entry.RegisteredAt = &registered
	}
	return entry, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func (h *Handler) createEntry(c *gin.Context) {
	user := currentUser(c)

	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindingMessage(err))
		return
	}
	entry, err := req.toEntry(user.ID)
	if err != nil {
		badRequest(c, "invalid registered_at, expected YYYY-MM-DD")
		return
	}

	created, err := h.entries.Create(c.Request.Context(), entry)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entryToResponse(*created))
}

func (h *Handler) getEntry(c *gin.Context) {
	entry, ok := h.loadOwnedEntry(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, entryToResponse(*entry))
}

func (h *Handler) updateEntry(c *gin.Context) {
	existing, ok := h.loadOwnedEntry(c)
	if !ok {
		return
	}

	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindingMessage(err))
		return
	}
	entry, err := req.toEntry(existing.UserID)
	if err != nil {
		badRequest(c, "invalid registered_at, expected YYYY-MM-DD")
		return
	}
	entry.ID = existing.ID
	if entry.Status == "" {
		entry.Status = existing.Status
	}
	if entry.RegisteredAt == nil {
		entry.RegisteredAt = existing.RegisteredAt
	}

	updated, err := h.entries.Update(c.Request.Context(), entry)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, entryToResponse(*updated))
}

func (h *Handler) updateEntryStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindingMessage(err))
		return
	}
	status, ok := domain.ParseEntryStatus(req.Status)
	if !ok {
		badRequest(c, errInvalidStatus)
		return
	}

	entry, ok := h.loadOwnedEntry(c)
	if !ok {
		return
	}

	updated, err := h.entries.ChangeStatus(c.Request.Context(), *entry, status)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, entryToResponse(*updated))
}

func (h *Handler) deleteEntry(c *gin.Context) {
	entry, ok := h.loadOwnedEntry(c)
	if !ok {
		return
	}

	if err := h.entries.Delete(c.Request.Context(), *entry); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// searchEntries filters the current user's entries by the query parameters
// description, month, year, type and status. Absent parameters do not
// constrain the result.
func (h *Handler) searchEntries(c *gin.Context) {
	user := currentUser(c)
	filter := domain.Entry{
		UserID:      user.ID,
		Description: c.Query("description"),
	}

	var err error
	if filter.Month, err = optionalQueryInt(c, "month"); err != nil {
		badRequest(c, "invalid month")
		return
	}
	if filter.Year, err = optionalQueryInt(c, "year"); err != nil {
		badRequest(c, "invalid year")
		return
	}
	if raw := c.Query("type"); raw != "" {
		typ, ok := domain.ParseEntryType(raw)
		if !ok {
			badRequest(c, domain.ErrInvalidType.Error())
			return
		}
		filter.Type = typ
	}
	if raw := c.Query("status"); raw != "" {
		status, ok := domain.ParseEntryStatus(raw)
		if !ok {
			badRequest(c, errInvalidStatus)
			return
		}
		filter.Status = status
	}

	entries, err := h.entries.Search(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, entriesToResponse(entries))
}

// loadOwnedEntry resolves :id to an entry of the current user. Entries of
// other users answer 404 like missing ones.
func (h *Handler) loadOwnedEntry(c *gin.Context) (*domain.Entry, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid entry id")
		return nil, false
	}

	entry, err := h.entries.FindByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return nil, false
	}
	if user := currentUser(c); user == nil || entry.UserID != user.ID {
		h.writeError(c, domain.ErrEntryNotFound)
		return nil, false
	}
	return entry, true
}

func optionalQueryInt(c *gin.Context, key string) (*int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
