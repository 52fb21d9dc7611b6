package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wsetiyawan/balancebook/internal/apperrors"
	portssvc "github.com/wsetiyawan/balancebook/internal/core/ports/services"
	"github.com/wsetiyawan/balancebook/internal/dto"
	"github.com/wsetiyawan/balancebook/internal/middleware"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	postingService portssvc.PostingSvc
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade, ps portssvc.PostingSvc) *journalHandler {
	return &journalHandler{
		journalService: js,
		postingService: ps,
	}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, postingService portssvc.PostingSvc) {
	h := newJournalHandler(journalService, postingService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.PUT("/:id", h.updateEntry)
		entries.DELETE("/:id", h.deleteEntry)
		entries.POST("/:id/post", h.postEntry)
	}
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Creates a balanced draft entry; an empty number is generated from the daily sequence
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateJournalEntryRequest true "Entry details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Referenced account not found"
// @Failure 409 {object} map[string]string "Unbalanced entry or duplicate number"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Router /journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), req)
	if err != nil {
		respondJournalError(c, logger, err, "Failed to create entry")
		return
	}

	middleware.EntriesCreated.Inc()
	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.String("number", entry.Number))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry by ID
// @Description Retrieves an entry with its lines ordered by line number
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			logger.Error("Failed to get entry from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves a filtered, token-paginated list of entries ordered by business date descending
// @Tags journal-entries
// @Produce  json
// @Param   q query string false "Substring match over number and memo"
// @Param   posted query bool false "Filter by posting state"
// @Param   start_date query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param   end_date query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListJournalEntriesParams{Query: c.Query("q")}
	if raw := c.Query("posted"); raw != "" {
		posted, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid posted flag: " + raw})
			return
		}
		params.Posted = &posted
	}

	var ok bool
	params.StartDate, ok = parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	params.EndDate, ok = parseDateQuery(c, "end_date")
	if !ok {
		return
	}

	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if raw := c.Query("nextToken"); raw != "" {
		params.NextToken = &raw
	}

	page, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list entries", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		}
		return
	}

	c.JSON(http.StatusOK, page)
}

// updateEntry godoc
// @Summary Update a draft journal entry
// @Description Rewrites the entry header and replaces its lines as a set; posted entries are refused
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   entry body dto.UpdateJournalEntryRequest true "Entry details"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Entry or referenced account not found"
// @Failure 409 {object} map[string]string "Entry already posted, unbalanced, or duplicate number"
// @Failure 500 {object} map[string]string "Failed to update entry"
// @Router /journal-entries/{id} [put]
func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), entryID, req)
	if err != nil {
		respondJournalError(c, logger, err, "Failed to update entry")
		return
	}

	logger.Info("Journal entry updated", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a draft journal entry
// @Description Removes a draft entry and its lines; posted entries are refused
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already posted"
// @Failure 500 {object} map[string]string "Failed to delete entry"
// @Router /journal-entries/{id} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	err := h.journalService.DeleteEntry(c.Request.Context(), entryID)
	if err != nil {
		respondJournalError(c, logger, err, "Failed to delete entry")
		return
	}

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID))
	c.Status(http.StatusNoContent)
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Validates the draft and atomically appends its ledger rows; posting is one-way
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry or referenced account not found"
// @Failure 409 {object} map[string]string "Entry already posted or unbalanced"
// @Failure 500 {object} map[string]string "Failed to post entry"
// @Router /journal-entries/{id}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	entry, err := h.postingService.PostEntry(c.Request.Context(), entryID)
	if err != nil {
		respondJournalError(c, logger, err, "Failed to post entry")
		return
	}

	middleware.EntriesPosted.Inc()
	logger.Info("Journal entry posted", slog.String("entry_id", entryID), slog.String("number", entry.Number))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// respondJournalError maps service errors from the journal write paths onto
// HTTP responses.
func respondJournalError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
