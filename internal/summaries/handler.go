package summaries

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"summarizer-backend/internal/acquire"
	"summarizer-backend/internal/extract"
	"summarizer-backend/internal/llm"
	"summarizer-backend/internal/shared/server/middleware"
	"summarizer-backend/internal/shared/server/respond"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Handler wires HTTP handlers to the summaries service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches summary routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/summarize", h.summarize)
	rg.GET("/summaries", h.list)
	rg.GET("/summaries/stats", h.stats)
	rg.GET("/summaries/tags", h.tags)
	rg.DELETE("/summaries/bulk", h.bulkDelete)
	rg.POST("/summaries/bulk-export", h.bulkExport)
	rg.GET("/summaries/:id", h.get)
	rg.PATCH("/summaries/:id", h.update)
	rg.DELETE("/summaries/:id", h.delete)
	rg.POST("/summaries/:id/share", h.share)
	rg.GET("/summaries/:id/export", h.export)
}

func (h *Handler) summarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid request body", nil)
		return
	}

	saved, progress, err := h.Svc.Summarize(c.Request.Context(), middleware.UserIDFromContext(c), req.input())
	c.Set(middleware.StatusTransitionKey, progress.String())
	if err != nil {
		switch {
		case errors.Is(err, acquire.ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", userMessage(err, acquire.ErrValidation), nil)
		case errors.Is(err, acquire.ErrFetch):
			respond.Error(c, http.StatusInternalServerError, "fetch_error", userMessage(err, acquire.ErrFetch), nil)
		case errors.Is(err, llm.ErrNotConfigured):
			respond.Error(c, http.StatusInternalServerError, "configuration_error", "No AI provider configured", nil)
		case errors.Is(err, extract.ErrExtraction), errors.Is(err, extract.ErrCompletion):
			respond.Error(c, http.StatusInternalServerError, "extraction_error", "Failed to generate summary", nil)
		case errors.Is(err, context.Canceled):
			respond.Error(c, http.StatusInternalServerError, "canceled", "Request canceled", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to save summary", nil)
		}
		return
	}

	c.Set(middleware.SummaryIDKey, saved.ID)
	respond.JSON(c, http.StatusCreated, newSummarizeResponse(saved))
}

func (h *Handler) list(c *gin.Context) {
	limit := defaultListLimit
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	items, err := h.Svc.List(c.Request.Context(), ListQuery{
		UserID: middleware.UserIDFromContext(c),
		Search: c.Query("q"),
		Tag:    c.Query("tag"),
		Sort:   SortOrder(c.Query("sort")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch summaries", nil)
		return
	}
	if items == nil {
		items = []Summary{}
	}
	respond.OK(c, items)
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.Svc.Stats(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch stats", nil)
		return
	}
	respond.OK(c, stats)
}

func (h *Handler) tags(c *gin.Context) {
	tags, err := h.Svc.Tags(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch tags", nil)
		return
	}
	respond.OK(c, gin.H{"tags": tags})
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.SummaryIDKey, id)

	item, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Summary not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch summary", nil)
		}
		return
	}
	respond.OK(c, item)
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.SummaryIDKey, id)

	var req patchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid request body", nil)
		return
	}

	item, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), id, req.patch())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to update summary", nil)
		return
	}
	respond.OK(c, item)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.SummaryIDKey, id)

	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to delete summary", nil)
		return
	}
	respond.OK(c, gin.H{"success": true})
}

func (h *Handler) bulkDelete(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid request body", nil)
		return
	}

	if _, err := h.Svc.BulkDelete(c.Request.Context(), middleware.UserIDFromContext(c), req.IDs); err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "ids are required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to delete summaries", nil)
		}
		return
	}
	respond.OK(c, gin.H{"success": true})
}

func (h *Handler) share(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.SummaryIDKey, id)

	shareURL, err := h.Svc.Share(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to create share link", nil)
		return
	}
	respond.OK(c, gin.H{"shareUrl": shareURL})
}

func (h *Handler) export(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.SummaryIDKey, id)

	format, err := ParseExportFormat(c.Query("format"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "format must be markdown or pdf", nil)
		return
	}

	out, err := h.Svc.Export(c.Request.Context(), middleware.UserIDFromContext(c), id, format)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Summary not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to export summary", nil)
		}
		return
	}
	respond.Attachment(c, out.FileName, out.ContentType, out.Data)
}

func (h *Handler) bulkExport(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid request body", nil)
		return
	}
	format, err := ParseExportFormat(req.Format)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "format must be markdown or pdf", nil)
		return
	}

	out, err := h.Svc.BulkExport(c.Request.Context(), middleware.UserIDFromContext(c), req.IDs, format)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "No summaries selected for export", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to export summaries", nil)
		}
		return
	}
	respond.Attachment(c, out.FileName, out.ContentType, out.Data)
}

// userMessage strips the sentinel prefix from a wrapped error so the client
// sees only the detail, e.g. "URL is required".
func userMessage(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}
