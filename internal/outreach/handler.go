package outreach

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"outreach-backend/internal/history"
	"outreach-backend/internal/jobs"
	"outreach-backend/internal/shared/server/middleware"
	"outreach-backend/internal/shared/server/respond"
	"outreach-backend/internal/webfetch"
)

type Handler struct {
	Orch     *Orchestrator
	Exporter *history.Exporter
}

func NewHandler(orch *Orchestrator, exporter *history.Exporter) *Handler {
	return &Handler{Orch: orch, Exporter: exporter}
}

// RegisterPipelineRoutes attaches the routes that call out to upstream services.
func (h *Handler) RegisterPipelineRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/extract", h.extractJobs)
	rg.POST("/emails/generate", h.generateEmail)
}

// RegisterHistoryRoutes attaches the history routes.
func (h *Handler) RegisterHistoryRoutes(rg *gin.RouterGroup) {
	rg.GET("/history", h.listHistory)
	rg.POST("/history", h.saveHistory)
	rg.DELETE("/history/:id", h.deleteHistory)
	rg.GET("/history/:id/export", h.exportHistory)
}

type extractRequest struct {
	URL string `json:"url"`
}

type generateRequest struct {
	Job jobs.JobListing `json:"job"`
}

func (h *Handler) extractJobs(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "url is required", nil)
		return
	}
	if !webfetch.ValidURL(req.URL) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "url must be an absolute http(s) URL", nil)
		return
	}
	c.Set(middleware.TargetURL, req.URL)

	listings := h.Orch.ExtractJobs(c.Request.Context(), req.URL)
	respond.OK(c, gin.H{"jobs": listings})
}

func (h *Handler) generateEmail(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.Job.Title = strings.TrimSpace(req.Job.Title)
	if req.Job.Title == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "job.title is required", nil)
		return
	}
	if req.Job.Skills == nil {
		req.Job.Skills = []string{}
	}
	c.Set(middleware.JobTitleKey, req.Job.Title)

	gen := h.Orch.Generate(c.Request.Context(), req.Job, middleware.UserIDFromContext(c))
	c.Set(middleware.DegradedKey, gen.Degraded)
	respond.OK(c, gen.Email)
}

func (h *Handler) listHistory(c *gin.Context) {
	list, err := h.Orch.ListHistory(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load history", nil)
		return
	}
	respond.OK(c, gin.H{"emails": list})
}

func (h *Handler) saveHistory(c *gin.Context) {
	var email history.GeneratedEmail
	if err := c.ShouldBindJSON(&email); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if err := h.Orch.SaveToHistory(c.Request.Context(), middleware.UserIDFromContext(c), email); err != nil {
		if errors.Is(err, history.ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save email", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"message": "Email saved successfully"})
}

func (h *Handler) deleteHistory(c *gin.Context) {
	removed, err := h.Orch.DeleteFromHistory(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete email", nil)
		return
	}
	if !removed {
		respond.Error(c, http.StatusNotFound, "not_found", "Email not found", nil)
		return
	}
	respond.NoContent(c)
}

func (h *Handler) exportHistory(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	email, err := h.Orch.FindInHistory(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Email not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load email", nil)
		return
	}

	out, err := h.Exporter.Export(c.Request.Context(), userID, email)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export email", nil)
		return
	}
	c.Header("Content-Disposition", contentDisposition(out.FileName))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", out.Body)
}

// contentDisposition quotes the file name; ids saved by clients may carry any character.
func contentDisposition(fileName string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": fileName}); v != "" {
		return v
	}
	return `attachment; filename="outreach-email.txt"`
}
