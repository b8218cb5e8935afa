package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jobha/backend/models"
	"github.com/jobha/backend/search"
	"github.com/jobha/backend/storage"
)

// JobsHandler handles job search streaming and listing requests
type JobsHandler struct {
	coordinator *search.Coordinator
	store       *storage.JSONStore
	log         *zap.Logger
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(coordinator *search.Coordinator, store *storage.JSONStore, log *zap.Logger) *JobsHandler {
	return &JobsHandler{
		coordinator: coordinator,
		store:       store,
		log:         log,
	}
}

// Stream runs a job search session and streams results over SSE
// @Summary Stream job search results
// @Description Start a job search for a document's analysis keywords and stream discovered postings as server-sent events
// @Tags Jobs
// @Produce text/event-stream
// @Param id path string true "Document ID"
// @Success 200 {string} string "SSE stream of search events"
// @Failure 404 {object} models.ErrorResponse "Document or analysis not found"
// @Router /documents/{id}/jobs/stream [get]
func (h *JobsHandler) Stream(c *gin.Context) {
	docID := c.Param("id")

	analysis, err := h.store.GetAnalysis(docID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "Analyze the document before searching for jobs",
			Code:    http.StatusNotFound,
			Details: err.Error(),
		})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	events := h.coordinator.Stream(c.Request.Context(), docID, analysis.SearchKeywords())

	c.Stream(func(w io.Writer) bool {
		event, ok := <-events
		if !ok {
			return false
		}
		c.SSEvent("message", event)
		return true
	})
}

// List returns the stored jobs for a document
// @Summary List jobs for a document
// @Description Get a document's stored job postings sorted by match score descending
// @Tags Jobs
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} models.JobListResponse "Stored jobs"
// @Failure 404 {object} models.ErrorResponse "Document not found"
// @Router /documents/{id}/jobs [get]
func (h *JobsHandler) List(c *gin.Context) {
	jobs, err := h.store.GetJobs(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "Document not found",
			Code:  http.StatusNotFound,
		})
		return
	}

	c.JSON(http.StatusOK, models.JobListResponse{
		Jobs:  jobs,
		Total: len(jobs),
	})
}
