package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jobha/backend/models"
	"github.com/jobha/backend/perplexity"
	"github.com/jobha/backend/storage"
)

// GenerateHandler handles tailored CV and cover letter generation
type GenerateHandler struct {
	client *perplexity.Client
	store  *storage.JSONStore
	log    *zap.Logger
}

// NewGenerateHandler creates a new generation handler
func NewGenerateHandler(client *perplexity.Client, store *storage.JSONStore, log *zap.Logger) *GenerateHandler {
	return &GenerateHandler{
		client: client,
		store:  store,
		log:    log,
	}
}

// TailorCV generates a CV tailored to one stored job posting
// @Summary Tailor a CV to a job
// @Description Rewrite a stored CV so it targets one of the document's discovered job postings
// @Tags Generation
// @Accept json
// @Produce json
// @Param request body models.TailorRequest true "Tailoring request"
// @Success 200 {object} models.TailorResponse "Tailored CV"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 404 {object} models.ErrorResponse "Document or job not found"
// @Failure 500 {object} models.ErrorResponse "Generation failed"
// @Router /tailor [post]
func (h *GenerateHandler) TailorCV(c *gin.Context) {
	var req models.TailorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	doc, err := h.store.GetDocument(req.DocumentID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "Document not found",
			Code:  http.StatusNotFound,
		})
		return
	}

	jobIndex, err := strconv.Atoi(req.JobID)
	if err != nil || jobIndex < 0 || jobIndex >= len(doc.Jobs) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "Job not found for this document",
			Code:    http.StatusNotFound,
			Details: "job_id must be the index of a stored job",
		})
		return
	}
	job := doc.Jobs[jobIndex]

	cvText, err := h.client.TailorCV(c.Request.Context(), doc.Content, &job)
	if err != nil {
		h.log.Error("CV tailoring failed",
			zap.String("document_id", req.DocumentID),
			zap.String("job_title", job.Title),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "CV tailoring failed",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	tailored := models.TailoredCV{
		JobID:     req.JobID,
		CVText:    cvText,
		CreatedAt: time.Now(),
	}
	if err := h.store.SaveTailoredCV(req.DocumentID, req.JobID, tailored); err != nil {
		h.log.Error("failed to persist tailored CV", zap.String("document_id", req.DocumentID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to save tailored CV",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, models.TailorResponse{
		TailoredCV: tailored,
		Message:    "CV tailored successfully",
	})
}

// GetTailoredCV returns a stored tailored CV
// @Summary Get a tailored CV
// @Description Get the stored tailored CV for one (document, job) pair
// @Tags Generation
// @Produce json
// @Param id path string true "Document ID"
// @Param jobId path string true "Job index"
// @Success 200 {object} models.TailoredCV "Stored tailored CV"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Router /documents/{id}/tailored/{jobId} [get]
func (h *GenerateHandler) GetTailoredCV(c *gin.Context) {
	cv, err := h.store.GetTailoredCV(c.Param("id"), c.Param("jobId"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "Tailored CV not found",
			Code:    http.StatusNotFound,
			Details: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, cv)
}

// CoverLetter generates a cover letter for a job
// @Summary Generate a cover letter
// @Description Generate a cover letter for one job; degrades to a plain template when the generation service is unavailable
// @Tags Generation
// @Accept json
// @Produce json
// @Param request body models.CoverLetterRequest true "Cover letter request"
// @Success 200 {object} models.CoverLetterResponse "Generated cover letter"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Router /cover-letter [post]
func (h *GenerateHandler) CoverLetter(c *gin.Context) {
	var req models.CoverLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}

	letter := h.client.GenerateCoverLetter(c.Request.Context(), &req)
	c.JSON(http.StatusOK, models.CoverLetterResponse{
		CoverLetter: letter,
		Tone:        tone,
	})
}
