package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobha/backend/models"
	"github.com/jobha/backend/parser"
	"github.com/jobha/backend/perplexity"
	"github.com/jobha/backend/storage"
)

// DocumentHandler handles CV upload, listing, and rendering requests
type DocumentHandler struct {
	parser   *parser.DocumentParser
	analyzer *perplexity.Client
	store    *storage.JSONStore
	files    *storage.FileStore
	log      *zap.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(
	docParser *parser.DocumentParser,
	analyzer *perplexity.Client,
	store *storage.JSONStore,
	files *storage.FileStore,
	log *zap.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		parser:   docParser,
		analyzer: analyzer,
		store:    store,
		files:    files,
		log:      log,
	}
}

// Upload handles CV upload and processing
// @Summary Upload a CV document
// @Description Upload a CV file (PDF, DOC, DOCX, TXT), extract its text, segment it into sections, and analyze it
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CV file to upload"
// @Success 201 {object} models.UploadResponse "Document processed"
// @Failure 400 {object} models.ErrorResponse "Invalid or unreadable file"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "CV file is required",
			Code:  http.StatusBadRequest,
		})
		return
	}
	defer file.Close()

	if !h.parser.IsSupportedFormat(header.Filename) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Unsupported file format",
			Code:    http.StatusBadRequest,
			Details: "supported formats: PDF, DOC, DOCX, TXT",
		})
		return
	}

	path, err := h.files.SaveUpload(file, header)
	if err != nil {
		h.log.Error("failed to save upload", zap.String("filename", header.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to save uploaded file",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	parsed, err := h.parser.Parse(c.Request.Context(), path, header.Filename)
	if err != nil {
		h.files.Remove(path)

		var extractErr *parser.ExtractionError
		if errors.As(err, &extractErr) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Could not extract text from the document",
				Code:    http.StatusBadRequest,
				Details: extractErr.Reason,
			})
			return
		}

		h.log.Error("document parsing failed", zap.String("filename", header.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Document processing failed",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	// Analysis never fails: service problems degrade to the local
	// fallback analyzer.
	analysis := h.analyzer.AnalyzeCV(c.Request.Context(), parsed.RawText)

	now := time.Now()
	doc := &models.Document{
		ID:               uuid.NewString(),
		Name:             parsed.Name,
		Type:             "cv",
		Content:          parsed.RawText,
		Sections:         parsed.Sections,
		HTMLContent:      parsed.HTMLContent,
		Analysis:         analysis,
		FilePath:         path,
		OriginalFilename: header.Filename,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := h.store.AddDocument(doc); err != nil {
		h.files.Remove(path)
		h.log.Error("failed to store document", zap.String("filename", header.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to store document",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	h.log.Info("document processed",
		zap.String("document_id", doc.ID),
		zap.String("filename", header.Filename),
		zap.Bool("fallback_analysis", analysis.Fallback))

	c.JSON(http.StatusCreated, models.UploadResponse{
		Success:    true,
		DocumentID: doc.ID,
		Filename:   header.Filename,
		Name:       doc.Name,
		Sections:   doc.Sections,
		Analysis:   analysis,
		Message:    "Document processed successfully",
	})
}

// List returns all stored documents
// @Summary List documents
// @Description List all stored documents, newest first
// @Tags Documents
// @Produce json
// @Success 200 {object} models.DocumentListResponse "Stored documents"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.store.ListDocuments()
	if err != nil {
		h.log.Error("failed to list documents", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to list documents",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, models.DocumentListResponse{
		Documents: docs,
		Total:     len(docs),
	})
}

// Get returns one document by ID
// @Summary Get a document
// @Description Get one stored document with its sections and analysis
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} models.Document "Stored document"
// @Failure 404 {object} models.ErrorResponse "Document not found"
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.store.GetDocument(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "Document not found",
			Code:  http.StatusNotFound,
		})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// GetHTML returns a document's rendered HTML view
// @Summary Get rendered document HTML
// @Description Get the structured HTML rendering of a stored document
// @Tags Documents
// @Produce html
// @Param id path string true "Document ID"
// @Success 200 {string} string "Rendered HTML"
// @Failure 404 {object} models.ErrorResponse "Document not found"
// @Router /documents/{id}/html [get]
func (h *DocumentHandler) GetHTML(c *gin.Context) {
	doc, err := h.store.GetDocument(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "Document not found",
			Code:  http.StatusNotFound,
		})
		return
	}

	html := doc.HTMLContent
	if html == "" {
		html = parser.GenerateHTML(doc.OriginalFilename, doc.Sections, doc.Content)
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// GetAnalysis returns a document's stored analysis
// @Summary Get document analysis
// @Description Get the structured CV analysis for a document
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} models.CVAnalysis "Stored analysis"
// @Failure 404 {object} models.ErrorResponse "Document or analysis not found"
// @Router /documents/{id}/analysis [get]
func (h *DocumentHandler) GetAnalysis(c *gin.Context) {
	analysis, err := h.store.GetAnalysis(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "Analysis not found",
			Code:    http.StatusNotFound,
			Details: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// Delete removes a document and its stored upload
// @Summary Delete a document
// @Description Delete a stored document and its uploaded file
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} map[string]interface{} "Deletion result"
// @Failure 404 {object} models.ErrorResponse "Document not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	filePath, err := h.store.DeleteDocument(id)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Document not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		h.log.Error("failed to delete document", zap.String("document_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to delete document",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	if err := h.files.Remove(filePath); err != nil {
		h.log.Warn("failed to remove uploaded file", zap.String("path", filePath), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Document deleted",
	})
}
