package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobha/backend/models"
	"github.com/jobha/backend/parser"
	"github.com/jobha/backend/perplexity"
	"github.com/jobha/backend/storage"
)

// failingGenerator simulates an unreachable model service so analysis
// degrades to the local fallback.
type failingGenerator struct{}

func (failingGenerator) Generate(ctx context.Context, req perplexity.ChatRequest) (string, error) {
	return "", fmt.Errorf("service unavailable")
}

type testEnv struct {
	router *gin.Engine
	store  *storage.JSONStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	dir := t.TempDir()

	store, err := storage.NewJSONStore(dir, "db.json", log)
	require.NoError(t, err)
	files, err := storage.NewFileStore(dir + "/uploads")
	require.NoError(t, err)

	docParser := parser.NewDocumentParser(nil, log)
	client := perplexity.NewClientWithGenerator(failingGenerator{}, nil, log)

	docs := NewDocumentHandler(docParser, client, store, files, log)
	jobs := NewJobsHandler(nil, store, log)
	gen := NewGenerateHandler(client, store, log)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/documents", docs.Upload)
	api.GET("/documents", docs.List)
	api.GET("/documents/:id", docs.Get)
	api.DELETE("/documents/:id", docs.Delete)
	api.GET("/documents/:id/html", docs.GetHTML)
	api.GET("/documents/:id/analysis", docs.GetAnalysis)
	api.GET("/documents/:id/jobs", jobs.List)
	api.POST("/tailor", gen.TailorCV)
	api.POST("/cover-letter", gen.CoverLetter)
	api.GET("/documents/:id/tailored/:jobId", gen.GetTailoredCV)

	return &testEnv{router: router, store: store}
}

func (e *testEnv) do(t *testing.T, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func uploadBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

const sampleCV = `Jane Doe
jane@example.com

SUMMARY
Software engineer with 6 years of experience in Python and Docker.

EXPERIENCE
Backend Developer at Acme Corp

EDUCATION
Bachelor of Science in Computer Science
`

func uploadSample(t *testing.T, env *testEnv) string {
	t.Helper()
	body, ct := uploadBody(t, "jane_cv.txt", sampleCV)
	w := env.do(t, http.MethodPost, "/api/documents", body, ct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp models.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.DocumentID)
	return resp.DocumentID
}

func TestUploadParsesAndAnalyzes(t *testing.T) {
	env := newTestEnv(t)

	body, ct := uploadBody(t, "jane_cv.txt", sampleCV)
	w := env.do(t, http.MethodPost, "/api/documents", body, ct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp models.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Jane Doe", resp.Name)
	assert.NotEmpty(t, resp.Sections[models.SectionSummary])
	require.NotNil(t, resp.Analysis)
	assert.True(t, resp.Analysis.Fallback)
	assert.Contains(t, []string(resp.Analysis.Skills), "python")
}

func TestUploadRejectsUnsupportedFormat(t *testing.T) {
	env := newTestEnv(t)

	body, ct := uploadBody(t, "resume.png", "binary")
	w := env.do(t, http.MethodPost, "/api/documents", body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Unsupported file format", resp.Error)
}

func TestUploadRejectsEmptyDocument(t *testing.T) {
	env := newTestEnv(t)

	body, ct := uploadBody(t, "empty.txt", "   \n  ")
	w := env.do(t, http.MethodPost, "/api/documents", body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRequiresFile(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/documents", nil, "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAndListDocuments(t *testing.T) {
	env := newTestEnv(t)
	docID := uploadSample(t, env)

	w := env.do(t, http.MethodGet, "/api/documents/"+docID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var doc models.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "cv", doc.Type)
	assert.Contains(t, doc.Content, "Jane Doe")

	w = env.do(t, http.MethodGet, "/api/documents", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list models.DocumentListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Total)

	w = env.do(t, http.MethodGet, "/api/documents/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDocumentHTML(t *testing.T) {
	env := newTestEnv(t)
	docID := uploadSample(t, env)

	w := env.do(t, http.MethodGet, "/api/documents/"+docID+"/html", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Jane Doe")
}

func TestGetAnalysisEndpoint(t *testing.T) {
	env := newTestEnv(t)
	docID := uploadSample(t, env)

	w := env.do(t, http.MethodGet, "/api/documents/"+docID+"/analysis", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var analysis models.CVAnalysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &analysis))
	assert.NotEmpty(t, analysis.SearchKeywords())

	w = env.do(t, http.MethodGet, "/api/documents/missing/analysis", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteDocument(t *testing.T) {
	env := newTestEnv(t)
	docID := uploadSample(t, env)

	w := env.do(t, http.MethodDelete, "/api/documents/"+docID, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/documents/"+docID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, "/api/documents/"+docID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListJobsForDocument(t *testing.T) {
	env := newTestEnv(t)
	docID := uploadSample(t, env)

	jobs := []models.JobPosting{
		{Title: "Low", Company: "A", MatchScore: 60},
		{Title: "High", Company: "B", MatchScore: 90},
	}
	require.NoError(t, env.store.SaveJobs(docID, jobs))

	w := env.do(t, http.MethodGet, "/api/documents/"+docID+"/jobs", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.JobListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "High", resp.Jobs[0].Title)

	w = env.do(t, http.MethodGet, "/api/documents/missing/jobs", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTailorCVJobIndexValidation(t *testing.T) {
	env := newTestEnv(t)
	docID := uploadSample(t, env)
	require.NoError(t, env.store.SaveJobs(docID, []models.JobPosting{
		{Title: "Backend Engineer", Company: "Acme"},
	}))

	for _, jobID := range []string{"1", "-1", "abc"} {
		payload, _ := json.Marshal(models.TailorRequest{DocumentID: docID, JobID: jobID})
		w := env.do(t, http.MethodPost, "/api/tailor", bytes.NewBuffer(payload), "application/json")
		assert.Equal(t, http.StatusNotFound, w.Code, "job_id %q", jobID)
	}

	payload, _ := json.Marshal(models.TailorRequest{DocumentID: "missing", JobID: "0"})
	w := env.do(t, http.MethodPost, "/api/tailor", bytes.NewBuffer(payload), "application/json")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCoverLetterFallsBackToTemplate(t *testing.T) {
	env := newTestEnv(t)

	payload, _ := json.Marshal(models.CoverLetterRequest{
		JobTitle:            "Senior Go Engineer",
		CompanyName:         "Acme",
		JobDescription:      "Build services",
		CandidateExperience: "6 years of Go",
	})
	w := env.do(t, http.MethodPost, "/api/cover-letter", bytes.NewBuffer(payload), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.CoverLetterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "professional", resp.Tone)
	assert.True(t, strings.HasPrefix(resp.CoverLetter, "Dear Hiring Manager"))
	assert.Contains(t, resp.CoverLetter, "Senior Go Engineer")
}

func TestGetTailoredCVNotFound(t *testing.T) {
	env := newTestEnv(t)
	docID := uploadSample(t, env)

	w := env.do(t, http.MethodGet, "/api/documents/"+docID+"/tailored/0", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", HealthCheck)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "1.0.0", resp.Version)
}
