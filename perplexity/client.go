package perplexity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jobha/backend/config"
	"github.com/jobha/backend/logger"
	"github.com/jobha/backend/models"
	"github.com/jobha/backend/utils"
)

// ChatRequest is one chat-completions call to the Perplexity API.
type ChatRequest struct {
	Model        string   `json:"model"`
	System       string   `json:"-"`
	Prompt       string   `json:"-"`
	Temperature  float64  `json:"temperature"`
	DomainFilter []string `json:"search_domain_filter,omitempty"`
}

// Generator abstracts the chat-completions round trip so tests can stub it.
type Generator interface {
	Generate(ctx context.Context, req ChatRequest) (string, error)
}

// restGenerator talks to the Perplexity chat-completions endpoint.
type restGenerator struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatPayload struct {
	Model        string        `json:"model"`
	Messages     []chatMessage `json:"messages"`
	Temperature  float64       `json:"temperature"`
	DomainFilter []string      `json:"search_domain_filter,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (g *restGenerator) Generate(ctx context.Context, req ChatRequest) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("perplexity API key not configured")
	}

	payload := chatPayload{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.Prompt},
		},
		Temperature:  req.Temperature,
		DomainFilter: req.DomainFilter,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("perplexity request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("perplexity API error: %d - %s",
			resp.StatusCode, logger.TruncateForLog(string(respBody), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return parsed.Choices[0].Message.Content, nil
}

// Client wraps the Perplexity API for CV analysis, job search, and document
// generation. Analysis degrades to the local fallback analyzer when the API
// is unreachable or returns nothing parseable.
type Client struct {
	gen           Generator
	analysisModel string
	searchModel   string
	domains       []string
	fallback      *FallbackAnalyzer
	log           *zap.Logger
}

// NewClient creates a Perplexity client from configuration.
func NewClient(cfg *config.Config, log *zap.Logger) *Client {
	return &Client{
		gen: &restGenerator{
			httpClient: utils.NewHTTPClient(time.Duration(cfg.HTTPTimeoutSeconds) * time.Second),
			baseURL:    cfg.PerplexityBaseURL,
			apiKey:     cfg.PerplexityAPIKey,
		},
		analysisModel: cfg.AnalysisModel,
		searchModel:   cfg.SearchModel,
		domains:       cfg.SearchDomainAllowlist,
		fallback:      NewFallbackAnalyzer(),
		log:           log,
	}
}

// NewClientWithGenerator wires a custom generator; tests use this.
func NewClientWithGenerator(gen Generator, domains []string, log *zap.Logger) *Client {
	return &Client{
		gen:           gen,
		analysisModel: "sonar-reasoning-pro",
		searchModel:   "sonar-pro",
		domains:       domains,
		fallback:      NewFallbackAnalyzer(),
		log:           log,
	}
}

const analysisSystemPrompt = "You are a CV analysis expert. Extract key information from the CV provided, and return structured data."

func analysisPrompt(cvText string) string {
	return fmt.Sprintf(`Analyze this CV/resume and extract the following information in a structured JSON format:

CV CONTENT:
`+"```"+`
%s
`+"```"+`

Extract and format your response as structured JSON with these fields:
1. skills: Array of technical and soft skills found in the CV
2. job_titles: Array of past job titles/positions
3. industries: Array of industries the person has worked in
4. years_experience: Estimated total years of professional experience
5. education_level: Highest education level achieved
6. education_field: Field(s) of study
7. certifications: Array of professional certifications mentioned
8. languages: Array of languages the person speaks
9. key_achievements: Array of notable achievements or projects
10. job_search_keywords: Suggested keywords for job searches based on this CV

Your response should be valid JSON that can be parsed directly, with no other text before or after. If you cannot determine a value for a field, use an appropriate empty value (empty array or null).`, cvText)
}

// AnalyzeCV analyzes CV text. It always returns a usable analysis: API
// failures and unparseable responses degrade to the fallback analyzer, never
// to an error.
func (c *Client) AnalyzeCV(ctx context.Context, cvText string) *models.CVAnalysis {
	if strings.TrimSpace(cvText) == "" {
		return c.fallback.Analyze(cvText)
	}

	raw, err := c.gen.Generate(ctx, ChatRequest{
		Model:       c.analysisModel,
		System:      analysisSystemPrompt,
		Prompt:      analysisPrompt(cvText),
		Temperature: 0.1,
	})
	if err != nil {
		c.log.Warn("analysis service unavailable, using fallback analyzer", zap.Error(err))
		return c.fallback.Analyze(cvText)
	}

	jsonText, ok := ExtractJSON(raw)
	if !ok {
		c.log.Warn("could not locate JSON in analysis response, using fallback analyzer",
			zap.String("response", logger.TruncateForLog(raw, 200)))
		return c.fallback.Analyze(cvText)
	}

	analysis := models.DefaultCVAnalysis()
	if err := json.Unmarshal([]byte(jsonText), analysis); err != nil {
		c.log.Warn("failed to parse analysis JSON, using fallback analyzer", zap.Error(err))
		return c.fallback.Analyze(cvText)
	}

	analysis.MergeDefaults()
	analysis.AnalyzedAt = time.Now().Format(time.RFC3339)
	return analysis
}

const searchSystemPrompt = "You are a job search assistant. Find current job postings matching the given keywords and return structured data."

func searchPrompt(keywords []string) string {
	return fmt.Sprintf(`Search for current job postings matching these keywords: %s

Return your findings as a JSON array of job postings. Each posting must have these fields:
{
  "title": "Job title",
  "company": "Company name",
  "location": "Location or Remote",
  "description": "Short description (max 400 chars)",
  "requirements": "Key requirements (max 300 chars)",
  "url": "Posting URL",
  "date_posted": "Date posted if known",
  "salary": "Salary range if mentioned",
  "match_score": 0-100 relevance estimate
}

Return ONLY the JSON array, no markdown formatting, no explanation. Return an empty array if nothing matches.`,
		strings.Join(keywords, ", "))
}

// searchBatchSize bounds how many postings are handed to the callback at
// once so the consumer sees incremental delivery.
const searchBatchSize = 5

// SearchJobs runs one job search and reports discovered postings through
// onResults, possibly across several partial batches. The final invocation
// always has done=true; provider failures arrive as (nil, true, err).
func (c *Client) SearchJobs(ctx context.Context, keywords []string, onResults func(batch []models.JobPosting, done bool, err error)) {
	if len(keywords) == 0 {
		onResults(nil, true, fmt.Errorf("no search keywords"))
		return
	}

	raw, err := c.gen.Generate(ctx, ChatRequest{
		Model:        c.searchModel,
		System:       searchSystemPrompt,
		Prompt:       searchPrompt(keywords),
		Temperature:  0.2,
		DomainFilter: c.domains,
	})
	if err != nil {
		onResults(nil, true, fmt.Errorf("job search failed: %w", err))
		return
	}

	jsonText, ok := ExtractJSON(raw)
	if !ok {
		onResults(nil, true, fmt.Errorf("could not locate JSON in search response"))
		return
	}

	var jobs []models.JobPosting
	if err := json.Unmarshal([]byte(jsonText), &jobs); err != nil {
		onResults(nil, true, fmt.Errorf("failed to parse search response: %w", err))
		return
	}

	c.log.Info("job search returned postings", zap.Int("count", len(jobs)))

	if len(jobs) == 0 {
		onResults(nil, true, nil)
		return
	}

	now := time.Now().Format(time.RFC3339)
	for i := range jobs {
		jobs[i].SearchTimestamp = now
	}

	for start := 0; start < len(jobs); start += searchBatchSize {
		end := start + searchBatchSize
		if end > len(jobs) {
			end = len(jobs)
		}
		onResults(jobs[start:end], end == len(jobs), nil)
	}
}

// TailorCV rewrites CV text for one job posting.
func (c *Client) TailorCV(ctx context.Context, cvText string, job *models.JobPosting) (string, error) {
	prompt := fmt.Sprintf(`Rewrite this CV so it is tailored to the job below. Keep every claim truthful to the original CV; reorder and reword to emphasize relevant experience and mirror the job's terminology.

JOB: %s at %s
DESCRIPTION: %s
REQUIREMENTS: %s

CV:
%s

Return only the tailored CV text.`, job.Title, job.Company, job.Description, job.Requirements, cvText)

	out, err := c.gen.Generate(ctx, ChatRequest{
		Model:       c.analysisModel,
		System:      "You are an expert CV writer.",
		Prompt:      prompt,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("CV tailoring failed: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// GenerateCoverLetter writes a cover letter for one job. When the service is
// unavailable a plain template letter is returned instead of an error.
func (c *Client) GenerateCoverLetter(ctx context.Context, req *models.CoverLetterRequest) string {
	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}

	prompt := fmt.Sprintf(`Write a %s cover letter for the %s position at %s.

JOB DESCRIPTION:
%s

CANDIDATE EXPERIENCE:
%s

Return only the letter text.`, tone, req.JobTitle, req.CompanyName, req.JobDescription, req.CandidateExperience)

	out, err := c.gen.Generate(ctx, ChatRequest{
		Model:       c.analysisModel,
		System:      "You are an expert cover letter writer.",
		Prompt:      prompt,
		Temperature: 0.4,
	})
	if err != nil {
		c.log.Warn("cover letter service unavailable, using template", zap.Error(err))
		return templateCoverLetter(req)
	}
	return strings.TrimSpace(out)
}

func templateCoverLetter(req *models.CoverLetterRequest) string {
	return fmt.Sprintf(`Dear Hiring Manager,

I am writing to express my interest in the %s position at %s. With my background and experience with relevant technologies, I believe I would be a valuable addition to your team.

%s

I am excited about the opportunity to contribute to %s and would welcome the chance to discuss how my background and skills would be a good fit for your team.

Sincerely,
[Candidate Name]`, req.JobTitle, req.CompanyName, req.CandidateExperience, req.CompanyName)
}
