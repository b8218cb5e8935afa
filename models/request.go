package models

// ErrorResponse represents an API error response
// @Description Standard error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Code    int    `json:"code" example:"400"`
	Details string `json:"details,omitempty" example:"file is required"`
}

// HealthResponse represents health check response
// @Description Server health status
type HealthResponse struct {
	Status  string `json:"status" example:"healthy"`
	Service string `json:"service" example:"Jobha Job Agent API"`
	Version string `json:"version" example:"1.0.0"`
}

// UploadResponse represents CV upload response
// @Description Result of uploading and parsing a CV document
type UploadResponse struct {
	Success    bool        `json:"success" example:"true"`
	DocumentID string      `json:"document_id,omitempty" example:"4f7c9a8e-..."`
	Filename   string      `json:"filename,omitempty" example:"jane_doe_cv.pdf"`
	Name       string      `json:"name,omitempty" example:"Jane Doe"`
	Sections   SectionMap  `json:"sections,omitempty"`
	Analysis   *CVAnalysis `json:"analysis,omitempty"`
	Message    string      `json:"message,omitempty" example:"Document processed successfully"`
}

// DocumentListResponse is the document listing payload
// @Description Stored documents, newest first
type DocumentListResponse struct {
	Documents []Document `json:"documents"`
	Total     int        `json:"total" example:"3"`
}

// JobListResponse is the non-streaming job listing payload
// @Description Jobs found for a document, sorted by match score descending
type JobListResponse struct {
	Jobs  []JobPosting `json:"jobs"`
	Total int          `json:"total" example:"25"`
}

// TailorRequest asks for a CV tailored to one job posting. JobID is the
// zero-based index of the job in the document's stored job list.
// @Description Tailored CV generation request
type TailorRequest struct {
	DocumentID string `json:"document_id" binding:"required" example:"4f7c9a8e-..."`
	JobID      string `json:"job_id" binding:"required" example:"2"`
}

// TailorResponse carries a generated tailored CV
// @Description Tailored CV generation result
type TailorResponse struct {
	TailoredCV TailoredCV `json:"tailored_cv"`
	Message    string     `json:"message,omitempty"`
}

// CoverLetterRequest asks for a cover letter for one job
// @Description Cover letter generation request
type CoverLetterRequest struct {
	JobTitle            string `json:"job_title" binding:"required" example:"Senior Go Engineer"`
	CompanyName         string `json:"company_name" binding:"required" example:"Acme"`
	JobDescription      string `json:"job_description" binding:"required"`
	CandidateExperience string `json:"candidate_experience" binding:"required"`
	Tone                string `json:"tone,omitempty" example:"professional"`
}

// CoverLetterResponse carries a generated cover letter
// @Description Cover letter generation result
type CoverLetterResponse struct {
	CoverLetter string `json:"cover_letter"`
	Tone        string `json:"tone" example:"professional"`
}
