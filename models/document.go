package models

import "time"

// Canonical section names, in classification priority order. A line matching
// several section keyword lists is assigned to the first match in this order.
const (
	SectionContact        = "contact"
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionCertifications = "certifications"
	SectionLanguages      = "languages"
	SectionProjects       = "projects"
	SectionAwards         = "awards"
	SectionReferences     = "references"
	SectionOther          = "other"
)

// CanonicalSections lists every section name in classification order.
// SectionOther is last; it is the default bucket, never keyword-matched.
var CanonicalSections = []string{
	SectionContact,
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionCertifications,
	SectionLanguages,
	SectionProjects,
	SectionAwards,
	SectionReferences,
	SectionOther,
}

// SectionMap maps a canonical section name to the ordered lines assigned to
// it. Lines keep document order within a section; blank lines are never
// stored.
type SectionMap map[string][]string

// Lines returns the lines for a section, nil when the section is absent.
func (m SectionMap) Lines(name string) []string {
	return m[name]
}

// Append adds a line to the named section bucket.
func (m SectionMap) Append(name string, lines ...string) {
	m[name] = append(m[name], lines...)
}

// HasStructure reports whether any section other than "other" holds content.
func (m SectionMap) HasStructure() bool {
	for name, lines := range m {
		if name != SectionOther && len(lines) > 0 {
			return true
		}
	}
	return false
}

// ParsedDocument is the result of running the ingestion pipeline over one
// uploaded file.
type ParsedDocument struct {
	Filename    string     `json:"filename"`
	Name        string     `json:"name"`
	Sections    SectionMap `json:"sections"`
	RawText     string     `json:"raw_text"`
	HTMLContent string     `json:"html_content"`
}

// TailoredCV is a generated CV/cover letter pair for one job posting.
type TailoredCV struct {
	JobID       string    `json:"job_id"`
	CVText      string    `json:"cv_text"`
	CoverLetter string    `json:"cover_letter,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Document is the stored record for one uploaded CV.
type Document struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	Type             string                `json:"type"` // always "cv" for now
	Content          string                `json:"content"`
	Sections         SectionMap            `json:"sections,omitempty"`
	HTMLContent      string                `json:"html_content,omitempty"`
	Analysis         *CVAnalysis           `json:"analysis,omitempty"`
	Jobs             []JobPosting          `json:"jobs,omitempty"`
	TailoredCVs      map[string]TailoredCV `json:"tailored_cvs,omitempty"`
	FilePath         string                `json:"file_path,omitempty"`
	OriginalFilename string                `json:"original_filename,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}
