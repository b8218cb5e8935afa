package perplexity

import (
	"regexp"
	"strings"
	"time"

	"github.com/jobha/backend/models"
)

// FallbackAnalyzer produces a best-effort CV analysis from keyword matching
// alone. It never fails; the result carries the Fallback flag so callers can
// tell it apart from service-derived output.
type FallbackAnalyzer struct{}

func NewFallbackAnalyzer() *FallbackAnalyzer {
	return &FallbackAnalyzer{}
}

var commonSkills = []string{
	"python", "java", "c++", "sql", "javascript", "html", "css", "docker", "aws", "azure",
	"git", "linux", "react", "node", "django", "flask", "fastapi", "go", "kubernetes",
	"machine learning", "deep learning", "nlp", "data analysis", "project management",
	"leadership", "communication",
}

var commonTitles = []string{
	"software engineer", "software developer", "data scientist", "data analyst",
	"product manager", "project manager", "devops engineer", "backend developer",
	"frontend developer", "full stack developer", "team lead", "engineering manager",
}

var commonIndustries = []string{
	"technology", "finance", "healthcare", "education", "retail",
	"consulting", "manufacturing", "telecommunications",
}

var degreeKeywords = []string{
	"phd", "doctorate", "master", "m.sc", "m.eng", "bachelor", "b.sc", "b.eng",
	"degree", "diploma",
}

var yearsExperienceRe = regexp.MustCompile(`(?i)(\d+)\+?\s*(years|yrs)`)

// Analyze scans the text against the fixed keyword lists and builds a
// complete analysis structure.
func (a *FallbackAnalyzer) Analyze(text string) *models.CVAnalysis {
	lower := strings.ToLower(text)

	analysis := models.DefaultCVAnalysis()
	analysis.Fallback = true
	analysis.AnalyzedAt = time.Now().Format(time.RFC3339)

	for _, skill := range commonSkills {
		if strings.Contains(lower, skill) {
			analysis.Skills = append(analysis.Skills, skill)
		}
	}
	for _, title := range commonTitles {
		if strings.Contains(lower, title) {
			analysis.JobTitles = append(analysis.JobTitles, title)
		}
	}
	for _, industry := range commonIndustries {
		if strings.Contains(lower, industry) {
			analysis.Industries = append(analysis.Industries, industry)
		}
	}

	if m := yearsExperienceRe.FindStringSubmatch(text); m != nil {
		analysis.YearsExperience = models.FlexibleString(m[1] + " years")
	}

	// Degree keywords are ordered highest first, so the first hit is the
	// highest level mentioned.
	for _, keyword := range degreeKeywords {
		if strings.Contains(lower, keyword) {
			analysis.EducationLevel = models.FlexibleString(capitalize(keyword))
			break
		}
	}

	keywords := append([]string{}, analysis.JobTitles...)
	limit := 5
	if len(analysis.Skills) < limit {
		limit = len(analysis.Skills)
	}
	keywords = append(keywords, analysis.Skills[:limit]...)
	analysis.JobSearchKeywords = keywords

	analysis.MergeDefaults()
	return analysis
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
