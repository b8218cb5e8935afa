package models

import (
	"encoding/json"
	"strings"
)

// FlexibleString can unmarshal from a string, a number, or null. LLM
// responses are inconsistent about "years_experience": sometimes "5 years",
// sometimes 5.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*f = FlexibleString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*f = FlexibleString(num.String())
		return nil
	}

	*f = ""
	return nil
}

// FlexibleStringSlice can unmarshal from either a string or []string
type FlexibleStringSlice []string

func (f *FlexibleStringSlice) UnmarshalJSON(data []byte) error {
	// Try to unmarshal as []string first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*f = arr
		return nil
	}

	// Try to unmarshal as string
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if str != "" {
			*f = []string{str}
		} else {
			*f = []string{}
		}
		return nil
	}

	// If both fail, return empty slice
	*f = []string{}
	return nil
}

// CVAnalysis is the structured extraction produced for one CV, either by the
// Perplexity API or by the local fallback analyzer.
type CVAnalysis struct {
	Skills            FlexibleStringSlice `json:"skills"`
	JobTitles         FlexibleStringSlice `json:"job_titles"`
	Industries        FlexibleStringSlice `json:"industries"`
	YearsExperience   FlexibleString      `json:"years_experience"`
	EducationLevel    FlexibleString      `json:"education_level"`
	EducationField    FlexibleString      `json:"education_field"`
	Certifications    FlexibleStringSlice `json:"certifications"`
	Languages         FlexibleStringSlice `json:"languages"`
	KeyAchievements   FlexibleStringSlice `json:"key_achievements"`
	JobSearchKeywords FlexibleStringSlice `json:"job_search_keywords"`
	AnalyzedAt        string              `json:"analyzed_at,omitempty"`
	Fallback          bool                `json:"fallback,omitempty"`
}

// DefaultCVAnalysis returns an analysis with every field present and empty.
// API responses are merged over this so downstream code never sees a missing
// field.
func DefaultCVAnalysis() *CVAnalysis {
	return &CVAnalysis{
		Skills:            []string{},
		JobTitles:         []string{},
		Industries:        []string{},
		Certifications:    []string{},
		Languages:         []string{},
		KeyAchievements:   []string{},
		JobSearchKeywords: []string{},
	}
}

// MergeDefaults fills nil slice fields so the serialized analysis always
// carries the full schema.
func (a *CVAnalysis) MergeDefaults() {
	if a.Skills == nil {
		a.Skills = []string{}
	}
	if a.JobTitles == nil {
		a.JobTitles = []string{}
	}
	if a.Industries == nil {
		a.Industries = []string{}
	}
	if a.Certifications == nil {
		a.Certifications = []string{}
	}
	if a.Languages == nil {
		a.Languages = []string{}
	}
	if a.KeyAchievements == nil {
		a.KeyAchievements = []string{}
	}
	if a.JobSearchKeywords == nil {
		a.JobSearchKeywords = []string{}
	}
}

// SearchKeywords returns the ranked keyword list used to drive a job search.
// When the analysis carries no explicit keywords, titles and skills stand in.
func (a *CVAnalysis) SearchKeywords() []string {
	if len(a.JobSearchKeywords) > 0 {
		return a.JobSearchKeywords
	}

	keywords := make([]string, 0, len(a.JobTitles)+len(a.Skills))
	for _, t := range a.JobTitles {
		if t = strings.TrimSpace(t); t != "" {
			keywords = append(keywords, t)
		}
	}
	for _, s := range a.Skills {
		if s = strings.TrimSpace(s); s != "" {
			keywords = append(keywords, s)
		}
	}
	return keywords
}
