package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexibleStringAcceptsNumbersAndNull(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want FlexibleString
	}{
		{"string", `"5 years"`, "5 years"},
		{"integer", `5`, "5"},
		{"float", `7.5`, "7.5"},
		{"null", `null`, ""},
		{"object", `{"x":1}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexibleString
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlexibleStringSliceAcceptsScalars(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want FlexibleStringSlice
	}{
		{"array", `["go","python"]`, FlexibleStringSlice{"go", "python"}},
		{"single string", `"go"`, FlexibleStringSlice{"go"}},
		{"empty string", `""`, FlexibleStringSlice{}},
		{"number", `42`, FlexibleStringSlice{}},
		{"null", `null`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexibleStringSlice
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCVAnalysisDecodesMixedShapes(t *testing.T) {
	raw := `{
		"skills": "python",
		"job_titles": ["backend developer"],
		"years_experience": 6,
		"education_level": "Bachelor",
		"job_search_keywords": ["python developer", "backend engineer"]
	}`

	var analysis CVAnalysis
	require.NoError(t, json.Unmarshal([]byte(raw), &analysis))

	assert.Equal(t, FlexibleStringSlice{"python"}, analysis.Skills)
	assert.Equal(t, FlexibleString("6"), analysis.YearsExperience)

	analysis.MergeDefaults()
	assert.NotNil(t, analysis.Industries)
	assert.NotNil(t, analysis.Certifications)
}

func TestSearchKeywordsPreferExplicitList(t *testing.T) {
	analysis := CVAnalysis{
		Skills:            FlexibleStringSlice{"python", "docker"},
		JobTitles:         FlexibleStringSlice{"backend developer"},
		JobSearchKeywords: FlexibleStringSlice{"python developer"},
	}
	assert.Equal(t, []string{"python developer"}, analysis.SearchKeywords())
}

func TestSearchKeywordsFallBackToTitlesThenSkills(t *testing.T) {
	analysis := CVAnalysis{
		Skills:    FlexibleStringSlice{"python", "  ", "docker"},
		JobTitles: FlexibleStringSlice{"backend developer", ""},
	}
	assert.Equal(t, []string{"backend developer", "python", "docker"}, analysis.SearchKeywords())
}

func TestFlexibleIntShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want FlexibleInt
	}{
		{"number", `85`, 85},
		{"float truncates", `85.7`, 85},
		{"numeric string", `"85"`, 85},
		{"word", `"high"`, -1},
		{"null", `null`, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexibleInt
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJobPostingDedupKey(t *testing.T) {
	a := JobPosting{Title: "Engineer", Company: "Acme"}
	b := JobPosting{Title: "Engineer", Company: "Acme", Location: "Berlin"}
	c := JobPosting{Title: "Engineer", Company: "Globex"}

	assert.Equal(t, a.DedupKey(), b.DedupKey())
	assert.NotEqual(t, a.DedupKey(), c.DedupKey())
}
