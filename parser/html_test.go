package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jobha/backend/models"
)

func TestGenerateHTMLIdempotent(t *testing.T) {
	text := "Jane Doe\njane@x.com\nEXPERIENCE:\nSenior Engineer at Acme\nEDUCATION:\nBSc Computer Science"
	sections := ExtractSections(text)

	first := GenerateHTML("jane_doe_cv.pdf", sections, text)
	second := GenerateHTML("jane_doe_cv.pdf", sections, text)

	assert.Equal(t, first, second)
}

func TestGenerateHTMLSectionContent(t *testing.T) {
	sections := models.SectionMap{
		models.SectionContact:    {"Jane Doe", "jane@x.com", "+1 555 123 4567"},
		models.SectionExperience: {"Senior Engineer at Acme"},
		models.SectionSkills:     {"Go, Python, SQL"},
		models.SectionLanguages:  {"English: Native", "Spanish"},
	}

	out := GenerateHTML("cv.pdf", sections, "raw")

	assert.Contains(t, out, `<div class="cv-name">Jane Doe</div>`)
	assert.Contains(t, out, "fas fa-envelope")
	assert.Contains(t, out, "fas fa-phone")
	assert.Contains(t, out, `<div class="cv-experience-item">Senior Engineer at Acme</div>`)
	// Comma-separated skills are exploded into individual tokens
	assert.Contains(t, out, `<div class="cv-skill">Go</div>`)
	assert.Contains(t, out, `<div class="cv-skill">Python</div>`)
	assert.Contains(t, out, `<div class="cv-skill">SQL</div>`)
	// "Name: Level" languages are split into sub-spans
	assert.Contains(t, out, `<span class="cv-language-name">English:</span>`)
	assert.Contains(t, out, `<span class="cv-language-level">Native</span>`)
	assert.Contains(t, out, `<span class="cv-language-name">Spanish</span>`)
}

func TestGenerateHTMLEscapesContent(t *testing.T) {
	sections := models.SectionMap{
		models.SectionContact: {"<script>alert(1)</script>"},
	}

	out := GenerateHTML("cv.pdf", sections, "raw")

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestContactIconClassification(t *testing.T) {
	tests := []struct {
		item string
		icon string
	}{
		{"jane@x.com", "fas fa-envelope"},
		{"+1 555 123 4567", "fas fa-phone"},
		{"linkedin.com/in/janedoe", "fas fa-link"},
		{"https://janedoe.dev", "fas fa-globe"},
		{"Springfield, Illinois", "fas fa-map-marker-alt"},
		{"available immediately", "fas fa-info-circle"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.icon, contactIcon(tt.item), "item %q", tt.item)
	}
}

func TestDisplayName(t *testing.T) {
	withContact := models.SectionMap{models.SectionContact: {"Jane Doe"}}
	assert.Equal(t, "Jane Doe", DisplayName("whatever.pdf", withContact))

	empty := models.SectionMap{}
	assert.Equal(t, "jane doe cv", DisplayName("jane_doe-cv.pdf", empty))
}

func TestFallbackHTMLWrapsRawText(t *testing.T) {
	out := fallbackHTML("cv.pdf", "raw full text")

	assert.Contains(t, out, "cv.pdf")
	assert.Contains(t, out, "raw full text")
}
