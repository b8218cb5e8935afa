package parser

import (
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jobha/backend/models"
)

var (
	emailPattern   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phonePattern   = regexp.MustCompile(`^\+?[0-9\s\-()]{7,}$`)
	socialPattern  = regexp.MustCompile(`linkedin\.com|github\.com|twitter\.com|facebook\.com`)
	urlPattern     = regexp.MustCompile(`^https?://`)
	addressPattern = regexp.MustCompile(`[A-Za-z]+,\s*[A-Za-z]+`)
	langSplit      = regexp.MustCompile(`[:–-]`)
)

// contactIcon classifies a contact line to pick its display icon.
// Classification order: email, phone, social domain, URL, address, generic.
func contactIcon(item string) string {
	switch {
	case emailPattern.MatchString(item):
		return "fas fa-envelope"
	case phonePattern.MatchString(item):
		return "fas fa-phone"
	case socialPattern.MatchString(item):
		return "fas fa-link"
	case urlPattern.MatchString(item):
		return "fas fa-globe"
	case addressPattern.MatchString(item):
		return "fas fa-map-marker-alt"
	default:
		return "fas fa-info-circle"
	}
}

// DisplayName derives a human name for a document: first contact line when
// present, otherwise the filename with separators spaced out.
func DisplayName(filename string, sections models.SectionMap) string {
	if contact := sections.Lines(models.SectionContact); len(contact) > 0 {
		return contact[0]
	}
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}

// GenerateHTML renders segmented sections as a structured HTML document.
// Deterministic for identical inputs. It never fails: any internal panic
// falls back to a minimal document wrapping the raw text.
func GenerateHTML(filename string, sections models.SectionMap, fullText string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fallbackHTML(filename, fullText)
		}
	}()

	name := DisplayName(filename, sections)

	var b strings.Builder
	b.WriteString(`<div class="cv-document">`)

	// Header with name and contact items
	b.WriteString(`<div class="cv-header">`)
	fmt.Fprintf(&b, `<div class="cv-name">%s</div>`, html.EscapeString(name))

	contact := sections.Lines(models.SectionContact)
	if len(contact) > 0 {
		b.WriteString(`<div class="cv-contact">`)
		// First line was used as the name
		for _, item := range contact[1:] {
			fmt.Fprintf(&b, `<div class="cv-contact-item"><i class="%s"></i> %s</div>`,
				contactIcon(item), html.EscapeString(item))
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)

	if summary := sections.Lines(models.SectionSummary); len(summary) > 0 {
		b.WriteString(`<div class="cv-section"><h2 class="cv-section-title">Professional Summary</h2><div class="cv-summary">`)
		fmt.Fprintf(&b, `<p>%s</p>`, html.EscapeString(strings.Join(summary, " ")))
		b.WriteString(`</div></div>`)
	}

	if experience := sections.Lines(models.SectionExperience); len(experience) > 0 {
		b.WriteString(`<div class="cv-section"><h2 class="cv-section-title">Experience</h2><div class="cv-experience-items">`)
		for _, line := range experience {
			fmt.Fprintf(&b, `<div class="cv-experience-item">%s</div>`, html.EscapeString(line))
		}
		b.WriteString(`</div></div>`)
	}

	if education := sections.Lines(models.SectionEducation); len(education) > 0 {
		b.WriteString(`<div class="cv-section"><h2 class="cv-section-title">Education</h2><div class="cv-education-items">`)
		for _, line := range education {
			fmt.Fprintf(&b, `<div class="cv-education-item">%s</div>`, html.EscapeString(line))
		}
		b.WriteString(`</div></div>`)
	}

	if skills := sections.Lines(models.SectionSkills); len(skills) > 0 {
		b.WriteString(`<div class="cv-section"><h2 class="cv-section-title">Skills</h2><div class="cv-skills">`)
		for _, skill := range explodeSkills(skills) {
			fmt.Fprintf(&b, `<div class="cv-skill">%s</div>`, html.EscapeString(skill))
		}
		b.WriteString(`</div></div>`)
	}

	if certs := sections.Lines(models.SectionCertifications); len(certs) > 0 {
		b.WriteString(`<div class="cv-section"><h2 class="cv-section-title">Certifications</h2><ul class="cv-certifications-list">`)
		for _, cert := range certs {
			fmt.Fprintf(&b, `<li>%s</li>`, html.EscapeString(cert))
		}
		b.WriteString(`</ul></div>`)
	}

	if languages := sections.Lines(models.SectionLanguages); len(languages) > 0 {
		b.WriteString(`<div class="cv-section"><h2 class="cv-section-title">Languages</h2><div class="cv-languages">`)
		for _, lang := range languages {
			// "Name: Level" or "Name–Level" lines get name/level sub-spans
			parts := langSplit.Split(lang, 2)
			if len(parts) > 1 {
				fmt.Fprintf(&b, `<div class="cv-language-item"><span class="cv-language-name">%s:</span> <span class="cv-language-level">%s</span></div>`,
					html.EscapeString(strings.TrimSpace(parts[0])), html.EscapeString(strings.TrimSpace(parts[1])))
			} else {
				fmt.Fprintf(&b, `<div class="cv-language-item"><span class="cv-language-name">%s</span></div>`,
					html.EscapeString(lang))
			}
		}
		b.WriteString(`</div></div>`)
	}

	if projects := sections.Lines(models.SectionProjects); len(projects) > 0 {
		b.WriteString(`<div class="cv-section"><h2 class="cv-section-title">Projects</h2>`)
		for _, project := range projects {
			fmt.Fprintf(&b, `<div class="cv-projects-item"><div class="cv-project-title">%s</div></div>`,
				html.EscapeString(project))
		}
		b.WriteString(`</div>`)
	}

	if awards := sections.Lines(models.SectionAwards); len(awards) > 0 {
		b.WriteString(`<div class="cv-section"><h2 class="cv-section-title">Awards &amp; Achievements</h2><ul class="cv-awards-list">`)
		for _, award := range awards {
			fmt.Fprintf(&b, `<li>%s</li>`, html.EscapeString(award))
		}
		b.WriteString(`</ul></div>`)
	}

	if refs := sections.Lines(models.SectionReferences); len(refs) > 0 {
		b.WriteString(`<div class="cv-section"><h2 class="cv-section-title">References</h2><div class="cv-references">`)
		for _, ref := range refs {
			fmt.Fprintf(&b, `<div class="cv-reference-item">%s</div>`, html.EscapeString(ref))
		}
		b.WriteString(`</div></div>`)
	}

	if other := sections.Lines(models.SectionOther); len(other) > 0 {
		b.WriteString(`<div class="cv-section"><h2 class="cv-section-title">Additional Information</h2><div class="cv-additional-info">`)
		for _, line := range other {
			fmt.Fprintf(&b, `<p>%s</p>`, html.EscapeString(line))
		}
		b.WriteString(`</div></div>`)
	}

	b.WriteString(`</div>`)
	return b.String()
}

// explodeSkills splits comma-separated skill lines into individual tokens.
func explodeSkills(lines []string) []string {
	var skills []string
	for _, line := range lines {
		if strings.Contains(line, ",") {
			for _, s := range strings.Split(line, ",") {
				if s = strings.TrimSpace(s); s != "" {
					skills = append(skills, s)
				}
			}
		} else {
			skills = append(skills, line)
		}
	}
	return skills
}

func fallbackHTML(filename, fullText string) string {
	return fmt.Sprintf(`<div class="document-content"><h1 class="text-center mb-4">%s</h1><pre class="text-wrap">%s</pre></div>`,
		html.EscapeString(filename), html.EscapeString(fullText))
}
