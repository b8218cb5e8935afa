package parser

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jobha/backend/models"
)

// sectionPattern couples a canonical section name with the keywords that
// identify its header. Order matters: a line matching several lists is
// assigned to the first match.
type sectionPattern struct {
	name     string
	keywords []string
}

var sectionPatterns = []sectionPattern{
	{models.SectionContact, []string{"contact", "personal details", "personal information", "email", "phone", "address"}},
	{models.SectionSummary, []string{"summary", "profile", "objective", "professional summary", "about me", "career objective"}},
	{models.SectionExperience, []string{"experience", "work experience", "employment history", "work history", "professional experience"}},
	{models.SectionEducation, []string{"education", "academic background", "qualifications", "academic qualifications", "educational background"}},
	{models.SectionSkills, []string{"skills", "technical skills", "core competencies", "key skills", "professional skills", "expertise"}},
	{models.SectionCertifications, []string{"certifications", "certificates", "professional certifications", "accreditations"}},
	{models.SectionLanguages, []string{"languages", "language proficiency", "language skills"}},
	{models.SectionProjects, []string{"projects", "key projects", "professional projects"}},
	{models.SectionAwards, []string{"awards", "honors", "achievements", "recognitions"}},
	{models.SectionReferences, []string{"references", "referees"}},
}

// headerCandidate is a line that scored high enough to be treated as a
// section header. Transient: discarded once sectioning is done.
type headerCandidate struct {
	index int
	line  string
	score int
}

// scoreLineAsHeader scores a line's likelihood of being a section header.
func scoreLineAsHeader(line string) int {
	score := 0

	// Headers are often short
	if utf8.RuneCountInString(line) < 30 {
		score++
	}

	// Headers are often all caps or title case
	if isAllUpper(line) {
		score += 2
	} else if startsUpper(line) {
		score++
	}

	// Headers often end with colons
	if strings.HasSuffix(line, ":") {
		score += 2
	}

	// A keyword from any section's pattern list is the strongest signal
	if _, ok := matchSectionName(line); ok {
		score += 3
	}

	return score
}

// matchSectionName returns the canonical section a line's keywords imply.
// First match in canonical order wins.
func matchSectionName(line string) (string, bool) {
	lower := strings.ToLower(line)
	for _, sp := range sectionPatterns {
		for _, kw := range sp.keywords {
			if strings.Contains(lower, kw) {
				return sp.name, true
			}
		}
	}
	return "", false
}

func isAllUpper(line string) bool {
	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func startsUpper(line string) bool {
	r, _ := utf8.DecodeRuneInString(line)
	return unicode.IsUpper(r)
}

// ExtractSections partitions CV text into named sections using the header
// scoring heuristic.
//
// Header candidates are identified in a score-sorted pass, but each
// candidate's content interval is bounded by line indices: from the line
// after the header to the index of the next candidate in score order (or end
// of document). When a later candidate in score order sits earlier in the
// document the interval is empty. This mirrors the established behavior on
// purpose; collapsing the two orderings moves section boundaries.
func ExtractSections(text string) models.SectionMap {
	sections := models.SectionMap{models.SectionOther: []string{}}

	lines := strings.Split(text, "\n")

	var candidates []headerCandidate
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if score := scoreLineAsHeader(line); score >= 3 {
			candidates = append(candidates, headerCandidate{index: i, line: line, score: score})
		}
	}

	// Highest score first; ties keep document order
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})

	if len(candidates) > 0 {
		for i, header := range candidates {
			sectionName := models.SectionOther
			if name, ok := matchSectionName(header.line); ok {
				sectionName = name
			}

			start := header.index + 1
			end := len(lines)
			if i < len(candidates)-1 {
				end = candidates[i+1].index
			}
			if end < start {
				end = start
			}

			for _, raw := range lines[start:end] {
				if line := strings.TrimSpace(raw); line != "" {
					sections.Append(sectionName, line)
				}
			}
		}

		// Everything above the earliest header is the contact block
		first := candidates[0]
		for _, h := range candidates[1:] {
			if h.index < first.index {
				first = h
			}
		}
		for _, raw := range lines[:first.index] {
			if line := strings.TrimSpace(raw); line != "" {
				sections.Append(models.SectionContact, line)
			}
		}
	} else {
		// No scored headers: stream lines into the most recently named
		// section. A keyword line switches sections and is consumed.
		current := models.SectionOther
		for _, raw := range lines {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			if name, ok := matchSectionName(line); ok {
				current = name
				if _, exists := sections[current]; !exists {
					sections[current] = []string{}
				}
				continue
			}
			sections.Append(current, line)
		}
	}

	// No recognizable structure at all: résumés open with a name/contact
	// block, so salvage the first lines as contact info.
	if !sections.HasStructure() && len(lines) > 0 {
		limit := 10
		if len(lines) < limit {
			limit = len(lines)
		}
		var contact []string
		for _, raw := range lines[:limit] {
			if line := strings.TrimSpace(raw); line != "" {
				contact = append(contact, line)
			}
		}
		if len(contact) > 0 {
			sections[models.SectionContact] = contact
		}
	}

	return sections
}
