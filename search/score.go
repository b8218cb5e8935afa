package search

import (
	"math"
	"strings"

	"github.com/jobha/backend/models"
)

// ScoreJob computes a 0-100 relevance score for one posting against the
// ranked keyword list. The first keyword is the primary search term; its
// presence in the posting text sets the base, and the remaining keywords
// contribute a proportional bonus.
func ScoreJob(job *models.JobPosting, keywords []string) int {
	if len(keywords) == 0 {
		if s := int(job.MatchScore); s >= 0 && s <= 100 {
			return s
		}
		return 50
	}

	text := strings.ToLower(job.SearchableText())
	primary := strings.ToLower(strings.TrimSpace(keywords[0]))

	matched := 0
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(text, kw) {
			matched++
		}
	}
	primaryPresent := primary != "" && strings.Contains(text, primary)

	base := 50
	if primaryPresent {
		base = 70
	}

	ratio := float64(matched) / float64(len(keywords))
	score := base + int(math.Round(ratio*30))
	if score > 100 {
		score = 100
	}

	if matched < 3 && !primaryPresent && score > 60 {
		score = 60
	}

	if ratio > 0.7 && primaryPresent {
		score += 10
		if score > 100 {
			score = 100
		}
	}

	return score
}
