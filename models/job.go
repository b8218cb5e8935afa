package models

import "encoding/json"

// FlexibleInt can unmarshal from a number, a numeric string, or anything
// else (which yields -1). Provider-supplied match scores arrive in all three
// shapes; -1 marks an unparseable score so it can surface as "unknown"
// quality rather than a fake zero.
type FlexibleInt int

func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		if i, err := num.Int64(); err == nil {
			*f = FlexibleInt(i)
			return nil
		}
		if fl, err := num.Float64(); err == nil {
			*f = FlexibleInt(int(fl))
			return nil
		}
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		var n json.Number = json.Number(str)
		if i, err := n.Int64(); err == nil {
			*f = FlexibleInt(i)
			return nil
		}
	}

	*f = -1
	return nil
}

// JobPosting represents one job discovered during a search session.
type JobPosting struct {
	Title           string      `json:"title"`
	Company         string      `json:"company"`
	Location        string      `json:"location,omitempty"`
	Description     string      `json:"description,omitempty"`
	Requirements    string      `json:"requirements,omitempty"`
	MatchScore      FlexibleInt `json:"match_score"`
	URL             string      `json:"url,omitempty"`
	DatePosted      string      `json:"date_posted,omitempty"`
	Salary          string      `json:"salary,omitempty"`
	DocID           string      `json:"doc_id,omitempty"`
	SearchTimestamp string      `json:"search_timestamp,omitempty"`
}

// DedupKey identifies a posting within a session. Case kept as received.
func (j *JobPosting) DedupKey() string {
	return j.Title + "\x00" + j.Company
}

// SearchableText is the concatenated text keyword matching runs against.
func (j *JobPosting) SearchableText() string {
	return j.Title + " " + j.Company + " " + j.Description + " " + j.Requirements
}

// Match quality labels derived from a numeric score.
const (
	MatchQualityExcellent = "excellent"
	MatchQualityGood      = "good"
	MatchQualityModerate  = "moderate"
	MatchQualityLow       = "low"
	MatchQualityUnknown   = "unknown"
)

// MatchQuality buckets a score into a human-readable label. Negative scores
// mark unparseable provider values.
func MatchQuality(score int) string {
	switch {
	case score < 0:
		return MatchQualityUnknown
	case score >= 90:
		return MatchQualityExcellent
	case score >= 75:
		return MatchQualityGood
	case score >= 60:
		return MatchQualityModerate
	default:
		return MatchQualityLow
	}
}
