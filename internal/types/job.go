// Package types defines the shared data structures for job matching.
package types

import "strings"

// JobRecord represents a single job posting in the ranking corpus.
// Records are treated as read-only once loaded; NormalizedDescription is
// derived at load time and cached for the lifetime of the corpus snapshot.
type JobRecord struct {
	JobID                 string   `json:"job_id"`
	Title                 string   `json:"title"`
	Company               string   `json:"company"`
	Location              string   `json:"location"`
	Description           string   `json:"description"`
	Skills                []string `json:"skills"`
	NormalizedDescription string   `json:"-"`
}

// ScoredJob pairs a job record with its fused relevance score and the
// resume skills that matched the posting. Scores are a weighted sum of a
// cosine similarity and a skills-overlap fraction; they are only bounded
// by [0,1] when the weights sum to at most 1.
type ScoredJob struct {
	Job           JobRecord `json:"job"`
	Score         float64   `json:"score"`
	MatchedSkills []string  `json:"matched_skills"`
}

// ParseSkills splits a semicolon-delimited skills field into an ordered
// list of trimmed, non-empty labels.
func ParseSkills(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

// JoinSkills renders a skills list back into its semicolon-delimited
// transport form.
func JoinSkills(skills []string) string {
	return strings.Join(skills, ";")
}
