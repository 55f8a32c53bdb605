package classifier

import (
	"strings"
	"unicode/utf8"
)

// LabelScore is the evidence score of one candidate label.
type LabelScore struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

// ScoreDocumentTypes scores text against every document type, in rubric order.
// text must already be lowercased.
func (r *Rubric) ScoreDocumentTypes(text string, hasTables bool) []LabelScore {
	length := utf8.RuneCountInString(text)
	scores := make([]LabelScore, 0, len(r.DocumentTypes))
	for _, rule := range r.DocumentTypes {
		score := 2 * countPresent(text, rule.Keywords)
		score += countPresent(text, rule.Sections)
		if hasTables && rule.HasTables {
			score++
		}
		if rule.MaxLength > 0 && length <= rule.MaxLength {
			score++
		}
		scores = append(scores, LabelScore{Label: rule.Name, Score: score})
	}
	return scores
}

// DocumentType returns the best-scoring document type for text, or the
// rubric default when nothing scores.
func (r *Rubric) DocumentType(text string, hasTables bool) string {
	return pickBest(r.ScoreDocumentTypes(strings.ToLower(text), hasTables), r.DefaultDocumentType)
}

// ScoreIndustries scores lowercased text against every industry, in rubric order.
func (r *Rubric) ScoreIndustries(text string) []LabelScore {
	scores := make([]LabelScore, 0, len(r.Industries))
	for _, rule := range r.Industries {
		scores = append(scores, LabelScore{Label: rule.Name, Score: countPresent(text, rule.Keywords)})
	}
	return scores
}

// Industry returns the best-scoring industry for text, or the rubric default
// when no keyword matches.
func (r *Rubric) Industry(text string) string {
	return pickBest(r.ScoreIndustries(strings.ToLower(text)), r.DefaultIndustry)
}

// pickBest returns the first label with the highest positive score.
func pickBest(scores []LabelScore, fallback string) string {
	best, bestScore := fallback, 0
	for _, s := range scores {
		if s.Score > bestScore {
			best, bestScore = s.Label, s.Score
		}
	}
	return best
}
