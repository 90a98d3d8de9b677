package refdata

import (
	"sort"
	"strings"

	"github.com/healthmate/healthmate/internal/domain"
)

const (
	// MaxMatches bounds how many records a match can ever return.
	MaxMatches = 5
	// minTokenLen filters out short filler words before scoring.
	minTokenLen = 4
)

// Match scores every record in the corpus against the complaint by token
// overlap and returns the top matches, best first. A complaint token (longer
// than three characters, lowercased) scores 1 when it substring-matches a
// token of the record's complaint in either direction, and 2 when it
// substring-matches one of the record's labeled symptoms. Records with a zero
// score are excluded. Ties keep corpus order, so results are deterministic.
func (c *Corpus) Match(complaint string) []domain.HealthRecord {
	tokens := complaintTokens(complaint)
	if len(tokens) == 0 {
		return nil
	}

	type scored struct {
		record domain.HealthRecord
		score  int
	}

	var candidates []scored
	for _, record := range c.records {
		recordTokens := strings.Fields(strings.ToLower(record.Complaint))

		score := 0
		for _, token := range tokens {
			for _, rt := range recordTokens {
				if strings.Contains(rt, token) || strings.Contains(token, rt) {
					score++
					break
				}
			}
			for _, symptom := range record.Symptoms {
				if strings.Contains(strings.ToLower(symptom), token) {
					score += 2
					break
				}
			}
		}

		if score > 0 {
			candidates = append(candidates, scored{record: record, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > MaxMatches {
		candidates = candidates[:MaxMatches]
	}

	matches := make([]domain.HealthRecord, 0, len(candidates))
	for _, candidate := range candidates {
		matches = append(matches, candidate.record)
	}
	return matches
}

func complaintTokens(complaint string) []string {
	var tokens []string
	for _, token := range strings.Fields(strings.ToLower(complaint)) {
		if len(token) >= minTokenLen {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
