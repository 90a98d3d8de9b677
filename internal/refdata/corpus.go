// Package refdata holds the static reference corpus of synthetic triage cases
// and the relevance matcher that selects few-shot examples for prompts.
package refdata

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/healthmate/healthmate/internal/domain"
)

//go:embed records.json
var recordsJSON []byte

// Corpus is an immutable set of reference health records, loaded once at
// process start and read-only thereafter.
type Corpus struct {
	records []domain.HealthRecord
}

// Load parses the embedded dataset.
func Load() (*Corpus, error) {
	var records []domain.HealthRecord
	if err := json.Unmarshal(recordsJSON, &records); err != nil {
		return nil, fmt.Errorf("failed to parse reference records: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reference dataset is empty")
	}
	return &Corpus{records: records}, nil
}

// NewCorpus builds a corpus from explicit records, used in tests.
func NewCorpus(records []domain.HealthRecord) *Corpus {
	return &Corpus{records: records}
}

// Records returns the full record set.
func (c *Corpus) Records() []domain.HealthRecord {
	return c.records
}

// Len returns the number of records in the corpus.
func (c *Corpus) Len() int {
	return len(c.records)
}
