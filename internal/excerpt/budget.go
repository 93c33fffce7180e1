package excerpt

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Token cost model defaults.
const (
	// charsPerToken is the fixed approximation used by the heuristic
	// estimator: 4 bytes of text per token.
	charsPerToken = 4
	// itemTokenOverhead models per-result metadata and formatting cost not
	// present in the raw excerpt text.
	itemTokenOverhead = 10
)

// DefaultEncoding is the BPE encoding used for precise token counting.
const DefaultEncoding = "cl100k_base"

// Estimator converts a text payload into an approximate token count.
type Estimator interface {
	Estimate(text string) int
}

// HeuristicEstimator approximates tokens as ceil(len/4). It never fails and
// needs no tokenizer data.
type HeuristicEstimator struct{}

func (HeuristicEstimator) Estimate(text string) int {
	return (len(text) + charsPerToken - 1) / charsPerToken
}

// TiktokenEstimator counts tokens exactly with a BPE encoding. Loading an
// encoding can fetch tokenizer data, so construction is fallible; callers
// fall back to the heuristic when it is unavailable.
type TiktokenEstimator struct {
	enc *tiktoken.Tiktoken
}

func NewTiktokenEstimator(encoding string) (*TiktokenEstimator, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer encoding %q: %w", encoding, err)
	}
	return &TiktokenEstimator{enc: enc}, nil
}

func (t *TiktokenEstimator) Estimate(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}

// Outcome reports which items fit within a token budget.
type Outcome[T any] struct {
	Admitted        []T
	BudgetExceeded  bool
	EstimatedTokens int
}

// EnforceBudget admits items in order until adding one would push the
// cumulative token cost over maxTokens, then stops: there is no backfill
// from later, cheaper items. Each item costs its estimated text tokens plus
// a fixed per-item overhead. EstimatedTokens covers admitted items only.
// maxTokens <= 0 means unlimited. A nil estimator uses the heuristic.
func EnforceBudget[T any](items []T, text func(T) string, maxTokens int, est Estimator) Outcome[T] {
	if est == nil {
		est = HeuristicEstimator{}
	}

	out := Outcome[T]{Admitted: make([]T, 0, len(items))}
	for _, item := range items {
		cost := est.Estimate(text(item)) + itemTokenOverhead
		if maxTokens > 0 && out.EstimatedTokens+cost > maxTokens {
			out.BudgetExceeded = true
			break
		}
		out.Admitted = append(out.Admitted, item)
		out.EstimatedTokens += cost
	}
	return out
}
