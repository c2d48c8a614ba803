package analysis

import (
	"fmt"
	"math"
	"sort"

	apperrors "github.com/agbru/aicompare/internal/errors"
)

// Input is one successful backend response handed to the analysis engine.
// Callers filter out error-tagged responses before building inputs.
type Input struct {
	// BackendID uniquely identifies the backend within the comparison.
	BackendID string
	// DisplayName is the backend's human-readable name.
	DisplayName string
	// Text is the backend's full response text.
	Text string
}

// CodeStats summarizes the code content of one response.
type CodeStats struct {
	// BlockCount is the number of fenced code regions found.
	BlockCount int
	// Languages are the distinct language tags, sorted.
	Languages []string
	// Complexity is the heuristic complexity bucket.
	Complexity Complexity
}

// Result is the outcome of analyzing a set of responses. It is never
// mutated after creation; a changed response set produces a fresh Result.
type Result struct {
	// OverallSimilarity is the mean pairwise Jaccard index of the
	// responses' significant-term sets, in [0, 1].
	OverallSimilarity float64
	// CommonPoints are descriptions of themes shared by most responses,
	// at most five, ordered by how many responses share them.
	CommonPoints []string
	// KeyDifferences are the detected divergences between responses.
	KeyDifferences []Difference
	// CodeAnalysis maps backend ID to that response's code summary.
	CodeAnalysis map[string]CodeStats
}

// commonPointLimit caps the number of common points reported.
const commonPointLimit = 5

// commonPointQuorum is the share of responses a term must appear in to
// qualify as a common point.
const commonPointQuorum = 0.7

// Compute analyzes the given responses and produces an immutable Result.
// It requires at least two inputs and returns
// apperrors.InsufficientDataError otherwise; callers should treat that as
// "analysis unavailable" rather than a failure.
func Compute(inputs []Input) (*Result, error) {
	if len(inputs) < 2 {
		return nil, apperrors.InsufficientDataError{Successful: len(inputs)}
	}

	termSets := make([]map[string]struct{}, len(inputs))
	blocks := make([][]CodeBlock, len(inputs))
	buckets := make([]Complexity, len(inputs))
	codeAnalysis := make(map[string]CodeStats, len(inputs))

	for i, in := range inputs {
		termSets[i] = SignificantTerms(in.Text)
		blocks[i] = ExtractCodeBlocks(in.Text, in.BackendID)
		buckets[i] = ClassifyComplexity(blocks[i])

		langs := blockLanguages(blocks[i])
		sorted := make([]string, 0, len(langs))
		for l := range langs {
			sorted = append(sorted, l)
		}
		sort.Strings(sorted)

		codeAnalysis[in.BackendID] = CodeStats{
			BlockCount: len(blocks[i]),
			Languages:  sorted,
			Complexity: buckets[i],
		}
	}

	return &Result{
		OverallSimilarity: overallSimilarity(termSets),
		CommonPoints:      commonPoints(termSets, blocks),
		KeyDifferences:    detectDifferences(inputs, buckets),
		CodeAnalysis:      codeAnalysis,
	}, nil
}

// Degraded returns the fallback Result used when post-processing received
// unparseable upstream output: zero similarity and no derived points, with
// the response data itself left intact for display.
func Degraded() *Result {
	return &Result{
		CommonPoints:   []string{},
		KeyDifferences: []Difference{},
		CodeAnalysis:   map[string]CodeStats{},
	}
}

// scoredPoint pairs a common-point description with the number of responses
// supporting it, for ranking.
type scoredPoint struct {
	description string
	count       int
}

// commonPoints derives shared-theme descriptions: one per significant term
// present in at least ceil(0.7·N) of the N responses, plus one per
// programming language appearing in the code blocks of two or more
// responses. The list is ranked by support count and capped at five.
func commonPoints(termSets []map[string]struct{}, blocks [][]CodeBlock) []string {
	n := len(termSets)
	quorum := int(math.Ceil(commonPointQuorum * float64(n)))

	termCounts := make(map[string]int)
	for _, set := range termSets {
		for term := range set {
			termCounts[term]++
		}
	}

	var points []scoredPoint
	for term, count := range termCounts {
		if count >= quorum && len(term) > minTermLength {
			points = append(points, scoredPoint{
				description: fmt.Sprintf("shared mention of %q", term),
				count:       count,
			})
		}
	}

	langCounts := make(map[string]int)
	for _, bs := range blocks {
		for lang := range blockLanguages(bs) {
			langCounts[lang]++
		}
	}
	for lang, count := range langCounts {
		if count >= 2 {
			points = append(points, scoredPoint{
				description: fmt.Sprintf("code samples in %s", lang),
				count:       count,
			})
		}
	}

	// Rank by support, then alphabetically for a deterministic order.
	sort.Slice(points, func(i, j int) bool {
		if points[i].count != points[j].count {
			return points[i].count > points[j].count
		}
		return points[i].description < points[j].description
	})
	if len(points) > commonPointLimit {
		points = points[:commonPointLimit]
	}

	descriptions := make([]string, len(points))
	for i, p := range points {
		descriptions[i] = p.description
	}
	return descriptions
}
