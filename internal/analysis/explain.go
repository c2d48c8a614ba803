package analysis

import (
	"regexp"
	"strings"

	apperrors "github.com/agbru/aicompare/internal/errors"
)

// Depth is the heuristic depth level of an explanation.
type Depth string

// Depth levels, ordered from introductory to expert material.
const (
	DepthBasic        Depth = "Basic"
	DepthIntermediate Depth = "Intermediate"
	DepthAdvanced     Depth = "Advanced"
)

// Explanation is the explanatory-comparison view of one response: its
// structure rather than its code.
type Explanation struct {
	// Introduction is the first substantial prose paragraph.
	Introduction string
	// KeyPoints are list items (or emphasized sentences as a fallback)
	// collected from the prose.
	KeyPoints []string
	// Clarity is a 1–10 heuristic readability score.
	Clarity int
	// Depth is the heuristic depth level.
	Depth Depth
}

const (
	// introMinLength is the shortest paragraph accepted as introduction.
	introMinLength = 50
	// keyPointLimit caps list-derived key points.
	keyPointLimit = 5
	// emphasisPointLimit caps fallback emphasis-sentence key points.
	emphasisPointLimit = 3
)

var (
	paragraphSplit = regexp.MustCompile(`\n\s*\n`)
	listItem       = regexp.MustCompile(`^(?:[-*•]|\d+\.)\s+(.+)$`)
	headingLine    = regexp.MustCompile(`(?m)^#{1,6}\s+\S`)
	listMarker     = regexp.MustCompile(`(?m)^\s*(?:[-*•]|\d+\.)\s+\S`)
	sentenceEnd    = regexp.MustCompile(`[.!?]+\s+`)

	emphasisKeywords   = []string{"important", "key", "note", "crucial", "essential"}
	exemplarPhrases    = []string{"for example", "such as", "in other words"}
	sequencingPhrases  = regexp.MustCompile(`\b(first|then|finally)\b`)
	advancedVocab      = regexp.MustCompile(`\b(algorithm|complexity|optimization|design pattern)\b`)
	deeperVocab        = regexp.MustCompile(`\b(recursion|dynamic programming|big-o|time complexity)\b`)
	longSentenceLength = 100
)

// Explain derives the explanatory view of one response. It returns
// apperrors.MalformedPayloadError when the text contains no parseable prose
// at all; callers absorb that into a zero-value Explanation rather than
// failing the comparison.
func Explain(in Input) (Explanation, error) {
	prose := StripCodeBlocks(in.Text)
	if strings.TrimSpace(prose) == "" {
		return Explanation{}, apperrors.MalformedPayloadError{
			BackendID: in.BackendID,
			Detail:    "no prose outside code blocks",
		}
	}

	paragraphs := paragraphSplit.Split(prose, -1)

	var intro string
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if len(p) > introMinLength {
			intro = p
			break
		}
	}

	points := collectKeyPoints(prose)

	return Explanation{
		Introduction: intro,
		KeyPoints:    points,
		Clarity:      ClarityScore(in.Text),
		Depth:        ClassifyDepth(in),
	}, nil
}

// ExplainAll derives explanations for every input, absorbing per-response
// malformed payloads into zero-value entries.
func ExplainAll(inputs []Input) map[string]Explanation {
	out := make(map[string]Explanation, len(inputs))
	for _, in := range inputs {
		exp, err := Explain(in)
		if err != nil {
			exp = Explanation{Clarity: 1, Depth: DepthBasic}
		}
		out[in.BackendID] = exp
	}
	return out
}

// collectKeyPoints gathers bullet and numbered list items, capped at five.
// When the prose has no list items at all, sentences containing emphasis
// keywords are used instead, capped at three.
func collectKeyPoints(prose string) []string {
	var points []string
	for _, line := range strings.Split(prose, "\n") {
		m := listItem.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		points = append(points, strings.TrimSpace(m[1]))
		if len(points) == keyPointLimit {
			return points
		}
	}
	if len(points) > 0 {
		return points
	}

	lower := strings.ToLower(prose)
	for _, sentence := range splitSentences(lower) {
		for _, kw := range emphasisKeywords {
			if strings.Contains(sentence, kw) {
				points = append(points, strings.TrimSpace(sentence))
				break
			}
		}
		if len(points) == emphasisPointLimit {
			break
		}
	}
	return points
}

// splitSentences crudely splits text on terminal punctuation.
func splitSentences(text string) []string {
	parts := sentenceEnd.Split(text, -1)
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// ClarityScore rates how readable a response is on a 1–10 scale.
// Starting from 5, one point is added for each structural aid present
// (fenced code block, heading, list marker, exemplar phrase, sequencing
// phrase) and one subtracted when the mean sentence length exceeds 100
// characters. The result is clamped to [1, 10].
func ClarityScore(text string) int {
	score := 5

	if strings.Contains(text, codeFence) {
		score++
	}
	if headingLine.MatchString(text) {
		score++
	}
	if listMarker.MatchString(text) {
		score++
	}
	lower := strings.ToLower(text)
	for _, p := range exemplarPhrases {
		if strings.Contains(lower, p) {
			score++
			break
		}
	}
	if sequencingPhrases.MatchString(lower) {
		score++
	}

	if sentences := splitSentences(text); len(sentences) > 0 {
		total := 0
		for _, s := range sentences {
			total += len(s)
		}
		if total/len(sentences) > longSentenceLength {
			score--
		}
	}

	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	return score
}

// ClassifyDepth buckets how deep a response goes: +2 for advanced CS
// vocabulary, +2 for deeper CS vocabulary, +1 for more than ten significant
// terms, +1 for more than two code blocks.
func ClassifyDepth(in Input) Depth {
	lower := strings.ToLower(in.Text)

	score := 0
	if advancedVocab.MatchString(lower) {
		score += 2
	}
	if deeperVocab.MatchString(lower) {
		score += 2
	}
	if len(SignificantTerms(in.Text)) > 10 {
		score++
	}
	if len(ExtractCodeBlocks(in.Text, in.BackendID)) > 2 {
		score++
	}

	switch {
	case score >= 4:
		return DepthAdvanced
	case score >= 2:
		return DepthIntermediate
	default:
		return DepthBasic
	}
}
