package analysis

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Difference describes one detected divergence between responses.
type Difference struct {
	// Aspect names the dimension on which the responses diverge.
	Aspect string
	// Description is a human-readable summary of the divergence.
	Description string
}

// lengthDisparityRatio is the max/min character-count ratio (strict) above
// which a length difference is reported.
const lengthDisparityRatio = 1.5

// detectLengthDisparity reports a difference when the longest response is
// more than 1.5 times the length of the shortest. A ratio of exactly 1.5
// does not fire.
func detectLengthDisparity(inputs []Input) (Difference, bool) {
	if len(inputs) < 2 {
		return Difference{}, false
	}

	longest, shortest := 0, 0
	for i, in := range inputs {
		if len(in.Text) > len(inputs[longest].Text) {
			longest = i
		}
		if len(in.Text) < len(inputs[shortest].Text) {
			shortest = i
		}
	}

	maxLen := len(inputs[longest].Text)
	minLen := len(inputs[shortest].Text)
	if minLen == 0 {
		if maxLen == 0 {
			return Difference{}, false
		}
	} else if float64(maxLen)/float64(minLen) <= lengthDisparityRatio {
		return Difference{}, false
	}

	return Difference{
		Aspect: "Response Length",
		Description: fmt.Sprintf("%s is more detailed (%d chars) than %s (%d chars)",
			inputs[longest].DisplayName, maxLen, inputs[shortest].DisplayName, minLen),
	}, true
}

// detectComplexityDisparity reports a difference when responses fall into
// more than one complexity bucket.
func detectComplexityDisparity(inputs []Input, buckets []Complexity) (Difference, bool) {
	distinct := make(map[Complexity]struct{}, len(buckets))
	for _, b := range buckets {
		distinct[b] = struct{}{}
	}
	if len(distinct) <= 1 {
		return Difference{}, false
	}

	parts := make([]string, len(inputs))
	for i, in := range inputs {
		parts[i] = fmt.Sprintf("%s: %s", in.DisplayName, buckets[i])
	}
	return Difference{
		Aspect:      "Code Complexity",
		Description: strings.Join(parts, ", "),
	}, true
}

// Approach keyword sets used to tag the style of a response. Each set is
// checked against the full lowercased text.
var approachPatterns = []struct {
	tag     string
	pattern *regexp.Regexp
}{
	{"object-oriented", regexp.MustCompile(`\b(class|object-oriented|inheritance|encapsulation|polymorphism)\b`)},
	{"functional", regexp.MustCompile(`\b(functional|lambda|higher-order|immutable|pure function)\b`)},
	{"procedural", regexp.MustCompile(`\b(procedural|imperative|step-by-step|subroutine)\b`)},
	{"asynchronous", regexp.MustCompile(`\b(async|asynchronous|await|promise|goroutine|non-blocking)\b`)},
}

// approachTags returns the approach tags detected in one response text, in
// the fixed declaration order.
func approachTags(text string) []string {
	lower := strings.ToLower(text)
	var tags []string
	for _, ap := range approachPatterns {
		if ap.pattern.MatchString(lower) {
			tags = append(tags, ap.tag)
		}
	}
	return tags
}

// detectApproachDisparity reports a difference when more than one distinct
// approach tag appears across the responses.
func detectApproachDisparity(inputs []Input) (Difference, bool) {
	distinct := make(map[string]struct{})
	for _, in := range inputs {
		for _, tag := range approachTags(in.Text) {
			distinct[tag] = struct{}{}
		}
	}
	if len(distinct) <= 1 {
		return Difference{}, false
	}

	tags := make([]string, 0, len(distinct))
	for tag := range distinct {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return Difference{
		Aspect:      "Approach",
		Description: fmt.Sprintf("responses mix approaches: %s", strings.Join(tags, ", ")),
	}, true
}

// detectDifferences runs every difference detector; each is evaluated
// independently and may or may not contribute an entry.
func detectDifferences(inputs []Input, buckets []Complexity) []Difference {
	var diffs []Difference
	if d, ok := detectLengthDisparity(inputs); ok {
		diffs = append(diffs, d)
	}
	if d, ok := detectComplexityDisparity(inputs, buckets); ok {
		diffs = append(diffs, d)
	}
	if d, ok := detectApproachDisparity(inputs); ok {
		diffs = append(diffs, d)
	}
	return diffs
}
