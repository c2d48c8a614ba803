package analysis

import (
	"regexp"
	"strings"
)

// DefaultLanguage is the language assigned to fenced code regions without a
// language tag.
const DefaultLanguage = "plaintext"

// codeFence is the delimiter marking the start and end of a fenced code
// region.
const codeFence = "```"

// CodeBlock is one fenced code region extracted from a response text.
type CodeBlock struct {
	// Language is the tag on the opening fence, or DefaultLanguage when
	// the tag is omitted.
	Language string
	// Code is the trimmed interior text of the region.
	Code string
	// SourceBackendID identifies the backend whose response contained
	// the region. Empty when extraction runs on bare text.
	SourceBackendID string
}

// Complexity is the heuristic complexity bucket of a response's code.
type Complexity string

// Complexity buckets, ordered from simplest to most involved.
const (
	ComplexityLow    Complexity = "Low"
	ComplexityMedium Complexity = "Medium"
	ComplexityHigh   Complexity = "High"
)

// ExtractCodeBlocks scans text for fenced code regions delimited by
// triple-backtick markers. The opening marker may carry a language tag on
// the same line; the body runs up to the matching closing marker. Scanning
// is sequential, so markers inside a region are never counted as new
// openings. An unterminated opening marker is ignored.
func ExtractCodeBlocks(text, sourceBackendID string) []CodeBlock {
	var blocks []CodeBlock

	rest := text
	for {
		open := strings.Index(rest, codeFence)
		if open < 0 {
			break
		}
		rest = rest[open+len(codeFence):]

		// Language tag runs to the end of the opening line.
		lang := DefaultLanguage
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			tag := strings.TrimSpace(rest[:nl])
			if tag != "" && !strings.Contains(tag, codeFence) {
				lang = strings.ToLower(tag)
			}
			rest = rest[nl+1:]
		}

		end := strings.Index(rest, codeFence)
		if end < 0 {
			break
		}

		blocks = append(blocks, CodeBlock{
			Language:        lang,
			Code:            strings.TrimSpace(rest[:end]),
			SourceBackendID: sourceBackendID,
		})
		rest = rest[end+len(codeFence):]
	}

	return blocks
}

// StripCodeBlocks removes all fenced code regions from text, leaving the
// surrounding prose. Unterminated regions are removed to the end of text.
func StripCodeBlocks(text string) string {
	var sb strings.Builder

	rest := text
	for {
		open := strings.Index(rest, codeFence)
		if open < 0 {
			sb.WriteString(rest)
			break
		}
		sb.WriteString(rest[:open])
		rest = rest[open+len(codeFence):]

		end := strings.Index(rest, codeFence)
		if end < 0 {
			break
		}
		rest = rest[end+len(codeFence):]
	}

	return sb.String()
}

// Keyword classes scored by the complexity heuristic. Word boundaries keep
// substrings like "before" from matching "for".
var (
	loopKeywords      = regexp.MustCompile(`\b(for|while|foreach)\b`)
	branchKeywords    = regexp.MustCompile(`\b(if|else|switch)\b`)
	functionKeywords  = regexp.MustCompile(`\b(func|function|def|class|async)\b`)
	exceptionKeywords = regexp.MustCompile(`\b(try|catch|except|finally|throw|raise|rescue)\b`)
	recursionKeywords = regexp.MustCompile(`\b(recursion|recursive|recurse)\b`)
)

// ClassifyComplexity buckets the code bodies of one response. The score
// accumulates +1 for loop keywords, +1 for branch keywords, +1 for
// function/class/async keywords, +2 for exception handling, and +3 for
// recursion, each counted at most once. A response with no code blocks is
// always ComplexityLow.
func ClassifyComplexity(blocks []CodeBlock) Complexity {
	if len(blocks) == 0 {
		return ComplexityLow
	}

	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(b.Code)
		sb.WriteByte('\n')
	}
	code := strings.ToLower(sb.String())

	score := 0
	if loopKeywords.MatchString(code) {
		score++
	}
	if branchKeywords.MatchString(code) {
		score++
	}
	if functionKeywords.MatchString(code) {
		score++
	}
	if exceptionKeywords.MatchString(code) {
		score += 2
	}
	if recursionKeywords.MatchString(code) {
		score += 3
	}

	switch {
	case score >= 6:
		return ComplexityHigh
	case score >= 3:
		return ComplexityMedium
	default:
		return ComplexityLow
	}
}

// blockLanguages returns the set of languages tagged on the given blocks.
func blockLanguages(blocks []CodeBlock) map[string]struct{} {
	langs := make(map[string]struct{}, len(blocks))
	for _, b := range blocks {
		langs[b.Language] = struct{}{}
	}
	return langs
}
