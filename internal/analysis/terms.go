package analysis

import (
	"regexp"
	"strings"
)

// minTermLength is the shortest token (exclusive) considered significant.
const minTermLength = 3

// wordPattern matches case-folded word tokens. Hyphens and plus signs are
// kept so terms like "big-o" and "c++" survive tokenization.
var wordPattern = regexp.MustCompile(`[a-z][a-z0-9+\-]*`)

// stopWords are generic English words excluded from term extraction
// regardless of length.
var stopWords = map[string]struct{}{}

// programmingTerms is the curated dictionary of programming and CS
// vocabulary that qualifies a token as significant.
var programmingTerms = map[string]struct{}{}

// technicalTerms is the curated dictionary of general technical vocabulary
// that qualifies a token as significant.
var technicalTerms = map[string]struct{}{}

func init() {
	fill := func(set map[string]struct{}, words ...string) {
		for _, w := range words {
			set[w] = struct{}{}
		}
	}

	fill(stopWords,
		"the", "and", "that", "this", "with", "from", "they", "have",
		"will", "would", "could", "should", "been", "being", "were",
		"what", "when", "where", "which", "while", "there", "their",
		"then", "than", "them", "these", "those", "some", "such",
		"also", "into", "over", "under", "about", "after", "before",
		"because", "between", "through", "during", "each", "every",
		"here", "more", "most", "much", "many", "only", "other",
		"very", "your", "yours", "does", "doing", "just", "like",
		"make", "makes", "need", "needs", "want", "used", "using",
		"uses", "well", "both", "same", "another",
	)

	fill(programmingTerms,
		"algorithm", "array", "async", "asynchronous", "await",
		"backend", "boolean", "buffer", "cache", "callback", "class",
		"closure", "code", "compiler", "complexity", "concurrency",
		"concurrent", "condition", "constant", "constructor",
		"database", "debug", "declaration", "decorator", "dictionary",
		"encapsulation", "exception", "expression", "function",
		"generic", "goroutine", "graph", "hash", "heap", "immutable",
		"implementation", "import", "index", "inheritance",
		"interface", "iteration", "iterator", "lambda", "library",
		"linked", "list", "loop", "memory", "method", "module",
		"mutable", "object", "operator", "optimization", "package",
		"parameter", "parsing", "pointer", "polymorphism", "promise",
		"query", "queue", "recursion", "recursive", "reference",
		"runtime", "scope", "search", "server", "sort", "sorting",
		"stack", "statement", "string", "struct", "syntax", "thread",
		"tree", "tuple", "type", "variable", "vector",
	)

	fill(technicalTerms,
		"abstraction", "approach", "architecture", "automation",
		"benchmark", "component", "configuration", "convention",
		"data", "dependency", "deployment", "design", "documentation",
		"efficiency", "environment", "example", "framework",
		"guideline", "infrastructure", "integration", "latency",
		"maintainability", "mechanism", "model", "pattern",
		"performance", "pipeline", "practice", "principle", "process",
		"protocol", "readability", "resource", "scalability",
		"security", "solution", "standard", "strategy", "structure",
		"system", "technique", "testing", "throughput", "tradeoff",
		"validation", "workflow",
	)
}

// Tokenize splits text into case-folded word tokens.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// SignificantTerms extracts the set of significant terms from a response
// text. A token is significant when it is longer than three characters, is
// not a generic stop word, and belongs to the programming or the general
// technical dictionary.
func SignificantTerms(text string) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		if len(tok) <= minTermLength {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		_, isProg := programmingTerms[tok]
		_, isTech := technicalTerms[tok]
		if !isProg && !isTech {
			continue
		}
		terms[tok] = struct{}{}
	}
	return terms
}
