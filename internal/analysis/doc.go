// Package analysis compares a set of backend responses to one prompt and
// derives a structured comparison: an overall similarity score, shared
// themes, per-backend differences, and code-oriented heuristics.
//
// Every function in this package is pure and deterministic given identical
// input text. The heuristics are deliberately simple term-frequency and
// regex based methods, chosen for explainability over linguistic accuracy;
// no state persists between calls and no I/O is performed.
package analysis
