package orchestration

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agbru/aicompare/internal/analysis"
	apperrors "github.com/agbru/aicompare/internal/errors"
)

// AIResponse is the settled outcome of one backend task within a fan-out.
// Exactly one of Text or Err is meaningful: a failed call carries empty text
// and is excluded from analysis.
type AIResponse struct {
	// BackendID identifies the backend that produced this entry.
	BackendID string
	// DisplayName is the backend's human-facing name.
	DisplayName string
	// Text is the response body. Empty when the call failed.
	Text string
	// StartedAt is when the task began its backend call. Result ordering
	// is ascending by this timestamp.
	StartedAt time.Time
	// Latency is the time taken for the call to settle.
	Latency time.Duration
	// TokenEstimate is a rough token count derived from the text length.
	TokenEstimate int
	// Err is the resolved failure, nil on success.
	Err error
	// Kind classifies Err; empty on success.
	Kind apperrors.BackendErrorKind
}

// Failed reports whether this entry settled with an error.
func (r AIResponse) Failed() bool { return r.Err != nil }

// charsPerToken is the crude length-to-token ratio used for the estimate
// shown in the comparison table.
const charsPerToken = 4

// EstimateTokens approximates the token count of a response body.
func EstimateTokens(text string) int {
	return len(text) / charsPerToken
}

// Session holds one comparison: the prompt, the settled response per
// backend, and the analysis computed over the successful responses. A new
// prompt replaces the session wholesale; within a session each backend ID
// maps to exactly one entry, overwritten on incremental re-query.
type Session struct {
	// ID uniquely identifies the session.
	ID string
	// Prompt is the prompt shared by every response in the session.
	Prompt string
	// CreatedAt is when the session was opened.
	CreatedAt time.Time

	mu           sync.RWMutex
	responses    map[string]AIResponse
	analysis     *analysis.Result
	explanations map[string]analysis.Explanation
}

// NewSession opens a session for one prompt.
func NewSession(prompt string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Prompt:    prompt,
		CreatedAt: time.Now(),
		responses: map[string]AIResponse{},
	}
}

// SetResponses replaces the session's response set.
func (s *Session) SetResponses(responses []AIResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = make(map[string]AIResponse, len(responses))
	for _, r := range responses {
		s.responses[r.BackendID] = r
	}
}

// Put stores one response, overwriting any previous entry for the backend.
func (s *Session) Put(resp AIResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[resp.BackendID] = resp
}

// Responses returns the session's entries ordered ascending by start time.
func (s *Session) Responses() []AIResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]AIResponse, 0, len(s.responses))
	for _, r := range s.responses {
		out = append(out, r)
	}
	sortResponses(out)
	return out
}

// SetAnalysis stores the cross-response analysis; nil clears it.
func (s *Session) SetAnalysis(result *analysis.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analysis = result
}

// Analysis returns the current analysis, nil when unavailable.
func (s *Session) Analysis() *analysis.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analysis
}

// SetExplanations stores the per-backend explanation views.
func (s *Session) SetExplanations(explanations map[string]analysis.Explanation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.explanations = explanations
}

// Explanations returns the per-backend explanation views, nil when the
// session has not been analyzed.
func (s *Session) Explanations() map[string]analysis.Explanation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.explanations
}

// sortResponses orders entries ascending by task start time, with backend ID
// as a tiebreaker for entries started in the same instant.
func sortResponses(responses []AIResponse) {
	sort.Slice(responses, func(i, j int) bool {
		if !responses[i].StartedAt.Equal(responses[j].StartedAt) {
			return responses[i].StartedAt.Before(responses[j].StartedAt)
		}
		return responses[i].BackendID < responses[j].BackendID
	})
}
