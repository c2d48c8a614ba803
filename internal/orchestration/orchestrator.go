package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/aicompare/internal/analysis"
	"github.com/agbru/aicompare/internal/backend"
	apperrors "github.com/agbru/aicompare/internal/errors"
	"github.com/agbru/aicompare/internal/progress"
)

// tracer instruments every backend call with a span.
var tracer = otel.Tracer("aicompare/orchestration")

// ProgressBufferMultiplier sizes the progress channel buffer. A larger
// buffer keeps backend goroutines from blocking when the display is slow to
// consume updates.
const ProgressBufferMultiplier = 5

// minComparisonBackends is the smallest backend set a comparison accepts.
const minComparisonBackends = 2

// CompareAcrossBackends sends one prompt to every client concurrently and
// returns the settled responses ordered by task start time.
//
// It refuses with apperrors.InsufficientBackendsError before issuing any
// request when fewer than two clients are given. After that point the call
// cannot fail: each task owns exactly one result slot, per-backend failures
// settle as error-tagged entries, and cancellation of ctx resolves the
// unfinished tasks as Cancelled.
func CompareAcrossBackends(ctx context.Context, prompt string, clients []backend.Client, reporter ProgressReporter, out io.Writer) ([]AIResponse, error) {
	if len(clients) < minComparisonBackends {
		return nil, apperrors.InsufficientBackendsError{Available: len(clients)}
	}
	responses := fanOut(ctx, prompt, clients, reporter, out)
	sortResponses(responses)
	return responses, nil
}

// AddBackend re-issues the session's prompt against one additional client
// and folds the settled entry into the session, overwriting any previous
// entry for that backend and recomputing the analysis. It refuses with
// apperrors.UnknownPromptError when the session has no prompt to reuse.
func AddBackend(ctx context.Context, sess *Session, client backend.Client, reporter ProgressReporter, out io.Writer) (AIResponse, error) {
	if sess == nil || strings.TrimSpace(sess.Prompt) == "" {
		id := ""
		if sess != nil {
			id = sess.ID
		}
		return AIResponse{}, apperrors.UnknownPromptError{SessionID: id}
	}

	responses := fanOut(ctx, sess.Prompt, []backend.Client{client}, reporter, out)
	resp := responses[0]
	sess.Put(resp)
	_ = Analyze(sess)
	return resp, nil
}

// fanOut runs one goroutine per client and settles every task. Each task
// writes only its own slot, so no synchronization of the results slice is
// needed beyond g.Wait.
func fanOut(ctx context.Context, prompt string, clients []backend.Client, reporter ProgressReporter, out io.Writer) []AIResponse {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]AIResponse, len(clients))
	updates := make(chan progress.Update, len(clients)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, updates, len(clients), out)

	for i, c := range clients {
		idx, client := i, c
		g.Go(func() error {
			info := client.Identify()
			updates <- progress.Update{BackendIndex: idx, BackendID: info.ID, State: progress.StateCalling}

			startTime := time.Now()
			text, err := submit(ctx, client, prompt)
			results[idx] = settle(info, text, err, startTime)

			state := progress.StateDone
			detail := ""
			if err != nil {
				state = progress.StateFailed
				detail = string(results[idx].Kind)
			}
			updates <- progress.Update{BackendIndex: idx, BackendID: info.ID, State: state, Detail: detail}
			return nil
		})
	}

	g.Wait()
	close(updates)
	displayWg.Wait()

	return results
}

// submit performs one traced backend call, converting a panicking client
// into an ordinary error so a misbehaving implementation cannot take its
// siblings down.
func submit(ctx context.Context, client backend.Client, prompt string) (text string, err error) {
	info := client.Identify()
	ctx, span := tracer.Start(ctx, "backend.submit")
	span.SetAttributes(attribute.String("backend.id", info.ID))
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.NewBackendError(info.ID, apperrors.KindUnavailable, fmt.Errorf("backend panicked: %v", r))
		}
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err = ctx.Err(); err != nil {
		return "", err
	}
	return client.Submit(ctx, prompt)
}

// settle converts one task outcome into its response entry.
func settle(info backend.Info, text string, err error, startTime time.Time) AIResponse {
	resp := AIResponse{
		BackendID:   info.ID,
		DisplayName: info.DisplayName,
		StartedAt:   startTime,
		Latency:     time.Since(startTime),
	}
	if err != nil {
		resp.Err = err
		resp.Kind = apperrors.ClassifyBackendError(err)
		return resp
	}
	resp.Text = text
	resp.TokenEstimate = EstimateTokens(text)
	return resp
}

// Analyze recomputes the session's analysis over its successful responses.
// Fewer than two successes clear the analysis and return
// apperrors.InsufficientDataError, which callers treat as "analysis
// unavailable" rather than a failure. An unparseable response degrades the
// result instead of surfacing an error.
func Analyze(sess *Session) error {
	inputs := analysisInputs(sess.Responses())
	sess.SetExplanations(analysis.ExplainAll(inputs))

	result, err := analysis.Compute(inputs)
	if err != nil {
		var insufficient apperrors.InsufficientDataError
		if errors.As(err, &insufficient) {
			sess.SetAnalysis(nil)
			return err
		}
		var malformed apperrors.MalformedPayloadError
		if errors.As(err, &malformed) {
			sess.SetAnalysis(analysis.Degraded())
			return nil
		}
		sess.SetAnalysis(nil)
		return err
	}
	sess.SetAnalysis(result)
	return nil
}

// analysisInputs projects the successful responses into analysis inputs,
// preserving their display order.
func analysisInputs(responses []AIResponse) []analysis.Input {
	inputs := make([]analysis.Input, 0, len(responses))
	for _, r := range responses {
		if r.Failed() {
			continue
		}
		inputs = append(inputs, analysis.Input{
			BackendID:   r.BackendID,
			DisplayName: r.DisplayName,
			Text:        r.Text,
		})
	}
	return inputs
}
