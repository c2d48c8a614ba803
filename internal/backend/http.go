package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/agbru/aicompare/internal/errors"
)

const (
	// defaultHTTPTimeout bounds a single backend call when the caller's
	// context carries no deadline of its own.
	defaultHTTPTimeout = 60 * time.Second
	// maxErrorBodyLength caps how much of an error response body is kept in
	// the failure message.
	maxErrorBodyLength = 200
)

func newHTTPClient(client *http.Client) *http.Client {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// doJSONPost issues one POST with a JSON body and returns the response body
// on HTTP 200. Transport failures and non-200 statuses come back as
// apperrors.BackendError with the kind already classified.
func doJSONPost(ctx context.Context, client *http.Client, backendID, url string, headers map[string]string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.NewBackendError(backendID, apperrors.KindUnavailable, err)
	}
	req.Header.Set("content-type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, apperrors.NewBackendError(backendID, apperrors.KindCancelled, ctxErr)
		}
		return nil, apperrors.NewBackendError(backendID, apperrors.KindUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewBackendError(backendID, apperrors.KindUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(backendID, resp.StatusCode, body)
	}
	return body, nil
}

// classifyStatus maps a non-200 HTTP status to a backend error kind:
// 429 is throttling, the policy-refusal statuses are blocked, and everything
// else (auth failures, server errors) is unavailable.
func classifyStatus(backendID string, status int, body []byte) error {
	detail := strings.TrimSpace(string(body))
	if len(detail) > maxErrorBodyLength {
		detail = detail[:maxErrorBodyLength]
	}
	cause := fmt.Errorf("%d %s", status, strings.ToLower(http.StatusText(status)))
	if detail != "" {
		cause = fmt.Errorf("%d %s: %s", status, strings.ToLower(http.StatusText(status)), detail)
	}

	kind := apperrors.KindUnavailable
	switch status {
	case http.StatusTooManyRequests:
		kind = apperrors.KindThrottled
	case http.StatusForbidden, http.StatusUnprocessableEntity, http.StatusUnavailableForLegalReasons:
		kind = apperrors.KindBlocked
	}
	return apperrors.NewBackendError(backendID, kind, cause)
}
