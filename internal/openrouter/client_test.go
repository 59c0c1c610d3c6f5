package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noRetry turns off the backoff budget so failure tests finish fast.
var noRetry = CallOptions{MaxRetries: -1}

func completionBody(content string) string {
	return fmt.Sprintf(`{"choices":[{"message":{"content":%q}}]}`, content)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{
		APIKey:   "test-key",
		BaseURL:  srv.URL,
		SiteURL:  "https://example.test",
		SiteName: "press-council",
	})
}

func TestCompleteSuccess(t *testing.T) {
	var gotAuth, gotReferer, gotTitle string
	var gotReq chatRequest

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, completionBody("the release"))
	})

	res, err := c.Complete(context.Background(), "test/model",
		[]Message{System("you are an editor"), User("write it")}, CallOptions{})
	require.NoError(t, err)
	assert.Equal(t, "the release", res.Content)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "https://example.test", gotReferer)
	assert.Equal(t, "press-council", gotTitle)
	assert.Equal(t, "test/model", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "write it", gotReq.Messages[1].Content)
}

func TestCompleteRequiresMessages(t *testing.T) {
	c := New(Config{APIKey: "k"})

	_, err := c.Complete(context.Background(), "m", nil, noRetry)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindInvalidRequest, apiErr.Kind)
}

func TestCompleteRequiresAPIKey(t *testing.T) {
	c := New(Config{})

	_, err := c.Complete(context.Background(), "m", []Message{User("hi")}, noRetry)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindAuthFailure, apiErr.Kind)
}

func TestCompleteStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		kind   Kind
		quota  bool
	}{
		{http.StatusBadRequest, KindInvalidRequest, false},
		{http.StatusUnauthorized, KindAuthFailure, false},
		{http.StatusForbidden, KindAuthFailure, false},
		{http.StatusPaymentRequired, KindQuotaExhausted, true},
		{http.StatusTooManyRequests, KindRateLimited, false},
		{http.StatusTeapot, KindUnknown, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := c.Complete(context.Background(), "m", []Message{User("hi")}, noRetry)
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Code)
			assert.Equal(t, tt.quota, apiErr.Quota)
		})
	}
}

func TestCompleteRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, completionBody("second time lucky"))
	})

	res, err := c.Complete(context.Background(), "m", []Message{User("hi")}, CallOptions{MaxRetries: 2})
	require.NoError(t, err)
	assert.Equal(t, "second time lucky", res.Content)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCompleteDoesNotRetryInvalidRequest(t *testing.T) {
	var calls atomic.Int32

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := c.Complete(context.Background(), "m", []Message{User("hi")}, CallOptions{MaxRetries: 3})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCompleteTimeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server's background read can observe the
		// client disconnect and cancel the request context.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	})

	_, err := c.Complete(context.Background(), "m", []Message{User("hi")},
		CallOptions{Timeout: 20 * time.Millisecond, MaxRetries: -1})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindTimeout, apiErr.Kind)
}

func TestCompleteTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New(Config{APIKey: "k", BaseURL: srv.URL})

	_, err := c.Complete(context.Background(), "m", []Message{User("hi")}, noRetry)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindTransportError, apiErr.Kind)
}

func TestCompleteMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json at all")
	})

	_, err := c.Complete(context.Background(), "m", []Message{User("hi")}, noRetry)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindUnknown, apiErr.Kind)
	assert.Contains(t, apiErr.Message, "Malformed response")
}

func TestCompleteEmbeddedError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":{"message":"model is overloaded","code":503}}`)
	})

	_, err := c.Complete(context.Background(), "m", []Message{User("hi")}, noRetry)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindUnknown, apiErr.Kind)
	assert.Equal(t, 503, apiErr.Code)
	assert.Equal(t, "model is overloaded", apiErr.Message)
}

func TestCompleteNoChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	})

	_, err := c.Complete(context.Background(), "m", []Message{User("hi")}, noRetry)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "No completion")
}

func TestTryComplete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody("soft result"))
	})

	res := c.TryComplete(context.Background(), "m", []Message{User("hi")}, CallOptions{})
	require.NotNil(t, res)
	assert.Equal(t, "soft result", res.Content)
}

func TestTryCompleteSwallowsFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	res := c.TryComplete(context.Background(), "m", []Message{User("hi")}, noRetry)
	assert.Nil(t, res)
}

func TestCallOptionsDefaults(t *testing.T) {
	got := CallOptions{}.withDefaults()
	assert.Equal(t, DefaultTimeout, got.Timeout)
	assert.Equal(t, DefaultMaxRetries, got.MaxRetries)

	got = CallOptions{Timeout: time.Second, MaxRetries: 5}.withDefaults()
	assert.Equal(t, time.Second, got.Timeout)
	assert.Equal(t, 5, got.MaxRetries)

	got = CallOptions{MaxRetries: -1}.withDefaults()
	assert.Equal(t, 0, got.MaxRetries)
}

func TestRetryable(t *testing.T) {
	assert.True(t, retryable(&APIError{Kind: KindTimeout}))
	assert.True(t, retryable(&APIError{Kind: KindTransportError}))
	assert.True(t, retryable(&APIError{Kind: KindRateLimited}))
	assert.False(t, retryable(&APIError{Kind: KindInvalidRequest}))
	assert.False(t, retryable(&APIError{Kind: KindAuthFailure}))
	assert.False(t, retryable(&APIError{Kind: KindQuotaExhausted}))
	assert.False(t, retryable(&APIError{Kind: KindUnknown}))
}

func TestAPIErrorString(t *testing.T) {
	withCode := &APIError{Kind: KindRateLimited, Code: 429, Message: "slow down"}
	assert.Equal(t, "openrouter: rate_limited (429): slow down", withCode.Error())

	withoutCode := &APIError{Kind: KindTimeout, Message: "gone"}
	assert.Equal(t, "openrouter: timeout: gone", withoutCode.Error())

	var target *APIError
	assert.True(t, errors.As(error(withCode), &target))
}
