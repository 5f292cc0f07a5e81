package retry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/inference-client/v1/inference"
)

func fastPolicy(retries uint64) Policy {
	return Policy{
		MaxRetries:      retries,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      2,
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"too many requests", &inference.Error{Kind: inference.KindTooManyRequests, StatusCode: 429}, true},
		{"busy", &inference.Error{Kind: inference.KindBusy, StatusCode: 503}, true},
		{"transport", &inference.Error{Kind: inference.KindTransport, Err: errors.New("reset")}, true},
		{"http", &inference.Error{Kind: inference.KindHTTP, StatusCode: 400}, false},
		{"invalid response", &inference.Error{Kind: inference.KindInvalidResponse, StatusCode: 200}, false},
		{"cancelled transport", &inference.Error{Kind: inference.KindTransport, Err: context.Canceled}, false},
		{"deadline transport", &inference.Error{Kind: inference.KindTransport, Err: context.DeadlineExceeded}, false},
		{"foreign error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestDoRetriesTransientErrors(t *testing.T) {
	var calls int
	var waits []time.Duration

	policy := fastPolicy(5)
	policy.OnRetry = func(err error, wait time.Duration) {
		assert.True(t, inference.IsBusyError(err))
		waits = append(waits, wait)
	}

	out, err := Do(context.Background(), policy, func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", &inference.Error{Kind: inference.KindBusy, StatusCode: 503}
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 3, calls)
	assert.Len(t, waits, 2)
}

func TestDoStopsOnPermanentError(t *testing.T) {
	var calls int
	httpErr := &inference.Error{Kind: inference.KindHTTP, StatusCode: 400, Message: "bad prompt"}

	_, err := Do(context.Background(), fastPolicy(5), func(ctx context.Context) (int, error) {
		calls++
		return 0, httpErr
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, inference.ErrHTTP)
}

func TestDoGivesUpAfterMaxRetries(t *testing.T) {
	var calls int

	_, err := Do(context.Background(), fastPolicy(2), func(ctx context.Context) (int, error) {
		calls++
		return 0, &inference.Error{Kind: inference.KindTooManyRequests, StatusCode: 429}
	})

	assert.Equal(t, 3, calls)
	assert.True(t, inference.IsTooManyRequestsError(err))
}

func TestDoHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := fastPolicy(100)
	policy.InitialInterval = time.Hour
	policy.MaxInterval = time.Hour

	var calls int
	_, err := Do(ctx, policy, func(ctx context.Context) (int, error) {
		calls++
		cancel()
		return 0, &inference.Error{Kind: inference.KindBusy, StatusCode: 503}
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDoWithClient(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"model_version":"v","completions":[{"completion":" there","finish_reason":"maximum_tokens"}]}`))
	}))
	defer srv.Close()

	client, err := inference.NewClientWithBaseURL(srv.URL, "token")
	require.NoError(t, err)

	out, err := Do(context.Background(), fastPolicy(3), func(ctx context.Context) (*inference.CompletionOutput, error) {
		return client.Complete(ctx, "luminous-base", inference.NewCompletionFromText("Hi", 1), inference.How{BeNice: true})
	})

	require.NoError(t, err)
	assert.Equal(t, " there", out.Completion)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, uint64(5), p.MaxRetries)
	assert.Equal(t, time.Second, p.InitialInterval)
	assert.Nil(t, p.OnRetry)
}
