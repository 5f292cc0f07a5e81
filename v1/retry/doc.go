// Package retry retries inference calls that failed for transient reasons.
//
// The inference client sends every task exactly once. Callers that want to
// ride out rate limiting, a full model queue or a dropped connection wrap the
// call with Do:
//
//	out, err := retry.Do(ctx, retry.DefaultPolicy(), func(ctx context.Context) (*inference.CompletionOutput, error) {
//	    return client.Complete(ctx, "luminous-base", task, inference.How{BeNice: true})
//	})
//
// TooManyRequests, Busy and Transport errors are retried with exponential
// backoff. HTTP and InvalidResponse errors, errors outside the inference
// taxonomy and context cancellation end the loop immediately.
package retry
