package inference

import (
	"time"

	"github.com/Aleph-Alpha/inference-client/v1/observability"
)

// observeOperation notifies the observer about a call if one is configured.
//
// Notes:
//   - resource: the model name
//   - subResource: the endpoint path
func (c *Client) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if c == nil || c.observer == nil {
		return
	}

	c.observer.ObserveOperation(observability.OperationContext{
		Component:   "inference",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}
