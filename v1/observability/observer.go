package observability

import "time"

// Observer receives a notification for every observed operation.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes a single completed operation.
type OperationContext struct {
	// Component is the reporting package, e.g. "inference".
	Component string

	// Operation is the action performed, e.g. "complete" or "semantic_embed".
	Operation string

	// Resource is the primary target of the operation (a model name, a bucket, a key).
	Resource string

	// SubResource carries secondary detail such as the request path.
	SubResource string

	// Duration is the wall time of the operation.
	Duration time.Duration

	// Error is nil on success.
	Error error

	// Size is the payload size in bytes, if known.
	Size int64

	// Metadata holds additional component specific values.
	Metadata map[string]interface{}
}

// Status returns "success" or "error" depending on Error.
func (o OperationContext) Status() string {
	if o.Error != nil {
		return "error"
	}
	return "success"
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}
