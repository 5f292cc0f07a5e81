package inference

// Response is the typed result of a task. Its variant always matches the task
// kind: *CompletionOutput for TaskCompletion, *EmbeddingOutput for
// TaskSemanticEmbedding.
type Response interface {
	Kind() TaskKind
	isResponse()
}

// FinishReason tells why a completion ended.
type FinishReason int

const (
	FinishReasonOther FinishReason = iota
	FinishReasonStopSequence
	FinishReasonMaximumTokens
)

func (r FinishReason) String() string {
	switch r {
	case FinishReasonStopSequence:
		return "stop_sequence_reached"
	case FinishReasonMaximumTokens:
		return "maximum_tokens"
	default:
		return "other"
	}
}

func parseFinishReason(raw string) FinishReason {
	switch raw {
	case "stop_sequence_reached":
		return FinishReasonStopSequence
	case "maximum_tokens":
		return FinishReasonMaximumTokens
	default:
		return FinishReasonOther
	}
}

// CompletionOutput is the answer to a TaskCompletion.
type CompletionOutput struct {
	ModelVersion string

	// Completion is the generated text exactly as the service returned it.
	Completion string

	FinishReason FinishReason

	// RawFinishReason keeps the service's value, useful when FinishReason is
	// FinishReasonOther.
	RawFinishReason string
}

func (*CompletionOutput) Kind() TaskKind { return TaskKindCompletion }

func (*CompletionOutput) isResponse() {}

// EmbeddingOutput is the answer to a TaskSemanticEmbedding.
type EmbeddingOutput struct {
	ModelVersion string
	Embedding    []float64
}

func (*EmbeddingOutput) Kind() TaskKind { return TaskKindSemanticEmbedding }

func (*EmbeddingOutput) isResponse() {}
