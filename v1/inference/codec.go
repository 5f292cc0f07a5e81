package inference

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	completePath      = "/complete"
	semanticEmbedPath = "/semantic_embed"
)

// promptItemJSON is the tagged wire form of every prompt item.
type promptItemJSON struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type completionRequest struct {
	Model         string           `json:"model"`
	Prompt        []promptItemJSON `json:"prompt"`
	MaximumTokens uint32           `json:"maximum_tokens"`
	StopSequences []string         `json:"stop_sequences,omitempty"`
	Temperature   *float64         `json:"temperature,omitempty"`
	TopK          *uint32          `json:"top_k,omitempty"`
	TopP          *float64         `json:"top_p,omitempty"`
}

type semanticEmbeddingRequest struct {
	Model          string                 `json:"model"`
	Prompt         promptItemJSON         `json:"prompt"`
	Representation SemanticRepresentation `json:"representation"`
	CompressToSize *uint32                `json:"compress_to_size,omitempty"`
}

// Response bodies use pointers so a missing field can be told apart from a
// zero value.
type completionResponse struct {
	ModelVersion *string `json:"model_version"`
	Completions  []struct {
		Completion   *string `json:"completion"`
		FinishReason *string `json:"finish_reason"`
	} `json:"completions"`
}

type semanticEmbeddingResponse struct {
	ModelVersion *string   `json:"model_version"`
	Embedding    []float64 `json:"embedding"`
}

var errNilTask = errors.New("inference: task is nil")

// normalizeTask accepts both task values and pointers to them.
func normalizeTask(task Task) (Task, error) {
	switch t := task.(type) {
	case TaskCompletion, TaskSemanticEmbedding:
		return t, nil
	case *TaskCompletion:
		if t == nil {
			return nil, errNilTask
		}
		return *t, nil
	case *TaskSemanticEmbedding:
		if t == nil {
			return nil, errNilTask
		}
		return *t, nil
	case nil:
		return nil, errNilTask
	default:
		return nil, fmt.Errorf("inference: unsupported task type %T", task)
	}
}

// encodeRequest maps a task and model to the endpoint path and JSON body.
func encodeRequest(model string, task Task) (string, []byte, error) {
	var (
		path string
		body any
	)

	switch t := task.(type) {
	case TaskCompletion:
		req, err := encodeCompletion(model, t)
		if err != nil {
			return "", nil, err
		}
		path, body = completePath, req
	case TaskSemanticEmbedding:
		item, err := encodePromptItem(t.Prompt)
		if err != nil {
			return "", nil, err
		}
		path, body = semanticEmbedPath, semanticEmbeddingRequest{
			Model:          model,
			Prompt:         item,
			Representation: t.Representation,
			CompressToSize: t.CompressToSize,
		}
	default:
		return "", nil, fmt.Errorf("inference: unsupported task type %T", task)
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", nil, fmt.Errorf("inference: encode request: %w", err)
	}
	return path, data, nil
}

func encodeCompletion(model string, t TaskCompletion) (completionRequest, error) {
	prompt := make([]promptItemJSON, 0, len(t.Prompt))
	for _, item := range t.Prompt {
		encoded, err := encodePromptItem(item)
		if err != nil {
			return completionRequest{}, err
		}
		prompt = append(prompt, encoded)
	}

	return completionRequest{
		Model:         model,
		Prompt:        prompt,
		MaximumTokens: t.Stopping.MaximumTokens,
		StopSequences: t.Stopping.StopSequences,
		Temperature:   t.Sampling.Temperature,
		TopK:          t.Sampling.TopK,
		TopP:          t.Sampling.TopP,
	}, nil
}

func encodePromptItem(item PromptItem) (promptItemJSON, error) {
	if item == nil {
		return promptItemJSON{}, errors.New("inference: prompt item is nil")
	}
	return promptItemJSON{Type: item.promptItemType(), Data: item.promptItemData()}, nil
}

// decodeResponse maps a successful response body to the response variant of kind.
func decodeResponse(kind TaskKind, body []byte) (Response, error) {
	switch kind {
	case TaskKindCompletion:
		return decodeCompletion(body)
	case TaskKindSemanticEmbedding:
		return decodeSemanticEmbedding(body)
	default:
		return nil, fmt.Errorf("unknown task kind %d", kind)
	}
}

func decodeCompletion(body []byte) (*CompletionOutput, error) {
	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode completion: %w", err)
	}
	if parsed.ModelVersion == nil {
		return nil, errors.New("decode completion: missing model_version")
	}
	if len(parsed.Completions) == 0 {
		return nil, errors.New("decode completion: no completions")
	}

	first := parsed.Completions[0]
	if first.Completion == nil {
		return nil, errors.New("decode completion: missing completion")
	}
	if first.FinishReason == nil {
		return nil, errors.New("decode completion: missing finish_reason")
	}

	return &CompletionOutput{
		ModelVersion:    *parsed.ModelVersion,
		Completion:      *first.Completion,
		FinishReason:    parseFinishReason(*first.FinishReason),
		RawFinishReason: *first.FinishReason,
	}, nil
}

func decodeSemanticEmbedding(body []byte) (*EmbeddingOutput, error) {
	var parsed semanticEmbeddingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode semantic embedding: %w", err)
	}
	if parsed.ModelVersion == nil {
		return nil, errors.New("decode semantic embedding: missing model_version")
	}
	if parsed.Embedding == nil {
		return nil, errors.New("decode semantic embedding: missing embedding")
	}

	return &EmbeddingOutput{
		ModelVersion: *parsed.ModelVersion,
		Embedding:    parsed.Embedding,
	}, nil
}
