package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCompletionMinimal(t *testing.T) {
	path, body, err := encodeRequest("luminous-base", NewCompletionFromText("Hello,", 1))
	require.NoError(t, err)

	assert.Equal(t, "/complete", path)
	assert.Equal(t, `{"model":"luminous-base","prompt":[{"type":"text","data":"Hello,"}],"maximum_tokens":1}`, string(body))
}

func TestEncodeCompletionOptionalFields(t *testing.T) {
	task := NewCompletionFromText("Bot:", 64).
		WithStopSequences("User:").
		WithSampling(Sampling{}.WithTemperature(0).WithTopK(3))

	_, body, err := encodeRequest("luminous-base", task)
	require.NoError(t, err)

	// A zero temperature is an explicit override and must be present.
	assert.JSONEq(t, `{
		"model": "luminous-base",
		"prompt": [{"type": "text", "data": "Bot:"}],
		"maximum_tokens": 64,
		"stop_sequences": ["User:"],
		"temperature": 0,
		"top_k": 3
	}`, string(body))
	assert.NotContains(t, string(body), "top_p")
	assert.NotContains(t, string(body), "null")
}

func TestEncodeCompletionEmptyPrompt(t *testing.T) {
	_, body, err := encodeRequest("m", TaskCompletion{})
	require.NoError(t, err)
	assert.Equal(t, `{"model":"m","prompt":[],"maximum_tokens":0}`, string(body))
}

func TestEncodeSemanticEmbedding(t *testing.T) {
	task := NewSemanticEmbeddingFromText("What is Pizza?", RepresentationQuery).WithCompressToSize(128)

	path, body, err := encodeRequest("luminous-base", task)
	require.NoError(t, err)

	assert.Equal(t, "/semantic_embed", path)
	assert.Equal(t, `{"model":"luminous-base","prompt":{"type":"text","data":"What is Pizza?"},"representation":"query","compress_to_size":128}`, string(body))
}

func TestEncodeSemanticEmbeddingWithoutCompression(t *testing.T) {
	_, body, err := encodeRequest("luminous-base", NewSemanticEmbeddingFromText("doc", RepresentationDocument))
	require.NoError(t, err)
	assert.Equal(t, `{"model":"luminous-base","prompt":{"type":"text","data":"doc"},"representation":"document"}`, string(body))
}

func TestEncodeRejectsNilPromptItem(t *testing.T) {
	_, _, err := encodeRequest("m", TaskSemanticEmbedding{Representation: RepresentationQuery})
	assert.Error(t, err)

	_, _, err = encodeRequest("m", TaskCompletion{Prompt: Prompt{nil}})
	assert.Error(t, err)
}

func TestNormalizeTask(t *testing.T) {
	task := NewCompletionFromText("x", 1)

	got, err := normalizeTask(&task)
	require.NoError(t, err)
	assert.IsType(t, TaskCompletion{}, got)

	_, err = normalizeTask(nil)
	assert.ErrorIs(t, err, errNilTask)

	var nilTask *TaskSemanticEmbedding
	_, err = normalizeTask(nilTask)
	assert.ErrorIs(t, err, errNilTask)
}

func TestDecodeCompletion(t *testing.T) {
	resp, err := decodeResponse(TaskKindCompletion, []byte(`{
		"model_version": "2021-12",
		"completions": [{"completion": " Pizza!\n", "finish_reason": "stop_sequence_reached", "log_probs": null}],
		"optimized_prompt": []
	}`))
	require.NoError(t, err)

	out, ok := resp.(*CompletionOutput)
	require.True(t, ok)
	assert.Equal(t, "2021-12", out.ModelVersion)
	assert.Equal(t, " Pizza!\n", out.Completion)
	assert.Equal(t, FinishReasonStopSequence, out.FinishReason)
	assert.Equal(t, "stop_sequence_reached", out.RawFinishReason)
}

func TestDecodeCompletionFinishReasons(t *testing.T) {
	cases := map[string]FinishReason{
		"maximum_tokens":        FinishReasonMaximumTokens,
		"stop_sequence_reached": FinishReasonStopSequence,
		"end_of_text":           FinishReasonOther,
	}
	for raw, want := range cases {
		t.Run(raw, func(t *testing.T) {
			out, err := decodeCompletion([]byte(`{"model_version":"v","completions":[{"completion":"","finish_reason":"` + raw + `"}]}`))
			require.NoError(t, err)
			assert.Equal(t, want, out.FinishReason)
			assert.Equal(t, raw, out.RawFinishReason)
		})
	}
}

func TestDecodeCompletionMissingFields(t *testing.T) {
	bodies := map[string]string{
		"not json":              `Internal Server Error`,
		"missing model_version": `{"completions":[{"completion":"a","finish_reason":"maximum_tokens"}]}`,
		"no completions":        `{"model_version":"v","completions":[]}`,
		"missing completion":    `{"model_version":"v","completions":[{"finish_reason":"maximum_tokens"}]}`,
		"missing finish_reason": `{"model_version":"v","completions":[{"completion":"a"}]}`,
		"wrong type":            `{"model_version":"v","completions":[{"completion":1,"finish_reason":"x"}]}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			_, err := decodeResponse(TaskKindCompletion, []byte(body))
			assert.Error(t, err)
		})
	}
}

func TestDecodeSemanticEmbedding(t *testing.T) {
	resp, err := decodeResponse(TaskKindSemanticEmbedding, []byte(`{"model_version":"2022-04","embedding":[0.5,-1,2e-3],"num_tokens_prompt_total":4}`))
	require.NoError(t, err)

	out, ok := resp.(*EmbeddingOutput)
	require.True(t, ok)
	assert.Equal(t, "2022-04", out.ModelVersion)
	assert.Equal(t, []float64{0.5, -1, 0.002}, out.Embedding)
}

func TestDecodeSemanticEmbeddingMissingEmbedding(t *testing.T) {
	_, err := decodeResponse(TaskKindSemanticEmbedding, []byte(`{"model_version":"v"}`))
	assert.Error(t, err)

	_, err = decodeResponse(TaskKindSemanticEmbedding, []byte(`{"model_version":"v","embedding":null}`))
	assert.Error(t, err)
}
