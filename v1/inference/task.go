package inference

// TaskKind discriminates the task variants. It also names the endpoint the
// task is sent to.
type TaskKind int

const (
	TaskKindCompletion TaskKind = iota + 1
	TaskKindSemanticEmbedding
)

// String returns the endpoint name of the kind.
func (k TaskKind) String() string {
	switch k {
	case TaskKindCompletion:
		return "complete"
	case TaskKindSemanticEmbedding:
		return "semantic_embed"
	default:
		return "unknown"
	}
}

// Task is a typed description of one inference request. The set of
// implementations is closed: TaskCompletion and TaskSemanticEmbedding.
//
// Tasks are plain values. Constructors and With* helpers copy any slice they
// are given, so a task is never changed after it has been built.
type Task interface {
	Kind() TaskKind
	isTask()
}

// How carries per-call options that do not change the shape of the response.
type How struct {
	// BeNice asks the service to deprioritize this request in favour of
	// latency-sensitive traffic. It adds nice=true to the request query.
	BeNice bool
}

// TaskCompletion asks the model to continue a prompt.
type TaskCompletion struct {
	Prompt   Prompt
	Stopping Stopping
	Sampling Sampling
}

// Stopping controls when generation ends.
type Stopping struct {
	// MaximumTokens is the token budget of the completion.
	MaximumTokens uint32

	// StopSequences are matched as literal substrings; generation halts at the
	// first match. The matched sequence is not part of the completion.
	StopSequences []string
}

// Sampling selects how the next token is picked. The zero value samples the
// most likely token deterministically; setting any field switches to
// stochastic sampling with that parameter. Unset fields are omitted from the
// request so the service applies its own defaults.
type Sampling struct {
	Temperature *float64
	TopK        *uint32
	TopP        *float64
}

// NewCompletionFromText builds a completion task for a plain text prompt with
// most likely sampling and no stop sequences. Neither the text nor the token
// budget is validated; the service rejects what it cannot process.
func NewCompletionFromText(text string, maximumTokens uint32) TaskCompletion {
	return TaskCompletion{
		Prompt:   PromptFromText(text),
		Stopping: Stopping{MaximumTokens: maximumTokens},
	}
}

func (TaskCompletion) Kind() TaskKind { return TaskKindCompletion }

func (TaskCompletion) isTask() {}

// WithStopSequences returns a copy of t that stops at any of sequences.
func (t TaskCompletion) WithStopSequences(sequences ...string) TaskCompletion {
	t.Prompt = NewPrompt(t.Prompt...)
	t.Stopping.StopSequences = append([]string(nil), sequences...)
	return t
}

// WithSampling returns a copy of t using s.
func (t TaskCompletion) WithSampling(s Sampling) TaskCompletion {
	t.Prompt = NewPrompt(t.Prompt...)
	t.Stopping.StopSequences = append([]string(nil), t.Stopping.StopSequences...)
	t.Sampling = s
	return t
}

// IsMostLikely reports whether s is deterministic most likely sampling.
func (s Sampling) IsMostLikely() bool {
	return s.Temperature == nil && s.TopK == nil && s.TopP == nil
}

// WithTemperature returns a copy of s with the given temperature.
func (s Sampling) WithTemperature(v float64) Sampling {
	s.Temperature = &v
	return s
}

// WithTopK returns a copy of s that samples among the k most likely tokens.
func (s Sampling) WithTopK(k uint32) Sampling {
	s.TopK = &k
	return s
}

// WithTopP returns a copy of s using nucleus sampling with probability mass p.
func (s Sampling) WithTopP(p float64) Sampling {
	s.TopP = &p
	return s
}

// SemanticRepresentation selects the embedding space. Document and Query are
// asymmetric: compare a Query embedding against Document embeddings. Symmetric
// embeddings are compared with each other.
type SemanticRepresentation string

const (
	RepresentationDocument  SemanticRepresentation = "document"
	RepresentationQuery     SemanticRepresentation = "query"
	RepresentationSymmetric SemanticRepresentation = "symmetric"
)

// TaskSemanticEmbedding asks for an embedding of a single prompt item.
type TaskSemanticEmbedding struct {
	Prompt         PromptItem
	Representation SemanticRepresentation

	// CompressToSize requests a compressed embedding with that many dimensions.
	// Nil keeps the full size.
	CompressToSize *uint32
}

// NewSemanticEmbeddingFromText builds an uncompressed embedding task for text.
func NewSemanticEmbeddingFromText(text string, representation SemanticRepresentation) TaskSemanticEmbedding {
	return TaskSemanticEmbedding{
		Prompt:         Text{Data: text},
		Representation: representation,
	}
}

func (TaskSemanticEmbedding) Kind() TaskKind { return TaskKindSemanticEmbedding }

func (TaskSemanticEmbedding) isTask() {}

// WithCompressToSize returns a copy of t compressed to size dimensions.
func (t TaskSemanticEmbedding) WithCompressToSize(size uint32) TaskSemanticEmbedding {
	t.CompressToSize = &size
	return t
}
