package inference

// PromptItem is one segment of a prompt. Every item is encoded on the wire as
// {"type": <tag>, "data": <payload>}, so new kinds of items can be added without
// touching the encoding of existing ones.
type PromptItem interface {
	// promptItemType returns the wire tag, e.g. "text".
	promptItemType() string
	// promptItemData returns the JSON encodable payload.
	promptItemData() any
}

// Text is a plain text prompt item.
type Text struct {
	Data string
}

func (Text) promptItemType() string { return "text" }

func (t Text) promptItemData() any { return t.Data }

// Prompt is an ordered sequence of prompt items.
type Prompt []PromptItem

// NewPrompt returns a prompt made of a copy of items.
func NewPrompt(items ...PromptItem) Prompt {
	return append(Prompt(nil), items...)
}

// PromptFromText returns a prompt consisting of a single text item.
func PromptFromText(text string) Prompt {
	return Prompt{Text{Data: text}}
}
