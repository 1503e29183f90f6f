// Package doc holds the annotated document types shared by the pipeline components.
package doc

import (
	"github.com/born-ml/nertrain/internal/tokenizer"
)

// Doc is a tokenized text plus the annotations set by pipeline components.
type Doc struct {
	Text   string            // Source text
	Tokens []tokenizer.Token // Word tokens with byte offsets into Text
	Ents   []Span            // Named entities, ordered and non-overlapping
	Sents  []Sentence        // Sentence boundaries (set by the sentencizer)
}

// New creates a Doc from already tokenized text.
func New(text string, tokens []tokenizer.Token) *Doc {
	return &Doc{
		Text:   text,
		Tokens: tokens,
	}
}

// Len returns the number of tokens.
func (d *Doc) Len() int {
	return len(d.Tokens)
}

// Words returns the token texts.
func (d *Doc) Words() []string {
	words := make([]string, len(d.Tokens))
	for i, t := range d.Tokens {
		words[i] = t.Text
	}
	return words
}

// Span is a labeled token range [Start, End) of a Doc.
type Span struct {
	Start     int     // First token index
	End       int     // One past the last token index
	StartChar int     // Byte offset of the first token
	EndChar   int     // Byte offset just past the last token
	Label     string  // Entity label
	Text      string  // Covered source text
	Score     float32 // Model confidence in (0, 1]; zero for gold spans
}

// NewSpan creates a Span over tokens [start, end) of d.
func NewSpan(d *Doc, start, end int, label string) Span {
	startChar := d.Tokens[start].Idx
	endChar := d.Tokens[end-1].End()
	return Span{
		Start:     start,
		End:       end,
		StartChar: startChar,
		EndChar:   endChar,
		Label:     label,
		Text:      d.Text[startChar:endChar],
	}
}

// Sentence is a sentence of a Doc.
type Sentence struct {
	Start     int    // First token index
	End       int    // One past the last token index
	StartChar int    // Byte offset of the sentence start
	EndChar   int    // Byte offset just past the sentence end
	Text      string // Sentence text
}

// Annotation is a gold entity given as a character span [Start, End) of a text.
//
// Offsets count characters (Unicode code points), not bytes.
type Annotation struct {
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
	Label string `json:"label" yaml:"label"`
}

// Example is raw training text with its gold entities.
type Example struct {
	Text     string       `json:"text" yaml:"text"`
	Entities []Annotation `json:"entities" yaml:"entities"`
}

// Gold pairs a tokenized Doc with its gold entities.
type Gold struct {
	Doc      *Doc
	Entities []Annotation
}
