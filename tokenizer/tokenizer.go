// Package tokenizer provides text tokenization for nertrain.
//
// This package wraps the internal tokenizer implementations and provides
// a clean public API for tokenization tasks.
//
// Supported tokenizers:
//   - Word: whitespace and punctuation word tokenizer with byte offsets
//   - TikToken: OpenAI BPE encodings, used as subword features
//
// Example usage:
//
//	import "github.com/born-ml/nertrain/tokenizer"
//
//	for _, tok := range tokenizer.NewWord().Tokenize("I have a B.Sc. degree.") {
//	    fmt.Println(tok.Idx, tok.Text)
//	}
//
//	enc, err := tokenizer.NewTikToken("cl100k_base")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ids, err := enc.Encode("University")
package tokenizer

import (
	"github.com/born-ml/nertrain/internal/tokenizer"
)

// Token is a word with its byte offset in the source text.
type Token = tokenizer.Token

// Word splits text on whitespace and peels off punctuation.
type Word = tokenizer.Word

// SubwordEncoder encodes a word into subword ids.
type SubwordEncoder = tokenizer.SubwordEncoder

// TikToken is a SubwordEncoder backed by an OpenAI BPE encoding.
type TikToken = tokenizer.TikToken

// Default punctuation peeled off word boundaries.
const (
	DefaultPrefixes = tokenizer.DefaultPrefixes
	DefaultSuffixes = tokenizer.DefaultSuffixes
)

// NewWord creates a word tokenizer with the default punctuation sets.
func NewWord() *Word {
	return tokenizer.NewWord()
}

// NewTikToken creates a TikToken encoder with the specified encoding.
//
// Supported encodings: "cl100k_base" (GPT-4), "p50k_base" (GPT-3).
func NewTikToken(encodingName string) (*TikToken, error) {
	return tokenizer.NewTikToken(encodingName)
}
