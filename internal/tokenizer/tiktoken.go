package tokenizer

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TikToken wraps the pkoukk/tiktoken-go library for OpenAI BPE encodings.
//
// Word tokens repeat heavily across a corpus, so encodings are memoized.
// TikToken is safe for concurrent use.
//
// Supported encodings:
//   - cl100k_base: GPT-4, GPT-3.5-turbo
//   - p50k_base: GPT-3, Codex
//   - r50k_base: GPT-3, davinci-002, babbage-002
type TikToken struct {
	encoding *tiktoken.Tiktoken
	name     string
	cache    sync.Map // string -> []int32
}

// NewTikToken creates a new TikToken encoder with the specified encoding.
func NewTikToken(encodingName string) (*TikToken, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken encoding %q: %w", encodingName, err)
	}

	return &TikToken{
		encoding: encoding,
		name:     encodingName,
	}, nil
}

// Encode converts text to token IDs.
//
// The returned slice is shared with the cache and must not be modified.
func (t *TikToken) Encode(text string) ([]int32, error) {
	if cached, ok := t.cache.Load(text); ok {
		return cached.([]int32), nil
	}

	tokens := t.encoding.Encode(text, nil, nil)

	// Convert []int to []int32.
	result := make([]int32, len(tokens))
	for i, tok := range tokens {
		result[i] = int32(tok) //nolint:gosec // G115: Token ID fits in int32 - vocab size < 2^31.
	}

	t.cache.Store(text, result)
	return result, nil
}

// Decode converts token IDs back to text.
func (t *TikToken) Decode(tokens []int32) (string, error) {
	intTokens := make([]int, len(tokens))
	for i, tok := range tokens {
		intTokens[i] = int(tok)
	}
	return t.encoding.Decode(intTokens), nil
}

// Name returns the encoding name.
func (t *TikToken) Name() string {
	return t.name
}
