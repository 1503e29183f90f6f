package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Default punctuation peeled off the edges of whitespace-separated chunks.
const (
	DefaultPrefixes = "([{\"'`«“‘"
	DefaultSuffixes = ",.;:!?)]}\"'»”’"
)

// Token is a word token with its position in the source text.
type Token struct {
	Text       string // Token text, a substring of the source
	Idx        int    // Byte offset of the token in the source text
	Whitespace bool   // Whether the token is followed by whitespace
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Idx + len(t.Text)
}

// SubwordEncoder converts text into subword token IDs.
//
// TikToken implements this interface.
type SubwordEncoder interface {
	// Encode converts text to token IDs.
	Encode(text string) ([]int32, error)

	// Name returns the encoding name (e.g., "cl100k_base").
	Name() string
}

// Word is a rule-based word tokenizer.
//
// Text is split on whitespace, then prefix and suffix punctuation is peeled
// off each chunk one character at a time. Abbreviations with an inner dot
// ("B.Sc.", "U.S.") are kept whole.
type Word struct {
	Prefixes string `json:"prefixes"` // Characters split off the start of a chunk
	Suffixes string `json:"suffixes"` // Characters split off the end of a chunk
}

// NewWord creates a word tokenizer with the default punctuation rules.
func NewWord() *Word {
	return &Word{
		Prefixes: DefaultPrefixes,
		Suffixes: DefaultSuffixes,
	}
}

// Tokenize splits text into tokens.
//
// Invariant: text[t.Idx:t.End()] == t.Text for every returned token.
func (w *Word) Tokenize(text string) []Token {
	tokens := make([]Token, 0, len(text)/4+1)

	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = w.appendChunk(tokens, text, start, i)
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = w.appendChunk(tokens, text, start, len(text))
	}

	return tokens
}

// appendChunk tokenizes text[start:end], a run of non-space characters.
func (w *Word) appendChunk(tokens []Token, text string, start, end int) []Token {
	chunk := text[start:end]
	followedBySpace := end < len(text)

	if isAbbreviation(chunk) {
		return append(tokens, Token{Text: chunk, Idx: start, Whitespace: followedBySpace})
	}

	// Peel prefixes.
	lo := 0
	for lo < len(chunk) {
		r, size := utf8.DecodeRuneInString(chunk[lo:])
		if !strings.ContainsRune(w.Prefixes, r) {
			break
		}
		tokens = append(tokens, Token{Text: chunk[lo : lo+size], Idx: start + lo})
		lo += size
	}

	// Peel suffixes from the back; they are emitted after the middle.
	hi := len(chunk)
	var suffixStarts []int
	for hi > lo && !isAbbreviation(chunk[lo:hi]) {
		r, size := utf8.DecodeLastRuneInString(chunk[lo:hi])
		if !strings.ContainsRune(w.Suffixes, r) {
			break
		}
		hi -= size
		suffixStarts = append(suffixStarts, hi)
	}

	if hi > lo {
		tokens = append(tokens, Token{Text: chunk[lo:hi], Idx: start + lo})
	}

	for i := 0; i < len(suffixStarts); i++ {
		// Suffixes were collected back to front.
		s := suffixStarts[len(suffixStarts)-1-i]
		e := len(chunk)
		if i+1 < len(suffixStarts) {
			e = suffixStarts[len(suffixStarts)-2-i]
		}
		tokens = append(tokens, Token{Text: chunk[s:e], Idx: start + s})
	}

	tokens[len(tokens)-1].Whitespace = followedBySpace
	return tokens
}

// isAbbreviation reports whether s consists of letters and dots only and has
// a dot followed by a letter.
func isAbbreviation(s string) bool {
	innerDot := false
	prevDot := false
	for _, r := range s {
		switch {
		case r == '.':
			prevDot = true
		case unicode.IsLetter(r):
			if prevDot {
				innerDot = true
			}
			prevDot = false
		default:
			return false
		}
	}
	return innerDot
}
