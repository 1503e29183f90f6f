package pipeline

import (
	"fmt"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"github.com/born-ml/nertrain/internal/doc"
)

// Sentencizer sets Doc.Sents using the Punkt sentence tokenizer trained on
// English.
type Sentencizer struct {
	name string

	mu        sync.Mutex
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewSentencizer creates a Sentencizer.
func NewSentencizer(name string) (*Sentencizer, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load english sentence model: %w", err)
	}
	return &Sentencizer{name: name, tokenizer: tok}, nil
}

// Name returns the component name.
func (s *Sentencizer) Name() string {
	return s.name
}

// Predict sets d.Sents. Every token belongs to exactly one sentence.
func (s *Sentencizer) Predict(d *doc.Doc) error {
	d.Sents = nil
	if d.Len() == 0 {
		return nil
	}

	s.mu.Lock()
	found := s.tokenizer.Tokenize(d.Text)
	s.mu.Unlock()

	// Sentence ends as byte offsets, located by searching forward from the
	// previous sentence.
	var ends []int
	cursor := 0
	for _, sent := range found {
		text := strings.TrimSpace(sent.Text)
		if text == "" {
			continue
		}
		idx := strings.Index(d.Text[cursor:], text)
		if idx < 0 {
			break
		}
		cursor += idx + len(text)
		ends = append(ends, cursor)
	}
	if len(ends) == 0 || ends[len(ends)-1] < len(d.Text) {
		ends = append(ends, len(d.Text))
	}

	start := 0
	for _, end := range ends {
		stop := start
		for stop < d.Len() && d.Tokens[stop].Idx < end {
			stop++
		}
		if stop == start {
			continue
		}
		startChar := d.Tokens[start].Idx
		endChar := d.Tokens[stop-1].End()
		d.Sents = append(d.Sents, doc.Sentence{
			Start:     start,
			End:       stop,
			StartChar: startChar,
			EndChar:   endChar,
			Text:      d.Text[startChar:endChar],
		})
		start = stop
	}

	return nil
}
