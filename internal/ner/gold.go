package ner

import (
	"fmt"
	"slices"
	"strings"

	"github.com/born-ml/nertrain/internal/doc"
)

// AlignMode controls how character spans that do not fall on token
// boundaries are mapped onto tokens.
type AlignMode string

// Alignment modes.
const (
	// AlignExpand grows a misaligned span to the boundaries of the tokens
	// it touches.
	AlignExpand AlignMode = "expand"

	// AlignStrict marks the tokens of a misaligned span as missing, so they
	// contribute no loss.
	AlignStrict AlignMode = "strict"
)

// ParseAlignMode parses an alignment mode name. The empty string selects
// AlignExpand.
func ParseAlignMode(s string) (AlignMode, error) {
	switch AlignMode(strings.ToLower(s)) {
	case "", AlignExpand:
		return AlignExpand, nil
	case AlignStrict:
		return AlignStrict, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlignMode, s)
	}
}

// GoldSpans maps character annotations onto token spans of d.
//
// Annotation offsets count characters (code points); tokens carry byte
// offsets, so offsets are converted before matching. In strict mode a
// misaligned annotation is returned with its token range and an empty
// Label, meaning "unknown". Annotations that cover no token (only
// whitespace) are dropped.
func GoldSpans(d *doc.Doc, ents []doc.Annotation, mode AlignMode) ([]doc.Span, error) {
	offsets := byteOffsets(d.Text)
	numChars := len(offsets) - 1

	spans := make([]doc.Span, 0, len(ents))
	for _, ent := range ents {
		if ent.Start < 0 || ent.End > numChars || ent.Start >= ent.End {
			return nil, fmt.Errorf("%w: [%d, %d) in text of %d characters",
				ErrSpanOutOfRange, ent.Start, ent.End, numChars)
		}
		startByte, endByte := offsets[ent.Start], offsets[ent.End]

		start, end := -1, -1
		for i, tok := range d.Tokens {
			if tok.Idx < endByte && tok.End() > startByte {
				if start < 0 {
					start = i
				}
				end = i + 1
			}
		}
		if start < 0 {
			continue
		}

		span := doc.NewSpan(d, start, end, ent.Label)
		aligned := span.StartChar == startByte && span.EndChar == endByte
		if !aligned && mode == AlignStrict {
			span.Label = ""
		}
		spans = append(spans, span)
	}

	slices.SortFunc(spans, func(a, b doc.Span) int { return a.Start - b.Start })
	for i := 1; i < len(spans); i++ {
		if spans[i].Start < spans[i-1].End {
			return nil, fmt.Errorf("%w: %q and %q",
				ErrOverlappingEntities, spans[i-1].Text, spans[i].Text)
		}
	}

	return spans, nil
}

// byteOffsets returns the byte offset of every character of text, plus
// len(text) for the end position.
func byteOffsets(text string) []int {
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}

// BILUOTags converts character annotations into one BILUO tag per token.
//
// Tokens outside every entity are tagged O; tokens of an entity that could
// not be aligned in strict mode are tagged "-".
func BILUOTags(d *doc.Doc, ents []doc.Annotation, mode AlignMode) ([]string, error) {
	spans, err := GoldSpans(d, ents, mode)
	if err != nil {
		return nil, err
	}

	tags := make([]string, d.Len())
	for i := range tags {
		tags[i] = Outside
	}
	for _, span := range spans {
		if span.Label == "" {
			for i := span.Start; i < span.End; i++ {
				tags[i] = Missing
			}
			continue
		}
		if span.End-span.Start == 1 {
			tags[span.Start] = "U-" + span.Label
			continue
		}
		tags[span.Start] = "B-" + span.Label
		for i := span.Start + 1; i < span.End-1; i++ {
			tags[i] = "I-" + span.Label
		}
		tags[span.End-1] = "L-" + span.Label
	}

	return tags, nil
}

// goldClasses converts BILUO tags to class indices; "-" becomes UnknownClass.
func (m *Moves) goldClasses(tags []string) ([]int, error) {
	classes := make([]int, len(tags))
	for i, tag := range tags {
		if tag == Missing {
			classes[i] = UnknownClass
			continue
		}
		c, err := m.ClassIndex(tag)
		if err != nil {
			return nil, err
		}
		classes[i] = c
	}
	return classes, nil
}

// spansFromClasses turns a well-formed class sequence into entity spans.
func (m *Moves) spansFromClasses(d *doc.Doc, classes []int) []doc.Span {
	var spans []doc.Span
	start := -1
	for i, c := range classes {
		action, label := m.Decode(c)
		switch action {
		case ActionUnit:
			spans = append(spans, doc.NewSpan(d, i, i+1, label))
			start = -1
		case ActionBegin:
			start = i
		case ActionLast:
			if start >= 0 {
				spans = append(spans, doc.NewSpan(d, start, i+1, label))
			}
			start = -1
		case ActionIn:
		default:
			start = -1
		}
	}
	return spans
}
