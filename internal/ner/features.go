package ner

import (
	"hash/fnv"
	"strconv"
	"strings"
	"unicode"

	"github.com/born-ml/nertrain/internal/doc"
	"github.com/born-ml/nertrain/internal/tokenizer"
)

// Padding words for context positions outside the document.
const (
	padStart = "<s>"
	padEnd   = "</s>"
)

// featurizer extracts hashed sparse features for each token.
type featurizer struct {
	subword tokenizer.SubwordEncoder // Optional
}

// tokenFeatures returns the history-independent features of every token.
func (f *featurizer) tokenFeatures(d *doc.Doc) ([][]uint64, error) {
	n := d.Len()
	lower := make([]string, n)
	shapes := make([]string, n)
	for i, tok := range d.Tokens {
		lower[i] = strings.ToLower(tok.Text)
		shapes[i] = wordShape(tok.Text)
	}
	at := func(words []string, i int) string {
		switch {
		case i < 0:
			return padStart
		case i >= n:
			return padEnd
		}
		return words[i]
	}

	feats := make([][]uint64, n)
	for i, tok := range d.Tokens {
		fs := []uint64{
			hashFeature("bias"),
			hashFeature("w", lower[i]),
			hashFeature("pre", prefix(lower[i], 1)),
			hashFeature("suf", suffix(lower[i], 3)),
			hashFeature("shape", shapes[i]),
			hashFeature("flags", wordFlags(tok.Text)),
			hashFeature("w-1", at(lower, i-1)),
			hashFeature("w-2", at(lower, i-2)),
			hashFeature("w+1", at(lower, i+1)),
			hashFeature("w+2", at(lower, i+2)),
			hashFeature("shape-1", at(shapes, i-1)),
			hashFeature("shape+1", at(shapes, i+1)),
			hashFeature("w-1,w", at(lower, i-1), lower[i]),
			hashFeature("w,w+1", lower[i], at(lower, i+1)),
		}
		if i == 0 {
			fs = append(fs, hashFeature("first"))
		}
		if i == n-1 {
			fs = append(fs, hashFeature("last"))
		}

		if f.subword != nil {
			ids, err := f.subword.Encode(tok.Text)
			if err != nil {
				return nil, err
			}
			if len(ids) > 0 {
				fs = append(fs,
					hashFeature("sw0", strconv.Itoa(int(ids[0]))),
					hashFeature("sw$", strconv.Itoa(int(ids[len(ids)-1]))),
					hashFeature("sw#", strconv.Itoa(min(len(ids), 4))),
				)
			}
		}

		feats[i] = fs
	}

	return feats, nil
}

// historyFeatures returns the features that depend on the two previous
// classes.
func historyFeatures(m *Moves, prev1, prev2 int, lower string) []uint64 {
	p1 := m.ClassName(prev1)
	p2 := m.ClassName(prev2)
	return []uint64{
		hashFeature("p1", p1),
		hashFeature("p1,p2", p1, p2),
		hashFeature("p1,w", p1, lower),
	}
}

// hashFeature hashes a feature template and its values with FNV-1a 64.
func hashFeature(template string, values ...string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(template))
	for _, v := range values {
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(v))
	}
	return h.Sum64()
}

// wordShape maps letters to x/X and digits to d, collapsing runs longer
// than four ("University" -> "Xxxxx", "B.Sc." -> "X.Xx.").
func wordShape(s string) string {
	var b strings.Builder
	var last rune
	run := 0
	for _, r := range s {
		var c rune
		switch {
		case unicode.IsUpper(r):
			c = 'X'
		case unicode.IsLetter(r):
			c = 'x'
		case unicode.IsDigit(r):
			c = 'd'
		default:
			c = r
		}
		if c == last {
			run++
		} else {
			last, run = c, 1
		}
		if run <= 4 {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func wordFlags(s string) string {
	var title, upper, digit, punct bool
	runes := []rune(s)
	if len(runes) > 0 {
		title = unicode.IsUpper(runes[0])
		upper, digit, punct = true, true, true
		for _, r := range runes {
			upper = upper && !unicode.IsLower(r)
			digit = digit && unicode.IsDigit(r)
			punct = punct && unicode.IsPunct(r)
		}
	}
	flag := func(on bool, c byte) byte {
		if on {
			return c
		}
		return '-'
	}
	return string([]byte{flag(title, 't'), flag(upper, 'u'), flag(digit, 'd'), flag(punct, 'p')})
}

func prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func suffix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
