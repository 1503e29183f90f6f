package pipeline

import (
	"context"
	"fmt"

	"github.com/born-ml/nertrain/internal/doc"
	"github.com/born-ml/nertrain/internal/ner"
	"github.com/born-ml/nertrain/internal/parallel"
)

// PRF holds precision, recall and F1 counts for entity spans.
type PRF struct {
	TP int `json:"tp"`
	FP int `json:"fp"`
	FN int `json:"fn"`
}

// Precision returns TP / (TP + FP), or 0 when nothing was predicted.
func (s PRF) Precision() float64 {
	if s.TP+s.FP == 0 {
		return 0
	}
	return float64(s.TP) / float64(s.TP+s.FP)
}

// Recall returns TP / (TP + FN), or 0 when there is no gold entity.
func (s PRF) Recall() float64 {
	if s.TP+s.FN == 0 {
		return 0
	}
	return float64(s.TP) / float64(s.TP+s.FN)
}

// F1 returns the harmonic mean of precision and recall.
func (s PRF) F1() float64 {
	p, r := s.Precision(), s.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// Scores are entity-level evaluation results.
type Scores struct {
	Ents     PRF            `json:"ents"`
	PerLabel map[string]PRF `json:"per_label"`
}

type entKey struct {
	start, end int
	label      string
}

// Evaluate runs the pipeline over examples and scores predicted entities
// against the gold ones. An entity counts as correct only when its token
// span and label both match. Gold spans are aligned to tokens in expand mode.
func (l *Language) Evaluate(ctx context.Context, examples []doc.Example, cfg parallel.Config) (Scores, error) {
	texts := make([]string, len(examples))
	for i, ex := range examples {
		texts[i] = ex.Text
	}
	docs, err := l.Pipe(ctx, texts, cfg)
	if err != nil {
		return Scores{}, err
	}

	scores := Scores{PerLabel: make(map[string]PRF)}
	count := func(label string, update func(*PRF)) {
		update(&scores.Ents)
		s := scores.PerLabel[label]
		update(&s)
		scores.PerLabel[label] = s
	}

	for i, d := range docs {
		gold, err := ner.GoldSpans(d, examples[i].Entities, ner.AlignExpand)
		if err != nil {
			return Scores{}, fmt.Errorf("example %d: %w", i, err)
		}
		want := make(map[entKey]bool, len(gold))
		for _, span := range gold {
			want[entKey{span.Start, span.End, span.Label}] = true
		}

		for _, ent := range d.Ents {
			key := entKey{ent.Start, ent.End, ent.Label}
			if want[key] {
				delete(want, key)
				count(ent.Label, func(s *PRF) { s.TP++ })
			} else {
				count(ent.Label, func(s *PRF) { s.FP++ })
			}
		}
		for key := range want {
			count(key.label, func(s *PRF) { s.FN++ })
		}
	}

	return scores, nil
}
