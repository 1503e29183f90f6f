package ner

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"

	"github.com/born-ml/nertrain/internal/doc"
	"github.com/born-ml/nertrain/internal/nn"
	"github.com/born-ml/nertrain/internal/optim"
	"github.com/born-ml/nertrain/internal/tokenizer"
)

// Config configures an EntityRecognizer. It is stored as cfg.json next to
// the weights.
type Config struct {
	Labels          []string  `json:"labels"`
	AlignMode       AlignMode `json:"align_mode"`
	SubwordEncoding string    `json:"subword_encoding,omitempty"` // tiktoken encoding, "" disables subword features
}

// EntityRecognizer is a trainable pipeline component that tags named
// entities with a greedy BILUO decoder.
//
// Predict only reads the weights, so concurrent Predict calls are safe.
// Update and AddLabel must not run concurrently with anything else.
type EntityRecognizer struct {
	name     string
	config   Config
	moves    *Moves
	weights  *nn.Parameter
	features *featurizer
}

var _ nn.Module = (*EntityRecognizer)(nil)

// New creates an untrained EntityRecognizer.
func New(name string, config Config) (*EntityRecognizer, error) {
	mode, err := ParseAlignMode(string(config.AlignMode))
	if err != nil {
		return nil, err
	}
	config.AlignMode = mode

	moves, err := NewMoves(config.Labels...)
	if err != nil {
		return nil, err
	}

	f := &featurizer{}
	if config.SubwordEncoding != "" {
		enc, err := tokenizer.NewTikToken(config.SubwordEncoding)
		if err != nil {
			return nil, err
		}
		f.subword = enc
	}

	return &EntityRecognizer{
		name:     name,
		config:   config,
		moves:    moves,
		weights:  nn.NewParameter(name+".W", moves.NumClasses()),
		features: f,
	}, nil
}

// Name returns the component name.
func (r *EntityRecognizer) Name() string {
	return r.name
}

// Config returns the current configuration, including every added label.
func (r *EntityRecognizer) Config() Config {
	cfg := r.config
	cfg.Labels = r.moves.Labels()
	return cfg
}

// AddLabel registers a new entity label and reports whether it was new.
//
// Existing weights are kept, so labels can be added to a trained model.
func (r *EntityRecognizer) AddLabel(label string) (bool, error) {
	added, err := r.moves.AddLabel(label)
	if err != nil || !added {
		return added, err
	}
	r.weights.Resize(r.moves.NumClasses())
	return true, nil
}

// Labels returns the registered entity labels.
func (r *EntityRecognizer) Labels() []string {
	return r.moves.Labels()
}

// Moves returns the class inventory.
func (r *EntityRecognizer) Moves() *Moves {
	return r.moves
}

// Initialize resets all weights to zero.
func (r *EntityRecognizer) Initialize() {
	r.weights.Reset()
}

// Parameters returns the trainable parameters.
func (r *EntityRecognizer) Parameters() []*nn.Parameter {
	return []*nn.Parameter{r.weights}
}

// Predict sets d.Ents to the recognized entities.
func (r *EntityRecognizer) Predict(d *doc.Doc) error {
	feats, err := r.features.tokenFeatures(d)
	if err != nil {
		return fmt.Errorf("%s: featurize: %w", r.name, err)
	}

	n := d.Len()
	width := r.moves.NumClasses()
	classes := make([]int, n)
	probs := make([]float32, n)
	valid := make([]bool, width)
	prev1, prev2 := NoClass, NoClass

	for i := range n {
		active := slices.Concat(feats[i], historyFeatures(r.moves, prev1, prev2, strings.ToLower(d.Tokens[i].Text)))
		scores := r.scores(active, 1)
		r.moves.Valid(prev1, i == n-1, valid)

		best := nn.Argmax(scores, valid)
		classes[i] = best
		probs[i] = nn.Softmax(scores, valid)[best]
		prev1, prev2 = best, prev1
	}

	d.Ents = r.moves.spansFromClasses(d, classes)
	for k := range d.Ents {
		ent := &d.Ents[k]
		var sum float32
		for i := ent.Start; i < ent.End; i++ {
			sum += probs[i]
		}
		ent.Score = sum / float32(ent.End-ent.Start)
	}

	return nil
}

// Update runs one training step over golds and returns the summed loss.
//
// Each token is scored with the gold history of the previous tokens
// rather than the predicted one. Features are dropped with probability drop. The
// accumulated gradients are applied once with sgd; a nil sgd only computes
// the loss.
func (r *EntityRecognizer) Update(golds []doc.Gold, drop float32, sgd optim.Optimizer, rng *rand.Rand) (float32, error) {
	width := r.moves.NumClasses()
	grads := nn.Grads{}
	valid := make([]bool, width)
	var total float32

	for _, gold := range golds {
		tags, err := BILUOTags(gold.Doc, gold.Entities, r.config.AlignMode)
		if err != nil {
			return 0, fmt.Errorf("%s: %q: %w", r.name, gold.Doc.Text, err)
		}
		target, err := r.moves.goldClasses(tags)
		if err != nil {
			return 0, fmt.Errorf("%s: %q: %w", r.name, gold.Doc.Text, err)
		}
		feats, err := r.features.tokenFeatures(gold.Doc)
		if err != nil {
			return 0, fmt.Errorf("%s: featurize: %w", r.name, err)
		}

		n := gold.Doc.Len()
		prev1, prev2 := NoClass, NoClass
		for i := range n {
			if target[i] != UnknownClass {
				active := slices.Concat(feats[i], historyFeatures(r.moves, prev1, prev2, strings.ToLower(gold.Doc.Tokens[i].Text)))
				active, scale := nn.Dropout(active, drop, rng)
				r.moves.Valid(prev1, i == n-1, valid)

				if valid[target[i]] {
					probs := nn.Softmax(r.scores(active, scale), valid)
					loss, d := nn.CrossEntropy(probs, target[i])
					total += loss
					for _, f := range active {
						row := grads.Row(f, width)
						for c, g := range d {
							row[c] += g * scale
						}
					}
				}
			}
			prev1, prev2 = target[i], prev1
		}
	}

	if sgd != nil && len(grads) > 0 {
		sgd.Step(map[*nn.Parameter]nn.Grads{r.weights: grads})
	}

	return total, nil
}

// scores sums the weight rows of the active features.
func (r *EntityRecognizer) scores(active []uint64, scale float32) []float32 {
	scores := make([]float32, r.moves.NumClasses())
	for _, f := range active {
		row := r.weights.Row(f)
		for c, w := range row {
			scores[c] += w * scale
		}
	}
	return scores
}
