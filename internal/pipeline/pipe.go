package pipeline

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/nertrain/internal/doc"
	"github.com/born-ml/nertrain/internal/ner"
	"github.com/born-ml/nertrain/internal/optim"
)

// Factory names.
const (
	FactoryNER         = "ner"
	FactorySentencizer = "sentencizer"
)

// Pipe is a processing component that annotates a Doc in place.
//
// Predict may be called concurrently for different documents.
type Pipe interface {
	Name() string
	Predict(d *doc.Doc) error
}

// Trainable is a Pipe with weights that Language.Update can train.
type Trainable interface {
	Pipe
	Labels() []string
	Initialize()
	Update(golds []doc.Gold, drop float32, sgd optim.Optimizer, rng *rand.Rand) (float32, error)
}

// Serializable is a Pipe with state stored in its own directory.
type Serializable interface {
	ToDisk(dir string) error
}

// PipeConfig configures CreatePipe.
type PipeConfig struct {
	Name string     // Component name; defaults to the factory name
	NER  ner.Config // Settings for the "ner" factory
}

type factory struct {
	create func(name string, cfg PipeConfig) (Pipe, error)
	load   func(name, dir string) (Pipe, error)
}

var factories = map[string]factory{
	FactoryNER: {
		create: func(name string, cfg PipeConfig) (Pipe, error) {
			return ner.New(name, cfg.NER)
		},
		load: func(name, dir string) (Pipe, error) {
			return ner.FromDisk(name, dir)
		},
	},
	FactorySentencizer: {
		create: func(name string, _ PipeConfig) (Pipe, error) {
			return NewSentencizer(name)
		},
		load: func(name, _ string) (Pipe, error) {
			return NewSentencizer(name)
		},
	},
}

// factoryOf returns the factory name that builds p.
func factoryOf(p Pipe) (string, error) {
	switch p.(type) {
	case *ner.EntityRecognizer:
		return FactoryNER, nil
	case *Sentencizer:
		return FactorySentencizer, nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnknownFactory, p)
	}
}
