// Package config loads training settings from YAML.
//
// Example file:
//
//	model: ./models/base
//	new_model_name: resume
//	output_dir: ./models/resume
//	n_iter: 20
//	dropout: 0.2
//	seed: 0
//	optimizer:
//	  name: adam
//	  lr: 0.01
//	ner:
//	  align_mode: expand
//	  subword_encoding: cl100k_base
//	train_data: ./extra.yaml
package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/nertrain/internal/corpus"
	"github.com/born-ml/nertrain/internal/ner"
	"github.com/born-ml/nertrain/internal/optim"
)

// Defaults.
const (
	DefaultNewModelName = "resume"
	DefaultIterations   = 20
	DefaultDropout      = 0.2
	DefaultLR           = 0.01
)

// ErrInvalidConfig is returned for settings outside their valid range.
var ErrInvalidConfig = errors.New("invalid config")

// NER configures a newly created entity recognizer.
type NER struct {
	AlignMode       string `yaml:"align_mode"`
	SubwordEncoding string `yaml:"subword_encoding"`
}

// Config holds every training setting.
type Config struct {
	Model        string        `yaml:"model"`          // Pipeline directory to start from; "" creates a blank pipeline
	NewModelName string        `yaml:"new_model_name"` // Name recorded in meta.json when saving
	OutputDir    string        `yaml:"output_dir"`     // Where to save; "" skips saving
	Iterations   int           `yaml:"n_iter"`
	Dropout      float32       `yaml:"dropout"`
	Seed         int64         `yaml:"seed"` // 0 seeds from the clock
	Optimizer    optim.Options `yaml:"optimizer"`
	NER          NER           `yaml:"ner"`
	TrainData    string        `yaml:"train_data"` // Optional YAML file of extra examples
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		NewModelName: DefaultNewModelName,
		Iterations:   DefaultIterations,
		Dropout:      DefaultDropout,
		Optimizer:    optim.Options{Name: optim.NameAdam, LR: DefaultLR},
		NER:          NER{AlignMode: string(ner.AlignExpand)},
	}
}

// Load reads path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	//nolint:gosec // G304: config path comes from the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf("%w: n_iter must be >= 0, got %d", ErrInvalidConfig, c.Iterations)
	}
	if c.Dropout < 0 || c.Dropout >= 1 {
		return fmt.Errorf("%w: dropout must be in [0, 1), got %g", ErrInvalidConfig, c.Dropout)
	}
	if c.Optimizer.LR < 0 {
		return fmt.Errorf("%w: optimizer lr must be >= 0, got %g", ErrInvalidConfig, c.Optimizer.LR)
	}
	if _, err := ner.ParseAlignMode(c.NER.AlignMode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// RecognizerConfig returns the settings for a new entity recognizer.
func (c Config) RecognizerConfig(labels ...string) ner.Config {
	return ner.Config{
		Labels:          labels,
		AlignMode:       ner.AlignMode(c.NER.AlignMode),
		SubwordEncoding: c.NER.SubwordEncoding,
	}
}

// LoadExamples reads training examples from a YAML list. Entity offsets
// count characters, not bytes:
//
//	- text: Ryerson University
//	  entities:
//	    - {start: 0, end: 18, label: STUDIEDAT}
func LoadExamples(path string) ([]corpus.Example, error) {
	//nolint:gosec // G304: data path comes from the config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read examples: %w", err)
	}
	var examples []corpus.Example
	if err := yaml.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("parse examples %s: %w", path, err)
	}
	for i, ex := range examples {
		numChars := utf8.RuneCountInString(ex.Text)
		for _, ent := range ex.Entities {
			if ent.Start < 0 || ent.End > numChars || ent.Start >= ent.End {
				return nil, fmt.Errorf("%w: example %d: span [%d, %d) out of range",
					ErrInvalidConfig, i, ent.Start, ent.End)
			}
		}
	}
	return examples, nil
}
