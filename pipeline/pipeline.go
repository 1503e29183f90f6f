// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package pipeline

import (
	"github.com/born-ml/nertrain/internal/doc"
	"github.com/born-ml/nertrain/internal/ner"
	"github.com/born-ml/nertrain/internal/parallel"
	"github.com/born-ml/nertrain/internal/pipeline"
)

// Language is a tokenizer followed by an ordered list of named pipes.
type Language = pipeline.Language

// Meta describes a pipeline. It is stored as meta.json.
type Meta = pipeline.Meta

// Pipe is a processing component that annotates a Doc in place.
type Pipe = pipeline.Pipe

// Trainable is a Pipe with weights.
type Trainable = pipeline.Trainable

// PipeConfig configures CreatePipe.
type PipeConfig = pipeline.PipeConfig

// UpdateOptions configures one Language.Update call.
type UpdateOptions = pipeline.UpdateOptions

// Scores and PRF are entity-level evaluation results.
type (
	Scores = pipeline.Scores
	PRF    = pipeline.PRF
)

// Documents

// Doc is a tokenized text plus its annotations.
type Doc = doc.Doc

// Span is a labeled token range of a Doc.
type Span = doc.Span

// Example is raw training text with its gold entities.
type Example = doc.Example

// Annotation is a gold entity as a character span.
type Annotation = doc.Annotation

// Entity recognizer

// EntityRecognizer is the "ner" pipe.
type EntityRecognizer = ner.EntityRecognizer

// NERConfig configures an EntityRecognizer.
type NERConfig = ner.Config

// AlignMode controls how misaligned gold spans map onto tokens.
type AlignMode = ner.AlignMode

// Alignment modes.
const (
	AlignExpand = ner.AlignExpand
	AlignStrict = ner.AlignStrict
)

// ParallelConfig controls batch processing in Language.Pipe and Evaluate.
type ParallelConfig = parallel.Config

// Factory names.
const (
	FactoryNER         = pipeline.FactoryNER
	FactorySentencizer = pipeline.FactorySentencizer
)

// Errors.
var (
	ErrUnsupportedLanguage = pipeline.ErrUnsupportedLanguage
	ErrModelNotFound       = pipeline.ErrModelNotFound
	ErrUnknownFactory      = pipeline.ErrUnknownFactory
	ErrPipeNotFound        = pipeline.ErrPipeNotFound
)

// Blank creates an empty pipeline. Only "en" is supported.
func Blank(lang string) (*Language, error) {
	return pipeline.Blank(lang)
}

// Load reads a pipeline saved with Language.ToDisk.
func Load(dir string) (*Language, error) {
	return pipeline.Load(dir)
}

// DefaultParallelConfig returns a worker pool sized to the CPU count.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}
