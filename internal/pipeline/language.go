// Package pipeline composes a tokenizer and named processing components
// into a Language that turns text into annotated documents.
//
// Example:
//
//	nlp, _ := pipeline.Blank("en")
//	recognizer, _ := nlp.CreatePipe(pipeline.FactoryNER, pipeline.PipeConfig{})
//	_ = nlp.AddPipe(recognizer)
//	d, _ := nlp.Process("I studied at University Of Alberta")
//	for _, ent := range d.Ents {
//	    fmt.Println(ent.Label, ent.Text)
//	}
package pipeline

import (
	"context"
	"fmt"
	"slices"

	"github.com/born-ml/nertrain/internal/doc"
	"github.com/born-ml/nertrain/internal/parallel"
	"github.com/born-ml/nertrain/internal/tokenizer"
)

// Lang is the only supported language code.
const Lang = "en"

// Meta describes a pipeline. It is stored as meta.json.
type Meta struct {
	Lang        string              `json:"lang"`
	Name        string              `json:"name"`
	Version     string              `json:"version"`
	Description string              `json:"description,omitempty"`
	Pipeline    []string            `json:"pipeline"`
	Factories   map[string]string   `json:"factories"`
	Labels      map[string][]string `json:"labels,omitempty"`
}

type component struct {
	factory  string
	pipe     Pipe
	disabled bool
}

// Language is a tokenizer followed by an ordered list of named pipes.
//
// Process and Pipe may run concurrently with each other. Methods that
// change the pipeline or train it must not.
type Language struct {
	meta       Meta
	tokenizer  *tokenizer.Word
	components []*component
}

// Blank creates an empty pipeline for lang.
func Blank(lang string) (*Language, error) {
	if lang != Lang {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	return &Language{
		meta: Meta{
			Lang:    lang,
			Name:    "pipeline",
			Version: "0.0.0",
		},
		tokenizer: tokenizer.NewWord(),
	}, nil
}

// Meta returns the pipeline description with the current pipe list and labels.
func (l *Language) Meta() Meta {
	m := l.meta
	m.Pipeline = l.PipeNames()
	m.Factories = make(map[string]string, len(l.components))
	m.Labels = nil
	for _, c := range l.components {
		name := c.pipe.Name()
		m.Factories[name] = c.factory
		if t, ok := c.pipe.(Trainable); ok {
			if m.Labels == nil {
				m.Labels = make(map[string][]string)
			}
			m.Labels[name] = t.Labels()
		}
	}
	return m
}

// SetName sets the pipeline name recorded in meta.json.
func (l *Language) SetName(name string) {
	l.meta.Name = name
}

// Tokenizer returns the word tokenizer.
func (l *Language) Tokenizer() *tokenizer.Word {
	return l.tokenizer
}

// CreatePipe builds a new pipe from a registered factory without adding it.
func (l *Language) CreatePipe(factoryName string, cfg PipeConfig) (Pipe, error) {
	f, ok := factories[factoryName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFactory, factoryName)
	}
	name := cfg.Name
	if name == "" {
		name = factoryName
	}
	return f.create(name, cfg)
}

// AddPipe appends p to the pipeline.
func (l *Language) AddPipe(p Pipe) error {
	if l.HasPipe(p.Name()) {
		return fmt.Errorf("%w: %q", ErrDuplicatePipe, p.Name())
	}
	factoryName, err := factoryOf(p)
	if err != nil {
		return err
	}
	l.components = append(l.components, &component{factory: factoryName, pipe: p})
	return nil
}

// GetPipe returns the pipe called name.
func (l *Language) GetPipe(name string) (Pipe, error) {
	c := l.find(name)
	if c == nil {
		return nil, fmt.Errorf("%w: %q", ErrPipeNotFound, name)
	}
	return c.pipe, nil
}

// HasPipe reports whether a pipe called name exists.
func (l *Language) HasPipe(name string) bool {
	return l.find(name) != nil
}

// PipeNames returns the names of all pipes in order, including disabled ones.
func (l *Language) PipeNames() []string {
	names := make([]string, len(l.components))
	for i, c := range l.components {
		names[i] = c.pipe.Name()
	}
	return names
}

// RemovePipe removes and returns the pipe called name.
func (l *Language) RemovePipe(name string) (Pipe, error) {
	for i, c := range l.components {
		if c.pipe.Name() == name {
			l.components = slices.Delete(l.components, i, i+1)
			return c.pipe, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrPipeNotFound, name)
}

// DisablePipes disables the named pipes until the returned restore func is
// called. Disabled pipes neither process documents nor train.
func (l *Language) DisablePipes(names ...string) (restore func(), err error) {
	var changed []*component
	for _, name := range names {
		c := l.find(name)
		if c == nil {
			return nil, fmt.Errorf("%w: %q", ErrPipeNotFound, name)
		}
		if !c.disabled {
			changed = append(changed, c)
		}
	}
	for _, c := range changed {
		c.disabled = true
	}
	return func() {
		for _, c := range changed {
			c.disabled = false
		}
	}, nil
}

// MakeDoc tokenizes text without running any pipe.
func (l *Language) MakeDoc(text string) *doc.Doc {
	return doc.New(text, l.tokenizer.Tokenize(text))
}

// Process tokenizes text and runs every enabled pipe over it.
func (l *Language) Process(text string) (*doc.Doc, error) {
	d := l.MakeDoc(text)
	for _, c := range l.components {
		if c.disabled {
			continue
		}
		if err := c.pipe.Predict(d); err != nil {
			return nil, fmt.Errorf("pipe %q: %w", c.pipe.Name(), err)
		}
	}
	return d, nil
}

// Pipe processes texts in parallel and returns the documents in input order.
func (l *Language) Pipe(ctx context.Context, texts []string, cfg parallel.Config) ([]*doc.Doc, error) {
	docs := make([]*doc.Doc, len(texts))
	err := parallel.ForErr(len(texts), func(i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		d, err := l.Process(texts[i])
		if err != nil {
			return err
		}
		docs[i] = d
		return nil
	}, cfg)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (l *Language) find(name string) *component {
	for _, c := range l.components {
		if c.pipe.Name() == name {
			return c
		}
	}
	return nil
}

// trainable returns the enabled pipes that can be trained.
func (l *Language) trainable() []Trainable {
	var out []Trainable
	for _, c := range l.components {
		if t, ok := c.pipe.(Trainable); ok && !c.disabled {
			out = append(out, t)
		}
	}
	return out
}
