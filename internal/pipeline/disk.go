package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/born-ml/nertrain/internal/tokenizer"
)

// File names inside a pipeline directory.
const (
	MetaFile      = "meta.json"
	TokenizerFile = "tokenizer.json"
)

// ToDisk saves the pipeline into dir, creating it if it does not exist.
//
// Layout:
//
//	dir/meta.json
//	dir/tokenizer.json
//	dir/<pipe>/cfg.json     (for pipes with weights)
//	dir/<pipe>/model.nerw
func (l *Language) ToDisk(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	if err := writeJSON(filepath.Join(dir, MetaFile), l.Meta()); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, TokenizerFile), l.tokenizer); err != nil {
		return err
	}

	for _, c := range l.components {
		s, ok := c.pipe.(Serializable)
		if !ok {
			continue
		}
		if err := s.ToDisk(filepath.Join(dir, c.pipe.Name())); err != nil {
			return fmt.Errorf("save pipe %q: %w", c.pipe.Name(), err)
		}
	}
	return nil
}

// Load reads a pipeline saved with ToDisk.
func Load(dir string) (*Language, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, dir)
	}
	if err != nil {
		return nil, err
	}

	var meta Meta
	if err := readJSON(filepath.Join(dir, MetaFile), &meta); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s has no %s", ErrModelNotFound, dir, MetaFile)
		}
		return nil, err
	}

	l, err := Blank(meta.Lang)
	if err != nil {
		return nil, err
	}
	l.meta.Name = meta.Name
	l.meta.Version = meta.Version
	l.meta.Description = meta.Description

	tok := tokenizer.NewWord()
	if err := readJSON(filepath.Join(dir, TokenizerFile), tok); err != nil {
		return nil, err
	}
	l.tokenizer = tok

	for _, name := range meta.Pipeline {
		factoryName := meta.Factories[name]
		f, ok := factories[factoryName]
		if !ok {
			return nil, fmt.Errorf("pipe %q: %w: %q", name, ErrUnknownFactory, factoryName)
		}
		p, err := f.load(name, filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("load pipe %q: %w", name, err)
		}
		if err := l.AddPipe(p); err != nil {
			return nil, err
		}
	}

	return l, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	//nolint:gosec // G306: model files are not secret
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, v any) error {
	//nolint:gosec // G304: path is inside the model directory
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
