package ner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/born-ml/nertrain/internal/serialization"
)

// File names inside a component directory.
const (
	ConfigFile  = "cfg.json"
	WeightsFile = "model.nerw"
)

// ModelType is the model type recorded in the weights header.
const ModelType = "EntityRecognizer"

const (
	tensorKeys   = "W.keys"
	tensorValues = "W.values"
)

// ToDisk writes the configuration and weights into dir, creating it if needed.
func (r *EntityRecognizer) ToDisk(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	cfg, err := json.MarshalIndent(r.Config(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), cfg, 0o644); err != nil { //nolint:gosec // G306: model files are not secret
		return fmt.Errorf("write config: %w", err)
	}

	keys, values := r.weights.StateDict()
	width := r.weights.Width()
	tensors := []serialization.Tensor{
		serialization.Uint64Tensor(tensorKeys, []int{len(keys)}, keys),
		serialization.Float32Tensor(tensorValues, []int{len(keys), width}, values),
	}
	metadata := map[string]string{
		"name":    r.name,
		"classes": strconv.Itoa(width),
	}

	w, err := serialization.NewWriter(filepath.Join(dir, WeightsFile))
	if err != nil {
		return err
	}
	if err := w.WriteTensors(tensors, ModelType, metadata); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// FromDisk creates an EntityRecognizer from a directory written by ToDisk.
func FromDisk(name, dir string) (*EntityRecognizer, error) {
	data, err := os.ReadFile(filepath.Join(dir, ConfigFile)) //nolint:gosec // G304: path is the model directory
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ConfigFile, err)
	}

	r, err := New(name, cfg)
	if err != nil {
		return nil, err
	}

	reader, err := serialization.NewReader(filepath.Join(dir, WeightsFile))
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	if got := reader.Header().ModelType; got != ModelType {
		return nil, fmt.Errorf("%s: model type %q, want %q", WeightsFile, got, ModelType)
	}

	keysTensor, err := reader.ReadTensor(tensorKeys)
	if err != nil {
		return nil, err
	}
	valuesTensor, err := reader.ReadTensor(tensorValues)
	if err != nil {
		return nil, err
	}
	keys, err := keysTensor.Uint64()
	if err != nil {
		return nil, err
	}
	values, err := valuesTensor.Float32()
	if err != nil {
		return nil, err
	}

	if shape := valuesTensor.Shape; len(shape) != 2 || shape[1] != r.moves.NumClasses() {
		return nil, fmt.Errorf("%s: weights shape %v does not match %d classes",
			WeightsFile, shape, r.moves.NumClasses())
	}
	if err := r.weights.LoadStateDict(keys, values); err != nil {
		return nil, err
	}

	return r, nil
}
