// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package pipeline_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/nertrain/optim"
	"github.com/born-ml/nertrain/pipeline"
)

// TestPublicAPI runs the workflow from the package documentation.
func TestPublicAPI(t *testing.T) {
	examples := []pipeline.Example{
		{Text: "Bachelor Of Science", Entities: []pipeline.Annotation{{Start: 0, End: 19, Label: "EDUCATION"}}},
		{Text: "Do they bite?"},
	}

	nlp, err := pipeline.Blank("en")
	require.NoError(t, err)
	p, err := nlp.CreatePipe(pipeline.FactoryNER, pipeline.PipeConfig{
		NER: pipeline.NERConfig{Labels: []string{"EDUCATION"}, AlignMode: pipeline.AlignStrict},
	})
	require.NoError(t, err)
	require.NoError(t, nlp.AddPipe(p))

	sgd, err := nlp.BeginTraining(optim.Options{Name: optim.NameAdam, LR: 0.01})
	require.NoError(t, err)
	for range 30 {
		losses := map[string]float32{}
		for _, ex := range examples {
			require.NoError(t, nlp.Update([]pipeline.Example{ex}, pipeline.UpdateOptions{SGD: sgd, Losses: losses}))
		}
		require.Contains(t, losses, "ner")
	}

	scores, err := nlp.Evaluate(context.Background(), examples, pipeline.DefaultParallelConfig())
	require.NoError(t, err)
	assert.Equal(t, pipeline.PRF{TP: 1}, scores.Ents)

	dir := filepath.Join(t.TempDir(), "education")
	require.NoError(t, nlp.ToDisk(dir))
	nlp2, err := pipeline.Load(dir)
	require.NoError(t, err)

	d, err := nlp2.Process("Bachelor Of Science")
	require.NoError(t, err)
	require.Len(t, d.Ents, 1)
	assert.Equal(t, "EDUCATION", d.Ents[0].Label)
	assert.Equal(t, "Bachelor Of Science", d.Ents[0].Text)

	_, err = pipeline.Load(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, pipeline.ErrModelNotFound)
}
