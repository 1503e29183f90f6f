// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package train_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/nertrain/optim"
	"github.com/born-ml/nertrain/pipeline"
	"github.com/born-ml/nertrain/train"
)

func TestRun(t *testing.T) {
	nlp, err := pipeline.Blank("en")
	require.NoError(t, err)
	p, err := nlp.CreatePipe(pipeline.FactoryNER, pipeline.PipeConfig{
		NER: pipeline.NERConfig{Labels: []string{"EDUCATION"}},
	})
	require.NoError(t, err)
	require.NoError(t, nlp.AddPipe(p))

	sgd, err := nlp.BeginTraining(optim.Options{Name: optim.NameAdam, LR: 0.01})
	require.NoError(t, err)

	examples := []pipeline.Example{
		{Text: "BSc", Entities: []pipeline.Annotation{{Start: 0, End: 3, Label: "EDUCATION"}}},
		{Text: "Do they bite?"},
	}
	var iterations []int
	err = train.Run(context.Background(), nlp, examples, sgd, train.Config{Iterations: 30, Seed: 1},
		func(itn int, losses train.Losses) {
			iterations = append(iterations, itn)
			assert.Contains(t, losses, "ner")
		})
	require.NoError(t, err)
	assert.Len(t, iterations, 30)

	d, err := nlp.Process("BSc")
	require.NoError(t, err)
	require.Len(t, d.Ents, 1)
	assert.Equal(t, "EDUCATION", d.Ents[0].Label)
}
