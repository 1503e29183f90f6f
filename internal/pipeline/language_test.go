package pipeline

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/nertrain/internal/doc"
	"github.com/born-ml/nertrain/internal/ner"
	"github.com/born-ml/nertrain/internal/optim"
	"github.com/born-ml/nertrain/internal/parallel"
)

var labels = []string{"EDUCATION", "STUDIEDAT"}

func newNLP(t *testing.T, factories ...string) *Language {
	t.Helper()
	nlp, err := Blank("en")
	require.NoError(t, err)
	for _, f := range factories {
		p, err := nlp.CreatePipe(f, PipeConfig{NER: ner.Config{Labels: labels}})
		require.NoError(t, err)
		require.NoError(t, nlp.AddPipe(p))
	}
	return nlp
}

func trainNLP(t *testing.T, nlp *Language, iterations int, examples []doc.Example) {
	t.Helper()
	opt, err := nlp.BeginTraining(optim.Options{Name: optim.NameAdam, LR: 0.01})
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(3))
	for range iterations {
		for _, ex := range examples {
			require.NoError(t, nlp.Update([]doc.Example{ex}, UpdateOptions{SGD: opt, Rand: rng}))
		}
	}
}

func TestBlank(t *testing.T) {
	nlp, err := Blank("en")
	require.NoError(t, err)
	assert.Empty(t, nlp.PipeNames())
	assert.Equal(t, "en", nlp.Meta().Lang)

	_, err = Blank("de")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestCreatePipe(t *testing.T) {
	nlp := newNLP(t)

	p, err := nlp.CreatePipe(FactoryNER, PipeConfig{})
	require.NoError(t, err)
	assert.Equal(t, "ner", p.Name())
	assert.IsType(t, &ner.EntityRecognizer{}, p)

	p, err = nlp.CreatePipe(FactoryNER, PipeConfig{Name: "ner2"})
	require.NoError(t, err)
	assert.Equal(t, "ner2", p.Name())

	_, err = nlp.CreatePipe("tagger", PipeConfig{})
	assert.ErrorIs(t, err, ErrUnknownFactory)

	assert.Empty(t, nlp.PipeNames(), "CreatePipe must not add the pipe")
}

func TestAddGetRemovePipe(t *testing.T) {
	nlp := newNLP(t, FactorySentencizer, FactoryNER)
	assert.Equal(t, []string{"sentencizer", "ner"}, nlp.PipeNames())
	assert.True(t, nlp.HasPipe("ner"))

	dup, err := nlp.CreatePipe(FactoryNER, PipeConfig{})
	require.NoError(t, err)
	assert.ErrorIs(t, nlp.AddPipe(dup), ErrDuplicatePipe)

	p, err := nlp.GetPipe("ner")
	require.NoError(t, err)
	assert.Equal(t, labels, p.(Trainable).Labels())

	_, err = nlp.GetPipe("tagger")
	assert.ErrorIs(t, err, ErrPipeNotFound)

	removed, err := nlp.RemovePipe("sentencizer")
	require.NoError(t, err)
	assert.Equal(t, "sentencizer", removed.Name())
	assert.Equal(t, []string{"ner"}, nlp.PipeNames())

	_, err = nlp.RemovePipe("sentencizer")
	assert.ErrorIs(t, err, ErrPipeNotFound)
}

func TestMeta(t *testing.T) {
	nlp := newNLP(t, FactorySentencizer, FactoryNER)
	nlp.SetName("resume")

	meta := nlp.Meta()
	assert.Equal(t, "resume", meta.Name)
	assert.Equal(t, []string{"sentencizer", "ner"}, meta.Pipeline)
	assert.Equal(t, map[string]string{"sentencizer": FactorySentencizer, "ner": FactoryNER}, meta.Factories)
	assert.Equal(t, map[string][]string{"ner": labels}, meta.Labels)
}

func TestDisablePipes(t *testing.T) {
	nlp := newNLP(t, FactorySentencizer, FactoryNER)
	text := "Do they bite? Ryerson University is in Toronto."

	restore, err := nlp.DisablePipes("sentencizer")
	require.NoError(t, err)
	d, err := nlp.Process(text)
	require.NoError(t, err)
	assert.Empty(t, d.Sents)
	assert.Equal(t, []string{"sentencizer", "ner"}, nlp.PipeNames())

	restore()
	d, err = nlp.Process(text)
	require.NoError(t, err)
	assert.NotEmpty(t, d.Sents)

	_, err = nlp.DisablePipes("parser")
	assert.ErrorIs(t, err, ErrPipeNotFound)
}

func TestUpdate_Losses(t *testing.T) {
	nlp := newNLP(t, FactorySentencizer, FactoryNER)
	opt, err := nlp.BeginTraining(optim.Options{})
	require.NoError(t, err)
	ex := doc.Example{Text: "BSc", Entities: []doc.Annotation{{Start: 0, End: 3, Label: "EDUCATION"}}}

	losses := map[string]float32{}
	require.NoError(t, nlp.Update([]doc.Example{ex}, UpdateOptions{SGD: opt, Losses: losses}))
	require.NoError(t, nlp.Update([]doc.Example{ex}, UpdateOptions{SGD: opt, Losses: losses}))
	assert.Len(t, losses, 1)
	assert.Greater(t, losses["ner"], float32(0))

	restore, err := nlp.DisablePipes("ner")
	require.NoError(t, err)
	defer restore()

	losses = map[string]float32{}
	require.NoError(t, nlp.Update([]doc.Example{ex}, UpdateOptions{SGD: opt, Losses: losses}))
	assert.Empty(t, losses)
}

func TestUpdate_Error(t *testing.T) {
	nlp := newNLP(t, FactoryNER)
	err := nlp.Update([]doc.Example{{Text: "Toronto", Entities: []doc.Annotation{{Start: 0, End: 7, Label: "GPE"}}}}, UpdateOptions{})
	assert.ErrorIs(t, err, ner.ErrUnknownLabel)
}

func TestBeginTrainingResetsWeights(t *testing.T) {
	nlp := newNLP(t, FactoryNER)
	ex := doc.Example{Text: "College", Entities: []doc.Annotation{{Start: 0, End: 7, Label: "STUDIEDAT"}}}
	trainNLP(t, nlp, 30, []doc.Example{ex})

	d, err := nlp.Process("College")
	require.NoError(t, err)
	require.Len(t, d.Ents, 1)

	_, err = nlp.CreateOptimizer(optim.Options{Name: optim.NameSGD})
	require.NoError(t, err)
	d, err = nlp.Process("College")
	require.NoError(t, err)
	assert.Len(t, d.Ents, 1, "CreateOptimizer must keep weights")

	_, err = nlp.BeginTraining(optim.Options{})
	require.NoError(t, err)
	p, err := nlp.GetPipe("ner")
	require.NoError(t, err)
	assert.Zero(t, p.(*ner.EntityRecognizer).Parameters()[0].Len())

	_, err = nlp.CreateOptimizer(optim.Options{Name: "rmsprop"})
	assert.Error(t, err)
}

func TestPipe(t *testing.T) {
	nlp := newNLP(t, FactoryNER)
	trainNLP(t, nlp, 30, []doc.Example{
		{Text: "University", Entities: []doc.Annotation{{Start: 0, End: 10, Label: "STUDIEDAT"}}},
		{Text: "Bachelor", Entities: []doc.Annotation{{Start: 0, End: 8, Label: "EDUCATION"}}},
	})

	texts := make([]string, 20)
	for i := range texts {
		if i%2 == 0 {
			texts[i] = "University"
		} else {
			texts[i] = "Bachelor"
		}
	}

	cfg := parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}
	docs, err := nlp.Pipe(context.Background(), texts, cfg)
	require.NoError(t, err)
	require.Len(t, docs, len(texts))
	for i, d := range docs {
		assert.Equal(t, texts[i], d.Text)
		want, err := nlp.Process(texts[i])
		require.NoError(t, err)
		assert.Equal(t, want.Ents, d.Ents)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = nlp.Pipe(ctx, texts, cfg)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluate(t *testing.T) {
	nlp := newNLP(t, FactoryNER)
	examples := []doc.Example{
		{Text: "University", Entities: []doc.Annotation{{Start: 0, End: 10, Label: "STUDIEDAT"}}},
		{Text: "Bachelor", Entities: []doc.Annotation{{Start: 0, End: 8, Label: "EDUCATION"}}},
		{Text: "Do they bite?"},
	}

	scores, err := nlp.Evaluate(context.Background(), examples, parallel.Sequential())
	require.NoError(t, err)
	assert.Equal(t, 2, scores.Ents.FN, "an untrained model finds nothing")
	assert.Zero(t, scores.Ents.F1())

	trainNLP(t, nlp, 50, examples)

	scores, err = nlp.Evaluate(context.Background(), examples, parallel.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, PRF{TP: 2}, scores.Ents)
	assert.InDelta(t, 1.0, scores.Ents.F1(), 1e-9)
	assert.Equal(t, PRF{TP: 1}, scores.PerLabel["EDUCATION"])
	assert.Equal(t, PRF{TP: 1}, scores.PerLabel["STUDIEDAT"])
}

func TestPRF(t *testing.T) {
	s := PRF{TP: 3, FP: 1, FN: 2}
	assert.InDelta(t, 0.75, s.Precision(), 1e-9)
	assert.InDelta(t, 0.6, s.Recall(), 1e-9)
	assert.InDelta(t, 2*0.75*0.6/1.35, s.F1(), 1e-9)
	assert.Zero(t, PRF{}.F1())
}
