package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/born-ml/nertrain/internal/config"
	"github.com/born-ml/nertrain/internal/corpus"
	"github.com/born-ml/nertrain/internal/doc"
	"github.com/born-ml/nertrain/internal/ner"
	"github.com/born-ml/nertrain/internal/optim"
	"github.com/born-ml/nertrain/internal/pipeline"
	"github.com/born-ml/nertrain/internal/train"
)

func run(ctx context.Context, cfg config.Config, out io.Writer) error {
	nlp, err := loadOrCreate(cfg, out)
	if err != nil {
		return err
	}

	recognizer, err := entityRecognizer(nlp, cfg, out)
	if err != nil {
		return err
	}
	for _, label := range corpus.Labels() {
		if _, err := recognizer.AddLabel(label); err != nil {
			return err
		}
	}

	// BeginTraining zeroes the weights, so a loaded model only gets a
	// fresh optimizer.
	var sgd optim.Optimizer
	if cfg.Model == "" {
		sgd, err = nlp.BeginTraining(cfg.Optimizer)
	} else {
		sgd, err = nlp.CreateOptimizer(cfg.Optimizer)
	}
	if err != nil {
		return err
	}

	examples := corpus.TrainData()
	if cfg.TrainData != "" {
		extra, err := config.LoadExamples(cfg.TrainData)
		if err != nil {
			return err
		}
		examples = append(examples, extra...)
	}

	err = train.Run(ctx, nlp, examples, sgd, train.Config{
		Iterations: cfg.Iterations,
		Drop:       cfg.Dropout,
		Seed:       cfg.Seed,
		Pipe:       recognizer.Name(),
	}, func(_ int, losses train.Losses) {
		fmt.Fprintln(out, formatLosses(losses))
	})
	if err != nil {
		return err
	}

	d, err := nlp.Process(corpus.TestText)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Entities in '%s'\n", corpus.TestText)
	printEnts(out, d)

	if cfg.OutputDir == "" {
		return nil
	}

	nlp.SetName(cfg.NewModelName)
	if err := nlp.ToDisk(cfg.OutputDir); err != nil {
		return err
	}
	fmt.Fprintln(out, "Saved model to", cfg.OutputDir)

	fmt.Fprintln(out, "Loading from", cfg.OutputDir)
	reloaded, err := pipeline.Load(cfg.OutputDir)
	if err != nil {
		return err
	}
	d2, err := reloaded.Process(corpus.TestText)
	if err != nil {
		return err
	}
	printEnts(out, d2)

	return nil
}

func loadOrCreate(cfg config.Config, out io.Writer) (*pipeline.Language, error) {
	if cfg.Model != "" {
		nlp, err := pipeline.Load(cfg.Model)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "Loaded model '%s'\n", cfg.Model)
		return nlp, nil
	}

	nlp, err := pipeline.Blank(pipeline.Lang)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Created blank '%s' model\n", pipeline.Lang)
	return nlp, nil
}

// entityRecognizer returns the "ner" pipe, adding a new one if needed.
//
// An existing pipe keeps the settings it was trained with; a notice is
// printed when the config asks for different ones.
func entityRecognizer(nlp *pipeline.Language, cfg config.Config, out io.Writer) (*ner.EntityRecognizer, error) {
	existing := nlp.HasPipe(pipeline.FactoryNER)
	if !existing {
		p, err := nlp.CreatePipe(pipeline.FactoryNER, pipeline.PipeConfig{NER: cfg.RecognizerConfig()})
		if err != nil {
			return nil, err
		}
		if err := nlp.AddPipe(p); err != nil {
			return nil, err
		}
	}

	p, err := nlp.GetPipe(pipeline.FactoryNER)
	if err != nil {
		return nil, err
	}
	recognizer, ok := p.(*ner.EntityRecognizer)
	if !ok {
		return nil, fmt.Errorf("pipe %q is %T, not an entity recognizer", pipeline.FactoryNER, p)
	}

	if existing {
		have := recognizer.Config()
		wantMode, err := ner.ParseAlignMode(cfg.NER.AlignMode)
		if err != nil {
			return nil, err
		}
		if have.AlignMode != wantMode || have.SubwordEncoding != cfg.NER.SubwordEncoding {
			fmt.Fprintf(out, "Keeping ner settings of '%s' (align_mode=%s, subword_encoding=%q); config values ignored\n",
				cfg.Model, have.AlignMode, have.SubwordEncoding)
		}
	}
	return recognizer, nil
}

func printEnts(out io.Writer, d *doc.Doc) {
	for _, ent := range d.Ents {
		fmt.Fprintln(out, ent.Label, ent.Text)
	}
}

// formatLosses renders losses as {'ner': 12.3456}, sorted by pipe name.
func formatLosses(losses train.Losses) string {
	names := make([]string, 0, len(losses))
	for name := range losses {
		names = append(names, name)
	}
	slices.Sort(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("'%s': %.4f", name, losses[name])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
