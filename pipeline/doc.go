// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package pipeline provides text processing pipelines with a trainable
// named entity recognizer.
//
// # Overview
//
// A Language tokenizes text and runs an ordered list of named pipes over
// the resulting Doc:
//   - "ner": greedy BILUO entity recognizer over hashed sparse features
//   - "sentencizer": Punkt sentence boundaries (English)
//
// # Training a New Label
//
//	nlp, _ := pipeline.Blank("en")
//	p, _ := nlp.CreatePipe(pipeline.FactoryNER, pipeline.PipeConfig{
//	    NER: pipeline.NERConfig{Labels: []string{"EDUCATION"}},
//	})
//	_ = nlp.AddPipe(p)
//
//	sgd, _ := nlp.BeginTraining(optim.Options{Name: optim.NameAdam, LR: 0.01})
//	for range 20 {
//	    losses := map[string]float32{}
//	    for _, ex := range examples {
//	        _ = nlp.Update([]pipeline.Example{ex}, pipeline.UpdateOptions{
//	            Drop: 0.2, SGD: sgd, Losses: losses,
//	        })
//	    }
//	}
//
// # Saving and Loading
//
//	_ = nlp.ToDisk("models/education")
//	nlp2, _ := pipeline.Load("models/education")
//	d, _ := nlp2.Process("I have a Bachelor Of Science")
//	for _, ent := range d.Ents {
//	    fmt.Println(ent.Label, ent.Text)
//	}
package pipeline
