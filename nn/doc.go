// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the sparse building blocks of the entity recognizer.
//
// # Overview
//
// Models in nertrain are linear over hashed sparse features. A Parameter
// is a matrix with one row per feature hash, created on first write, and
// one column per output class.
//
// # Basic Usage
//
//	weights := nn.NewParameter("ner.W", numClasses)
//
//	// Score a token from its active features.
//	scores := make([]float32, numClasses)
//	for _, f := range features {
//	    for c, w := range weights.Row(f) {
//	        scores[c] += w
//	    }
//	}
//
//	// Loss and gradient against the gold class.
//	probs := nn.Softmax(scores, valid)
//	loss, grad := nn.CrossEntropy(probs, gold)
//
//	// Accumulate sparse gradients for an optimizer.
//	grads := nn.Grads{}
//	for _, f := range features {
//	    row := grads.Row(f, numClasses)
//	    for c, g := range grad {
//	        row[c] += g
//	    }
//	}
package nn
