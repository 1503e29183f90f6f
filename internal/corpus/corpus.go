// Package corpus holds the built-in training examples for the EDUCATION and
// STUDIEDAT entity labels.
package corpus

import (
	"math/rand"

	"github.com/born-ml/nertrain/internal/doc"
)

// Entity labels taught by the training data.
const (
	LabelEducation = "EDUCATION"
	LabelStudiedAt = "STUDIEDAT"
)

// TestText is the sentence used to inspect a trained model.
const TestText = "I studied Bachelor Of Computer Science at University Of Alberta"

// Example and Annotation are the raw training types.
type (
	Example    = doc.Example
	Annotation = doc.Annotation
)

var trainData = []Example{
	{Text: "University", Entities: []Annotation{{Start: 0, End: 9, Label: LabelStudiedAt}}},
	{Text: "College", Entities: []Annotation{{Start: 0, End: 7, Label: LabelStudiedAt}}},
	{Text: "University Of Alberta", Entities: []Annotation{{Start: 0, End: 21, Label: LabelStudiedAt}}},
	{Text: "Ryerson University", Entities: []Annotation{{Start: 0, End: 18, Label: LabelStudiedAt}}},
	{Text: "Senaca College is based in Toronto", Entities: []Annotation{{Start: 0, End: 14, Label: LabelStudiedAt}}},
	{Text: "I Have Masters Degree in Computer Science", Entities: []Annotation{{Start: 7, End: 21, Label: LabelEducation}}},
	{Text: "Do they bite?", Entities: []Annotation{}},
	{Text: "Bachelor Of Computer Science", Entities: []Annotation{{Start: 0, End: 27, Label: LabelEducation}}},
	{Text: "BSc", Entities: []Annotation{{Start: 0, End: 3, Label: LabelEducation}}},
	{Text: "Bachelor", Entities: []Annotation{{Start: 0, End: 8, Label: LabelEducation}}},
	{Text: "B.Sc.", Entities: []Annotation{{Start: 0, End: 5, Label: LabelEducation}}},
}

// Labels returns the entity labels used by TrainData.
func Labels() []string {
	return []string{LabelEducation, LabelStudiedAt}
}

// TrainData returns a fresh copy of the eleven training examples in their
// original order.
//
// Some offsets end one character short of the token they annotate
// ("University" is [0, 9)); they are kept as written.
func TrainData() []Example {
	out := make([]Example, len(trainData))
	for i, ex := range trainData {
		out[i] = Example{
			Text:     ex.Text,
			Entities: append([]Annotation{}, ex.Entities...),
		}
	}
	return out
}

// Shuffle permutes examples in place. A nil rng uses the math/rand global source.
func Shuffle(examples []Example, rng *rand.Rand) {
	swap := func(i, j int) { examples[i], examples[j] = examples[j], examples[i] }
	if rng == nil {
		rand.Shuffle(len(examples), swap)
		return
	}
	rng.Shuffle(len(examples), swap)
}
