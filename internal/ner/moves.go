// Package ner implements a greedy BILUO entity recognizer over sparse
// hashed features.
//
// Each token gets one class: O (outside), or B-, I-, L-, U- (begin, inside,
// last, unit) of a label. Decoding walks the tokens left to right and picks
// the best class allowed after the previous one, so the output is always a
// well-formed sequence of entities.
package ner

import (
	"fmt"
	"strings"
)

// Outside and Missing are the tags for non-entity tokens and tokens without
// gold information.
const (
	Outside = "O"
	Missing = "-"
)

// BILUO actions, in class order within a label.
const (
	ActionBegin = iota
	ActionIn
	ActionLast
	ActionUnit
	numActions
)

var actionPrefixes = [numActions]string{"B-", "I-", "L-", "U-"}

// History markers used in place of a class index.
const (
	NoClass      = -1 // Before the first token
	UnknownClass = -2 // Previous token had no gold information
)

// Moves is the BILUO class inventory for a set of labels.
//
// Class 0 is O; label i owns classes 1+4i (B) through 4+4i (U).
type Moves struct {
	labels []string
	index  map[string]int
}

// NewMoves creates a class inventory for the given labels.
func NewMoves(labels ...string) (*Moves, error) {
	m := &Moves{index: make(map[string]int)}
	for _, label := range labels {
		if _, err := m.AddLabel(label); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// AddLabel registers label and reports whether it was new.
func (m *Moves) AddLabel(label string) (bool, error) {
	if err := validateLabel(label); err != nil {
		return false, err
	}
	if _, ok := m.index[label]; ok {
		return false, nil
	}
	m.index[label] = len(m.labels)
	m.labels = append(m.labels, label)
	return true, nil
}

// HasLabel reports whether label is registered.
func (m *Moves) HasLabel(label string) bool {
	_, ok := m.index[label]
	return ok
}

// Labels returns the registered labels in registration order.
func (m *Moves) Labels() []string {
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

// NumClasses returns the number of classes.
func (m *Moves) NumClasses() int {
	return 1 + numActions*len(m.labels)
}

// Class returns the class index for an action on a registered label.
func (m *Moves) Class(action int, label string) int {
	return 1 + numActions*m.index[label] + action
}

// Decode splits a class into its action and label. Class 0 returns (-1, "").
func (m *Moves) Decode(class int) (action int, label string) {
	if class <= 0 {
		return -1, ""
	}
	return (class - 1) % numActions, m.labels[(class-1)/numActions]
}

// ClassName returns the tag of a class (e.g., "B-EDUCATION"), or a
// history marker name.
func (m *Moves) ClassName(class int) string {
	switch {
	case class == NoClass:
		return "<s>"
	case class == UnknownClass:
		return Missing
	case class == 0:
		return Outside
	}
	action, label := m.Decode(class)
	return actionPrefixes[action] + label
}

// ClassIndex parses a tag into its class index.
func (m *Moves) ClassIndex(tag string) (int, error) {
	if tag == Outside {
		return 0, nil
	}
	for action, prefix := range actionPrefixes {
		if label, ok := strings.CutPrefix(tag, prefix); ok {
			if !m.HasLabel(label) {
				return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
			}
			return m.Class(action, label), nil
		}
	}
	return 0, fmt.Errorf("malformed BILUO tag %q", tag)
}

// Valid fills valid with the classes allowed after prev.
//
// After B-X or I-X only I-X and L-X are allowed; otherwise O, B-* and U-*.
// On the last token B-* and I-* are never allowed. After UnknownClass every
// class is allowed except B-* and I-* on the last token.
func (m *Moves) Valid(prev int, last bool, valid []bool) {
	for c := range valid {
		valid[c] = false
	}

	if prev > 0 {
		if action, label := m.Decode(prev); action == ActionBegin || action == ActionIn {
			if !last {
				valid[m.Class(ActionIn, label)] = true
			}
			valid[m.Class(ActionLast, label)] = true
			return
		}
	}

	valid[0] = true
	for _, label := range m.labels {
		if prev == UnknownClass {
			valid[m.Class(ActionIn, label)] = !last
			valid[m.Class(ActionLast, label)] = true
		}
		valid[m.Class(ActionBegin, label)] = !last
		valid[m.Class(ActionUnit, label)] = true
	}
}

func validateLabel(label string) error {
	if label == "" || label == Outside || label == Missing {
		return fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	if strings.ContainsFunc(label, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' }) {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidLabel, label)
	}
	return nil
}
