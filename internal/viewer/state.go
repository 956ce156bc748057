// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"context"
	"errors"
	"time"

	"github.com/staranto/epicctl/internal/epic"
)

// Selection is a (type, date) pair.
type Selection struct {
	Type string
	Date string
}

// Kind says which fetch produced a Result.
type Kind int

const (
	KindImages Kind = iota + 1
	KindDateBound
)

func (k Kind) String() string {
	switch k {
	case KindImages:
		return "images"
	case KindDateBound:
		return "date-bound"
	default:
		return "unknown"
	}
}

// Result is the outcome of one controller operation. It carries no
// reference to the State it will be applied to.
type Result struct {
	Kind      Kind
	Selection Selection
	Images    []epic.Record
	DateMax   string
	// Cached is true when the result was served without a network call.
	Cached bool
	Err    error
}

// Cancelled reports whether the operation was abandoned because a newer one
// superseded it.
func (r Result) Cancelled() bool {
	return errors.Is(r.Err, context.Canceled)
}

// State is everything the front end shows. It is a value: Apply returns a
// new State and never modifies the receiver's rows.
type State struct {
	Types []string
	// Live mirrors the form controls and follows every edit.
	Live Selection
	// Selection is the snapshot taken when the rows were last rendered.
	// Row selections resolve against it, not against Live.
	Selection Selection
	DateMax   string
	// Images backs Rows; Images[i] is the record behind the row at index i.
	Images []epic.Record
	Rows   Rows
	// Detail is nil until a capture has been presented.
	Detail *Detail
}

// NewState returns the initial state with the type options populated and typ
// as the live type. An empty typ selects the first type.
func NewState(types []string, typ string) State {
	if typ == "" && len(types) > 0 {
		typ = types[0]
	}
	ts := make([]string, len(types))
	copy(ts, types)
	return State{Types: ts, Live: Selection{Type: typ}}
}

// ImageVisible is false until the first capture has been presented.
func (s State) ImageVisible() bool {
	return s.Detail != nil
}

// ClearRows empties the list and the records behind it.
func (s State) ClearRows() State {
	s.Images = nil
	s.Rows.Clear()
	return s
}

// ClampDate returns max when date is a later day than max. A date or max
// that is not a YYYY-MM-DD day leaves date unchanged, so malformed input
// still reaches the fetch and fails there.
func ClampDate(date, max string) string {
	d, err := time.Parse(epic.DateLayout, date)
	if err != nil {
		return date
	}
	m, err := time.Parse(epic.DateLayout, max)
	if err != nil {
		return date
	}
	if d.After(m) {
		return max
	}
	return date
}

// Apply folds r into s. Failures of either kind replace the rows with the
// single error row. Cancelled results leave s untouched.
func (s State) Apply(r Result) State {
	if r.Cancelled() {
		return s
	}

	switch r.Kind {
	case KindDateBound:
		if r.Err != nil {
			s.Rows.RenderError()
			return s
		}
		if r.Selection.Type != s.Live.Type {
			// The user has since picked another type.
			return s
		}
		s.DateMax = r.DateMax
		s.Live.Date = ClampDate(s.Live.Date, s.DateMax)
	case KindImages:
		if r.Err != nil {
			s.Images = nil
			s.Rows.RenderError()
			return s
		}
		s.Selection = r.Selection
		s.Images = r.Images
		s.Rows.Render(r.Images)
	}

	return s
}
