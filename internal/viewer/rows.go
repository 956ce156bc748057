// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package viewer

import "github.com/staranto/epicctl/internal/epic"

const (
	// NoImageText is the single informational row shown for an empty day.
	NoImageText = "No image was found!"
	// ErrorText is the single informational row shown after any failure.
	ErrorText = "Error occured while fetching!"
)

// Row is one entry in the capture list. Index is the row's position at the
// time it was appended and maps a selection back to the record behind it.
type Row struct {
	Index      int
	Text       string
	Selectable bool
}

// Rows is the ordered, append-only capture list. Re-populating it without a
// Clear first grows it, Render and RenderError both clear.
type Rows struct {
	items []Row
}

// Append adds a row at the end, tagged with its position.
func (r *Rows) Append(text string, selectable bool) Row {
	row := Row{Index: len(r.items), Text: text, Selectable: selectable}
	r.items = append(r.items, row)
	return row
}

// Clear removes every row. It drops the backing array so states that were
// copied before the Clear keep their rows.
func (r *Rows) Clear() {
	r.items = nil
}

func (r Rows) Len() int {
	return len(r.items)
}

// At returns the row at index i.
func (r Rows) At(i int) (Row, bool) {
	if i < 0 || i >= len(r.items) {
		return Row{}, false
	}
	return r.items[i], true
}

// All returns a copy of the rows in order.
func (r Rows) All() []Row {
	out := make([]Row, len(r.items))
	copy(out, r.items)
	return out
}

// Selectable counts the rows that stand for a record.
func (r Rows) Selectable() int {
	n := 0
	for _, row := range r.items {
		if row.Selectable {
			n++
		}
	}
	return n
}

// Render replaces the rows with one selectable row per record, labelled by
// the record's date, or with the NoImageText row when recs is empty.
func (r *Rows) Render(recs []epic.Record) {
	r.Clear()
	for _, rec := range recs {
		r.Append(rec.Date, true)
	}
	if len(recs) == 0 {
		r.Append(NoImageText, false)
	}
}

// RenderError replaces the rows with the single ErrorText row.
func (r *Rows) RenderError() {
	r.Clear()
	r.Append(ErrorText, false)
}
