// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/staranto/epicctl/internal/epic"
)

func threeRecords() []epic.Record {
	return []epic.Record{
		{Date: "2024-03-01 00:13:03", Image: "epic_1b_a", Caption: "first"},
		{Date: "2024-03-01 01:51:31", Image: "epic_1b_b", Caption: "second"},
		{Date: "2024-03-01 03:29:59", Image: "epic_1b_c", Caption: "third"},
	}
}

func TestRows_AppendTagsPosition(t *testing.T) {
	var r Rows
	assert.Equal(t, 0, r.Append("a", true).Index)
	assert.Equal(t, 1, r.Append("b", false).Index)
	assert.Equal(t, 2, r.Append("c", true).Index)
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 2, r.Selectable())
}

func TestRows_AppendWithoutClearGrows(t *testing.T) {
	var r Rows
	for i := 0; i < 2; i++ {
		for _, rec := range threeRecords() {
			r.Append(rec.Date, true)
		}
	}
	assert.Equal(t, 6, r.Len())
}

func TestRows_RenderInOrder(t *testing.T) {
	var r Rows
	recs := threeRecords()
	r.Render(recs)

	rows := r.All()
	assert.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, i, row.Index)
		assert.Equal(t, recs[i].Date, row.Text)
		assert.True(t, row.Selectable)
	}
}

func TestRows_RerenderLeavesNoResidue(t *testing.T) {
	var r Rows
	r.Render(threeRecords())
	r.Render(threeRecords()[:1])
	assert.Equal(t, 1, r.Len())

	r.Render(nil)
	assert.Equal(t, []Row{{Index: 0, Text: NoImageText}}, r.All())
}

func TestRows_RenderError(t *testing.T) {
	var r Rows
	r.Render(threeRecords())
	r.RenderError()
	assert.Equal(t, []Row{{Index: 0, Text: ErrorText}}, r.All())
	assert.Equal(t, 0, r.Selectable())
}

func TestRows_At(t *testing.T) {
	var r Rows
	r.Render(threeRecords())

	row, ok := r.At(1)
	assert.True(t, ok)
	assert.Equal(t, 1, row.Index)

	_, ok = r.At(3)
	assert.False(t, ok)
	_, ok = r.At(-1)
	assert.False(t, ok)
}

func TestRows_ClearKeepsCopies(t *testing.T) {
	var a Rows
	a.Render(threeRecords())
	b := a
	b.RenderError()

	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 1, b.Len())
}

func TestPresent(t *testing.T) {
	d, err := Present("https://epic.gsfc.nasa.gov", "aerosol", threeRecords()[1])
	assert.NoError(t, err)
	assert.Equal(t, Detail{
		Type:    "aerosol",
		Date:    "2024-03-01 01:51:31",
		Caption: "second",
		Image:   "epic_1b_b",
		URL:     "https://epic.gsfc.nasa.gov/archive/aerosol/2024/03/01/jpg/epic_1b_b.jpg",
	}, d)

	_, err = Present("https://h", "natural", epic.Record{Date: "garbage", Image: "x"})
	assert.Error(t, err)
}
