// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"fmt"

	"github.com/staranto/epicctl/internal/epic"
)

// Detail is the currently displayed capture.
type Detail struct {
	Type    string `json:"type"`
	Date    string `json:"date"`
	Caption string `json:"caption"`
	Image   string `json:"image"`
	URL     string `json:"url"`
}

// Present builds the detail view for rec. The archive URL is derived from
// typ and the YYYY-MM-DD prefix of the record date.
func Present(archiveBase, typ string, rec epic.Record) (Detail, error) {
	u, err := epic.ArchiveURL(archiveBase, typ, rec)
	if err != nil {
		return Detail{}, fmt.Errorf("failed to build archive url: %w", err)
	}
	return Detail{
		Type:    typ,
		Date:    rec.Date,
		Caption: rec.Caption,
		Image:   rec.Image,
		URL:     u,
	}, nil
}
