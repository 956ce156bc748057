// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/epicctl/internal/epic"
	"github.com/staranto/epicctl/internal/meta"
	"github.com/staranto/epicctl/internal/viewer"
)

// captureRow is one rendered row as emitted by list.
type captureRow struct {
	Index      int    `json:"index"`
	Type       string `json:"type"`
	Date       string `json:"date"`
	Identifier string `json:"identifier"`
	Caption    string `json:"caption"`
	Image      string `json:"image"`
	URL        string `json:"url"`
}

// loadDay runs the submit path for typ and date the way the browser does. An
// empty date resolves to the type's latest date first.
func loadDay(ctx context.Context, ctl *viewer.Controller, typ, date string) (viewer.State, error) {
	st := viewer.NewState(epic.Types, typ)

	if date == "" {
		res := ctl.TypeChanged(ctx, typ)
		st = st.Apply(res)
		if res.Err != nil {
			return st, res.Err
		}
		date = st.DateMax
	}
	st.Live.Date = date

	res := ctl.Submit(ctx, viewer.Selection{Type: typ, Date: date})
	st = st.Apply(res)
	if res.Err != nil {
		return st, res.Err
	}

	log.Debugf("%s/%s: %d rows, cached=%t", typ, date, st.Rows.Len(), res.Cached)
	return st, nil
}

func captureRows(st viewer.State, base string) []captureRow {
	rows := make([]captureRow, 0, st.Rows.Selectable())
	for _, r := range st.Rows.All() {
		if !r.Selectable || r.Index >= len(st.Images) {
			continue
		}
		rec := st.Images[r.Index]
		u, err := epic.ArchiveURL(base, st.Selection.Type, rec)
		if err != nil {
			log.WithError(err).Warnf("row %d has no archive url", r.Index)
		}
		rows = append(rows, captureRow{
			Index:      r.Index,
			Type:       st.Selection.Type,
			Date:       rec.Date,
			Identifier: rec.Identifier,
			Caption:    rec.Caption,
			Image:      rec.Image,
			URL:        u,
		})
	}
	return rows
}

// typeAndDateArgs validates the leading <type> [date] args.
func typeAndDateArgs(cmd *cli.Command) (typ, date string, err error) {
	typ = cmd.Args().Get(0)
	if typ == "" {
		return "", "", fmt.Errorf("missing type, one of %v", epic.Types)
	}
	if err := TypeValidator(typ); err != nil {
		return "", "", err
	}
	date = cmd.Args().Get(1)
	if date != "" {
		if err := DateValidator(date); err != nil {
			return "", "", err
		}
	}
	return typ, date, nil
}

// ListCommandAction lists the captures for a type and date.
func ListCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "list") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(captureRow{})) {
		return nil
	}

	typ, date, err := typeAndDateArgs(cmd)
	if err != nil {
		return err
	}

	al, err := BuildAttrs(cmd, "index", "date", "caption")
	if err != nil {
		return err
	}

	client := NewClient(cmd)
	st, err := loadDay(ctx, NewController(cmd, client), typ, date)
	if err != nil {
		return fmt.Errorf("%s: %w", viewer.ErrorText, err)
	}

	rows := captureRows(st, client.BaseURL())
	if len(rows) == 0 && cmd.String("output") == "text" {
		fmt.Fprintln(writer(cmd), viewer.NoImageText)
		return nil
	}

	return Emit(cmd, rows, al)
}

// ListCommandBuilder constructs the cli.Command definition for "list".
func ListCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "list",
		Usage:     "list the captures for a type and date",
		UsageText: `epicctl list [options] <type> [date]`,
		Action:    ListCommandAction,
		Meta:      meta,
		Output:    true,
	}).Build()
}
