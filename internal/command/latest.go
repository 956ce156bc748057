// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/staranto/epicctl/internal/epic"
	"github.com/staranto/epicctl/internal/meta"
)

type latestRow struct {
	Type string `json:"type"`
	Date string `json:"date"`
	Age  string `json:"age,omitempty"`
}

// LatestCommandAction prints the most recent capture date for each requested
// type, all types when none are named. Types are queried concurrently.
func LatestCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "latest") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(latestRow{})) {
		return nil
	}

	types := cmd.Args().Slice()
	if len(types) == 0 {
		types = epic.Types
	}
	for _, t := range types {
		if err := TypeValidator(t); err != nil {
			return err
		}
	}

	defaults := []string{"type", "date"}
	if cmd.Bool("relative") {
		defaults = append(defaults, "age")
	}
	al, err := BuildAttrs(cmd, defaults...)
	if err != nil {
		return err
	}

	client := NewClient(cmd)
	rows := make([]latestRow, len(types))

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range types {
		g.Go(func() error {
			d, err := client.LatestDate(gctx, t)
			if err != nil {
				return fmt.Errorf("failed to fetch latest date for %s: %w", t, err)
			}
			rows[i] = latestRow{Type: t, Date: d}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("latest failed")
		return err
	}

	if cmd.Bool("relative") {
		now := time.Now()
		for i := range rows {
			if t, err := time.Parse(epic.DateLayout, rows[i].Date); err == nil {
				rows[i].Age = humanize.RelTime(t, now, "ago", "from now")
			}
		}
	}

	return Emit(cmd, rows, al)
}

// LatestCommandBuilder constructs the cli.Command definition for "latest".
func LatestCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "latest",
		Usage:     "most recent capture date per type",
		UsageText: `epicctl latest [type...] [options]`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "relative",
				Aliases: []string{"r"},
				Usage:   "add how long ago the date was",
				Sources: SourceChain("latest", "relative", meta.Config.Source),
			},
		},
		Action: LatestCommandAction,
		Meta:   meta,
		Output: true,
	}).Build()
}
