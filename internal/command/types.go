// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/staranto/epicctl/internal/epic"
	"github.com/staranto/epicctl/internal/meta"
)

type typeRow struct {
	Type string `json:"type"`
}

// TypesCommandAction lists the imagery types.
func TypesCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "types") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(typeRow{})) {
		return nil
	}

	al, err := BuildAttrs(cmd, "type")
	if err != nil {
		return err
	}

	rows := make([]typeRow, 0, len(epic.Types))
	for _, t := range epic.Types {
		rows = append(rows, typeRow{Type: t})
	}
	return Emit(cmd, rows, al)
}

// TypesCommandBuilder constructs the cli.Command definition for "types".
func TypesCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "types",
		Usage:     "list imagery types",
		UsageText: `epicctl types [options]`,
		Action:    TypesCommandAction,
		Meta:      meta,
		Output:    true,
		Offline:   true,
	}).Build()
}
