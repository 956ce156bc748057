// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/apex/log"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/epicctl/internal/config"
	mylog "github.com/staranto/epicctl/internal/log"
	"github.com/staranto/epicctl/internal/meta"
	"github.com/staranto/epicctl/internal/tui"
)

var ErrNotTerminal = errors.New("browse needs an interactive terminal")

// BrowseCommandAction runs the interactive browser.
func BrowseCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "browse") {
		return nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) { //nolint:gosec
		return ErrNotTerminal
	}

	// Log lines would tear the screen.
	if os.Getenv("EPICCTL_LOG_FILE") == "" {
		mylog.Redirect(io.Discard)
	}

	client := NewClient(cmd)
	return tui.Run(ctx, NewController(cmd, client), cmd.String("type"), programOptions()...)
}

// programOptions reads the browser's screen settings from the config file.
// altscreen defaults to true.
func programOptions() []tea.ProgramOption {
	var opts []tea.ProgramOption
	alt, err := config.GetBool("altscreen", true)
	if err != nil {
		log.WithError(err).Warn("ignoring altscreen setting")
		alt = true
	}
	if alt {
		opts = append(opts, tea.WithAltScreen())
	}
	return opts
}

// BrowseCommandBuilder constructs the cli.Command definition for "browse".
func BrowseCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "browse",
		Usage:     "browse captures interactively",
		UsageText: `epicctl browse [options]`,
		Flags: []cli.Flag{
			NewTypeFlag("browse", meta.Config.Source),
		},
		Action: BrowseCommandAction,
		Meta:   meta,
	}).Build()
}
