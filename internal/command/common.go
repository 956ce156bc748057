// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/epicctl/internal/attrs"
	"github.com/staranto/epicctl/internal/cache"
	"github.com/staranto/epicctl/internal/epic"
	"github.com/staranto/epicctl/internal/meta"
	"github.com/staranto/epicctl/internal/output"
	"github.com/staranto/epicctl/internal/version"
	"github.com/staranto/epicctl/internal/viewer"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr epicctl-<subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "epicctl-"+subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// DumpSchemaIfRequested prints the attribute names of t when --schema is set,
// and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(writer(cmd), t)
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList, err error) {
	for _, d := range defaults {
		if err = al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err = al.Set(extras); err != nil {
			return nil, fmt.Errorf("invalid --attrs: %w", err)
		}
	}
	al.SetGlobalTransformSpec()
	return al, nil
}

// Emit marshals results as JSON and passes them to the common output
// routine. Color is dropped when the writer is not a terminal.
func Emit(cmd *cli.Command, results any, al attrs.AttrList) error {
	b, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	w := writer(cmd)
	opts := output.OptionsFromCommand(cmd)
	if opts.Color && !isTerminal(w) {
		log.Debug("not a terminal, color disabled")
		opts.Color = false
	}

	return output.SliceDiceSpit(*bytes.NewBuffer(b), al, opts, w)
}

// NewClient builds the upstream client from --host and --timeout.
func NewClient(cmd *cli.Command) *epic.Client {
	return epic.NewClient(
		epic.WithBaseURL(cmd.String("host")),
		epic.WithTimeout(cmd.Duration("timeout")),
		epic.WithUserAgent(version.UserAgent()),
	)
}

// NewController wires a controller over client with the caching policy from
// --cache.
func NewController(cmd *cli.Command, client *epic.Client) *viewer.Controller {
	c := cache.New(epic.Types, cache.WithEnabled(cmd.Bool("cache")))
	return viewer.NewController(client, c, client.BaseURL())
}

// CommandBuilder is a helper that constructs a cli.Command for subcommands
// using a consistent pattern. The builder binds flags to the config file,
// adds the tldr and client flags and, for commands that list results, the schema and output
// flags.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
	// Output adds the shared presentation flags.
	Output bool
	// Offline commands make no request and skip the client flags.
	Offline bool
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	path := cb.Meta.Config.Source

	flags := append([]cli.Flag{}, cb.Flags...)
	flags = append(flags, newTLDRFlag())
	if !cb.Offline {
		flags = append(flags, NewClientFlags(cb.Name, path)...)
	}
	if cb.Output {
		flags = append(flags, newSchemaFlag())
		flags = append(flags, NewGlobalFlags(cb.Name, path)...)
	}

	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Flags:     flags,
		Action:    cb.Action,
	}
}

func writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.ErrWriter != nil {
		return root.ErrWriter
	}
	return os.Stderr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec
}
