// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/epicctl/internal/epic"
)

// Flags carry parse state, so every command gets its own instances.

func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the schema",
		HideDefault: true,
	}
}

func newTLDRFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

// SourceChain resolves a flag from the env vars, then the ns.key entry of the
// config file at path, then the bare key.
func SourceChain(ns, key, path string, envs ...string) cli.ValueSourceChain {
	srcs := make([]cli.ValueSource, 0, len(envs)+2) //nolint:mnd
	for _, e := range envs {
		srcs = append(srcs, cli.EnvVar(e))
	}
	if path != "" {
		if ns != "" {
			srcs = append(srcs, yaml.YAML(ns+"."+key, altsrc.StringSourcer(path)))
		}
		srcs = append(srcs, yaml.YAML(key, altsrc.StringSourcer(path)))
	}
	return cli.NewValueSourceChain(srcs...)
}

// NewGlobalFlags returns the presentation flags shared by every listing
// command, namespaced to ns in the config file at path.
func NewGlobalFlags(ns, path string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: SourceChain(ns, "color", path),
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: SourceChain(ns, "output", path, "EPICCTL_OUTPUT"),
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: SourceChain(ns, "sort", path),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: SourceChain(ns, "titles", path),
			Value:   false,
		},
	}

	return
}

// NewClientFlags returns the flags that shape the upstream client and the
// selection cache.
func NewClientFlags(ns, path string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Aliases: []string{"H"},
			Usage:   "EPIC host serving the API and the image archive",
			Sources: SourceChain(ns, "host", path, "EPICCTL_HOST"),
			Value:   epic.DefaultBaseURL,
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, URLValidator)
			},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "per request timeout, 0 for none",
			Sources: SourceChain(ns, "timeout", path, "EPICCTL_TIMEOUT"),
		},
		&cli.BoolWithInverseFlag{
			Name:    "cache",
			Usage:   "reuse results already fetched in this session",
			Sources: SourceChain(ns, "cache", path, "EPICCTL_CACHE"),
			Value:   true,
		},
	}
}

// NewTypeFlag returns the --type flag.
func NewTypeFlag(ns, path string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "type",
		Aliases: []string{"T"},
		Usage:   "imagery type to start with",
		Sources: SourceChain(ns, "type", path, "EPICCTL_TYPE"),
		Value:   epic.Types[0],
		Validator: func(value string) error {
			return FlagValidators(value, TypeValidator)
		},
	}
}

// pathHas reports whether target is on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
