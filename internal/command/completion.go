// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/epicctl/internal/meta"
)

const bashCompletionScript = `# bash completion for epicctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_epicctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "browse latest list show types completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --schema --tldr"
    local client="--host -H --timeout --cache --no-cache"
    local types="natural enhanced aerosol cloud"

    case "$cmd" in
        browse)
            local opts="$client --type -T --tldr"
            ;;
        latest)
            local opts="$common $client --relative -r"
            ;;
        list)
            local opts="$common $client"
            ;;
        show)
            local opts="$common $client --save --profile --region"
            ;;
        types)
            local opts="$common"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --type|-T)
            COMPREPLY=( $(compgen -W "$types" -- "$cur") )
            return 0
            ;;
        --save)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # The first positional of latest, list and show is a type.
    case "$cmd" in
        latest|list|show)
            COMPREPLY=( $(compgen -W "$types" -- "$cur") )
            ;;
    esac
    return 0
}

complete -F _epicctl epicctl
`

const zshCompletionScript = `#compdef epicctl

_epicctl() {
  local -a cmds
  cmds=(
    'browse:browse captures interactively'
    'latest:most recent capture date per type'
    'list:list the captures for a type and date'
    'show:show one capture'
    'types:list imagery types'
    'completion:generate shell completion script'
  )

  local -a common client
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--schema[dump schema]'
  '--tldr[show tldr page]'
  )
  client=(
  '(-H --host)'{-H,--host}'[EPIC host]:url'
  '--timeout[per request timeout]:duration'
  '(--cache --no-cache)'{--cache,--no-cache}'[reuse fetched results]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'epicctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    browse)
      _arguments -C \
        $client \
        '(-T --type)'{-T,--type}'[imagery type]:type:(natural enhanced aerosol cloud)' \
        '--tldr[show tldr page]'
      ;;
    latest)
      _arguments -C \
        $common $client \
        '(-r --relative)'{-r,--relative}'[add age]' \
        '*:type:(natural enhanced aerosol cloud)'
      ;;
    list)
      _arguments -C \
        $common $client \
        '1:type:(natural enhanced aerosol cloud)' \
        '2::date'
      ;;
    show)
      _arguments -C \
        $common $client \
        '--save[save image]:destination:_files' \
        '--profile[AWS profile]:profile' \
        '--region[AWS region]:region' \
        '1:type:(natural enhanced aerosol cloud)' \
        '2:date' \
        '3:index'
      ;;
    types)
      _arguments -C $common
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _epicctl epicctl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	w := writer(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		fmt.Fprintln(errWriter(cmd), "usage: epicctl completion [bash|zsh]")
	}
	return nil
}

func CompletionCommandBuilder(_ meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "epicctl completion [bash|zsh]",
		Action:    CompletionCommandAction,
	}
}
