// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listDoc = "# epicctl list\n\n" +
	"## Short description\n\n" +
	"List the captures for a type\nand date.\n\n" +
	"## Quick examples\n\n" +
	"```sh\n" +
	"# Latest natural captures\n" +
	"epicctl list natural\n\n" +
	"# As JSON\n" +
	"epicctl   list -o json natural 2024-01-02\n" +
	"epicctl types\n" +
	"```\n"

func TestExtractTitleAndShortDesc(t *testing.T) {
	title, short := extractTitleAndShortDesc(listDoc)
	assert.Equal(t, "epicctl list", title)
	assert.Equal(t, "List the captures for a type and date.", short)

	title, short = extractTitleAndShortDesc("# only a title\n")
	assert.Equal(t, "only a title", title)
	assert.Equal(t, "only a title.", short)
}

func TestExtractQuickExamples(t *testing.T) {
	got := extractQuickExamples(listDoc)
	assert.Equal(t, []example{
		{Desc: "Latest natural captures", Cmd: "epicctl list natural"},
		{Desc: "As JSON", Cmd: "epicctl list -o json natural 2024-01-02"},
		{Desc: "Example", Cmd: "epicctl types"},
	}, got)

	assert.Nil(t, extractQuickExamples("# nothing here\n"))
}

func TestBuildTLDRFallback(t *testing.T) {
	got := buildTLDR("types", "", "", nil)
	assert.Contains(t, got, "# epicctl-types\n")
	assert.Contains(t, got, "> epicctl types\n")
	assert.Contains(t, got, "`epicctl types --help`")
}

func TestGenerate(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "docs", "commands")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "list.md"), []byte(listDoc), 0o600))

	n, err := generate(root, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	man, err := os.ReadFile(filepath.Join(root, "docs", "man", "share", "man1", "epicctl-list.1"))
	require.NoError(t, err)
	assert.NotEmpty(t, man)

	tldr, err := os.ReadFile(filepath.Join(root, "docs", "tldr", "epicctl-list.md"))
	require.NoError(t, err)
	assert.Contains(t, string(tldr), "`epicctl list natural`")

	_, err = generate(t.TempDir(), true)
	assert.Error(t, err)
}
