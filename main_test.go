// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/epicctl/internal/config"
)

func TestMangleArguments(t *testing.T) {
	t.Setenv("EPICCTL_CFG", "internal/config/testdata/nested.yaml")
	saved := config.Config
	t.Cleanup(func() { config.Config = saved })
	_, err := config.Load()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no set and no defaults",
			in:   []string{"epicctl", "list", "natural"},
			want: []string{"epicctl", "list", "natural"},
		},
		{
			name: "explicit set",
			in:   []string{"epicctl", "list", "natural", "@json", "2024-01-02"},
			want: []string{"epicctl", "list", "--output", "json", "--titles", "natural", "2024-01-02"},
		},
		{
			name: "unknown set is dropped",
			in:   []string{"epicctl", "list", "@nope", "natural"},
			want: []string{"epicctl", "list", "natural"},
		},
		{
			name: "help wins",
			in:   []string{"epicctl", "list", "@json", "-h"},
			want: []string{"epicctl", "list", "--help"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mangleArguments(tt.in))
		})
	}
}
