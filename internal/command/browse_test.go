// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/staranto/epicctl/internal/config"
)

func TestProgramOptions(t *testing.T) {
	tests := []struct {
		name string
		data map[string]interface{}
		want int
	}{
		{name: "default", data: map[string]interface{}{"host": "https://epic.example"}, want: 1},
		{name: "global off", data: map[string]interface{}{"altscreen": false}, want: 0},
		{name: "namespaced off", data: map[string]interface{}{
			"altscreen": true,
			"browse":    map[string]interface{}{"altscreen": false},
		}, want: 0},
		{name: "not a bool", data: map[string]interface{}{"altscreen": "no"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			prev := config.Config
			config.Config = config.Type{Namespace: "browse", Data: tt.data}
			t.Cleanup(func() { config.Config = prev })

			assert.Len(t, programOptions(), tt.want)
		})
	}
}
