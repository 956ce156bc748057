// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"github.com/staranto/epicctl/internal/config"
)

// Meta are the meta-options that are available on all commands.
type Meta struct {
	// Config is the file loaded for the invoked subcommand. Flags bind to
	// its Source.
	Config config.Type
}
