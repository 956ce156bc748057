// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// epicctl is a command line viewer for the EPIC Earth imagery archive. It
// wires the CLI, delegates to internal packages, and serves as the entry point.
package main
