// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package tui is the interactive capture browser. It drives a
// viewer.Controller from a bubbletea program: pick a type, pick a date, list
// the captures and inspect one.
package tui
