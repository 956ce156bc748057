// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package viewer holds the front-end logic of epicctl independent of any
// screen: the row list, the image detail presenter, the application state and
// the controller that turns submits, type changes and row selections into
// fetch-or-render decisions.
package viewer
