// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cache provides the in-memory selection cache used to avoid
// refetching a type's max date or a (type, date) record list within a
// session. Nothing is written to disk.
package cache
