// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package epic talks to the public EPIC imagery API. It fetches the capture
// records for a type and date, derives the most recent capture date for a type
// and builds archive URLs for individual captures.
package epic
