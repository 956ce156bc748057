// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package version holds the build version, set with -ldflags at release time.
package version

// Version is overwritten by the release build.
var Version = "dev"

// UserAgent is sent with every upstream request.
func UserAgent() string {
	return "epicctl/" + Version
}
