// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package aws wraps the AWS SDK v2 pieces used to export captures to S3.
package aws
