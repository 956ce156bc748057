// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package archive downloads capture JPEGs from the image archive to a local
// file or an S3 object.
package archive
