// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dustin/go-humanize"

	"github.com/staranto/epicctl/internal/aws"
	"github.com/staranto/epicctl/internal/epic"
)

const contentType = "image/jpeg"

// Saved describes a completed export.
type Saved struct {
	Source string
	Dest   string
	Bytes  int64
}

func (s Saved) String() string {
	return fmt.Sprintf("saved %s to %s", humanize.Bytes(uint64(s.Bytes)), s.Dest) //nolint:gosec
}

type options struct {
	uploader aws.PutObjectAPI
	awsOpts  []aws.Option
	s3Opts   []func(*s3.Options)
}

// Option customizes Save.
type Option func(*options)

// WithUploader supplies the S3 client. Without it one is built from the
// default AWS config the first time an s3:// destination is seen.
func WithUploader(u aws.PutObjectAPI) Option {
	return func(o *options) { o.uploader = u }
}

// WithAWSOptions passes profile and region overrides to the AWS config.
func WithAWSOptions(opts ...aws.Option) Option {
	return func(o *options) { o.awsOpts = append(o.awsOpts, opts...) }
}

// WithS3Options tunes the S3 client built for s3:// destinations, e.g.
// aws.WithEndpoint and aws.WithPathStyle for S3 compatible stores.
func WithS3Options(opts ...func(*s3.Options)) Option {
	return func(o *options) { o.s3Opts = append(o.s3Opts, opts...) }
}

// Save fetches url with hc and writes it to dest. dest is either
// s3://bucket/key, an s3:// prefix ending in a slash, an existing directory (the file keeps its archive name) or
// a file path.
func Save(ctx context.Context, hc *http.Client, url, dest string, opts ...Option) (Saved, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if hc == nil {
		hc = http.DefaultClient
	}

	body, err := fetch(ctx, hc, url)
	if err != nil {
		return Saved{}, err
	}
	saved := Saved{Source: url, Bytes: int64(body.Len())}

	if aws.IsS3URI(dest) {
		if strings.HasSuffix(dest, "/") {
			dest += path.Base(url)
		}
		bucket, key, err := aws.ParseS3URI(dest)
		if err != nil {
			return Saved{}, err
		}
		uploader := o.uploader
		if uploader == nil {
			cfg, err := aws.LoadAWSConfig(ctx, o.awsOpts...)
			if err != nil {
				return Saved{}, fmt.Errorf("failed to load aws config: %w", err)
			}
			uploader = aws.NewS3(cfg, o.s3Opts...)
		}
		if err := aws.Upload(ctx, uploader, bucket, key, contentType, bytes.NewReader(body.Bytes()), saved.Bytes); err != nil {
			return Saved{}, err
		}
		saved.Dest = dest
		log.Debugf("uploaded %s to %s", url, dest)
		return saved, nil
	}

	if fi, err := os.Stat(dest); err == nil && fi.IsDir() {
		dest = filepath.Join(dest, path.Base(url))
	}

	if err := os.WriteFile(dest, body.Bytes(), 0o644); err != nil { //nolint:gosec,mnd
		return Saved{}, fmt.Errorf("failed to write %s: %w", dest, err)
	}
	saved.Dest = dest
	log.Debugf("wrote %s to %s", url, dest)

	return saved, nil
}

func fetch(ctx context.Context, hc *http.Client, url string) (bytes.Buffer, error) {
	var body bytes.Buffer

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return body, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return body, &epic.NetworkError{Method: http.MethodGet, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return body, &epic.NetworkError{
			Method:     http.MethodGet,
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	if _, err := body.ReadFrom(resp.Body); err != nil {
		return body, &epic.NetworkError{Method: http.MethodGet, URL: url, StatusCode: resp.StatusCode, Err: err}
	}
	return body, nil
}
