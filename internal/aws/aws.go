// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// options holds overrides for LoadAWSConfig.
type options struct {
	profile string
	region  string
}

// Option customizes LoadAWSConfig. With none the usual environment and shared
// config chain applies.
type Option func(*options)

// WithProfile selects a shared config profile.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion overrides the region. Exports to a bucket in another region
// need it.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// LoadAWSConfig loads the SDK config used for S3 exports.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}

	return config.LoadDefaultConfig(ctx, loadOpts...)
}

// NewS3 builds an S3 client from cfg.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	return s3v2.NewFromConfig(cfg, optFns...)
}

// WithPathStyle forces path style addressing, as S3 compatible stores such
// as MinIO expect.
func WithPathStyle() func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		o.UsePathStyle = true
	}
}

// WithEndpoint points the client at an S3 compatible endpoint.
func WithEndpoint(endpoint string) func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		o.BaseEndpoint = awsv2.String(endpoint)
	}
}

// ErrNotS3URI is returned by ParseS3URI for anything but s3://bucket/key.
var ErrNotS3URI = errors.New("not an s3 uri")

// IsS3URI reports whether s uses the s3 scheme.
func IsS3URI(s string) bool {
	return strings.HasPrefix(s, "s3://")
}

// ParseS3URI splits s3://bucket/key. Both parts are required.
func ParseS3URI(s string) (bucket, key string, err error) {
	if !IsS3URI(s) {
		return "", "", fmt.Errorf("%w: %s", ErrNotS3URI, s)
	}
	bucket, key, _ = strings.Cut(strings.TrimPrefix(s, "s3://"), "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %s", ErrNotS3URI, s)
	}
	return bucket, key, nil
}

// PutObjectAPI is the part of the S3 client Upload needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// Upload writes size bytes from body to bucket/key.
func Upload(ctx context.Context, api PutObjectAPI, bucket, key, contentType string, body io.Reader, size int64) error {
	in := &s3v2.PutObjectInput{
		Bucket:        awsv2.String(bucket),
		Key:           awsv2.String(key),
		Body:          body,
		ContentLength: awsv2.Int64(size),
	}
	if contentType != "" {
		in.ContentType = awsv2.String(contentType)
	}

	if _, err := api.PutObject(ctx, in); err != nil {
		return fmt.Errorf("failed to put s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}
