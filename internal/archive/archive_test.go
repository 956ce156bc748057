// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package archive

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/epicctl/internal/epic"
)

const jpeg = "\xff\xd8\xff\xe0fake-jpeg"

func newArchive(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/archive/natural/2024/01/02/jpg/epic_1b_1.jpg", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = io.WriteString(w, jpeg)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type fakePutter struct {
	bucket, key string
	body        []byte
}

func (f *fakePutter) PutObject(_ context.Context, in *s3v2.PutObjectInput, _ ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error) {
	f.bucket = awsv2.ToString(in.Bucket)
	f.key = awsv2.ToString(in.Key)
	f.body, _ = io.ReadAll(in.Body)
	return &s3v2.PutObjectOutput{}, nil
}

func TestSaveToFile(t *testing.T) {
	srv := newArchive(t)
	dest := filepath.Join(t.TempDir(), "out.jpg")

	saved, err := Save(context.Background(), srv.Client(), srv.URL+"/archive/natural/2024/01/02/jpg/epic_1b_1.jpg", dest)
	require.NoError(t, err)

	assert.Equal(t, dest, saved.Dest)
	assert.Equal(t, int64(len(jpeg)), saved.Bytes)
	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, jpeg, string(got))
	assert.Equal(t, "saved 13 B to "+dest, saved.String())
}

func TestSaveToDirectory(t *testing.T) {
	srv := newArchive(t)
	dir := t.TempDir()

	saved, err := Save(context.Background(), srv.Client(), srv.URL+"/archive/natural/2024/01/02/jpg/epic_1b_1.jpg", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "epic_1b_1.jpg"), saved.Dest)
	assert.FileExists(t, saved.Dest)
}

func TestSaveToS3(t *testing.T) {
	srv := newArchive(t)
	f := &fakePutter{}

	saved, err := Save(context.Background(), srv.Client(), srv.URL+"/archive/natural/2024/01/02/jpg/epic_1b_1.jpg",
		"s3://bucket/earth/1.jpg", WithUploader(f))
	require.NoError(t, err)

	assert.Equal(t, "s3://bucket/earth/1.jpg", saved.Dest)
	assert.Equal(t, "bucket", f.bucket)
	assert.Equal(t, "earth/1.jpg", f.key)
	assert.Equal(t, jpeg, string(f.body))
}

func TestSaveToS3Prefix(t *testing.T) {
	srv := newArchive(t)
	f := &fakePutter{}

	saved, err := Save(context.Background(), srv.Client(), srv.URL+"/archive/natural/2024/01/02/jpg/epic_1b_1.jpg",
		"s3://bucket/earth/", WithUploader(f))
	require.NoError(t, err)

	assert.Equal(t, "s3://bucket/earth/epic_1b_1.jpg", saved.Dest)
	assert.Equal(t, "earth/epic_1b_1.jpg", f.key)
}

func TestSaveNotFound(t *testing.T) {
	srv := newArchive(t)
	dest := filepath.Join(t.TempDir(), "out.jpg")

	_, err := Save(context.Background(), srv.Client(), srv.URL+"/archive/natural/2024/01/02/jpg/missing.jpg", dest)

	var ne *epic.NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, http.StatusNotFound, ne.StatusCode)
	assert.NoFileExists(t, dest)
}

func TestSaveBadS3URI(t *testing.T) {
	srv := newArchive(t)
	_, err := Save(context.Background(), srv.Client(), srv.URL+"/archive/natural/2024/01/02/jpg/epic_1b_1.jpg",
		"s3://bucket", WithUploader(&fakePutter{}))
	require.Error(t, err)
}
