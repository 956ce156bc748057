// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"reflect"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/urfave/cli/v3"

	"github.com/staranto/epicctl/internal/archive"
	"github.com/staranto/epicctl/internal/aws"
	"github.com/staranto/epicctl/internal/meta"
	"github.com/staranto/epicctl/internal/viewer"
)

// ShowCommandAction presents one capture and optionally saves its JPEG.
func ShowCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "show") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(viewer.Detail{})) {
		return nil
	}

	typ, date, err := typeAndDateArgs(cmd)
	if err != nil {
		return err
	}
	if date == "" || cmd.Args().Len() < 3 { //nolint:mnd
		return fmt.Errorf("usage: %s", cmd.UsageText)
	}
	if err := IndexValidator(cmd.Args().Get(2)); err != nil {
		return err
	}
	index, _ := strconv.Atoi(cmd.Args().Get(2))

	al, err := BuildAttrs(cmd, "type", "date", "caption", "image", "url")
	if err != nil {
		return err
	}

	client := NewClient(cmd)
	ctl := NewController(cmd, client)
	st, err := loadDay(ctx, ctl, typ, date)
	if err != nil {
		return fmt.Errorf("%s: %w", viewer.ErrorText, err)
	}

	st, err = ctl.Select(st, index)
	if err != nil {
		return err
	}

	if dest := cmd.String("save"); dest != "" {
		saved, err := archive.Save(ctx, client.HTTPClient(), st.Detail.URL, dest,
			archive.WithAWSOptions(awsOptions(cmd)...),
			archive.WithS3Options(s3Options(cmd)...))
		if err != nil {
			return err
		}
		fmt.Fprintln(errWriter(cmd), saved)
	}

	return Emit(cmd, []viewer.Detail{*st.Detail}, al)
}

func awsOptions(cmd *cli.Command) []aws.Option {
	var opts []aws.Option
	if p := cmd.String("profile"); p != "" {
		opts = append(opts, aws.WithProfile(p))
	}
	if r := cmd.String("region"); r != "" {
		opts = append(opts, aws.WithRegion(r))
	}
	return opts
}

func s3Options(cmd *cli.Command) []func(*s3.Options) {
	var opts []func(*s3.Options)
	if e := cmd.String("endpoint"); e != "" {
		opts = append(opts, aws.WithEndpoint(e))
	}
	if cmd.Bool("path-style") {
		opts = append(opts, aws.WithPathStyle())
	}
	return opts
}

// ShowCommandBuilder constructs the cli.Command definition for "show".
func ShowCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "show",
		Usage:     "show one capture",
		UsageText: `epicctl show [options] <type> <date> <index>`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "save",
				Usage: "download the image to PATH, a directory or s3://bucket/key",
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator)
				},
			},
			&cli.StringFlag{
				Name:    "endpoint",
				Usage:   "S3 compatible endpoint URL for s3:// destinations",
				Sources: SourceChain("show", "endpoint", meta.Config.Source),
				Validator: func(value string) error {
					if value == "" {
						return nil
					}
					return URLValidator(value)
				},
			},
			&cli.BoolFlag{
				Name:    "path-style",
				Usage:   "use path style S3 addressing, as MinIO and friends expect",
				Sources: SourceChain("show", "path-style", meta.Config.Source),
			},
			&cli.StringFlag{
				Name:    "profile",
				Usage:   "AWS profile for s3:// destinations",
				Sources: SourceChain("show", "profile", meta.Config.Source),
			},
			&cli.StringFlag{
				Name:    "region",
				Usage:   "AWS region for s3:// destinations",
				Sources: SourceChain("show", "region", meta.Config.Source),
			},
		},
		Action: ShowCommandAction,
		Meta:   meta,
		Output: true,
	}).Build()
}
