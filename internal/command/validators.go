// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/staranto/epicctl/internal/epic"
	"github.com/staranto/epicctl/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if s, ok := value.(string); ok && strings.HasPrefix(s, "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func OutputValidator(value any) error {
	s, _ := value.(string)
	if !slices.Contains(output.Formats, s) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

func TypeValidator(value any) error {
	s, _ := value.(string)
	if !epic.ValidType(s) {
		return fmt.Errorf("%w: must be one of %v", epic.ErrInvalidType, epic.Types)
	}
	return nil
}

func DateValidator(value any) error {
	s, _ := value.(string)
	if !epic.ValidDate(s) {
		return fmt.Errorf("%w: %q is not %s", epic.ErrInvalidDate, s, epic.DateLayout)
	}
	return nil
}

// IndexValidator accepts a non-negative row index.
func IndexValidator(value any) error {
	s, _ := value.(string)
	if i, err := strconv.Atoi(s); err != nil || i < 0 {
		return fmt.Errorf("invalid row index %q", s)
	}
	return nil
}

func URLValidator(value any) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid host url %q", s)
	}
	return nil
}
