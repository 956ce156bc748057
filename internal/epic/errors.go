// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package epic

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidType = errors.New("invalid imagery type")
	ErrInvalidDate = errors.New("invalid date")
	ErrNoRecords   = errors.New("no records returned")
)

// NetworkError is returned when a request fails in transport or comes back
// with a non-2xx status. A non-2xx response is a failure even when it carries
// a JSON body.
type NetworkError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError reports a value from the API that could not be understood.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
