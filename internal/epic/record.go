// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package epic

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Types is the fixed set of imagery types served by the API. Order matters,
// the first entry is the default selection.
var Types = []string{"natural", "enhanced", "aerosol", "cloud"}

const (
	// DateLayout is the layout of a selectable date, e.g. 2024-03-01.
	DateLayout = "2006-01-02"
	// TimestampLayout is the layout of a record's date field.
	TimestampLayout = "2006-01-02 15:04:05"
)

var datePrefixRe = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}`)

// Record is one capture as returned by the API. Fields the API sends that we
// have no use for are dropped on decode.
type Record struct {
	Identifier string `json:"identifier,omitempty"`
	Caption    string `json:"caption"`
	Image      string `json:"image"`
	Date       string `json:"date"`
}

// Day returns the YYYY-MM-DD prefix of the record's date.
func (r Record) Day() (string, error) {
	day := datePrefixRe.FindString(r.Date)
	if day == "" {
		return "", &ParseError{Value: r.Date, Err: ErrInvalidDate}
	}
	return day, nil
}

// ValidType returns true if typ is one of Types.
func ValidType(typ string) bool {
	for _, t := range Types {
		if t == typ {
			return true
		}
	}
	return false
}

// ValidDate returns true if s is a real calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParseTimestamp parses a record date. A bare YYYY-MM-DD is accepted too.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{TimestampLayout, DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{Value: s, Err: ErrInvalidDate}
}

// MaxDate returns the YYYY-MM-DD prefix of the latest of the given record
// dates. Equal dates compare equal so which of them wins is unspecified.
func MaxDate(dates ...string) (string, error) {
	if len(dates) == 0 {
		return "", ErrNoRecords
	}

	var (
		best    time.Time
		bestRaw string
	)
	for i, d := range dates {
		t, err := ParseTimestamp(d)
		if err != nil {
			return "", err
		}
		if i == 0 || t.After(best) {
			best, bestRaw = t, d
		}
	}

	day := datePrefixRe.FindString(strings.TrimSpace(bestRaw))
	if day == "" {
		return "", &ParseError{Value: bestRaw, Err: ErrInvalidDate}
	}
	return day, nil
}

// ArchiveURL builds the URL of the JPEG for rec under the given archive base,
// e.g. https://epic.gsfc.nasa.gov/archive/natural/2024/03/01/jpg/epic_1b_x.jpg.
func ArchiveURL(base, typ string, rec Record) (string, error) {
	day, err := rec.Day()
	if err != nil {
		return "", err
	}
	if rec.Image == "" {
		return "", fmt.Errorf("record %q has no image name", rec.Date)
	}

	ymd := strings.Split(day, "-")
	return fmt.Sprintf("%s/archive/%s/%s/%s/%s/jpg/%s.jpg",
		strings.TrimRight(base, "/"),
		url.PathEscape(typ), ymd[0], ymd[1], ymd[2],
		url.PathEscape(rec.Image)), nil
}
