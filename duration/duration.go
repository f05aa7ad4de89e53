// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package duration parses the small text format used throughout
// configuration: a decimal integer, whitespace, and a unit token. It
// is deliberately allocation-light, in the spirit of the cron field
// scanner it was adapted from.
package duration

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// InvalidArgumentError is returned for a malformed duration string or
// an unrecognised unit token.
type InvalidArgumentError struct {
	Input string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid duration: " + strconv.Quote(e.Input)
}

// unit tokens, matched by substring containment; matchUnit prefers the
// longest contained token so that "microseconds" isn't mistaken for a
// truncated "seconds" suffix.
var units = []struct {
	token string
	scale time.Duration
}{
	{"nanoseconds", time.Nanosecond},
	{"microseconds", time.Microsecond},
	{"milliseconds", time.Millisecond},
	{"seconds", time.Second},
}

// Parse converts a string of the form "<int> <unit>" into a
// time.Duration. The unit token is matched by substring containment
// against nanoseconds/microseconds/milliseconds/seconds; the leading
// decimal integer is parsed from the text preceding the unit.
func Parse(s string) (time.Duration, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, errors.WithStack(&InvalidArgumentError{Input: s})
	}

	scale, ok := matchUnit(trimmed)
	if !ok {
		return 0, errors.WithStack(&InvalidArgumentError{Input: s})
	}

	digits := leadingInt(trimmed)
	if digits == "" {
		return 0, errors.WithStack(&InvalidArgumentError{Input: s})
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(&InvalidArgumentError{Input: s}, "parse integer: %v", err)
	}

	return time.Duration(n) * scale, nil
}

// matchUnit finds the longest unit token contained in s.
func matchUnit(s string) (time.Duration, bool) {
	lower := strings.ToLower(s)
	best := -1
	var bestScale time.Duration
	for _, u := range units {
		if strings.Contains(lower, u.token) && len(u.token) > best {
			best = len(u.token)
			bestScale = u.scale
		}
	}
	if best < 0 {
		return 0, false
	}
	return bestScale, true
}

// leadingInt extracts the leading run of decimal digits (optionally
// signed) from s.
func leadingInt(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return ""
	}
	return s[:i]
}
