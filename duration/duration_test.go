// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"5 nanoseconds", 5 * time.Nanosecond},
		{"5 microseconds", 5 * time.Microsecond},
		{"5 milliseconds", 5 * time.Millisecond},
		{"5 seconds", 5 * time.Second},
		{"  42   seconds  ", 42 * time.Second},
	}

	for _, c := range cases {
		t.Run("Duration.Parse/"+c.in, func(t *testing.T) {
			got, err := Parse(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestParse_UnknownUnit(t *testing.T) {
	t.Run("Duration.ParseUnknownUnit", func(t *testing.T) {
		_, err := Parse("5 fortnights")
		require.Error(t, err)
		var invalid *InvalidArgumentError
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestParse_Empty(t *testing.T) {
	t.Run("Duration.ParseEmpty", func(t *testing.T) {
		_, err := Parse("")
		assert.Error(t, err)
	})
}

func TestParse_MissingInteger(t *testing.T) {
	t.Run("Duration.ParseMissingInteger", func(t *testing.T) {
		_, err := Parse("seconds")
		assert.Error(t, err)
	})
}
