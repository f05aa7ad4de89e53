// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package stats implements a numerically stable running estimator of
// mean, sample standard deviation, and maximum, used for testing and
// stress analysis of action execution latencies.
package stats

import (
	"math"

	"github.com/pkg/errors"
)

// LogicError indicates caller misuse, such as asking for statistics
// before any sample was added.
type LogicError struct {
	Message string
}

func (e *LogicError) Error() string { return e.Message }

// Distribution is a snapshot of an Estimator's running statistics.
type Distribution struct {
	Mean       float64
	StdDev     float64
	SampleSize int
}

// Estimator accumulates samples one at a time using a Welford-style
// running update with a reference-value displacement, so that samples
// of large magnitude with small spread (e.g. clustered around 1e12)
// don't lose precision to cancellation.
type Estimator struct {
	count     int64
	reference float64
	haveRef   bool
	mean      float64 // running mean of (x - reference)
	m2        float64 // running sum of squared deviations from mean
	max       float64
	haveMax   bool
}

// Add records one sample.
func (e *Estimator) Add(value float64) {
	if !e.haveRef {
		e.reference = value
		e.haveRef = true
	}
	x := value - e.reference

	e.count++
	delta := x - e.mean
	e.mean += delta / float64(e.count)
	delta2 := x - e.mean
	e.m2 += delta * delta2

	if !e.haveMax || value > e.max {
		e.max = value
		e.haveMax = true
	}
}

// Distribution returns the running mean, sample standard deviation
// (N-1 denominator), and sample count. It fails if no sample was added.
func (e *Estimator) Distribution() (Distribution, error) {
	if e.count == 0 {
		return Distribution{}, errors.WithStack(&LogicError{Message: "no samples added"})
	}

	var stdDev float64
	if e.count > 1 {
		stdDev = math.Sqrt(e.m2 / float64(e.count-1))
	}

	return Distribution{
		Mean:       e.mean + e.reference,
		StdDev:     stdDev,
		SampleSize: int(e.count),
	}, nil
}

// Max returns the largest sample seen so far. It fails if no sample
// was added.
func (e *Estimator) Max() (float64, error) {
	if !e.haveMax {
		return 0, errors.WithStack(&LogicError{Message: "no samples added"})
	}
	return e.max, nil
}

// SampleSize returns the number of samples added so far.
func (e *Estimator) SampleSize() int {
	return int(e.count)
}
