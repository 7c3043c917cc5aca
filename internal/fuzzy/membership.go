// trail-recommender: fuzzy hiking-trail recommendation engine
// SPDX-License-Identifier: MIT
//
// Trapezoidal membership functions.

package fuzzy

import (
	"fmt"
	"math"
)

// Trapezoid is a membership function rising on [A,B], flat at 1 on [B,C]
// and falling on [C,D]. A==B or C==D produce shoulders.
type Trapezoid struct {
	A, B, C, D float64
}

// Triangle returns a trapezoid with a single peak at b.
func Triangle(a, b, c float64) Trapezoid {
	return Trapezoid{A: a, B: b, C: b, D: c}
}

// Degree evaluates the membership of x, always within [0,1].
func (t Trapezoid) Degree(x float64) float64 {
	if math.IsNaN(x) || x < t.A || x > t.D {
		return 0
	}
	if x >= t.B && x <= t.C {
		return 1
	}
	if x < t.B {
		return clamp01((x - t.A) / (t.B - t.A))
	}
	return clamp01((t.D - x) / (t.D - t.C))
}

// Validate checks the breakpoints are finite and ordered.
func (t Trapezoid) Validate() error {
	for _, v := range []float64{t.A, t.B, t.C, t.D} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("trapezoid %v has non-finite breakpoint", t)
		}
	}
	if t.A > t.B || t.B > t.C || t.C > t.D {
		return fmt.Errorf("trapezoid %v breakpoints must satisfy a<=b<=c<=d", t)
	}
	return nil
}

func (t Trapezoid) String() string {
	return fmt.Sprintf("[%g,%g,%g,%g]", t.A, t.B, t.C, t.D)
}

// AutoPartition spreads len(labels) triangles evenly over [min,max]. Each
// triangle peaks at its center and reaches zero at the neighbouring centers.
func AutoPartition(min, max float64, labels []string) []Set {
	n := len(labels)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []Set{{Label: labels[0], Shape: Trapezoid{A: min, B: min, C: max, D: max}}}
	}
	step := (max - min) / float64(n-1)
	sets := make([]Set, n)
	for i, l := range labels {
		c := min + float64(i)*step
		sets[i] = Set{Label: l, Shape: Triangle(c-step, c, c+step)}
	}
	return sets
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
