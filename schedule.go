/*
 * schedule.go, part of fepele.
 *
 *
 * Copyright 2024 The fepele authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package fep

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultDelta is the step used when a schedule has a single value and no
// delta was configured.
const DefaultDelta = 0.05

// Schedule is a finite, restartable sequence of lambdas. It is read much like
// a trajectory: call Next until it returns false, and Reset to start over.
type Schedule struct {
	lambdas []Lambda
	cur     int
}

// NewSchedule returns a schedule that produces lambdas of type typ with the
// given values, in the given order. If delta is positive it is used as the step
// of every lambda. Otherwise each lambda gets half the smallest gap to its
// neighbours in the schedule.
func NewSchedule(values []float64, typ LambdaType, delta float64) (*Schedule, error) {
	if len(values) == 0 {
		return nil, LambdaError{ErrEmptySchedule, []string{"NewSchedule"}}
	}
	S := new(Schedule)
	S.lambdas = make([]Lambda, 0, len(values))
	names := make(map[string]float64, len(values))
	for i, v := range values {
		//values that round to the same name would share files.
		if prev, ok := names[FormatValue(v)]; ok {
			return nil, LambdaError{fmt.Sprintf("%s: %g and %g", ErrDuplicatedLambda, prev, v), []string{"NewSchedule"}}
		}
		names[FormatValue(v)] = v
		d := delta
		if d <= 0 {
			d = halfGap(values, i)
		}
		L, err := NewLambda(v, typ, d)
		if err != nil {
			return nil, errDecorate(err, "NewSchedule")
		}
		L.index = i
		S.lambdas = append(S.lambdas, L)
	}
	return S, nil
}

// SpanSchedule returns a schedule of n evenly spaced lambdas between min and max,
// both included.
func SpanSchedule(n int, min, max float64, typ LambdaType, delta float64) (*Schedule, error) {
	if n <= 0 {
		return nil, LambdaError{ErrEmptySchedule, []string{"SpanSchedule"}}
	}
	if n == 1 {
		return NewSchedule([]float64{min}, typ, delta)
	}
	values := floats.Span(make([]float64, n), min, max)
	S, err := NewSchedule(values, typ, delta)
	if err != nil {
		return nil, errDecorate(err, "SpanSchedule")
	}
	return S, nil
}

// half the smallest non-zero distance between values[i] and its neighbours.
func halfGap(values []float64, i int) float64 {
	gap := math.Inf(1)
	if i > 0 {
		if g := math.Abs(values[i] - values[i-1]); g > 0 {
			gap = g
		}
	}
	if i < len(values)-1 {
		if g := math.Abs(values[i+1] - values[i]); g > 0 && g < gap {
			gap = g
		}
	}
	if math.IsInf(gap, 1) {
		return DefaultDelta
	}
	return gap / 2
}

// Len returns the number of lambdas in the schedule.
func (S *Schedule) Len() int { return len(S.lambdas) }

// Next returns the next lambda of the schedule, or false if there are no more.
func (S *Schedule) Next() (Lambda, bool) {
	if S.cur >= len(S.lambdas) {
		return Lambda{}, false
	}
	L := S.lambdas[S.cur]
	S.cur++
	return L, true
}

// Reset rewinds the schedule so the next call to Next returns the first lambda.
func (S *Schedule) Reset() { S.cur = 0 }

// Values returns a copy of the values of the schedule, in order.
func (S *Schedule) Values() []float64 {
	ret := make([]float64, len(S.lambdas))
	for i, v := range S.lambdas {
		ret[i] = v.value
	}
	return ret
}

func (S *Schedule) String() string {
	if len(S.lambdas) == 0 {
		return "empty schedule"
	}
	return fmt.Sprintf("%d %s lambdas %v", len(S.lambdas), S.lambdas[0].typ, S.Values())
}
