/*
 * lambda_test.go, part of fepele.
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
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewLambdaRange(Te *testing.T) {
	for _, v := range []float64{-0.1, 1.0001, math.NaN()} {
		if _, err := NewLambda(v, DualLambda); err == nil {
			Te.Errorf("lambda %g should have been rejected", v)
		}
	}
	L, err := NewLambda(0.3, StericLambda, 0.05)
	if err != nil {
		Te.Fatal(err)
	}
	if L.Value() != 0.3 || L.Delta() != 0.05 || L.Type() != StericLambda {
		Te.Errorf("unexpected lambda %v delta %g", L, L.Delta())
	}
}

func TestShift(Te *testing.T) {
	L, _ := NewLambda(0.5, DualLambda, 0.1)
	if got := L.Shift(Forward).Value(); math.Abs(got-0.6) > 1e-12 {
		Te.Errorf("forward shift: got %g want 0.6", got)
	}
	if got := L.Shift(Backward).Value(); math.Abs(got-0.4) > 1e-12 {
		Te.Errorf("backward shift: got %g want 0.4", got)
	}
	//clamped at the ends
	L0, _ := NewLambda(0, DualLambda, 0.1)
	if got := L0.Shift(Backward).Value(); got != 0 {
		Te.Errorf("backward shift of 0 should clamp to 0, got %g", got)
	}
	L1, _ := NewLambda(1, DualLambda, 0.1)
	if got := L1.Shift(Forward).Value(); got != 1 {
		Te.Errorf("forward shift of 1 should clamp to 1, got %g", got)
	}
	if L.Shift(Forward).Type() != DualLambda || L.Shift(Forward).Delta() != 0.1 {
		Te.Errorf("shift should keep type and delta")
	}
}

func TestDirections(Te *testing.T) {
	d := DoubleWideSampling()
	if len(d) != 2 || d[0].Factor() != 1 || d[1].Factor() != -1 {
		Te.Errorf("unexpected directions %v", d)
	}
	d[0] = Backward
	if DoubleWideSampling()[0] != Forward {
		Te.Errorf("the direction set must not be mutable through the returned slice")
	}
	if Forward.Suffix() != 'f' || Backward.Suffix() != 'b' {
		Te.Errorf("unexpected suffixes %c %c", Forward.Suffix(), Backward.Suffix())
	}
}

func TestScheduleCoverage(Te *testing.T) {
	values := []float64{0, 0.2, 0.5, 1}
	S, err := NewSchedule(values, DualLambda, 0)
	if err != nil {
		Te.Fatal(err)
	}
	for pass := 0; pass < 2; pass++ {
		got := []float64{}
		deltas := []float64{}
		for L, ok := S.Next(); ok; L, ok = S.Next() {
			got = append(got, L.Value())
			deltas = append(deltas, L.Delta())
		}
		if diff := cmp.Diff(values, got); diff != "" {
			Te.Errorf("pass %d: schedule mismatch (-want +got):\n%s", pass, diff)
		}
		wantd := []float64{0.1, 0.1, 0.15, 0.25}
		if diff := cmp.Diff(wantd, deltas, cmp.Comparer(func(a, b float64) bool { return math.Abs(a-b) < 1e-12 })); diff != "" {
			Te.Errorf("pass %d: deltas mismatch (-want +got):\n%s", pass, diff)
		}
		S.Reset()
	}
	if _, err := NewSchedule([]float64{0.1, 2}, DualLambda, 0); err == nil {
		Te.Errorf("a schedule with a value out of range should fail")
	}
	if _, err := NewSchedule(nil, DualLambda, 0); err == nil {
		Te.Errorf("an empty schedule should fail")
	}
}

func TestScheduleDistinctNames(Te *testing.T) {
	for _, values := range [][]float64{{0.1, 0.1004}, {0, 0.5, 0.5}, {0.2, 0.9, 0.2}} {
		_, err := NewSchedule(values, DualLambda, 0)
		if err == nil {
			Te.Errorf("%v: values with the same file name accepted", values)
			continue
		}
		if !strings.Contains(err.Error(), ErrDuplicatedLambda) {
			Te.Errorf("%v: unexpected error %v", values, err)
		}
	}
	S, err := NewSchedule([]float64{0.1, 0.1006}, DualLambda, 0)
	if err != nil {
		Te.Fatal(err)
	}
	L1, _ := S.Next()
	L2, _ := S.Next()
	if Tag(0, L1, Forward) == Tag(0, L2, Forward) {
		Te.Errorf("distinct names expected for %v and %v", L1, L2)
	}
}

func TestSpanSchedule(Te *testing.T) {
	S, err := SpanSchedule(5, 0, 1, CoulombicLambda, 0.01)
	if err != nil {
		Te.Fatal(err)
	}
	if diff := cmp.Diff([]float64{0, 0.25, 0.5, 0.75, 1}, S.Values()); diff != "" {
		Te.Errorf("span mismatch (-want +got):\n%s", diff)
	}
	L, _ := S.Next()
	if L.Delta() != 0.01 || L.Type() != CoulombicLambda {
		Te.Errorf("configured delta and type not honored: %v %g", L, L.Delta())
	}
	one, err := SpanSchedule(1, 0.3, 1, DualLambda, 0)
	if err != nil {
		Te.Fatal(err)
	}
	L, _ = one.Next()
	if L.Value() != 0.3 || L.Delta() != DefaultDelta {
		Te.Errorf("single value schedule: got %v delta %g", L, L.Delta())
	}
}

func TestTags(Te *testing.T) {
	L, _ := NewLambda(0.33333, DualLambda, 0.1)
	cases := []struct {
		sweep int
		dir   []Direction
		want  string
	}{
		{0, nil, "0.333c"},
		{0, []Direction{Forward}, "0.333f"},
		{2, []Direction{Backward}, "2_0.333b"},
	}
	for _, c := range cases {
		tag := Tag(c.sweep, L, c.dir...)
		if tag != c.want {
			Te.Errorf("Tag: got %s want %s", tag, c.want)
		}
		sweep, value, suffix, err := ParseTag(tag)
		if err != nil {
			Te.Fatal(err)
		}
		if sweep != c.sweep || value != 0.333 || suffix != tag[len(tag)-1] {
			Te.Errorf("ParseTag(%s) = %d %g %c", tag, sweep, value, suffix)
		}
	}
	if _, _, _, err := ParseTag("c"); err == nil {
		Te.Errorf("ParseTag should fail on a bare suffix")
	}
	if TrajectoryName("0.5f") != "trajectory_0.5f.pdb" || SinglePointCFName("1c") != "pp_1c.conf" {
		Te.Errorf("unexpected file names")
	}
}

func TestParseLambdaType(Te *testing.T) {
	for _, T := range []LambdaType{DualLambda, StericLambda, CoulombicLambda} {
		got, err := ParseLambdaType(T.String())
		if err != nil || got != T {
			Te.Errorf("round trip of %s failed: %v %v", T, got, err)
		}
	}
	if _, err := ParseLambdaType("sterics"); err == nil {
		Te.Errorf("unknown types should be rejected")
	}
	if !DualLambda.Controls(CoulombicLambda) || StericLambda.Controls(CoulombicLambda) {
		Te.Errorf("Controls is wrong")
	}
}
