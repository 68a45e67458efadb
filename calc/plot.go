/*
 * plot.go, part of fepele.
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

package calc

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var sweepColors = []color.RGBA{
	{R: 0, G: 0, B: 200, A: 255},
	{R: 200, G: 0, B: 0, A: 255},
	{R: 0, G: 150, B: 0, A: 255},
}

// PlotProfile plots the energy difference contributed by each lambda
// against lambda, one line per sweep, and saves it to filename. The format
// is given by the extension of filename.
func PlotProfile(R *Result, filename string) error {
	c := R.Contributions()
	if len(c) == 0 {
		return Error{ErrNoSamples, []string{"PlotProfile"}, false}
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s, total %s", R.Command, R.Prediction())
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "Lambda"
	p.Y.Label.Text = "dE (kcal/mol)"
	p.X.Min = 0
	p.X.Max = 1
	p.Add(plotter.NewGrid())
	sweeps := make(map[int]plotter.XYs)
	order := make([]int, 0)
	for _, v := range c {
		if _, ok := sweeps[v.Sweep]; !ok {
			order = append(order, v.Sweep)
		}
		sweeps[v.Sweep] = append(sweeps[v.Sweep], plotter.XY{X: v.Lambda, Y: v.DeltaE})
	}
	for i, s := range order {
		l, sc, err := plotter.NewLinePoints(sweeps[s])
		if err != nil {
			return Error{err.Error(), []string{"plotter.NewLinePoints", "PlotProfile"}, false}
		}
		col := sweepColors[i%len(sweepColors)]
		l.Color = col
		sc.Color = col
		p.Add(l, sc)
		p.Legend.Add(fmt.Sprintf("sweep %d", s), l, sc)
	}
	if err := p.Save(5*vg.Inch, 4*vg.Inch, filename); err != nil {
		return Error{err.Error(), []string{"plot.Save", "PlotProfile"}, false}
	}
	return nil
}
