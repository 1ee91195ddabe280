/*
Copyright © 2013 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package resample is the display-pipeline stand-in: OOMMF's mmdisp code
// repeatedly calls Vf_BoxList::GetClosest2D to pull an irregularly-located
// vector field onto a regular display raster. This package does the same
// thing through vfindex.QueryAPI and reports the result as a
// *sparse.DenseArray, the same dense-grid type vargrid.go's
// ctmVariable.data uses.
package resample

import (
	"fmt"
	"math"

	"bitbucket.org/ctessum/sparse"
	"github.com/gonum/floats"
	"github.com/spatialmodel/vfsearch/vfindex"
)

// Component selects which scalar to pull out of the nearest point's
// payload for each output cell.
type Component int

const (
	// DistanceXY resamples the XY distance from the output cell centre
	// to its nearest cloud point.
	DistanceXY Component = iota
	VX
	VY
	VZ
)

// Grid describes a regular output raster to resample onto: nx by ny
// cells tiling [xmin,xmax] x [ymin,ymax], cell centres sampled.
type Grid struct {
	Xmin, Ymin, Xmax, Ymax float64
	Nx, Ny                 int
}

// Result holds the resampled raster plus the grid statistics gathered
// while producing it.
type Result struct {
	Data *sparse.DenseArray // shape [Ny, Nx]
	Mean float64
}

// Resample queries the nearest cloud point to the centre of every output
// cell and fills a *sparse.DenseArray of shape [Ny, Nx] with the
// requested component. It refines query's index first if necessary (the
// same implicit-rebuild contract ClosestXY itself offers).
func Resample(query *vfindex.QueryAPI, grid Grid, comp Component) (*Result, error) {
	if grid.Nx <= 0 || grid.Ny <= 0 {
		return nil, fmt.Errorf("resample: grid dimensions must be positive, got %dx%d", grid.Nx, grid.Ny)
	}
	data := sparse.ZerosDense(grid.Ny, grid.Nx)
	dx := (grid.Xmax - grid.Xmin) / float64(grid.Nx)
	dy := (grid.Ymax - grid.Ymin) / float64(grid.Ny)

	for j := 0; j < grid.Ny; j++ {
		y := grid.Ymin + (float64(j)+0.5)*dy
		for i := 0; i < grid.Nx; i++ {
			x := grid.Xmin + (float64(i)+0.5)*dx
			idx, _, err := query.ClosestXY(x, y)
			if err != nil {
				return nil, fmt.Errorf("resample: cell (%d,%d) at (%v,%v): %w", i, j, x, y, err)
			}
			loc, val, _, err := query.Store.Get(idx)
			if err != nil {
				return nil, fmt.Errorf("resample: %w", err)
			}
			var v float64
			switch comp {
			case DistanceXY:
				ddx := loc.X - x
				ddy := loc.Y - y
				v = math.Sqrt(ddx*ddx + ddy*ddy)
			case VX:
				v = val.VX
			case VY:
				v = val.VY
			case VZ:
				v = val.VZ
			default:
				return nil, fmt.Errorf("resample: unknown component %d", comp)
			}
			data.Elements[j*grid.Nx+i] = v
		}
	}

	mean := floats.Sum(data.Elements) / float64(len(data.Elements))
	return &Result{Data: data, Mean: mean}, nil
}
