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

package vfio

import (
	"fmt"
	"strconv"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
	"github.com/spatialmodel/vfsearch/vfindex"
)

// LoadShapefileCloud reads point features from the shapefile at path and
// appends one point to store per feature, the way loadPopulation in
// vargrid.go reads census features. valueField, if non-empty, names a
// shapefile attribute parsed as float64 and stored as the point's VX
// component; pass "" to default every point's value to zero. Only
// geom.Point features are accepted -- polygon shapefiles (as
// loadPopulation itself reads) are out of scope for a point cloud.
func LoadShapefileCloud(path string, valueField string, store *vfindex.PointStore) (int, error) {
	dec, err := shp.NewDecoder(path)
	if err != nil {
		return 0, fmt.Errorf("vfio: opening shapefile %s: %w", path, err)
	}
	defer dec.Close()

	var fields []string
	if valueField != "" {
		fields = []string{valueField}
	}

	n := 0
	for {
		g, row, more := dec.DecodeRowFields(fields...)
		if !more {
			break
		}
		p, ok := g.(geom.Point)
		if !ok {
			return n, fmt.Errorf("vfio: shapefile %s: feature %d is not a point", path, n)
		}
		var v float64
		if valueField != "" {
			v, err = strconv.ParseFloat(row[valueField], 64)
			if err != nil {
				return n, fmt.Errorf("vfio: shapefile %s: parsing field %s: %w", path, valueField, err)
			}
		}
		store.AddPoint(vfindex.Location{X: p.X, Y: p.Y}, vfindex.Value{VX: v})
		n++
	}
	if err := dec.Error(); err != nil {
		return n, fmt.Errorf("vfio: reading shapefile %s: %w", path, err)
	}
	return n, nil
}

// Reproject applies an already-constructed coordinate transform to every
// point in locs, returning a new slice (the inputs are not mutated). It
// mirrors the sr/trans pattern loadPopulation and loadMortality use to
// bring a shapefile's native projection into the CTM grid's projection
// before any distance comparison is made.
func Reproject(locs []vfindex.Location, trans proj.Transformer) ([]vfindex.Location, error) {
	out := make([]vfindex.Location, len(locs))
	for i, l := range locs {
		g, err := geom.Point{X: l.X, Y: l.Y}.Transform(trans)
		if err != nil {
			return nil, fmt.Errorf("vfio: reprojecting point %d: %w", i, err)
		}
		p, ok := g.(geom.Point)
		if !ok {
			return nil, fmt.Errorf("vfio: reprojecting point %d: transform returned non-point geometry", i)
		}
		out[i] = vfindex.Location{X: p.X, Y: p.Y, Z: l.Z}
	}
	return out, nil
}
