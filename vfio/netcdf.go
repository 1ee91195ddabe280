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

// Package vfio loads clouds of located vectors from the file formats the
// wider example corpus actually reads data from -- netCDF and shapefiles
// -- so that vfindex.PointStore has a realistic producer, the way
// OOMMF's mesh and field-reading code fed Vf_BoxList in the original.
package vfio

import (
	"fmt"

	"bitbucket.org/ctessum/cdf"
	"github.com/spatialmodel/vfsearch/vfindex"
)

// NetCDFCloudSpec names the variables to pull out of a netCDF file to
// build a point cloud. XVar and YVar are required 1D coordinate
// variables of equal length; ZVar, VXVar, VYVar, VZVar are optional --
// an empty name means "use 0" for that component.
type NetCDFCloudSpec struct {
	XVar, YVar          string
	ZVar                string
	VXVar, VYVar, VZVar string
}

// LoadNetCDFCloud reads the variables named in spec from rw and appends
// one point to store per element, mirroring the per-variable read loop
// in VarGridConfig.LoadCTMData (vargrid.go): it opens the file, reads
// each named variable as a flat float32 buffer via f.Reader, and widens
// it to float64.
func LoadNetCDFCloud(rw cdf.ReaderWriterAt, spec NetCDFCloudSpec, store *vfindex.PointStore) (int, error) {
	f, err := cdf.Open(rw)
	if err != nil {
		return 0, fmt.Errorf("vfio: opening netcdf cloud: %w", err)
	}

	xs, err := readFloats(f, spec.XVar)
	if err != nil {
		return 0, fmt.Errorf("vfio: reading %s: %w", spec.XVar, err)
	}
	ys, err := readFloats(f, spec.YVar)
	if err != nil {
		return 0, fmt.Errorf("vfio: reading %s: %w", spec.YVar, err)
	}
	if len(xs) != len(ys) {
		return 0, fmt.Errorf("vfio: %s has %d elements but %s has %d", spec.XVar, len(xs), spec.YVar, len(ys))
	}
	n := len(xs)

	zs, err := readOptional(f, spec.ZVar, n)
	if err != nil {
		return 0, err
	}
	vxs, err := readOptional(f, spec.VXVar, n)
	if err != nil {
		return 0, err
	}
	vys, err := readOptional(f, spec.VYVar, n)
	if err != nil {
		return 0, err
	}
	vzs, err := readOptional(f, spec.VZVar, n)
	if err != nil {
		return 0, err
	}

	for i := 0; i < n; i++ {
		store.AddPoint(
			vfindex.Location{X: xs[i], Y: ys[i], Z: zs[i]},
			vfindex.Value{VX: vxs[i], VY: vys[i], VZ: vzs[i]},
		)
	}
	return n, nil
}

func readOptional(f *cdf.File, name string, n int) ([]float64, error) {
	if name == "" {
		return make([]float64, n), nil
	}
	vals, err := readFloats(f, name)
	if err != nil {
		return nil, fmt.Errorf("vfio: reading %s: %w", name, err)
	}
	if len(vals) != n {
		return nil, fmt.Errorf("vfio: %s has %d elements, want %d", name, len(vals), n)
	}
	return vals, nil
}

func readFloats(f *cdf.File, name string) ([]float64, error) {
	dims := f.Header.Lengths(name)
	n := 1
	for _, d := range dims {
		n *= d
	}
	r := f.Reader(name, nil, nil)
	tmp := make([]float32, n)
	if _, err := r.Read(tmp); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i, v := range tmp {
		out[i] = float64(v)
	}
	return out, nil
}
