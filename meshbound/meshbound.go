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

// Package meshbound builds boundary-node lists for a mesh layer: it
// drives repeated vfindex.QueryAPI.ClosestXY calls along a mesh boundary
// and groups the winning node indices by the atlas region they fall in.
package meshbound

import (
	"fmt"

	"github.com/spatialmodel/vfsearch/atlas"
	"github.com/spatialmodel/vfsearch/vfindex"
)

// BoundaryLists maps an atlas region id to the (deduplicated, insertion
// ordered) list of node indices that were the nearest node to some
// boundary sample point in that region.
type BoundaryLists map[int][]int

// BuildBoundaryList samples nodes nearest to each of boundary (a list of
// XY sample points walking the mesh boundary) via query, classifies each
// sample point through regions, and groups the resulting node indices by
// region id. A boundary point whose region can't be classified is
// skipped rather than erroring, since an unclassified boundary sample
// is expected wherever the atlas doesn't cover the full mesh extent.
func BuildBoundaryList(query *vfindex.QueryAPI, regions *atlas.RegionAtlas, boundary []vfindex.Location) (BoundaryLists, error) {
	seen := make(map[int]map[int]bool)
	out := make(BoundaryLists)
	for i, pt := range boundary {
		nodeIdx, _, err := query.ClosestXY(pt.X, pt.Y)
		if err != nil {
			return nil, fmt.Errorf("meshbound: boundary sample %d (%v,%v): %w", i, pt.X, pt.Y, err)
		}
		regionID, ok := regions.RegionID(pt.X, pt.Y)
		if !ok {
			continue
		}
		if seen[regionID] == nil {
			seen[regionID] = make(map[int]bool)
		}
		if !seen[regionID][nodeIdx] {
			seen[regionID][nodeIdx] = true
			out[regionID] = append(out[regionID], nodeIdx)
		}
	}
	return out, nil
}
