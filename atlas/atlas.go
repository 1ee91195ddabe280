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

// Package atlas is a minimal region-id oracle: it answers
// region_id(point) -> integer for a set of polygons registered under
// caller-chosen ids. It stands in for OOMMF's Oxs_Atlas family (box,
// ellipse, ellipsoid, image, multi atlases) without attempting to
// reproduce any of their geometry -- only the query shape meshbound
// needs.
package atlas

import (
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// region pairs a polygon with the integer id callers should see when a
// point falls inside it.
type region struct {
	geom.Polygon
	id int
}

// RegionAtlas answers region-id queries over a set of named regions
// indexed by an rtree, the same index type and construction
// (rtree.NewTree(25, 50)) vargrid.go uses for its CTM grid, population,
// and mortality-rate trees.
type RegionAtlas struct {
	tree *rtree.Rtree
}

// New returns an empty RegionAtlas.
func New() *RegionAtlas {
	return &RegionAtlas{tree: rtree.NewTree(25, 50)}
}

// AddRegion indexes poly under id. Later regions do not replace earlier
// ones that overlap; RegionID returns the first match the rtree yields,
// which -- like vfindex's tie-breaking -- is deterministic but not
// specified beyond that.
func (a *RegionAtlas) AddRegion(id int, poly geom.Polygon) {
	a.tree.Insert(&region{Polygon: poly, id: id})
}

// RegionID returns the id of a region containing (x, y), or ok=false if
// no indexed region contains the point.
func (a *RegionAtlas) RegionID(x, y float64) (id int, ok bool) {
	pt := geom.Point{X: x, Y: y}
	bounds := &geom.Bounds{Min: pt, Max: pt}
	for _, hit := range a.tree.SearchIntersect(bounds) {
		r := hit.(*region)
		if containsPoint(r.Polygon, x, y) {
			return r.id, true
		}
	}
	return 0, false
}

// containsPoint applies the standard ray-casting test to poly's outer
// ring. Interior rings (holes) are not evaluated: RegionAtlas only needs
// to disambiguate between non-overlapping or simply-nested regions for
// meshbound's grouping, not to reproduce full polygon-with-holes
// semantics.
func containsPoint(poly geom.Polygon, x, y float64) bool {
	if len(poly) == 0 {
		return false
	}
	ring := poly[0]
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := ring[i], ring[j]
		if (pi.Y > y) != (pj.Y > y) {
			xCross := (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if x < xCross {
				inside = !inside
			}
		}
	}
	return inside
}
