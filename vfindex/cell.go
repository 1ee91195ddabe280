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

package vfindex

import "math"

// boxEps absorbs round-off error at shared cell boundaries: adjacent
// cells overlap by this much on each interior edge so a point that falls
// exactly on a boundary is not silently dropped from either cell's
// CellList. Matches the original C++ Vf_BoxEps.
const boxEps = 1e-14

// CellList is an ordered sequence of PointStore indices: a superset of the
// entries whose locations lie inside the owning Cell's rectangle, refined
// so that every entry anywhere in the PointStore that could be the
// XY-nearest entry to some point inside the Cell's rectangle is included.
// It is built once per refinement event and never mutated afterward,
// only replaced.
type CellList []int

// Cell is one rectangular subdivision of the search region, with its
// extents, an owned CellList, and the count of CellList entries whose
// location lies inside the rectangle (within boxEps of the boundary).
type Cell struct {
	Region  Region
	List    CellList
	InCount int
}

func (c *Cell) isIn2D(x, y float64) bool {
	return x >= c.Region.Xmin && x <= c.Region.Xmax && y >= c.Region.Ymin && y <= c.Region.Ymax
}

// buildRootCell constructs the single root Cell: its CellList enumerates
// every entry index 0..N-1, its rectangle is the full region, and InCount
// counts entries whose location falls inside that rectangle.
func buildRootCell(region Region, store *PointStore) *Cell {
	n := store.Size()
	c := &Cell{Region: region, List: make(CellList, n)}
	for i := 0; i < n; i++ {
		c.List[i] = i
		e := &store.entries[i]
		if c.isIn2D(e.Location.X, e.Location.Y) {
			c.InCount++
		}
	}
	return c
}

// buildChildCell produces a child Cell whose rectangle is rect and whose
// CellList is the refined subset of parent's CellList satisfying the
// nearest-neighbour correctness invariant: for every query point q in
// rect and every entry e in the PointStore, some entry e' in the child's
// CellList has d(q, e') <= d(q, e).
//
// This is the refinement operator, implemented as a three-phase
// correctness filter:
//
//  1. Anchor scan: find the parent-list entry q closest (in squared 2D
//     distance) to rect's centre.
//  2. Slack bound: derive an upper bound "slack" on the distance from any
//     point inside rect to q, using q's offset from the centre plus
//     rect's full extents (not the tighter half-extents) — this
//     reproduces the original source's formula exactly, including its
//     known looseness relative to the tightest possible bound.
//  3. Two-stage pruning: keep a parent entry e iff it passes both a cheap
//     Sup-norm gate (e lies within slack of rect's sides) and an L2 bound
//     (e is no farther than slack+box_rad from rect's centre, reusing the
//     anchor-scan distances). Both tests are necessary — the Sup-norm
//     gate eliminates the bulk cheaply, the L2 bound trims "corner lobe"
//     points the Sup-norm gate lets through.
func buildChildCell(rect Region, store *PointStore, parent CellList) *Cell {
	child := &Cell{Region: rect}
	n := len(parent)
	if n == 0 {
		child.List = CellList{}
		return child
	}

	cx := (rect.Xmin + rect.Xmax) / 2.
	cy := (rect.Ymin + rect.Ymax) / 2.

	distSq := make([]float64, n)
	qi := 0
	qDistSq := 0.0
	for i, idx := range parent {
		d := store.entries[idx].distSq2D(cx, cy)
		distSq[i] = d
		if i == 0 || d < qDistSq {
			qi, qDistSq = i, d
		}
	}

	xdelta := rect.Width()
	ydelta := rect.Height()
	boxRad := math.Sqrt(xdelta*xdelta+ydelta*ydelta) / 2.

	q := &store.entries[parent[qi]]
	xtemp := math.Abs(q.Location.X-cx) + xdelta
	ytemp := math.Abs(q.Location.Y-cy) + ydelta
	slack := math.Sqrt(xtemp*xtemp + ytemp*ytemp)

	supXmin, supXmax := rect.Xmin-slack, rect.Xmax+slack
	supYmin, supYmax := rect.Ymin-slack, rect.Ymax+slack
	l2Rad := slack + boxRad
	l2RadSq := l2Rad * l2Rad

	list := make(CellList, 0, n)
	for i, idx := range parent {
		e := &store.entries[idx]
		px, py := e.Location.X, e.Location.Y
		if px < supXmin || px > supXmax || py < supYmin || py > supYmax {
			continue
		}
		if distSq[i] > l2RadSq {
			continue
		}
		list = append(list, idx)
		if child.isIn2D(px, py) {
			child.InCount++
		}
	}
	child.List = list
	return child
}

// closest scans List linearly and returns the index (into the owning
// PointStore) of the entry with the smallest squared 2D distance to
// (x, y), along with that squared distance. Ties resolve to the first
// entry encountered in List order.
func (c *Cell) closest(store *PointStore, x, y float64) (bestIdx int, bestDistSq float64) {
	bestIdx = c.List[0]
	bestDistSq = store.entries[bestIdx].distSq2D(x, y)
	for _, idx := range c.List[1:] {
		d := store.entries[idx].distSq2D(x, y)
		if d < bestDistSq {
			bestDistSq, bestIdx = d, idx
		}
	}
	return bestIdx, bestDistSq
}
