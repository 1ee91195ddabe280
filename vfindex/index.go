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

import (
	"fmt"
	"math"
)

// DefaultRefineLevel is the default number of halving refinements applied
// when a query triggers an implicit rebuild. 4**DefaultRefineLevel
// is the target cell count, i.e. up to ~1024 cells at the default of 5.
const DefaultRefineLevel = 5

// SearchIndex is a uniform Nx x Ny grid of Cells tiling a PointStore's
// bounding rectangle, built by successive halving refinements from a
// single root Cell. It is build-once/query-many: mutating the PointStore
// marks it stale, and the next Refine* call (or an implicit rebuild
// triggered by ClosestXY) rebuilds it from scratch.
type SearchIndex struct {
	store *PointStore

	cells        []Cell // row-major, size Nx*Ny
	nx, ny       int
	dx, dy       float64
	valid        bool
	aveInCount   float64
	aveListCount float64

	// onImplicitRefine, if non-nil, is called with a diagnostic message
	// whenever ClosestXY must perform an implicit default refinement
	// because the index was stale. It is never called for an explicit
	// Refine* call. This is a non-error diagnostic, not logged
	// by the core itself.
	onImplicitRefine func(string)
}

// NewSearchIndex returns a SearchIndex over store. The index starts
// invalid (Nx = Ny = 0); call Refine, RefineTimes, or RefineUntil to
// build it, or let the first ClosestXY call trigger an implicit default
// refinement.
func NewSearchIndex(store *PointStore) *SearchIndex {
	idx := &SearchIndex{store: store}
	store.watch(idx.invalidate)
	return idx
}

// SetDiagnosticLog installs a callback invoked with a short message
// whenever an implicit refinement occurs. Pass nil (the default) to
// disable it silently: absence of a callback means silent success.
func (idx *SearchIndex) SetDiagnosticLog(f func(string)) { idx.onImplicitRefine = f }

func (idx *SearchIndex) invalidate() { idx.valid = false }

// Valid reports whether the current grid reflects the current PointStore
// state.
func (idx *SearchIndex) Valid() bool { return idx.valid }

// CellCount returns Nx*Ny.
func (idx *SearchIndex) CellCount() int { return idx.nx * idx.ny }

// AveInCount returns the mean InCount across all cells, refining first if
// stale.
func (idx *SearchIndex) AveInCount() float64 {
	idx.makeValid()
	return idx.aveInCount
}

// AveListLen returns the mean CellList length across all cells, refining
// first if stale.
func (idx *SearchIndex) AveListLen() float64 {
	idx.makeValid()
	return idx.aveListCount
}

// makeValid performs a default refinement if the grid is stale. Called
// internally before any read that depends on the current grid.
func (idx *SearchIndex) makeValid() {
	if idx.valid {
		return
	}
	if idx.onImplicitRefine != nil {
		idx.onImplicitRefine("vfindex: implicit default refinement triggered by a read on a stale index")
	}
	idx.RefineTimes(DefaultRefineLevel)
}

// initRoot discards any existing grid and builds the single root cell
// covering the PointStore's current region.
func (idx *SearchIndex) initRoot() {
	region := idx.store.Region()
	idx.nx, idx.ny = 1, 1
	idx.dx = region.Width()
	idx.dy = region.Height()
	root := buildRootCell(region, idx.store)
	idx.cells = []Cell{*root}
	idx.aveListCount = float64(len(root.List))
	idx.aveInCount = float64(root.InCount)
	idx.valid = true
}

// DeleteRefinement discards any current grid, leaving the index stale
// (Nx = Ny = 0).
func (idx *SearchIndex) DeleteRefinement() {
	idx.cells = nil
	idx.nx, idx.ny = 0, 0
	idx.dx, idx.dy = 0, 0
	idx.valid = false
}

// refineOnce halves one or both axes of every Cell, per the aspect-ratio
// rule: cut only X if dx > 1.5*dy, only Y if dy > 1.5*dx,
// otherwise cut both. Each child Cell is built from exactly one parent
// tile (the one containing the child's centre); when only one axis is
// split, two adjacent children share a parent.
func (idx *SearchIndex) refineOnce() {
	region := idx.store.Region()

	newNx, newNy := idx.nx, idx.ny
	bxstep, bystep := 1, 1
	newDx, newDy := idx.dx, idx.dy
	switch {
	case idx.dx > 1.5*idx.dy:
		newNx *= 2
		newDx /= 2
		bxstep = 2
	case idx.dy > 1.5*idx.dx:
		newNy *= 2
		newDy /= 2
		bystep = 2
	default:
		newNx *= 2
		newDx /= 2
		bxstep = 2
		newNy *= 2
		newDy /= 2
		bystep = 2
	}

	newCells := make([]Cell, newNx*newNy)
	var inTotal, listTotal int

	x1 := region.Xmin
	for i := 0; i < newNx; i++ {
		x2 := region.Xmin + float64(i+1)*newDx // minimize roundoff error
		y1 := region.Ymin
		parentCol := (i / bxstep) * idx.ny
		for j := 0; j < newNy; j++ {
			y2 := region.Ymin + float64(j+1)*newDy // minimize roundoff error
			parentRow := j / bystep
			parent := &idx.cells[parentCol+parentRow]
			rect := Region{x1 - boxEps, y1 - boxEps, x2 + boxEps, y2 + boxEps}
			child := buildChildCell(rect, idx.store, parent.List)
			newCells[i*newNy+j] = *child
			inTotal += child.InCount
			listTotal += len(child.List)
			y1 = y2
		}
		x1 = x2
	}

	idx.cells = newCells
	idx.nx, idx.ny = newNx, newNy
	idx.dx, idx.dy = newDx, newDy
	n := float64(newNx * newNy)
	idx.aveListCount = float64(listTotal) / n
	idx.aveInCount = float64(inTotal) / n
	idx.valid = true
}

// RefineTimes builds the grid (from scratch if stale) and then applies
// refineOnce k times. RefineTimes(0) on an already-valid grid is a no-op.
func (idx *SearchIndex) RefineTimes(k int) error {
	if k < 0 {
		return fmt.Errorf("vfindex: RefineTimes(%d): %w", k, ErrInvalidArgument)
	}
	if !idx.valid {
		idx.initRoot()
	}
	for ; k > 0; k-- {
		idx.refineOnce()
	}
	return nil
}

// Refine is an alias for RefineTimes(DefaultRefineLevel), the default
// refinement depth when the caller does not specify anything more precise.
func (idx *SearchIndex) Refine() error { return idx.RefineTimes(DefaultRefineLevel) }

// RefineUntil applies refineOnce repeatedly until the cell count reaches
// maxCells, the average InCount drops below minAvgInCount, or the average
// CellList length drops below minAvgListLen — whichever comes first. At
// least one threshold must be positive. Because each step multiplies cell
// count by 2 or 4, the final count may overshoot maxCells by up to 4x.
func (idx *SearchIndex) RefineUntil(maxCells int, minAvgInCount, minAvgListLen float64) error {
	if maxCells <= 0 && minAvgInCount <= 0 && minAvgListLen <= 0 {
		return fmt.Errorf("vfindex: RefineUntil: %w: at least one threshold must be positive", ErrInvalidArgument)
	}
	if !idx.valid {
		idx.initRoot()
	}
	for {
		if maxCells > 0 && idx.CellCount() >= maxCells {
			break
		}
		if minAvgInCount > 0 && idx.aveInCount < minAvgInCount {
			break
		}
		if minAvgListLen > 0 && idx.aveListCount < minAvgListLen {
			break
		}
		idx.refineOnce()
	}
	return nil
}

// cellFor converts (x, y) into the owning cell, or ok=false if outside
// the grid. The region is closed: points on its upper edges belong to the
// last column or row, and a zero-width or zero-height region still
// accepts points lying on it.
func (idx *SearchIndex) cellFor(x, y float64) (cell *Cell, ok bool) {
	region := idx.store.Region()
	if !(x >= region.Xmin && x <= region.Xmax && y >= region.Ymin && y <= region.Ymax) {
		return nil, false
	}
	i, j := 0, 0
	if idx.dx > 0 {
		i = int(math.Floor((x - region.Xmin) / idx.dx))
	}
	if idx.dy > 0 {
		j = int(math.Floor((y - region.Ymin) / idx.dy))
	}
	if i >= idx.nx {
		i = idx.nx - 1
	}
	if j >= idx.ny {
		j = idx.ny - 1
	}
	return &idx.cells[i*idx.ny+j], true
}
