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

import "fmt"

// QueryAPI is the client-facing facade over a PointStore and its
// SearchIndex: build (AddPoint / SetRegion / Refine*), query (ClosestXY),
// iteration, and statistics. It is the only type most callers need.
type QueryAPI struct {
	Store *PointStore
	Index *SearchIndex

	iterPos int
}

// NewQueryAPI returns an empty, ready-to-use QueryAPI.
func NewQueryAPI() *QueryAPI {
	store := NewPointStore()
	return &QueryAPI{Store: store, Index: NewSearchIndex(store)}
}

// AddPoint appends one located vector and returns its stable index.
func (q *QueryAPI) AddPoint(loc Location, val Value) int {
	return q.Store.AddPoint(loc, val)
}

// Size returns the number of stored points.
func (q *QueryAPI) Size() int { return q.Store.Size() }

// SetRegion overrides the bounding rectangle explicitly.
func (q *QueryAPI) SetRegion(r Region) error { return q.Store.SetRegion(r) }

// ExpandRegion unions r into the current bounding rectangle.
func (q *QueryAPI) ExpandRegion(r Region) { q.Store.ExpandRegion(r) }

// InflateRegion scales the bounding rectangle about its centre.
func (q *QueryAPI) InflateRegion(xscale, yscale float64) { q.Store.InflateRegion(xscale, yscale) }

// AddMargin adds absolute padding to the bounding rectangle.
func (q *QueryAPI) AddMargin(xmargin, ymargin float64) { q.Store.AddMargin(xmargin, ymargin) }

// Refine builds (or rebuilds) the search grid using the default
// refinement level.
func (q *QueryAPI) Refine() error { return q.Index.Refine() }

// RefineTimes builds the search grid and halves it k times.
func (q *QueryAPI) RefineTimes(k int) error { return q.Index.RefineTimes(k) }

// RefineUntil builds the search grid, halving repeatedly until one of the
// three thresholds is met.
func (q *QueryAPI) RefineUntil(maxCells int, minAvgInCount, minAvgListLen float64) error {
	return q.Index.RefineUntil(maxCells, minAvgInCount, minAvgListLen)
}

// Clear discards all points and any search grid, resetting the region to
// (0,0,0,0).
func (q *QueryAPI) Clear() {
	q.Store.Clear()
	q.Index.DeleteRefinement()
}

// ClosestXY returns the stored index of the entry in the cloud closest
// (in 2D XY Euclidean distance) to (x, y), along with that entry's
// SelectCount after this call's increment. If the index is stale, a
// default refinement is performed first; ClosestXY fails with
// ErrEmptyStore if no points have been added, or ErrOutOfRegion if
// (x, y) falls outside the current bounding rectangle.
func (q *QueryAPI) ClosestXY(x, y float64) (index int, selectCount int, err error) {
	if q.Store.Size() < 1 {
		return 0, 0, fmt.Errorf("vfindex: ClosestXY(%v,%v): %w", x, y, ErrEmptyStore)
	}
	q.Index.makeValid()
	cell, ok := q.Index.cellFor(x, y)
	if !ok {
		return 0, 0, fmt.Errorf("vfindex: ClosestXY(%v,%v): %w", x, y, ErrOutOfRegion)
	}
	best, _ := cell.closest(q.Store, x, y)
	q.Store.entries[best].SelectCount++
	return best, q.Store.entries[best].SelectCount, nil
}

// ClosestXYReadOnly is identical to ClosestXY but does not increment the
// winning entry's SelectCount, so it may safely be called from multiple
// goroutines sharing one already-built, read-only QueryAPI. It does not trigger an
// implicit refinement: the caller must have already refined explicitly,
// since concurrent callers must not race on a stale-index rebuild.
func (q *QueryAPI) ClosestXYReadOnly(x, y float64) (index int, err error) {
	if q.Store.Size() < 1 {
		return 0, fmt.Errorf("vfindex: ClosestXYReadOnly(%v,%v): %w", x, y, ErrEmptyStore)
	}
	if !q.Index.Valid() {
		return 0, fmt.Errorf("vfindex: ClosestXYReadOnly(%v,%v): index is stale; call Refine explicitly before concurrent read-only queries", x, y)
	}
	cell, ok := q.Index.cellFor(x, y)
	if !ok {
		return 0, fmt.Errorf("vfindex: ClosestXYReadOnly(%v,%v): %w", x, y, ErrOutOfRegion)
	}
	best, _ := cell.closest(q.Store, x, y)
	return best, nil
}

// ClearSelectCounts resets every entry's SelectCount to 0.
func (q *QueryAPI) ClearSelectCounts() { q.Store.clearSelectCounts() }

// IterWhole calls visit once for every PointEntry in insertion order,
// incrementing each entry's SelectCount as it is visited.
func (q *QueryAPI) IterWhole(visit func(index int, loc Location, val Value)) {
	for i := range q.Store.entries {
		q.Store.entries[i].SelectCount++
		e := &q.Store.entries[i]
		visit(i, e.Location, e.Value)
	}
}

// IndexFirst returns the opaque key for the first entry (insertion order),
// or ok=false if the store is empty. IndexFirst/IndexNext do not touch
// SelectCount.
func (q *QueryAPI) IndexFirst() (key int, ok bool) {
	if q.Store.Size() == 0 {
		return 0, false
	}
	return 0, true
}

// IndexNext returns the key following key, or ok=false at end of store.
func (q *QueryAPI) IndexNext(key int) (next int, ok bool) {
	if key+1 >= q.Store.Size() {
		return 0, false
	}
	return key + 1, true
}

// Stats summarizes the current search grid.
type Stats struct {
	CellCount       int
	AveInCount      float64
	AveListLen      float64
	WastedSpaceByte int64
}

// Stats returns the current grid's statistics, refining first if stale.
func (q *QueryAPI) Stats() Stats {
	q.Index.makeValid()
	return Stats{
		CellCount:       q.Index.CellCount(),
		AveInCount:      q.Index.aveInCount,
		AveListLen:      q.Index.aveListCount,
		WastedSpaceByte: q.Index.wastedSpaceEstimate(),
	}
}
