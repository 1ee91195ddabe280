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

// Region is an axis-aligned bounding rectangle in the XY plane.
type Region struct {
	Xmin, Ymin, Xmax, Ymax float64
}

// Width returns Xmax - Xmin.
func (r Region) Width() float64 { return r.Xmax - r.Xmin }

// Height returns Ymax - Ymin.
func (r Region) Height() float64 { return r.Ymax - r.Ymin }

// PointStore owns an append-only sequence of PointEntry, indexed 0..N-1,
// plus the bounding rectangle that tracks (or has been explicitly set to
// contain) every inserted location. Indices are stable for the lifetime of
// the store; there is no compaction.
type PointStore struct {
	entries []PointEntry
	region  Region

	// onInvalidate is called whenever a mutation requires the owning
	// SearchIndex to rebuild. It is nil until a SearchIndex attaches
	// itself via PointStore.watch.
	onInvalidate func()
}

// NewPointStore returns an empty PointStore with region (0,0,0,0).
func NewPointStore() *PointStore {
	return &PointStore{}
}

// watch registers a callback invoked on every mutation that invalidates a
// derived SearchIndex. Only one watcher is supported, matching the
// one-SearchIndex-per-PointStore usage pattern.
func (s *PointStore) watch(f func()) { s.onInvalidate = f }

func (s *PointStore) invalidate() {
	if s.onInvalidate != nil {
		s.onInvalidate()
	}
}

// Size returns the number of stored entries.
func (s *PointStore) Size() int { return len(s.entries) }

// Region returns the current bounding rectangle.
func (s *PointStore) Region() Region { return s.region }

// AddPoint appends one PointEntry and expands the bounding rectangle to
// contain (loc.X, loc.Y). Runs in amortised O(1). Marks any attached
// SearchIndex stale.
func (s *PointStore) AddPoint(loc Location, val Value) int {
	if len(s.entries) == 0 {
		s.region = Region{loc.X, loc.Y, loc.X, loc.Y}
	} else {
		if loc.X < s.region.Xmin {
			s.region.Xmin = loc.X
		}
		if loc.X > s.region.Xmax {
			s.region.Xmax = loc.X
		}
		if loc.Y < s.region.Ymin {
			s.region.Ymin = loc.Y
		}
		if loc.Y > s.region.Ymax {
			s.region.Ymax = loc.Y
		}
	}
	s.entries = append(s.entries, PointEntry{Location: loc, Value: val})
	s.invalidate()
	return len(s.entries) - 1
}

// Get returns the location, value, and current select count for index.
func (s *PointStore) Get(index int) (Location, Value, int, error) {
	if index < 0 || index >= len(s.entries) {
		return Location{}, Value{}, 0, fmt.Errorf("vfindex: Get(%d): %w", index, ErrInvalidIndex)
	}
	e := &s.entries[index]
	return e.Location, e.Value, e.SelectCount, nil
}

// SetValue replaces the value payload at index. Location is immutable
// after insertion, so this does not invalidate any attached SearchIndex.
func (s *PointStore) SetValue(index int, val Value) error {
	if index < 0 || index >= len(s.entries) {
		return fmt.Errorf("vfindex: SetValue(%d): %w", index, ErrInvalidIndex)
	}
	s.entries[index].Value = val
	return nil
}

// SetRegion overrides the bounding rectangle explicitly. Requires
// Xmin <= Xmax and Ymin <= Ymax. Marks any attached SearchIndex stale.
func (s *PointStore) SetRegion(r Region) error {
	if r.Xmin > r.Xmax || r.Ymin > r.Ymax {
		return fmt.Errorf("vfindex: SetRegion(%+v): %w", r, ErrInvalidRegion)
	}
	s.region = r
	s.invalidate()
	return nil
}

// ExpandRegion unions r into the current bounding rectangle; it only
// widens, never shrinks. Marks any attached SearchIndex stale.
func (s *PointStore) ExpandRegion(r Region) {
	if r.Xmin < s.region.Xmin {
		s.region.Xmin = r.Xmin
	}
	if r.Xmax > s.region.Xmax {
		s.region.Xmax = r.Xmax
	}
	if r.Ymin < s.region.Ymin {
		s.region.Ymin = r.Ymin
	}
	if r.Ymax > s.region.Ymax {
		s.region.Ymax = r.Ymax
	}
	s.invalidate()
}

// InflateRegion scales the bounding rectangle about its centre by xscale
// and yscale (1.0 means no change). Marks any attached SearchIndex stale.
func (s *PointStore) InflateRegion(xscale, yscale float64) {
	xOldSize := s.region.Width()
	xNewSize := xOldSize * xscale
	yOldSize := s.region.Height()
	yNewSize := yOldSize * yscale
	s.AddMargin((xNewSize-xOldSize)/2., (yNewSize-yOldSize)/2.)
}

// AddMargin adds absolute padding xmargin/ymargin on all sides. Marks any
// attached SearchIndex stale.
func (s *PointStore) AddMargin(xmargin, ymargin float64) {
	s.region.Xmin -= xmargin
	s.region.Xmax += xmargin
	s.region.Ymin -= ymargin
	s.region.Ymax += ymargin
	s.invalidate()
}

// Clear discards all entries and resets the region to (0,0,0,0).
func (s *PointStore) Clear() {
	s.entries = nil
	s.region = Region{}
	s.invalidate()
}

// clearSelectCounts resets every entry's SelectCount to 0.
func (s *PointStore) clearSelectCounts() {
	for i := range s.entries {
		s.entries[i].SelectCount = 0
	}
}
