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

// intSize is the assumed width, in bytes, of one CellList element for the
// purposes of the wasted-space estimate below.
const intSize = 8

// wastedSpaceEstimate approximates the memory tied up in over-allocated
// CellList backing arrays: the gap between each slice's capacity and its
// length. A growth-block
// heuristic is a memory-layout choice, not a semantic one; only
// this observable statistic is preserved — callers must not rely on the
// exact byte count, only that it tracks allocation slack.
func (idx *SearchIndex) wastedSpaceEstimate() int64 {
	var waste int64
	for i := range idx.cells {
		c := &idx.cells[i]
		waste += int64(cap(c.List)-len(c.List)) * intSize
	}
	return waste
}

// blockSize applies an optional allocation-sizing heuristic:
// ceil(parentListLen * childArea / parentArea) / 2, minimum 1. It exists
// to document the heuristic; Go's growable slices make it unnecessary for
// correctness, so it is not wired into buildChildCell, which relies on
// append's own growth strategy instead.
func blockSize(parentListLen int, childArea, parentArea float64) int {
	if parentArea <= 0 || childArea <= 0 {
		return 1
	}
	frac := childArea / parentArea
	n := int(frac*float64(parentListLen) + 0.999999) // ceil
	n /= 2
	if n < 1 {
		return 1
	}
	return n
}
