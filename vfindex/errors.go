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

// Package vfindex implements a sub-linear "nearest located point" search
// over an unstructured 2D cloud of located vectors. Points are appended to
// a PointStore, a SearchIndex is built by adaptive halving refinement of
// the cloud's bounding rectangle, and QueryAPI answers repeated
// closest_xy queries against that fixed cloud.
package vfindex

import "errors"

// Sentinel errors returned by the vfindex package. Use errors.Is to test
// for a particular kind; functions that return one of these wrap it with
// call-specific context via fmt.Errorf("vfindex: ...: %w", ...).
var (
	// ErrInvalidRegion is returned by SetRegion when xmin > xmax or
	// ymin > ymax.
	ErrInvalidRegion = errors.New("invalid region: min must not exceed max")

	// ErrInvalidIndex is returned by Get and SetValue when the index is
	// outside [0, N).
	ErrInvalidIndex = errors.New("index out of range")

	// ErrInvalidArgument is returned by RefineUntil when none of its
	// three thresholds is positive, and by RefineTimes for a negative
	// level.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRegion is returned by ClosestXY when the query point falls
	// outside the current bounding rectangle.
	ErrOutOfRegion = errors.New("query point outside indexed region")

	// ErrEmptyStore is returned by ClosestXY when no points have been
	// added.
	ErrEmptyStore = errors.New("point store is empty")

	// ErrOutOfMemory exists for API completeness with the allocation-
	// failure error kind AddPoint and Refine are specified to report. Go's
	// runtime panics rather than returning an error from a failed append
	// or make, so no function in this package currently has a path that
	// returns it.
	ErrOutOfMemory = errors.New("allocation failed")
)
