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

// Location is a 3D position. Only X and Y participate in the nearest-point
// search; Z is opaque payload returned to the caller but never compared.
type Location struct {
	X, Y, Z float64
}

// Value is a 3-component vector payload attached to a Location.
type Value struct {
	VX, VY, VZ float64
}

// PointEntry is one located vector plus an observability counter. Entries
// are created exclusively by PointStore.AddPoint, never deleted
// individually, and addressed by a stable, dense index assigned at
// insertion time.
type PointEntry struct {
	Location Location
	Value    Value

	// SelectCount is incremented by QueryAPI.ClosestXY and by whole-list
	// iteration. It never affects search results; it exists purely for
	// observability of which points get selected how often.
	SelectCount int
}

// distSq2D returns the squared 2D Euclidean distance between e's location
// and (x, y), ignoring Z. Squared distances are compared throughout this
// package to avoid unnecessary sqrt calls on the hot query path.
func (e *PointEntry) distSq2D(x, y float64) float64 {
	dx := e.Location.X - x
	dy := e.Location.Y - y
	return dx*dx + dy*dy
}
