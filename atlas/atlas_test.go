package atlas

import (
	"testing"

	"github.com/ctessum/geom"
)

func square(xmin, ymin, xmax, ymax float64) geom.Polygon {
	return geom.Polygon{{
		{X: xmin, Y: ymin},
		{X: xmax, Y: ymin},
		{X: xmax, Y: ymax},
		{X: xmin, Y: ymax},
		{X: xmin, Y: ymin},
	}}
}

func TestRegionIDInsideOutside(t *testing.T) {
	a := New()
	a.AddRegion(1, square(0, 0, 10, 10))
	a.AddRegion(2, square(20, 20, 30, 30))

	id, ok := a.RegionID(5, 5)
	if !ok || id != 1 {
		t.Errorf("RegionID(5,5) = (%d,%v), want (1,true)", id, ok)
	}
	id, ok = a.RegionID(25, 25)
	if !ok || id != 2 {
		t.Errorf("RegionID(25,25) = (%d,%v), want (2,true)", id, ok)
	}
	_, ok = a.RegionID(15, 15)
	if ok {
		t.Errorf("RegionID(15,15) should not match any region")
	}
}

func TestRegionIDEmptyAtlas(t *testing.T) {
	a := New()
	if _, ok := a.RegionID(0, 0); ok {
		t.Errorf("empty atlas should never match")
	}
}

func TestContainsPointBoundary(t *testing.T) {
	poly := square(0, 0, 10, 10)
	if !containsPoint(poly, 0.0001, 5) {
		t.Errorf("point just inside the left edge should be contained")
	}
	if containsPoint(poly, -0.0001, 5) {
		t.Errorf("point just outside the left edge should not be contained")
	}
}
