package resample

import (
	"math"
	"testing"

	"github.com/spatialmodel/vfsearch/vfindex"
)

func TestResampleVXComponent(t *testing.T) {
	query := vfindex.NewQueryAPI()
	query.AddPoint(vfindex.Location{X: 0, Y: 0}, vfindex.Value{VX: 1})
	query.AddPoint(vfindex.Location{X: 10, Y: 10}, vfindex.Value{VX: 2})
	if err := query.Refine(); err != nil {
		t.Fatal(err)
	}

	grid := Grid{Xmin: 0, Ymin: 0, Xmax: 10, Ymax: 10, Nx: 2, Ny: 1}
	result, err := Resample(query, grid, VX)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Data.Elements) != 2 {
		t.Fatalf("expected 2 output cells, got %d", len(result.Data.Elements))
	}
	// cell 0 centre (2.5,5) nearer to (0,0); cell 1 centre (7.5,5) nearer to (10,10)
	if result.Data.Elements[0] != 1 {
		t.Errorf("cell 0 VX = %v, want 1", result.Data.Elements[0])
	}
	if result.Data.Elements[1] != 2 {
		t.Errorf("cell 1 VX = %v, want 2", result.Data.Elements[1])
	}
	wantMean := 1.5
	if math.Abs(result.Mean-wantMean) > 1e-9 {
		t.Errorf("Mean = %v, want %v", result.Mean, wantMean)
	}
}

func TestResampleDistanceXY(t *testing.T) {
	query := vfindex.NewQueryAPI()
	query.AddPoint(vfindex.Location{X: 0, Y: 0}, vfindex.Value{})
	// Widen the region so the output cell centre is inside it.
	query.ExpandRegion(vfindex.Region{Xmin: 0, Ymin: 0, Xmax: 10, Ymax: 10})
	if err := query.Refine(); err != nil {
		t.Fatal(err)
	}

	// A single output cell centred at (5,5), 5 units from the only point
	// on each axis: Euclidean distance is sqrt(50), not squared distance.
	grid := Grid{Xmin: 0, Ymin: 0, Xmax: 10, Ymax: 10, Nx: 1, Ny: 1}
	result, err := Resample(query, grid, DistanceXY)
	if err != nil {
		t.Fatal(err)
	}
	wantDist := math.Sqrt(50)
	if math.Abs(result.Data.Elements[0]-wantDist) > 1e-9 {
		t.Errorf("DistanceXY = %v, want %v", result.Data.Elements[0], wantDist)
	}
	if math.Abs(result.Mean-wantDist) > 1e-9 {
		t.Errorf("Mean = %v, want %v", result.Mean, wantDist)
	}
}

func TestResampleRejectsEmptyGrid(t *testing.T) {
	query := vfindex.NewQueryAPI()
	query.AddPoint(vfindex.Location{X: 0, Y: 0}, vfindex.Value{})
	if err := query.Refine(); err != nil {
		t.Fatal(err)
	}
	if _, err := Resample(query, Grid{Nx: 0, Ny: 1}, DistanceXY); err == nil {
		t.Errorf("expected an error for a zero-width grid")
	}
}
