package rpcsvc

import (
	"testing"

	"github.com/spatialmodel/vfsearch/vfindex"
)

func TestNewServerRequiresRefinedIndex(t *testing.T) {
	query := vfindex.NewQueryAPI()
	query.AddPoint(vfindex.Location{X: 0, Y: 0}, vfindex.Value{})
	if _, err := NewServer(query); err == nil {
		t.Errorf("expected an error constructing a Server over an unrefined index")
	}
}

func TestServerClosest(t *testing.T) {
	query := vfindex.NewQueryAPI()
	query.AddPoint(vfindex.Location{X: 0, Y: 0}, vfindex.Value{})
	query.AddPoint(vfindex.Location{X: 100, Y: 100}, vfindex.Value{})
	if err := query.Refine(); err != nil {
		t.Fatal(err)
	}

	srv, err := NewServer(query)
	if err != nil {
		t.Fatal(err)
	}

	var reply ClosestReply
	if err := srv.Closest(&ClosestRequest{X: 1, Y: 1}, &reply); err != nil {
		t.Fatal(err)
	}
	if reply.Index != 0 {
		t.Errorf("Closest(1,1).Index = %d, want 0", reply.Index)
	}

	var stats vfindex.Stats
	if err := srv.Stats(&StatsRequest{}, &stats); err != nil {
		t.Fatal(err)
	}
	if stats.CellCount <= 0 {
		t.Errorf("Stats().CellCount = %d, want > 0", stats.CellCount)
	}
}
