package postfilter

import (
	"map_router/pkg/forest"
	"testing"
)

func TestByMinComponentSizeDropsSmall(t *testing.T) {
	edges := []forest.AcceptedEdge{
		// component A: 1-2-3 (3 members)
		{U: 1, V: 2, Length: 10},
		{U: 2, V: 3, Length: 10},
		// component B: 4-5 (2 members)
		{U: 4, V: 5, Length: 10},
	}

	got := ByMinComponentSize(edges, 3)
	if len(got) != 2 {
		t.Fatalf("got %d edges, want 2", len(got))
	}
	for _, e := range got {
		if e.U == 4 || e.V == 4 {
			t.Errorf("component B edge survived: %+v", e)
		}
	}
}

func TestByMinComponentSizeNoop(t *testing.T) {
	edges := []forest.AcceptedEdge{{U: 1, V: 2, Length: 10}}
	got := ByMinComponentSize(edges, 1)
	if len(got) != 1 {
		t.Errorf("got %d edges, want 1 (no-op)", len(got))
	}
	got = ByMinComponentSize(edges, 0)
	if len(got) != 1 {
		t.Errorf("got %d edges, want 1 (no-op)", len(got))
	}
}

func TestByMinComponentSizeEmpty(t *testing.T) {
	got := ByMinComponentSize(nil, 5)
	if len(got) != 0 {
		t.Errorf("got %d edges, want 0", len(got))
	}
}

func TestByMinComponentSizeAllDropped(t *testing.T) {
	edges := []forest.AcceptedEdge{
		{U: 1, V: 2, Length: 10},
		{U: 3, V: 4, Length: 10},
	}
	got := ByMinComponentSize(edges, 10)
	if len(got) != 0 {
		t.Errorf("got %d edges, want 0", len(got))
	}
}
