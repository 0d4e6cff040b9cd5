package world

import "testing"

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := GenConfig{Seed: 77, MaxDistance: 6, NodesPerRing: 3}
	a := Generate(cfg)
	b := Generate(cfg)

	if len(a.Order) != len(b.Order) {
		t.Fatalf("node counts differ: %d vs %d", len(a.Order), len(b.Order))
	}
	for _, id := range a.Order {
		na, nb := a.Node(id), b.Node(id)
		if nb == nil || *na != *nb {
			t.Fatalf("node %s differs across runs: %+v vs %+v", id, na, nb)
		}
	}
}

func TestGenerateLayout(t *testing.T) {
	cfg := GenConfig{Seed: 1, MaxDistance: 5, NodesPerRing: 4}
	m := Generate(cfg)

	if want := 1 + 5*4; len(m.Order) != want {
		t.Fatalf("node count = %d, want %d", len(m.Order), want)
	}

	home := m.Node("n-00-00")
	if home == nil || home.Distance != 0 || home.Tier != T0 || home.State != NodeDiscovered {
		t.Fatalf("home node = %+v", home)
	}

	for _, id := range m.Order[1:] {
		n := m.Node(id)
		if n.State != NodeUndiscovered {
			t.Fatalf("%s starts %s, want undiscovered", id, n.State)
		}
		if n.Distance < 1 || n.Distance > 5 {
			t.Fatalf("%s distance = %d, out of range", id, n.Distance)
		}
		if n.Risk < 0 || n.Risk > 1 {
			t.Fatalf("%s risk = %v, out of [0,1]", id, n.Risk)
		}
	}
}

func TestRiskGrowsWithDistanceOnAverage(t *testing.T) {
	m := Generate(GenConfig{Seed: 9, MaxDistance: 10, NodesPerRing: 6})

	avg := func(d int) float64 {
		sum, n := 0.0, 0
		for _, id := range m.Order {
			if node := m.Node(id); node.Distance == d {
				sum += node.Risk
				n++
			}
		}
		return sum / float64(n)
	}
	if near, far := avg(1), avg(10); near >= far {
		t.Fatalf("average risk near=%v far=%v, want near < far", near, far)
	}
}

func TestTierBands(t *testing.T) {
	cases := []struct {
		d    int
		tier Tier
	}{
		{0, T0}, {1, T1}, {2, T1}, {3, T2}, {4, T2},
		{5, T3}, {7, T3}, {8, T4}, {9, T4}, {10, T5}, {12, T5},
	}
	for _, c := range cases {
		if got := tierForDistance(c.d); got != c.tier {
			t.Fatalf("distance %d: tier = %s, want %s", c.d, got, c.tier)
		}
	}
}

func TestAdvanceIsMonotonic(t *testing.T) {
	n := &Node{ID: "x", State: NodeDiscovered}

	if n.Advance(NodeUndiscovered) {
		t.Fatal("regressing to undiscovered should be rejected")
	}
	if n.Advance(NodeDiscovered) {
		t.Fatal("advancing to the current state should be rejected")
	}
	if !n.Advance(NodeExplored) {
		t.Fatal("discovered -> explored should succeed")
	}
	if !n.Advance(NodeCleared) {
		t.Fatal("explored -> cleared should succeed")
	}
	if n.Advance(NodeExplored) {
		t.Fatal("cleared -> explored should be rejected")
	}
	if n.State != NodeCleared {
		t.Fatalf("state = %s, want cleared", n.State)
	}
}

func TestNodesWithinAndFirstUndiscovered(t *testing.T) {
	m := Generate(GenConfig{Seed: 3, MaxDistance: 4, NodesPerRing: 2})

	within := m.NodesWithin(2)
	if want := 1 + 2*2; len(within) != want {
		t.Fatalf("nodes within 2 = %d, want %d", len(within), want)
	}
	for i := 1; i < len(within); i++ {
		if within[i].Distance < within[i-1].Distance {
			t.Fatal("NodesWithin must preserve map order")
		}
	}

	first := m.FirstUndiscovered(4)
	if first == nil || first.Distance != 1 {
		t.Fatalf("first undiscovered = %+v, want a ring-1 node", first)
	}
	first.Advance(NodeDiscovered)
	if next := m.FirstUndiscovered(4); next == nil || next.ID == first.ID {
		t.Fatalf("next undiscovered = %+v, want a different node", next)
	}
	if m.FirstUndiscovered(0) != nil {
		t.Fatal("no undiscovered nodes at distance 0")
	}
}
