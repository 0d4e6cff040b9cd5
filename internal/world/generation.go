// Wasteland generation using layered simplex noise. A hazard layer drives
// node risk, a ruin-density layer jitters tiers within their distance band.
package world

import (
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds map generation parameters.
type GenConfig struct {
	Seed         int64 // noise seed; the map is a pure function of it
	MaxDistance  int   // furthest ring generated
	NodesPerRing int   // nodes on each distance ring
}

// Generate creates the node graph. Ring 0 is the settlement's own node,
// discovered from the start; everything further out begins undiscovered.
func Generate(cfg GenConfig) *Map {
	if cfg.MaxDistance < 1 {
		cfg.MaxDistance = 1
	}
	if cfg.NodesPerRing < 1 {
		cfg.NodesPerRing = 1
	}

	hazard := opensimplex.NewNormalized(cfg.Seed)
	ruins := opensimplex.NewNormalized(cfg.Seed + 1)

	m := &Map{Nodes: make(map[NodeID]*Node)}

	home := &Node{ID: "n-00-00", Tier: T0, Distance: 0, Risk: 0, State: NodeDiscovered}
	m.Nodes[home.ID] = home
	m.Order = append(m.Order, home.ID)

	for d := 1; d <= cfg.MaxDistance; d++ {
		for i := 0; i < cfg.NodesPerRing; i++ {
			// Place nodes on a polar lattice for noise sampling.
			angle := 2 * math.Pi * float64(i) / float64(cfg.NodesPerRing)
			x := float64(d) * math.Cos(angle)
			y := float64(d) * math.Sin(angle)

			// Two octaves of hazard noise, weighted toward the broad layer.
			h := 0.7*hazard.Eval2(x*0.15, y*0.15) + 0.3*hazard.Eval2(x*0.6, y*0.6)

			// Risk grows with distance; hazard noise spreads it within the band.
			base := float64(d) / float64(cfg.MaxDistance)
			risk := clamp01(0.55*base + 0.45*h*base + 0.05)

			tier := tierForDistance(d)
			// Dense ruins bump a node one tier hotter, within bounds.
			if ruins.Eval2(x*0.25, y*0.25) > 0.8 && tier < T5 {
				tier++
			}

			n := &Node{
				ID:       NodeID(fmt.Sprintf("n-%02d-%02d", d, i)),
				Tier:     tier,
				Distance: d,
				Risk:     risk,
				State:    NodeUndiscovered,
			}
			m.Nodes[n.ID] = n
			m.Order = append(m.Order, n.ID)
		}
	}
	return m
}

// tierForDistance maps distance bands to baseline tiers.
func tierForDistance(d int) Tier {
	switch {
	case d <= 0:
		return T0
	case d <= 2:
		return T1
	case d <= 4:
		return T2
	case d <= 7:
		return T3
	case d <= 9:
		return T4
	default:
		return T5
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
