// Package loot generates expedition rewards from weighted per-tier tables.
// Higher tiers shift weight toward rarer goods; the node's risk coefficient
// scales both bonus-roll probability and quantities.
package loot

import (
	"math"

	"github.com/torvik/ashfall/internal/colony"
	"github.com/torvik/ashfall/internal/entropy"
	"github.com/torvik/ashfall/internal/world"
)

// Drop is a single looted resource stack.
type Drop struct {
	Resource colony.ResourceID `json:"resource"`
	Amount   float64           `json:"amount"`
}

// TableEntry is a weighted loot option with a base quantity range.
type TableEntry struct {
	Resource colony.ResourceID
	Weight   int // out of the table's total
	Min, Max int
}

// Table is a weighted loot table.
type Table []TableEntry

// tables holds one table per tier. T0 is the settlement's own surroundings
// and yields only scraps.
var tables = map[world.Tier]Table{
	world.T0: {
		{colony.ResourceScrap, 70, 2, 5},
		{colony.ResourceWood, 30, 1, 3},
	},
	world.T1: {
		{colony.ResourceScrap, 45, 4, 10},
		{colony.ResourceWood, 30, 3, 8},
		{colony.ResourceCloth, 15, 1, 3},
		{colony.ResourceHerbs, 10, 1, 3},
	},
	world.T2: {
		{colony.ResourceScrap, 35, 6, 14},
		{colony.ResourceWood, 25, 4, 10},
		{colony.ResourceCloth, 15, 2, 4},
		{colony.ResourceHerbs, 15, 2, 4},
		{colony.ResourceMetalParts, 10, 1, 2},
	},
	world.T3: {
		{colony.ResourceScrap, 30, 8, 18},
		{colony.ResourceMetalParts, 25, 1, 4},
		{colony.ResourceCloth, 15, 2, 6},
		{colony.ResourceHerbs, 15, 2, 6},
		{colony.ResourceAmmo, 15, 1, 4},
	},
	world.T4: {
		{colony.ResourceMetalParts, 30, 2, 6},
		{colony.ResourceScrap, 25, 10, 22},
		{colony.ResourceAmmo, 20, 2, 6},
		{colony.ResourceMedicine, 15, 1, 2},
		{colony.ResourceHerbs, 10, 3, 7},
	},
	world.T5: {
		{colony.ResourceMetalParts, 30, 3, 8},
		{colony.ResourceAmmo, 25, 3, 8},
		{colony.ResourceMedicine, 25, 1, 3},
		{colony.ResourceScrap, 20, 14, 30},
	},
}

// TableFor returns the loot table for a tier.
func TableFor(t world.Tier) Table {
	if tbl, ok := tables[t]; ok {
		return tbl
	}
	return tables[world.T0]
}

// Roll draws loot for one expedition. One guaranteed roll, then up to two
// bonus rolls whose probability scales with risk — dangerous nodes pay
// better. Quantities are scaled by (1 + risk/2) and merged per resource.
func (t Table) Roll(risk float64, rng *entropy.Source) []Drop {
	if len(t) == 0 {
		return []Drop{{Resource: colony.ResourceScrap, Amount: 1}}
	}

	risk = math.Max(0, math.Min(1, risk))
	scale := 1 + risk/2

	drops := []Drop{}
	add := func(e TableEntry) {
		qty := e.Min
		if e.Max > e.Min {
			qty += rng.Intn(e.Max - e.Min + 1)
		}
		amount := math.Ceil(float64(qty) * scale)
		for i := range drops {
			if drops[i].Resource == e.Resource {
				drops[i].Amount += amount
				return
			}
		}
		drops = append(drops, Drop{Resource: e.Resource, Amount: amount})
	}

	add(t.pick(rng))

	bonusChance := 0.25 + 0.5*risk
	for i := 0; i < 2; i++ {
		if rng.Float() < bonusChance {
			add(t.pick(rng))
		}
	}
	return drops
}

// pick draws one weighted entry.
func (t Table) pick(rng *entropy.Source) TableEntry {
	total := 0
	for _, e := range t {
		total += e.Weight
	}
	roll := rng.Intn(total)
	current := 0
	for _, e := range t {
		current += e.Weight
		if roll < current {
			return e
		}
	}
	return t[len(t)-1]
}

// Stacks converts drops into ledger stacks.
func Stacks(drops []Drop) []colony.Stack {
	out := make([]colony.Stack, len(drops))
	for i, d := range drops {
		out[i] = colony.Stack{Resource: d.Resource, Amount: d.Amount}
	}
	return out
}
