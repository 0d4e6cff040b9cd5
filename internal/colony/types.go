// Package colony provides the settlement data model: resources, buildings,
// jobs, and the capacity-clamped ledger they all settle against.
package colony

// ResourceID identifies a stockpiled resource. The set is closed — callers
// switch over it exhaustively instead of passing open strings around.
type ResourceID uint8

const (
	ResourceWater ResourceID = iota
	ResourceFood
	ResourceScrap
	ResourceWood
	ResourceMetalParts
	ResourceCloth
	ResourceHerbs
	ResourceMedicine
	ResourceAmmo

	resourceCount
)

// ResourceCount is the number of defined resource types.
const ResourceCount = int(resourceCount)

func (r ResourceID) String() string {
	switch r {
	case ResourceWater:
		return "water"
	case ResourceFood:
		return "food"
	case ResourceScrap:
		return "scrap"
	case ResourceWood:
		return "wood"
	case ResourceMetalParts:
		return "metal_parts"
	case ResourceCloth:
		return "cloth"
	case ResourceHerbs:
		return "herbs"
	case ResourceMedicine:
		return "medicine"
	case ResourceAmmo:
		return "ammo"
	default:
		return "unknown"
	}
}

// Valid reports whether the id names a defined resource.
func (r ResourceID) Valid() bool {
	return r < resourceCount
}

// BaseVU is the value-unit worth of one unit of each resource. Scrap is the
// anchor: 1 scrap = 1 VU. Everything else is priced against it.
var BaseVU = [resourceCount]float64{
	ResourceWater:      1.5,
	ResourceFood:       1.5,
	ResourceScrap:      1.0,
	ResourceWood:       0.75,
	ResourceMetalParts: 3.0,
	ResourceCloth:      2.0,
	ResourceHerbs:      2.5,
	ResourceMedicine:   6.0,
	ResourceAmmo:       5.0,
}

// Stack is a quantity of one resource — a cost, a yield, or a delta.
type Stack struct {
	Resource ResourceID `json:"resource"`
	Amount   float64    `json:"amount"`
}

// Supplies is the water/food pair used for upkeep and expedition packing.
type Supplies struct {
	Water float64 `json:"water"`
	Food  float64 `json:"food"`
}

// Add accumulates another supply pair.
func (s *Supplies) Add(o Supplies) {
	s.Water += o.Water
	s.Food += o.Food
}
