package colony

import "math"

// BuildingID identifies a settlement structure.
type BuildingID uint8

const (
	BuildingShelter BuildingID = iota
	BuildingWarehouse
	BuildingScrapyard
	BuildingWaterPurifier
	BuildingSmokehouse
	BuildingWorkshop
	BuildingRadioTower
	BuildingWatchtower
	BuildingInfirmary

	buildingCount
)

// BuildingCount is the number of defined building types.
const BuildingCount = int(buildingCount)

func (b BuildingID) String() string {
	switch b {
	case BuildingShelter:
		return "shelter"
	case BuildingWarehouse:
		return "warehouse"
	case BuildingScrapyard:
		return "scrapyard"
	case BuildingWaterPurifier:
		return "water_purifier"
	case BuildingSmokehouse:
		return "smokehouse"
	case BuildingWorkshop:
		return "workshop"
	case BuildingRadioTower:
		return "radio_tower"
	case BuildingWatchtower:
		return "watchtower"
	case BuildingInfirmary:
		return "infirmary"
	default:
		return "unknown"
	}
}

// Valid reports whether the id names a defined building.
func (b BuildingID) Valid() bool {
	return b < buildingCount
}

// BuildingDef is the static configuration of one building type.
type BuildingDef struct {
	ID         BuildingID
	Name       string
	MaxLevel   int
	BaseCost   []Stack // cost of level 1
	CostGrowth float64 // per-level cost multiplier

	// CapBonus is the per-level capacity increase the building grants
	// (warehouse only).
	CapBonus map[ResourceID]float64
}

// BuildingCatalog is the closed table of constructible buildings.
var BuildingCatalog = [buildingCount]BuildingDef{
	BuildingShelter: {
		ID: BuildingShelter, Name: "Shelter", MaxLevel: 5,
		BaseCost:   []Stack{{ResourceScrap, 20}, {ResourceWood, 8}},
		CostGrowth: 1.5,
	},
	BuildingWarehouse: {
		ID: BuildingWarehouse, Name: "Warehouse", MaxLevel: 5,
		BaseCost:   []Stack{{ResourceScrap, 30}, {ResourceWood, 12}},
		CostGrowth: 1.6,
		CapBonus: map[ResourceID]float64{
			ResourceWater:      50,
			ResourceFood:       50,
			ResourceScrap:      100,
			ResourceWood:       40,
			ResourceMetalParts: 20,
			ResourceCloth:      20,
			ResourceHerbs:      20,
			ResourceMedicine:   10,
			ResourceAmmo:       25,
		},
	},
	BuildingScrapyard: {
		ID: BuildingScrapyard, Name: "Scrapyard", MaxLevel: 10,
		BaseCost:   []Stack{{ResourceScrap, 15}},
		CostGrowth: 1.5,
	},
	BuildingWaterPurifier: {
		ID: BuildingWaterPurifier, Name: "Water Purifier", MaxLevel: 10,
		BaseCost:   []Stack{{ResourceScrap, 25}, {ResourceMetalParts, 2}},
		CostGrowth: 1.5,
	},
	BuildingSmokehouse: {
		ID: BuildingSmokehouse, Name: "Smokehouse", MaxLevel: 10,
		BaseCost:   []Stack{{ResourceScrap, 20}, {ResourceWood, 10}},
		CostGrowth: 1.5,
	},
	BuildingWorkshop: {
		ID: BuildingWorkshop, Name: "Workshop", MaxLevel: 10,
		BaseCost:   []Stack{{ResourceScrap, 40}, {ResourceMetalParts, 4}},
		CostGrowth: 1.6,
	},
	BuildingRadioTower: {
		ID: BuildingRadioTower, Name: "Radio Tower", MaxLevel: 3,
		BaseCost:   []Stack{{ResourceScrap, 50}, {ResourceMetalParts, 6}},
		CostGrowth: 2.0,
	},
	BuildingWatchtower: {
		ID: BuildingWatchtower, Name: "Watchtower", MaxLevel: 5,
		BaseCost:   []Stack{{ResourceScrap, 25}, {ResourceWood, 15}},
		CostGrowth: 1.5,
	},
	BuildingInfirmary: {
		ID: BuildingInfirmary, Name: "Infirmary", MaxLevel: 5,
		BaseCost:   []Stack{{ResourceScrap, 35}, {ResourceCloth, 4}, {ResourceHerbs, 4}},
		CostGrowth: 1.6,
	},
}

// UpgradeCost returns the resource cost of raising a building to toLevel.
// Costs grow geometrically and round up to whole units. Nil for unknown
// buildings or levels out of range.
func UpgradeCost(id BuildingID, toLevel int) []Stack {
	if !id.Valid() || toLevel < 1 {
		return nil
	}
	def := BuildingCatalog[id]
	if toLevel > def.MaxLevel {
		return nil
	}
	mult := math.Pow(def.CostGrowth, float64(toLevel-1))
	out := make([]Stack, len(def.BaseCost))
	for i, c := range def.BaseCost {
		out[i] = Stack{Resource: c.Resource, Amount: math.Ceil(c.Amount * mult)}
	}
	return out
}

// BuildingLevels holds the current level of every building. Level 0 means
// not yet constructed.
type BuildingLevels [buildingCount]int

// Level returns the current level, 0 for unknown ids.
func (b *BuildingLevels) Level(id BuildingID) int {
	if !id.Valid() {
		return 0
	}
	return b[id]
}

// SetLevel clamps into [0, MaxLevel] and stores.
func (b *BuildingLevels) SetLevel(id BuildingID, level int) {
	if !id.Valid() {
		return
	}
	if level < 0 {
		level = 0
	}
	if max := BuildingCatalog[id].MaxLevel; level > max {
		level = max
	}
	b[id] = level
}
