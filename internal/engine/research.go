// Technology research: a closed catalog with scrap costs and building
// prerequisites. The core tracks the researched set; what a tech unlocks
// downstream is the host's concern.
package engine

import "github.com/torvik/ashfall/internal/colony"

// TechID identifies a researchable technology.
type TechID uint8

const (
	TechWaterFiltration TechID = iota
	TechMetallurgy
	TechCartography
	TechBallistics
	TechFieldMedicine

	techCount
)

// TechCount is the number of defined technologies.
const TechCount = int(techCount)

func (t TechID) String() string {
	switch t {
	case TechWaterFiltration:
		return "water_filtration"
	case TechMetallurgy:
		return "metallurgy"
	case TechCartography:
		return "cartography"
	case TechBallistics:
		return "ballistics"
	case TechFieldMedicine:
		return "field_medicine"
	default:
		return "unknown"
	}
}

// Valid reports whether the id names a defined technology.
func (t TechID) Valid() bool {
	return t < techCount
}

// TechDef is the static configuration of one technology.
type TechDef struct {
	ID          TechID
	Name        string
	Cost        []colony.Stack
	MinWorkshop int // required workshop level
}

// TechCatalog is the closed technology table.
var TechCatalog = [techCount]TechDef{
	TechWaterFiltration: {
		ID: TechWaterFiltration, Name: "Water Filtration",
		Cost:        []colony.Stack{{Resource: colony.ResourceScrap, Amount: 30}},
		MinWorkshop: 1,
	},
	TechMetallurgy: {
		ID: TechMetallurgy, Name: "Metallurgy",
		Cost: []colony.Stack{
			{Resource: colony.ResourceScrap, Amount: 50},
			{Resource: colony.ResourceMetalParts, Amount: 4},
		},
		MinWorkshop: 1,
	},
	TechCartography: {
		ID: TechCartography, Name: "Cartography",
		Cost:        []colony.Stack{{Resource: colony.ResourceScrap, Amount: 40}},
		MinWorkshop: 1,
	},
	TechBallistics: {
		ID: TechBallistics, Name: "Ballistics",
		Cost: []colony.Stack{
			{Resource: colony.ResourceScrap, Amount: 60},
			{Resource: colony.ResourceMetalParts, Amount: 6},
		},
		MinWorkshop: 2,
	},
	TechFieldMedicine: {
		ID: TechFieldMedicine, Name: "Field Medicine",
		Cost: []colony.Stack{
			{Resource: colony.ResourceScrap, Amount: 45},
			{Resource: colony.ResourceHerbs, Amount: 6},
		},
		MinWorkshop: 2,
	},
}
