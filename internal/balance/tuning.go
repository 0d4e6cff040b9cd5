package balance

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the soft knobs of a run: starting stocks, capacities, and
// driver settings. The hard economy constants stay compiled in — retuning
// those invalidates the balance invariants the tests pin down.
type Tuning struct {
	Seed               uint64 `yaml:"seed"`
	StartingPopulation int    `yaml:"starting_population"`

	StartingWater float64 `yaml:"starting_water"`
	StartingFood  float64 `yaml:"starting_food"`
	StartingScrap float64 `yaml:"starting_scrap"`

	WaterCap float64 `yaml:"water_cap"`
	FoodCap  float64 `yaml:"food_cap"`
	ScrapCap float64 `yaml:"scrap_cap"`
	GoodsCap float64 `yaml:"goods_cap"` // cap for crafted/looted goods

	MapMaxDistance  int `yaml:"map_max_distance"`
	MapNodesPerRing int `yaml:"map_nodes_per_ring"`

	EventLogSize int `yaml:"event_log_size"`
}

// DefaultTuning returns the stock configuration for a fresh settlement.
func DefaultTuning() Tuning {
	return Tuning{
		Seed:               42,
		StartingPopulation: 8,
		StartingWater:      40,
		StartingFood:       48,
		StartingScrap:      60,
		WaterCap:           200,
		FoodCap:            200,
		ScrapCap:           500,
		GoodsCap:           120,
		MapMaxDistance:     12,
		MapNodesPerRing:    4,
		EventLogSize:       256,
	}
}

// LoadTuning reads YAML overrides on top of the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning: %w", err)
	}
	if t.StartingPopulation < 1 {
		return t, fmt.Errorf("tuning: starting_population must be >= 1, got %d", t.StartingPopulation)
	}
	if t.MapMaxDistance < 1 {
		return t, fmt.Errorf("tuning: map_max_distance must be >= 1, got %d", t.MapMaxDistance)
	}
	return t, nil
}
