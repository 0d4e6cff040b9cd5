// Package balance holds every numeric constant of the settlement economy.
// No scattered magic numbers — all formulas trace back to this package, so a
// single change retunes the whole game consistently.
package balance

// Value-unit calibration. Every productive job is tuned so that one
// fully-efficient worker at building level 1 yields exactly VUPerWorkerAU
// value units per action unit, whatever the job produces.
const (
	// VUPerWorkerAU is the canonical output of one worker-AU.
	VUPerWorkerAU = 15.0

	// ConsumptionVUPerAU is the baseline upkeep a worker represents.
	ConsumptionVUPerAU = 10.0

	// SurplusVUPerWorkerAU is production minus upkeep per worker-AU.
	SurplusVUPerWorkerAU = VUPerWorkerAU - ConsumptionVUPerAU
)

// Population upkeep per person per action unit.
const (
	WaterPerPersonAU = 1.0
	FoodPerPersonAU  = 1.2 // food demand runs 20% above water
)

// Building efficiency: each level above 1 adds a fixed step to the output
// multiplier. Level 0 means the building does not exist and contributes a
// zero multiplier, not a neutral one.
const (
	BuildingEfficiencyStep = 0.10
	WorkshopEfficiencyStep = 0.20
)

// Crafting.
const (
	// EngineerWorkPerAU is the Work accrued by one engineer per AU,
	// independent of workshop level.
	EngineerWorkPerAU = 60.0

	// WorkVU converts Work points into value units. Pinned so that an
	// engineer-AU is worth exactly VUPerWorkerAU.
	WorkVU = VUPerWorkerAU / EngineerWorkPerAU
)

// Minimum-worker advisory: one water or food worker feeds this many people
// at full efficiency.
const MinWorkersDivisor = 3

// Expedition supply draw per explorer per AU on the road.
const (
	ExpeditionWaterPerAU = 1.5
	ExpeditionFoodPerAU  = 1.8
)

// RadioTowerRange maps radio tower level to the maximum reachable node
// distance. Levels past the table's end clamp to the last entry.
var RadioTowerRange = [4]int{2, 4, 7, 10}

// MaxExplorationDistance returns the furthest node distance reachable at the
// given radio tower level.
func MaxExplorationDistance(radioTowerLevel int) int {
	if radioTowerLevel < 0 {
		radioTowerLevel = 0
	}
	if radioTowerLevel >= len(RadioTowerRange) {
		radioTowerLevel = len(RadioTowerRange) - 1
	}
	return RadioTowerRange[radioTowerLevel]
}
