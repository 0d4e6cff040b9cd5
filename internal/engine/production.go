// Production math — pure functions over worker counts, building levels,
// and phase AU. Mirrors the ledger's value-unit calibration: every
// productive job pays exactly one worker-AU of value at level 1.
package engine

import (
	"math"

	"github.com/torvik/ashfall/internal/balance"
	"github.com/torvik/ashfall/internal/colony"
)

// BuildingEfficiency returns the output multiplier of a building level:
// 1.0 at level 1, one step more per level above. An unbuilt building
// (level <= 0) multiplies by zero — no building, no output.
func BuildingEfficiency(level int) float64 {
	if level <= 0 {
		return 0
	}
	return 1 + balance.BuildingEfficiencyStep*float64(level-1)
}

// WorkshopEfficiency is the workshop's steeper variant, used when
// converting Work and materials into crafted output.
func WorkshopEfficiency(level int) float64 {
	if level <= 0 {
		return 0
	}
	return 1 + balance.WorkshopEfficiencyStep*float64(level-1)
}

// JobOutput is the result of one job crew working one phase.
type JobOutput struct {
	Resource colony.ResourceID `json:"resource"` // meaningful only when IsWork is false
	IsWork   bool              `json:"is_work"`  // engineers produce Work, not a ledger resource
	Amount   float64           `json:"amount"`
	VU       float64           `json:"vu"`
}

// unitsPerWorkerAU returns how many output units one fully-efficient worker
// yields per AU at level 1. Derived from the VU calibration, so the
// cross-job equivalence is structural, not tuned by hand.
func unitsPerWorkerAU(job colony.JobID) float64 {
	if job == colony.JobEngineer {
		return balance.EngineerWorkPerAU
	}
	res, ok := job.OutputResource()
	if !ok {
		return 0
	}
	return balance.VUPerWorkerAU / colony.BaseVU[res]
}

// vuPerUnit returns the value of one output unit of a job.
func vuPerUnit(job colony.JobID) float64 {
	if job == colony.JobEngineer {
		return balance.WorkVU
	}
	res, ok := job.OutputResource()
	if !ok {
		return 0
	}
	return colony.BaseVU[res]
}

// JobProduction computes the output of a job crew for one phase. workerEff
// holds one efficiency factor per worker (1.0 = fully able); output is
// linear in the efficiency sum and in phaseAU, and scales with the
// workplace building's level. Non-productive jobs yield zero.
func JobProduction(job colony.JobID, buildingLevel int, phaseAU float64, workerEff []float64) JobOutput {
	out := JobOutput{}
	if !job.Valid() || !job.Productive() || phaseAU <= 0 {
		return out
	}

	effSum := 0.0
	for _, e := range workerEff {
		if e > 0 {
			effSum += e
		}
	}
	if effSum == 0 {
		return out
	}

	res, hasRes := job.OutputResource()
	out.Resource = res
	out.IsWork = !hasRes

	// Engineers need a workshop, but their Work rate does not scale with
	// its level; the level pays off at craft time instead.
	mult := BuildingEfficiency(buildingLevel)
	if out.IsWork && buildingLevel > 0 {
		mult = 1.0
	}

	out.Amount = effSum * unitsPerWorkerAU(job) * mult * phaseAU
	out.VU = out.Amount * vuPerUnit(job)
	return out
}

// FullEfficiency returns n workers at full efficiency, the common case.
func FullEfficiency(n int) []float64 {
	if n <= 0 {
		return nil
	}
	eff := make([]float64, n)
	for i := range eff {
		eff[i] = 1.0
	}
	return eff
}

// MinimumWorkers returns the advisory staffing floor: how many water and
// food workers keep the population supplied at the given efficiency
// multiplier. Not enforced — surfaced so the player can be warned.
func MinimumWorkers(population int, efficiency float64) (water, food, total int) {
	if population <= 0 || efficiency <= 0 {
		return 0, 0, 0
	}
	n := int(math.Ceil(float64(population) / (float64(balance.MinWorkersDivisor) * efficiency)))
	return n, n, 2 * n
}

// NetSurplus returns the settlement's value-unit surplus for a phase:
// production minus upkeep per effective worker.
func NetSurplus(effectiveWorkers, phaseAU float64) float64 {
	return effectiveWorkers * balance.SurplusVUPerWorkerAU * phaseAU
}
