// Package engine provides the turn-based simulation core: the day/phase
// clock, production math, the action executor, crafting, and expeditions,
// all gated by a shared per-phase action-unit budget.
package engine

import "fmt"

// Phase is one of six fixed daily time slices.
type Phase uint8

const (
	PhaseDawn Phase = iota
	PhaseMorning
	PhaseNoon
	PhaseAfternoon
	PhaseEvening
	PhaseMidnight

	phaseCount
)

// PhaseCount is the number of phases in one day.
const PhaseCount = int(phaseCount)

func (p Phase) String() string {
	switch p {
	case PhaseDawn:
		return "dawn"
	case PhaseMorning:
		return "morning"
	case PhaseNoon:
		return "noon"
	case PhaseAfternoon:
		return "afternoon"
	case PhaseEvening:
		return "evening"
	case PhaseMidnight:
		return "midnight"
	default:
		return "unknown"
	}
}

// Valid reports whether p names a defined phase.
func (p Phase) Valid() bool {
	return p < phaseCount
}

// phaseAU is the fixed action-unit allotment per phase. The full cycle sums
// to exactly DayTotalAU.
var phaseAU = [phaseCount]float64{
	PhaseDawn:      0.5,
	PhaseMorning:   1.0,
	PhaseNoon:      0.5,
	PhaseAfternoon: 1.0,
	PhaseEvening:   1.0,
	PhaseMidnight:  1.0,
}

// DayTotalAU is the action-unit total of one full day cycle.
const DayTotalAU = 5.0

// PhaseAUFor returns the fixed AU allotment of a phase.
func PhaseAUFor(p Phase) float64 {
	if !p.Valid() {
		return 0
	}
	return phaseAU[p]
}

// Clock owns the day/phase progression. Day 1 begins at dawn.
type Clock struct {
	Day   int   `json:"day"`
	Phase Phase `json:"phase"`
}

// NewClock starts at dawn of day 1.
func NewClock() Clock {
	return Clock{Day: 1, Phase: PhaseDawn}
}

// Advance moves to the next phase in the fixed cyclic order. The day
// increments exactly when the transition leaves midnight. Unused AU from
// the previous phase is discarded, never banked.
func (c *Clock) Advance() (Phase, bool) {
	newDay := c.Phase == PhaseMidnight
	c.Phase = (c.Phase + 1) % phaseCount
	if newDay {
		c.Day++
	}
	return c.Phase, newDay
}

// PhaseAU returns the AU budget of the current phase.
func (c Clock) PhaseAU() float64 {
	return PhaseAUFor(c.Phase)
}

func (c Clock) String() string {
	return fmt.Sprintf("day %d, %s", c.Day, c.Phase)
}
