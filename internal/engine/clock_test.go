package engine

import (
	"math"
	"testing"
)

func TestPhaseAUCycleSumsToFiveExactly(t *testing.T) {
	sum := 0.0
	for p := Phase(0); p < phaseCount; p++ {
		sum += PhaseAUFor(p)
	}
	if sum != DayTotalAU {
		t.Fatalf("phase AU cycle sums to %v, want exactly %v", sum, DayTotalAU)
	}
}

func TestPhaseAUTable(t *testing.T) {
	cases := []struct {
		phase Phase
		au    float64
	}{
		{PhaseDawn, 0.5},
		{PhaseMorning, 1.0},
		{PhaseNoon, 0.5},
		{PhaseAfternoon, 1.0},
		{PhaseEvening, 1.0},
		{PhaseMidnight, 1.0},
	}
	for _, c := range cases {
		if got := PhaseAUFor(c.phase); got != c.au {
			t.Fatalf("%s: AU = %v, want %v", c.phase, got, c.au)
		}
	}
}

func TestAdvanceCyclesInFixedOrder(t *testing.T) {
	c := NewClock()
	want := []Phase{PhaseMorning, PhaseNoon, PhaseAfternoon, PhaseEvening, PhaseMidnight, PhaseDawn}
	for i, w := range want {
		got, _ := c.Advance()
		if got != w {
			t.Fatalf("advance %d: phase = %s, want %s", i, got, w)
		}
	}
}

func TestDayIncrementsOnlyLeavingMidnight(t *testing.T) {
	c := NewClock()
	for i := 0; i < 3*PhaseCount; i++ {
		before := c.Phase
		day := c.Day
		_, newDay := c.Advance()
		if before == PhaseMidnight {
			if !newDay || c.Day != day+1 {
				t.Fatalf("midnight->dawn: day %d -> %d, newDay=%v", day, c.Day, newDay)
			}
			if c.Phase != PhaseDawn {
				t.Fatalf("midnight advances to %s, want dawn", c.Phase)
			}
		} else if newDay || c.Day != day {
			t.Fatalf("%s: day changed %d -> %d", before, day, c.Day)
		}
	}
}

func TestNoAURollover(t *testing.T) {
	// Unused AU is discarded: the budget after an advance is exactly the
	// new phase's allotment, regardless of what was left before.
	c := NewClock()
	var e Executor
	e.SpendAU(c.PhaseAU(), 0.25) // leave 0.25 unused at dawn
	c.Advance()
	e.ResetPhase()
	if rem := e.RemainingAU(c.PhaseAU()); math.Abs(rem-1.0) > 1e-12 {
		t.Fatalf("morning budget = %v, want 1.0 (no rollover)", rem)
	}
}
