package colony

import "github.com/torvik/ashfall/internal/balance"

// Ledger tracks current amount and capacity per resource. Every mutation
// clamps into [0, cap] — the amount never exceeds the cap and never goes
// negative, silently, with no error path for overflow.
type Ledger struct {
	amounts [resourceCount]float64
	caps    [resourceCount]float64
}

// NewLedger creates an empty ledger with the given capacities. Resources
// absent from caps start with zero capacity and admit nothing until a cap
// is raised.
func NewLedger(caps map[ResourceID]float64) *Ledger {
	l := &Ledger{}
	for id, c := range caps {
		if id.Valid() && c > 0 {
			l.caps[id] = c
		}
	}
	return l
}

// Amount returns the current stock of a resource.
func (l *Ledger) Amount(id ResourceID) float64 {
	if !id.Valid() {
		return 0
	}
	return l.amounts[id]
}

// Cap returns the storage capacity of a resource.
func (l *Ledger) Cap(id ResourceID) float64 {
	if !id.Valid() {
		return 0
	}
	return l.caps[id]
}

// Add deposits up to amount, clamped at the cap, and returns what was
// actually added. Negative or zero amounts add nothing.
func (l *Ledger) Add(id ResourceID, amount float64) float64 {
	if !id.Valid() || amount <= 0 {
		return 0
	}
	room := l.caps[id] - l.amounts[id]
	if room < 0 {
		room = 0
	}
	added := amount
	if added > room {
		added = room
	}
	l.amounts[id] += added
	return added
}

// Set overwrites the stock, clamped into [0, cap].
func (l *Ledger) Set(id ResourceID, amount float64) {
	if !id.Valid() {
		return
	}
	if amount < 0 {
		amount = 0
	}
	if amount > l.caps[id] {
		amount = l.caps[id]
	}
	l.amounts[id] = amount
}

// Consume withdraws amount if the full amount is available. Returns false
// and mutates nothing on a shortfall.
func (l *Ledger) Consume(id ResourceID, amount float64) bool {
	if !id.Valid() || amount < 0 {
		return false
	}
	if l.amounts[id] < amount {
		return false
	}
	l.amounts[id] -= amount
	return true
}

// ConsumeAll withdraws every stack or none: the whole batch is checked
// before anything is subtracted, so a failed batch leaves the ledger
// untouched.
func (l *Ledger) ConsumeAll(changes []Stack) bool {
	need := [resourceCount]float64{}
	for _, c := range changes {
		if !c.Resource.Valid() || c.Amount < 0 {
			return false
		}
		need[c.Resource] += c.Amount
	}
	for id := ResourceID(0); id < resourceCount; id++ {
		if l.amounts[id] < need[id] {
			return false
		}
	}
	for id := ResourceID(0); id < resourceCount; id++ {
		l.amounts[id] -= need[id]
	}
	return true
}

// AddAll deposits every stack, each clamped at its cap.
func (l *Ledger) AddAll(changes []Stack) {
	for _, c := range changes {
		l.Add(c.Resource, c.Amount)
	}
}

// RaiseCap increases a resource's capacity (warehouse upgrades).
func (l *Ledger) RaiseCap(id ResourceID, delta float64) {
	if !id.Valid() || delta <= 0 {
		return
	}
	l.caps[id] += delta
}

// PhaseConsumption returns the water and food a population draws over one
// phase. Food always runs 20% above water — the survival-pressure ratio the
// whole economy is balanced around.
func PhaseConsumption(population int, phaseAU float64) Supplies {
	if population < 0 {
		population = 0
	}
	p := float64(population)
	return Supplies{
		Water: p * balance.WaterPerPersonAU * phaseAU,
		Food:  p * balance.FoodPerPersonAU * phaseAU,
	}
}

// Stacks returns a snapshot of all non-zero stocks.
func (l *Ledger) Stacks() []Stack {
	var out []Stack
	for id := ResourceID(0); id < resourceCount; id++ {
		if l.amounts[id] > 0 {
			out = append(out, Stack{Resource: id, Amount: l.amounts[id]})
		}
	}
	return out
}

// Caps returns a snapshot of all non-zero capacities.
func (l *Ledger) Caps() []Stack {
	var out []Stack
	for id := ResourceID(0); id < resourceCount; id++ {
		if l.caps[id] > 0 {
			out = append(out, Stack{Resource: id, Amount: l.caps[id]})
		}
	}
	return out
}
