// Action catalog and executor. Every action is validated against a
// caller-supplied context snapshot and committed through injected
// consume/add callbacks — the executor never touches a ledger directly, so
// validation and commit stay separable and unit-testable.
package engine

import (
	"fmt"

	"github.com/torvik/ashfall/internal/colony"
)

// ActionID identifies a catalog action.
type ActionID string

const (
	ActionScavengeSweep      ActionID = "scavenge_sweep"
	ActionCollectRainwater   ActionID = "collect_rainwater"
	ActionHuntTrip           ActionID = "hunt_trip"
	ActionReinforcePerimeter ActionID = "reinforce_perimeter"
	ActionNightWatch         ActionID = "night_watch"
	ActionScoutSurvey        ActionID = "scout_survey"

	// Domain operations draw their AU cost from the catalog but commit
	// resource effects inside their own engines.
	ActionBuild         ActionID = "build"
	ActionResearch      ActionID = "research"
	ActionWorkshopCraft ActionID = "workshop_craft"
	ActionExplore       ActionID = "explore"
)

// ResourceRequirement is a stock level an action demands (not consumed
// unless it also appears in Costs).
type ResourceRequirement struct {
	Resource colony.ResourceID
	Amount   float64
}

// BuildingRequirement is a minimum building level an action demands.
type BuildingRequirement struct {
	Building colony.BuildingID
	MinLevel int
}

// Requirements gathers an action's preconditions.
type Requirements struct {
	Resources []ResourceRequirement
	Buildings []BuildingRequirement
}

// ActionDef is the static configuration of one action.
type ActionDef struct {
	ID           ActionID
	Name         string
	AUCost       float64
	Requirements Requirements
	Phases       []Phase        // nil = allowed in any phase
	Costs        []colony.Stack // consumed on commit
	Yields       []colony.Stack // added on commit
}

// Actions is the closed action catalog.
var Actions = map[ActionID]ActionDef{
	ActionScavengeSweep: {
		ID: ActionScavengeSweep, Name: "Scavenge Sweep", AUCost: 1.0,
		Phases: []Phase{PhaseMorning, PhaseNoon, PhaseAfternoon, PhaseEvening},
		Yields: []colony.Stack{{Resource: colony.ResourceScrap, Amount: 8}},
	},
	ActionCollectRainwater: {
		ID: ActionCollectRainwater, Name: "Collect Rainwater", AUCost: 0.5,
		Phases: []Phase{PhaseDawn, PhaseMorning},
		Yields: []colony.Stack{{Resource: colony.ResourceWater, Amount: 10}},
	},
	ActionHuntTrip: {
		ID: ActionHuntTrip, Name: "Hunting Trip", AUCost: 1.0,
		Phases: []Phase{PhaseMorning, PhaseAfternoon},
		Requirements: Requirements{
			Buildings: []BuildingRequirement{{Building: colony.BuildingSmokehouse, MinLevel: 1}},
		},
		Yields: []colony.Stack{{Resource: colony.ResourceFood, Amount: 6}},
	},
	ActionReinforcePerimeter: {
		ID: ActionReinforcePerimeter, Name: "Reinforce Perimeter", AUCost: 1.0,
		Requirements: Requirements{
			Buildings: []BuildingRequirement{{Building: colony.BuildingWatchtower, MinLevel: 1}},
		},
		Costs: []colony.Stack{
			{Resource: colony.ResourceWood, Amount: 4},
			{Resource: colony.ResourceScrap, Amount: 6},
		},
	},
	ActionNightWatch: {
		ID: ActionNightWatch, Name: "Night Watch", AUCost: 1.0,
		Phases: []Phase{PhaseEvening, PhaseMidnight},
		Requirements: Requirements{
			Buildings: []BuildingRequirement{{Building: colony.BuildingWatchtower, MinLevel: 1}},
		},
	},
	ActionScoutSurvey: {
		ID: ActionScoutSurvey, Name: "Scout Survey", AUCost: 0.5,
		Phases: []Phase{PhaseMorning, PhaseAfternoon},
	},

	ActionBuild:         {ID: ActionBuild, Name: "Construction", AUCost: 1.0},
	ActionResearch:      {ID: ActionResearch, Name: "Research", AUCost: 1.0},
	ActionWorkshopCraft: {ID: ActionWorkshopCraft, Name: "Workshop Craft", AUCost: 0.5},
	ActionExplore:       {ID: ActionExplore, Name: "Expedition Launch", AUCost: 1.0},
}

// LookupAction returns the catalog entry, nil for unknown ids.
func LookupAction(id ActionID) *ActionDef {
	if def, ok := Actions[id]; ok {
		return &def
	}
	return nil
}

// ActionContext is the state snapshot an action is validated against.
type ActionContext struct {
	Phase     Phase
	PhaseAU   float64
	Resources map[colony.ResourceID]float64
	Buildings map[colony.BuildingID]int
}

// ConsumeFunc withdraws the given stacks atomically; false means the batch
// was not available and nothing was taken.
type ConsumeFunc func(changes []colony.Stack) bool

// AddFunc deposits the given stacks (clamped by the receiver's caps).
type AddFunc func(changes []colony.Stack)

// Result is the outcome of one action invocation. The executor never
// mutates domain state itself; Changes records what the callbacks applied.
type Result struct {
	Success bool           `json:"success"`
	Reason  Reason         `json:"reason,omitempty"`
	Message string         `json:"message"`
	Changes []colony.Stack `json:"changes,omitempty"`
}

func failure(reason Reason, format string, args ...any) Result {
	return Result{Success: false, Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// Executor tracks AU spent during the current phase. Reset on every phase
// advance; unused budget does not carry over.
type Executor struct {
	usedAU float64
}

// UsedAU returns the AU spent this phase.
func (e *Executor) UsedAU() float64 {
	return e.usedAU
}

// RemainingAU returns the unspent budget of the current phase.
func (e *Executor) RemainingAU(phaseAU float64) float64 {
	rem := phaseAU - e.usedAU
	if rem < 0 {
		rem = 0
	}
	return rem
}

// ResetPhase zeroes the spent counter. Called on every phase advance.
func (e *Executor) ResetPhase() {
	e.usedAU = 0
}

// SpendAU debits cost if the remaining budget covers it. Domain engines
// call this inside their own commit step so AU and resources move as one
// unit.
func (e *Executor) SpendAU(phaseAU, cost float64) bool {
	if cost < 0 || e.RemainingAU(phaseAU) < cost {
		return false
	}
	e.usedAU += cost
	return true
}

// Execute validates an action against the context and, if every check
// passes, commits through the callbacks and debits AU. Any unmet
// requirement fails fast with a specific reason and no side effects.
// Returns nil for an unknown action id — that is a caller bug, not a rule
// violation.
func (e *Executor) Execute(id ActionID, ctx ActionContext, consume ConsumeFunc, add AddFunc) *Result {
	def := LookupAction(id)
	if def == nil {
		return nil
	}

	if e.RemainingAU(ctx.PhaseAU) < def.AUCost {
		r := failure(ReasonInsufficientAU, "%s needs %.1f AU, %.1f remaining",
			def.Name, def.AUCost, e.RemainingAU(ctx.PhaseAU))
		return &r
	}

	if len(def.Phases) > 0 && !phaseAllowed(def.Phases, ctx.Phase) {
		r := failure(ReasonPhaseNotAllowed, "%s cannot run at %s", def.Name, ctx.Phase)
		return &r
	}

	for _, req := range def.Requirements.Buildings {
		if ctx.Buildings[req.Building] < req.MinLevel {
			r := failure(ReasonMissingBuilding, "%s requires %s level %d",
				def.Name, req.Building, req.MinLevel)
			return &r
		}
	}

	for _, req := range def.Requirements.Resources {
		if ctx.Resources[req.Resource] < req.Amount {
			r := failure(ReasonInsufficientResources, "%s requires %.0f %s",
				def.Name, req.Amount, req.Resource)
			return &r
		}
	}
	for _, c := range def.Costs {
		if ctx.Resources[c.Resource] < c.Amount {
			r := failure(ReasonInsufficientResources, "%s requires %.0f %s",
				def.Name, c.Amount, c.Resource)
			return &r
		}
	}

	// Commit: consume first, then add, then debit AU.
	if len(def.Costs) > 0 {
		if consume == nil || !consume(def.Costs) {
			r := failure(ReasonInsufficientResources, "%s: costs no longer available", def.Name)
			return &r
		}
	}
	if len(def.Yields) > 0 && add != nil {
		add(def.Yields)
	}
	e.usedAU += def.AUCost

	changes := make([]colony.Stack, 0, len(def.Costs)+len(def.Yields))
	for _, c := range def.Costs {
		changes = append(changes, colony.Stack{Resource: c.Resource, Amount: -c.Amount})
	}
	changes = append(changes, def.Yields...)

	return &Result{
		Success: true,
		Message: fmt.Sprintf("%s completed", def.Name),
		Changes: changes,
	}
}

func phaseAllowed(allowed []Phase, p Phase) bool {
	for _, a := range allowed {
		if a == p {
			return true
		}
	}
	return false
}
