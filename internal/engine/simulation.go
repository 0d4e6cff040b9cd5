// Simulation ties the subsystems together: one settlement, one clock, one
// ledger, and the per-phase pipeline that moves them all forward.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/torvik/ashfall/internal/balance"
	"github.com/torvik/ashfall/internal/colony"
	"github.com/torvik/ashfall/internal/entropy"
	"github.com/torvik/ashfall/internal/world"
)

// Event is a notable occurrence in the settlement's log.
type Event struct {
	Day         int    `json:"day"`
	Phase       string `json:"phase"`
	Category    string `json:"category"` // "production", "build", "craft", "expedition", "shortage", ...
	Description string `json:"description"`
}

// SimStats tracks aggregate run statistics.
type SimStats struct {
	PhasesRun            int     `json:"phases_run"`
	ProducedVU           float64 `json:"produced_vu"`
	WaterConsumed        float64 `json:"water_consumed"`
	FoodConsumed         float64 `json:"food_consumed"`
	Shortages            int     `json:"shortages"`
	CraftsCompleted      int     `json:"crafts_completed"`
	ExpeditionsCompleted int     `json:"expeditions_completed"`
}

// Simulation holds the complete settlement state and wires systems
// together. All mutation is synchronous and caller-driven.
type Simulation struct {
	Clock       Clock
	Executor    Executor
	Ledger      *colony.Ledger
	Buildings   colony.BuildingLevels
	Pop         colony.Population
	Crafting    *Crafting
	Exploration *Exploration
	Map         *world.Map
	Researched  map[TechID]bool
	Events      []Event
	Stats       SimStats

	tuning balance.Tuning
	rng    *entropy.Source
}

// NewSimulation creates a fresh settlement from tuning. The map, loot, and
// every stochastic draw derive from the tuning seed.
func NewSimulation(t balance.Tuning) *Simulation {
	rng := entropy.NewSource(t.Seed)

	m := world.Generate(world.GenConfig{
		Seed:         int64(t.Seed),
		MaxDistance:  t.MapMaxDistance,
		NodesPerRing: t.MapNodesPerRing,
	})

	ledger := colony.NewLedger(map[colony.ResourceID]float64{
		colony.ResourceWater:      t.WaterCap,
		colony.ResourceFood:       t.FoodCap,
		colony.ResourceScrap:      t.ScrapCap,
		colony.ResourceWood:       t.GoodsCap,
		colony.ResourceMetalParts: t.GoodsCap,
		colony.ResourceCloth:      t.GoodsCap,
		colony.ResourceHerbs:      t.GoodsCap,
		colony.ResourceMedicine:   t.GoodsCap,
		colony.ResourceAmmo:       t.GoodsCap,
	})
	ledger.Add(colony.ResourceWater, t.StartingWater)
	ledger.Add(colony.ResourceFood, t.StartingFood)
	ledger.Add(colony.ResourceScrap, t.StartingScrap)

	s := &Simulation{
		Clock:       NewClock(),
		Ledger:      ledger,
		Pop:         colony.NewPopulation(t.StartingPopulation),
		Crafting:    NewCrafting(),
		Exploration: NewExploration(m, rng),
		Map:         m,
		Researched:  make(map[TechID]bool),
		tuning:      t,
		rng:         rng,
	}
	// Everyone starts with a roof.
	s.Buildings.SetLevel(colony.BuildingShelter, 1)
	return s
}

// Seed returns the run's seed.
func (s *Simulation) Seed() uint64 {
	return s.tuning.Seed
}

// RemainingAU returns the unspent budget of the current phase.
func (s *Simulation) RemainingAU() float64 {
	return s.Executor.RemainingAU(s.Clock.PhaseAU())
}

// consume and add are the default injected callbacks, bound to the ledger.
func (s *Simulation) consume(changes []colony.Stack) bool {
	return s.Ledger.ConsumeAll(changes)
}

func (s *Simulation) add(changes []colony.Stack) {
	s.Ledger.AddAll(changes)
}

// context snapshots live state for the action executor.
func (s *Simulation) context() ActionContext {
	resources := make(map[colony.ResourceID]float64, colony.ResourceCount)
	for id := colony.ResourceID(0); int(id) < colony.ResourceCount; id++ {
		resources[id] = s.Ledger.Amount(id)
	}
	buildings := make(map[colony.BuildingID]int, colony.BuildingCount)
	for id := colony.BuildingID(0); int(id) < colony.BuildingCount; id++ {
		buildings[id] = s.Buildings.Level(id)
	}
	return ActionContext{
		Phase:     s.Clock.Phase,
		PhaseAU:   s.Clock.PhaseAU(),
		Resources: resources,
		Buildings: buildings,
	}
}

// record appends to the bounded event log.
func (s *Simulation) record(category, format string, args ...any) {
	s.Events = append(s.Events, Event{
		Day:         s.Clock.Day,
		Phase:       s.Clock.Phase.String(),
		Category:    category,
		Description: fmt.Sprintf(format, args...),
	})
	if limit := s.tuning.EventLogSize; limit > 0 && len(s.Events) > limit {
		s.Events = s.Events[len(s.Events)-limit:]
	}
}

// PhaseReport summarizes one phase advance.
type PhaseReport struct {
	Day     int     `json:"day"`
	Phase   string  `json:"phase"`
	NewDay  bool    `json:"new_day"`
	PhaseAU float64 `json:"phase_au"`

	Produced    []colony.Stack  `json:"produced,omitempty"`
	WorkAccrued float64         `json:"work_accrued"`
	CraftDone   *Task           `json:"craft_done,omitempty"`
	Upkeep      colony.Supplies `json:"upkeep"`
	Deficit     colony.Supplies `json:"deficit"`

	ExpeditionEaten  colony.Supplies `json:"expedition_eaten"`
	ExpeditionStatus string          `json:"expedition_status,omitempty"`
}

// AdvancePhase drives the per-phase pipeline: the clock issues the new AU
// budget, the executor's spent counter resets, assigned jobs produce,
// crafting progresses on accrued Work, the population draws upkeep, and
// the active expedition walks. Shortage damage is the host's job — the
// core only reports the unmet deficit.
func (s *Simulation) AdvancePhase() PhaseReport {
	phase, newDay := s.Clock.Advance()
	s.Executor.ResetPhase()
	au := s.Clock.PhaseAU()

	report := PhaseReport{
		Day:     s.Clock.Day,
		Phase:   phase.String(),
		NewDay:  newDay,
		PhaseAU: au,
	}

	// Production from assigned jobs.
	for job := colony.JobID(0); int(job) < colony.JobCount; job++ {
		workers := s.Pop.Assigned(job)
		if workers == 0 || !job.Productive() {
			continue
		}
		level := s.Buildings.Level(job.Workplace())
		out := JobProduction(job, level, au, FullEfficiency(workers))
		if out.Amount == 0 {
			continue
		}
		s.Stats.ProducedVU += out.VU
		if out.IsWork {
			s.Crafting.AddWork(out.Amount)
			report.WorkAccrued += out.Amount
			continue
		}
		added := s.Ledger.Add(out.Resource, out.Amount)
		report.Produced = append(report.Produced, colony.Stack{Resource: out.Resource, Amount: added})
	}

	// Crafting progress draws on the accrued Work pool.
	if s.Crafting.Active != nil {
		used, done, task := s.Crafting.AdvanceProgress(s.Crafting.Work())
		s.Crafting.ConsumeWork(used)
		if done {
			report.CraftDone = task
			s.Stats.CraftsCompleted++
			s.record("craft", "%dx %s finished", task.Quantity, task.Recipe)
		}
	}

	// Population upkeep. Crew on expedition eat their packed supplies.
	need := colony.PhaseConsumption(s.Pop.Count-s.Pop.OnExpedition, au)
	report.Upkeep = need
	report.Deficit = s.drawUpkeep(need)
	if report.Deficit.Water > 0 || report.Deficit.Food > 0 {
		s.Stats.Shortages++
		s.record("shortage", "unmet upkeep: %.1f water, %.1f food",
			report.Deficit.Water, report.Deficit.Food)
	}

	// Expedition progress.
	if e := s.Exploration.Active; e != nil {
		before := e.Status
		report.ExpeditionEaten = s.Exploration.Progress(au)
		report.ExpeditionStatus = e.Status.String()
		if e.Status != before {
			s.record("expedition", "crew at %s now %s", e.Node, e.Status)
		}
	}

	s.Stats.PhasesRun++
	s.Stats.WaterConsumed += need.Water - report.Deficit.Water
	s.Stats.FoodConsumed += need.Food - report.Deficit.Food
	return report
}

// drawUpkeep withdraws what the stores can cover and returns the shortfall.
func (s *Simulation) drawUpkeep(need colony.Supplies) colony.Supplies {
	deficit := colony.Supplies{}

	take := need.Water
	if have := s.Ledger.Amount(colony.ResourceWater); have < take {
		deficit.Water = take - have
		take = have
	}
	s.Ledger.Consume(colony.ResourceWater, take)

	take = need.Food
	if have := s.Ledger.Amount(colony.ResourceFood); have < take {
		deficit.Food = take - have
		take = have
	}
	s.Ledger.Consume(colony.ResourceFood, take)

	return deficit
}

// ExecuteAction runs a catalog action against live state with the default
// ledger callbacks. Nil for unknown ids.
func (s *Simulation) ExecuteAction(id ActionID) *Result {
	res := s.Executor.Execute(id, s.context(), s.consume, s.add)
	if res == nil {
		slog.Warn("unknown action id", "id", id)
		return nil
	}
	if res.Success {
		s.record("action", "%s", res.Message)
	}
	return res
}

// AssignJob moves workers between jobs. Free of AU cost — reorganizing the
// roster is bookkeeping, not labor.
func (s *Simulation) AssignJob(job colony.JobID, count int) bool {
	ok := s.Pop.Assign(job, count)
	if ok {
		s.record("roster", "%d workers on %s", count, job)
	}
	return ok
}

// BuildOrUpgrade raises a building one level. AU, resource cost, and the
// level change commit as one unit; warehouse levels raise storage caps.
func (s *Simulation) BuildOrUpgrade(id colony.BuildingID) Result {
	if !id.Valid() {
		return failure(ReasonMissingBuilding, "unknown building")
	}
	auCost := Actions[ActionBuild].AUCost
	if s.RemainingAU() < auCost {
		return failure(ReasonInsufficientAU, "construction needs %.1f AU", auCost)
	}

	def := colony.BuildingCatalog[id]
	level := s.Buildings.Level(id)
	if level >= def.MaxLevel {
		return failure(ReasonMaxLevelReached, "%s is already at level %d", def.Name, def.MaxLevel)
	}

	cost := colony.UpgradeCost(id, level+1)
	if !s.Ledger.ConsumeAll(cost) {
		return failure(ReasonInsufficientResources, "cannot afford %s level %d", def.Name, level+1)
	}
	s.Executor.SpendAU(s.Clock.PhaseAU(), auCost)
	s.Buildings.SetLevel(id, level+1)

	for res, bonus := range def.CapBonus {
		s.Ledger.RaiseCap(res, bonus)
	}

	s.record("build", "%s raised to level %d", def.Name, level+1)
	changes := make([]colony.Stack, len(cost))
	for i, c := range cost {
		changes[i] = colony.Stack{Resource: c.Resource, Amount: -c.Amount}
	}
	return Result{Success: true, Message: fmt.Sprintf("%s level %d", def.Name, level+1), Changes: changes}
}

// StartResearch commits a technology: AU and resources move together, and
// the tech joins the researched set.
func (s *Simulation) StartResearch(id TechID) Result {
	if !id.Valid() {
		return failure(ReasonUnknownRecipeOrTech, "unknown technology")
	}
	def := TechCatalog[id]
	if s.Researched[id] {
		return failure(ReasonMaxLevelReached, "%s already researched", def.Name)
	}
	auCost := Actions[ActionResearch].AUCost
	if s.RemainingAU() < auCost {
		return failure(ReasonInsufficientAU, "research needs %.1f AU", auCost)
	}
	if s.Buildings.Level(colony.BuildingWorkshop) < def.MinWorkshop {
		return failure(ReasonMissingBuilding, "%s requires workshop level %d", def.Name, def.MinWorkshop)
	}
	if !s.Ledger.ConsumeAll(def.Cost) {
		return failure(ReasonInsufficientResources, "cannot afford %s", def.Name)
	}
	s.Executor.SpendAU(s.Clock.PhaseAU(), auCost)
	s.Researched[id] = true
	s.record("research", "%s researched", def.Name)
	return Result{Success: true, Message: def.Name}
}

// WorkshopCraft performs an immediate craft. The AU check runs before the
// atomic material/Work commit, so a failed craft costs nothing and a
// successful one debits everything in the same call.
func (s *Simulation) WorkshopCraft(recipe RecipeID, quantity int) CraftOutcome {
	auCost := Actions[ActionWorkshopCraft].AUCost
	if s.RemainingAU() < auCost {
		return CraftOutcome{Success: false, Reason: ReasonInsufficientAU,
			Message: fmt.Sprintf("crafting needs %.1f AU", auCost)}
	}
	level := s.Buildings.Level(colony.BuildingWorkshop)
	outcome := s.Crafting.CraftImmediate(recipe, quantity, level,
		s.context().Resources, s.consume, s.add)
	if outcome.Success {
		s.Executor.SpendAU(s.Clock.PhaseAU(), auCost)
		s.record("craft", "%s", outcome.Message)
	}
	return outcome
}

// StartExpedition launches a crew at a node. Requires idle workers, a free
// expedition slot, radio range, supplies, and AU — all checked before
// anything moves.
func (s *Simulation) StartExpedition(nodeID world.NodeID, workerIDs []string) (*Expedition, Result) {
	auCost := Actions[ActionExplore].AUCost
	if s.RemainingAU() < auCost {
		return nil, failure(ReasonInsufficientAU, "expedition launch needs %.1f AU", auCost)
	}
	if len(workerIDs) == 0 || s.Pop.Idle() < len(workerIDs) {
		return nil, failure(ReasonInsufficientResources, "not enough idle workers for a crew of %d", len(workerIDs))
	}

	radio := s.Buildings.Level(colony.BuildingRadioTower)
	exp, reason := s.Exploration.Start(nodeID, workerIDs, s.Clock.Day, s.Clock.Phase, radio, s.consume)
	if exp == nil {
		return nil, failure(reason, "cannot launch expedition to %s", nodeID)
	}
	s.Pop.Reserve(len(workerIDs))
	s.Executor.SpendAU(s.Clock.PhaseAU(), auCost)
	s.record("expedition", "crew of %d departed for %s (%.0f AU round trip)",
		len(workerIDs), nodeID, exp.TotalAU)
	return exp, Result{Success: true, Message: "expedition launched"}
}

// CompleteExpedition settles a returned crew: loot lands in the ledger,
// the node upgrades, the slot frees.
func (s *Simulation) CompleteExpedition() (*CompletionReport, Result) {
	crew := 0
	if e := s.Exploration.Active; e != nil {
		crew = len(e.WorkerIDs)
	}
	report, reason := s.Exploration.Complete(s.add)
	if report == nil {
		return nil, failure(reason, "no completed expedition to settle")
	}
	s.Pop.Release(crew)
	s.Stats.ExpeditionsCompleted++
	s.record("expedition", "crew returned from %s with %d stacks of loot",
		report.Node, len(report.Loot))
	return report, Result{Success: true, Message: "expedition completed"}
}

// CancelExpedition recalls the crew. Unspent packed supplies return to
// storage; nothing else is refunded.
func (s *Simulation) CancelExpedition() bool {
	crew := 0
	if e := s.Exploration.Active; e != nil {
		crew = len(e.WorkerIDs)
	}
	ok := s.Exploration.Cancel(s.add)
	if ok {
		s.Pop.Release(crew)
		s.record("expedition", "expedition cancelled")
	}
	return ok
}

// DiscoverNode sends assigned scouts to chart the nearest undiscovered
// node within radio range.
func (s *Simulation) DiscoverNode() (*world.Node, Result) {
	if s.Pop.Assigned(colony.JobScout) == 0 {
		return nil, failure(ReasonInsufficientResources, "no scouts assigned")
	}
	def := Actions[ActionScoutSurvey]
	if s.RemainingAU() < def.AUCost {
		return nil, failure(ReasonInsufficientAU, "scouting needs %.1f AU", def.AUCost)
	}
	if len(def.Phases) > 0 && !phaseAllowed(def.Phases, s.Clock.Phase) {
		return nil, failure(ReasonPhaseNotAllowed, "scouts cannot survey at %s", s.Clock.Phase)
	}

	radio := s.Buildings.Level(colony.BuildingRadioTower)
	node := s.Map.FirstUndiscovered(balance.MaxExplorationDistance(radio))
	if node == nil {
		return nil, failure(ReasonNodeInaccessible, "nothing left to chart in radio range")
	}
	s.Executor.SpendAU(s.Clock.PhaseAU(), def.AUCost)
	node.Advance(world.NodeDiscovered)
	s.record("expedition", "scouts charted %s (%s, distance %d)", node.ID, node.Tier, node.Distance)
	return node, Result{Success: true, Message: "node charted"}
}
