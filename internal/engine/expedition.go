// Expeditions: a single-slot state machine that walks workers out to a map
// node, searches it, and brings them home with loot. The active slot is
// exclusive — acquiring it happens only in Start, releasing only in
// Complete or Cancel.
package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/torvik/ashfall/internal/balance"
	"github.com/torvik/ashfall/internal/colony"
	"github.com/torvik/ashfall/internal/entropy"
	"github.com/torvik/ashfall/internal/loot"
	"github.com/torvik/ashfall/internal/world"
)

// ExpeditionStatus is the leg of the trip the crew is on.
type ExpeditionStatus uint8

const (
	ExpeditionTraveling ExpeditionStatus = iota
	ExpeditionExploring
	ExpeditionReturning
	ExpeditionCompleted
)

func (s ExpeditionStatus) String() string {
	switch s {
	case ExpeditionTraveling:
		return "traveling"
	case ExpeditionExploring:
		return "exploring"
	case ExpeditionReturning:
		return "returning"
	case ExpeditionCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Expedition is the single active exploration task.
type Expedition struct {
	ID         string           `json:"id"`
	Node       world.NodeID     `json:"node"`
	WorkerIDs  []string         `json:"worker_ids"`
	Supplies   colony.Supplies  `json:"supplies"` // packed, drawn down on the road
	Consumed   colony.Supplies  `json:"consumed"`
	Status     ExpeditionStatus `json:"status"`
	ElapsedAU  float64          `json:"elapsed_au"`
	TotalAU    float64          `json:"total_au"`
	StartDay   int              `json:"start_day"`
	StartPhase Phase            `json:"start_phase"`
}

// SearchTime returns the AU spent searching a node at the given distance.
func SearchTime(distance int) int {
	if distance < 0 {
		distance = 0
	}
	return 2 + distance/3
}

// TravelTime returns the total AU an expedition occupies: the walk out,
// the search, and the walk back.
func TravelTime(distance int) int {
	if distance < 0 {
		distance = 0
	}
	return 2*distance + SearchTime(distance)
}

// ExpeditionSupplies returns the water and food a crew packs for a trip of
// totalAU. Food runs above water, same as settlement upkeep but at field
// rates.
func ExpeditionSupplies(explorerCount int, totalAU float64) colony.Supplies {
	if explorerCount < 0 {
		explorerCount = 0
	}
	n := float64(explorerCount)
	return colony.Supplies{
		Water: n * balance.ExpeditionWaterPerAU * totalAU,
		Food:  n * balance.ExpeditionFoodPerAU * totalAU,
	}
}

// Exploration owns the expedition slot and the map it walks.
type Exploration struct {
	Map    *world.Map
	Active *Expedition
	rng    *entropy.Source
}

// NewExploration wires the engine to its map and randomness source.
func NewExploration(m *world.Map, rng *entropy.Source) *Exploration {
	return &Exploration{Map: m, rng: rng}
}

// Start launches an expedition. Fails when another expedition holds the
// slot, the node is unknown or beyond radio range, or the settlement
// cannot spare the supplies (consumed through the callback, atomically).
// the clock arguments stamp the departure for the log.
func (x *Exploration) Start(nodeID world.NodeID, workerIDs []string, day int, phase Phase,
	radioTowerLevel int, consume ConsumeFunc) (*Expedition, Reason) {

	if x.Active != nil {
		return nil, ReasonExpeditionAlreadyActive
	}
	node := x.Map.Node(nodeID)
	if node == nil {
		return nil, ReasonNodeInaccessible
	}
	if node.Distance > balance.MaxExplorationDistance(radioTowerLevel) {
		return nil, ReasonNodeInaccessible
	}

	total := float64(TravelTime(node.Distance))
	supplies := ExpeditionSupplies(len(workerIDs), total)
	cost := []colony.Stack{
		{Resource: colony.ResourceWater, Amount: supplies.Water},
		{Resource: colony.ResourceFood, Amount: supplies.Food},
	}
	if consume == nil || !consume(cost) {
		return nil, ReasonInsufficientResources
	}

	x.Active = &Expedition{
		ID:         uuid.NewString(),
		Node:       nodeID,
		WorkerIDs:  append([]string(nil), workerIDs...),
		Supplies:   supplies,
		Status:     ExpeditionTraveling,
		TotalAU:    total,
		StartDay:   day,
		StartPhase: phase,
	}
	return x.Active, ""
}

// Progress advances the active expedition by one phase's AU, draws down
// packed supplies proportionally, and moves it through
// traveling → exploring → returning → completed as elapsed AU crosses the
// leg boundaries. Returns the supplies eaten this phase.
func (x *Exploration) Progress(phaseAU float64) colony.Supplies {
	e := x.Active
	if e == nil || e.Status == ExpeditionCompleted || phaseAU <= 0 {
		return colony.Supplies{}
	}

	step := phaseAU
	if e.ElapsedAU+step > e.TotalAU {
		step = e.TotalAU - e.ElapsedAU
	}
	e.ElapsedAU += step

	n := float64(len(e.WorkerIDs))
	eaten := colony.Supplies{
		Water: n * balance.ExpeditionWaterPerAU * step,
		Food:  n * balance.ExpeditionFoodPerAU * step,
	}
	if eaten.Water > e.Supplies.Water {
		eaten.Water = e.Supplies.Water
	}
	if eaten.Food > e.Supplies.Food {
		eaten.Food = e.Supplies.Food
	}
	e.Supplies.Water -= eaten.Water
	e.Supplies.Food -= eaten.Food
	e.Consumed.Add(eaten)

	node := x.Map.Node(e.Node)
	outLeg := float64(node.Distance)
	searchEnd := outLeg + float64(SearchTime(node.Distance))

	switch {
	case e.ElapsedAU >= e.TotalAU:
		e.Status = ExpeditionCompleted
	case e.ElapsedAU >= searchEnd:
		e.Status = ExpeditionReturning
	case e.ElapsedAU >= outLeg:
		e.Status = ExpeditionExploring
	}
	return eaten
}

// CompletionReport is the result of a finished expedition.
type CompletionReport struct {
	Node   world.NodeID `json:"node"`
	Loot   []loot.Drop  `json:"loot"`
	Events []string     `json:"events"`
}

// Complete settles a finished expedition: rolls loot for the node's tier
// and risk, upgrades the node to explored (never downgrading a cleared
// node), deposits loot through the callback, and frees the slot.
func (x *Exploration) Complete(add AddFunc) (*CompletionReport, Reason) {
	e := x.Active
	if e == nil {
		return nil, ReasonNodeInaccessible
	}
	if e.Status != ExpeditionCompleted {
		return nil, ReasonNodeInaccessible
	}

	node := x.Map.Node(e.Node)
	drops := loot.TableFor(node.Tier).Roll(node.Risk, x.rng)
	if add != nil {
		add(loot.Stacks(drops))
	}

	report := &CompletionReport{Node: e.Node, Loot: drops}
	if node.Advance(world.NodeExplored) {
		report.Events = append(report.Events,
			fmt.Sprintf("%s surveyed (%s, risk %.2f)", node.ID, node.Tier, node.Risk))
	}
	x.Active = nil
	return report, ""
}

// Cancel aborts the active expedition. No loot, no node upgrade, no refund
// of supplies already eaten; what the crew still carries walks back into
// storage through the callback.
func (x *Exploration) Cancel(add AddFunc) bool {
	e := x.Active
	if e == nil {
		return false
	}
	if add != nil && (e.Supplies.Water > 0 || e.Supplies.Food > 0) {
		add([]colony.Stack{
			{Resource: colony.ResourceWater, Amount: e.Supplies.Water},
			{Resource: colony.ResourceFood, Amount: e.Supplies.Food},
		})
	}
	x.Active = nil
	return true
}
