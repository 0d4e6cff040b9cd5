// Snapshot/restore: the pure persistence boundary. CollectState deep-copies
// everything the save subsystem needs; RestoreState rebuilds a simulation
// from it. The core never touches disk.
package engine

import (
	"github.com/torvik/ashfall/internal/balance"
	"github.com/torvik/ashfall/internal/colony"
	"github.com/torvik/ashfall/internal/entropy"
	"github.com/torvik/ashfall/internal/world"
)

// SaveVersion guards restores across incompatible layouts.
const SaveVersion = 1

// NodeSave is the persisted slice of one map node.
type NodeSave struct {
	ID       world.NodeID    `json:"id"`
	Tier     world.Tier      `json:"tier"`
	Distance int             `json:"distance"`
	Risk     float64         `json:"risk"`
	State    world.NodeState `json:"state"`
}

// SaveData captures the complete simulation state.
type SaveData struct {
	Version int            `json:"version"`
	Tuning  balance.Tuning `json:"tuning"`

	Clock  Clock   `json:"clock"`
	UsedAU float64 `json:"used_au"`

	Resources []colony.Stack `json:"resources"`
	Caps      []colony.Stack `json:"caps"`

	Buildings  []int             `json:"buildings"`
	Population colony.Population `json:"population"`
	Researched []TechID          `json:"researched"`

	Work        float64 `json:"work"`
	ActiveTask  *Task   `json:"active_task,omitempty"`
	TaskHistory []Task  `json:"task_history,omitempty"`

	Expedition *Expedition    `json:"expedition,omitempty"`
	Nodes      []NodeSave     `json:"nodes"`
	NodeOrder  []world.NodeID `json:"node_order"`

	Events []Event  `json:"events,omitempty"`
	Stats  SimStats `json:"stats"`
}

// CollectState returns a deep copy of everything in the simulation. Safe
// to serialize and to hold across further mutations.
func (s *Simulation) CollectState() SaveData {
	sd := SaveData{
		Version:    SaveVersion,
		Tuning:     s.tuning,
		Clock:      s.Clock,
		UsedAU:     s.Executor.UsedAU(),
		Resources:  s.Ledger.Stacks(),
		Caps:       s.Ledger.Caps(),
		Population: s.Pop,
		Work:       s.Crafting.Work(),
		Stats:      s.Stats,
	}

	sd.Buildings = make([]int, colony.BuildingCount)
	for id := colony.BuildingID(0); int(id) < colony.BuildingCount; id++ {
		sd.Buildings[id] = s.Buildings.Level(id)
	}

	for id := TechID(0); int(id) < TechCount; id++ {
		if s.Researched[id] {
			sd.Researched = append(sd.Researched, id)
		}
	}

	if s.Crafting.Active != nil {
		t := *s.Crafting.Active
		sd.ActiveTask = &t
	}
	sd.TaskHistory = append([]Task(nil), s.Crafting.History...)

	if s.Exploration.Active != nil {
		e := *s.Exploration.Active
		e.WorkerIDs = append([]string(nil), e.WorkerIDs...)
		sd.Expedition = &e
	}

	sd.NodeOrder = append([]world.NodeID(nil), s.Map.Order...)
	sd.Nodes = make([]NodeSave, 0, len(s.Map.Order))
	for _, id := range s.Map.Order {
		n := s.Map.Nodes[id]
		sd.Nodes = append(sd.Nodes, NodeSave{
			ID: n.ID, Tier: n.Tier, Distance: n.Distance, Risk: n.Risk, State: n.State,
		})
	}

	sd.Events = append([]Event(nil), s.Events...)
	return sd
}

// RestoreState rebuilds the simulation from a snapshot. Returns false and
// leaves the receiver untouched on a version mismatch or malformed data.
func (s *Simulation) RestoreState(sd SaveData) bool {
	if sd.Version != SaveVersion {
		return false
	}
	if sd.Clock.Day < 1 || !sd.Clock.Phase.Valid() {
		return false
	}
	if sd.UsedAU < 0 || sd.UsedAU > PhaseAUFor(sd.Clock.Phase) {
		return false
	}
	if len(sd.Buildings) != colony.BuildingCount {
		return false
	}

	rng := entropy.NewSource(sd.Tuning.Seed)

	caps := make(map[colony.ResourceID]float64, len(sd.Caps))
	for _, c := range sd.Caps {
		caps[c.Resource] = c.Amount
	}
	ledger := colony.NewLedger(caps)
	for _, r := range sd.Resources {
		ledger.Set(r.Resource, r.Amount)
	}

	m := &world.Map{Nodes: make(map[world.NodeID]*world.Node, len(sd.Nodes))}
	m.Order = append([]world.NodeID(nil), sd.NodeOrder...)
	for _, ns := range sd.Nodes {
		m.Nodes[ns.ID] = &world.Node{
			ID: ns.ID, Tier: ns.Tier, Distance: ns.Distance, Risk: ns.Risk, State: ns.State,
		}
	}

	crafting := NewCrafting()
	crafting.AddWork(sd.Work)
	if sd.ActiveTask != nil {
		t := *sd.ActiveTask
		crafting.Active = &t
	}
	crafting.History = append([]Task(nil), sd.TaskHistory...)

	exploration := NewExploration(m, rng)
	if sd.Expedition != nil {
		e := *sd.Expedition
		e.WorkerIDs = append([]string(nil), e.WorkerIDs...)
		if m.Node(e.Node) == nil {
			return false
		}
		exploration.Active = &e
	}

	s.tuning = sd.Tuning
	s.rng = rng
	s.Clock = sd.Clock
	s.Executor = Executor{}
	s.Executor.SpendAU(s.Clock.PhaseAU(), sd.UsedAU)
	s.Ledger = ledger
	s.Pop = sd.Population
	s.Crafting = crafting
	s.Exploration = exploration
	s.Map = m
	s.Researched = make(map[TechID]bool, len(sd.Researched))
	for _, t := range sd.Researched {
		if t.Valid() {
			s.Researched[t] = true
		}
	}
	for id, level := range sd.Buildings {
		s.Buildings.SetLevel(colony.BuildingID(id), level)
	}
	s.Events = append([]Event(nil), sd.Events...)
	s.Stats = sd.Stats
	return true
}
