package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torvik/ashfall/internal/balance"
	"github.com/torvik/ashfall/internal/colony"
	"github.com/torvik/ashfall/internal/world"
)

func testSim() *Simulation {
	t := balance.DefaultTuning()
	t.Seed = 1234
	return NewSimulation(t)
}

// nextFullPhase advances until the current phase grants a full AU.
func nextFullPhase(sim *Simulation) {
	sim.AdvancePhase()
	for sim.Clock.PhaseAU() < 1.0 {
		sim.AdvancePhase()
	}
}

func TestNewSimulationStartsAtDawnDayOne(t *testing.T) {
	sim := testSim()
	require.Equal(t, 1, sim.Clock.Day)
	require.Equal(t, PhaseDawn, sim.Clock.Phase)
	require.Equal(t, 1, sim.Buildings.Level(colony.BuildingShelter))
	require.NotNil(t, sim.Map.Node("n-00-00"))
}

func TestAdvancePhaseAppliesUpkeep(t *testing.T) {
	sim := testSim()
	waterBefore := sim.Ledger.Amount(colony.ResourceWater)

	report := sim.AdvancePhase()
	require.Equal(t, "morning", report.Phase)

	need := colony.PhaseConsumption(sim.Pop.Count, 1.0)
	assert.InDelta(t, need.Water, report.Upkeep.Water, 1e-9)
	assert.InDelta(t, need.Water*1.2, report.Upkeep.Food, 1e-9)
	assert.InDelta(t, waterBefore-need.Water, sim.Ledger.Amount(colony.ResourceWater), 1e-9)
	assert.Zero(t, report.Deficit.Water)
}

func TestAdvancePhaseReportsDeficitWithoutMutatingBelowZero(t *testing.T) {
	sim := testSim()
	sim.Ledger.Set(colony.ResourceWater, 1)
	sim.Ledger.Set(colony.ResourceFood, 0)

	report := sim.AdvancePhase() // morning: 8 people need 8 water, 9.6 food
	assert.InDelta(t, 7, report.Deficit.Water, 1e-9)
	assert.InDelta(t, 9.6, report.Deficit.Food, 1e-9)
	assert.Zero(t, sim.Ledger.Amount(colony.ResourceWater))
	assert.Zero(t, sim.Ledger.Amount(colony.ResourceFood))
	assert.Equal(t, 1, sim.Stats.Shortages)
}

func TestAssignedJobsProduceEachPhase(t *testing.T) {
	sim := testSim()
	nextFullPhase(sim)
	require.True(t, sim.BuildOrUpgrade(colony.BuildingScrapyard).Success)
	require.True(t, sim.AssignJob(colony.JobScavenger, 2))

	scrapBefore := sim.Ledger.Amount(colony.ResourceScrap)
	report := sim.AdvancePhase() // noon, 0.5 AU

	// 2 scavengers x 15 scrap/worker-AU at level 1, half phase.
	require.Len(t, report.Produced, 1)
	assert.InDelta(t, 15, report.Produced[0].Amount, 1e-9)
	assert.InDelta(t, scrapBefore+15, sim.Ledger.Amount(colony.ResourceScrap), 1e-9)
}

func TestEngineersFeedTheWorkPoolAndFinishTasks(t *testing.T) {
	sim := testSim()
	sim.Ledger.Set(colony.ResourceMetalParts, 10)
	nextFullPhase(sim)
	require.True(t, sim.BuildOrUpgrade(colony.BuildingWorkshop).Success)
	require.True(t, sim.AssignJob(colony.JobEngineer, 1))
	require.NotNil(t, sim.Crafting.CreateTask(RecipeClothBolt, 2)) // 30 Work

	report := sim.AdvancePhase() // noon: one engineer, 0.5 AU, 30 Work
	assert.InDelta(t, 30, report.WorkAccrued, 1e-9)
	require.NotNil(t, report.CraftDone)
	assert.Equal(t, TaskCompleted, report.CraftDone.Status)
	// All accrued Work went into the task.
	assert.InDelta(t, 0, sim.Crafting.Work(), 1e-9)
}

func TestBuildOrUpgradeCommitsAUAndResourcesTogether(t *testing.T) {
	sim := testSim()
	sim.AdvancePhase() // morning, full 1.0 AU budget

	scrapBefore := sim.Ledger.Amount(colony.ResourceScrap)
	res := sim.BuildOrUpgrade(colony.BuildingScrapyard)
	require.True(t, res.Success, res.Message)
	assert.Equal(t, 1, sim.Buildings.Level(colony.BuildingScrapyard))
	assert.InDelta(t, scrapBefore-15, sim.Ledger.Amount(colony.ResourceScrap), 1e-9)
	assert.InDelta(t, 1.0, sim.Executor.UsedAU(), 1e-9)

	// Budget exhausted: the next build fails on AU with nothing spent.
	scrapBefore = sim.Ledger.Amount(colony.ResourceScrap)
	res = sim.BuildOrUpgrade(colony.BuildingSmokehouse)
	require.False(t, res.Success)
	assert.Equal(t, ReasonInsufficientAU, res.Reason)
	assert.Equal(t, scrapBefore, sim.Ledger.Amount(colony.ResourceScrap))
	assert.Equal(t, 0, sim.Buildings.Level(colony.BuildingSmokehouse))
}

func TestBuildOrUpgradeMaxLevel(t *testing.T) {
	sim := testSim()
	sim.Ledger.RaiseCap(colony.ResourceScrap, 1e6)
	sim.Ledger.Set(colony.ResourceScrap, 1e6)
	sim.Ledger.Set(colony.ResourceWood, sim.Ledger.Cap(colony.ResourceWood))
	sim.Ledger.Set(colony.ResourceMetalParts, sim.Ledger.Cap(colony.ResourceMetalParts))

	for level := 1; level <= 3; level++ {
		nextFullPhase(sim)
		res := sim.BuildOrUpgrade(colony.BuildingRadioTower)
		require.True(t, res.Success, "level %d: %s", level, res.Message)
	}
	nextFullPhase(sim)
	res := sim.BuildOrUpgrade(colony.BuildingRadioTower)
	require.False(t, res.Success)
	assert.Equal(t, ReasonMaxLevelReached, res.Reason)
}

func TestWarehouseRaisesCaps(t *testing.T) {
	sim := testSim()
	sim.Ledger.Set(colony.ResourceScrap, 200)
	sim.Ledger.Set(colony.ResourceWood, 50)
	capBefore := sim.Ledger.Cap(colony.ResourceWater)

	nextFullPhase(sim)
	require.True(t, sim.BuildOrUpgrade(colony.BuildingWarehouse).Success)
	assert.Equal(t, capBefore+50, sim.Ledger.Cap(colony.ResourceWater))
}

func TestStartResearchValidatesAndCommits(t *testing.T) {
	sim := testSim()
	nextFullPhase(sim)

	res := sim.StartResearch(TechWaterFiltration)
	require.False(t, res.Success)
	assert.Equal(t, ReasonMissingBuilding, res.Reason)

	sim.Ledger.Set(colony.ResourceScrap, 200)
	sim.Ledger.Set(colony.ResourceMetalParts, 10)
	require.True(t, sim.BuildOrUpgrade(colony.BuildingWorkshop).Success)
	nextFullPhase(sim)

	res = sim.StartResearch(TechWaterFiltration)
	require.True(t, res.Success, res.Message)
	assert.True(t, sim.Researched[TechWaterFiltration])

	res = sim.StartResearch(TechWaterFiltration)
	require.False(t, res.Success)
	assert.Equal(t, ReasonMaxLevelReached, res.Reason)
}

func TestExpeditionEndToEnd(t *testing.T) {
	sim := testSim()
	sim.AdvancePhase() // morning

	// Find a distance-1 node; radio level 0 reaches distance 2.
	var target world.NodeID
	for _, n := range sim.Map.NodesWithin(1) {
		if n.Distance == 1 {
			target = n.ID
			break
		}
	}
	require.NotEmpty(t, target)

	waterBefore := sim.Ledger.Amount(colony.ResourceWater)
	exp, res := sim.StartExpedition(target, []string{"crew-1", "crew-2"})
	require.True(t, res.Success, res.Message)
	require.Equal(t, ExpeditionTraveling, exp.Status)
	assert.InDelta(t, 4, exp.TotalAU, 1e-9)

	packed := ExpeditionSupplies(2, 4)
	assert.InDelta(t, packed.Water, waterBefore-sim.Ledger.Amount(colony.ResourceWater), 1e-9)

	// Walk phases until the crew is home: morning..midnight gives 4.5 AU.
	for i := 0; i < 5 && exp.Status != ExpeditionCompleted; i++ {
		sim.AdvancePhase()
	}
	require.Equal(t, ExpeditionCompleted, exp.Status)
	assert.InDelta(t, packed.Water, exp.Consumed.Water, 1e-9)
	assert.InDelta(t, packed.Food, exp.Consumed.Food, 1e-9)

	report, res := sim.CompleteExpedition()
	require.True(t, res.Success)
	require.NotNil(t, report)
	assert.NotEmpty(t, report.Loot)
	assert.Equal(t, world.NodeExplored, sim.Map.Node(target).State)
	assert.Nil(t, sim.Exploration.Active)
}

func TestExpeditionCrewReservedFromRoster(t *testing.T) {
	sim := testSim()
	nextFullPhase(sim)
	require.True(t, sim.AssignJob(colony.JobScavenger, 6))

	var target world.NodeID
	for _, n := range sim.Map.NodesWithin(1) {
		if n.Distance == 1 {
			target = n.ID
			break
		}
	}
	_, res := sim.StartExpedition(target, []string{"crew-1", "crew-2"})
	require.True(t, res.Success, res.Message)

	// The crew is out of the roster: nobody is idle, and the walking
	// workers cannot be handed a production job at the same time.
	assert.Equal(t, 2, sim.Pop.OnExpedition)
	assert.Equal(t, 0, sim.Pop.Idle())
	assert.False(t, sim.AssignJob(colony.JobEngineer, 2))
	assert.False(t, sim.AssignJob(colony.JobScavenger, 7))

	for i := 0; i < 6 && sim.Exploration.Active.Status != ExpeditionCompleted; i++ {
		sim.AdvancePhase()
	}
	_, res = sim.CompleteExpedition()
	require.True(t, res.Success)
	assert.Equal(t, 0, sim.Pop.OnExpedition)
	assert.Equal(t, 2, sim.Pop.Idle())
}

func TestCancelExpeditionReturnsCrewToRoster(t *testing.T) {
	sim := testSim()
	nextFullPhase(sim)

	var target world.NodeID
	for _, n := range sim.Map.NodesWithin(1) {
		if n.Distance == 1 {
			target = n.ID
			break
		}
	}
	_, res := sim.StartExpedition(target, []string{"crew-1", "crew-2"})
	require.True(t, res.Success, res.Message)
	require.Equal(t, 2, sim.Pop.OnExpedition)

	require.True(t, sim.CancelExpedition())
	assert.Equal(t, 0, sim.Pop.OnExpedition)
	assert.Equal(t, sim.Pop.Count, sim.Pop.Idle())
}

func TestDiscoverNodeHonorsScoutingHours(t *testing.T) {
	sim := testSim()
	sim.AdvancePhase() // morning
	require.True(t, sim.AssignJob(colony.JobScout, 1))

	node, res := sim.DiscoverNode()
	require.True(t, res.Success, res.Message)
	assert.Equal(t, world.NodeDiscovered, node.State)

	sim.AdvancePhase() // noon
	sim.AdvancePhase() // afternoon
	sim.AdvancePhase() // evening
	_, res = sim.DiscoverNode()
	require.False(t, res.Success)
	assert.Equal(t, ReasonPhaseNotAllowed, res.Reason)
}

func TestSnapshotRoundTrip(t *testing.T) {
	sim := testSim()
	sim.AdvancePhase()
	sim.BuildOrUpgrade(colony.BuildingScrapyard)
	sim.AssignJob(colony.JobScavenger, 3)
	sim.AdvancePhase()
	sim.Crafting.AddWork(42)

	sd := sim.CollectState()

	// Survives the wire format the save subsystem uses.
	raw, err := json.Marshal(sd)
	require.NoError(t, err)
	var decoded SaveData
	require.NoError(t, json.Unmarshal(raw, &decoded))

	restored := NewSimulation(balance.DefaultTuning())
	require.True(t, restored.RestoreState(decoded))

	assert.Equal(t, sim.Clock, restored.Clock)
	assert.Equal(t, sim.Pop, restored.Pop)
	assert.Equal(t, sim.Buildings, restored.Buildings)
	assert.InDelta(t, sim.Crafting.Work(), restored.Crafting.Work(), 1e-9)
	assert.InDelta(t, sim.Executor.UsedAU(), restored.Executor.UsedAU(), 1e-9)
	assert.Equal(t, sim.CollectState(), restored.CollectState())
}

func TestRestoreStateRejectsBadData(t *testing.T) {
	sim := testSim()
	sd := sim.CollectState()

	bad := sd
	bad.Version = 99
	require.False(t, sim.RestoreState(bad))

	bad = sd
	bad.Clock.Day = 0
	require.False(t, sim.RestoreState(bad))

	bad = sd
	bad.Buildings = nil
	require.False(t, sim.RestoreState(bad))

	// Spent AU beyond the phase budget cannot come from a healthy save.
	bad = sd
	bad.UsedAU = PhaseAUFor(bad.Clock.Phase) + 0.5
	require.False(t, sim.RestoreState(bad))

	bad = sd
	bad.UsedAU = -1
	require.False(t, sim.RestoreState(bad))
}

func TestCollectStateIsDeepCopy(t *testing.T) {
	sim := testSim()
	sd := sim.CollectState()
	before := len(sd.Nodes)

	// Mutating the live sim must not leak into the snapshot.
	sim.Map.Node("n-00-00").Advance(world.NodeExplored)
	sim.AdvancePhase()

	assert.Len(t, sd.Nodes, before)
	assert.Equal(t, world.NodeDiscovered, sd.Nodes[0].State)
	assert.Equal(t, 1, sd.Clock.Day)
}
