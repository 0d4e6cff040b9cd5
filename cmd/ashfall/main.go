// Command ashfall runs the settlement simulation headless: a scripted
// caretaker plays the colony for a number of days, saving snapshots along
// the way.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/torvik/ashfall/internal/balance"
	"github.com/torvik/ashfall/internal/colony"
	"github.com/torvik/ashfall/internal/engine"
	"github.com/torvik/ashfall/internal/persistence"
	"github.com/torvik/ashfall/internal/world"
)

func main() {
	days := flag.Int("days", 30, "days to simulate")
	seed := flag.Uint64("seed", 0, "override tuning seed (0 = keep tuning value)")
	dbPath := flag.String("db", "data/ashfall.db", "sqlite save path")
	tuningPath := flag.String("tuning", "", "optional tuning YAML")
	slot := flag.String("slot", "autorun", "save slot name")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	tuning := balance.DefaultTuning()
	if *tuningPath != "" {
		var err error
		tuning, err = balance.LoadTuning(*tuningPath)
		if err != nil {
			slog.Error("failed to load tuning", "path", *tuningPath, "error", err)
			os.Exit(1)
		}
	}
	if *seed != 0 {
		tuning.Seed = *seed
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(*dbPath), 0755)
	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", *dbPath)

	// ── Load or Generate ─────────────────────────────────────────────
	sim := engine.NewSimulation(tuning)
	if sd, ok, err := db.LoadSnapshot(*slot); err != nil {
		slog.Error("failed to load snapshot", "error", err)
		os.Exit(1)
	} else if ok {
		if sim.RestoreState(sd) {
			slog.Info("snapshot restored", "slot", *slot, "clock", sim.Clock.String())
		} else {
			slog.Warn("snapshot incompatible, starting fresh", "slot", *slot)
		}
	} else {
		slog.Info("no snapshot found, starting fresh",
			"seed", tuning.Seed, "population", tuning.StartingPopulation)
	}

	// ── Run ───────────────────────────────────────────────────────────
	startDay := sim.Clock.Day
	for sim.Clock.Day < startDay+*days {
		report := sim.AdvancePhase()
		caretaker(sim)

		if report.NewDay {
			if err := db.SaveSnapshot(*slot, sim.CollectState()); err != nil {
				slog.Error("daily save failed", "error", err)
			}
		}
	}

	if err := db.SaveSnapshot(*slot, sim.CollectState()); err != nil {
		slog.Error("final save failed", "error", err)
	}

	// ── Summary ───────────────────────────────────────────────────────
	st := sim.Stats
	fmt.Printf("\nAshfall — %s\n", sim.Clock)
	fmt.Printf("  phases run:      %s\n", humanize.Comma(int64(st.PhasesRun)))
	fmt.Printf("  VU produced:     %s\n", humanize.Commaf(st.ProducedVU))
	fmt.Printf("  water consumed:  %s\n", humanize.Commaf(st.WaterConsumed))
	fmt.Printf("  food consumed:   %s\n", humanize.Commaf(st.FoodConsumed))
	fmt.Printf("  shortages:       %d\n", st.Shortages)
	fmt.Printf("  crafts:          %d\n", st.CraftsCompleted)
	fmt.Printf("  expeditions:     %d\n", st.ExpeditionsCompleted)
	for id := colony.ResourceID(0); int(id) < colony.ResourceCount; id++ {
		if amt := sim.Ledger.Amount(id); amt > 0 {
			fmt.Printf("  %-15s %.1f / %.0f\n", id.String()+":", amt, sim.Ledger.Cap(id))
		}
	}
}

// caretaker is the scripted player: keep the roster balanced, build out the
// settlement, craft when the workshop can, and push expeditions outward.
func caretaker(sim *engine.Simulation) {
	balanceRoster(sim)

	// Settle a finished expedition before anything else.
	if e := sim.Exploration.Active; e != nil && e.Status == engine.ExpeditionCompleted {
		if report, res := sim.CompleteExpedition(); res.Success {
			slog.Info("expedition settled", "node", report.Node, "stacks", len(report.Loot))
		}
	}

	// Build order: production first, then reach, then storage.
	order := []colony.BuildingID{
		colony.BuildingScrapyard,
		colony.BuildingWaterPurifier,
		colony.BuildingSmokehouse,
		colony.BuildingWorkshop,
		colony.BuildingRadioTower,
		colony.BuildingWarehouse,
		colony.BuildingWatchtower,
	}
	for _, b := range order {
		if sim.Buildings.Level(b) == 0 {
			if res := sim.BuildOrUpgrade(b); res.Success {
				slog.Info("built", "building", b)
			}
			break
		}
	}

	// Keep the ammo press warm once metallurgy-grade stock exists.
	if sim.Buildings.Level(colony.BuildingWorkshop) >= 1 {
		if out := sim.WorkshopCraft(engine.RecipeMetalParts, 1); out.Success {
			slog.Info("crafted", "output", out.Output, "amount", out.Amount)
		}
	}

	// Chart and raid the wasteland when nobody is out.
	if sim.Exploration.Active == nil {
		if node, res := sim.DiscoverNode(); res.Success {
			slog.Info("charted", "node", node.ID, "tier", node.Tier)
		}
		if target := nearestDiscovered(sim); target != "" {
			crew := []string{"crew-1", "crew-2"}
			if exp, res := sim.StartExpedition(target, crew); res.Success {
				slog.Info("expedition launched", "node", exp.Node, "total_au", exp.TotalAU)
			}
		}
	}
}

// balanceRoster keeps upkeep covered before anything else gets workers.
func balanceRoster(sim *engine.Simulation) {
	eff := engine.BuildingEfficiency(sim.Buildings.Level(colony.BuildingWaterPurifier))
	if eff == 0 {
		eff = 1
	}
	water, food, _ := engine.MinimumWorkers(sim.Pop.Count, eff)

	sim.AssignJob(colony.JobWaterCollector, water)
	sim.AssignJob(colony.JobHunter, food)

	rest := sim.Pop.Idle()
	if rest > 3 {
		sim.AssignJob(colony.JobScout, 1)
		sim.AssignJob(colony.JobEngineer, 1)
		rest -= 2
	}
	if rest > 2 {
		// Hold two back as expedition crew.
		rest -= 2
	}
	if rest > 0 {
		sim.AssignJob(colony.JobScavenger, sim.Pop.Assigned(colony.JobScavenger)+rest)
	}
}

// nearestDiscovered picks the closest discovered, unexplored node in reach.
func nearestDiscovered(sim *engine.Simulation) world.NodeID {
	radio := sim.Buildings.Level(colony.BuildingRadioTower)
	for _, n := range sim.Map.NodesWithin(balance.MaxExplorationDistance(radio)) {
		if n.State == world.NodeDiscovered && n.Distance > 0 {
			return n.ID
		}
	}
	return ""
}
