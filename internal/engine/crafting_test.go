package engine

import (
	"math"
	"testing"

	"github.com/torvik/ashfall/internal/colony"
)

func TestCreateTaskScalesWorkByQuantity(t *testing.T) {
	c := NewCrafting()
	task := c.CreateTask(RecipeMetalParts, 3)
	if task == nil {
		t.Fatalf("known recipe with positive quantity returned nil")
	}
	want := Recipes[RecipeMetalParts].WorkRequired * 3
	if task.WorkRequired != want {
		t.Fatalf("work required = %v, want %v", task.WorkRequired, want)
	}
	if task.Status != TaskPending {
		t.Fatalf("new task status = %s, want pending", task.Status)
	}
}

func TestCreateTaskRejectsBadInput(t *testing.T) {
	c := NewCrafting()
	if c.CreateTask("no_such_recipe", 1) != nil {
		t.Fatalf("unknown recipe should return nil")
	}
	if c.CreateTask(RecipeMetalParts, 0) != nil {
		t.Fatalf("zero quantity should return nil")
	}
	if c.CreateTask(RecipeMetalParts, -2) != nil {
		t.Fatalf("negative quantity should return nil")
	}
	if c.CreateTask(RecipeMetalParts, 1) == nil {
		t.Fatalf("valid task rejected")
	}
	if c.CreateTask(RecipeClothBolt, 1) != nil {
		t.Fatalf("second task while one is active should return nil")
	}
}

func TestWorkPool(t *testing.T) {
	c := NewCrafting()
	c.AddWork(50)
	c.AddWork(-10) // ignored
	if c.Work() != 50 {
		t.Fatalf("work pool = %v, want 50", c.Work())
	}
	if got := c.ConsumeWork(30); got != 30 {
		t.Fatalf("consumed %v, want 30", got)
	}
	if got := c.ConsumeWork(100); got != 20 {
		t.Fatalf("overdraw consumed %v, want 20", got)
	}
	if c.Work() != 0 {
		t.Fatalf("pool should be empty, has %v", c.Work())
	}
}

func TestAccrueEngineerWork(t *testing.T) {
	// Flat 60 Work per engineer-AU, workshop level never enters into it.
	if got := AccrueEngineerWork(1, 1.0); got != 60 {
		t.Fatalf("one engineer-AU = %v Work, want 60", got)
	}
	if got := AccrueEngineerWork(3, 0.5); got != 90 {
		t.Fatalf("3 engineers half phase = %v Work, want 90", got)
	}
	if got := AccrueEngineerWork(0, 1.0); got != 0 {
		t.Fatalf("no engineers accrued %v Work", got)
	}
}

func TestAdvanceProgressCompletesTask(t *testing.T) {
	c := NewCrafting()
	c.CreateTask(RecipeMetalParts, 3) // 60 Work

	used, done, task := c.AdvanceProgress(25)
	if used != 25 || done {
		t.Fatalf("first pass: used=%v done=%v", used, done)
	}
	if task.Status != TaskInProgress {
		t.Fatalf("status = %s, want in_progress", task.Status)
	}

	used, done, task = c.AdvanceProgress(50)
	if used != 35 || !done {
		t.Fatalf("second pass: used=%v done=%v, want 35/true", used, done)
	}
	if task.Status != TaskCompleted {
		t.Fatalf("status = %s, want completed", task.Status)
	}
	if c.Active != nil {
		t.Fatalf("completed task still active")
	}
	if len(c.History) != 1 || c.History[0].Status != TaskCompleted {
		t.Fatalf("completed task missing from history")
	}
}

func TestCancelTask(t *testing.T) {
	c := NewCrafting()
	if c.CancelTask() {
		t.Fatalf("cancel with no task should report false")
	}
	c.CreateTask(RecipeClothBolt, 1)
	if !c.CancelTask() {
		t.Fatalf("cancel failed")
	}
	if c.Active != nil || len(c.History) != 1 || c.History[0].Status != TaskCancelled {
		t.Fatalf("cancelled task not moved to history")
	}
}

func TestCanCraftOrderOfChecks(t *testing.T) {
	c := NewCrafting()
	stock := map[colony.ResourceID]float64{colony.ResourceScrap: 100}

	if check := c.CanCraft("bogus", 1, stock, 1); check.OK || check.Reason != ReasonUnknownRecipeOrTech {
		t.Fatalf("unknown recipe: %+v", check)
	}
	if check := c.CanCraft(RecipeMetalParts, 1, stock, 0); check.OK || check.Reason != ReasonMissingBuilding {
		t.Fatalf("no workshop: %+v", check)
	}

	poor := map[colony.ResourceID]float64{colony.ResourceScrap: 3}
	check := c.CanCraft(RecipeMetalParts, 1, poor, 1)
	if check.OK || check.Reason != ReasonInsufficientResources || len(check.Missing) != 1 {
		t.Fatalf("missing materials: %+v", check)
	}
	if check.Missing[0].Resource != colony.ResourceScrap || check.Missing[0].Amount != 7 {
		t.Fatalf("missing list wrong: %+v", check.Missing)
	}

	// Materials fine, Work pool empty.
	if check := c.CanCraft(RecipeMetalParts, 1, stock, 1); check.OK {
		t.Fatalf("no Work should block: %+v", check)
	}
	c.AddWork(20)
	if check := c.CanCraft(RecipeMetalParts, 1, stock, 1); !check.OK {
		t.Fatalf("craft should be possible: %+v", check)
	}
}

func TestCraftImmediateAtomicCommit(t *testing.T) {
	c := NewCrafting()
	c.AddWork(20)
	ledger := colony.NewLedger(map[colony.ResourceID]float64{
		colony.ResourceScrap:      100,
		colony.ResourceMetalParts: 50,
	})
	ledger.Add(colony.ResourceScrap, 15)

	stock := map[colony.ResourceID]float64{colony.ResourceScrap: 15}
	out := c.CraftImmediate(RecipeMetalParts, 1, 1, stock, ledger.ConsumeAll, ledger.AddAll)
	if !out.Success {
		t.Fatalf("craft failed: %+v", out)
	}
	if out.Output != colony.ResourceMetalParts || out.Amount != 2 {
		t.Fatalf("output = %v x%v, want metal_parts x2", out.Output, out.Amount)
	}
	if got := ledger.Amount(colony.ResourceScrap); got != 5 {
		t.Fatalf("scrap after craft = %v, want 5", got)
	}
	if got := ledger.Amount(colony.ResourceMetalParts); got != 2 {
		t.Fatalf("metal parts after craft = %v, want 2", got)
	}
	if c.Work() != 0 {
		t.Fatalf("work not drawn: %v", c.Work())
	}
}

func TestCraftImmediateNoPartialConsumptionOnFailure(t *testing.T) {
	c := NewCrafting()
	c.AddWork(5) // not enough for the recipe's 20
	ledger := colony.NewLedger(map[colony.ResourceID]float64{colony.ResourceScrap: 100})
	ledger.Add(colony.ResourceScrap, 50)

	stock := map[colony.ResourceID]float64{colony.ResourceScrap: 50}
	out := c.CraftImmediate(RecipeMetalParts, 1, 1, stock, ledger.ConsumeAll, ledger.AddAll)
	if out.Success {
		t.Fatalf("craft should fail on Work")
	}
	if ledger.Amount(colony.ResourceScrap) != 50 || c.Work() != 5 {
		t.Fatalf("failed craft consumed something: scrap=%v work=%v",
			ledger.Amount(colony.ResourceScrap), c.Work())
	}
}

func TestCraftImmediateWorkshopScalesOutput(t *testing.T) {
	c := NewCrafting()
	c.AddWork(20)
	ledger := colony.NewLedger(map[colony.ResourceID]float64{
		colony.ResourceScrap:      100,
		colony.ResourceMetalParts: 50,
	})
	ledger.Add(colony.ResourceScrap, 10)

	stock := map[colony.ResourceID]float64{colony.ResourceScrap: 10}
	out := c.CraftImmediate(RecipeMetalParts, 1, 3, stock, ledger.ConsumeAll, ledger.AddAll)
	if !out.Success {
		t.Fatalf("craft failed: %+v", out)
	}
	want := 2 * WorkshopEfficiency(3) // 2 x 1.4
	if math.Abs(out.Amount-want) > 1e-9 {
		t.Fatalf("level-3 workshop output = %v, want %v", out.Amount, want)
	}
}
