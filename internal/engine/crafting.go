// Crafting: a Work accumulator fed by engineer labor, a recipe catalog,
// and an all-or-nothing conversion of Work plus materials into goods.
package engine

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/torvik/ashfall/internal/balance"
	"github.com/torvik/ashfall/internal/colony"
)

// RecipeID identifies a workshop recipe.
type RecipeID string

const (
	RecipeMetalParts  RecipeID = "metal_parts"
	RecipeClothBolt   RecipeID = "cloth_bolt"
	RecipeAmmoBatch   RecipeID = "ammo_batch"
	RecipeHerbalTonic RecipeID = "herbal_tonic"
)

// Recipe converts input materials plus Work into one output stack.
type Recipe struct {
	ID           RecipeID       `json:"id"`
	Output       colony.Stack   `json:"output"`
	Inputs       []colony.Stack `json:"inputs"`
	WorkRequired float64        `json:"work_required"`
}

// Recipes is the closed recipe catalog.
var Recipes = map[RecipeID]Recipe{
	RecipeMetalParts: {
		ID:           RecipeMetalParts,
		Output:       colony.Stack{Resource: colony.ResourceMetalParts, Amount: 2},
		Inputs:       []colony.Stack{{Resource: colony.ResourceScrap, Amount: 10}},
		WorkRequired: 20,
	},
	RecipeClothBolt: {
		ID:           RecipeClothBolt,
		Output:       colony.Stack{Resource: colony.ResourceCloth, Amount: 2},
		Inputs:       []colony.Stack{{Resource: colony.ResourceScrap, Amount: 6}},
		WorkRequired: 15,
	},
	RecipeAmmoBatch: {
		ID:     RecipeAmmoBatch,
		Output: colony.Stack{Resource: colony.ResourceAmmo, Amount: 5},
		Inputs: []colony.Stack{
			{Resource: colony.ResourceMetalParts, Amount: 2},
			{Resource: colony.ResourceScrap, Amount: 4},
		},
		WorkRequired: 30,
	},
	RecipeHerbalTonic: {
		ID:     RecipeHerbalTonic,
		Output: colony.Stack{Resource: colony.ResourceMedicine, Amount: 2},
		Inputs: []colony.Stack{
			{Resource: colony.ResourceHerbs, Amount: 3},
			{Resource: colony.ResourceCloth, Amount: 1},
		},
		WorkRequired: 25,
	},
}

// TaskStatus is the lifecycle state of a crafting task.
type TaskStatus uint8

const (
	TaskPending TaskStatus = iota
	TaskInProgress
	TaskCompleted
	TaskCancelled
)

func (s TaskStatus) String() string {
	switch s {
	case TaskPending:
		return "pending"
	case TaskInProgress:
		return "in_progress"
	case TaskCompleted:
		return "completed"
	case TaskCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Task is one queued batch craft. Terminal tasks move to the history list.
type Task struct {
	ID           string     `json:"id"`
	Recipe       RecipeID   `json:"recipe"`
	Quantity     int        `json:"quantity"`
	WorkRequired float64    `json:"work_required"`
	WorkProgress float64    `json:"work_progress"`
	Status       TaskStatus `json:"status"`
}

// Crafting owns the Work pool and the task lifecycle. One task runs at a
// time; finished and cancelled tasks append to History.
type Crafting struct {
	work    float64
	Active  *Task  `json:"active,omitempty"`
	History []Task `json:"history,omitempty"`
}

// NewCrafting returns an empty crafting state.
func NewCrafting() *Crafting {
	return &Crafting{}
}

// Work returns the accumulated Work pool.
func (c *Crafting) Work() float64 {
	return c.work
}

// AddWork deposits Work points (engineer output).
func (c *Crafting) AddWork(points float64) {
	if points > 0 {
		c.work += points
	}
}

// ConsumeWork withdraws up to points and returns what was actually taken.
func (c *Crafting) ConsumeWork(points float64) float64 {
	if points <= 0 {
		return 0
	}
	taken := math.Min(points, c.work)
	c.work -= taken
	return taken
}

// AccrueEngineerWork returns the Work produced by an engineer crew over one
// phase: flat per worker-AU, deliberately unaffected by workshop level.
func AccrueEngineerWork(workerCount int, phaseAU float64) float64 {
	if workerCount <= 0 || phaseAU <= 0 {
		return 0
	}
	return float64(workerCount) * balance.EngineerWorkPerAU * phaseAU
}

// CreateTask queues a batch craft. Returns nil for an unknown recipe, a
// non-positive quantity, or when a task is already active — callers check
// Active first.
func (c *Crafting) CreateTask(recipe RecipeID, quantity int) *Task {
	r, ok := Recipes[recipe]
	if !ok || quantity <= 0 || c.Active != nil {
		return nil
	}
	c.Active = &Task{
		ID:           uuid.NewString(),
		Recipe:       recipe,
		Quantity:     quantity,
		WorkRequired: r.WorkRequired * float64(quantity),
		Status:       TaskPending,
	}
	return c.Active
}

// AdvanceProgress applies up to workAvailable to the active task and
// returns the Work actually used. When progress reaches the requirement
// the task completes and moves to history.
func (c *Crafting) AdvanceProgress(workAvailable float64) (workUsed float64, completed bool, task *Task) {
	t := c.Active
	if t == nil || workAvailable <= 0 {
		return 0, false, t
	}

	t.Status = TaskInProgress
	remaining := t.WorkRequired - t.WorkProgress
	workUsed = math.Min(workAvailable, remaining)
	t.WorkProgress += workUsed

	if t.WorkProgress >= t.WorkRequired {
		t.Status = TaskCompleted
		c.History = append(c.History, *t)
		c.Active = nil
		return workUsed, true, t
	}
	return workUsed, false, t
}

// CancelTask aborts the active task. Work already sunk is not refunded.
func (c *Crafting) CancelTask() bool {
	if c.Active == nil {
		return false
	}
	c.Active.Status = TaskCancelled
	c.History = append(c.History, *c.Active)
	c.Active = nil
	return true
}

// CraftCheck is the verdict of a craft precondition scan.
type CraftCheck struct {
	OK      bool           `json:"ok"`
	Reason  Reason         `json:"reason,omitempty"`
	Message string         `json:"message"`
	Missing []colony.Stack `json:"missing,omitempty"`
}

// CanCraft checks whether a batch could be crafted right now: workshop
// built, materials stocked, Work pool sufficient. Checks in that order and
// reports the first failure with specifics.
func (c *Crafting) CanCraft(recipe RecipeID, quantity int, resources map[colony.ResourceID]float64, workshopLevel int) CraftCheck {
	r, ok := Recipes[recipe]
	if !ok || quantity <= 0 {
		return CraftCheck{OK: false, Reason: ReasonUnknownRecipeOrTech,
			Message: fmt.Sprintf("unknown recipe %q", recipe)}
	}
	if workshopLevel <= 0 {
		return CraftCheck{OK: false, Reason: ReasonMissingBuilding, Message: "no workshop"}
	}

	var missing []colony.Stack
	for _, in := range r.Inputs {
		need := in.Amount * float64(quantity)
		if resources[in.Resource] < need {
			missing = append(missing, colony.Stack{
				Resource: in.Resource,
				Amount:   need - resources[in.Resource],
			})
		}
	}
	if len(missing) > 0 {
		return CraftCheck{OK: false, Reason: ReasonInsufficientResources,
			Message: "insufficient materials", Missing: missing}
	}

	needWork := r.WorkRequired * float64(quantity)
	if c.work < needWork {
		return CraftCheck{OK: false, Reason: ReasonInsufficientResources,
			Message: fmt.Sprintf("insufficient Work: need %.0f, have %.0f", needWork, c.work)}
	}
	return CraftCheck{OK: true, Message: "ready"}
}

// CraftOutcome reports a completed immediate craft.
type CraftOutcome struct {
	Success bool              `json:"success"`
	Reason  Reason            `json:"reason,omitempty"`
	Message string            `json:"message"`
	Output  colony.ResourceID `json:"output"`
	Amount  float64           `json:"amount"`
}

// CraftImmediate converts materials plus Work into output in one atomic
// commit. Workshop efficiency scales the output amount, never the Work
// drawn. If any precondition fails nothing is consumed.
func (c *Crafting) CraftImmediate(recipe RecipeID, quantity int, workshopLevel int,
	resources map[colony.ResourceID]float64, consume ConsumeFunc, add AddFunc) CraftOutcome {

	check := c.CanCraft(recipe, quantity, resources, workshopLevel)
	if !check.OK {
		return CraftOutcome{Success: false, Reason: check.Reason, Message: check.Message}
	}

	r := Recipes[recipe]
	inputs := make([]colony.Stack, len(r.Inputs))
	for i, in := range r.Inputs {
		inputs[i] = colony.Stack{Resource: in.Resource, Amount: in.Amount * float64(quantity)}
	}
	if consume == nil || !consume(inputs) {
		return CraftOutcome{Success: false, Reason: ReasonInsufficientResources,
			Message: "materials no longer available"}
	}
	c.work -= r.WorkRequired * float64(quantity)

	amount := r.Output.Amount * float64(quantity) * WorkshopEfficiency(workshopLevel)
	if add != nil {
		add([]colony.Stack{{Resource: r.Output.Resource, Amount: amount}})
	}
	return CraftOutcome{
		Success: true,
		Message: fmt.Sprintf("crafted %.0f %s", amount, r.Output.Resource),
		Output:  r.Output.Resource,
		Amount:  amount,
	}
}
