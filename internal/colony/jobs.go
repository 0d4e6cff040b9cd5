package colony

// JobID identifies a worker assignment.
type JobID uint8

const (
	JobScavenger JobID = iota
	JobWaterCollector
	JobHunter
	JobEngineer
	JobGuard
	JobScout

	jobCount
)

// JobCount is the number of defined jobs.
const JobCount = int(jobCount)

func (j JobID) String() string {
	switch j {
	case JobScavenger:
		return "scavenger"
	case JobWaterCollector:
		return "water_collector"
	case JobHunter:
		return "hunter"
	case JobEngineer:
		return "engineer"
	case JobGuard:
		return "guard"
	case JobScout:
		return "scout"
	default:
		return "unknown"
	}
}

// Valid reports whether the id names a defined job.
func (j JobID) Valid() bool {
	return j < jobCount
}

// Productive reports whether the job yields output. Guards and scouts keep
// the settlement safe and the map legible; they produce nothing.
func (j JobID) Productive() bool {
	switch j {
	case JobScavenger, JobWaterCollector, JobHunter, JobEngineer:
		return true
	default:
		return false
	}
}

// OutputResource returns the ledger resource a job produces. Engineers
// produce Work, which is not a ledger resource, so ok is false for them
// as well as for non-productive jobs.
func (j JobID) OutputResource() (ResourceID, bool) {
	switch j {
	case JobScavenger:
		return ResourceScrap, true
	case JobWaterCollector:
		return ResourceWater, true
	case JobHunter:
		return ResourceFood, true
	default:
		return 0, false
	}
}

// Workplace returns the building whose level multiplies the job's output.
func (j JobID) Workplace() BuildingID {
	switch j {
	case JobScavenger:
		return BuildingScrapyard
	case JobWaterCollector:
		return BuildingWaterPurifier
	case JobHunter:
		return BuildingSmokehouse
	case JobEngineer:
		return BuildingWorkshop
	case JobGuard:
		return BuildingWatchtower
	case JobScout:
		return BuildingWatchtower
	default:
		return BuildingShelter
	}
}

// Population tracks headcount and aggregate job assignments. Workers away
// on expedition are reserved out of the roster until they return.
type Population struct {
	Count        int           `json:"count"`
	OnExpedition int           `json:"on_expedition"`
	Assignments  [jobCount]int `json:"assignments"`
}

// NewPopulation starts everyone unassigned.
func NewPopulation(count int) Population {
	if count < 0 {
		count = 0
	}
	return Population{Count: count}
}

// Assigned returns the worker count on a job.
func (p *Population) Assigned(j JobID) int {
	if !j.Valid() {
		return 0
	}
	return p.Assignments[j]
}

// TotalAssigned returns the number of workers with any job.
func (p *Population) TotalAssigned() int {
	total := 0
	for _, n := range p.Assignments {
		total += n
	}
	return total
}

// Idle returns the number of workers with no job and no expedition.
func (p *Population) Idle() int {
	return p.Count - p.TotalAssigned() - p.OnExpedition
}

// Assign sets the worker count on a job. Returns false without mutating if
// the job is unknown, count is negative, or the assignment would exceed the
// workers actually present.
func (p *Population) Assign(j JobID, count int) bool {
	if !j.Valid() || count < 0 {
		return false
	}
	if p.TotalAssigned()-p.Assignments[j]+count+p.OnExpedition > p.Count {
		return false
	}
	p.Assignments[j] = count
	return true
}

// Reserve takes n idle workers out of the roster for an expedition.
// Returns false without mutating if fewer than n are idle.
func (p *Population) Reserve(n int) bool {
	if n < 0 || p.Idle() < n {
		return false
	}
	p.OnExpedition += n
	return true
}

// Release returns n expedition workers to the idle pool.
func (p *Population) Release(n int) {
	if n < 0 {
		return
	}
	p.OnExpedition -= n
	if p.OnExpedition < 0 {
		p.OnExpedition = 0
	}
}
