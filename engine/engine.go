/*
engine.go - The simulation entry point

PURPOSE:
  Wires the pieces together: parameter validation, grid resolution
  against the reference catalogue, strategy selection, per-task rule
  evaluation and the final aggregation. Simulate is the single public
  operation of the core.

CALL STAGES:
  building_context -> evaluating_tasks -> aggregating

  A per-task failure never leaves evaluating_tasks: the task emits zero
  hours, a warning is appended and evaluation continues. Only unresolved
  reference codes, invalid parameters and missing centres abort the call
  (see errors.go).

RE-ENTRANCY:
  Every request-scoped value (volume context, warnings, result buffers)
  is allocated fresh per call. The catalogue, the registry and the
  repository are read-only after startup, so concurrent Simulate calls
  need no locks.

USAGE:
  eng := engine.New(reference.NewCatalogue(), engine.DefaultRegistry(), repo)
  res, err := eng.Simulate(ctx, req)

SEE ALSO:
  - types.go: SimulationRequest / SimulationResult
  - rules.go, variants.go: per-task evaluation
  - aggregate.go: the aggregating stage
*/
package engine

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tawazoon/staffing-engine/reference"
)

// Engine computes workforce sizing for postal sorting and distribution
// centres. Construct once at startup with New; safe for concurrent use.
type Engine struct {
	catalogue *reference.Catalogue
	registry  *Registry
	repo      Repository
}

// New builds an engine. All three collaborators are required and must
// be fully initialised before the first call.
func New(catalogue *reference.Catalogue, registry *Registry, repo Repository) *Engine {
	return &Engine{catalogue: catalogue, registry: registry, repo: repo}
}

// Simulate runs one workforce-sizing computation. It is deterministic
// and stateless: identical inputs produce identical outputs.
func (e *Engine) Simulate(ctx context.Context, req SimulationRequest) (*SimulationResult, error) {
	// --- building_context ---

	params := req.Params.withDefaults()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	grid, err := e.resolveGrid(req.Volumes)
	if err != nil {
		return nil, err
	}

	centre, err := e.repo.Centre(ctx, req.CentreID)
	if err != nil {
		return nil, centreNotFound(req.CentreID)
	}

	stations, err := e.repo.StationsForCentre(ctx, req.CentreID)
	if err != nil {
		return nil, err
	}
	if req.StationID != nil {
		stations = filterStations(stations, *req.StationID)
	}
	if len(stations) == 0 {
		return nil, centreNotFound(req.CentreID)
	}

	tasks, err := e.repo.TasksForCentre(ctx, req.CentreID, req.StationID)
	if err != nil {
		return nil, err
	}

	strategy := e.registry.ForCentre(centre)
	vol := NewVolumeContext(grid, params)
	warn := &Warnings{}

	stationByID := make(map[StationID]CentreJobStation, len(stations))
	for _, st := range stations {
		stationByID[st.ID] = st
	}

	// --- evaluating_tasks ---

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]TaskResult, 0, len(tasks))
	for _, task := range tasks {
		results = append(results, e.evaluateTask(task, strategy, vol, stationByID, warn))
	}

	// --- aggregating ---

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return aggregate(req.CentreID, strategy.Name(), stations, results, params, warn), nil
}

// evaluateTask resolves one task through the strategy and converts the
// applied volume to hours. Never fails; anomalies become warnings.
func (e *Engine) evaluateTask(task Task, strategy Strategy, vol *VolumeContext, stations map[StationID]CentreJobStation, warn *Warnings) TaskResult {
	res := TaskResult{
		ID:        task.ID,
		StationID: task.StationID,
		Name:      task.Name,
		Unit:      task.Unit,
	}

	// Flagged or zero unit times emit zero workload.
	if task.Flags.MissingUnitTime || !task.UnitTimeMin.IsPositive() {
		warn.Addf(WarnMissingUnitTime, task.ID, "task %q: missing unit time, zero hours emitted", task.Name)
		res.Trace = strategy.Name() + ": unite de temps manquante"
		return res
	}

	applied := strategy.Apply(task, vol, warn)

	daily := vol.PerDay(applied.Annual).Mul(applied.Factor)
	if daily.IsNegative() {
		warn.Addf(WarnClampedZero, task.ID, "task %q: negative applied volume clamped to zero", task.Name)
		daily = decimal.Zero
	}

	params := vol.Params()
	hours := taskHours(daily, task.UnitTimeMin, params.Productivity)
	trace := applied.Trace

	// Shift multiplier, post-hoc on hours, qualifying roles only. It
	// stacks multiplicatively with the phase multipliers.
	if params.Shift > 1 {
		if st, ok := stations[task.StationID]; ok && shiftQualifies(st) {
			shift := decimal.NewFromInt(int64(params.Shift))
			hours = hours.Mul(shift)
			trace += " x brigade " + shift.String()
		}
	}

	res.AppliedDaily = daily
	res.Minutes = daily.Mul(task.UnitTimeMin)
	res.Hours = hours
	res.Trace = trace
	return res
}

// resolveGrid validates every grid key against the catalogue and
// accumulates duplicate cells. Codes are stored in canonical form.
func (e *Engine) resolveGrid(entries []VolumeEntry) (map[VolumeKey]decimal.Decimal, error) {
	grid := make(map[VolumeKey]decimal.Decimal, len(entries))
	for _, entry := range entries {
		flow, ok := e.catalogue.Flow(entry.Flow)
		if !ok {
			return nil, referenceUnresolved("flow", entry.Flow)
		}
		direction, ok := e.catalogue.Direction(entry.Direction)
		if !ok {
			return nil, referenceUnresolved("direction", entry.Direction)
		}
		segment, ok := e.catalogue.Segment(entry.Segment)
		if !ok {
			return nil, referenceUnresolved("segment", entry.Segment)
		}
		if entry.Annual.IsNegative() {
			return nil, invalidParam("volume for (%s,%s,%s) must be >= 0, got %s",
				flow.Code, direction.Code, segment.Code, entry.Annual)
		}
		key := VolumeKey{
			Flow:      reference.Normalize(flow.Code),
			Direction: reference.Normalize(direction.Code),
			Segment:   reference.Normalize(segment.Code),
		}
		grid[key] = grid[key].Add(entry.Annual)
	}
	return grid, nil
}

func filterStations(stations []CentreJobStation, id StationID) []CentreJobStation {
	var out []CentreJobStation
	for _, st := range stations {
		if st.ID == id {
			out = append(out, st)
		}
	}
	return out
}
