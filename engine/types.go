/*
Package engine implements the workload-to-FTE calculation core.

PURPOSE:
  Given a centre (or one job station of it), a grid of annual input
  volumes and a bag of parameters, the engine derives each task's daily
  applied volume, converts it to hours through unit times and
  productivity, groups hours by job station and converts them to
  full-time equivalents (FTE).

KEY CONCEPTS IN THIS FILE (types.go):
  - Centre / CentreJobStation / Task: the organisation tree
  - VolumeEntry / VolumeKey: the sparse annual volume grid
  - Parameters: caller-supplied scalars (productivity, divisors, shares)
  - SimulationRequest / SimulationResult: the single public contract

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for every volume, minute and hour
  2. Statelessness: request-scoped values are built fresh per call
  3. Type safety: distinct ID types for centres, stations and tasks
  4. Traceability: every task result carries a formula trace

USAGE:
  eng := engine.New(catalogue, engine.DefaultRegistry(), repo)
  res, err := eng.Simulate(ctx, engine.SimulationRequest{
      CentreID: 101,
      Volumes:  []engine.VolumeEntry{{Flow: "COLIS", Direction: "ARRIVEE", Segment: "GLOBAL", Annual: decimal.NewFromInt(264000)}},
      Params:   engine.DefaultParameters(),
  })

SEE ALSO:
  - volume.go: per-call volume context and derived aggregates
  - strategy.go: strategy registry and selection
  - rules.go: the standard rule table
  - aggregate.go: hours -> FTE aggregation
*/
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/tawazoon/staffing-engine/reference"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type CentreID int64
type StationID int64
type TaskID int64

// =============================================================================
// LABOUR CLASSIFICATION
// =============================================================================

// LabourClass classifies a job-station template for breakdown totals.
type LabourClass string

const (
	LabourDirect         LabourClass = "direct"
	LabourIndirect       LabourClass = "indirect"
	LabourAdministrative LabourClass = "administrative"
)

// =============================================================================
// ORGANISATION ENTITIES
// =============================================================================

// Centre is an operational site.
type Centre struct {
	ID             CentreID
	Label          string
	Region         string
	Classification int
	AdminStaff     int
}

// JobStationTemplate is a named role (sorter, counter clerk, ...).
type JobStationTemplate struct {
	ID    int64
	Name  string
	Class LabourClass
}

// CentreJobStation assigns a job-station template to a centre.
// A centre exclusively owns its job-station assignments.
type CentreJobStation struct {
	ID                 StationID
	CentreID           CentreID
	Template           JobStationTemplate
	Headcount          int
	ResponsibilityCode string
}

// =============================================================================
// UNITS OF MEASURE
// =============================================================================

// Unit is a task's unit of measure. Unknown units get UnitOther and a
// per-task warning; they never abort a simulation.
type Unit string

const (
	UnitSack    Unit = "sac"
	UnitCaisson Unit = "caisson"
	UnitParcel  Unit = "colis"
	UnitBundle  Unit = "liasse"
	UnitLetter  Unit = "courrier"
	UnitTruck   Unit = "camion"
	UnitDepeche Unit = "depeche"
	UnitOther   Unit = "autre"
)

// ParseUnit resolves a free-text unit of measure to a canonical Unit.
// The second return value is false for unrecognised units.
func ParseUnit(s string) (Unit, bool) {
	switch reference.Normalize(s) {
	case "sac", "sacs":
		return UnitSack, true
	case "caisson", "caissons":
		return UnitCaisson, true
	case "colis":
		return UnitParcel, true
	case "liasse", "liasses":
		return UnitBundle, true
	case "courrier", "courriers", "lettre", "lettres":
		return UnitLetter, true
	case "camion", "camions":
		return UnitTruck, true
	case "depeche", "depeches":
		return UnitDepeche, true
	}
	return UnitOther, false
}

// =============================================================================
// TASK
// =============================================================================

// VolumeKey addresses one cell of the volume grid. Codes are stored in
// canonical (normalised) form.
type VolumeKey struct {
	Flow      string
	Direction string
	Segment   string
}

// TaskFlags records repository-detected anomalies on a task. Flagged
// tasks still flow through the engine; they emit zero hours plus a
// warning instead of failing the call.
type TaskFlags struct {
	MissingUnitTime bool
	UnknownUnit     bool
}

// Task is a unit of work at one CentreJobStation.
//
// Invariants: UnitTimeMin > 0 (unless flagged) and the task is owned by
// exactly one CentreJobStation.
type Task struct {
	ID        TaskID
	StationID StationID
	Name      string

	// Family is the coarse task-family tag used by rules (tri, arrivee,
	// depart, distribution, guichet, collecte, ...).
	Family string

	// Product is the free-text flow tag used by rules, matched
	// case- and accent-insensitively.
	Product string

	Unit        Unit
	UnitTimeMin decimal.Decimal

	// BaseCalcul is a percentage multiplier on the applied volume
	// (commonly 40, 60 or 100). Nil or unknown values mean 100.
	BaseCalcul *int

	// Phase tags the task national / international; empty means neither.
	Phase string

	// Key associates the task with one volume cell; nil when the task is
	// driven by an aggregate rule instead.
	Key *VolumeKey

	Flags TaskFlags
}

// baseCalculPercent returns the task's base-calcul as a decimal
// percentage, defaulting to 100 for nil or non-positive values.
func (t Task) baseCalculPercent() decimal.Decimal {
	if t.BaseCalcul == nil || *t.BaseCalcul <= 0 {
		return decimal.NewFromInt(100)
	}
	return decimal.NewFromInt(int64(*t.BaseCalcul))
}

// =============================================================================
// VOLUME GRID INPUT
// =============================================================================

// VolumeEntry is one cell of the caller's sparse annual volume grid,
// with codes as supplied (resolution happens against the catalogue).
type VolumeEntry struct {
	Flow      string
	Direction string
	Segment   string
	Annual    decimal.Decimal
}

// =============================================================================
// REQUEST / RESULT
// =============================================================================

// SimulationRequest is the engine's single public input contract.
type SimulationRequest struct {
	CentreID CentreID

	// StationID narrows the simulation to one job station when non-nil.
	StationID *StationID

	Volumes []VolumeEntry
	Params  Parameters
}

// TaskResult reports how one task's workload was derived.
type TaskResult struct {
	ID           TaskID
	StationID    StationID
	Name         string
	Unit         Unit
	AppliedDaily decimal.Decimal
	Minutes      decimal.Decimal
	Hours        decimal.Decimal
	Trace        string
}

// StationResult aggregates hours and FTE for one job station.
type StationResult struct {
	ID         StationID
	Label      string
	Class      LabourClass
	Headcount  int
	Hours      decimal.Decimal
	FTEExact   decimal.Decimal
	FTERounded decimal.Decimal

	// Delta = FTERounded - Headcount.
	Delta decimal.Decimal
}

// ClassTotal aggregates hours and rounded FTE per labour classification.
type ClassTotal struct {
	Class      LabourClass
	Hours      decimal.Decimal
	FTERounded decimal.Decimal
}

// SimulationResult is the engine's single public output contract.
type SimulationResult struct {
	CentreID       CentreID
	StrategyName   string
	TotalHours     decimal.Decimal
	NetHoursPerDay decimal.Decimal
	FTEExact       decimal.Decimal
	FTERounded     decimal.Decimal
	Stations       []StationResult
	Tasks          []TaskResult
	ByClass        []ClassTotal
	Warnings       []Warning
}

// =============================================================================
// WARNINGS
// =============================================================================

// WarningKind discriminates per-task recoverable anomalies.
type WarningKind string

const (
	WarnMissingUnitTime WarningKind = "missing_unit_time"
	WarnUnknownUnit     WarningKind = "unknown_unit"
	WarnNoRuleMatched   WarningKind = "no_rule_matched"
	WarnPhaseUnparsed   WarningKind = "phase_unparsed"
	WarnClampedZero     WarningKind = "clamped_to_zero"
)

// Warning is a non-fatal anomaly accumulated on the response.
type Warning struct {
	Kind    WarningKind
	TaskID  TaskID
	Message string
}
