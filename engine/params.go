/*
params.go - Caller-supplied simulation parameters

PURPOSE:
  Bundles every scalar the caller can tune: productivity, working time,
  unit divisors, split shares, coefficients and the optional shift
  multiplier. Absent values are filled with documented defaults; range
  violations are fatal INVALID_PARAMETER errors (see errors.go).

DEFAULTS:
  Productivity       100 %        ParcelsPerSack      5
  HoursPerDay        8            LettersPerSack      250
  IdleMinutes        0            LettersPerCaisson   400
  WorkingDays        264          LettersPerLiasse    50
  Shares             0            Complexity/Geography 1
  National/International share 1  Shift               0 (disabled)

VALIDATION RANGES:
  Productivity 1..200, HoursPerDay 1..24, IdleMinutes >= 0, shares in
  [0,1], coefficients >= 1, shift in {0,1,2,3}, divisors > 0.

SEE ALSO:
  - volume.go: consumes shares and divisors
  - aggregate.go: consumes productivity, hours/day, idle, shift
*/
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tawazoon/staffing-engine/reference"
)

// Parameters are the caller-supplied scalars of one simulation.
type Parameters struct {
	// Productivity is a percentage in 1..200; 100 means nominal pace.
	Productivity decimal.Decimal

	// HoursPerDay is the working-hours-per-day base (1..24).
	HoursPerDay decimal.Decimal

	// IdleMinutes is the non-productive time per day, in minutes (>= 0).
	IdleMinutes decimal.Decimal

	// WorkingDays is the number of worked days per year.
	WorkingDays int

	// Unit divisors (items per container).
	ParcelsPerSack    decimal.Decimal
	LettersPerSack    decimal.Decimal
	LettersPerCaisson decimal.Decimal
	LettersPerLiasse  decimal.Decimal

	// Split shares, each in [0,1].
	AxesShareArrival   decimal.Decimal
	AxesShareDeparture decimal.Decimal
	CollecteShare      decimal.Decimal
	RetourShare        decimal.Decimal

	// Phase shares (multiplicative, applied by phase-tagged tasks).
	NationalShare      decimal.Decimal
	InternationalShare decimal.Decimal

	// Coefficients, each >= 1. They only ever increase volume.
	Complexity decimal.Decimal
	Geography  decimal.Decimal

	// Shift is the optional shift multiplier: 0 disables it, otherwise
	// one of 1, 2, 3. It scales hours for shift-qualifying roles only.
	Shift int
}

// DefaultParameters returns the documented parameter defaults.
func DefaultParameters() Parameters {
	return Parameters{
		Productivity:       decimal.NewFromInt(100),
		HoursPerDay:        decimal.NewFromInt(8),
		IdleMinutes:        decimal.Zero,
		WorkingDays:        reference.DefaultWorkingDaysPerYear,
		ParcelsPerSack:     decimal.NewFromInt(5),
		LettersPerSack:     decimal.NewFromInt(250),
		LettersPerCaisson:  decimal.NewFromInt(400),
		LettersPerLiasse:   decimal.NewFromInt(50),
		AxesShareArrival:   decimal.Zero,
		AxesShareDeparture: decimal.Zero,
		CollecteShare:      decimal.Zero,
		RetourShare:        decimal.Zero,
		NationalShare:      decimal.NewFromInt(1),
		InternationalShare: decimal.NewFromInt(1),
		Complexity:         decimal.NewFromInt(1),
		Geography:          decimal.NewFromInt(1),
	}
}

var (
	one       = decimal.NewFromInt(1)
	hundred   = decimal.NewFromInt(100)
	sixty     = decimal.NewFromInt(60)
	maxHours  = decimal.NewFromInt(24)
	maxProd   = decimal.NewFromInt(200)
	minNetHrs = decimal.RequireFromString("0.1")
)

// Validate checks every range; the first violation is returned as an
// INVALID_PARAMETER simulation error.
func (p Parameters) Validate() error {
	if p.Productivity.LessThan(one) || p.Productivity.GreaterThan(maxProd) {
		return invalidParam("productivity must be in 1..200, got %s", p.Productivity)
	}
	if p.HoursPerDay.LessThan(one) || p.HoursPerDay.GreaterThan(maxHours) {
		return invalidParam("hours per day must be in 1..24, got %s", p.HoursPerDay)
	}
	if p.IdleMinutes.IsNegative() {
		return invalidParam("idle minutes must be >= 0, got %s", p.IdleMinutes)
	}
	if p.WorkingDays <= 0 {
		return invalidParam("working days must be > 0, got %d", p.WorkingDays)
	}
	for _, d := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"parcels per sack", p.ParcelsPerSack},
		{"letters per sack", p.LettersPerSack},
		{"letters per caisson", p.LettersPerCaisson},
		{"letters per liasse", p.LettersPerLiasse},
	} {
		if !d.value.IsPositive() {
			return invalidParam("%s must be > 0, got %s", d.name, d.value)
		}
	}
	for _, s := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"axes share arrival", p.AxesShareArrival},
		{"axes share departure", p.AxesShareDeparture},
		{"collecte share", p.CollecteShare},
		{"retour share", p.RetourShare},
	} {
		if s.value.IsNegative() || s.value.GreaterThan(one) {
			return invalidParam("%s must be in [0,1], got %s", s.name, s.value)
		}
	}
	for _, c := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"complexity coefficient", p.Complexity},
		{"geography coefficient", p.Geography},
	} {
		if c.value.LessThan(one) {
			return invalidParam("%s must be >= 1, got %s", c.name, c.value)
		}
	}
	if p.NationalShare.IsNegative() || p.InternationalShare.IsNegative() {
		return invalidParam("phase shares must be >= 0")
	}
	if p.Shift < 0 || p.Shift > 3 {
		return invalidParam("shift must be 0..3, got %d", p.Shift)
	}
	return nil
}

// withDefaults fills absent (zero-valued) optional parameters with
// their defaults. This is silent normalisation: no warning is emitted.
func (p Parameters) withDefaults() Parameters {
	def := DefaultParameters()
	if p.Productivity.IsZero() {
		p.Productivity = def.Productivity
	}
	if p.HoursPerDay.IsZero() {
		p.HoursPerDay = def.HoursPerDay
	}
	if p.WorkingDays == 0 {
		p.WorkingDays = def.WorkingDays
	}
	if p.ParcelsPerSack.IsZero() {
		p.ParcelsPerSack = def.ParcelsPerSack
	}
	if p.LettersPerSack.IsZero() {
		p.LettersPerSack = def.LettersPerSack
	}
	if p.LettersPerCaisson.IsZero() {
		p.LettersPerCaisson = def.LettersPerCaisson
	}
	if p.LettersPerLiasse.IsZero() {
		p.LettersPerLiasse = def.LettersPerLiasse
	}
	if p.NationalShare.IsZero() {
		p.NationalShare = def.NationalShare
	}
	if p.InternationalShare.IsZero() {
		p.InternationalShare = def.InternationalShare
	}
	if p.Complexity.IsZero() {
		p.Complexity = def.Complexity
	}
	if p.Geography.IsZero() {
		p.Geography = def.Geography
	}
	return p
}

func invalidParam(format string, args ...any) error {
	return &SimulationError{
		Kind:   KindInvalidParameter,
		Detail: fmt.Sprintf(format, args...),
		err:    ErrInvalidParameter,
	}
}

// divisorFor returns the unit divisor for a task's unit of measure.
// The sack divisor depends on the flow carried by the task (parcel
// sacks vs letter sacks); every non-container unit divides by 1.
func (p Parameters) divisorFor(unit Unit, flow string) decimal.Decimal {
	switch unit {
	case UnitSack:
		if reference.Equal(flow, reference.FlowParcel) {
			return p.ParcelsPerSack
		}
		return p.LettersPerSack
	case UnitCaisson:
		return p.LettersPerCaisson
	case UnitBundle:
		return p.LettersPerLiasse
	default:
		return one
	}
}
