/*
rules.go - The standard rule strategy

PURPOSE:
  Implements the default volume-application rules that translate a
  task's static attributes (family, product, unit, name, volume key,
  base-calcul, phase) into an applied annual volume and a conversion
  factor. Atypical centres replace this table with a variant strategy
  (see variants.go).

MATCHING ORDER (first match wins):
   1. Direct cell            task carries a (flow, direction, segment) key
   2. Arrival line-haul      family contains "arrivee"
   3. Departure line-haul    family contains "depart"
   4. Distribution           family contains "distribution"
   5. Counter                family contains "guichet"
   6. Collecte               family contains "collecte"
   7. Retour                 task name contains "retour"
   8. Registered caisson     product ~ "recommande depart", unit caisson, base 60
   9. Ordinary sack          product ~ "ordinaire depart", unit sac, base 100
  10. Fallback               volume 0, trace "no rule matched"

CONVERSION FACTOR:
  Applied after volume selection, uniformly: unit divisor (sack/caisson/
  liasse; flow-aware for sacks), base-calcul percentage, phase multiplier
  (national/international share). Complexity and geography coefficients
  belong to the collecte rule and fold into the selected volume itself.

PURITY:
  Per-task evaluation is pure. The only side channel is the warnings
  accumulator, which never influences numeric output.

SEE ALSO:
  - strategy.go: Applied, trace and warnings plumbing
  - volume.go: the aggregates consumed here
*/
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/tawazoon/staffing-engine/reference"
)

// StandardStrategy is the default rule set for typical centres.
type StandardStrategy struct{}

// NewStandardStrategy returns the standard rule strategy.
func NewStandardStrategy() *StandardStrategy { return &StandardStrategy{} }

// Name implements Strategy.
func (s *StandardStrategy) Name() string { return "standard" }

// Apply implements Strategy.
func (s *StandardStrategy) Apply(task Task, vol *VolumeContext, warn *Warnings) Applied {
	tr := newTrace(s.Name())
	annual, matched := s.selectVolume(task, vol, tr)
	if !matched {
		warn.Addf(WarnNoRuleMatched, task.ID, "task %q: no rule matched (family=%q product=%q)", task.Name, task.Family, task.Product)
		return Applied{Annual: decimal.Zero, Factor: one, Trace: tr.String()}
	}
	factor := conversionFactor(task, vol, warn, tr)
	return Applied{Annual: annual, Factor: factor, Trace: tr.String()}
}

// selectVolume walks the rule table in order and returns the selected
// annual volume. The boolean is false only for the fallback rule.
func (s *StandardStrategy) selectVolume(task Task, vol *VolumeContext, tr *trace) (decimal.Decimal, bool) {
	flow := taskFlow(task)

	// 1. Direct cell.
	if task.Key != nil {
		q := vol.Cell(task.Key.Flow, task.Key.Direction, task.Key.Segment)
		tr.stepf("cell(%s/%s/%s)=%s/an", task.Key.Flow, task.Key.Direction, task.Key.Segment, q)
		return q, true
	}

	// 2. Arrival line-haul.
	if reference.Contains(task.Family, "arrivee") {
		q := vol.DirectionTotal(flow, reference.DirectionArrival)
		tr.stepf("total(%s/%s)=%s/an", flow, reference.DirectionArrival, q)
		if task.Unit == UnitTruck {
			share := vol.AxesShare(reference.DirectionArrival)
			q = q.Mul(share)
			tr.stepf("axes %s", share)
		}
		return q, true
	}

	// 3. Departure line-haul.
	if reference.Contains(task.Family, "depart") {
		q := vol.DirectionTotal(flow, reference.DirectionDeparture)
		tr.stepf("total(%s/%s)=%s/an", flow, reference.DirectionDeparture, q)
		if task.Unit == UnitTruck {
			share := vol.AxesShare(reference.DirectionDeparture)
			q = q.Mul(share)
			tr.stepf("axes %s", share)
		}
		return q, true
	}

	// 4. Distribution: arrival remainder after the axes split.
	if reference.Contains(task.Family, "distribution") {
		q := vol.Distribution(flow, reference.DirectionArrival)
		tr.stepf("distribution(%s)=%s/an (1-axes %s)", flow, q, vol.AxesShare(reference.DirectionArrival))
		return q, true
	}

	// 5. Counter: deposit + withdrawal.
	if reference.Contains(task.Family, "guichet") {
		q := vol.CounterTotal(flow)
		tr.stepf("guichet(%s)=%s/an", flow, q)
		return q, true
	}

	// 6. Collecte, with complexity and geography coefficients. The
	// coefficients are >= 1 and only ever increase the volume.
	if reference.Contains(task.Family, "collecte") {
		p := vol.Params()
		q := vol.Collecte(flow).Mul(p.Complexity).Mul(p.Geography)
		tr.stepf("collecte(%s)=%s/an", flow, q)
		if !p.Complexity.Equal(one) {
			tr.stepf("complexite %s", p.Complexity)
		}
		if !p.Geography.Equal(one) {
			tr.stepf("geographie %s", p.Geography)
		}
		return q, true
	}

	// 7. Retour, keyed on the task name. Arrival total drives it;
	// departure is the fallback when no arrival volume exists.
	if reference.Contains(task.Name, "retour") {
		q := vol.Retour(flow, reference.DirectionArrival)
		dir := reference.DirectionArrival
		if q.IsZero() {
			q = vol.Retour(flow, reference.DirectionDeparture)
			dir = reference.DirectionDeparture
		}
		tr.stepf("retour(%s/%s)=%s/an", flow, dir, q)
		return q, true
	}

	// 8. Registered-letter caisson.
	if matchesProduct(task, "recommand", "depart") && task.Unit == UnitCaisson && baseCalcul(task) == 60 {
		q := vol.DirectionTotal(reference.FlowRegisteredLetter, reference.DirectionDeparture)
		tr.stepf("total(%s/%s)=%s/an", reference.FlowRegisteredLetter, reference.DirectionDeparture, q)
		return q, true
	}

	// 9. Ordinary-letter sack.
	if matchesProduct(task, "ordinaire", "depart") && task.Unit == UnitSack && baseCalcul(task) == 100 {
		q := vol.DirectionTotal(reference.FlowOrdinaryLetter, reference.DirectionDeparture)
		tr.stepf("total(%s/%s)=%s/an", reference.FlowOrdinaryLetter, reference.DirectionDeparture, q)
		return q, true
	}

	// 10. Fallback.
	tr.stepf("no rule matched")
	return decimal.Zero, false
}

// =============================================================================
// CONVERSION FACTOR - shared by every strategy
// =============================================================================

// conversionFactor folds the unit divisor, base-calcul percentage and
// phase multiplier into a single factor. It is shared by the standard
// strategy and every variant.
func conversionFactor(task Task, vol *VolumeContext, warn *Warnings, tr *trace) decimal.Decimal {
	p := vol.Params()
	factor := one

	// Unit divisor. Unknown units divide by 1 and warn.
	if task.Flags.UnknownUnit {
		warn.Addf(WarnUnknownUnit, task.ID, "task %q: unknown unit of measure, divisor defaults to 1", task.Name)
	} else {
		divisor := p.divisorFor(task.Unit, taskFlow(task))
		if !divisor.Equal(one) {
			factor = factor.Div(divisor)
			tr.stepf("1/%s:%s", task.Unit, divisor)
		}
	}

	// Base-calcul percentage.
	base := task.baseCalculPercent()
	if !base.Equal(hundred) {
		factor = factor.Mul(base).Div(hundred)
		tr.stepf("base %s%%", base)
	}

	// Phase multiplier. A tag naming neither phase is recoverable.
	if task.Phase != "" {
		switch {
		case reference.Contains(task.Phase, "international"):
			factor = factor.Mul(p.InternationalShare)
			tr.stepf("intl %s", p.InternationalShare)
		case reference.Contains(task.Phase, "national"):
			factor = factor.Mul(p.NationalShare)
			tr.stepf("national %s", p.NationalShare)
		default:
			warn.Addf(WarnPhaseUnparsed, task.ID, "task %q: unparseable phase tag %q", task.Name, task.Phase)
		}
	}

	return factor
}

// =============================================================================
// MATCH HELPERS
// =============================================================================

// taskFlow infers the flow a task operates on: the explicit volume key
// first, then keywords in the free-text product tag. Letter flow is the
// default, which matters only for the sack divisor.
func taskFlow(task Task) string {
	if task.Key != nil {
		return task.Key.Flow
	}
	switch {
	case reference.Contains(task.Product, "colis"):
		return reference.FlowParcel
	case reference.Contains(task.Product, "recommand"):
		return reference.FlowRegisteredLetter
	case reference.Contains(task.Product, "express"), reference.Contains(task.Product, "amana"):
		return reference.FlowExpress
	case reference.Contains(task.Product, "valise"):
		return reference.FlowSealedBag
	default:
		return reference.FlowOrdinaryLetter
	}
}

// matchesProduct reports whether every keyword occurs in the task's
// product tag (normalised substring match).
func matchesProduct(task Task, keywords ...string) bool {
	for _, k := range keywords {
		if !reference.Contains(task.Product, k) {
			return false
		}
	}
	return true
}

func baseCalcul(task Task) int {
	if task.BaseCalcul == nil {
		return 100
	}
	return *task.BaseCalcul
}
