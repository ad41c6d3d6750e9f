/*
volume.go - Per-call volume context and derived aggregates

PURPOSE:
  Normalises the caller's sparse volume grid into an indexable structure
  keyed by (flow, direction, segment) and exposes the derived aggregates
  the rules consume: direction totals, axes/distribution splits, collecte
  and retour volumes, and the annual-to-daily conversion.

KEY INSIGHT:
  Rules never touch the raw grid. Every aggregate is computed here once,
  lazily, and cached for the duration of the call. The context is
  read-only to rule code, which keeps per-task evaluation pure.

LIFECYCLE:
  One VolumeContext per simulation call. Nothing is shared between
  calls, so the engine stays re-entrant without locks.

SEE ALSO:
  - rules.go: the consumers of these aggregates
  - params.go: shares and divisors
*/
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/tawazoon/staffing-engine/reference"
)

type flowDir struct {
	flow string
	dir  string
}

// VolumeContext indexes the annual volume grid of one call and serves
// derived aggregates. Read-only to rule code; not safe for concurrent
// use (each call owns its own instance).
type VolumeContext struct {
	grid   map[VolumeKey]decimal.Decimal
	params Parameters
	days   decimal.Decimal

	// Lazy caches.
	dirTotals map[flowDir]decimal.Decimal
	axes      map[flowDir]decimal.Decimal
	collecte  map[string]decimal.Decimal
	retour    map[flowDir]decimal.Decimal
}

// NewVolumeContext builds the context from already-resolved grid cells.
// Keys must carry canonical codes (the engine resolves them against the
// catalogue before construction).
func NewVolumeContext(grid map[VolumeKey]decimal.Decimal, params Parameters) *VolumeContext {
	days := params.WorkingDays
	if days <= 0 {
		days = reference.DefaultWorkingDaysPerYear
	}
	return &VolumeContext{
		grid:      grid,
		params:    params,
		days:      decimal.NewFromInt(int64(days)),
		dirTotals: make(map[flowDir]decimal.Decimal),
		axes:      make(map[flowDir]decimal.Decimal),
		collecte:  make(map[string]decimal.Decimal),
		retour:    make(map[flowDir]decimal.Decimal),
	}
}

// Params returns the call's parameter bag.
func (v *VolumeContext) Params() Parameters { return v.params }

// WorkingDays returns the annual-to-daily denominator, always >= 1.
func (v *VolumeContext) WorkingDays() decimal.Decimal { return v.days }

// Cell returns the annual volume at (flow, direction, segment), or zero
// if the cell is absent. Codes must be canonical.
func (v *VolumeContext) Cell(flow, direction, segment string) decimal.Decimal {
	key := VolumeKey{
		Flow:      reference.Normalize(flow),
		Direction: reference.Normalize(direction),
		Segment:   reference.Normalize(segment),
	}
	if q, ok := v.grid[key]; ok {
		return q
	}
	return decimal.Zero
}

// DirectionTotal sums a (flow, direction) across all segments.
func (v *VolumeContext) DirectionTotal(flow, direction string) decimal.Decimal {
	key := flowDir{reference.Normalize(flow), reference.Normalize(direction)}
	if total, ok := v.dirTotals[key]; ok {
		return total
	}
	total := decimal.Zero
	for cell, q := range v.grid {
		if cell.Flow == key.flow && cell.Direction == key.dir {
			total = total.Add(q)
		}
	}
	v.dirTotals[key] = total
	return total
}

// CounterTotal sums a flow's counter traffic: deposit plus withdrawal.
func (v *VolumeContext) CounterTotal(flow string) decimal.Decimal {
	return v.DirectionTotal(flow, reference.DirectionDeposit).
		Add(v.DirectionTotal(flow, reference.DirectionWithdrawal))
}

// AxesShare returns the clamped axes share for a direction. Directions
// without a configured split have a share of zero.
func (v *VolumeContext) AxesShare(direction string) decimal.Decimal {
	var share decimal.Decimal
	switch reference.Normalize(direction) {
	case reference.Normalize(reference.DirectionArrival):
		share = v.params.AxesShareArrival
	case reference.Normalize(reference.DirectionDeparture):
		share = v.params.AxesShareDeparture
	default:
		return decimal.Zero
	}
	return clampShare(share)
}

// Axes returns the trunk-route part of a (flow, direction) volume:
// (particulier + professionnel + axes cells) x axes share.
func (v *VolumeContext) Axes(flow, direction string) decimal.Decimal {
	key := flowDir{reference.Normalize(flow), reference.Normalize(direction)}
	if q, ok := v.axes[key]; ok {
		return q
	}
	base := v.Cell(flow, direction, reference.SegmentPrivate).
		Add(v.Cell(flow, direction, reference.SegmentProfessional)).
		Add(v.Cell(flow, direction, reference.SegmentAxes))
	q := base.Mul(v.AxesShare(direction))
	v.axes[key] = q
	return q
}

// Distribution returns the local-distribution remainder of a
// (flow, direction) volume: total x (1 - axes share).
func (v *VolumeContext) Distribution(flow, direction string) decimal.Decimal {
	share := v.AxesShare(direction)
	return v.DirectionTotal(flow, direction).Mul(one.Sub(share))
}

// Collecte returns the derived outbound-collection volume of a flow:
// departure total x collecte share x (1 - axes share departure).
// Complexity and geography coefficients are applied by the rule, not
// here, so the raw derived volume stays reusable.
func (v *VolumeContext) Collecte(flow string) decimal.Decimal {
	key := reference.Normalize(flow)
	if q, ok := v.collecte[key]; ok {
		return q
	}
	departure := v.DirectionTotal(flow, reference.DirectionDeparture)
	q := departure.
		Mul(clampShare(v.params.CollecteShare)).
		Mul(one.Sub(v.AxesShare(reference.DirectionDeparture)))
	v.collecte[key] = q
	return q
}

// Retour returns the derived return-flow volume for a (flow, direction):
// direction total x retour share.
func (v *VolumeContext) Retour(flow, direction string) decimal.Decimal {
	key := flowDir{reference.Normalize(flow), reference.Normalize(direction)}
	if q, ok := v.retour[key]; ok {
		return q
	}
	q := v.DirectionTotal(flow, direction).Mul(clampShare(v.params.RetourShare))
	v.retour[key] = q
	return q
}

// PerDay converts an annual volume to a daily one. The denominator is
// the integer working-days count, never zero.
func (v *VolumeContext) PerDay(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(v.days)
}

func clampShare(s decimal.Decimal) decimal.Decimal {
	if s.IsNegative() {
		return decimal.Zero
	}
	if s.GreaterThan(one) {
		return one
	}
	return s
}
