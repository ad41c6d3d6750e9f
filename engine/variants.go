/*
variants.go - Centre-specific strategy variants

PURPOSE:
  Atypical centres do not follow the standard rule table. Each variant
  below redefines the matching rules for one kind of hub, typically by
  keying on free-text product strings and collapsing the family rules
  the hub does not use. Anything a variant does not recognise falls back
  to the standard table so that generic tasks (counters, direct cells)
  keep working.

VARIANTS:
  messenger_hub    - centre 2064; everything rides the express flow
  intl_parcel_hub  - international parcel hub; import/export products
  national_sort_hub- national sorting hub; cross-flow sorting volumes
  document_deposit - document-deposit hub; counter traffic dominates
  platform         - classification 8; line-haul and dock handling

TRACE ATTRIBUTION:
  A variant's trace always carries the variant's own name, even when the
  standard table resolved the task. The per-centre strategy is what the
  reader of a trace needs to know.

SEE ALSO:
  - rules.go: the standard table and the shared conversion factor
  - strategy.go: registry wiring of these variants
*/
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/tawazoon/staffing-engine/reference"
)

// variantRules is a variant's own first-match volume selection. It must
// write trace steps only when it matches.
type variantRules func(task Task, vol *VolumeContext, tr *trace) (decimal.Decimal, bool)

// applyVariant runs a variant's own rules, falls back to the standard
// table, and folds the shared conversion factor. Trace and warnings are
// attributed to the variant's name.
func applyVariant(name string, own variantRules, std *StandardStrategy, task Task, vol *VolumeContext, warn *Warnings) Applied {
	tr := newTrace(name)
	annual, matched := own(task, vol, tr)
	if !matched {
		annual, matched = std.selectVolume(task, vol, tr)
	}
	if !matched {
		warn.Addf(WarnNoRuleMatched, task.ID, "task %q: no rule matched (family=%q product=%q)", task.Name, task.Family, task.Product)
		return Applied{Annual: decimal.Zero, Factor: one, Trace: tr.String()}
	}
	return Applied{Annual: annual, Factor: conversionFactor(task, vol, warn, tr), Trace: tr.String()}
}

// =============================================================================
// MESSENGER HUB (centre 2064)
// =============================================================================

// MessengerHubStrategy models the messenger hub: all traffic rides the
// express flow, split between delivery rounds and pickup rounds.
type MessengerHubStrategy struct {
	std *StandardStrategy
}

func NewMessengerHubStrategy(std *StandardStrategy) *MessengerHubStrategy {
	return &MessengerHubStrategy{std: std}
}

func (s *MessengerHubStrategy) Name() string { return "messenger_hub" }

func (s *MessengerHubStrategy) Apply(task Task, vol *VolumeContext, warn *Warnings) Applied {
	return applyVariant(s.Name(), s.rules, s.std, task, vol, warn)
}

func (s *MessengerHubStrategy) rules(task Task, vol *VolumeContext, tr *trace) (decimal.Decimal, bool) {
	express := reference.FlowExpress

	// Delivery rounds consume the local (non-axes) arrival remainder.
	if reference.Contains(task.Product, "livraison") || reference.Contains(task.Family, "course") {
		q := vol.Distribution(express, reference.DirectionArrival)
		tr.stepf("livraison(%s)=%s/an (1-axes %s)", express, q, vol.AxesShare(reference.DirectionArrival))
		return q, true
	}

	// Pickup rounds consume the collecte-derived departure volume.
	if reference.Contains(task.Product, "ramassage") || reference.Contains(task.Family, "ramassage") {
		q := vol.Collecte(express)
		tr.stepf("ramassage(%s)=%s/an", express, q)
		return q, true
	}

	// Dispatch consolidation rides the express departure total.
	if reference.Contains(task.Family, "consolidation") {
		q := vol.DirectionTotal(express, reference.DirectionDeparture)
		tr.stepf("total(%s/%s)=%s/an", express, reference.DirectionDeparture, q)
		return q, true
	}

	return decimal.Zero, false
}

// =============================================================================
// INTERNATIONAL PARCEL HUB
// =============================================================================

// InternationalParcelHubStrategy models the international parcel hub:
// import and export product tags drive the parcel direction totals,
// scaled by the international share.
type InternationalParcelHubStrategy struct {
	std *StandardStrategy
}

func NewInternationalParcelHubStrategy(std *StandardStrategy) *InternationalParcelHubStrategy {
	return &InternationalParcelHubStrategy{std: std}
}

func (s *InternationalParcelHubStrategy) Name() string { return "intl_parcel_hub" }

func (s *InternationalParcelHubStrategy) Apply(task Task, vol *VolumeContext, warn *Warnings) Applied {
	return applyVariant(s.Name(), s.rules, s.std, task, vol, warn)
}

func (s *InternationalParcelHubStrategy) rules(task Task, vol *VolumeContext, tr *trace) (decimal.Decimal, bool) {
	parcel := reference.FlowParcel
	intl := vol.Params().InternationalShare

	if reference.Contains(task.Product, "import") {
		q := vol.DirectionTotal(parcel, reference.DirectionArrival).Mul(intl)
		tr.stepf("import(%s)=%s/an", parcel, q)
		return q, true
	}
	if reference.Contains(task.Product, "export") {
		q := vol.DirectionTotal(parcel, reference.DirectionDeparture).Mul(intl)
		tr.stepf("export(%s)=%s/an", parcel, q)
		return q, true
	}

	// Customs clearance sees both directions.
	if reference.Contains(task.Family, "douane") {
		q := vol.DirectionTotal(parcel, reference.DirectionArrival).
			Add(vol.DirectionTotal(parcel, reference.DirectionDeparture)).
			Mul(intl)
		tr.stepf("douane(%s)=%s/an", parcel, q)
		return q, true
	}

	return decimal.Zero, false
}

// =============================================================================
// NATIONAL SORTING HUB
// =============================================================================

// NationalSortHubStrategy models the national sorting hub: sorting
// tasks see the full cross-flow traffic of their direction, scaled by
// the national share.
type NationalSortHubStrategy struct {
	std *StandardStrategy
}

func NewNationalSortHubStrategy(std *StandardStrategy) *NationalSortHubStrategy {
	return &NationalSortHubStrategy{std: std}
}

func (s *NationalSortHubStrategy) Name() string { return "national_sort_hub" }

func (s *NationalSortHubStrategy) Apply(task Task, vol *VolumeContext, warn *Warnings) Applied {
	return applyVariant(s.Name(), s.rules, s.std, task, vol, warn)
}

func (s *NationalSortHubStrategy) rules(task Task, vol *VolumeContext, tr *trace) (decimal.Decimal, bool) {
	if !reference.Contains(task.Family, "tri") {
		return decimal.Zero, false
	}

	dir := reference.DirectionArrival
	if reference.Contains(task.Family, "depart") || reference.Contains(task.Name, "depart") {
		dir = reference.DirectionDeparture
	}

	total := decimal.Zero
	for _, flow := range []string{
		reference.FlowParcel,
		reference.FlowOrdinaryLetter,
		reference.FlowRegisteredLetter,
		reference.FlowExpress,
		reference.FlowSealedBag,
	} {
		total = total.Add(vol.DirectionTotal(flow, dir))
	}
	q := total.Mul(vol.Params().NationalShare)
	tr.stepf("tri national(%s)=%s/an", dir, q)
	return q, true
}

// =============================================================================
// DOCUMENT-DEPOSIT HUB
// =============================================================================

// DocumentDepositHubStrategy models the document-deposit hub: counter
// traffic drives nearly every task.
type DocumentDepositHubStrategy struct {
	std *StandardStrategy
}

func NewDocumentDepositHubStrategy(std *StandardStrategy) *DocumentDepositHubStrategy {
	return &DocumentDepositHubStrategy{std: std}
}

func (s *DocumentDepositHubStrategy) Name() string { return "document_deposit_hub" }

func (s *DocumentDepositHubStrategy) Apply(task Task, vol *VolumeContext, warn *Warnings) Applied {
	return applyVariant(s.Name(), s.rules, s.std, task, vol, warn)
}

func (s *DocumentDepositHubStrategy) rules(task Task, vol *VolumeContext, tr *trace) (decimal.Decimal, bool) {
	flow := taskFlow(task)

	if reference.Contains(task.Family, "depot") || reference.Contains(task.Product, "depot") {
		q := vol.DirectionTotal(flow, reference.DirectionDeposit)
		tr.stepf("depot(%s)=%s/an", flow, q)
		return q, true
	}
	if reference.Contains(task.Family, "retrait") || reference.Contains(task.Product, "retrait") {
		q := vol.DirectionTotal(flow, reference.DirectionWithdrawal)
		tr.stepf("retrait(%s)=%s/an", flow, q)
		return q, true
	}

	// Archiving sees everything that crossed the counter.
	if reference.Contains(task.Family, "archivage") {
		q := vol.CounterTotal(flow)
		tr.stepf("archivage(%s)=%s/an", flow, q)
		return q, true
	}

	return decimal.Zero, false
}

// =============================================================================
// PLATFORM (classification 8)
// =============================================================================

// PlatformStrategy models transit platforms: dock handling and
// line-haul dominate, and the axes share applies to every line-haul
// task regardless of unit.
type PlatformStrategy struct {
	std *StandardStrategy
}

func NewPlatformStrategy(std *StandardStrategy) *PlatformStrategy {
	return &PlatformStrategy{std: std}
}

func (s *PlatformStrategy) Name() string { return "platform" }

func (s *PlatformStrategy) Apply(task Task, vol *VolumeContext, warn *Warnings) Applied {
	return applyVariant(s.Name(), s.rules, s.std, task, vol, warn)
}

func (s *PlatformStrategy) rules(task Task, vol *VolumeContext, tr *trace) (decimal.Decimal, bool) {
	flow := taskFlow(task)

	if reference.Contains(task.Family, "arrivee") {
		share := vol.AxesShare(reference.DirectionArrival)
		q := vol.DirectionTotal(flow, reference.DirectionArrival).Mul(share)
		tr.stepf("quai arrivee(%s)=%s/an", flow, q)
		tr.stepf("axes %s", share)
		return q, true
	}
	if reference.Contains(task.Family, "depart") {
		share := vol.AxesShare(reference.DirectionDeparture)
		q := vol.DirectionTotal(flow, reference.DirectionDeparture).Mul(share)
		tr.stepf("quai depart(%s)=%s/an", flow, q)
		tr.stepf("axes %s", share)
		return q, true
	}

	// Dock handling sees both directions in full.
	if reference.Contains(task.Family, "manutention") || reference.Contains(task.Family, "quai") {
		q := vol.DirectionTotal(flow, reference.DirectionArrival).
			Add(vol.DirectionTotal(flow, reference.DirectionDeparture))
		tr.stepf("manutention(%s)=%s/an", flow, q)
		return q, true
	}

	return decimal.Zero, false
}
