/*
strategy.go - Strategy contract, selection registry and trace helpers

PURPOSE:
  A strategy is the algorithm that, given a Task and the call's
  VolumeContext, produces the applied annual volume, a conversion factor
  (unit divisors, base-calcul, phase multipliers folded together) and a
  human-readable formula trace. Atypical centres override the standard
  rule table with their own strategy.

SELECTION (deterministic, first match wins):
  1. By centre id   - explicit override table
  2. By centre classification
  3. Default        - the standard rule strategy

POLYMORPHISM:
  Strategies are plain values implementing a two-method interface; no
  reflection, no framework registry. Each strategy publishes a stable
  Name() so formula traces stay attributable.

SEE ALSO:
  - rules.go: the standard strategy
  - variants.go: centre-specific strategies
*/
package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// STRATEGY CONTRACT
// =============================================================================

// Applied is a strategy's verdict for one task. The engine converts it
// to a daily applied volume: Annual / workingDays * Factor.
type Applied struct {
	// Annual is the selected annual volume before conversion.
	Annual decimal.Decimal

	// Factor folds unit divisors, base-calcul and phase multipliers.
	Factor decimal.Decimal

	// Trace is the human-readable derivation, prefixed with the
	// strategy name.
	Trace string
}

// Strategy resolves one task against the volume context. Apply must be
// pure: same task + context always produces the same Applied.
type Strategy interface {
	// Name identifies the strategy in formula traces.
	Name() string

	// Apply produces the applied volume triple for a task. Recoverable
	// anomalies are appended to warn; Apply never fails.
	Apply(task Task, vol *VolumeContext, warn *Warnings) Applied
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry selects the strategy for a centre. Built once at startup,
// read-only afterwards.
type Registry struct {
	byCentre map[CentreID]Strategy
	byClass  map[int]Strategy
	fallback Strategy
}

// Centre ids with dedicated strategies.
const (
	CentreMessengerHub    CentreID = 2064
	CentreIntlParcelHub   CentreID = 2007
	CentreNationalSortHub CentreID = 2001
	CentreDocumentDeposit CentreID = 2090
)

// ClassificationPlatform selects the platform strategy.
const ClassificationPlatform = 8

// DefaultRegistry wires the standard strategy plus every known
// centre-specific override.
func DefaultRegistry() *Registry {
	std := NewStandardStrategy()
	return NewRegistry(
		map[CentreID]Strategy{
			CentreMessengerHub:    NewMessengerHubStrategy(std),
			CentreIntlParcelHub:   NewInternationalParcelHubStrategy(std),
			CentreNationalSortHub: NewNationalSortHubStrategy(std),
			CentreDocumentDeposit: NewDocumentDepositHubStrategy(std),
		},
		map[int]Strategy{
			ClassificationPlatform: NewPlatformStrategy(std),
		},
		std,
	)
}

// NewRegistry builds a registry from explicit tables. The fallback must
// be non-nil.
func NewRegistry(byCentre map[CentreID]Strategy, byClass map[int]Strategy, fallback Strategy) *Registry {
	if byCentre == nil {
		byCentre = map[CentreID]Strategy{}
	}
	if byClass == nil {
		byClass = map[int]Strategy{}
	}
	return &Registry{byCentre: byCentre, byClass: byClass, fallback: fallback}
}

// ForCentre selects the strategy for a centre: id override first, then
// classification, then the default.
func (r *Registry) ForCentre(c Centre) Strategy {
	if s, ok := r.byCentre[c.ID]; ok {
		return s
	}
	if s, ok := r.byClass[c.Classification]; ok {
		return s
	}
	return r.fallback
}

// =============================================================================
// TRACE BUILDER
// =============================================================================

// trace assembles the formula trace incrementally, e.g.
// "standard: cell(COLIS/ARRIVEE/GLOBAL)=264000/an / 264j x base 40%".
type trace struct {
	b strings.Builder
}

func newTrace(strategy string) *trace {
	t := &trace{}
	t.b.WriteString(strategy)
	t.b.WriteString(": ")
	return t
}

func (t *trace) stepf(format string, args ...any) *trace {
	if t.b.Len() > 0 && !strings.HasSuffix(t.b.String(), ": ") {
		t.b.WriteString(" x ")
	}
	fmt.Fprintf(&t.b, format, args...)
	return t
}

func (t *trace) String() string { return t.b.String() }

// =============================================================================
// WARNINGS ACCUMULATOR
// =============================================================================

// Warnings accumulates per-task recoverable anomalies for one call.
type Warnings struct {
	list []Warning
}

// Addf appends a warning.
func (w *Warnings) Addf(kind WarningKind, taskID TaskID, format string, args ...any) {
	w.list = append(w.list, Warning{
		Kind:    kind,
		TaskID:  taskID,
		Message: fmt.Sprintf(format, args...),
	})
}

// List returns the accumulated warnings in append order.
func (w *Warnings) List() []Warning {
	return append([]Warning(nil), w.list...)
}

// Len returns the number of accumulated warnings.
func (w *Warnings) Len() int { return len(w.list) }
