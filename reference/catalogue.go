/*
Package reference provides the immutable lookup tables of the staffing engine.

PURPOSE:
  This package holds the process-wide reference data: product flows,
  traffic directions, customer segments, job-station classifications and
  the canonical unit-divisor names. It is loaded once at startup and is
  never mutated afterwards; the engine receives a *Catalogue as an
  explicit constructor argument (no hidden singleton).

KEY CONCEPTS IN THIS FILE (catalogue.go):
  - Flow: a family of mail/parcel traffic (parcel, ordinary letter, ...)
  - Direction: arrival, departure, counter-deposit, counter-withdrawal
  - Segment: customer-class partition (global, private, professional, ...)
  - Catalogue: case- and accent-insensitive lookups over all of the above

DESIGN PRINCIPLES:
  1. Immutability: the catalogue is built once; lookups never mutate
  2. Tolerant matching: codes are trimmed, lowercased and accent-folded
     before comparison (see normalize.go)
  3. Explicitness: the catalogue travels as a parameter, never a global

USAGE:
  cat := reference.NewCatalogue()
  flow, ok := cat.Flow(" Colis ")   // tolerant lookup
  if !ok { ... REFERENCE_UNRESOLVED ... }

SEE ALSO:
  - normalize.go: the normalisation primitive
  - engine: consumes the catalogue for grid validation and rule matching
*/
package reference

// =============================================================================
// REFERENCE ENTITIES
// =============================================================================

// Flow is a family of mail or parcel traffic.
type Flow struct {
	Code  string
	Label string
}

// Direction is the movement of traffic through a centre.
type Direction struct {
	Code  string
	Label string
}

// Segment is a customer-class partition of a (flow, direction) volume.
type Segment struct {
	Code  string
	Label string
}

// =============================================================================
// CANONICAL CODES
// =============================================================================

// Flow codes.
const (
	FlowParcel           = "COLIS"
	FlowOrdinaryLetter   = "CO"
	FlowRegisteredLetter = "CR"
	FlowExpress          = "EXPRESS"
	FlowSealedBag        = "VALISE"
)

// Direction codes.
const (
	DirectionArrival    = "ARRIVEE"
	DirectionDeparture  = "DEPART"
	DirectionDeposit    = "DEPOT"
	DirectionWithdrawal = "RETRAIT"
)

// Segment codes.
const (
	SegmentGlobal       = "GLOBAL"
	SegmentPrivate      = "PARTICULIER"
	SegmentProfessional = "PROFESSIONNEL"
	SegmentDistribution = "DISTRIBUTION"
	SegmentAxes         = "AXES"
	SegmentDeposit      = "DEPOT"
	SegmentWithdrawal   = "RETRAIT"
)

// DefaultWorkingDaysPerYear is the number of worked days used to convert
// annual volumes to daily volumes when the caller does not override it.
const DefaultWorkingDaysPerYear = 264

// Canonical unit-divisor parameter names. The engine's Parameters carry
// one value per name; the rule engine selects the divisor by the task's
// unit of measure.
const (
	DivisorParcelsPerSack    = "colis_par_sac"
	DivisorLettersPerSack    = "courrier_par_sac"
	DivisorLettersPerCaisson = "courrier_par_caisson"
	DivisorLettersPerLiasse  = "courrier_par_liasse"
)

// =============================================================================
// CATALOGUE
// =============================================================================

// Catalogue provides tolerant lookups over the reference entities.
// Immutable after NewCatalogue returns.
type Catalogue struct {
	flows      map[string]Flow
	directions map[string]Direction
	segments   map[string]Segment

	flowOrder      []Flow
	directionOrder []Direction
	segmentOrder   []Segment
}

// NewCatalogue builds the catalogue with the standard postal reference
// data. Callers needing a different set (tests, imports) use
// NewCatalogueFrom.
func NewCatalogue() *Catalogue {
	return NewCatalogueFrom(
		[]Flow{
			{Code: FlowParcel, Label: "Colis standard"},
			{Code: FlowOrdinaryLetter, Label: "Courrier ordinaire"},
			{Code: FlowRegisteredLetter, Label: "Courrier recommandé"},
			{Code: FlowExpress, Label: "Express"},
			{Code: FlowSealedBag, Label: "Valise scellée"},
		},
		[]Direction{
			{Code: DirectionArrival, Label: "Arrivée"},
			{Code: DirectionDeparture, Label: "Départ"},
			{Code: DirectionDeposit, Label: "Dépôt guichet"},
			{Code: DirectionWithdrawal, Label: "Retrait guichet"},
		},
		[]Segment{
			{Code: SegmentGlobal, Label: "Global"},
			{Code: SegmentPrivate, Label: "Particulier"},
			{Code: SegmentProfessional, Label: "Professionnel"},
			{Code: SegmentDistribution, Label: "Distribution"},
			{Code: SegmentAxes, Label: "Axes"},
			{Code: SegmentDeposit, Label: "Dépôt"},
			{Code: SegmentWithdrawal, Label: "Retrait"},
		},
	)
}

// NewCatalogueFrom builds a catalogue from explicit reference lists.
func NewCatalogueFrom(flows []Flow, directions []Direction, segments []Segment) *Catalogue {
	c := &Catalogue{
		flows:      make(map[string]Flow, len(flows)),
		directions: make(map[string]Direction, len(directions)),
		segments:   make(map[string]Segment, len(segments)),
	}
	for _, f := range flows {
		c.flows[Normalize(f.Code)] = f
		c.flowOrder = append(c.flowOrder, f)
	}
	for _, d := range directions {
		c.directions[Normalize(d.Code)] = d
		c.directionOrder = append(c.directionOrder, d)
	}
	for _, s := range segments {
		c.segments[Normalize(s.Code)] = s
		c.segmentOrder = append(c.segmentOrder, s)
	}
	return c
}

// Flow resolves a flow code (tolerant matching).
func (c *Catalogue) Flow(code string) (Flow, bool) {
	f, ok := c.flows[Normalize(code)]
	return f, ok
}

// Direction resolves a direction code (tolerant matching).
func (c *Catalogue) Direction(code string) (Direction, bool) {
	d, ok := c.directions[Normalize(code)]
	return d, ok
}

// Segment resolves a segment code (tolerant matching).
func (c *Catalogue) Segment(code string) (Segment, bool) {
	s, ok := c.segments[Normalize(code)]
	return s, ok
}

// Flows returns the flows in declaration order.
func (c *Catalogue) Flows() []Flow { return append([]Flow(nil), c.flowOrder...) }

// Directions returns the directions in declaration order.
func (c *Catalogue) Directions() []Direction {
	return append([]Direction(nil), c.directionOrder...)
}

// Segments returns the segments in declaration order.
func (c *Catalogue) Segments() []Segment {
	return append([]Segment(nil), c.segmentOrder...)
}
