package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tawazoon/staffing-engine/engine"
	"github.com/tawazoon/staffing-engine/reference"
)

// =============================================================================
// REGISTRY SELECTION
// =============================================================================

func TestRegistry_CentreOverrideBeatsClassification(t *testing.T) {
	// GIVEN: the default registry
	// WHEN: selecting for the messenger hub even with classification 8
	// THEN: the centre-id override wins over the platform rule

	reg := engine.DefaultRegistry()

	s := reg.ForCentre(engine.Centre{ID: engine.CentreMessengerHub, Classification: engine.ClassificationPlatform})
	assert.Equal(t, "messenger_hub", s.Name())
}

func TestRegistry_ClassificationSelectsPlatform(t *testing.T) {
	reg := engine.DefaultRegistry()

	s := reg.ForCentre(engine.Centre{ID: 555, Classification: engine.ClassificationPlatform})
	assert.Equal(t, "platform", s.Name())
}

func TestRegistry_DefaultIsStandard(t *testing.T) {
	reg := engine.DefaultRegistry()

	s := reg.ForCentre(engine.Centre{ID: 555, Classification: 3})
	assert.Equal(t, "standard", s.Name())
}

func TestRegistry_AllOverridesRegistered(t *testing.T) {
	// GIVEN: the default registry
	// WHEN: selecting each atypical centre
	// THEN: every one resolves to its dedicated strategy

	reg := engine.DefaultRegistry()

	expected := map[engine.CentreID]string{
		engine.CentreMessengerHub:    "messenger_hub",
		engine.CentreIntlParcelHub:   "intl_parcel_hub",
		engine.CentreNationalSortHub: "national_sort_hub",
		engine.CentreDocumentDeposit: "document_deposit_hub",
	}
	for id, name := range expected {
		assert.Equal(t, name, reg.ForCentre(engine.Centre{ID: id}).Name())
	}
}

// =============================================================================
// VARIANT RULES
// =============================================================================

func TestMessengerHub_DeliveryRidesExpressRemainder(t *testing.T) {
	// GIVEN: express arrivals with 30% on trunk axes
	// WHEN: applying a delivery-round task
	// THEN: the local remainder applies and the trace names the variant

	params := engine.DefaultParameters()
	params.AxesShareArrival = dec("0.3")
	vol := volumeCtx(params,
		cell{reference.FlowExpress, reference.DirectionArrival, reference.SegmentGlobal, "1000"},
	)
	task := engine.Task{
		ID: 1, Name: "Tournée livraison", Product: "livraison express",
		Unit: engine.UnitParcel, UnitTimeMin: dec("5"),
	}

	warn := &engine.Warnings{}
	applied := engine.NewMessengerHubStrategy(engine.NewStandardStrategy()).Apply(task, vol, warn)

	assert.True(t, applied.Annual.Equal(dec("700")), "annual = %s", applied.Annual)
	assert.Contains(t, applied.Trace, "messenger_hub: ")
	assert.Zero(t, warn.Len())
}

func TestMessengerHub_PickupRidesCollecte(t *testing.T) {
	// GIVEN: express departures with collecte share 10%
	// WHEN: applying a pickup-round task
	// THEN: the collecte-derived volume applies

	params := engine.DefaultParameters()
	params.CollecteShare = dec("0.1")
	vol := volumeCtx(params,
		cell{reference.FlowExpress, reference.DirectionDeparture, reference.SegmentGlobal, "2000"},
	)
	task := engine.Task{
		ID: 1, Name: "Ramassage clients", Product: "ramassage express",
		Unit: engine.UnitParcel, UnitTimeMin: dec("4"),
	}

	warn := &engine.Warnings{}
	applied := engine.NewMessengerHubStrategy(engine.NewStandardStrategy()).Apply(task, vol, warn)

	assert.True(t, applied.Annual.Equal(dec("200")), "annual = %s", applied.Annual)
}

func TestMessengerHub_FallsBackToStandardRules(t *testing.T) {
	// GIVEN: a counter task the messenger rules do not cover
	// WHEN: applying the messenger strategy
	// THEN: the standard guichet rule resolves it, trace still carries
	//       the variant name

	vol := volumeCtx(engine.DefaultParameters(),
		cell{reference.FlowExpress, reference.DirectionDeposit, reference.SegmentDeposit, "300"},
	)
	task := engine.Task{
		ID: 1, Name: "Guichet dépôt", Family: "guichet", Product: "express",
		Unit: engine.UnitParcel, UnitTimeMin: dec("2"),
	}

	warn := &engine.Warnings{}
	applied := engine.NewMessengerHubStrategy(engine.NewStandardStrategy()).Apply(task, vol, warn)

	assert.True(t, applied.Annual.Equal(dec("300")), "annual = %s", applied.Annual)
	assert.Contains(t, applied.Trace, "messenger_hub: ")
	assert.NotContains(t, applied.Trace, "standard: ")
}

func TestIntlParcelHub_ImportExportAndCustoms(t *testing.T) {
	// GIVEN: parcel traffic both ways, international share 0.6
	// WHEN: applying import, export and customs tasks
	// THEN: arrival, departure and the both-ways total apply, scaled

	params := engine.DefaultParameters()
	params.InternationalShare = dec("0.6")
	vol := volumeCtx(params,
		cell{reference.FlowParcel, reference.DirectionArrival, reference.SegmentGlobal, "1000"},
		cell{reference.FlowParcel, reference.DirectionDeparture, reference.SegmentGlobal, "500"},
	)
	s := engine.NewInternationalParcelHubStrategy(engine.NewStandardStrategy())

	warn := &engine.Warnings{}

	imp := s.Apply(engine.Task{ID: 1, Name: "Traitement import", Product: "colis import", Unit: engine.UnitParcel, UnitTimeMin: dec("1")}, vol, warn)
	exp := s.Apply(engine.Task{ID: 2, Name: "Traitement export", Product: "colis export", Unit: engine.UnitParcel, UnitTimeMin: dec("1")}, vol, warn)
	customs := s.Apply(engine.Task{ID: 3, Name: "Dédouanement", Family: "douane", Product: "colis", Unit: engine.UnitParcel, UnitTimeMin: dec("1")}, vol, warn)

	assert.True(t, imp.Annual.Equal(dec("600")), "import = %s", imp.Annual)
	assert.True(t, exp.Annual.Equal(dec("300")), "export = %s", exp.Annual)
	assert.True(t, customs.Annual.Equal(dec("900")), "customs = %s", customs.Annual)
	assert.Zero(t, warn.Len())
}

func TestNationalSortHub_CrossFlowTotal(t *testing.T) {
	// GIVEN: arrivals across several flows, national share 0.5
	// WHEN: applying a sorting task
	// THEN: the cross-flow arrival total applies, scaled by the share

	params := engine.DefaultParameters()
	params.NationalShare = dec("0.5")
	vol := volumeCtx(params,
		cell{reference.FlowParcel, reference.DirectionArrival, reference.SegmentGlobal, "1000"},
		cell{reference.FlowOrdinaryLetter, reference.DirectionArrival, reference.SegmentGlobal, "3000"},
		cell{reference.FlowExpress, reference.DirectionArrival, reference.SegmentGlobal, "500"},
	)
	task := engine.Task{
		ID: 1, Name: "Tri général", Family: "tri",
		Unit: engine.UnitParcel, UnitTimeMin: dec("0.5"),
	}

	warn := &engine.Warnings{}
	applied := engine.NewNationalSortHubStrategy(engine.NewStandardStrategy()).Apply(task, vol, warn)

	assert.True(t, applied.Annual.Equal(dec("2250")), "annual = %s", applied.Annual)
	assert.Contains(t, applied.Trace, "national_sort_hub: ")
}

func TestDocumentDepositHub_CounterDirections(t *testing.T) {
	// GIVEN: sealed-bag counter traffic
	// WHEN: applying deposit, withdrawal and archiving tasks
	// THEN: each rule picks its window direction; archiving sums both

	vol := volumeCtx(engine.DefaultParameters(),
		cell{reference.FlowSealedBag, reference.DirectionDeposit, reference.SegmentDeposit, "400"},
		cell{reference.FlowSealedBag, reference.DirectionWithdrawal, reference.SegmentWithdrawal, "100"},
	)
	s := engine.NewDocumentDepositHubStrategy(engine.NewStandardStrategy())

	warn := &engine.Warnings{}

	deposit := s.Apply(engine.Task{ID: 1, Name: "Dépôt valises", Family: "depot", Product: "valise", Unit: engine.UnitParcel, UnitTimeMin: dec("2")}, vol, warn)
	withdrawal := s.Apply(engine.Task{ID: 2, Name: "Retrait valises", Family: "retrait", Product: "valise", Unit: engine.UnitParcel, UnitTimeMin: dec("2")}, vol, warn)
	archive := s.Apply(engine.Task{ID: 3, Name: "Archivage", Family: "archivage", Product: "valise", Unit: engine.UnitParcel, UnitTimeMin: dec("1")}, vol, warn)

	assert.True(t, deposit.Annual.Equal(dec("400")))
	assert.True(t, withdrawal.Annual.Equal(dec("100")))
	assert.True(t, archive.Annual.Equal(dec("500")))
}

func TestPlatform_LineHaulAlwaysTakesAxesShare(t *testing.T) {
	// GIVEN: platform traffic with axes share 0.4, tasks counted in
	//        parcels (not trucks)
	// WHEN: applying arrival and departure dock tasks
	// THEN: the axes share applies regardless of unit, unlike the
	//       standard table

	params := engine.DefaultParameters()
	params.AxesShareArrival = dec("0.4")
	params.AxesShareDeparture = dec("0.5")
	vol := volumeCtx(params,
		cell{reference.FlowParcel, reference.DirectionArrival, reference.SegmentGlobal, "1000"},
		cell{reference.FlowParcel, reference.DirectionDeparture, reference.SegmentGlobal, "600"},
	)
	s := engine.NewPlatformStrategy(engine.NewStandardStrategy())

	warn := &engine.Warnings{}

	arr := s.Apply(engine.Task{ID: 1, Name: "Quai arrivée", Family: "arrivee", Product: "colis", Unit: engine.UnitParcel, UnitTimeMin: dec("1")}, vol, warn)
	dep := s.Apply(engine.Task{ID: 2, Name: "Quai départ", Family: "depart", Product: "colis", Unit: engine.UnitParcel, UnitTimeMin: dec("1")}, vol, warn)
	handling := s.Apply(engine.Task{ID: 3, Name: "Manutention transit", Family: "manutention", Product: "colis", Unit: engine.UnitParcel, UnitTimeMin: dec("0.3")}, vol, warn)

	assert.True(t, arr.Annual.Equal(dec("400")), "arrival = %s", arr.Annual)
	assert.True(t, dep.Annual.Equal(dec("300")), "departure = %s", dep.Annual)
	assert.True(t, handling.Annual.Equal(dec("1600")), "handling = %s", handling.Annual)
}

func TestVariant_UnmatchedTaskWarnsWithVariantTrace(t *testing.T) {
	// GIVEN: a task neither the variant nor the standard table covers
	// WHEN: applying the variant
	// THEN: the fallback warning carries the task and the trace keeps
	//       the variant name

	vol := volumeCtx(engine.DefaultParameters())
	task := engine.Task{
		ID: 9, Name: "Nettoyage", Family: "entretien",
		Unit: engine.UnitOther, UnitTimeMin: dec("15"),
	}

	warn := &engine.Warnings{}
	applied := engine.NewPlatformStrategy(engine.NewStandardStrategy()).Apply(task, vol, warn)

	assert.True(t, applied.Annual.IsZero())
	require.Equal(t, 1, warn.Len())
	assert.Equal(t, engine.WarnNoRuleMatched, warn.List()[0].Kind)
	assert.Contains(t, applied.Trace, "platform: ")
}
