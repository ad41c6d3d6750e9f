package engine_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tawazoon/staffing-engine/engine"
	"github.com/tawazoon/staffing-engine/engine/store"
	"github.com/tawazoon/staffing-engine/reference"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func iptr(i int) *int { return &i }

func newTestEngine(repo engine.Repository) *engine.Engine {
	return engine.New(reference.NewCatalogue(), engine.DefaultRegistry(), repo)
}

func runSim(t *testing.T, repo engine.Repository, req engine.SimulationRequest) *engine.SimulationResult {
	t.Helper()
	res, err := newTestEngine(repo).Simulate(context.Background(), req)
	require.NoError(t, err)
	return res
}

func sortingStation(centre engine.CentreID, id engine.StationID, role string, class engine.LabourClass, headcount int) engine.CentreJobStation {
	return engine.CentreJobStation{
		ID:        id,
		CentreID:  centre,
		Template:  engine.JobStationTemplate{ID: int64(id) + 1000, Name: role, Class: class},
		Headcount: headcount,
	}
}

// parcelSortTask is the canonical direct-cell task: parcel sorting at
// arrival, 1.2 min per parcel.
func parcelSortTask(id engine.TaskID, station engine.StationID) engine.Task {
	return engine.Task{
		ID:          id,
		StationID:   station,
		Name:        "Tri colis arrivée",
		Family:      "tri",
		Unit:        engine.UnitParcel,
		UnitTimeMin: dec("1.2"),
		BaseCalcul:  iptr(100),
		Key: &engine.VolumeKey{
			Flow:      reference.FlowParcel,
			Direction: reference.DirectionArrival,
			Segment:   reference.SegmentGlobal,
		},
	}
}

// seedCentre builds a memory repository with one centre and the given
// stations/tasks.
func seedCentre(c engine.Centre, stations []engine.CentreJobStation, tasks []engine.Task) *store.Memory {
	repo := store.NewMemory()
	repo.AddCentre(c)
	for _, st := range stations {
		repo.AddStation(st)
	}
	for _, task := range tasks {
		repo.AddTask(task)
	}
	return repo
}

func parcelArrivalGrid(annual string) []engine.VolumeEntry {
	return []engine.VolumeEntry{
		{Flow: reference.FlowParcel, Direction: reference.DirectionArrival, Segment: reference.SegmentGlobal, Annual: dec(annual)},
	}
}

// =============================================================================
// REFERENCE SCENARIOS
// =============================================================================

func TestSimulate_DirectCellTask(t *testing.T) {
	// GIVEN: one parcel-sorting task keyed on (COLIS, ARRIVEE, GLOBAL),
	//        1.2 min per parcel, 264000 parcels/year, 264 working days
	// WHEN: simulating with nominal productivity and 8h days
	// THEN: 1000 parcels/day, 20 hours, station FTE 2.5 rounded to 3

	centre := engine.Centre{ID: 101, Label: "Centre de tri"}
	station := sortingStation(101, 1, "Agent de tri", engine.LabourDirect, 2)
	repo := seedCentre(centre, []engine.CentreJobStation{station}, []engine.Task{parcelSortTask(100, 1)})

	res := runSim(t, repo, engine.SimulationRequest{
		CentreID: 101,
		Volumes:  parcelArrivalGrid("264000"),
		Params:   engine.DefaultParameters(),
	})

	require.Len(t, res.Tasks, 1)
	task := res.Tasks[0]
	assert.True(t, task.AppliedDaily.Equal(dec("1000")), "applied daily = %s", task.AppliedDaily)
	assert.True(t, task.Hours.Equal(dec("20")), "hours = %s", task.Hours)

	require.Len(t, res.Stations, 1)
	st := res.Stations[0]
	assert.True(t, st.FTEExact.Equal(dec("2.5")), "fte exact = %s", st.FTEExact)
	assert.True(t, st.FTERounded.Equal(dec("3")), "fte rounded = %s", st.FTERounded)
	assert.True(t, st.Delta.Equal(dec("1")), "delta = %s", st.Delta)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "standard", res.StrategyName)
}

func TestSimulate_SackDivisor(t *testing.T) {
	// GIVEN: the same parcel volume but the task counts sacks,
	//        5 parcels per sack
	// WHEN: simulating
	// THEN: 1000/5 = 200 sacks/day, 200 x 1.2 / 60 = 4 hours

	centre := engine.Centre{ID: 101, Label: "Centre de tri"}
	station := sortingStation(101, 1, "Agent de tri", engine.LabourDirect, 1)
	task := parcelSortTask(100, 1)
	task.Unit = engine.UnitSack
	repo := seedCentre(centre, []engine.CentreJobStation{station}, []engine.Task{task})

	res := runSim(t, repo, engine.SimulationRequest{
		CentreID: 101,
		Volumes:  parcelArrivalGrid("264000"),
		Params:   engine.DefaultParameters(),
	})

	require.Len(t, res.Tasks, 1)
	assert.True(t, res.Tasks[0].AppliedDaily.Equal(dec("200")), "applied daily = %s", res.Tasks[0].AppliedDaily)
	assert.True(t, res.Tasks[0].Hours.Equal(dec("4")), "hours = %s", res.Tasks[0].Hours)
}

func TestSimulate_BaseCalculForty(t *testing.T) {
	// GIVEN: the direct-cell task with base-calcul 40
	// WHEN: simulating
	// THEN: only 40% of the volume applies: 400/day, 8 hours

	centre := engine.Centre{ID: 101, Label: "Centre de tri"}
	station := sortingStation(101, 1, "Agent de tri", engine.LabourDirect, 1)
	task := parcelSortTask(100, 1)
	task.BaseCalcul = iptr(40)
	repo := seedCentre(centre, []engine.CentreJobStation{station}, []engine.Task{task})

	res := runSim(t, repo, engine.SimulationRequest{
		CentreID: 101,
		Volumes:  parcelArrivalGrid("264000"),
		Params:   engine.DefaultParameters(),
	})

	require.Len(t, res.Tasks, 1)
	assert.True(t, res.Tasks[0].AppliedDaily.Equal(dec("400")), "applied daily = %s", res.Tasks[0].AppliedDaily)
	assert.True(t, res.Tasks[0].Hours.Equal(dec("8")), "hours = %s", res.Tasks[0].Hours)
}

func TestSimulate_DistributionSplit(t *testing.T) {
	// GIVEN: 264000 parcels arriving, 40% routed to trunk axes, one
	//        distribution task at 0.5 min per parcel
	// WHEN: simulating
	// THEN: the local remainder 60% applies: 600/day, 5 hours

	centre := engine.Centre{ID: 101, Label: "Centre de tri"}
	station := sortingStation(101, 1, "Facteur", engine.LabourDirect, 1)
	task := engine.Task{
		ID:          200,
		StationID:   1,
		Name:        "Distribution locale",
		Family:      "distribution",
		Product:     "colis",
		Unit:        engine.UnitParcel,
		UnitTimeMin: dec("0.5"),
	}
	repo := seedCentre(centre, []engine.CentreJobStation{station}, []engine.Task{task})

	params := engine.DefaultParameters()
	params.AxesShareArrival = dec("0.4")

	res := runSim(t, repo, engine.SimulationRequest{
		CentreID: 101,
		Volumes:  parcelArrivalGrid("264000"),
		Params:   params,
	})

	require.Len(t, res.Tasks, 1)
	assert.True(t, res.Tasks[0].AppliedDaily.Equal(dec("600")), "applied daily = %s", res.Tasks[0].AppliedDaily)
	assert.True(t, res.Tasks[0].Hours.Equal(dec("5")), "hours = %s", res.Tasks[0].Hours)
}

func TestSimulate_CollecteWithComplexity(t *testing.T) {
	// GIVEN: 132000 parcels departing, collecte share 5%, axes share
	//        departure 30%, complexity 1.2
	// WHEN: simulating one collecte task at 1 min per parcel
	// THEN: 132000 x 0.05 x 0.7 x 1.2 / 264 = 21/day, 0.35 hours

	centre := engine.Centre{ID: 101, Label: "Centre de tri"}
	station := sortingStation(101, 1, "Agent de collecte", engine.LabourDirect, 1)
	task := engine.Task{
		ID:          300,
		StationID:   1,
		Name:        "Tournée de collecte",
		Family:      "collecte",
		Product:     "colis",
		Unit:        engine.UnitParcel,
		UnitTimeMin: dec("1"),
	}
	repo := seedCentre(centre, []engine.CentreJobStation{station}, []engine.Task{task})

	params := engine.DefaultParameters()
	params.CollecteShare = dec("0.05")
	params.AxesShareDeparture = dec("0.3")
	params.Complexity = dec("1.2")

	res := runSim(t, repo, engine.SimulationRequest{
		CentreID: 101,
		Volumes: []engine.VolumeEntry{
			{Flow: reference.FlowParcel, Direction: reference.DirectionDeparture, Segment: reference.SegmentGlobal, Annual: dec("132000")},
		},
		Params: params,
	})

	require.Len(t, res.Tasks, 1)
	assert.True(t, res.Tasks[0].AppliedDaily.Equal(dec("21")), "applied daily = %s", res.Tasks[0].AppliedDaily)
	assert.True(t, res.Tasks[0].Hours.Equal(dec("0.35")), "hours = %s", res.Tasks[0].Hours)
}

func TestSimulate_TwoStationsAggregate(t *testing.T) {
	// GIVEN: station A sorting arrivals (20h, FTE 2.5) and station B
	//        distributing the local remainder (5h, FTE 0.625)
	// WHEN: simulating the whole centre
	// THEN: rounded FTEs are summed per station (3 + 1 = 4), never
	//       recomputed from the 25-hour total

	centre := engine.Centre{ID: 101, Label: "Centre de tri"}
	stations := []engine.CentreJobStation{
		sortingStation(101, 1, "Agent de tri", engine.LabourDirect, 2),
		sortingStation(101, 2, "Facteur", engine.LabourDirect, 1),
	}
	tasks := []engine.Task{
		parcelSortTask(100, 1),
		{
			ID:          200,
			StationID:   2,
			Name:        "Distribution locale",
			Family:      "distribution",
			Product:     "colis",
			Unit:        engine.UnitParcel,
			UnitTimeMin: dec("0.5"),
		},
	}
	repo := seedCentre(centre, stations, tasks)

	params := engine.DefaultParameters()
	params.AxesShareArrival = dec("0.4")

	res := runSim(t, repo, engine.SimulationRequest{
		CentreID: 101,
		Volumes:  parcelArrivalGrid("264000"),
		Params:   params,
	})

	assert.True(t, res.TotalHours.Equal(dec("25")), "total hours = %s", res.TotalHours)
	assert.True(t, res.FTERounded.Equal(dec("4")), "fte rounded = %s", res.FTERounded)
	assert.Empty(t, res.Warnings)

	require.Len(t, res.Stations, 2)
	assert.True(t, res.Stations[0].FTERounded.Equal(dec("3")))
	assert.True(t, res.Stations[1].FTERounded.Equal(dec("1")))
}

// =============================================================================
// INVARIANTS
// =============================================================================

func TestSimulate_Deterministic(t *testing.T) {
	// GIVEN: a fixed centre and grid
	// WHEN: simulating twice
	// THEN: totals, per-task hours and traces are identical

	centre := engine.Centre{ID: 101, Label: "Centre de tri"}
	station := sortingStation(101, 1, "Agent de tri", engine.LabourDirect, 1)
	repo := seedCentre(centre, []engine.CentreJobStation{station}, []engine.Task{parcelSortTask(100, 1)})

	req := engine.SimulationRequest{
		CentreID: 101,
		Volumes:  parcelArrivalGrid("264000"),
		Params:   engine.DefaultParameters(),
	}

	first := runSim(t, repo, req)
	second := runSim(t, repo, req)

	assert.True(t, first.TotalHours.Equal(second.TotalHours))
	assert.True(t, first.FTERounded.Equal(second.FTERounded))
	require.Equal(t, len(first.Tasks), len(second.Tasks))
	for i := range first.Tasks {
		assert.True(t, first.Tasks[i].Hours.Equal(second.Tasks[i].Hours))
		assert.Equal(t, first.Tasks[i].Trace, second.Tasks[i].Trace)
	}
}

func TestSimulate_LinearInVolume(t *testing.T) {
	// GIVEN: the same centre with the grid doubled
	// WHEN: simulating both
	// THEN: hours double exactly

	centre := engine.Centre{ID: 101, Label: "Centre de tri"}
	station := sortingStation(101, 1, "Agent de tri", engine.LabourDirect, 1)
	repo := seedCentre(centre, []engine.CentreJobStation{station}, []engine.Task{parcelSortTask(100, 1)})

	base := runSim(t, repo, engine.SimulationRequest{
		CentreID: 101, Volumes: parcelArrivalGrid("264000"), Params: engine.DefaultParameters(),
	})
	doubled := runSim(t, repo, engine.SimulationRequest{
		CentreID: 101, Volumes: parcelArrivalGrid("528000"), Params: engine.DefaultParameters(),
	})

	assert.True(t, doubled.TotalHours.Equal(base.TotalHours.Mul(dec("2"))),
		"expected %s, got %s", base.TotalHours.Mul(dec("2")), doubled.TotalHours)
}

func TestSimulate_ProductivityScalesHours(t *testing.T) {
	// GIVEN: the 20-hour sorting centre
	// WHEN: simulating at productivity 200 and 50
	// THEN: hours halve at 200 and double at 50

	centre := engine.Centre{ID: 101, Label: "Centre de tri"}
	station := sortingStation(101, 1, "Agent de tri", engine.LabourDirect, 1)
	repo := seedCentre(centre, []engine.CentreJobStation{station}, []engine.Task{parcelSortTask(100, 1)})

	fast := engine.DefaultParameters()
	fast.Productivity = dec("200")
	slow := engine.DefaultParameters()
	slow.Productivity = dec("50")

	resFast := runSim(t, repo, engine.SimulationRequest{CentreID: 101, Volumes: parcelArrivalGrid("264000"), Params: fast})
	resSlow := runSim(t, repo, engine.SimulationRequest{CentreID: 101, Volumes: parcelArrivalGrid("264000"), Params: slow})

	assert.True(t, resFast.TotalHours.Equal(dec("10")), "hours at 200%% = %s", resFast.TotalHours)
	assert.True(t, resSlow.TotalHours.Equal(dec("40")), "hours at 50%% = %s", resSlow.TotalHours)
}

func TestSimulate_StationFilterMatchesSubset(t *testing.T) {
	// GIVEN: the two-station centre
	// WHEN: simulating only station 2
	// THEN: the result equals station 2's slice of the full run

	centre := engine.Centre{ID: 101, Label: "Centre de tri"}
	stations := []engine.CentreJobStation{
		sortingStation(101, 1, "Agent de tri", engine.LabourDirect, 2),
		sortingStation(101, 2, "Facteur", engine.LabourDirect, 1),
	}
	tasks := []engine.Task{
		parcelSortTask(100, 1),
		{
			ID: 200, StationID: 2, Name: "Distribution locale", Family: "distribution",
			Product: "colis", Unit: engine.UnitParcel, UnitTimeMin: dec("0.5"),
		},
	}
	repo := seedCentre(centre, stations, tasks)

	params := engine.DefaultParameters()
	params.AxesShareArrival = dec("0.4")

	only := engine.StationID(2)
	res := runSim(t, repo, engine.SimulationRequest{
		CentreID:  101,
		StationID: &only,
		Volumes:   parcelArrivalGrid("264000"),
		Params:    params,
	})

	require.Len(t, res.Stations, 1)
	assert.Equal(t, only, res.Stations[0].ID)
	assert.True(t, res.TotalHours.Equal(dec("5")), "total hours = %s", res.TotalHours)
	assert.True(t, res.FTERounded.Equal(dec("1")))
}

func TestSimulate_EmptyGridYieldsZero(t *testing.T) {
	// GIVEN: a centre with tasks but no volumes at all
	// WHEN: simulating
	// THEN: zero hours, zero FTE, no error

	centre := engine.Centre{ID: 101, Label: "Centre de tri"}
	station := sortingStation(101, 1, "Agent de tri", engine.LabourDirect, 1)
	repo := seedCentre(centre, []engine.CentreJobStation{station}, []engine.Task{parcelSortTask(100, 1)})

	res := runSim(t, repo, engine.SimulationRequest{
		CentreID: 101,
		Params:   engine.DefaultParameters(),
	})

	assert.True(t, res.TotalHours.IsZero())
	assert.True(t, res.FTERounded.IsZero())
}

func TestSimulate_FullAxesShareZeroesDistribution(t *testing.T) {
	// GIVEN: axes share arrival of 1.0
	// WHEN: simulating a distribution task
	// THEN: nothing remains for local distribution

	centre := engine.Centre{ID: 101, Label: "Centre de tri"}
	station := sortingStation(101, 1, "Facteur", engine.LabourDirect, 1)
	task := engine.Task{
		ID: 200, StationID: 1, Name: "Distribution locale", Family: "distribution",
		Product: "colis", Unit: engine.UnitParcel, UnitTimeMin: dec("0.5"),
	}
	repo := seedCentre(centre, []engine.CentreJobStation{station}, []engine.Task{task})

	params := engine.DefaultParameters()
	params.AxesShareArrival = dec("1")

	res := runSim(t, repo, engine.SimulationRequest{
		CentreID: 101,
		Volumes:  parcelArrivalGrid("264000"),
		Params:   params,
	})

	require.Len(t, res.Tasks, 1)
	assert.True(t, res.Tasks[0].Hours.IsZero(), "hours = %s", res.Tasks[0].Hours)
}

func TestSimulate_NetHoursFloored(t *testing.T) {
	// GIVEN: idle minutes consuming the whole working day
	// WHEN: simulating
	// THEN: net hours floor at 0.1 and FTE stays finite

	centre := engine.Centre{ID: 101, Label: "Centre de tri"}
	station := sortingStation(101, 1, "Agent de tri", engine.LabourDirect, 1)
	repo := seedCentre(centre, []engine.CentreJobStation{station}, []engine.Task{parcelSortTask(100, 1)})

	params := engine.DefaultParameters()
	params.IdleMinutes = dec("480")

	res := runSim(t, repo, engine.SimulationRequest{
		CentreID: 101,
		Volumes:  parcelArrivalGrid("264000"),
		Params:   params,
	})

	assert.True(t, res.NetHoursPerDay.Equal(dec("0.1")), "net hours = %s", res.NetHoursPerDay)
	assert.True(t, res.FTEExact.Equal(dec("200")), "fte exact = %s", res.FTEExact)
}

func TestSimulate_ShiftMultiplierQualifyingRole(t *testing.T) {
	// GIVEN: a handling station and a sorting station, shift 2
	// WHEN: simulating the same task at both
	// THEN: only the handling station's hours double, and its trace
	//       records the brigade

	centre := engine.Centre{ID: 101, Label: "Centre de tri"}
	stations := []engine.CentreJobStation{
		sortingStation(101, 1, "Manutentionnaire", engine.LabourDirect, 1),
		sortingStation(101, 2, "Agent de tri", engine.LabourDirect, 1),
	}
	tasks := []engine.Task{parcelSortTask(100, 1), parcelSortTask(101, 2)}
	repo := seedCentre(centre, stations, tasks)

	params := engine.DefaultParameters()
	params.Shift = 2

	res := runSim(t, repo, engine.SimulationRequest{
		CentreID: 101,
		Volumes:  parcelArrivalGrid("264000"),
		Params:   params,
	})

	require.Len(t, res.Tasks, 2)
	assert.True(t, res.Tasks[0].Hours.Equal(dec("40")), "handling hours = %s", res.Tasks[0].Hours)
	assert.True(t, res.Tasks[1].Hours.Equal(dec("20")), "sorting hours = %s", res.Tasks[1].Hours)
	assert.Contains(t, res.Tasks[0].Trace, "brigade 2")
	assert.NotContains(t, res.Tasks[1].Trace, "brigade")
}

// =============================================================================
// WARNINGS AND ERRORS
// =============================================================================

func TestSimulate_MissingUnitTimeWarnsAndContinues(t *testing.T) {
	// GIVEN: one healthy task and one flagged without a unit time
	// WHEN: simulating
	// THEN: the flagged task emits zero hours plus a warning; the
	//       healthy task is unaffected

	centre := engine.Centre{ID: 101, Label: "Centre de tri"}
	station := sortingStation(101, 1, "Agent de tri", engine.LabourDirect, 1)
	broken := engine.Task{
		ID: 999, StationID: 1, Name: "Tâche sans temps", Family: "tri",
		Unit: engine.UnitParcel, Flags: engine.TaskFlags{MissingUnitTime: true},
	}
	repo := seedCentre(centre, []engine.CentreJobStation{station}, []engine.Task{parcelSortTask(100, 1), broken})

	res := runSim(t, repo, engine.SimulationRequest{
		CentreID: 101,
		Volumes:  parcelArrivalGrid("264000"),
		Params:   engine.DefaultParameters(),
	})

	assert.True(t, res.TotalHours.Equal(dec("20")), "total hours = %s", res.TotalHours)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, engine.WarnMissingUnitTime, res.Warnings[0].Kind)
	assert.Equal(t, engine.TaskID(999), res.Warnings[0].TaskID)
}

func TestSimulate_UnknownCentre(t *testing.T) {
	// GIVEN: an empty repository
	// WHEN: simulating centre 404
	// THEN: a CENTRE_NOT_FOUND error

	repo := store.NewMemory()

	_, err := newTestEngine(repo).Simulate(context.Background(), engine.SimulationRequest{
		CentreID: 404,
		Params:   engine.DefaultParameters(),
	})

	require.Error(t, err)
	assert.True(t, engine.IsNotFound(err))
	assert.Equal(t, engine.KindCentreNotFound, engine.KindOf(err))
}

func TestSimulate_InvalidProductivity(t *testing.T) {
	// GIVEN: productivity out of range
	// WHEN: simulating
	// THEN: an INVALID_PARAMETER client error before any repository read

	repo := store.NewMemory()
	params := engine.DefaultParameters()
	params.Productivity = dec("250")

	_, err := newTestEngine(repo).Simulate(context.Background(), engine.SimulationRequest{
		CentreID: 101,
		Params:   params,
	})

	require.Error(t, err)
	assert.True(t, engine.IsClientError(err))
	assert.Equal(t, engine.KindInvalidParameter, engine.KindOf(err))
}

func TestSimulate_UnresolvedFlowCode(t *testing.T) {
	// GIVEN: a grid entry with an unknown flow code
	// WHEN: simulating
	// THEN: a REFERENCE_UNRESOLVED client error

	centre := engine.Centre{ID: 101, Label: "Centre de tri"}
	station := sortingStation(101, 1, "Agent de tri", engine.LabourDirect, 1)
	repo := seedCentre(centre, []engine.CentreJobStation{station}, []engine.Task{parcelSortTask(100, 1)})

	_, err := newTestEngine(repo).Simulate(context.Background(), engine.SimulationRequest{
		CentreID: 101,
		Volumes: []engine.VolumeEntry{
			{Flow: "PIGEON", Direction: reference.DirectionArrival, Segment: reference.SegmentGlobal, Annual: dec("100")},
		},
		Params: engine.DefaultParameters(),
	})

	require.Error(t, err)
	assert.True(t, engine.IsClientError(err))
	assert.Equal(t, engine.KindReferenceUnresolved, engine.KindOf(err))
}

func TestSimulate_NegativeVolumeRejected(t *testing.T) {
	// GIVEN: a negative grid cell
	// WHEN: simulating
	// THEN: an INVALID_PARAMETER error

	centre := engine.Centre{ID: 101, Label: "Centre de tri"}
	station := sortingStation(101, 1, "Agent de tri", engine.LabourDirect, 1)
	repo := seedCentre(centre, []engine.CentreJobStation{station}, []engine.Task{parcelSortTask(100, 1)})

	_, err := newTestEngine(repo).Simulate(context.Background(), engine.SimulationRequest{
		CentreID: 101,
		Volumes:  parcelArrivalGrid("-1"),
		Params:   engine.DefaultParameters(),
	})

	require.Error(t, err)
	assert.Equal(t, engine.KindInvalidParameter, engine.KindOf(err))
}

func TestSimulate_DuplicateGridCellsAccumulate(t *testing.T) {
	// GIVEN: the arrival volume split over two identical keys, spelled
	//        with different case and accents
	// WHEN: simulating
	// THEN: the cells accumulate to the same 20-hour result

	centre := engine.Centre{ID: 101, Label: "Centre de tri"}
	station := sortingStation(101, 1, "Agent de tri", engine.LabourDirect, 1)
	repo := seedCentre(centre, []engine.CentreJobStation{station}, []engine.Task{parcelSortTask(100, 1)})

	res := runSim(t, repo, engine.SimulationRequest{
		CentreID: 101,
		Volumes: []engine.VolumeEntry{
			{Flow: "colis", Direction: "Arrivée", Segment: "global", Annual: dec("132000")},
			{Flow: "COLIS", Direction: "ARRIVEE", Segment: "GLOBAL", Annual: dec("132000")},
		},
		Params: engine.DefaultParameters(),
	})

	assert.True(t, res.TotalHours.Equal(dec("20")), "total hours = %s", res.TotalHours)
}

func TestSimulate_CancelledContext(t *testing.T) {
	// GIVEN: an already-cancelled context
	// WHEN: simulating
	// THEN: the context error surfaces

	centre := engine.Centre{ID: 101, Label: "Centre de tri"}
	station := sortingStation(101, 1, "Agent de tri", engine.LabourDirect, 1)
	repo := seedCentre(centre, []engine.CentreJobStation{station}, []engine.Task{parcelSortTask(100, 1)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine(repo).Simulate(ctx, engine.SimulationRequest{
		CentreID: 101,
		Volumes:  parcelArrivalGrid("264000"),
		Params:   engine.DefaultParameters(),
	})

	assert.ErrorIs(t, err, context.Canceled)
}
