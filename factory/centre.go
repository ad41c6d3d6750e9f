/*
Package factory provides JSON to Go centre and parameter conversion.

PURPOSE:
  Converts JSON centre definitions into engine.Centre, CentreJobStation
  and Task values, and JSON parameter documents into engine.Parameters.
  This enables centre configuration without code changes - method
  officers can define a centre's stations and tasks in JSON, and the
  factory creates the proper Go structs.

WHY JSON?
  - Non-developers can maintain centre definitions
  - Easy integration with an admin UI
  - Version control for reference data
  - Database seeding from the same documents

JSON SCHEMA (centre):
  {
    "id": 101,
    "label": "Centre de tri Casablanca",
    "region": "Casablanca-Settat",
    "classification": 3,
    "stations": [
      {
        "id": 1,
        "template": {"id": 10, "name": "Agent de tri", "class": "direct"},
        "headcount": 4,
        "tasks": [
          {
            "id": 100, "name": "Tri colis arrivee", "family": "tri",
            "unit": "colis", "unit_time_min": 1.2, "base_calcul": 100,
            "flow": "COLIS", "direction": "ARRIVEE", "segment": "GLOBAL"
          }
        ]
      }
    ]
  }

KEY FEATURES:
  - Validates structure (ids present, ownership consistent)
  - Flags anomalous tasks instead of rejecting them, matching the
    engine's warning semantics
  - Fills parameter defaults for absent fields

USAGE:
  centre, stations, tasks, err := factory.ParseCentre(jsonBytes)
  params, err := factory.ParseParameters(jsonBytes)

SEE ALSO:
  - engine/types.go: the target types
  - api/scenarios.go: demo documents built with this factory
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tawazoon/staffing-engine/engine"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CentreJSON is the JSON representation of a centre with its stations
// and tasks.
type CentreJSON struct {
	ID             int64         `json:"id"`
	Label          string        `json:"label"`
	Region         string        `json:"region,omitempty"`
	Classification int           `json:"classification,omitempty"`
	AdminStaff     int           `json:"admin_staff,omitempty"`
	Stations       []StationJSON `json:"stations"`
}

// StationJSON is one job-station assignment.
type StationJSON struct {
	ID             int64        `json:"id"`
	Template       TemplateJSON `json:"template"`
	Headcount      int          `json:"headcount,omitempty"`
	Responsibility string       `json:"responsibility,omitempty"`
	Tasks          []TaskJSON   `json:"tasks,omitempty"`
}

// TemplateJSON is a job-station template reference.
type TemplateJSON struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Class string `json:"class,omitempty"` // direct | indirect | administrative
}

// TaskJSON is one task definition.
type TaskJSON struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Family      string   `json:"family,omitempty"`
	Product     string   `json:"product,omitempty"`
	Unit        string   `json:"unit"`
	UnitTimeMin *float64 `json:"unit_time_min,omitempty"`
	BaseCalcul  *int     `json:"base_calcul,omitempty"`
	Phase       string   `json:"phase,omitempty"`
	Flow        *string  `json:"flow,omitempty"`
	Direction   *string  `json:"direction,omitempty"`
	Segment     *string  `json:"segment,omitempty"`
}

// ParametersJSON is the JSON representation of simulation parameters.
// Absent fields take the engine defaults.
type ParametersJSON struct {
	Productivity       *float64 `json:"productivity,omitempty"`
	HoursPerDay        *float64 `json:"hours_per_day,omitempty"`
	IdleMinutes        *float64 `json:"idle_minutes,omitempty"`
	WorkingDays        *int     `json:"working_days,omitempty"`
	ParcelsPerSack     *float64 `json:"parcels_per_sack,omitempty"`
	LettersPerSack     *float64 `json:"letters_per_sack,omitempty"`
	LettersPerCaisson  *float64 `json:"letters_per_caisson,omitempty"`
	LettersPerLiasse   *float64 `json:"letters_per_liasse,omitempty"`
	AxesShareArrival   *float64 `json:"axes_share_arrival,omitempty"`
	AxesShareDeparture *float64 `json:"axes_share_departure,omitempty"`
	CollecteShare      *float64 `json:"collecte_share,omitempty"`
	RetourShare        *float64 `json:"retour_share,omitempty"`
	NationalShare      *float64 `json:"national_share,omitempty"`
	InternationalShare *float64 `json:"international_share,omitempty"`
	Complexity         *float64 `json:"complexity,omitempty"`
	Geography          *float64 `json:"geography,omitempty"`
	Shift              *int     `json:"shift,omitempty"`
}

// =============================================================================
// CENTRE FACTORY
// =============================================================================

// ParseCentre converts a JSON centre document into domain values.
func ParseCentre(data []byte) (engine.Centre, []engine.CentreJobStation, []engine.Task, error) {
	var doc CentreJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return engine.Centre{}, nil, nil, fmt.Errorf("invalid centre JSON: %w", err)
	}
	return BuildCentre(doc)
}

// BuildCentre validates and converts an already-decoded document.
func BuildCentre(doc CentreJSON) (engine.Centre, []engine.CentreJobStation, []engine.Task, error) {
	if doc.ID == 0 {
		return engine.Centre{}, nil, nil, fmt.Errorf("centre id is required")
	}
	if doc.Label == "" {
		return engine.Centre{}, nil, nil, fmt.Errorf("centre %d: label is required", doc.ID)
	}

	centre := engine.Centre{
		ID:             engine.CentreID(doc.ID),
		Label:          doc.Label,
		Region:         doc.Region,
		Classification: doc.Classification,
		AdminStaff:     doc.AdminStaff,
	}

	var stations []engine.CentreJobStation
	var tasks []engine.Task
	seenStations := map[int64]bool{}

	for _, sj := range doc.Stations {
		if sj.ID == 0 {
			return engine.Centre{}, nil, nil, fmt.Errorf("centre %d: station id is required", doc.ID)
		}
		if seenStations[sj.ID] {
			return engine.Centre{}, nil, nil, fmt.Errorf("centre %d: duplicate station id %d", doc.ID, sj.ID)
		}
		seenStations[sj.ID] = true

		stations = append(stations, engine.CentreJobStation{
			ID:       engine.StationID(sj.ID),
			CentreID: centre.ID,
			Template: engine.JobStationTemplate{
				ID:    sj.Template.ID,
				Name:  sj.Template.Name,
				Class: labourClass(sj.Template.Class),
			},
			Headcount:          sj.Headcount,
			ResponsibilityCode: sj.Responsibility,
		})

		for _, tj := range sj.Tasks {
			task, err := buildTask(tj, engine.StationID(sj.ID))
			if err != nil {
				return engine.Centre{}, nil, nil, fmt.Errorf("centre %d station %d: %w", doc.ID, sj.ID, err)
			}
			tasks = append(tasks, task)
		}
	}

	return centre, stations, tasks, nil
}

// buildTask converts one task definition. Anomalies that the engine
// treats as warnings (missing unit time, unknown unit) become flags,
// not errors; structural problems (no id, no name) are errors.
func buildTask(tj TaskJSON, station engine.StationID) (engine.Task, error) {
	if tj.ID == 0 {
		return engine.Task{}, fmt.Errorf("task id is required")
	}
	if tj.Name == "" {
		return engine.Task{}, fmt.Errorf("task %d: name is required", tj.ID)
	}

	task := engine.Task{
		ID:         engine.TaskID(tj.ID),
		StationID:  station,
		Name:       tj.Name,
		Family:     tj.Family,
		Product:    tj.Product,
		BaseCalcul: tj.BaseCalcul,
		Phase:      tj.Phase,
	}

	unit, known := engine.ParseUnit(tj.Unit)
	task.Unit = unit
	if !known {
		task.Flags.UnknownUnit = true
	}

	if tj.UnitTimeMin == nil || *tj.UnitTimeMin <= 0 {
		task.Flags.MissingUnitTime = true
	} else {
		task.UnitTimeMin = decimal.NewFromFloat(*tj.UnitTimeMin)
	}

	// A volume key needs all three codes; partial keys are structural
	// mistakes in the document.
	set := 0
	for _, p := range []*string{tj.Flow, tj.Direction, tj.Segment} {
		if p != nil {
			set++
		}
	}
	switch set {
	case 0:
	case 3:
		task.Key = &engine.VolumeKey{Flow: *tj.Flow, Direction: *tj.Direction, Segment: *tj.Segment}
	default:
		return engine.Task{}, fmt.Errorf("task %d: flow/direction/segment must be set together", tj.ID)
	}

	return task, nil
}

func labourClass(s string) engine.LabourClass {
	switch s {
	case "indirect":
		return engine.LabourIndirect
	case "administrative":
		return engine.LabourAdministrative
	default:
		return engine.LabourDirect
	}
}

// =============================================================================
// PARAMETER FACTORY
// =============================================================================

// ParseParameters converts a JSON parameter document, filling defaults
// for absent fields.
func ParseParameters(data []byte) (engine.Parameters, error) {
	var doc ParametersJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return engine.Parameters{}, fmt.Errorf("invalid parameters JSON: %w", err)
	}
	return BuildParameters(doc), nil
}

// BuildParameters converts an already-decoded document.
func BuildParameters(doc ParametersJSON) engine.Parameters {
	p := engine.DefaultParameters()
	setDec := func(dst *decimal.Decimal, src *float64) {
		if src != nil {
			*dst = decimal.NewFromFloat(*src)
		}
	}
	setDec(&p.Productivity, doc.Productivity)
	setDec(&p.HoursPerDay, doc.HoursPerDay)
	setDec(&p.IdleMinutes, doc.IdleMinutes)
	setDec(&p.ParcelsPerSack, doc.ParcelsPerSack)
	setDec(&p.LettersPerSack, doc.LettersPerSack)
	setDec(&p.LettersPerCaisson, doc.LettersPerCaisson)
	setDec(&p.LettersPerLiasse, doc.LettersPerLiasse)
	setDec(&p.AxesShareArrival, doc.AxesShareArrival)
	setDec(&p.AxesShareDeparture, doc.AxesShareDeparture)
	setDec(&p.CollecteShare, doc.CollecteShare)
	setDec(&p.RetourShare, doc.RetourShare)
	setDec(&p.NationalShare, doc.NationalShare)
	setDec(&p.InternationalShare, doc.InternationalShare)
	setDec(&p.Complexity, doc.Complexity)
	setDec(&p.Geography, doc.Geography)
	if doc.WorkingDays != nil {
		p.WorkingDays = *doc.WorkingDays
	}
	if doc.Shift != nil {
		p.Shift = *doc.Shift
	}
	return p
}
