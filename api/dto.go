/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's decimal-based domain model from the external API contract:
  volumes come in as JSON numbers, results go out as float64, and field
  names stay stable regardless of internal refactors.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Structural validation (required fields, numeric ranges) lives in the
  engine; handlers only translate between JSON and domain types and map
  engine error kinds to HTTP status codes.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/centre.go: CentreJSON / ParametersJSON reused for imports
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/tawazoon/staffing-engine/engine"
	"github.com/tawazoon/staffing-engine/factory"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// VolumeEntryDTO is one cell of the annual volume grid.
type VolumeEntryDTO struct {
	Flow      string  `json:"flow"`
	Direction string  `json:"direction"`
	Segment   string  `json:"segment"`
	Annual    float64 `json:"annual"`
}

// SimulationRequestDTO is the body of POST /api/simulations.
type SimulationRequestDTO struct {
	CentreID  int64                   `json:"centre_id"`
	StationID *int64                  `json:"station_id,omitempty"`
	Volumes   []VolumeEntryDTO        `json:"volumes"`
	Params    *factory.ParametersJSON `json:"parameters,omitempty"`
}

// toEngineRequest converts the DTO into the engine's typed request.
func (r SimulationRequestDTO) toEngineRequest() engine.SimulationRequest {
	req := engine.SimulationRequest{
		CentreID: engine.CentreID(r.CentreID),
		Params:   engine.DefaultParameters(),
	}
	if r.StationID != nil {
		id := engine.StationID(*r.StationID)
		req.StationID = &id
	}
	if r.Params != nil {
		req.Params = factory.BuildParameters(*r.Params)
	}
	for _, v := range r.Volumes {
		req.Volumes = append(req.Volumes, engine.VolumeEntry{
			Flow:      v.Flow,
			Direction: v.Direction,
			Segment:   v.Segment,
			Annual:    decimal.NewFromFloat(v.Annual),
		})
	}
	return req
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// CentreDTO represents a centre in API responses.
type CentreDTO struct {
	ID             int64  `json:"id"`
	Label          string `json:"label"`
	Region         string `json:"region,omitempty"`
	Classification int    `json:"classification"`
	AdminStaff     int    `json:"admin_staff"`
}

// StationDTO represents a job-station assignment.
type StationDTO struct {
	ID             int64  `json:"id"`
	CentreID       int64  `json:"centre_id"`
	Label          string `json:"label"`
	Class          string `json:"class"`
	Headcount      int    `json:"headcount"`
	Responsibility string `json:"responsibility,omitempty"`
}

// TaskDTO represents a task definition.
type TaskDTO struct {
	ID         int64    `json:"id"`
	StationID  int64    `json:"station_id"`
	Name       string   `json:"name"`
	Family     string   `json:"family,omitempty"`
	Product    string   `json:"product,omitempty"`
	Unit       string   `json:"unit"`
	UnitTime   *float64 `json:"unit_time_min,omitempty"`
	BaseCalcul *int     `json:"base_calcul,omitempty"`
	Phase      string   `json:"phase,omitempty"`
}

// TaskResultDTO reports how one task's workload was derived.
type TaskResultDTO struct {
	ID           int64   `json:"id"`
	StationID    int64   `json:"station_id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	AppliedDaily float64 `json:"applied_daily"`
	Minutes      float64 `json:"minutes"`
	Hours        float64 `json:"hours"`
	Trace        string  `json:"trace"`
}

// StationResultDTO aggregates one station's hours and FTE.
type StationResultDTO struct {
	ID         int64   `json:"id"`
	Label      string  `json:"label"`
	Class      string  `json:"class"`
	Headcount  int     `json:"headcount"`
	Hours      float64 `json:"hours"`
	FTEExact   float64 `json:"fte_exact"`
	FTERounded float64 `json:"fte_rounded"`
	Delta      float64 `json:"delta"`
}

// ClassTotalDTO aggregates per labour classification.
type ClassTotalDTO struct {
	Class      string  `json:"class"`
	Hours      float64 `json:"hours"`
	FTERounded float64 `json:"fte_rounded"`
}

// WarningDTO is a non-fatal anomaly of one simulation.
type WarningDTO struct {
	Kind    string `json:"kind"`
	TaskID  int64  `json:"task_id,omitempty"`
	Message string `json:"message"`
}

// SimulationResultDTO is the response of POST /api/simulations.
type SimulationResultDTO struct {
	CentreID       int64              `json:"centre_id"`
	Strategy       string             `json:"strategy"`
	TotalHours     float64            `json:"total_hours"`
	NetHoursPerDay float64            `json:"net_hours_per_day"`
	FTEExact       float64            `json:"fte_exact"`
	FTERounded     float64            `json:"fte_rounded"`
	Stations       []StationResultDTO `json:"stations"`
	Tasks          []TaskResultDTO    `json:"tasks"`
	ByClass        []ClassTotalDTO    `json:"by_class"`
	Warnings       []WarningDTO       `json:"warnings"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a demo scenario to seed.
type LoadScenarioRequest struct {
	ID string `json:"id"`
}

// ReferenceEntryDTO is one reference code with its label.
type ReferenceEntryDTO struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toCentreDTO(c engine.Centre) CentreDTO {
	return CentreDTO{
		ID:             int64(c.ID),
		Label:          c.Label,
		Region:         c.Region,
		Classification: c.Classification,
		AdminStaff:     c.AdminStaff,
	}
}

func toStationDTO(st engine.CentreJobStation) StationDTO {
	return StationDTO{
		ID:             int64(st.ID),
		CentreID:       int64(st.CentreID),
		Label:          st.Template.Name,
		Class:          string(st.Template.Class),
		Headcount:      st.Headcount,
		Responsibility: st.ResponsibilityCode,
	}
}

func toTaskDTO(t engine.Task) TaskDTO {
	dto := TaskDTO{
		ID:         int64(t.ID),
		StationID:  int64(t.StationID),
		Name:       t.Name,
		Family:     t.Family,
		Product:    t.Product,
		Unit:       string(t.Unit),
		BaseCalcul: t.BaseCalcul,
		Phase:      t.Phase,
	}
	if !t.Flags.MissingUnitTime {
		f := t.UnitTimeMin.InexactFloat64()
		dto.UnitTime = &f
	}
	return dto
}

func toSimulationResultDTO(res *engine.SimulationResult) SimulationResultDTO {
	dto := SimulationResultDTO{
		CentreID:       int64(res.CentreID),
		Strategy:       res.StrategyName,
		TotalHours:     res.TotalHours.InexactFloat64(),
		NetHoursPerDay: res.NetHoursPerDay.InexactFloat64(),
		FTEExact:       res.FTEExact.InexactFloat64(),
		FTERounded:     res.FTERounded.InexactFloat64(),
		Stations:       []StationResultDTO{},
		Tasks:          []TaskResultDTO{},
		ByClass:        []ClassTotalDTO{},
		Warnings:       []WarningDTO{},
	}
	for _, st := range res.Stations {
		dto.Stations = append(dto.Stations, StationResultDTO{
			ID:         int64(st.ID),
			Label:      st.Label,
			Class:      string(st.Class),
			Headcount:  st.Headcount,
			Hours:      st.Hours.InexactFloat64(),
			FTEExact:   st.FTEExact.InexactFloat64(),
			FTERounded: st.FTERounded.InexactFloat64(),
			Delta:      st.Delta.InexactFloat64(),
		})
	}
	for _, t := range res.Tasks {
		dto.Tasks = append(dto.Tasks, TaskResultDTO{
			ID:           int64(t.ID),
			StationID:    int64(t.StationID),
			Name:         t.Name,
			Unit:         string(t.Unit),
			AppliedDaily: t.AppliedDaily.InexactFloat64(),
			Minutes:      t.Minutes.InexactFloat64(),
			Hours:        t.Hours.InexactFloat64(),
			Trace:        t.Trace,
		})
	}
	for _, ct := range res.ByClass {
		dto.ByClass = append(dto.ByClass, ClassTotalDTO{
			Class:      string(ct.Class),
			Hours:      ct.Hours.InexactFloat64(),
			FTERounded: ct.FTERounded.InexactFloat64(),
		})
	}
	for _, w := range res.Warnings {
		dto.Warnings = append(dto.Warnings, WarningDTO{
			Kind:    string(w.Kind),
			TaskID:  int64(w.TaskID),
			Message: w.Message,
		})
	}
	return dto
}
