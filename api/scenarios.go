/*
scenarios.go - Demo scenario seeds

PURPOSE:
  Ships a handful of ready-made centres so a fresh server is usable
  immediately: a standard regional sorting centre, the messenger hub
  (centre 2064) and a transit platform. Each scenario is a factory
  document; loading one persists it through the write store.

SCENARIOS:
  tri-regional   - regional sorting/distribution centre, standard rules
  messagerie     - the messenger hub, served by the messenger_hub strategy
  plateforme     - classification-8 platform, served by the platform strategy

SEE ALSO:
  - factory/centre.go: the document schema
  - handlers.go: ListScenarios / LoadScenario endpoints
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tawazoon/staffing-engine/engine"
	"github.com/tawazoon/staffing-engine/factory"
)

// Scenario pairs a description with its centre document.
type Scenario struct {
	ID          string
	Name        string
	Description string
	Doc         factory.CentreJSON
}

func fptr(f float64) *float64 { return &f }
func iptr(i int) *int         { return &i }
func sptr(s string) *string   { return &s }

// Scenarios returns the built-in demo scenarios in display order.
func Scenarios() []Scenario {
	return []Scenario{
		{
			ID:          "tri-regional",
			Name:        "Centre de tri régional",
			Description: "Regional sorting and distribution centre with sorting, line-haul, counter and collecte stations",
			Doc: factory.CentreJSON{
				ID:             101,
				Label:          "Centre de tri Casablanca",
				Region:         "Casablanca-Settat",
				Classification: 3,
				Stations: []factory.StationJSON{
					{
						ID:       1,
						Template:  factory.TemplateJSON{ID: 10, Name: "Agent de tri", Class: "direct"},
						Headcount: 4,
						Tasks: []factory.TaskJSON{
							{ID: 100, Name: "Tri colis arrivée", Family: "tri", Unit: "colis", UnitTimeMin: fptr(1.2), BaseCalcul: iptr(100),
								Flow: sptr("COLIS"), Direction: sptr("ARRIVEE"), Segment: sptr("GLOBAL")},
							{ID: 101, Name: "Ouverture sacs courrier", Family: "arrivee", Product: "courrier ordinaire", Unit: "sac", UnitTimeMin: fptr(3)},
							{ID: 102, Name: "Mise en liasse distribution", Family: "distribution", Product: "courrier ordinaire", Unit: "liasse", UnitTimeMin: fptr(0.8)},
						},
					},
					{
						ID:       2,
						Template:  factory.TemplateJSON{ID: 11, Name: "Guichetier", Class: "direct"},
						Headcount: 2,
						Tasks: []factory.TaskJSON{
							{ID: 110, Name: "Dépôt et retrait guichet", Family: "guichet", Product: "colis", Unit: "colis", UnitTimeMin: fptr(2.5)},
						},
					},
					{
						ID:       3,
						Template:  factory.TemplateJSON{ID: 12, Name: "Agent de collecte", Class: "direct"},
						Headcount: 1,
						Tasks: []factory.TaskJSON{
							{ID: 120, Name: "Tournée de collecte", Family: "collecte", Product: "colis", Unit: "colis", UnitTimeMin: fptr(1)},
							{ID: 121, Name: "Traitement retour", Family: "tri", Product: "colis", Unit: "colis", UnitTimeMin: fptr(1.5)},
						},
					},
					{
						ID:       4,
						Template:  factory.TemplateJSON{ID: 13, Name: "Responsable op", Class: "indirect"},
						Headcount: 1,
						Tasks: []factory.TaskJSON{
							{ID: 130, Name: "Supervision départ recommandé", Family: "depart", Product: "courrier recommandé départ", Unit: "caisson", UnitTimeMin: fptr(4), BaseCalcul: iptr(60)},
						},
					},
				},
			},
		},
		{
			ID:          "messagerie",
			Name:        "Hub messagerie",
			Description: "Messenger hub 2064; express deliveries and pickups drive every station",
			Doc: factory.CentreJSON{
				ID:             int64(engine.CentreMessengerHub),
				Label:          "Hub messagerie Rabat",
				Region:         "Rabat-Salé-Kénitra",
				Classification: 5,
				Stations: []factory.StationJSON{
					{
						ID:       20,
						Template:  factory.TemplateJSON{ID: 14, Name: "Coursier", Class: "direct"},
						Headcount: 6,
						Tasks: []factory.TaskJSON{
							{ID: 200, Name: "Tournée livraison express", Family: "course", Product: "livraison express", Unit: "colis", UnitTimeMin: fptr(5)},
							{ID: 201, Name: "Ramassage clients", Family: "ramassage", Product: "ramassage express", Unit: "colis", UnitTimeMin: fptr(4)},
						},
					},
					{
						ID:       21,
						Template:  factory.TemplateJSON{ID: 15, Name: "Agent op", Class: "direct"},
						Headcount: 2,
						Tasks: []factory.TaskJSON{
							{ID: 210, Name: "Consolidation départs", Family: "consolidation", Product: "express", Unit: "depeche", UnitTimeMin: fptr(2)},
						},
					},
				},
			},
		},
		{
			ID:          "plateforme",
			Name:        "Plateforme de transit",
			Description: "Classification-8 platform; dock handling and line-haul dominate",
			Doc: factory.CentreJSON{
				ID:             301,
				Label:          "Plateforme Nouaceur",
				Region:         "Casablanca-Settat",
				Classification: engine.ClassificationPlatform,
				Stations: []factory.StationJSON{
					{
						ID:       30,
						Template:  factory.TemplateJSON{ID: 16, Name: "Manutentionnaire", Class: "direct"},
						Headcount: 8,
						Tasks: []factory.TaskJSON{
							{ID: 300, Name: "Déchargement quai arrivée", Family: "arrivee", Product: "colis", Unit: "camion", UnitTimeMin: fptr(45)},
							{ID: 301, Name: "Chargement quai départ", Family: "depart", Product: "colis", Unit: "camion", UnitTimeMin: fptr(40)},
							{ID: 302, Name: "Manutention transit", Family: "manutention", Product: "colis", Unit: "colis", UnitTimeMin: fptr(0.3)},
						},
					},
					{
						ID:       31,
						Template:  factory.TemplateJSON{ID: 17, Name: "Contrôleur", Class: "indirect"},
						Headcount: 1,
						Tasks: []factory.TaskJSON{
							{ID: 310, Name: "Contrôle des départs", Family: "depart", Product: "colis", Unit: "depeche", UnitTimeMin: fptr(1.5)},
						},
					},
				},
			},
		},
	}
}

// SeedScenario persists one scenario through the write store.
func (h *Handler) SeedScenario(ctx context.Context, sc Scenario) error {
	centre, stations, tasks, err := factory.BuildCentre(sc.Doc)
	if err != nil {
		return fmt.Errorf("scenario %s: %w", sc.ID, err)
	}
	if err := h.Store.SaveCentre(ctx, centre); err != nil {
		return err
	}
	for _, st := range stations {
		if err := h.Store.SaveTemplate(ctx, st.Template); err != nil {
			return err
		}
		if err := h.Store.SaveStation(ctx, st); err != nil {
			return err
		}
	}
	for _, t := range tasks {
		if err := h.Store.SaveTask(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

// ListScenarios handles GET /api/scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	out := make([]ScenarioDTO, 0)
	for _, sc := range Scenarios() {
		out = append(out, ScenarioDTO{ID: sc.ID, Name: sc.Name, Description: sc.Description})
	}
	writeJSON(w, http.StatusOK, out)
}

// LoadScenario handles POST /api/scenarios/load.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusNotImplemented, "NO_STORE", "scenario loading requires a persistent store")
		return
	}

	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid JSON body: "+err.Error())
		return
	}

	for _, sc := range Scenarios() {
		if sc.ID == req.ID {
			if err := h.SeedScenario(r.Context(), sc); err != nil {
				writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"loaded": sc.ID})
			return
		}
	}
	writeError(w, http.StatusNotFound, "SCENARIO_NOT_FOUND", "unknown scenario "+req.ID)
}
