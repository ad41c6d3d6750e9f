// Package store provides Repository implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/tawazoon/staffing-engine/engine"
)

// =============================================================================
// MEMORY REPOSITORY - In-memory implementation (for testing/dev)
// =============================================================================

// Memory holds the organisation tree in maps. Seed it with AddCentre /
// AddStation / AddTask, then hand it to engine.New. Reads are
// copy-on-return so callers cannot mutate the stored slices.
type Memory struct {
	mu       sync.RWMutex
	centres  map[engine.CentreID]engine.Centre
	stations map[engine.CentreID][]engine.CentreJobStation
	tasks    map[engine.StationID][]engine.Task
}

func NewMemory() *Memory {
	return &Memory{
		centres:  make(map[engine.CentreID]engine.Centre),
		stations: make(map[engine.CentreID][]engine.CentreJobStation),
		tasks:    make(map[engine.StationID][]engine.Task),
	}
}

// AddCentre registers (or replaces) a centre.
func (m *Memory) AddCentre(c engine.Centre) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.centres[c.ID] = c
}

// AddStation attaches a job station to its centre.
func (m *Memory) AddStation(st engine.CentreJobStation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stations[st.CentreID] = append(m.stations[st.CentreID], st)
}

// AddTask attaches a task to its station.
func (m *Memory) AddTask(t engine.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[t.StationID] = append(m.tasks[t.StationID], t)
}

// Centre implements engine.Repository.
func (m *Memory) Centre(_ context.Context, id engine.CentreID) (engine.Centre, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.centres[id]
	if !ok {
		return engine.Centre{}, engine.ErrCentreNotFound
	}
	return c, nil
}

// ListCentres implements engine.Repository.
func (m *Memory) ListCentres(_ context.Context) ([]engine.Centre, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]engine.Centre, 0, len(m.centres))
	for _, c := range m.centres {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// StationsForCentre implements engine.Repository.
func (m *Memory) StationsForCentre(_ context.Context, id engine.CentreID) ([]engine.CentreJobStation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]engine.CentreJobStation(nil), m.stations[id]...), nil
}

// TasksForCentre implements engine.Repository.
func (m *Memory) TasksForCentre(_ context.Context, id engine.CentreID, station *engine.StationID) ([]engine.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []engine.Task
	for _, st := range m.stations[id] {
		if station != nil && st.ID != *station {
			continue
		}
		out = append(out, m.tasks[st.ID]...)
	}
	return out, nil
}

// Compile-time check that Memory implements engine.Repository.
var _ engine.Repository = (*Memory)(nil)
