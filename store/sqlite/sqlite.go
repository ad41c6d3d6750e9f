/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements the engine's read-side Repository plus the write-side the
  API layer uses (centre/station/task upserts, simulation history).
  In production the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

INTERFACES IMPLEMENTED:
  engine.Repository: centres, job stations, tasks (read side)

KEY TABLES:
  centres:               operational sites
  job_station_templates: role definitions with labour classification
  centre_job_stations:   template assignment to a centre + headcount
  tasks:                 per-station tasks with all rule attributes
  simulations:           submitted runs with their JSON result

FLAGGED TASKS:
  The repository never drops an anomalous task. NULL unit times and
  unrecognised units of measure are flagged on the returned Task so the
  engine can emit zero workload plus a warning instead of failing.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/staffing.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
  eng := engine.New(catalogue, engine.DefaultRegistry(), store)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - engine/repository.go: interface definition
  - engine/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/tawazoon/staffing-engine/engine"
)

// Store implements the storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Operational sites
	CREATE TABLE IF NOT EXISTS centres (
		id INTEGER PRIMARY KEY,
		label TEXT NOT NULL,
		region TEXT NOT NULL DEFAULT '',
		classification INTEGER NOT NULL DEFAULT 0,
		admin_staff INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	-- Role definitions
	CREATE TABLE IF NOT EXISTS job_station_templates (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		class TEXT NOT NULL DEFAULT 'direct'
	);

	-- Template assignment to a centre
	CREATE TABLE IF NOT EXISTS centre_job_stations (
		id INTEGER PRIMARY KEY,
		centre_id INTEGER NOT NULL REFERENCES centres(id),
		template_id INTEGER NOT NULL REFERENCES job_station_templates(id),
		headcount INTEGER NOT NULL DEFAULT 0,
		responsibility_code TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_stations_centre
		ON centre_job_stations(centre_id);

	-- Tasks with every rule attribute. unit_time_min is NULL when the
	-- reference data never captured it; the engine flags those tasks.
	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY,
		station_id INTEGER NOT NULL REFERENCES centre_job_stations(id),
		name TEXT NOT NULL,
		family TEXT NOT NULL DEFAULT '',
		product TEXT NOT NULL DEFAULT '',
		unit TEXT NOT NULL DEFAULT '',
		unit_time_min TEXT,
		base_calcul INTEGER,
		phase TEXT NOT NULL DEFAULT '',
		flow TEXT,
		direction TEXT,
		segment TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_station
		ON tasks(station_id);

	-- Submitted simulation runs. Storing results is the caller's
	-- concern; the engine itself never writes here.
	CREATE TABLE IF NOT EXISTS simulations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		centre_id INTEGER NOT NULL,
		strategy TEXT NOT NULL,
		request_json TEXT NOT NULL,
		result_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_simulations_centre
		ON simulations(centre_id, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// WRITE SIDE - seeds and imports
// =============================================================================

// SaveCentre inserts or replaces a centre.
func (s *Store) SaveCentre(ctx context.Context, c engine.Centre) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO centres (id, label, region, classification, admin_staff, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		int64(c.ID), c.Label, c.Region, c.Classification, c.AdminStaff,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// SaveTemplate inserts or replaces a job-station template.
func (s *Store) SaveTemplate(ctx context.Context, t engine.JobStationTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO job_station_templates (id, name, class)
		VALUES (?, ?, ?)`,
		t.ID, t.Name, string(t.Class))
	return err
}

// SaveStation inserts or replaces a centre job station. The template
// must already exist.
func (s *Store) SaveStation(ctx context.Context, st engine.CentreJobStation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO centre_job_stations (id, centre_id, template_id, headcount, responsibility_code)
		VALUES (?, ?, ?, ?, ?)`,
		int64(st.ID), int64(st.CentreID), st.Template.ID, st.Headcount, st.ResponsibilityCode)
	return err
}

// SaveTask inserts or replaces a task.
func (s *Store) SaveTask(ctx context.Context, t engine.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var unitTime any
	if !t.Flags.MissingUnitTime && t.UnitTimeMin.IsPositive() {
		unitTime = t.UnitTimeMin.String()
	}
	var base any
	if t.BaseCalcul != nil {
		base = *t.BaseCalcul
	}
	var flow, direction, segment any
	if t.Key != nil {
		flow, direction, segment = t.Key.Flow, t.Key.Direction, t.Key.Segment
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO tasks
			(id, station_id, name, family, product, unit, unit_time_min, base_calcul, phase, flow, direction, segment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		int64(t.ID), int64(t.StationID), t.Name, t.Family, t.Product, string(t.Unit),
		unitTime, base, t.Phase, flow, direction, segment)
	return err
}

// SaveSimulation records a submitted run and its result.
func (s *Store) SaveSimulation(ctx context.Context, req engine.SimulationRequest, res *engine.SimulationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reqJSON, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	resJSON, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO simulations (centre_id, strategy, request_json, result_json, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		int64(req.CentreID), res.StrategyName, string(reqJSON), string(resJSON),
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// =============================================================================
// READ SIDE - engine.Repository
// =============================================================================

// Centre implements engine.Repository.
func (s *Store) Centre(ctx context.Context, id engine.CentreID) (engine.Centre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c engine.Centre
	var cid int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, label, region, classification, admin_staff
		FROM centres WHERE id = ?`, int64(id)).
		Scan(&cid, &c.Label, &c.Region, &c.Classification, &c.AdminStaff)
	if err == sql.ErrNoRows {
		return engine.Centre{}, engine.ErrCentreNotFound
	}
	if err != nil {
		return engine.Centre{}, err
	}
	c.ID = engine.CentreID(cid)
	return c, nil
}

// ListCentres implements engine.Repository.
func (s *Store) ListCentres(ctx context.Context) ([]engine.Centre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, region, classification, admin_staff
		FROM centres ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.Centre
	for rows.Next() {
		var c engine.Centre
		var cid int64
		if err := rows.Scan(&cid, &c.Label, &c.Region, &c.Classification, &c.AdminStaff); err != nil {
			return nil, err
		}
		c.ID = engine.CentreID(cid)
		out = append(out, c)
	}
	return out, rows.Err()
}

// StationsForCentre implements engine.Repository.
func (s *Store) StationsForCentre(ctx context.Context, id engine.CentreID) ([]engine.CentreJobStation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT st.id, st.centre_id, st.headcount, st.responsibility_code,
		       tp.id, tp.name, tp.class
		FROM centre_job_stations st
		JOIN job_station_templates tp ON tp.id = st.template_id
		WHERE st.centre_id = ?
		ORDER BY st.id`, int64(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.CentreJobStation
	for rows.Next() {
		var st engine.CentreJobStation
		var sid, cid int64
		var class string
		if err := rows.Scan(&sid, &cid, &st.Headcount, &st.ResponsibilityCode,
			&st.Template.ID, &st.Template.Name, &class); err != nil {
			return nil, err
		}
		st.ID = engine.StationID(sid)
		st.CentreID = engine.CentreID(cid)
		st.Template.Class = engine.LabourClass(class)
		out = append(out, st)
	}
	return out, rows.Err()
}

// TasksForCentre implements engine.Repository. Tasks with NULL unit
// times or unrecognised units come back flagged, never dropped.
func (s *Store) TasksForCentre(ctx context.Context, id engine.CentreID, station *engine.StationID) ([]engine.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT t.id, t.station_id, t.name, t.family, t.product, t.unit,
		       t.unit_time_min, t.base_calcul, t.phase, t.flow, t.direction, t.segment
		FROM tasks t
		JOIN centre_job_stations st ON st.id = t.station_id
		WHERE st.centre_id = ?`
	args := []any{int64(id)}
	if station != nil {
		query += ` AND t.station_id = ?`
		args = append(args, int64(*station))
	}
	query += ` ORDER BY t.station_id, t.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func scanTask(rows *sql.Rows) (engine.Task, error) {
	var t engine.Task
	var tid, sid int64
	var rawUnit string
	var unitTime sql.NullString
	var base sql.NullInt64
	var flow, direction, segment sql.NullString

	if err := rows.Scan(&tid, &sid, &t.Name, &t.Family, &t.Product, &rawUnit,
		&unitTime, &base, &t.Phase, &flow, &direction, &segment); err != nil {
		return engine.Task{}, err
	}
	t.ID = engine.TaskID(tid)
	t.StationID = engine.StationID(sid)

	unit, known := engine.ParseUnit(rawUnit)
	t.Unit = unit
	if !known {
		t.Flags.UnknownUnit = true
	}

	if unitTime.Valid {
		d, err := decimal.NewFromString(unitTime.String)
		if err != nil || !d.IsPositive() {
			t.Flags.MissingUnitTime = true
		} else {
			t.UnitTimeMin = d
		}
	} else {
		t.Flags.MissingUnitTime = true
	}

	if base.Valid {
		b := int(base.Int64)
		t.BaseCalcul = &b
	}

	if flow.Valid && direction.Valid && segment.Valid {
		t.Key = &engine.VolumeKey{
			Flow:      flow.String,
			Direction: direction.String,
			Segment:   segment.String,
		}
	}
	return t, nil
}

// Compile-time check that Store implements engine.Repository.
var _ engine.Repository = (*Store)(nil)
