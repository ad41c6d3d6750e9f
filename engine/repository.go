/*
repository.go - Read-side contract the engine consumes

PURPOSE:
  The engine never talks to a database directly. It consults a
  Repository exactly once at the start of a call and works on the
  returned in-memory lists from there on. Implementations:

  - engine/store (memory): tests and demo seeds
  - store/sqlite:          production persistence

FLAGGED TASKS:
  Implementations return tasks with missing unit times or unrecognised
  units of measure flagged (Task.Flags) instead of dropping them; the
  engine emits zero workload plus a warning for flagged tasks, never a
  fatal error.

SEE ALSO:
  - engine.go: the single consumer
*/
package engine

import "context"

// Repository serves the organisation tree the engine works on.
type Repository interface {
	// Centre returns a centre by id. Implementations return an error
	// satisfying engine.IsNotFound for unknown centres.
	Centre(ctx context.Context, id CentreID) (Centre, error)

	// ListCentres returns all centres ordered by id.
	ListCentres(ctx context.Context) ([]Centre, error)

	// StationsForCentre returns the centre's job stations in stable order.
	StationsForCentre(ctx context.Context, id CentreID) ([]CentreJobStation, error)

	// TasksForCentre returns the ordered tasks of a centre, optionally
	// narrowed to a single station. Anomalous tasks come back flagged.
	TasksForCentre(ctx context.Context, id CentreID, station *StationID) ([]Task, error)
}
