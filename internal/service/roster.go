package service

import (
	"context"
	"errors"
	"fmt"

	"biopay/internal/directory"
	"biopay/internal/models"

	"github.com/sirupsen/logrus"
)

var (
	ErrForbidden   = errors.New("this action requires an ADMIN or HR account")
	ErrSelfRemoval = errors.New("you cannot remove your own account")
)

// staff returns the actor if they may manage the roster and run payroll.
// Callers hold mu.
func (w *Workspace) staff(actorID string) (models.Employee, error) {
	actor, err := w.employee(actorID)
	if err != nil {
		return models.Employee{}, err
	}
	if !actor.CanViewAll() {
		return models.Employee{}, ErrForbidden
	}
	return actor, nil
}

// AddEmployee validates e and appends it to the roster.
func (w *Workspace) AddEmployee(ctx context.Context, actorID string, e models.Employee) (models.Employee, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.staff(actorID); err != nil {
		return models.Employee{}, err
	}

	now := w.clock()
	next := w.snap.Clone()
	var added models.Employee
	var err error
	next.Employees, added, err = directory.Add(next.Employees, e, now)
	if err != nil {
		w.logger.WithError(err).WithField("email", e.Email).Warn("Employee rejected")
		return models.Employee{}, err
	}
	w.activity(&next, now, fmt.Sprintf("%s added to %s", added.Name, added.DepartmentOr("General")), models.ActivityInfo)

	if err := w.commit(ctx, next); err != nil {
		return models.Employee{}, err
	}

	w.logger.WithFields(logrus.Fields{
		"actor_id":    actorID,
		"employee_id": added.ID,
		"role":        added.Role,
	}).Info("Employee added")
	return added, nil
}

// UpdateEmployee applies p to the employee with id.
func (w *Workspace) UpdateEmployee(ctx context.Context, actorID, id string, p directory.Patch) (models.Employee, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.staff(actorID); err != nil {
		return models.Employee{}, err
	}

	now := w.clock()
	next := w.snap.Clone()
	var updated models.Employee
	var err error
	next.Employees, updated, err = directory.Update(next.Employees, id, p)
	if err != nil {
		w.logger.WithError(err).WithField("employee_id", id).Warn("Employee update rejected")
		return models.Employee{}, err
	}
	w.activity(&next, now, updated.Name+" profile updated", models.ActivityInfo)

	if err := w.commit(ctx, next); err != nil {
		return models.Employee{}, err
	}

	w.logger.WithFields(logrus.Fields{
		"actor_id":    actorID,
		"employee_id": id,
	}).Info("Employee updated")
	return updated, nil
}

// RemoveEmployee deletes the employee with id together with their
// attendance and payroll records. Removing oneself is refused.
func (w *Workspace) RemoveEmployee(ctx context.Context, actorID, id string) (directory.Removal, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.staff(actorID); err != nil {
		return directory.Removal{}, err
	}
	if actorID == id {
		return directory.Removal{}, ErrSelfRemoval
	}

	now := w.clock()
	next, removal, err := directory.Remove(w.snap.Clone(), id)
	if err != nil {
		w.logger.WithError(err).WithField("employee_id", id).Warn("Employee removal rejected")
		return directory.Removal{}, err
	}
	w.activity(&next, now, removal.Employee.Name+" removed from directory", models.ActivityWarning)

	if err := w.commit(ctx, next); err != nil {
		return directory.Removal{}, err
	}

	w.logger.WithFields(logrus.Fields{
		"actor_id":           actorID,
		"employee_id":        id,
		"attendance_removed": len(removal.RemovedAttendanceIDs),
		"payroll_removed":    len(removal.RemovedPayrollIDs),
	}).Warn("Employee removed")
	return removal, nil
}

// Employees searches the roster. Workers only ever see themselves.
func (w *Workspace) Employees(viewerID, term string) ([]models.Employee, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	viewer, err := w.employee(viewerID)
	if err != nil {
		return nil, err
	}
	if !viewer.CanViewAll() {
		return []models.Employee{viewer}, nil
	}
	return directory.Search(w.snap.Employees, term), nil
}
