package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"biopay/internal/directory"
	"biopay/internal/ledger"
	"biopay/internal/models"
	"biopay/internal/repository"
	"biopay/pkg/clockfmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownEmployee = errors.New("employee is not on the roster")
	ErrLoginFailed     = errors.New(`authentication failed, use password "123" for any valid email`)
)

// Options configure a Workspace. Zero values pick production defaults.
type Options struct {
	Clock    func() time.Time
	NewID    func() string
	LoginPin string
	TaxRate  float64
	Seed     bool
	Rand     *rand.Rand
}

// Workspace owns the current snapshot. All mutations go through mu: each one
// computes a new snapshot, persists it, and only then replaces the current
// one, so a failed save leaves state untouched.
type Workspace struct {
	mu       sync.Mutex
	snap     models.Snapshot
	repo     repository.SnapshotRepository
	clock    func() time.Time
	newID    func() string
	loginPin string
	taxRate  float64
	seed     bool
	rng      *rand.Rand
	logger   *logrus.Logger
}

func NewWorkspace(repo repository.SnapshotRepository, logger *logrus.Logger, opts Options) *Workspace {
	w := &Workspace{
		repo:     repo,
		clock:    opts.Clock,
		newID:    opts.NewID,
		loginPin: opts.LoginPin,
		taxRate:  opts.TaxRate,
		seed:     opts.Seed,
		rng:      opts.Rand,
		logger:   logger,
	}
	if w.clock == nil {
		w.clock = time.Now
	}
	if w.newID == nil {
		w.newID = uuid.NewString
	}
	if w.loginPin == "" {
		w.loginPin = "123"
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return w
}

// Load reads the stored snapshot, seeding demo data when the store is empty
// and seeding is enabled.
func (w *Workspace) Load(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	stored, err := w.repo.Load(ctx)
	if err != nil {
		w.logger.WithError(err).Error("Failed to load snapshot")
		return err
	}

	if stored != nil {
		w.snap = *stored
		return nil
	}

	if !w.seed {
		w.logger.Info("Store is empty, starting with an empty roster")
		w.snap = models.Snapshot{}
		return nil
	}

	seeded := repository.SeedSnapshot(w.clock(), w.rng)
	if err := w.repo.Save(ctx, seeded); err != nil {
		w.logger.WithError(err).Error("Failed to save seed snapshot")
		return err
	}
	w.snap = seeded

	w.logger.WithFields(logrus.Fields{
		"employees":  len(seeded.Employees),
		"attendance": len(seeded.Attendance),
	}).Info("Demo data seeded")
	return nil
}

// Snapshot returns a copy of the current state.
func (w *Workspace) Snapshot() models.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snap.Clone()
}

// TaxRate is the default tax rate for payroll runs and the calculator.
func (w *Workspace) TaxRate() float64 {
	return w.taxRate
}

// Now is the workspace clock.
func (w *Workspace) Now() time.Time {
	return w.clock()
}

// commit persists next and makes it current. Callers hold mu.
func (w *Workspace) commit(ctx context.Context, next models.Snapshot) error {
	if err := w.repo.Save(ctx, next); err != nil {
		w.logger.WithError(err).Error("Failed to persist snapshot")
		return err
	}
	w.snap = next
	return nil
}

// activity prepends an audit line to next.
func (w *Workspace) activity(next *models.Snapshot, now time.Time, text string, status models.ActivityStatus) {
	entry := models.ActivityLogEntry{
		ID:     strconv.FormatInt(now.UnixMilli(), 10) + "-" + w.newID(),
		Text:   text,
		Time:   clockfmt.FormatClock(now),
		Date:   clockfmt.FormatDate(now),
		Status: status,
	}
	next.Activities = append([]models.ActivityLogEntry{entry}, next.Activities...)
}

func (w *Workspace) employee(id string) (models.Employee, error) {
	e, ok := w.snap.FindEmployee(id)
	if !ok {
		return models.Employee{}, fmt.Errorf("%w: %s", ErrUnknownEmployee, id)
	}
	return e.Clone(), nil
}

// Login resolves email case-insensitively and checks the shared pin.
func (w *Workspace) Login(ctx context.Context, email, pin string) (models.Employee, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := directory.FindByEmail(w.snap.Employees, email)
	if !ok || pin != w.loginPin {
		w.logger.WithField("email", email).Warn("Login rejected")
		return models.Employee{}, ErrLoginFailed
	}

	now := w.clock()
	next := w.snap.Clone()
	w.activity(&next, now, e.Name+" logged in", models.ActivitySuccess)
	if err := w.commit(ctx, next); err != nil {
		return models.Employee{}, err
	}

	w.logger.WithField("employee_id", e.ID).Info("Employee logged in")
	return e, nil
}

// Logout records the end of a session.
func (w *Workspace) Logout(ctx context.Context, employeeID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, err := w.employee(employeeID)
	if err != nil {
		return err
	}

	next := w.snap.Clone()
	w.activity(&next, w.clock(), e.Name+" logged out", models.ActivityInfo)
	return w.commit(ctx, next)
}

// Employee returns the current record for id.
func (w *Workspace) Employee(id string) (models.Employee, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.employee(id)
}

// Activities returns up to limit audit lines, newest first. limit <= 0
// returns all of them.
func (w *Workspace) Activities(limit int) []models.ActivityLogEntry {
	w.mu.Lock()
	defer w.mu.Unlock()

	all := w.snap.Activities
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return append([]models.ActivityLogEntry(nil), all...)
}

// CheckIn opens a new attendance entry for employeeID.
func (w *Workspace) CheckIn(ctx context.Context, employeeID string) (models.AttendanceEntry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, err := w.employee(employeeID)
	if err != nil {
		return models.AttendanceEntry{}, err
	}

	now := w.clock()
	next := w.snap.Clone()
	var entry models.AttendanceEntry
	next.Attendance, entry = ledger.CheckIn(next.Attendance, employeeID, now, func() string { return "a-" + w.newID() })
	w.activity(&next, now, e.Name+" checked in", models.ActivitySuccess)

	if err := w.commit(ctx, next); err != nil {
		return models.AttendanceEntry{}, err
	}

	w.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"entry_id":    entry.ID,
		"check_in":    entry.CheckIn,
	}).Info("Employee checked in")
	return entry, nil
}

// CheckOut closes today's open entry for employeeID.
func (w *Workspace) CheckOut(ctx context.Context, employeeID string) (models.AttendanceEntry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, err := w.employee(employeeID)
	if err != nil {
		return models.AttendanceEntry{}, err
	}

	now := w.clock()
	next := w.snap.Clone()
	var entry models.AttendanceEntry
	next.Attendance, entry, err = ledger.CheckOut(next.Attendance, employeeID, now)
	if err != nil {
		w.logger.WithError(err).WithField("employee_id", employeeID).Warn("Check-out rejected")
		return models.AttendanceEntry{}, err
	}
	w.activity(&next, now, fmt.Sprintf("%s checked out (%s)", e.Name, entry.Duration()), models.ActivitySuccess)

	if err := w.commit(ctx, next); err != nil {
		return models.AttendanceEntry{}, err
	}

	w.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"entry_id":    entry.ID,
		"total_hours": entry.TotalHours,
	}).Info("Employee checked out")
	return entry, nil
}

// History returns employeeID's own entries, newest first.
func (w *Workspace) History(employeeID string, limit int) []models.AttendanceEntry {
	w.mu.Lock()
	defer w.mu.Unlock()

	entries := ledger.ForEmployee(w.snap.Attendance, employeeID)
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries
}
