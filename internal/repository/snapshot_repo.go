package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"biopay/internal/models"

	"github.com/sirupsen/logrus"
)

// Fixed blob keys, one per collection.
const (
	KeyEmployees  = "biopay_all_users_v2"
	KeyAttendance = "biopay_attendance_v2"
	KeyPayroll    = "biopay_payroll_v2"
	KeyActivities = "biopay_activity_v2"
)

type SnapshotRepository interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snapshot models.Snapshot) error
}

// BlobSnapshotRepository stores each snapshot collection as a JSON blob.
type BlobSnapshotRepository struct {
	store  BlobStore
	logger *logrus.Logger
}

func NewBlobSnapshotRepository(store BlobStore, logger *logrus.Logger) *BlobSnapshotRepository {
	return &BlobSnapshotRepository{
		store:  store,
		logger: logger,
	}
}

// Load returns nil, nil when no collection has been stored yet. Collections
// that are missing individually load as empty.
func (r *BlobSnapshotRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	var snap models.Snapshot
	found := false

	targets := []struct {
		key  string
		into any
	}{
		{KeyEmployees, &snap.Employees},
		{KeyAttendance, &snap.Attendance},
		{KeyPayroll, &snap.Payroll},
		{KeyActivities, &snap.Activities},
	}

	for _, t := range targets {
		raw, err := r.store.Get(ctx, t.key)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", t.key, err)
		}
		if raw == nil {
			continue
		}
		if err := json.Unmarshal(raw, t.into); err != nil {
			r.logger.WithError(err).WithField("key", t.key).Error("Failed to decode snapshot blob")
			return nil, fmt.Errorf("decode %s: %w", t.key, err)
		}
		found = true
	}

	if !found {
		r.logger.Debug("No stored snapshot")
		return nil, nil
	}

	r.logger.WithFields(logrus.Fields{
		"employees":  len(snap.Employees),
		"attendance": len(snap.Attendance),
		"payroll":    len(snap.Payroll),
		"activities": len(snap.Activities),
	}).Info("Snapshot loaded")

	return &snap, nil
}

// Save writes all collections in one store transaction.
func (r *BlobSnapshotRepository) Save(ctx context.Context, snapshot models.Snapshot) error {
	values := make(map[string][]byte, 4)

	parts := map[string]any{
		KeyEmployees:  nonNil(snapshot.Employees),
		KeyAttendance: nonNil(snapshot.Attendance),
		KeyPayroll:    nonNil(snapshot.Payroll),
		KeyActivities: nonNil(snapshot.Activities),
	}
	for key, v := range parts {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		values[key] = raw
	}

	if err := r.store.PutAll(ctx, values); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"employees":  len(snapshot.Employees),
		"attendance": len(snapshot.Attendance),
		"payroll":    len(snapshot.Payroll),
	}).Debug("Snapshot saved")

	return nil
}

// nonNil keeps empty collections encoded as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
