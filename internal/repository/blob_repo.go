package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Blob is one opaque value under a fixed string key.
type Blob struct {
	Key       string    `gorm:"column:blob_key;primaryKey;type:varchar(64)" json:"key"`
	Value     []byte    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Blob) TableName() string {
	return "blobs"
}

type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	PutAll(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
}

type GormBlobStore struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormBlobStore(db *gorm.DB, logger *logrus.Logger) (*GormBlobStore, error) {
	if err := db.AutoMigrate(&Blob{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate blobs table")
		return nil, err
	}

	logger.Info("Blob store initialized")

	return &GormBlobStore{
		db:     db,
		logger: logger,
	}, nil
}

// Get returns nil, nil when key has never been written.
func (s *GormBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var blob Blob
	result := s.db.WithContext(ctx).Where("blob_key = ?", key).First(&blob)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		s.logger.WithField("key", key).Debug("Blob not found")
		return nil, nil
	}

	if result.Error != nil {
		s.logger.WithError(result.Error).WithField("key", key).Error("Failed to get blob")
		return nil, result.Error
	}

	return blob.Value, nil
}

// PutAll upserts every key in one transaction: either all values land or
// none do.
func (s *GormBlobStore) PutAll(ctx context.Context, values map[string][]byte) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			blob := Blob{Key: key, Value: value}
			result := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "blob_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&blob)
			if result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to write blobs")
		return err
	}

	s.logger.WithField("keys", len(values)).Debug("Blobs written")
	return nil
}

func (s *GormBlobStore) Delete(ctx context.Context, key string) error {
	result := s.db.WithContext(ctx).Where("blob_key = ?", key).Delete(&Blob{})
	if result.Error != nil {
		s.logger.WithError(result.Error).WithField("key", key).Error("Failed to delete blob")
		return result.Error
	}

	s.logger.WithFields(logrus.Fields{
		"key":           key,
		"rows_affected": result.RowsAffected,
	}).Debug("Blob deleted")
	return nil
}
