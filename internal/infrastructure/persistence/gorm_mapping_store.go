package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/openmarket/econbridge/internal/domain/bridge"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// mappingModel is the gorm row for one mapping entry
type mappingModel struct {
	EntityKind string    `gorm:"primaryKey;type:varchar(32)"`
	LocalID    string    `gorm:"primaryKey;type:varchar(128)"`
	ExternalID string    `gorm:"type:varchar(128);not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (mappingModel) TableName() string {
	return "entity_mappings"
}

// GormMappingStore implements bridge.MappingStore on a local sqlite
// database, so mappings survive a process restart. The graph create calls
// are not idempotent on the external side; losing the table would duplicate
// external objects on replay.
type GormMappingStore struct {
	db *gorm.DB
}

// NewGormMappingStore creates a durable mapping store
func NewGormMappingStore(db *gorm.DB) *GormMappingStore {
	return &GormMappingStore{db: db}
}

// Put records a mapping, refusing to overwrite an existing entry
func (s *GormMappingStore) Put(ctx context.Context, kind bridge.EntityKind, localID, externalID string) error {
	m, err := bridge.NewMapping(kind, localID, externalID)
	if err != nil {
		return err
	}

	row := mappingModel{
		EntityKind: string(m.EntityKind),
		LocalID:    m.LocalID,
		ExternalID: m.ExternalID,
		CreatedAt:  m.CreatedAt,
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return bridge.ErrDuplicateMapping
	}
	return nil
}

// Get returns the external ID mapped to (kind, localID)
func (s *GormMappingStore) Get(ctx context.Context, kind bridge.EntityKind, localID string) (string, bool, error) {
	var row mappingModel
	err := s.db.WithContext(ctx).
		Where("entity_kind = ? AND local_id = ?", string(kind), localID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return row.ExternalID, true, nil
}

// Ensure GormMappingStore implements MappingStore
var _ bridge.MappingStore = (*GormMappingStore)(nil)
