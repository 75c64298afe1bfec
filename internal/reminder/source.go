package reminder

import (
	"context"

	"gorm.io/gorm"

	"medisphere-server/internal/models"
)

// DatabaseSource loads medications for the sweep from the database, history
// included, across all users.
type DatabaseSource struct {
	DB *gorm.DB
}

// NewDatabaseSource creates a DatabaseSource.
func NewDatabaseSource(db *gorm.DB) *DatabaseSource {
	return &DatabaseSource{DB: db}
}

var _ Source = (*DatabaseSource)(nil)

// Medications returns every medication with its dose history preloaded.
func (s *DatabaseSource) Medications(ctx context.Context) ([]models.Medication, error) {
	var medications []models.Medication
	if err := s.DB.WithContext(ctx).Preload("History").Find(&medications).Error; err != nil {
		return nil, err
	}
	return medications, nil
}
