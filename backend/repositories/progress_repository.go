package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"learnloop/backend/models"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Upsert writes the progress row in a single statement keyed on
// (concept_id, user_id). Concurrent submissions for the same pair cannot
// lose updates because there is no read-then-write window. time_spent is
// only overwritten when the caller actually supplied one.
func (r *ProgressRepository) Upsert(progress *models.UserConceptProgress, updateTimeSpent bool) error {
	columns := []string{"completed", "completed_at", "updated_at"}
	if updateTimeSpent {
		columns = append(columns, "time_spent")
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "concept_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(progress).Error
}

// FindByUser returns all progress rows for one user, keyed by concept.
func (r *ProgressRepository) FindByUser(userID uint) (map[uint]models.UserConceptProgress, error) {
	var rows []models.UserConceptProgress
	if err := r.DB.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}

	byConcept := make(map[uint]models.UserConceptProgress, len(rows))
	for _, row := range rows {
		byConcept[row.ConceptID] = row
	}
	return byConcept, nil
}
