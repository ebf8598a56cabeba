package repositories

import (
	"errors"

	"gorm.io/gorm"

	"learnloop/backend/models"
)

// ConceptRelation selects which attached resource a concept fetch loads.
type ConceptRelation int

const (
	RelationTutorial ConceptRelation = iota
	RelationQuizzes
	RelationSummary
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) FindModuleWithTheme(moduleID uint) (*models.Module, error) {
	var module models.Module
	err := r.DB.Preload("Theme").First(&module, moduleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// FindModulesForOverview loads every module with its theme and ordered
// concepts for the homepage overview.
func (r *ContentRepository) FindModulesForOverview() ([]models.Module, error) {
	var modules []models.Module
	err := r.DB.Preload("Theme").
		Preload("Concepts", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Order("order_index ASC").
		Find(&modules).Error
	if err != nil {
		return nil, err
	}
	return modules, nil
}

// FindConceptWith loads a concept together with the requested relation.
func (r *ContentRepository) FindConceptWith(conceptID uint, relation ConceptRelation) (*models.Concept, error) {
	query := r.DB
	switch relation {
	case RelationTutorial:
		query = query.Preload("Tutorial")
	case RelationQuizzes:
		query = query.Preload("Quizzes", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		})
	case RelationSummary:
		query = query.Preload("Summary")
	}

	var concept models.Concept
	err := query.First(&concept, conceptID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &concept, nil
}

func (r *ContentRepository) FindQuizByID(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.DB.First(&quiz, quizID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *ContentRepository) FindReflectionByModule(moduleID uint) (*models.Reflection, error) {
	var reflection models.Reflection
	err := r.DB.Where("module_id = ?", moduleID).First(&reflection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reflection, nil
}

func (r *ContentRepository) FindReflectionByID(reflectionID uint) (*models.Reflection, error) {
	var reflection models.Reflection
	err := r.DB.First(&reflection, reflectionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reflection, nil
}
