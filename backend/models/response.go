package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Response types stored on UserResponse.ResponseType.
const (
	ResponseTypeQuiz       = "quiz"
	ResponseTypeReflection = "reflection"
)

// UserResponse is append-only: one row per submission, exactly one of
// QuizID/ReflectionID set.
type UserResponse struct {
	gorm.Model
	QuizID       *uint `gorm:"index"`
	ReflectionID *uint `gorm:"index"`
	UserID       uint  `gorm:"index;not null"`
	ResponseType string
	Answer       datatypes.JSON
	IsCorrect    *bool
	TimeSpent    *int // seconds
}

type UserConceptProgress struct {
	gorm.Model
	ConceptID   uint `gorm:"uniqueIndex:idx_concept_user;not null"`
	UserID      uint `gorm:"uniqueIndex:idx_concept_user;not null"`
	Completed   bool
	TimeSpent   int // seconds
	CompletedAt *time.Time
}
