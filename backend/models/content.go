package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question types stored on Quiz.QuestionType.
const (
	QuestionTypeSingleChoice   = "single_choice"
	QuestionTypeMultipleChoice = "multiple_choice"
)

type Module struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Description string
	OrderIndex  int
	Theme       *Theme
	Concepts    []Concept
}

type Theme struct {
	gorm.Model
	ModuleID  uint `gorm:"index;not null"`
	Title     string
	Context   string
	MediaURL  string
	MediaType string
	Question  string
}

type Concept struct {
	gorm.Model
	ModuleID   uint `gorm:"index;not null"`
	OrderIndex int
	Title      string
	Definition string
	WhyItWorks string
	Tutorial   *Tutorial
	Summary    *Summary
	Quizzes    []Quiz
}

type Tutorial struct {
	gorm.Model
	ConceptID    uint `gorm:"index;not null"`
	OrderIndex   int
	GoodStory    string
	GoodMediaURL string
	BadStory     string
	BadMediaURL  string
}

type Summary struct {
	gorm.Model
	ConceptID        uint `gorm:"index;not null"`
	OrderIndex       int
	SummaryContent   string
	NextChapterIntro string
}

// Quiz is read-only to the scoring engine; CorrectOptionIndex holds one
// element for single_choice and at least one for multiple_choice.
type Quiz struct {
	gorm.Model
	ConceptID          uint `gorm:"index;not null"`
	OrderIndex         int
	Question           string
	QuestionType       string `gorm:"not null"`
	Options            datatypes.JSONSlice[string]
	CorrectOptionIndex datatypes.JSONSlice[int]
	Explanation        string
	MediaURL           string
}

type Reflection struct {
	gorm.Model
	ModuleID              uint `gorm:"index;not null"`
	OrderIndex            int
	UserID                uint
	ModuleSummary         string
	ModuleSummaryMediaURL string
	LearningAdvice        string
}
