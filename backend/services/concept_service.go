package services

import (
	"learnloop/backend/repositories"
)

type TutorialExampleDTO struct {
	Story    string `json:"story"`
	MediaURL string `json:"mediaUrl"`
}

type TutorialDTO struct {
	GoodExample TutorialExampleDTO `json:"goodExample"`
	BadExample  TutorialExampleDTO `json:"badExample"`
}

type ConceptTutorialDTO struct {
	Title      string      `json:"title"`
	Definition string      `json:"definition"`
	WhyItWorks string      `json:"whyItWorks"`
	Tutorial   TutorialDTO `json:"tutorial"`
}

type QuizDTO struct {
	ID                 uint     `json:"id"`
	OrderIndex         int      `json:"orderIndex"`
	Question           string   `json:"question"`
	QuestionType       string   `json:"questionType"`
	MediaURL           string   `json:"mediaUrl"`
	Options            []string `json:"options"`
	CorrectOptionIndex []int    `json:"correctOptionIndex"`
	Explanation        string   `json:"explanation"`
}

type ConceptQuizzesDTO struct {
	Questions []QuizDTO `json:"questions"`
}

type ConceptSummaryDTO struct {
	Title            string `json:"title"`
	SummaryContent   string `json:"summaryContent"`
	NextChapterIntro string `json:"nextChapterIntro"`
}

// ConceptService serves the per-concept learning resources.
type ConceptService struct {
	content *repositories.ContentRepository
}

func NewConceptService(content *repositories.ContentRepository) *ConceptService {
	return &ConceptService{content: content}
}

func (s *ConceptService) GetTutorial(conceptID uint) (*ConceptTutorialDTO, error) {
	concept, err := s.content.FindConceptWith(conceptID, repositories.RelationTutorial)
	if err != nil {
		return nil, err
	}
	if concept == nil || concept.Tutorial == nil {
		return nil, ErrNotFound
	}

	return &ConceptTutorialDTO{
		Title:      concept.Title,
		Definition: concept.Definition,
		WhyItWorks: concept.WhyItWorks,
		Tutorial: TutorialDTO{
			GoodExample: TutorialExampleDTO{
				Story:    concept.Tutorial.GoodStory,
				MediaURL: concept.Tutorial.GoodMediaURL,
			},
			BadExample: TutorialExampleDTO{
				Story:    concept.Tutorial.BadStory,
				MediaURL: concept.Tutorial.BadMediaURL,
			},
		},
	}, nil
}

func (s *ConceptService) GetQuizzes(conceptID uint) (*ConceptQuizzesDTO, error) {
	concept, err := s.content.FindConceptWith(conceptID, repositories.RelationQuizzes)
	if err != nil {
		return nil, err
	}
	if concept == nil || len(concept.Quizzes) == 0 {
		return nil, ErrNotFound
	}

	questions := make([]QuizDTO, 0, len(concept.Quizzes))
	for _, quiz := range concept.Quizzes {
		questions = append(questions, QuizDTO{
			ID:                 quiz.ID,
			OrderIndex:         quiz.OrderIndex,
			Question:           quiz.Question,
			QuestionType:       quiz.QuestionType,
			MediaURL:           quiz.MediaURL,
			Options:            quiz.Options,
			CorrectOptionIndex: quiz.CorrectOptionIndex,
			Explanation:        quiz.Explanation,
		})
	}

	return &ConceptQuizzesDTO{Questions: questions}, nil
}

func (s *ConceptService) GetSummary(conceptID uint) (*ConceptSummaryDTO, error) {
	concept, err := s.content.FindConceptWith(conceptID, repositories.RelationSummary)
	if err != nil {
		return nil, err
	}
	if concept == nil || concept.Summary == nil {
		return nil, ErrNotFound
	}

	return &ConceptSummaryDTO{
		Title:            concept.Title,
		SummaryContent:   concept.Summary.SummaryContent,
		NextChapterIntro: concept.Summary.NextChapterIntro,
	}, nil
}
