package services

import (
	"encoding/json"

	"gorm.io/datatypes"

	"learnloop/backend/models"
	"learnloop/backend/repositories"
)

type QuizAnswerInput struct {
	ResponseType      string `json:"responseType"`
	UserID            uint   `json:"userId"`
	UserAnswerIndices []int  `json:"userAnswerIndices"`
	TimeSpent         *int   `json:"timeSpent"`
}

// QuizAnswerResult is the payload persisted in UserResponse.Answer and
// echoed back to the client.
type QuizAnswerResult struct {
	UserAnswerIndices    []int   `json:"userAnswerIndices"`
	CorrectOptionIndices []int   `json:"correctOptionIndices"`
	Score                float64 `json:"score"`
	IsCorrect            bool    `json:"isCorrect"`
}

// QuizService scores submitted option indices against the stored correct
// indices and appends the response row.
type QuizService struct {
	content   *repositories.ContentRepository
	responses *repositories.ResponseRepository
}

func NewQuizService(
	content *repositories.ContentRepository,
	responses *repositories.ResponseRepository,
) *QuizService {
	return &QuizService{content: content, responses: responses}
}

func (s *QuizService) SaveQuizAnswer(quizID uint, input QuizAnswerInput) (*QuizAnswerResult, error) {
	if input.ResponseType != models.ResponseTypeQuiz {
		return nil, ErrUnsupportedType
	}
	if len(input.UserAnswerIndices) == 0 {
		return nil, ErrEmptyAnswer
	}

	quiz, err := s.content.FindQuizByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, ErrQuizNotFound
	}
	if quiz.QuestionType != models.QuestionTypeSingleChoice &&
		quiz.QuestionType != models.QuestionTypeMultipleChoice {
		return nil, ErrUnsupportedType
	}

	score, isCorrect := scoreAnswer(quiz.QuestionType, input.UserAnswerIndices, quiz.CorrectOptionIndex)

	result := &QuizAnswerResult{
		UserAnswerIndices:    input.UserAnswerIndices,
		CorrectOptionIndices: quiz.CorrectOptionIndex,
		Score:                score,
		IsCorrect:            isCorrect,
	}

	answer, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	// Every submission is a new row; history is kept for analytics.
	response := &models.UserResponse{
		QuizID:       &quiz.ID,
		UserID:       input.UserID,
		ResponseType: models.ResponseTypeQuiz,
		Answer:       datatypes.JSON(answer),
		IsCorrect:    &isCorrect,
		TimeSpent:    input.TimeSpent,
	}
	if err := s.responses.Create(response); err != nil {
		return nil, err
	}

	return result, nil
}

// scoreAnswer computes the fractional score and exact-match correctness.
// For single_choice only the first submitted index counts, even when the
// client sent more. For multiple_choice the score is the overlap divided by
// the number of correct indices, while correctness demands the exact set.
func scoreAnswer(questionType string, submitted []int, correct []int) (float64, bool) {
	if len(correct) == 0 {
		return 0, false
	}

	switch questionType {
	case models.QuestionTypeSingleChoice:
		if submitted[0] == correct[0] {
			return 1, true
		}
		return 0, false

	case models.QuestionTypeMultipleChoice:
		submittedSet := make(map[int]struct{}, len(submitted))
		for _, idx := range submitted {
			submittedSet[idx] = struct{}{}
		}

		matches := 0
		for _, idx := range correct {
			if _, ok := submittedSet[idx]; ok {
				matches++
			}
		}

		score := float64(matches) / float64(len(correct))
		isCorrect := matches == len(correct) && len(submitted) == len(correct)
		return score, isCorrect

	default:
		return 0, false
	}
}
