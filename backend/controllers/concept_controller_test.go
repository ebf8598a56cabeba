package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"learnloop/backend/models"
)

func seedConcept(t *testing.T, db *gorm.DB) *models.Concept {
	t.Helper()

	concept := &models.Concept{
		ModuleID:   1,
		OrderIndex: 1,
		Title:      "Spaced Repetition",
		Definition: "Reviewing material at increasing intervals",
		WhyItWorks: "Retrieval effort strengthens memory",
	}
	require.NoError(t, db.Create(concept).Error)

	require.NoError(t, db.Create(&models.Tutorial{
		ConceptID:    concept.ID,
		OrderIndex:   1,
		GoodStory:    "Ana reviews on a schedule",
		GoodMediaURL: "https://cdn.example.com/good.mp4",
		BadStory:     "Ben crams the night before",
		BadMediaURL:  "https://cdn.example.com/bad.mp4",
	}).Error)

	require.NoError(t, db.Create(&models.Summary{
		ConceptID:        concept.ID,
		OrderIndex:       1,
		SummaryContent:   "Space your reviews",
		NextChapterIntro: "Next: active recall",
	}).Error)

	return concept
}

func seedConceptQuiz(t *testing.T, db *gorm.DB, conceptID uint, questionType string, correct []int) *models.Quiz {
	t.Helper()

	quiz := &models.Quiz{
		ConceptID:          conceptID,
		OrderIndex:         1,
		Question:           "Which options apply?",
		QuestionType:       questionType,
		Options:            datatypes.JSONSlice[string]{"a", "b", "c"},
		CorrectOptionIndex: datatypes.JSONSlice[int](correct),
	}
	require.NoError(t, db.Create(quiz).Error)
	return quiz
}

func TestGetTutorialEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	accessToken, _ := registerUser(t, app, "student@example.com", "demo_student")
	concept := seedConcept(t, db)
	seedConceptQuiz(t, db, concept.ID, models.QuestionTypeSingleChoice, []int{0})

	req := jsonRequest(t, "GET", "/api/concepts/1/tutorial", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Spaced Repetition", data["title"])
	tutorial := data["tutorial"].(map[string]interface{})
	good := tutorial["goodExample"].(map[string]interface{})
	assert.Equal(t, "Ana reviews on a schedule", good["story"])
}

func TestGetTutorialUnknownConcept(t *testing.T) {
	app, _ := newTestApp(t)
	accessToken, _ := registerUser(t, app, "student@example.com", "demo_student")

	req := jsonRequest(t, "GET", "/api/concepts/999/tutorial", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetQuizzesEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	accessToken, _ := registerUser(t, app, "student@example.com", "demo_student")
	concept := seedConcept(t, db)
	seedConceptQuiz(t, db, concept.ID, models.QuestionTypeSingleChoice, []int{2})

	req := jsonRequest(t, "GET", "/api/concepts/1/quiz", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	questions := body["data"].(map[string]interface{})["questions"].([]interface{})
	require.Len(t, questions, 1)
	question := questions[0].(map[string]interface{})
	assert.Equal(t, "single_choice", question["questionType"])
}

func TestContentRoutesRequireAuth(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, "GET", "/api/concepts/1/summary", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestQuizAnswerEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	accessToken, _ := registerUser(t, app, "student@example.com", "demo_student")
	concept := seedConcept(t, db)
	quiz := seedConceptQuiz(t, db, concept.ID, models.QuestionTypeMultipleChoice, []int{0, 2})

	req := jsonRequest(t, "POST", "/api/concepts/quiz/1/answer", map[string]interface{}{
		"responseType":      "quiz",
		"userId":            1,
		"userAnswerIndices": []int{0},
		"timeSpent":         30,
	})
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, 0.5, data["score"])
	assert.Equal(t, false, data["isCorrect"])

	var count int64
	db.Model(&models.UserResponse{}).Where("quiz_id = ?", quiz.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestQuizAnswerEndpointValidation(t *testing.T) {
	app, db := newTestApp(t)
	accessToken, _ := registerUser(t, app, "student@example.com", "demo_student")
	concept := seedConcept(t, db)
	seedConceptQuiz(t, db, concept.ID, models.QuestionTypeSingleChoice, []int{0})

	// empty answer indices
	req := jsonRequest(t, "POST", "/api/concepts/quiz/1/answer", map[string]interface{}{
		"responseType":      "quiz",
		"userId":            1,
		"userAnswerIndices": []int{},
	})
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// missing user id
	req = jsonRequest(t, "POST", "/api/concepts/quiz/1/answer", map[string]interface{}{
		"responseType":      "quiz",
		"userAnswerIndices": []int{0},
	})
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProgressEndpointUpserts(t *testing.T) {
	app, db := newTestApp(t)
	accessToken, _ := registerUser(t, app, "student@example.com", "demo_student")
	seedConcept(t, db)

	post := func(completed bool) {
		req := jsonRequest(t, "POST", "/api/concepts/1/progress", map[string]interface{}{
			"userId":      1,
			"isCompleted": completed,
			"timeSpent":   45,
		})
		req.Header.Set("Authorization", "Bearer "+accessToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	post(true)
	post(false)

	var rows []models.UserConceptProgress
	require.NoError(t, db.Where("concept_id = ? AND user_id = ?", 1, 1).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Completed)
	assert.Nil(t, rows[0].CompletedAt)
}

func TestProgressEndpointRequiresUserID(t *testing.T) {
	app, db := newTestApp(t)
	accessToken, _ := registerUser(t, app, "student@example.com", "demo_student")
	seedConcept(t, db)

	req := jsonRequest(t, "POST", "/api/concepts/1/progress", map[string]interface{}{
		"isCompleted": true,
	})
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
