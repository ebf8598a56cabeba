package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"learnloop/backend/models"
)

func seedModule(t *testing.T, db *gorm.DB) *models.Module {
	t.Helper()

	module := &models.Module{
		Title:       "Learning How to Learn",
		Description: "Foundations of effective study",
		OrderIndex:  1,
	}
	require.NoError(t, db.Create(module).Error)

	require.NoError(t, db.Create(&models.Theme{
		ModuleID:  module.ID,
		Title:     "Why study techniques matter",
		Context:   "Most learners never examine how they learn",
		MediaURL:  "https://cdn.example.com/theme.mp4",
		MediaType: "video",
		Question:  "How do you currently study?",
	}).Error)

	require.NoError(t, db.Create(&models.Reflection{
		ModuleID:       module.ID,
		OrderIndex:     1,
		ModuleSummary:  "You met three techniques",
		LearningAdvice: "Pick one and apply it this week",
	}).Error)

	for i := 1; i <= 2; i++ {
		require.NoError(t, db.Create(&models.Concept{
			ModuleID:   module.ID,
			OrderIndex: i,
			Title:      "Concept",
		}).Error)
	}

	return module
}

func TestGetThemeEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	accessToken, _ := registerUser(t, app, "student@example.com", "demo_student")
	seedModule(t, db)

	req := jsonRequest(t, "GET", "/api/modules/1/theme", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Why study techniques matter", data["title"])
	assert.Equal(t, "video", data["mediaType"])
}

func TestGetThemeInvalidID(t *testing.T) {
	app, _ := newTestApp(t)
	accessToken, _ := registerUser(t, app, "student@example.com", "demo_student")

	req := jsonRequest(t, "GET", "/api/modules/abc/theme", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// The overview reflects the caller's own progress rows in the concept
// completed flags and the module percentage.
func TestOverviewReflectsProgress(t *testing.T) {
	app, db := newTestApp(t)
	accessToken, _ := registerUser(t, app, "student@example.com", "demo_student")
	seedModule(t, db)

	req := jsonRequest(t, "POST", "/api/concepts/1/progress", map[string]interface{}{
		"userId":      1,
		"isCompleted": true,
	})
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = jsonRequest(t, "GET", "/api/modules/overview", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	modules := body["data"].(map[string]interface{})["modules"].([]interface{})
	require.Len(t, modules, 1)

	module := modules[0].(map[string]interface{})
	assert.Equal(t, 50.0, module["progress"])

	concepts := module["concepts"].([]interface{})
	require.Len(t, concepts, 2)
	assert.Equal(t, true, concepts[0].(map[string]interface{})["completed"])
	assert.Equal(t, false, concepts[1].(map[string]interface{})["completed"])
}

func TestReflectionEndpoints(t *testing.T) {
	app, db := newTestApp(t)
	accessToken, _ := registerUser(t, app, "student@example.com", "demo_student")
	seedModule(t, db)

	req := jsonRequest(t, "GET", "/api/modules/1/reflection", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	reflectionID := uint(data["id"].(float64))

	req = jsonRequest(t, "POST", "/api/modules/1/reflection", map[string]interface{}{
		"reflectionId": reflectionID,
		"userId":       1,
		"answer":       "I will try spaced repetition",
		"timeSpent":    120,
	})
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.UserResponse{}).
		Where("reflection_id = ? AND response_type = ?", reflectionID, models.ResponseTypeReflection).
		Count(&count)
	assert.Equal(t, int64(1), count)
}
