package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"learnloop/backend/services"
	"learnloop/backend/utils"
)

type ConceptController struct {
	Concepts *services.ConceptService
	Quizzes  *services.QuizService
	Progress *services.ProgressService
}

func NewConceptController(
	concepts *services.ConceptService,
	quizzes *services.QuizService,
	progress *services.ProgressService,
) *ConceptController {
	return &ConceptController{Concepts: concepts, Quizzes: quizzes, Progress: progress}
}

func (cc *ConceptController) GetTutorial(c *fiber.Ctx) error {
	conceptID, err := parseIDParam(c, "conceptId")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err)
	}

	tutorial, err := cc.Concepts.GetTutorial(conceptID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.Error(c, fiber.StatusNotFound, errors.New("tutorial not found"))
		}
		return utils.Error(c, fiber.StatusInternalServerError, errors.New("could not load tutorial"))
	}

	return utils.Success(c, fiber.StatusOK, tutorial)
}

func (cc *ConceptController) GetQuizzes(c *fiber.Ctx) error {
	conceptID, err := parseIDParam(c, "conceptId")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err)
	}

	quizzes, err := cc.Concepts.GetQuizzes(conceptID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.Error(c, fiber.StatusNotFound, errors.New("quizzes not found"))
		}
		return utils.Error(c, fiber.StatusInternalServerError, errors.New("could not load quizzes"))
	}

	return utils.Success(c, fiber.StatusOK, quizzes)
}

func (cc *ConceptController) GetSummary(c *fiber.Ctx) error {
	conceptID, err := parseIDParam(c, "conceptId")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err)
	}

	summary, err := cc.Concepts.GetSummary(conceptID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.Error(c, fiber.StatusNotFound, errors.New("summary not found"))
		}
		return utils.Error(c, fiber.StatusInternalServerError, errors.New("could not load summary"))
	}

	return utils.Success(c, fiber.StatusOK, summary)
}

// SaveQuizAnswer scores the submitted option indices and appends the
// response row; the scored payload is echoed back.
func (cc *ConceptController) SaveQuizAnswer(c *fiber.Ctx) error {
	quizID, err := parseIDParam(c, "quizId")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err)
	}

	var input services.QuizAnswerInput
	if err := c.BodyParser(&input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, errors.New("cannot parse JSON"))
	}
	if input.UserID == 0 {
		return utils.Error(c, fiber.StatusBadRequest, services.ErrMissingUserID)
	}

	result, err := cc.Quizzes.SaveQuizAnswer(quizID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyAnswer), errors.Is(err, services.ErrUnsupportedType):
			return utils.Error(c, fiber.StatusBadRequest, err)
		case errors.Is(err, services.ErrQuizNotFound):
			return utils.Error(c, fiber.StatusNotFound, err)
		default:
			return utils.Error(c, fiber.StatusInternalServerError, errors.New("could not save answer"))
		}
	}

	return utils.Success(c, fiber.StatusOK, result)
}

func (cc *ConceptController) SaveProgress(c *fiber.Ctx) error {
	conceptID, err := parseIDParam(c, "conceptId")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err)
	}

	var input services.ProgressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, errors.New("cannot parse JSON"))
	}

	progress, err := cc.Progress.SaveProgress(conceptID, input)
	if err != nil {
		if errors.Is(err, services.ErrMissingUserID) {
			return utils.Error(c, fiber.StatusBadRequest, err)
		}
		return utils.Error(c, fiber.StatusInternalServerError, errors.New("could not save progress"))
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"conceptId":   progress.ConceptID,
		"completed":   progress.Completed,
		"timeSpent":   progress.TimeSpent,
		"completedAt": progress.CompletedAt,
	})
}
