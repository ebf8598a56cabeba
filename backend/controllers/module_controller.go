package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"learnloop/backend/middleware"
	"learnloop/backend/services"
	"learnloop/backend/utils"
)

type ModuleController struct {
	Modules *services.ModuleService
}

func NewModuleController(modules *services.ModuleService) *ModuleController {
	return &ModuleController{Modules: modules}
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return uint(id), nil
}

func (mc *ModuleController) GetTheme(c *fiber.Ctx) error {
	moduleID, err := parseIDParam(c, "moduleId")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err)
	}

	theme, err := mc.Modules.GetTheme(moduleID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.Error(c, fiber.StatusNotFound, errors.New("theme not found"))
		}
		return utils.Error(c, fiber.StatusInternalServerError, errors.New("could not load theme"))
	}

	return utils.Success(c, fiber.StatusOK, theme)
}

func (mc *ModuleController) GetOverview(c *fiber.Ctx) error {
	claims := middleware.UserClaims(c)

	overview, err := mc.Modules.GetOverview(claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.Error(c, fiber.StatusNotFound, errors.New("no modules found"))
		}
		return utils.Error(c, fiber.StatusInternalServerError, errors.New("could not load overview"))
	}

	return utils.Success(c, fiber.StatusOK, overview)
}

func (mc *ModuleController) GetReflection(c *fiber.Ctx) error {
	moduleID, err := parseIDParam(c, "moduleId")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err)
	}

	reflection, err := mc.Modules.GetReflection(moduleID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.Error(c, fiber.StatusNotFound, errors.New("reflection not found"))
		}
		return utils.Error(c, fiber.StatusInternalServerError, errors.New("could not load reflection"))
	}

	return utils.Success(c, fiber.StatusOK, reflection)
}

func (mc *ModuleController) SaveReflection(c *fiber.Ctx) error {
	if _, err := parseIDParam(c, "moduleId"); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err)
	}

	var input services.ReflectionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, errors.New("cannot parse JSON"))
	}
	if issues := utils.ValidateStruct(input); issues != nil {
		return utils.ValidationFailed(c, issues)
	}

	response, err := mc.Modules.SaveReflection(input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingUserID):
			return utils.Error(c, fiber.StatusBadRequest, err)
		case errors.Is(err, services.ErrNotFound):
			return utils.Error(c, fiber.StatusNotFound, errors.New("reflection not found"))
		default:
			return utils.Error(c, fiber.StatusInternalServerError, errors.New("could not save reflection"))
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"responseId": response.ID,
	})
}
