package services

import (
	"encoding/json"

	"gorm.io/datatypes"

	"learnloop/backend/models"
	"learnloop/backend/repositories"
)

type ThemeDTO struct {
	Title     string `json:"title"`
	Context   string `json:"context"`
	MediaURL  string `json:"mediaUrl"`
	MediaType string `json:"mediaType"`
	Question  string `json:"question"`
}

type ModuleConceptDTO struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type ModuleOverviewDTO struct {
	ID       uint               `json:"id"`
	Title    string             `json:"title"`
	Theme    *ThemeDTO          `json:"theme"`
	Progress float64            `json:"progress"`
	Concepts []ModuleConceptDTO `json:"concepts"`
}

type ModulesOverviewDTO struct {
	Modules []ModuleOverviewDTO `json:"modules"`
}

type ReflectionDTO struct {
	ID                    uint   `json:"id"`
	ModuleSummary         string `json:"moduleSummary"`
	ModuleSummaryMediaURL string `json:"moduleSummaryMediaUrl"`
	LearningAdvice        string `json:"learningAdvice"`
}

type ReflectionInput struct {
	ReflectionID uint   `json:"reflectionId"`
	UserID       uint   `json:"userId"`
	Answer       string `json:"answer" validate:"required"`
	TimeSpent    *int   `json:"timeSpent"`
}

// ModuleService serves module themes, the homepage overview and module
// reflections.
type ModuleService struct {
	content   *repositories.ContentRepository
	progress  *repositories.ProgressRepository
	responses *repositories.ResponseRepository
}

func NewModuleService(
	content *repositories.ContentRepository,
	progress *repositories.ProgressRepository,
	responses *repositories.ResponseRepository,
) *ModuleService {
	return &ModuleService{content: content, progress: progress, responses: responses}
}

func themeDTO(theme *models.Theme) *ThemeDTO {
	if theme == nil {
		return nil
	}
	return &ThemeDTO{
		Title:     theme.Title,
		Context:   theme.Context,
		MediaURL:  theme.MediaURL,
		MediaType: theme.MediaType,
		Question:  theme.Question,
	}
}

func (s *ModuleService) GetTheme(moduleID uint) (*ThemeDTO, error) {
	module, err := s.content.FindModuleWithTheme(moduleID)
	if err != nil {
		return nil, err
	}
	if module == nil || module.Theme == nil {
		return nil, ErrNotFound
	}
	return themeDTO(module.Theme), nil
}

// GetOverview lists every module with its theme and concepts; concept
// completion comes from the caller's progress rows and a module progress
// percentage is derived from them.
func (s *ModuleService) GetOverview(userID uint) (*ModulesOverviewDTO, error) {
	modules, err := s.content.FindModulesForOverview()
	if err != nil {
		return nil, err
	}
	if len(modules) == 0 {
		return nil, ErrNotFound
	}

	progressByConcept, err := s.progress.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	overview := make([]ModuleOverviewDTO, 0, len(modules))
	for _, module := range modules {
		concepts := make([]ModuleConceptDTO, 0, len(module.Concepts))
		completed := 0
		for _, concept := range module.Concepts {
			done := progressByConcept[concept.ID].Completed
			if done {
				completed++
			}
			concepts = append(concepts, ModuleConceptDTO{
				ID:        concept.ID,
				Title:     concept.Title,
				Completed: done,
			})
		}

		progress := 0.0
		if len(module.Concepts) > 0 {
			progress = float64(completed) / float64(len(module.Concepts)) * 100
		}

		overview = append(overview, ModuleOverviewDTO{
			ID:       module.ID,
			Title:    module.Title,
			Theme:    themeDTO(module.Theme),
			Progress: progress,
			Concepts: concepts,
		})
	}

	return &ModulesOverviewDTO{Modules: overview}, nil
}

func (s *ModuleService) GetReflection(moduleID uint) (*ReflectionDTO, error) {
	reflection, err := s.content.FindReflectionByModule(moduleID)
	if err != nil {
		return nil, err
	}
	if reflection == nil {
		return nil, ErrNotFound
	}
	return &ReflectionDTO{
		ID:                    reflection.ID,
		ModuleSummary:         reflection.ModuleSummary,
		ModuleSummaryMediaURL: reflection.ModuleSummaryMediaURL,
		LearningAdvice:        reflection.LearningAdvice,
	}, nil
}

// SaveReflection appends the learner's reflection text as a UserResponse.
func (s *ModuleService) SaveReflection(input ReflectionInput) (*models.UserResponse, error) {
	if input.UserID == 0 {
		return nil, ErrMissingUserID
	}

	reflection, err := s.content.FindReflectionByID(input.ReflectionID)
	if err != nil {
		return nil, err
	}
	if reflection == nil {
		return nil, ErrNotFound
	}

	answer, err := json.Marshal(map[string]string{"responseText": input.Answer})
	if err != nil {
		return nil, err
	}

	response := &models.UserResponse{
		ReflectionID: &reflection.ID,
		UserID:       input.UserID,
		ResponseType: models.ResponseTypeReflection,
		Answer:       datatypes.JSON(answer),
		TimeSpent:    input.TimeSpent,
	}
	if err := s.responses.Create(response); err != nil {
		return nil, err
	}
	return response, nil
}
