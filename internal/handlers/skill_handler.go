package handlers

import (
	"log"

	"skilllink/internal/models"
	"skilllink/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SkillHandler handles HTTP requests for the global skill catalog.
type SkillHandler struct {
	service  *services.SkillService
	validate *validator.Validate
}

// NewSkillHandler creates a new SkillHandler.
func NewSkillHandler(service *services.SkillService) *SkillHandler {
	return &SkillHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public, read-only skill routes.
// The search route must be registered before the id route so "search" is not
// captured as an id parameter.
func (h *SkillHandler) RegisterRoutes(router fiber.Router) {
	skillRoutes := router.Group("/skills")
	skillRoutes.Get("/", h.HandleGetSkills)
	skillRoutes.Get("/search", h.HandleSearchSkills)
	skillRoutes.Get("/:id", h.HandleGetSkillByID)
}

// RegisterProtectedRoutes registers the catalog mutation routes.
func (h *SkillHandler) RegisterProtectedRoutes(router fiber.Router) {
	skillRoutes := router.Group("/skills")
	skillRoutes.Post("/", h.HandleCreateSkill)
	skillRoutes.Delete("/:id", h.HandleDeleteSkill)
}

// HandleGetSkills retrieves the full skill catalog.
func (h *SkillHandler) HandleGetSkills(c *fiber.Ctx) error {
	skills, err := h.service.GetAllSkills()
	if err != nil {
		log.Printf("Error getting all skills: %v", err)
		return serviceError(c, "Could not retrieve skills", err)
	}
	return c.JSON(skills)
}

// HandleSearchSkills performs a case-insensitive substring search on skill
// names, capped at 10 results. An empty query returns the first 10 skills.
func (h *SkillHandler) HandleSearchSkills(c *fiber.Ctx) error {
	query := c.Query("q")
	skills, err := h.service.SearchSkills(query)
	if err != nil {
		log.Printf("Error searching skills for %q: %v", query, err)
		return serviceError(c, "Could not search skills", err)
	}
	return c.JSON(skills)
}

// HandleGetSkillByID retrieves a single skill by its ID.
func (h *SkillHandler) HandleGetSkillByID(c *fiber.Ctx) error {
	skillID := c.Params("id")
	skill, err := h.service.GetSkillByID(skillID)
	if err != nil {
		log.Printf("Error getting skill by ID %s: %v", skillID, err)
		return serviceError(c, "Could not retrieve skill", err)
	}
	return c.JSON(skill)
}

// CreateSkillRequest represents the request body for creating a skill.
// ParentSkillID is the write-only reference; responses show the expanded
// parent_skill object instead.
type CreateSkillRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Description   string `json:"description" validate:"omitempty,max=500"`
	Category      string `json:"category" validate:"omitempty,max=50"`
	ParentSkillID string `json:"parent_skill_id" validate:"omitempty,uuid"`
}

// HandleCreateSkill creates a new skill in the catalog.
func (h *SkillHandler) HandleCreateSkill(c *fiber.Ctx) error {
	var req CreateSkillRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create skill request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	skill := &models.Skill{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	}
	created, err := h.service.CreateSkill(skill, req.ParentSkillID)
	if err != nil {
		log.Printf("Error creating skill: %v", err)
		return serviceError(c, "Could not create skill", err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleDeleteSkill removes a skill from the catalog.
func (h *SkillHandler) HandleDeleteSkill(c *fiber.Ctx) error {
	skillID := c.Params("id")
	if err := h.service.DeleteSkill(skillID); err != nil {
		log.Printf("Error deleting skill %s: %v", skillID, err)
		return serviceError(c, "Could not delete skill", err)
	}
	return c.JSON(fiber.Map{
		"message": "Skill deleted successfully",
	})
}
