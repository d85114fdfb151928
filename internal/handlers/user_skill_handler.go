package handlers

import (
	"log"

	"skilllink/internal/middleware"
	"skilllink/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserSkillHandler handles HTTP requests for the caller's skill cards. All
// routes require authentication and operate on the caller's own cards only:
// another user's card id yields 404, the same as a nonexistent one.
type UserSkillHandler struct {
	service  *services.UserSkillService
	validate *validator.Validate
}

// NewUserSkillHandler creates a new UserSkillHandler.
func NewUserSkillHandler(service *services.UserSkillService) *UserSkillHandler {
	return &UserSkillHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the skill card routes with the Fiber app.
func (h *UserSkillHandler) RegisterRoutes(router fiber.Router) {
	cardRoutes := router.Group("/userskills")
	cardRoutes.Get("/", h.HandleListCards)
	cardRoutes.Post("/", h.HandleCreateCard)
	cardRoutes.Get("/:id", h.HandleGetCardByID)
	cardRoutes.Put("/:id", h.HandleUpdateCard)
	cardRoutes.Patch("/:id", h.HandlePatchCard)
	cardRoutes.Delete("/:id", h.HandleDeleteCard)
}

// HandleListCards retrieves all of the caller's skill cards.
func (h *UserSkillHandler) HandleListCards(c *fiber.Ctx) error {
	cards, err := h.service.ListCards(middleware.ActorID(c))
	if err != nil {
		log.Printf("Error listing skill cards: %v", err)
		return serviceError(c, "Could not retrieve skill cards", err)
	}
	return c.JSON(cards)
}

// HandleGetCardByID retrieves one of the caller's skill cards.
func (h *UserSkillHandler) HandleGetCardByID(c *fiber.Ctx) error {
	cardID := c.Params("id")
	card, err := h.service.GetCard(middleware.ActorID(c), cardID)
	if err != nil {
		log.Printf("Error getting skill card %s: %v", cardID, err)
		return serviceError(c, "Could not retrieve skill card", err)
	}
	return c.JSON(card)
}

// CreateUserSkillRequest represents the request body for claiming a skill.
// SkillID is the write-only reference; responses show the expanded skill
// object instead. The owning profile is never taken from the body.
type CreateUserSkillRequest struct {
	SkillID    string `json:"skill_id" validate:"required,uuid"`
	SelfRating int    `json:"self_rating" validate:"required,gte=1,lte=5"`
	IsPublic   *bool  `json:"is_public"`
}

// UpdateUserSkillRequest fully replaces a card's mutable fields. The claimed
// skill itself cannot be changed; delete the card and claim another instead.
type UpdateUserSkillRequest struct {
	SelfRating int   `json:"self_rating" validate:"required,gte=1,lte=5"`
	IsPublic   *bool `json:"is_public" validate:"required"`
}

// PatchUserSkillRequest represents a partial card update.
type PatchUserSkillRequest struct {
	SelfRating *int  `json:"self_rating" validate:"omitempty,gte=1,lte=5"`
	IsPublic   *bool `json:"is_public"`
}

// HandleCreateCard claims a skill on the caller's profile, creating the
// profile on the fly if this is the caller's first card.
func (h *UserSkillHandler) HandleCreateCard(c *fiber.Ctx) error {
	var req CreateUserSkillRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create skill card request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	card, err := h.service.CreateCard(middleware.ActorID(c), req.SkillID, req.SelfRating, req.IsPublic)
	if err != nil {
		log.Printf("Error creating skill card: %v", err)
		return serviceError(c, "Could not create skill card", err)
	}

	return c.Status(fiber.StatusCreated).JSON(card)
}

// HandleUpdateCard fully replaces one of the caller's cards.
func (h *UserSkillHandler) HandleUpdateCard(c *fiber.Ctx) error {
	var req UpdateUserSkillRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update skill card request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	update := services.UserSkillUpdate{
		SelfRating: &req.SelfRating,
		IsPublic:   req.IsPublic,
	}
	return h.applyUpdate(c, update)
}

// HandlePatchCard partially updates one of the caller's cards.
func (h *UserSkillHandler) HandlePatchCard(c *fiber.Ctx) error {
	var req PatchUserSkillRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing patch skill card request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	update := services.UserSkillUpdate{
		SelfRating: req.SelfRating,
		IsPublic:   req.IsPublic,
	}
	return h.applyUpdate(c, update)
}

func (h *UserSkillHandler) applyUpdate(c *fiber.Ctx, update services.UserSkillUpdate) error {
	cardID := c.Params("id")
	card, err := h.service.UpdateCard(middleware.ActorID(c), cardID, update)
	if err != nil {
		log.Printf("Error updating skill card %s: %v", cardID, err)
		return serviceError(c, "Could not update skill card", err)
	}
	return c.JSON(card)
}

// HandleDeleteCard removes one of the caller's cards.
func (h *UserSkillHandler) HandleDeleteCard(c *fiber.Ctx) error {
	cardID := c.Params("id")
	if err := h.service.DeleteCard(middleware.ActorID(c), cardID); err != nil {
		log.Printf("Error deleting skill card %s: %v", cardID, err)
		return serviceError(c, "Could not delete skill card", err)
	}
	return c.JSON(fiber.Map{
		"message": "Skill card deleted successfully",
	})
}
