package handlers

import (
	"log"

	"skilllink/internal/middleware"
	"skilllink/internal/models"
	"skilllink/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// EndorsementHandler handles HTTP requests for endorsements. All routes
// require authentication and are scoped to endorsements the caller gave or
// received; anyone else's endorsement id yields 404.
type EndorsementHandler struct {
	service  *services.EndorsementService
	validate *validator.Validate
}

// NewEndorsementHandler creates a new EndorsementHandler.
func NewEndorsementHandler(service *services.EndorsementService) *EndorsementHandler {
	return &EndorsementHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the endorsement routes with the Fiber app.
func (h *EndorsementHandler) RegisterRoutes(router fiber.Router) {
	endorsementRoutes := router.Group("/endorsements")
	endorsementRoutes.Get("/", h.HandleListEndorsements)
	endorsementRoutes.Post("/", h.HandleCreateEndorsement)
	endorsementRoutes.Get("/:id", h.HandleGetEndorsementByID)
	endorsementRoutes.Patch("/:id", h.HandlePatchEndorsement)
	endorsementRoutes.Delete("/:id", h.HandleDeleteEndorsement)
}

// EndorsementResponse decorates an endorsement with the recipient's username
// and the endorsed skill's display name, pulled from the loaded card.
type EndorsementResponse struct {
	*models.Endorsement
	RecipientUsername string `json:"recipient_username"`
	EndorsedSkillName string `json:"endorsed_skill_name"`
}

func newEndorsementResponse(e *models.Endorsement) EndorsementResponse {
	return EndorsementResponse{
		Endorsement:       e,
		RecipientUsername: e.SkillCard.Profile.User.Username,
		EndorsedSkillName: e.SkillCard.Skill.Name,
	}
}

// HandleListEndorsements retrieves endorsements the caller gave or received.
func (h *EndorsementHandler) HandleListEndorsements(c *fiber.Ctx) error {
	endorsements, err := h.service.ListEndorsements(middleware.ActorID(c))
	if err != nil {
		log.Printf("Error listing endorsements: %v", err)
		return serviceError(c, "Could not retrieve endorsements", err)
	}

	responses := make([]EndorsementResponse, 0, len(endorsements))
	for i := range endorsements {
		responses = append(responses, newEndorsementResponse(&endorsements[i]))
	}
	return c.JSON(responses)
}

// HandleGetEndorsementByID retrieves an endorsement the caller is a party to.
func (h *EndorsementHandler) HandleGetEndorsementByID(c *fiber.Ctx) error {
	endorsementID := c.Params("id")
	endorsement, err := h.service.GetEndorsement(middleware.ActorID(c), endorsementID)
	if err != nil {
		log.Printf("Error getting endorsement %s: %v", endorsementID, err)
		return serviceError(c, "Could not retrieve endorsement", err)
	}
	return c.JSON(newEndorsementResponse(endorsement))
}

// CreateEndorsementRequest represents the request body for endorsing a skill
// card. SkillCardID is the write-only reference; responses show the expanded
// skill_card object instead. The endorser is never taken from the body.
type CreateEndorsementRequest struct {
	SkillCardID    string `json:"skill_card_id" validate:"required,uuid"`
	Comment        string `json:"comment" validate:"omitempty,max=1000"`
	EndorserRating *int   `json:"endorser_rating" validate:"omitempty,gte=1,lte=5"`
}

// PatchEndorsementRequest represents a partial endorsement update.
type PatchEndorsementRequest struct {
	Comment        *string `json:"comment" validate:"omitempty,max=1000"`
	EndorserRating *int    `json:"endorser_rating" validate:"omitempty,gte=1,lte=5"`
}

// HandleCreateEndorsement endorses a skill card on behalf of the caller.
func (h *EndorsementHandler) HandleCreateEndorsement(c *fiber.Ctx) error {
	var req CreateEndorsementRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create endorsement request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	endorsement, err := h.service.CreateEndorsement(middleware.ActorID(c), req.SkillCardID, req.Comment, req.EndorserRating)
	if err != nil {
		log.Printf("Error creating endorsement: %v", err)
		return serviceError(c, "Could not create endorsement", err)
	}

	return c.Status(fiber.StatusCreated).JSON(newEndorsementResponse(endorsement))
}

// HandlePatchEndorsement updates the comment or rating of an endorsement the
// caller gave.
func (h *EndorsementHandler) HandlePatchEndorsement(c *fiber.Ctx) error {
	var req PatchEndorsementRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing patch endorsement request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	endorsementID := c.Params("id")
	update := services.EndorsementUpdate{
		Comment:        req.Comment,
		EndorserRating: req.EndorserRating,
	}
	endorsement, err := h.service.UpdateEndorsement(middleware.ActorID(c), endorsementID, update)
	if err != nil {
		log.Printf("Error updating endorsement %s: %v", endorsementID, err)
		return serviceError(c, "Could not update endorsement", err)
	}
	return c.JSON(newEndorsementResponse(endorsement))
}

// HandleDeleteEndorsement withdraws an endorsement the caller gave.
func (h *EndorsementHandler) HandleDeleteEndorsement(c *fiber.Ctx) error {
	endorsementID := c.Params("id")
	if err := h.service.DeleteEndorsement(middleware.ActorID(c), endorsementID); err != nil {
		log.Printf("Error deleting endorsement %s: %v", endorsementID, err)
		return serviceError(c, "Could not delete endorsement", err)
	}
	return c.JSON(fiber.Map{
		"message": "Endorsement deleted successfully",
	})
}
