package handlers

import (
	"log"

	"skilllink/internal/middleware"
	"skilllink/internal/models"
	"skilllink/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles HTTP requests for user profiles. Profiles are looked
// up by their owner's username rather than by row id.
type ProfileHandler struct {
	service  *services.ProfileService
	validate *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public profile read routes.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	profileRoutes := router.Group("/profiles")
	profileRoutes.Get("/", h.HandleGetProfiles)
	profileRoutes.Get("/:username", h.HandleGetProfileByUsername)
}

// RegisterProtectedRoutes registers the profile mutation routes.
func (h *ProfileHandler) RegisterProtectedRoutes(router fiber.Router) {
	profileRoutes := router.Group("/profiles")
	profileRoutes.Post("/", h.HandleCreateProfile)
	profileRoutes.Put("/:username", h.HandleUpdateProfile)
	profileRoutes.Patch("/:username", h.HandlePatchProfile)
	profileRoutes.Delete("/:username", h.HandleDeleteProfile)
}

// HandleGetProfiles retrieves all profiles with their public skill cards.
func (h *ProfileHandler) HandleGetProfiles(c *fiber.Ctx) error {
	profiles, err := h.service.GetAllProfiles()
	if err != nil {
		log.Printf("Error getting all profiles: %v", err)
		return serviceError(c, "Could not retrieve profiles", err)
	}
	return c.JSON(profiles)
}

// HandleGetProfileByUsername retrieves a profile by its owner's username.
func (h *ProfileHandler) HandleGetProfileByUsername(c *fiber.Ctx) error {
	username := c.Params("username")
	profile, err := h.service.GetProfileByUsername(username)
	if err != nil {
		log.Printf("Error getting profile for %s: %v", username, err)
		return serviceError(c, "Could not retrieve profile", err)
	}
	return c.JSON(profile)
}

// ProfileRequest represents the request body for creating or fully replacing
// a profile. The owning user is never taken from the body; it is always the
// authenticated caller.
type ProfileRequest struct {
	Bio               string `json:"bio" validate:"omitempty,max=500"`
	Location          string `json:"location" validate:"omitempty,max=100"`
	ProfilePictureURL string `json:"profile_picture_url" validate:"omitempty,url"`
	PrimarySkill      string `json:"primary_skill" validate:"omitempty,max=100"`
	SkillLevel        string `json:"skill_level" validate:"omitempty,oneof=B I A"`
}

// PatchProfileRequest represents a partial profile update; absent fields are
// left untouched.
type PatchProfileRequest struct {
	Bio               *string `json:"bio" validate:"omitempty,max=500"`
	Location          *string `json:"location" validate:"omitempty,max=100"`
	ProfilePictureURL *string `json:"profile_picture_url" validate:"omitempty,url"`
	PrimarySkill      *string `json:"primary_skill" validate:"omitempty,max=100"`
	SkillLevel        *string `json:"skill_level" validate:"omitempty,oneof=B I A"`
}

// HandleCreateProfile creates the authenticated caller's profile.
func (h *ProfileHandler) HandleCreateProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create profile request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	profile := &models.Profile{
		Bio:               req.Bio,
		Location:          req.Location,
		ProfilePictureURL: req.ProfilePictureURL,
		PrimarySkill:      req.PrimarySkill,
		SkillLevel:        req.SkillLevel,
	}
	created, err := h.service.CreateProfile(middleware.ActorID(c), profile)
	if err != nil {
		log.Printf("Error creating profile: %v", err)
		return serviceError(c, "Could not create profile", err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateProfile fully replaces the named profile's fields.
func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update profile request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	update := services.ProfileUpdate{
		Bio:               &req.Bio,
		Location:          &req.Location,
		ProfilePictureURL: &req.ProfilePictureURL,
		PrimarySkill:      &req.PrimarySkill,
		SkillLevel:        &req.SkillLevel,
	}
	return h.applyUpdate(c, update)
}

// HandlePatchProfile partially updates the named profile.
func (h *ProfileHandler) HandlePatchProfile(c *fiber.Ctx) error {
	var req PatchProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing patch profile request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	update := services.ProfileUpdate{
		Bio:               req.Bio,
		Location:          req.Location,
		ProfilePictureURL: req.ProfilePictureURL,
		PrimarySkill:      req.PrimarySkill,
		SkillLevel:        req.SkillLevel,
	}
	return h.applyUpdate(c, update)
}

func (h *ProfileHandler) applyUpdate(c *fiber.Ctx, update services.ProfileUpdate) error {
	username := c.Params("username")
	profile, err := h.service.UpdateProfile(middleware.ActorID(c), username, update)
	if err != nil {
		log.Printf("Error updating profile %s: %v", username, err)
		return serviceError(c, "Could not update profile", err)
	}
	return c.JSON(profile)
}

// HandleDeleteProfile deletes the named profile.
func (h *ProfileHandler) HandleDeleteProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := h.service.DeleteProfile(middleware.ActorID(c), username); err != nil {
		log.Printf("Error deleting profile %s: %v", username, err)
		return serviceError(c, "Could not delete profile", err)
	}
	return c.JSON(fiber.Map{
		"message": "Profile deleted successfully",
	})
}
