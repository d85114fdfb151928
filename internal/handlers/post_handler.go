package handlers

import (
	"log"

	"skilllink/internal/middleware"
	"skilllink/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PostHandler handles HTTP requests for posts. Reads are public; mutations
// require the authenticated author.
type PostHandler struct {
	service  *services.PostService
	validate *validator.Validate
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service *services.PostService) *PostHandler {
	return &PostHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public post read routes.
// The feed route must be registered before the id route so "user_feed" is not
// captured as an id parameter.
func (h *PostHandler) RegisterRoutes(router fiber.Router) {
	postRoutes := router.Group("/posts")
	postRoutes.Get("/", h.HandleGetPosts)
	postRoutes.Get("/user_feed", h.HandleUserFeed)
	postRoutes.Get("/:id", h.HandleGetPostByID)
}

// RegisterProtectedRoutes registers the post mutation routes.
func (h *PostHandler) RegisterProtectedRoutes(router fiber.Router) {
	postRoutes := router.Group("/posts")
	postRoutes.Post("/", h.HandleCreatePost)
	postRoutes.Put("/:id", h.HandleUpdatePost)
	postRoutes.Patch("/:id", h.HandlePatchPost)
	postRoutes.Delete("/:id", h.HandleDeletePost)
}

// HandleGetPosts retrieves all posts, newest first.
func (h *PostHandler) HandleGetPosts(c *fiber.Ctx) error {
	posts, err := h.service.GetAllPosts()
	if err != nil {
		log.Printf("Error getting all posts: %v", err)
		return serviceError(c, "Could not retrieve posts", err)
	}
	return c.JSON(posts)
}

// HandleUserFeed retrieves the 50 most recent posts across all authors.
func (h *PostHandler) HandleUserFeed(c *fiber.Ctx) error {
	posts, err := h.service.Feed()
	if err != nil {
		log.Printf("Error getting feed: %v", err)
		return serviceError(c, "Could not retrieve feed", err)
	}
	return c.JSON(posts)
}

// HandleGetPostByID retrieves a single post by its ID.
func (h *PostHandler) HandleGetPostByID(c *fiber.Ctx) error {
	postID := c.Params("id")
	post, err := h.service.GetPostByID(postID)
	if err != nil {
		log.Printf("Error getting post by ID %s: %v", postID, err)
		return serviceError(c, "Could not retrieve post", err)
	}
	return c.JSON(post)
}

// CreatePostRequest represents the request body for creating a post.
// RelatedSkillID is the write-only reference; responses show the expanded
// related_skill object instead. The author is never taken from the body.
type CreatePostRequest struct {
	Content        string `json:"content" validate:"required"`
	RelatedSkillID string `json:"related_skill_id" validate:"omitempty,uuid"`
}

// UpdatePostRequest fully replaces a post's mutable fields. An empty
// related_skill_id clears the skill link.
type UpdatePostRequest struct {
	Content        string `json:"content" validate:"required"`
	RelatedSkillID string `json:"related_skill_id" validate:"omitempty,uuid"`
}

// PatchPostRequest represents a partial post update; absent fields are left
// untouched.
type PatchPostRequest struct {
	Content        *string `json:"content" validate:"omitempty,min=1"`
	RelatedSkillID *string `json:"related_skill_id"`
}

// HandleCreatePost creates a post authored by the caller.
func (h *PostHandler) HandleCreatePost(c *fiber.Ctx) error {
	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create post request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	post, err := h.service.CreatePost(middleware.ActorID(c), req.Content, req.RelatedSkillID)
	if err != nil {
		log.Printf("Error creating post: %v", err)
		return serviceError(c, "Could not create post", err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// HandleUpdatePost fully replaces a post's mutable fields.
func (h *PostHandler) HandleUpdatePost(c *fiber.Ctx) error {
	var req UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update post request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	update := services.PostUpdate{
		Content:        &req.Content,
		RelatedSkillID: &req.RelatedSkillID,
	}
	return h.applyUpdate(c, update)
}

// HandlePatchPost partially updates a post.
func (h *PostHandler) HandlePatchPost(c *fiber.Ctx) error {
	var req PatchPostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing patch post request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	update := services.PostUpdate{
		Content:        req.Content,
		RelatedSkillID: req.RelatedSkillID,
	}
	return h.applyUpdate(c, update)
}

func (h *PostHandler) applyUpdate(c *fiber.Ctx, update services.PostUpdate) error {
	postID := c.Params("id")
	post, err := h.service.UpdatePost(middleware.ActorID(c), postID, update)
	if err != nil {
		log.Printf("Error updating post %s: %v", postID, err)
		return serviceError(c, "Could not update post", err)
	}
	return c.JSON(post)
}

// HandleDeletePost deletes a post authored by the caller.
func (h *PostHandler) HandleDeletePost(c *fiber.Ctx) error {
	postID := c.Params("id")
	if err := h.service.DeletePost(middleware.ActorID(c), postID); err != nil {
		log.Printf("Error deleting post %s: %v", postID, err)
		return serviceError(c, "Could not delete post", err)
	}
	return c.JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}
