package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"skilllink/internal/handlers"
	"skilllink/internal/middleware"
	"skilllink/internal/models"
	"skilllink/internal/repositories"
	"skilllink/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Each setupApp call gets its own shared-cache in-memory database so tests do
// not leak state into each other.
var dbCounter int64

// setupApp sets up a Fiber app for testing with in-memory SQLite and all handlers/services.
func setupApp() (*fiber.App, error) {
	// Configure Viper for testing
	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	// Initialize in-memory SQLite database with foreign keys enforced, so the
	// cascade and set-null rules actually run at the storage boundary.
	dsn := fmt.Sprintf("file:skilllink_test_%d?mode=memory&cache=shared&_foreign_keys=on", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}

	// Auto-migrate models
	err = db.AutoMigrate(
		&models.User{},
		&models.Skill{},
		&models.Profile{},
		&models.UserSkill{},
		&models.Post{},
		&models.Endorsement{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	// Initialize Repositories
	userRepo := repositories.NewGORMUserRepository(db)
	skillRepo := repositories.NewGORMSkillRepository(db)
	profileRepo := repositories.NewGORMProfileRepository(db)
	userSkillRepo := repositories.NewGORMUserSkillRepository(db)
	postRepo := repositories.NewGORMPostRepository(db)
	endorsementRepo := repositories.NewGORMEndorsementRepository(db)

	// Initialize Services (nil for the RabbitMQ client)
	authService := services.NewAuthService(userRepo, jwtSecret)
	skillService := services.NewSkillService(skillRepo)
	profileService := services.NewProfileService(profileRepo)
	userSkillService := services.NewUserSkillService(userSkillRepo, skillRepo)
	postService := services.NewPostService(postRepo, skillRepo, nil)
	endorsementService := services.NewEndorsementService(endorsementRepo, userSkillRepo, nil)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	skillHandler := handlers.NewSkillHandler(skillService)
	profileHandler := handlers.NewProfileHandler(profileService)
	userSkillHandler := handlers.NewUserSkillHandler(userSkillService)
	postHandler := handlers.NewPostHandler(postService)
	endorsementHandler := handlers.NewEndorsementHandler(endorsementService)

	app := fiber.New()

	// API Routes: public first, then the protected group, mirroring main.go
	apiV1 := app.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)
	skillHandler.RegisterRoutes(apiV1)
	profileHandler.RegisterRoutes(apiV1)
	postHandler.RegisterRoutes(apiV1)

	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService))

	authHandler.RegisterProtectedRoutes(protectedRoutes)
	skillHandler.RegisterProtectedRoutes(protectedRoutes)
	profileHandler.RegisterProtectedRoutes(protectedRoutes)
	postHandler.RegisterProtectedRoutes(protectedRoutes)
	userSkillHandler.RegisterRoutes(protectedRoutes)
	endorsementHandler.RegisterRoutes(protectedRoutes)

	return app, nil
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

// doRequest sends a JSON request through the test app, optionally authenticated.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

// decode reads a JSON response body into out and closes the body.
func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerAndLogin creates a user through the API and returns a bearer token.
func registerAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"username": username,
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp map[string]string
	decode(t, resp, &loginResp)
	assert.NotEmpty(t, loginResp["token"])
	return loginResp["token"]
}

// createSkill adds a skill to the catalog through the API and returns its id.
func createSkill(t *testing.T, app *fiber.App, token, name string) string {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/v1/skills", token, map[string]interface{}{
		"name":     name,
		"category": "Testing",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var skill models.Skill
	decode(t, resp, &skill)
	assert.NotEmpty(t, skill.ID)
	return skill.ID
}

// createCard claims a skill for the token's user and returns the card id.
func createCard(t *testing.T, app *fiber.App, token, skillID string, rating int) string {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/v1/userskills", token, map[string]interface{}{
		"skill_id":    skillID,
		"self_rating": rating,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var card models.UserSkill
	decode(t, resp, &card)
	assert.NotEmpty(t, card.ID)
	return card.ID
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	// The password is accepted from the body but never echoed back in any form
	resp := doRequest(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username": "dana",
		"email":    "dana@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var regResp struct {
		User map[string]interface{} `json:"user"`
	}
	decode(t, resp, &regResp)
	assert.Equal(t, "dana", regResp.User["username"])
	assert.NotContains(t, regResp.User, "password")

	token := registerAndLogin(t, app, "alice")

	// /auth/me reflects the authenticated identity
	resp = doRequest(t, app, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var me models.User
	decode(t, resp, &me)
	assert.Equal(t, "alice", me.Username)

	// Registering the same username again conflicts
	resp = doRequest(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username": "alice",
		"email":    "other@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestProtectedEndpointsWithoutAuth(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/userskills", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/api/v1/posts", "", map[string]interface{}{
		"content": "unauthenticated post",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Public reads stay open
	resp = doRequest(t, app, http.MethodGet, "/api/v1/skills", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestSkillNameUniqueness(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)
	token := registerAndLogin(t, app, "alice")

	createSkill(t, app, token, "Python")

	// A second skill with the same name fails with a conflict
	resp := doRequest(t, app, http.MethodPost, "/api/v1/skills", token, map[string]interface{}{
		"name": "Python",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestSkillSearch(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)
	token := registerAndLogin(t, app, "alice")

	for _, name := range []string{"Python", "PyTorch", "Go", "Leadership"} {
		createSkill(t, app, token, name)
	}

	// Case-insensitive substring match
	resp := doRequest(t, app, http.MethodGet, "/api/v1/skills/search?q=py", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var results []models.Skill
	decode(t, resp, &results)
	assert.Len(t, results, 2)
	for _, s := range results {
		assert.Contains(t, []string{"Python", "PyTorch"}, s.Name)
	}

	// Empty query returns the catalog in name order, capped at 10
	resp = doRequest(t, app, http.MethodGet, "/api/v1/skills/search", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &results)
	assert.Len(t, results, 4)
	assert.Equal(t, "Go", results[0].Name)

	// No match yields an empty list, not an error
	resp = doRequest(t, app, http.MethodGet, "/api/v1/skills/search?q=zzz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &results)
	assert.Len(t, results, 0)
}

func TestSkillSearchCap(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)
	token := registerAndLogin(t, app, "alice")

	for i := 0; i < 12; i++ {
		createSkill(t, app, token, fmt.Sprintf("Skill %02d", i))
	}

	resp := doRequest(t, app, http.MethodGet, "/api/v1/skills/search?q=skill", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var results []models.Skill
	decode(t, resp, &results)
	assert.Len(t, results, 10)
}

func TestUserSkillLifecycleAndScoping(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)
	aliceToken := registerAndLogin(t, app, "alice")
	bobToken := registerAndLogin(t, app, "bob")

	skillID := createSkill(t, app, aliceToken, "Go")

	// Creating the first card lazily creates alice's profile
	cardID := createCard(t, app, aliceToken, skillID, 4)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/profiles/alice", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var profile models.Profile
	decode(t, resp, &profile)
	assert.Equal(t, "alice", profile.User.Username)
	assert.Len(t, profile.ListedSkills, 1)
	assert.Equal(t, "Go", profile.ListedSkills[0].Skill.Name)
	assert.Equal(t, 4, profile.ListedSkills[0].SelfRating)

	// Claiming the same skill twice conflicts
	resp = doRequest(t, app, http.MethodPost, "/api/v1/userskills", aliceToken, map[string]interface{}{
		"skill_id":    skillID,
		"self_rating": 2,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// A second card for a different skill reuses the existing profile
	otherSkillID := createSkill(t, app, aliceToken, "Rust")
	createCard(t, app, aliceToken, otherSkillID, 3)
	resp = doRequest(t, app, http.MethodGet, "/api/v1/profiles/alice", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &profile)
	assert.Len(t, profile.ListedSkills, 2)

	// Out-of-range ratings are rejected before the store is touched
	for _, rating := range []int{0, 6} {
		resp = doRequest(t, app, http.MethodPost, "/api/v1/userskills", bobToken, map[string]interface{}{
			"skill_id":    skillID,
			"self_rating": rating,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var errResp map[string]interface{}
		decode(t, resp, &errResp)
		assert.Contains(t, errResp, "errors")
	}

	// An unresolvable skill reference is a validation error naming the field
	resp = doRequest(t, app, http.MethodPost, "/api/v1/userskills", bobToken, map[string]interface{}{
		"skill_id":    "3f0e9f44-0000-0000-0000-000000000000",
		"self_rating": 3,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var resolveErr struct {
		Errors map[string]string `json:"errors"`
	}
	decode(t, resp, &resolveErr)
	assert.Contains(t, resolveErr.Errors, "skill_id")

	// Bob cannot see alice's card: the list is scoped and a guessed id is 404
	resp = doRequest(t, app, http.MethodGet, "/api/v1/userskills", bobToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var cards []models.UserSkill
	decode(t, resp, &cards)
	assert.Len(t, cards, 0)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/userskills/"+cardID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// The owner updates the rating
	resp = doRequest(t, app, http.MethodPatch, "/api/v1/userskills/"+cardID, aliceToken, map[string]interface{}{
		"self_rating": 5,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.UserSkill
	decode(t, resp, &updated)
	assert.Equal(t, 5, updated.SelfRating)
}

func TestEndorsementFlow(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)
	aliceToken := registerAndLogin(t, app, "alice")
	bobToken := registerAndLogin(t, app, "bob")
	carolToken := registerAndLogin(t, app, "carol")

	skillID := createSkill(t, app, aliceToken, "Go")
	cardID := createCard(t, app, aliceToken, skillID, 4)

	// Bob endorses alice's card; the endorser is stamped from the token
	resp := doRequest(t, app, http.MethodPost, "/api/v1/endorsements", bobToken, map[string]interface{}{
		"skill_card_id":   cardID,
		"comment":         "solid Go engineer",
		"endorser_rating": 5,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID                string      `json:"id"`
		Endorser          models.User `json:"endorser"`
		RecipientUsername string      `json:"recipient_username"`
		EndorsedSkillName string      `json:"endorsed_skill_name"`
	}
	decode(t, resp, &created)
	assert.Equal(t, "bob", created.Endorser.Username)
	assert.Equal(t, "alice", created.RecipientUsername)
	assert.Equal(t, "Go", created.EndorsedSkillName)

	// Endorsing the same card again conflicts
	resp = doRequest(t, app, http.MethodPost, "/api/v1/endorsements", bobToken, map[string]interface{}{
		"skill_card_id": cardID,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Out-of-range endorser ratings are rejected
	resp = doRequest(t, app, http.MethodPost, "/api/v1/endorsements", carolToken, map[string]interface{}{
		"skill_card_id":   cardID,
		"endorser_rating": 6,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Both parties see the endorsement in their lists
	for _, token := range []string{aliceToken, bobToken} {
		resp = doRequest(t, app, http.MethodGet, "/api/v1/endorsements", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var list []map[string]interface{}
		decode(t, resp, &list)
		assert.Len(t, list, 1)
	}

	// Carol is not a party: the list is empty and the id reads as not found
	resp = doRequest(t, app, http.MethodGet, "/api/v1/endorsements", carolToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var carolList []map[string]interface{}
	decode(t, resp, &carolList)
	assert.Len(t, carolList, 0)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/endorsements/"+created.ID, carolToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// The recipient can read but not amend; the endorser can amend
	resp = doRequest(t, app, http.MethodPatch, "/api/v1/endorsements/"+created.ID, aliceToken, map[string]interface{}{
		"comment": "thanks!",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPatch, "/api/v1/endorsements/"+created.ID, bobToken, map[string]interface{}{
		"comment": "exceptional Go engineer",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var amended map[string]interface{}
	decode(t, resp, &amended)
	assert.Equal(t, "exceptional Go engineer", amended["comment"])
}

func TestSkillDeletionNullsReferences(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)
	token := registerAndLogin(t, app, "alice")

	// A parent/child skill pair and a post referencing the parent
	parentID := createSkill(t, app, token, "Programming")
	resp := doRequest(t, app, http.MethodPost, "/api/v1/skills", token, map[string]interface{}{
		"name":            "Go",
		"parent_skill_id": parentID,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var child models.Skill
	decode(t, resp, &child)
	assert.NotNil(t, child.ParentSkillID)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/posts", token, map[string]interface{}{
		"content":          "learning to program",
		"related_skill_id": parentID,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var post models.Post
	decode(t, resp, &post)
	assert.NotNil(t, post.RelatedSkill)

	// Deleting the parent nulls both references without deleting the rows
	resp = doRequest(t, app, http.MethodDelete, "/api/v1/skills/"+parentID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Decode into fresh values: the nulled references are omitted from the
	// JSON, so re-decoding into the old structs would keep the stale fields.
	resp = doRequest(t, app, http.MethodGet, "/api/v1/skills/"+child.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var orphanedSkill models.Skill
	decode(t, resp, &orphanedSkill)
	assert.Nil(t, orphanedSkill.ParentSkillID)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/posts/"+post.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var unlinkedPost models.Post
	decode(t, resp, &unlinkedPost)
	assert.Equal(t, "learning to program", unlinkedPost.Content)
	assert.Nil(t, unlinkedPost.RelatedSkill)
}

func TestUserDeletionCascades(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)
	aliceToken := registerAndLogin(t, app, "alice")
	bobToken := registerAndLogin(t, app, "bob")

	skillID := createSkill(t, app, aliceToken, "Go")
	cardID := createCard(t, app, aliceToken, skillID, 4)

	resp := doRequest(t, app, http.MethodPost, "/api/v1/endorsements", bobToken, map[string]interface{}{
		"skill_card_id": cardID,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Deleting alice removes her profile, her cards and, transitively, the
	// endorsements bob gave on them
	resp = doRequest(t, app, http.MethodDelete, "/api/v1/auth/me", aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/v1/profiles/alice", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/v1/endorsements", bobToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]interface{}
	decode(t, resp, &list)
	assert.Len(t, list, 0)
}

func TestProfileDeletionCascadesToCards(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)
	aliceToken := registerAndLogin(t, app, "alice")
	bobToken := registerAndLogin(t, app, "bob")

	skillID := createSkill(t, app, aliceToken, "Go")
	cardID := createCard(t, app, aliceToken, skillID, 4)

	resp := doRequest(t, app, http.MethodPost, "/api/v1/endorsements", bobToken, map[string]interface{}{
		"skill_card_id": cardID,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Deleting just the profile removes its cards and the endorsements on
	// them, while the account itself survives
	resp = doRequest(t, app, http.MethodDelete, "/api/v1/profiles/alice", aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/v1/userskills", aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var cards []models.UserSkill
	decode(t, resp, &cards)
	assert.Len(t, cards, 0)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/endorsements", bobToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]interface{}
	decode(t, resp, &list)
	assert.Len(t, list, 0)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/auth/me", aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestPostAuthorStampingAndFeed(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)
	aliceToken := registerAndLogin(t, app, "alice")
	bobToken := registerAndLogin(t, app, "bob")

	// The author comes from the token, not the body
	resp := doRequest(t, app, http.MethodPost, "/api/v1/posts", aliceToken, map[string]interface{}{
		"content": "first post",
		"author":  map[string]interface{}{"id": "spoofed", "username": "mallory"},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var post models.Post
	decode(t, resp, &post)
	assert.Equal(t, "alice", post.Author.Username)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/posts/"+post.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &post)
	assert.Equal(t, "alice", post.Author.Username)

	// The feed is global and newest-first
	time.Sleep(5 * time.Millisecond)
	resp = doRequest(t, app, http.MethodPost, "/api/v1/posts", bobToken, map[string]interface{}{
		"content": "second post",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/v1/posts/user_feed", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var feed []models.Post
	decode(t, resp, &feed)
	assert.Len(t, feed, 2)
	assert.Equal(t, "second post", feed[0].Content)
	assert.Equal(t, "first post", feed[1].Content)
}

func TestPostOwnership(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)
	aliceToken := registerAndLogin(t, app, "alice")
	bobToken := registerAndLogin(t, app, "bob")

	resp := doRequest(t, app, http.MethodPost, "/api/v1/posts", aliceToken, map[string]interface{}{
		"content": "alice's post",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var post models.Post
	decode(t, resp, &post)

	// Posts are public, so a non-author mutation is forbidden, not hidden
	resp = doRequest(t, app, http.MethodPut, "/api/v1/posts/"+post.ID, bobToken, map[string]interface{}{
		"content": "bob's edit",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodDelete, "/api/v1/posts/"+post.ID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// The author can edit and delete
	resp = doRequest(t, app, http.MethodPut, "/api/v1/posts/"+post.ID, aliceToken, map[string]interface{}{
		"content": "alice's edit",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &post)
	assert.Equal(t, "alice's edit", post.Content)

	resp = doRequest(t, app, http.MethodDelete, "/api/v1/posts/"+post.ID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/v1/posts/"+post.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestProfileOwnershipAndUpdates(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)
	aliceToken := registerAndLogin(t, app, "alice")
	bobToken := registerAndLogin(t, app, "bob")

	// Alice creates her profile explicitly
	resp := doRequest(t, app, http.MethodPost, "/api/v1/profiles", aliceToken, map[string]interface{}{
		"bio":         "gopher",
		"location":    "Berlin",
		"skill_level": "I",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var profile models.Profile
	decode(t, resp, &profile)
	assert.Equal(t, "gopher", profile.Bio)
	assert.Equal(t, "alice", profile.User.Username)

	// A second explicit create conflicts
	resp = doRequest(t, app, http.MethodPost, "/api/v1/profiles", aliceToken, map[string]interface{}{
		"bio": "again",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// An invalid skill level fails validation
	resp = doRequest(t, app, http.MethodPatch, "/api/v1/profiles/alice", aliceToken, map[string]interface{}{
		"skill_level": "X",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Bob may not touch alice's profile
	resp = doRequest(t, app, http.MethodPatch, "/api/v1/profiles/alice", bobToken, map[string]interface{}{
		"bio": "bob was here",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Partial update leaves other fields alone
	resp = doRequest(t, app, http.MethodPatch, "/api/v1/profiles/alice", aliceToken, map[string]interface{}{
		"location": "Amsterdam",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &profile)
	assert.Equal(t, "Amsterdam", profile.Location)
	assert.Equal(t, "gopher", profile.Bio)

	// Owner deletes the profile
	resp = doRequest(t, app, http.MethodDelete, "/api/v1/profiles/alice", aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/v1/profiles/alice", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestProfileVisibilityOfPrivateCards(t *testing.T) {
	app, err := setupApp()
	assert.NoError(t, err)
	token := registerAndLogin(t, app, "alice")

	publicSkill := createSkill(t, app, token, "Go")
	privateSkill := createSkill(t, app, token, "Negotiation")

	createCard(t, app, token, publicSkill, 4)
	resp := doRequest(t, app, http.MethodPost, "/api/v1/userskills", token, map[string]interface{}{
		"skill_id":    privateSkill,
		"self_rating": 3,
		"is_public":   false,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// The public profile projection embeds only public cards
	resp = doRequest(t, app, http.MethodGet, "/api/v1/profiles/alice", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var profile models.Profile
	decode(t, resp, &profile)
	assert.Len(t, profile.ListedSkills, 1)
	assert.Equal(t, "Go", profile.ListedSkills[0].Skill.Name)

	// The owner's scoped card list still contains both
	resp = doRequest(t, app, http.MethodGet, "/api/v1/userskills", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var cards []models.UserSkill
	decode(t, resp, &cards)
	assert.Len(t, cards, 2)
}
