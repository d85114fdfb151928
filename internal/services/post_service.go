package services

import (
	"fmt"
	"log"

	"skilllink/internal/models"
	"skilllink/internal/repositories"
	"skilllink/pkg/rabbitmq"
)

// The feed returns at most this many of the newest posts across all authors.
const feedLimit = 50

// PostService handles business logic related to posts.
type PostService struct {
	repo      repositories.PostRepository
	skillRepo repositories.SkillRepository
	mqClient  *rabbitmq.Client
}

// NewPostService creates a new PostService.
func NewPostService(repo repositories.PostRepository, skillRepo repositories.SkillRepository, mqClient *rabbitmq.Client) *PostService {
	return &PostService{
		repo:      repo,
		skillRepo: skillRepo,
		mqClient:  mqClient,
	}
}

// PostUpdate carries post field changes. Nil fields are left untouched. An
// empty RelatedSkillID clears the skill link.
type PostUpdate struct {
	Content        *string
	RelatedSkillID *string
}

// GetAllPosts retrieves all posts, newest first.
func (s *PostService) GetAllPosts() ([]models.Post, error) {
	return s.repo.GetAll()
}

// GetPostByID retrieves a single post by its ID.
func (s *PostService) GetPostByID(id string) (*models.Post, error) {
	return s.repo.GetByID(id)
}

// Feed returns the 50 most recent posts across all authors, newest first.
// There is no follow-graph personalization.
func (s *PostService) Feed() ([]models.Post, error) {
	return s.repo.Recent(feedLimit)
}

// CreatePost creates a post authored by the actor. Any author value a client
// sends is ignored; the actor is always the author. The optional skill
// reference must resolve.
func (s *PostService) CreatePost(actorID, content, relatedSkillID string) (*models.Post, error) {
	post := &models.Post{
		AuthorID: actorID,
		Content:  content,
	}
	if relatedSkillID != "" {
		skill, err := s.skillRepo.GetByID(relatedSkillID)
		if err != nil {
			return nil, fmt.Errorf("related_skill_id does not resolve to an existing skill: %w", err)
		}
		post.RelatedSkillID = &skill.ID
	}

	if err := s.repo.Create(post); err != nil {
		return nil, err
	}

	// Publishing is best-effort: a broker failure never fails the request.
	if s.mqClient != nil {
		event := map[string]interface{}{
			"event":    "post.created",
			"postID":   post.ID,
			"authorID": post.AuthorID,
		}
		if err := s.mqClient.PublishPostCreated(event); err != nil {
			log.Printf("Warning: Failed to publish post created event for post %s: %v", post.ID, err)
		}
	} else {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
	}

	return post, nil
}

// UpdatePost applies changes to a post, provided the actor authored it.
func (s *PostService) UpdatePost(actorID, id string, update PostUpdate) (*models.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post.OwnerID() != actorID {
		return nil, fmt.Errorf("post can only be modified by its author")
	}

	if update.Content != nil {
		post.Content = *update.Content
	}
	if update.RelatedSkillID != nil {
		if *update.RelatedSkillID == "" {
			post.RelatedSkillID = nil
		} else {
			skill, err := s.skillRepo.GetByID(*update.RelatedSkillID)
			if err != nil {
				return nil, fmt.Errorf("related_skill_id does not resolve to an existing skill: %w", err)
			}
			post.RelatedSkillID = &skill.ID
		}
	}

	if err := s.repo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post, provided the actor authored it.
func (s *PostService) DeletePost(actorID, id string) error {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if post.OwnerID() != actorID {
		return fmt.Errorf("post can only be deleted by its author")
	}
	return s.repo.Delete(post.ID)
}
