package repositories

import (
	"errors"
	"fmt"

	"skilllink/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMPostRepository is a GORM implementation of PostRepository.
type GORMPostRepository struct {
	db *gorm.DB
}

// NewGORMPostRepository creates a new instance of GORMPostRepository.
func NewGORMPostRepository(db *gorm.DB) *GORMPostRepository {
	return &GORMPostRepository{
		db: db,
	}
}

// Create creates a new post in the database.
func (r *GORMPostRepository) Create(post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if err := r.db.Omit(clause.Associations).Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return r.db.Preload("Author").Preload("RelatedSkill").First(post, "id = ?", post.ID).Error
}

// GetAll retrieves all posts, newest first.
func (r *GORMPostRepository) GetAll() ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Author").Preload("RelatedSkill").
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all posts: %w", err)
	}
	return posts, nil
}

// GetByID retrieves a single post by its ID.
func (r *GORMPostRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Preload("RelatedSkill").First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get post by ID %s: %w", id, err)
	}
	return &post, nil
}

// Recent retrieves the most recent posts across all authors, newest first.
func (r *GORMPostRepository) Recent(limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Author").Preload("RelatedSkill").
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent posts: %w", err)
	}
	return posts, nil
}

// Update saves changes to an existing post.
func (r *GORMPostRepository) Update(post *models.Post) error {
	res := r.db.Model(post).Updates(map[string]interface{}{
		"content":          post.Content,
		"related_skill_id": post.RelatedSkillID,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post with ID %s not found for update", post.ID)
	}
	return r.db.Preload("Author").Preload("RelatedSkill").First(post, "id = ?", post.ID).Error
}

// Delete deletes a post by its ID from the database.
func (r *GORMPostRepository) Delete(id string) error {
	res := r.db.Delete(&models.Post{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post with ID %s not found for deletion", id)
	}
	return nil
}
