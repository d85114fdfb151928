package repositories

import "skilllink/internal/models"

// PostRepository defines the interface for post data access.
type PostRepository interface {
	Create(post *models.Post) error
	GetAll() ([]models.Post, error)
	GetByID(id string) (*models.Post, error)
	Recent(limit int) ([]models.Post, error)
	Update(post *models.Post) error
	Delete(id string) error
}
