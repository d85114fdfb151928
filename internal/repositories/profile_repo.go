package repositories

import "skilllink/internal/models"

// ProfileRepository defines the interface for profile data access.
type ProfileRepository interface {
	Create(profile *models.Profile) error
	GetAll() ([]models.Profile, error)
	GetByUserID(userID string) (*models.Profile, error)
	GetByUsername(username string) (*models.Profile, error)
	Update(profile *models.Profile) error
	Delete(id string) error
}
