package repositories

import "skilllink/internal/models"

// UserSkillRepository defines the interface for skill card data access. All
// reads are scoped to an owning user: cards belonging to other users behave as
// if they do not exist.
type UserSkillRepository interface {
	// CreateWithProfile attaches the card to the user's profile, creating the
	// profile first if the user has none. The pair of writes is atomic.
	CreateWithProfile(userID string, card *models.UserSkill) error
	ListByOwner(userID string) ([]models.UserSkill, error)
	GetByIDForOwner(id, userID string) (*models.UserSkill, error)
	GetByID(id string) (*models.UserSkill, error)
	Update(card *models.UserSkill) error
	Delete(id string) error
}
