package repositories

import "skilllink/internal/models"

// EndorsementRepository defines the interface for endorsement data access.
// Reads are scoped to a user: an endorsement is visible only to the endorser
// who gave it and the card owner who received it.
type EndorsementRepository interface {
	Create(endorsement *models.Endorsement) error
	ListVisibleTo(userID string) ([]models.Endorsement, error)
	GetByIDVisibleTo(id, userID string) (*models.Endorsement, error)
	Update(endorsement *models.Endorsement) error
	Delete(id string) error
}
