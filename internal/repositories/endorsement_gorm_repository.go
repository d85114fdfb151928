package repositories

import (
	"errors"
	"fmt"

	"skilllink/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMEndorsementRepository is a GORM implementation of EndorsementRepository.
type GORMEndorsementRepository struct {
	db *gorm.DB
}

// NewGORMEndorsementRepository creates a new instance of GORMEndorsementRepository.
func NewGORMEndorsementRepository(db *gorm.DB) *GORMEndorsementRepository {
	return &GORMEndorsementRepository{
		db: db,
	}
}

// withProjection loads the associations an endorsement response embeds: the
// endorser and the target card with its skill and owning user.
func (r *GORMEndorsementRepository) withProjection() *gorm.DB {
	return r.db.
		Preload("Endorser").
		Preload("SkillCard").
		Preload("SkillCard.Skill").
		Preload("SkillCard.Profile").
		Preload("SkillCard.Profile.User")
}

// Create creates a new endorsement in the database.
func (r *GORMEndorsementRepository) Create(endorsement *models.Endorsement) error {
	if endorsement.ID == "" {
		endorsement.ID = uuid.New().String()
	}
	if err := r.db.Omit(clause.Associations).Create(endorsement).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("skill card already endorsed by this user")
		}
		return fmt.Errorf("failed to create endorsement: %w", err)
	}
	return r.withProjection().First(endorsement, "id = ?", endorsement.ID).Error
}

// ListVisibleTo returns endorsements the user gave plus endorsements received
// on the user's own cards, newest first.
func (r *GORMEndorsementRepository) ListVisibleTo(userID string) ([]models.Endorsement, error) {
	var endorsements []models.Endorsement
	err := r.withProjection().
		Joins("JOIN user_skills ON user_skills.id = endorsements.skill_card_id").
		Joins("JOIN profiles ON profiles.id = user_skills.profile_id").
		Where("endorsements.endorser_id = ? OR profiles.user_id = ?", userID, userID).
		Order("endorsements.endorsed_at DESC").
		Find(&endorsements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list endorsements for user %s: %w", userID, err)
	}
	return endorsements, nil
}

// GetByIDVisibleTo retrieves an endorsement only if the user is a party to it.
// Endorsements between other users are reported as not found.
func (r *GORMEndorsementRepository) GetByIDVisibleTo(id, userID string) (*models.Endorsement, error) {
	var endorsement models.Endorsement
	err := r.withProjection().
		Joins("JOIN user_skills ON user_skills.id = endorsements.skill_card_id").
		Joins("JOIN profiles ON profiles.id = user_skills.profile_id").
		Where("endorsements.id = ? AND (endorsements.endorser_id = ? OR profiles.user_id = ?)", id, userID, userID).
		First(&endorsement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("endorsement with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get endorsement by ID %s: %w", id, err)
	}
	return &endorsement, nil
}

// Update saves changes to an existing endorsement.
func (r *GORMEndorsementRepository) Update(endorsement *models.Endorsement) error {
	res := r.db.Model(endorsement).Updates(map[string]interface{}{
		"comment":         endorsement.Comment,
		"endorser_rating": endorsement.EndorserRating,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update endorsement: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("endorsement with ID %s not found for update", endorsement.ID)
	}
	return r.withProjection().First(endorsement, "id = ?", endorsement.ID).Error
}

// Delete deletes an endorsement by its ID from the database.
func (r *GORMEndorsementRepository) Delete(id string) error {
	res := r.db.Delete(&models.Endorsement{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete endorsement: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("endorsement with ID %s not found for deletion", id)
	}
	return nil
}
