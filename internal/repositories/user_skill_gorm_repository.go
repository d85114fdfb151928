package repositories

import (
	"errors"
	"fmt"

	"skilllink/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMUserSkillRepository is a GORM implementation of UserSkillRepository.
type GORMUserSkillRepository struct {
	db *gorm.DB
}

// NewGORMUserSkillRepository creates a new instance of GORMUserSkillRepository.
func NewGORMUserSkillRepository(db *gorm.DB) *GORMUserSkillRepository {
	return &GORMUserSkillRepository{
		db: db,
	}
}

// CreateWithProfile creates the card inside a transaction that first ensures
// the user has a profile. The profile insert uses ON CONFLICT DO NOTHING on
// profiles.user_id, so a concurrent first-write race never errors the
// transaction (postgres aborts a transaction after any failed statement);
// whichever row won is read back and the card attaches to it, so exactly one
// profile ever exists.
func (r *GORMUserSkillRepository) CreateWithProfile(userID string, card *models.UserSkill) error {
	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		profile := models.Profile{ID: uuid.New().String(), UserID: userID}
		err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoNothing: true,
			}).
			Create(&profile).Error
		if err != nil {
			return fmt.Errorf("failed to ensure profile: %w", err)
		}
		// Read back whichever row is in place: ours, a pre-existing one, or a
		// concurrent winner's.
		if err := tx.First(&profile, "user_id = ?", userID).Error; err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		card.ProfileID = profile.ID
		if err := tx.Omit(clause.Associations).Create(card).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("skill already claimed on this profile")
			}
			return fmt.Errorf("failed to create skill card: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return r.db.Preload("Skill").Preload("Profile").First(card, "id = ?", card.ID).Error
}

// ListByOwner returns all cards on the given user's profile, ordered by skill
// name as in profile projections.
func (r *GORMUserSkillRepository) ListByOwner(userID string) ([]models.UserSkill, error) {
	var cards []models.UserSkill
	err := r.db.Preload("Skill").Preload("Profile").
		Joins("JOIN profiles ON profiles.id = user_skills.profile_id").
		Joins("JOIN skills ON skills.id = user_skills.skill_id").
		Where("profiles.user_id = ?", userID).
		Order("skills.name").
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list skill cards for user %s: %w", userID, err)
	}
	return cards, nil
}

// GetByIDForOwner retrieves a card only if it belongs to the given user.
// Cards owned by others are reported as not found.
func (r *GORMUserSkillRepository) GetByIDForOwner(id, userID string) (*models.UserSkill, error) {
	var card models.UserSkill
	err := r.db.Preload("Skill").Preload("Profile").
		Joins("JOIN profiles ON profiles.id = user_skills.profile_id").
		Where("user_skills.id = ? AND profiles.user_id = ?", id, userID).
		First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("skill card with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get skill card by ID %s: %w", id, err)
	}
	return &card, nil
}

// GetByID retrieves a card regardless of owner. Used to resolve endorsement
// targets, which point at other users' cards.
func (r *GORMUserSkillRepository) GetByID(id string) (*models.UserSkill, error) {
	var card models.UserSkill
	err := r.db.Preload("Skill").Preload("Profile").Preload("Profile.User").
		First(&card, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("skill card with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get skill card by ID %s: %w", id, err)
	}
	return &card, nil
}

// Update saves changes to an existing card.
func (r *GORMUserSkillRepository) Update(card *models.UserSkill) error {
	res := r.db.Model(card).Updates(map[string]interface{}{
		"self_rating": card.SelfRating,
		"is_public":   card.IsPublic,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update skill card: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("skill card with ID %s not found for update", card.ID)
	}
	return nil
}

// Delete removes a card; endorsements on it are cascaded away.
func (r *GORMUserSkillRepository) Delete(id string) error {
	res := r.db.Delete(&models.UserSkill{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete skill card: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("skill card with ID %s not found for deletion", id)
	}
	return nil
}
