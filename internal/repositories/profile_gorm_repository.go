package repositories

import (
	"errors"
	"fmt"

	"skilllink/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProfileRepository is a GORM implementation of ProfileRepository.
type GORMProfileRepository struct {
	db *gorm.DB
}

// NewGORMProfileRepository creates a new instance of GORMProfileRepository.
func NewGORMProfileRepository(db *gorm.DB) *GORMProfileRepository {
	return &GORMProfileRepository{
		db: db,
	}
}

// withProjection loads the associations a profile response embeds: the owning
// user and the public skill cards with their skill names.
func (r *GORMProfileRepository) withProjection() *gorm.DB {
	return r.db.
		Preload("User").
		Preload("ListedSkills", "is_public = ?", true).
		Preload("ListedSkills.Skill")
}

// Create creates a new profile in the database.
func (r *GORMProfileRepository) Create(profile *models.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if err := r.db.Omit(clause.Associations).Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("profile already exists for this user")
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetAll retrieves all profiles with their public projections.
func (r *GORMProfileRepository) GetAll() ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.withProjection().Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to get all profiles: %w", err)
	}
	return profiles, nil
}

// GetByUserID retrieves the profile owned by the given user.
func (r *GORMProfileRepository) GetByUserID(userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.withProjection().First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile for user %s not found", userID)
		}
		return nil, fmt.Errorf("failed to get profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

// GetByUsername retrieves a profile by its owner's username, the friendly key
// used in profile URLs.
func (r *GORMProfileRepository) GetByUsername(username string) (*models.Profile, error) {
	var profile models.Profile
	err := r.withProjection().
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("users.username = ?", username).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile for username %s not found", username)
		}
		return nil, fmt.Errorf("failed to get profile for username %s: %w", username, err)
	}
	return &profile, nil
}

// Update saves changes to an existing profile.
func (r *GORMProfileRepository) Update(profile *models.Profile) error {
	res := r.db.Model(profile).Updates(map[string]interface{}{
		"bio":                 profile.Bio,
		"location":            profile.Location,
		"profile_picture_url": profile.ProfilePictureURL,
		"primary_skill":       profile.PrimarySkill,
		"skill_level":         profile.SkillLevel,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("profile with ID %s not found for update", profile.ID)
	}
	return nil
}

// Delete removes a profile. Its skill cards, and endorsements on them, are
// cascaded away at the storage level.
func (r *GORMProfileRepository) Delete(id string) error {
	res := r.db.Delete(&models.Profile{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("profile with ID %s not found for deletion", id)
	}
	return nil
}
