package services

import (
	"fmt"

	"skilllink/internal/models"
	"skilllink/internal/repositories"
)

// ProfileService handles business logic related to user profiles.
type ProfileService struct {
	repo repositories.ProfileRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repo repositories.ProfileRepository) *ProfileService {
	return &ProfileService{
		repo: repo,
	}
}

// ProfileUpdate carries profile field changes. Nil fields are left untouched,
// which gives PATCH semantics; a full PUT sets every field.
type ProfileUpdate struct {
	Bio               *string
	Location          *string
	ProfilePictureURL *string
	PrimarySkill      *string
	SkillLevel        *string
}

// GetAllProfiles retrieves all profiles with their public skill cards.
func (s *ProfileService) GetAllProfiles() ([]models.Profile, error) {
	return s.repo.GetAll()
}

// GetProfileByUsername retrieves a profile by its owner's username.
func (s *ProfileService) GetProfileByUsername(username string) (*models.Profile, error) {
	return s.repo.GetByUsername(username)
}

// CreateProfile creates the calling user's profile. The owner is always the
// actor; a caller cannot create a profile for someone else.
func (s *ProfileService) CreateProfile(actorID string, profile *models.Profile) (*models.Profile, error) {
	profile.UserID = actorID
	if err := s.repo.Create(profile); err != nil {
		return nil, err
	}
	return s.repo.GetByUserID(actorID)
}

// UpdateProfile applies the given changes to the named profile, provided the
// actor owns it.
func (s *ProfileService) UpdateProfile(actorID, username string, update ProfileUpdate) (*models.Profile, error) {
	profile, err := s.repo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if profile.OwnerID() != actorID {
		return nil, fmt.Errorf("profile can only be modified by its owner")
	}

	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	if update.Location != nil {
		profile.Location = *update.Location
	}
	if update.ProfilePictureURL != nil {
		profile.ProfilePictureURL = *update.ProfilePictureURL
	}
	if update.PrimarySkill != nil {
		profile.PrimarySkill = *update.PrimarySkill
	}
	if update.SkillLevel != nil {
		profile.SkillLevel = *update.SkillLevel
	}

	if err := s.repo.Update(profile); err != nil {
		return nil, err
	}
	return s.repo.GetByUsername(username)
}

// DeleteProfile removes the named profile, provided the actor owns it. Skill
// cards and endorsements on them are cascaded away.
func (s *ProfileService) DeleteProfile(actorID, username string) error {
	profile, err := s.repo.GetByUsername(username)
	if err != nil {
		return err
	}
	if profile.OwnerID() != actorID {
		return fmt.Errorf("profile can only be deleted by its owner")
	}
	return s.repo.Delete(profile.ID)
}
