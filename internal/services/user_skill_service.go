package services

import (
	"fmt"

	"skilllink/internal/models"
	"skilllink/internal/repositories"
)

// UserSkillService handles business logic related to skill cards. Every
// operation is scoped to the acting user: cards on other users' profiles are
// indistinguishable from absent ones.
type UserSkillService struct {
	repo      repositories.UserSkillRepository
	skillRepo repositories.SkillRepository
}

// NewUserSkillService creates a new UserSkillService.
func NewUserSkillService(repo repositories.UserSkillRepository, skillRepo repositories.SkillRepository) *UserSkillService {
	return &UserSkillService{
		repo:      repo,
		skillRepo: skillRepo,
	}
}

// UserSkillUpdate carries card field changes. Nil fields are left untouched.
type UserSkillUpdate struct {
	SelfRating *int
	IsPublic   *bool
}

// ListCards returns all cards on the actor's profile.
func (s *UserSkillService) ListCards(actorID string) ([]models.UserSkill, error) {
	return s.repo.ListByOwner(actorID)
}

// GetCard retrieves one of the actor's cards by id.
func (s *UserSkillService) GetCard(actorID, id string) (*models.UserSkill, error) {
	return s.repo.GetByIDForOwner(id, actorID)
}

// CreateCard claims a skill on the actor's profile, creating the profile first
// if the actor has none. The skill reference must resolve.
func (s *UserSkillService) CreateCard(actorID, skillID string, selfRating int, isPublic *bool) (*models.UserSkill, error) {
	skill, err := s.skillRepo.GetByID(skillID)
	if err != nil {
		return nil, fmt.Errorf("skill_id does not resolve to an existing skill: %w", err)
	}

	card := &models.UserSkill{
		SkillID:    skill.ID,
		SelfRating: selfRating,
		IsPublic:   true,
	}
	if isPublic != nil {
		card.IsPublic = *isPublic
	}

	if err := s.repo.CreateWithProfile(actorID, card); err != nil {
		return nil, err
	}
	return card, nil
}

// UpdateCard applies changes to one of the actor's cards.
func (s *UserSkillService) UpdateCard(actorID, id string, update UserSkillUpdate) (*models.UserSkill, error) {
	card, err := s.repo.GetByIDForOwner(id, actorID)
	if err != nil {
		return nil, err
	}

	if update.SelfRating != nil {
		card.SelfRating = *update.SelfRating
	}
	if update.IsPublic != nil {
		card.IsPublic = *update.IsPublic
	}

	if err := s.repo.Update(card); err != nil {
		return nil, err
	}
	return s.repo.GetByIDForOwner(id, actorID)
}

// DeleteCard removes one of the actor's cards, and with it any endorsements it
// has received.
func (s *UserSkillService) DeleteCard(actorID, id string) error {
	card, err := s.repo.GetByIDForOwner(id, actorID)
	if err != nil {
		return err
	}
	return s.repo.Delete(card.ID)
}
