package services

import (
	"fmt"

	"skilllink/internal/models"
	"skilllink/internal/repositories"
)

// Search results and the unfiltered default listing are capped at this size.
const skillSearchLimit = 10

// SkillService handles business logic related to the global skill catalog.
type SkillService struct {
	repo repositories.SkillRepository
}

// NewSkillService creates a new SkillService.
func NewSkillService(repo repositories.SkillRepository) *SkillService {
	return &SkillService{
		repo: repo,
	}
}

// GetAllSkills retrieves the full skill catalog ordered by name.
func (s *SkillService) GetAllSkills() ([]models.Skill, error) {
	return s.repo.GetAll(0)
}

// GetSkillByID retrieves a single skill by its ID.
func (s *SkillService) GetSkillByID(id string) (*models.Skill, error) {
	return s.repo.GetByID(id)
}

// SearchSkills returns up to 10 skills whose name contains the query,
// case-insensitively. An empty query returns the first 10 skills in name order.
func (s *SkillService) SearchSkills(query string) ([]models.Skill, error) {
	if query == "" {
		return s.repo.GetAll(skillSearchLimit)
	}
	return s.repo.Search(query, skillSearchLimit)
}

// CreateSkill creates a new skill, optionally attached under a parent skill.
// The parent reference must resolve to an existing skill.
func (s *SkillService) CreateSkill(skill *models.Skill, parentSkillID string) (*models.Skill, error) {
	if parentSkillID != "" {
		parent, err := s.repo.GetByID(parentSkillID)
		if err != nil {
			return nil, fmt.Errorf("parent_skill_id does not resolve to an existing skill: %w", err)
		}
		skill.ParentSkillID = &parent.ID
	}
	if err := s.repo.Create(skill); err != nil {
		return nil, err
	}
	return s.repo.GetByID(skill.ID)
}

// DeleteSkill removes a skill from the catalog. Children and posts keep their
// rows with the reference nulled.
func (s *SkillService) DeleteSkill(id string) error {
	return s.repo.Delete(id)
}
