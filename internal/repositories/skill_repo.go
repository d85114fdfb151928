package repositories

import "skilllink/internal/models"

// SkillRepository defines the interface for skill data access.
type SkillRepository interface {
	Create(skill *models.Skill) error
	GetAll(limit int) ([]models.Skill, error)
	GetByID(id string) (*models.Skill, error)
	Search(query string, limit int) ([]models.Skill, error)
	Delete(id string) error
}
