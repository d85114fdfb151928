package repositories

import (
	"errors"
	"fmt"
	"strings"

	"skilllink/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSkillRepository is a GORM implementation of SkillRepository.
type GORMSkillRepository struct {
	db *gorm.DB
}

// NewGORMSkillRepository creates a new instance of GORMSkillRepository.
func NewGORMSkillRepository(db *gorm.DB) *GORMSkillRepository {
	return &GORMSkillRepository{
		db: db,
	}
}

// Create creates a new skill in the database.
func (r *GORMSkillRepository) Create(skill *models.Skill) error {
	if skill.ID == "" {
		skill.ID = uuid.New().String()
	}
	if err := r.db.Create(skill).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("skill with name %s already exists", skill.Name)
		}
		return fmt.Errorf("failed to create skill: %w", err)
	}
	return nil
}

// GetAll retrieves skills ordered by name, up to limit (0 for no limit).
func (r *GORMSkillRepository) GetAll(limit int) ([]models.Skill, error) {
	var skills []models.Skill
	tx := r.db.Order("name")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&skills).Error; err != nil {
		return nil, fmt.Errorf("failed to get all skills: %w", err)
	}
	return skills, nil
}

// GetByID retrieves a single skill by its ID, with its parent skill loaded.
func (r *GORMSkillRepository) GetByID(id string) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.Preload("ParentSkill").First(&skill, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("skill with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get skill by ID %s: %w", id, err)
	}
	return &skill, nil
}

// Search returns skills whose name contains the query, case-insensitively,
// ordered by name and capped at limit.
func (r *GORMSkillRepository) Search(query string, limit int) ([]models.Skill, error) {
	var skills []models.Skill
	pattern := "%" + strings.ToLower(query) + "%"
	err := r.db.Where("LOWER(name) LIKE ?", pattern).Order("name").Limit(limit).Find(&skills).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search skills for %q: %w", query, err)
	}
	return skills, nil
}

// Delete removes a skill. Child skills and posts referencing it keep their rows
// with the reference nulled; skill cards for it are cascaded away.
func (r *GORMSkillRepository) Delete(id string) error {
	res := r.db.Delete(&models.Skill{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete skill: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("skill with ID %s not found for deletion", id)
	}
	return nil
}
