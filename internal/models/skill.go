package models

// Skill is a globally defined skill (e.g. "Python", "Public Speaking") that users
// can claim and endorse. Skills may form a hierarchy through ParentSkill; deleting
// a parent nulls the children's reference instead of cascading.
type Skill struct {
	ID            string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name          string  `json:"name" gorm:"uniqueIndex;type:varchar(100);not null"`
	Description   string  `json:"description,omitempty"`
	Category      string  `json:"category,omitempty" gorm:"type:varchar(50)"`
	ParentSkillID *string `json:"parent_skill_id,omitempty" gorm:"type:varchar(36)"`
	ParentSkill   *Skill  `json:"parent_skill,omitempty" gorm:"foreignKey:ParentSkillID;constraint:OnDelete:SET NULL"`
}
