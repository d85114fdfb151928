package models

import "time"

// Skill level choices for a profile's primary skill.
const (
	SkillLevelBeginner     = "B"
	SkillLevelIntermediate = "I"
	SkillLevelAdvanced     = "A"
)

// Profile holds the skill-domain extension of a User identity. It is created
// lazily on the user's first claimed skill, or explicitly via the profiles
// endpoint, and is deleted together with its user.
type Profile struct {
	ID                string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID            string      `json:"-" gorm:"uniqueIndex;type:varchar(36);not null"`
	User              User        `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Bio               string      `json:"bio,omitempty" validate:"omitempty,max=500"`
	Location          string      `json:"location,omitempty" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	ProfilePictureURL string      `json:"profile_picture_url,omitempty" validate:"omitempty,url"`
	PrimarySkill      string      `json:"primary_skill,omitempty" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	SkillLevel        string      `json:"skill_level,omitempty" gorm:"type:varchar(1)" validate:"omitempty,oneof=B I A"`
	ListedSkills      []UserSkill `json:"listed_skills" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// OwnerID returns the id of the user allowed to mutate this profile.
func (p *Profile) OwnerID() string {
	return p.UserID
}
