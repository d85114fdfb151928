package models

// UserSkill is a skill card: a user's claim of possessing a skill, with a
// self-assessed rating. It is the unit that receives endorsements. A profile
// can claim a given skill at most once, enforced by the composite unique index.
type UserSkill struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProfileID  string  `json:"-" gorm:"type:varchar(36);not null;uniqueIndex:idx_profile_skill"`
	Profile    Profile `json:"-" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	SkillID    string  `json:"-" gorm:"type:varchar(36);not null;uniqueIndex:idx_profile_skill"`
	Skill      Skill   `json:"skill" gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE"`
	SelfRating int     `json:"self_rating" gorm:"not null;default:1"`
	IsPublic   bool    `json:"is_public" gorm:"not null"`
}

// OwnerID resolves the card's owning user through its profile. The profile
// association must be loaded.
func (us *UserSkill) OwnerID() string {
	return us.Profile.UserID
}
