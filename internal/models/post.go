package models

import "time"

// Post is a short status update from a user, optionally linked to a skill.
// Deleting the linked skill nulls the reference; deleting the author removes
// the post.
type Post struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	AuthorID       string    `json:"-" gorm:"type:varchar(36);not null;index"`
	Author         User      `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Content        string    `json:"content" gorm:"not null"`
	RelatedSkillID *string   `json:"-" gorm:"type:varchar(36)"`
	RelatedSkill   *Skill    `json:"related_skill,omitempty" gorm:"foreignKey:RelatedSkillID;constraint:OnDelete:SET NULL"`
	CreatedAt      time.Time `json:"created_at"`
}

// OwnerID returns the id of the user allowed to mutate this post.
func (p *Post) OwnerID() string {
	return p.AuthorID
}
