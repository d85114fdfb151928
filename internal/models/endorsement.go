package models

import "time"

// Endorsement is one user's attestation of another user's skill card. A user
// can endorse a given card only once, enforced by the composite unique index.
type Endorsement struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	EndorserID     string    `json:"-" gorm:"type:varchar(36);not null;uniqueIndex:idx_endorser_card"`
	Endorser       User      `json:"endorser" gorm:"foreignKey:EndorserID;constraint:OnDelete:CASCADE"`
	SkillCardID    string    `json:"-" gorm:"type:varchar(36);not null;uniqueIndex:idx_endorser_card"`
	SkillCard      UserSkill `json:"skill_card" gorm:"foreignKey:SkillCardID;constraint:OnDelete:CASCADE"`
	Comment        string    `json:"comment,omitempty"`
	EndorserRating *int      `json:"endorser_rating,omitempty"`
	EndorsedAt     time.Time `json:"endorsed_at" gorm:"autoCreateTime"`
}

// OwnerID returns the id of the user allowed to mutate this endorsement.
func (e *Endorsement) OwnerID() string {
	return e.EndorserID
}
