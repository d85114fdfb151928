package models

// Owned is implemented by every entity whose writes are restricted to a single
// owning user. Handlers and services check ownership through this interface
// instead of probing entity-specific fields.
type Owned interface {
	OwnerID() string
}

// Compile-time checks that every protected entity implements Owned.
var (
	_ Owned = (*Profile)(nil)
	_ Owned = (*UserSkill)(nil)
	_ Owned = (*Post)(nil)
	_ Owned = (*Endorsement)(nil)
)
