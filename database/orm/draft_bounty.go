package orm

import "time"

// DraftBounty is a gorm table definition represents the draft_bounties.
// Drafts are created off-chain by the product API; once an issue event
// carrying the matching uid is indexed the draft is marked on-chain.
type DraftBounty struct {
	ID        uint64 `gorm:"primary_key"`
	UID       string `gorm:"column:uid;uniqueIndex"`
	Issuer    string
	Title     string
	OnChain   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
