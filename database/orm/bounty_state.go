package orm

import (
	"time"

	"github.com/shopspring/decimal"
)

// BountyState is a gorm table definition represents the bounty_states.
// Rows are append-only audit snapshots taken at every state-changing
// event and are never updated or deleted.
type BountyState struct {
	ID             uint64 `gorm:"primary_key"`
	BountyID       uint64 `gorm:"index"`
	Stage          Stage
	UsdPrice       decimal.Decimal `gorm:"type:decimal(40,8)"`
	TokenLockPrice decimal.Decimal `gorm:"type:decimal(40,8)"`
	RecordDate     time.Time
	CreatedAt      time.Time
}

// TableName change default table name
func (b BountyState) TableName() string {
	return "bounty_states"
}
