package orm

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fulfillment is a gorm table definition represents the fulfillments.
// The unique index on (bounty_id, fulfillment_id) is the authoritative
// replay guard for duplicated fulfill events.
type Fulfillment struct {
	ID                 uint64 `gorm:"primary_key"`
	BountyID           uint64 `gorm:"uniqueIndex:uidx_bounty_fulfillment"`
	FulfillmentID      uint64 `gorm:"uniqueIndex:uidx_bounty_fulfillment"`
	Fulfiller          string
	Accepted           bool
	AcceptedDate       *time.Time
	UsdPrice           decimal.Decimal `gorm:"type:decimal(40,8)"`
	DataHash           string
	DataJSON           string `gorm:"type:mediumtext"`
	Description        string `gorm:"type:mediumtext"`
	SourceFileName     string
	SourceFileHash     string
	SourceDirHash      string
	FulfillerName      string
	FulfillerEmail     string
	FulfillerGithub    string
	FulfillerAddress   string
	FulfillmentCreated time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
