package orm

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stage represents the lifecycle stage of a bounty.
type Stage uint8

const (
	StageDraft Stage = iota + 1
	StageActive
	StageDead
	StageCompleted
	StageExpired
)

var (
	stageValue = map[Stage]string{
		StageDraft:     "DRAFT",
		StageActive:    "ACTIVE",
		StageDead:      "DEAD",
		StageCompleted: "COMPLETED",
		StageExpired:   "EXPIRED",
	}

	stageType = map[string]Stage{
		"DRAFT":     StageDraft,
		"ACTIVE":    StageActive,
		"DEAD":      StageDead,
		"COMPLETED": StageCompleted,
		"EXPIRED":   StageExpired,
	}
)

// StrToStage converts stage string to stage type
func StrToStage(str string) Stage {
	if _, ok := stageType[str]; !ok {
		return 0
	}

	return stageType[str]
}

// String returns the string of bounty stage
func (s Stage) String() string {
	if _, ok := stageValue[s]; !ok {
		return "unknown"
	}

	return stageValue[s]
}

// Bounty is a gorm table definition represents the bounties.
// ID is the on-chain bounty sequence number used as primary key; it can
// differ from BountyID when the row is a child re-issue of an earlier
// bounty. All monetary columns are fixed-point decimals, token amounts are
// stored in the smallest token unit.
type Bounty struct {
	ID                uint64 `gorm:"primary_key"`
	BountyID          uint64 `gorm:"index"`
	ContractVersion   uint
	Issuer            string
	Arbiter           string
	PaysTokens        bool
	Deadline          *time.Time
	Stage             Stage
	Balance           decimal.Decimal `gorm:"type:decimal(65,0)"`
	OldBalance        decimal.Decimal `gorm:"type:decimal(65,0)"`
	FulfillmentAmount decimal.Decimal `gorm:"type:decimal(65,0)"`
	UsdPrice          decimal.Decimal `gorm:"type:decimal(40,8)"`
	TokenLockPrice    decimal.Decimal `gorm:"type:decimal(40,8)"`
	TokenSymbol       string
	TokenDecimals     uint
	TokenContract     string
	TokenID           *uint64
	DataHash          string
	DataJSON          string `gorm:"type:mediumtext"`
	Title             string
	Description       string `gorm:"type:mediumtext"`
	Categories        string
	SourceFileName    string
	SourceFileHash    string
	SourceDirHash     string
	WebReferenceURL   string
	IssuerName        string
	IssuerEmail       string
	IssuerGithub      string
	IssuerAddress     string
	UID               string `gorm:"column:uid"`
	BountyCreated     time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Token *Token `gorm:"foreignkey:TokenID"`
}
