package orm

import "time"

// ContractStatus represents the ingestion cursor of gorm table. It tracks
// the last chain position whose events have been fully applied for a
// bounty contract deployment.
type ContractStatus struct {
	ID              uint64 `gorm:"primary_key"`
	ContractAddress string
	ContractVersion uint
	LastBlock       uint64
	LastLogIndex    uint
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName change default table name
func (c ContractStatus) TableName() string {
	return "contract_status"
}
