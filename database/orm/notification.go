package orm

import "time"

// Notification is a gorm table definition represents the notifications.
// UID is a deterministic dedupe key derived from the event identity so a
// redelivered event never produces a second row.
type Notification struct {
	ID            uint64 `gorm:"primary_key"`
	UID           string `gorm:"column:uid;uniqueIndex"`
	Type          string `gorm:"type:varchar(3)"`
	Recipient     string
	FromUser      string
	BountyID      uint64 `gorm:"index"`
	FulfillmentID *uint64
	StringData    string
	Subject       string
	Date          time.Time
	CreatedAt     time.Time
}

// Activity is a gorm table definition represents the activities feed.
// UID mirrors the notification dedupe key so a replayed event never
// double-appends the feed.
type Activity struct {
	ID            uint64 `gorm:"primary_key"`
	UID           string `gorm:"column:uid;uniqueIndex"`
	Type          string `gorm:"type:varchar(3)"`
	User          string `gorm:"index"`
	BountyID      uint64 `gorm:"index"`
	FulfillmentID *uint64
	Date          time.Time
	CreatedAt     time.Time
}

// TableName change default table name
func (a Activity) TableName() string {
	return "activities"
}
