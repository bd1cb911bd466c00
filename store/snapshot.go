package store

import (
	"time"
)

// Snapshot is the schemaless persistence record for a domain entity: the
// entity kind, its id, and a JSON snapshot of its current state. The core
// does not define a schema; this table is a key-value view the host can
// rehydrate or audit from.
type Snapshot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Kind      string    `gorm:"not null;uniqueIndex:idx_kind_ref" json:"kind"`
	RefID     string    `gorm:"not null;uniqueIndex:idx_kind_ref" json:"ref_id"`
	Data      string    `gorm:"type:text;not null" json:"data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Snapshot model
func (Snapshot) TableName() string {
	return "snapshots"
}

// Snapshot kinds
const (
	KindUser     = "user"
	KindMenuItem = "menu_item"
	KindOrder    = "order"
	KindFeedback = "feedback"
)
