package types

import (
	"time"
)

// BaseModel carries the audit timestamps shared by all persisted entities.
// Any changes to this model should be reflected in the store schema by
// adding a migration.
type BaseModel struct {
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func GetDefaultBaseModel() BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		CreatedAt: now,
		UpdatedAt: now,
	}
}
