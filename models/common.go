package models

import "time"

// Timestamps is embedded by every persisted entity, mirroring the teacher's
// BaseModel convention (original_source/common/models.py's created_at/updated_at pair).
type Timestamps struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
