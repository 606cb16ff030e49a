package entities

import "time"

// ControllerDowntime marks a period during which a zone's controller
// stopped posting readings. Opened by the downtime monitor, resolved
// by the next successful ingestion.
type ControllerDowntime struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ZoneID     uint       `gorm:"not null;index" json:"zoneId"`
	DetectedAt time.Time  `gorm:"not null" json:"detectedAt"`
	ResolvedAt *time.Time `json:"resolvedAt"`
	Reason     string     `gorm:"type:text" json:"reason"`
}
