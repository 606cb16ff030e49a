package entities

import "time"

// TriggeredBy tells apart operator-initiated irrigation from requests
// the threshold evaluation created on its own.
type TriggeredBy string

const (
	TriggeredByAuto   TriggeredBy = "auto"
	TriggeredByManual TriggeredBy = "manual"
)

// ManualIrrigationRequest is a pending instruction for the controller
// to run irrigation on a subzone. Once a plan pull consumes it,
// Executed flips to true and the row is never touched again.
type ManualIrrigationRequest struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	SubZoneID       uint        `gorm:"not null;index" json:"subZoneId"`
	RequestedAt     time.Time   `json:"requestedAt"`
	DurationSeconds int         `gorm:"not null" json:"durationSeconds"`
	Executed        bool        `gorm:"default:false" json:"executed"`
	TriggeredBy     TriggeredBy `gorm:"size:10" json:"triggeredBy"`
}

// IrrigationHistory is the append-only audit record of irrigation runs.
type IrrigationHistory struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	SubZoneID       uint        `gorm:"not null;index" json:"subZoneId"`
	StartTime       time.Time   `gorm:"not null;index" json:"startTime"`
	EndTime         *time.Time  `json:"endTime"`
	DurationSeconds int         `json:"durationSeconds"`
	TriggeredBy     TriggeredBy `gorm:"size:10" json:"triggeredBy"`
}
