package entities

import "time"

// SubZone is an irrigable segment within a Zone, addressed by the
// controller through its local subzoneIndex. Like zones, subzones are
// created lazily when a reading references an unseen index.
type SubZone struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	ZoneID       uint   `gorm:"not null;uniqueIndex:idx_subzones_zone_index" json:"zoneId"`
	SubzoneIndex int    `gorm:"not null;uniqueIndex:idx_subzones_zone_index" json:"subzoneIndex"`
	Name         string `gorm:"size:100" json:"name"`
	ExtraInfo    string `gorm:"type:text" json:"extraInfo"`

	DefaultIrrigationDurationInSeconds int        `gorm:"default:60" json:"defaultIrrigationDurationInSeconds"`
	HasIrrigationIssue                 bool       `json:"hasIrrigationIssue"`
	LastIrrigationIssue                string     `gorm:"type:text" json:"lastIrrigationIssue"`
	PlantTypeID                        *uint      `json:"plantTypeId"`
	PlantType                          *PlantType `gorm:"constraint:OnDelete:SET NULL" json:"plantType"`
	SoilTypeID                         *uint      `json:"soilTypeId"`
	SoilType                           *SoilType  `gorm:"constraint:OnDelete:SET NULL" json:"soilType"`

	SoilMoistureReadings []SoilMoistureReading     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	RainSensorReadings   []RainSensorReading       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	IrrigationRequests   []ManualIrrigationRequest `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	IrrigationHistory    []IrrigationHistory       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// SoilMoistureReading is an append-only measurement for one subzone.
type SoilMoistureReading struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	SubZoneID       uint      `gorm:"not null;index" json:"subZoneId"`
	MoisturePercent int       `json:"moisturePercent"`
	RecordedAt      time.Time `gorm:"index" json:"recordedAt"`
}

// RainSensorReading records whether rain was detected at a subzone.
type RainSensorReading struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SubZoneID  uint      `gorm:"not null;index" json:"subZoneId"`
	Raining    bool      `json:"raining"`
	RecordedAt time.Time `json:"recordedAt"`
}
