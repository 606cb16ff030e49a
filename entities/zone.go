package entities

// Zone is a physical irrigation site served by one controller device.
// It is created on the fly the first time an unknown controller posts
// sensor data.
type Zone struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:100" json:"name"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	ControllerUID string    `gorm:"column:controller_uid;size:100;not null;uniqueIndex" json:"controllerUid"`
	ExtraInfo     string    `gorm:"type:text" json:"extraInfo"`
	SubZones      []SubZone `gorm:"constraint:OnDelete:CASCADE" json:"subZones"`
}
