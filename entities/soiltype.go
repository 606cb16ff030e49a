package entities

// SoilType is reference data for the soil composition of a subzone.
type SoilType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}
