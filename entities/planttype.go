package entities

// PlantType is reference data describing the moisture band a crop
// prefers. OptimalMoistureMin drives the auto-irrigation trigger.
type PlantType struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	Name               string `gorm:"size:100" json:"name"`
	Description        string `gorm:"type:text" json:"description"`
	OptimalMoistureMin int    `json:"optimalMoistureMin"`
	OptimalMoistureMax int    `json:"optimalMoistureMax"`
}
