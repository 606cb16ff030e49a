package repositories

import (
	"time"

	"irrigation-server/db"
	"irrigation-server/entities"

	"gorm.io/gorm"
)

type readingPgRepository struct {
	db db.Database
}

func NewReadingPgRepository(database db.Database) ReadingRepository {
	return &readingPgRepository{db: database}
}

func (r *readingPgRepository) MoistureBySubZoneAsc(subZoneID uint) ([]entities.SoilMoistureReading, error) {
	var readings []entities.SoilMoistureReading
	err := r.db.GetDB().Where("sub_zone_id = ?", subZoneID).Order("recorded_at ASC").Find(&readings).Error
	return readings, err
}

func (r *readingPgRepository) LatestMoistureBySubZone(subZoneID uint, limit int) ([]entities.SoilMoistureReading, error) {
	var readings []entities.SoilMoistureReading
	err := r.db.GetDB().Where("sub_zone_id = ?", subZoneID).
		Order("recorded_at DESC").Limit(limit).Find(&readings).Error
	return readings, err
}

// LatestRecordedAtByZone returns the newest moisture timestamp across
// all subzones of a zone, or nil when the zone has no readings yet.
func (r *readingPgRepository) LatestRecordedAtByZone(zoneID uint) (*time.Time, error) {
	var reading entities.SoilMoistureReading
	err := r.db.GetDB().
		Joins("JOIN sub_zones ON sub_zones.id = soil_moisture_readings.sub_zone_id").
		Where("sub_zones.zone_id = ?", zoneID).
		Order("soil_moisture_readings.recorded_at DESC").
		First(&reading).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reading.RecordedAt, nil
}
