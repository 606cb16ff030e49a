package repositories

import (
	"time"

	"irrigation-server/db"
	"irrigation-server/entities"

	"gorm.io/gorm"
)

type downtimePgRepository struct {
	db db.Database
}

func NewDowntimePgRepository(database db.Database) DowntimeRepository {
	return &downtimePgRepository{db: database}
}

func (r *downtimePgRepository) Create(d *entities.ControllerDowntime) error {
	return r.db.GetDB().Create(d).Error
}

func (r *downtimePgRepository) OpenByZone(zoneID uint) (*entities.ControllerDowntime, error) {
	var d entities.ControllerDowntime
	err := r.db.GetDB().Where("zone_id = ? AND resolved_at IS NULL", zoneID).First(&d).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *downtimePgRepository) ResolveOpen(zoneID uint, at time.Time) error {
	return r.db.GetDB().Model(&entities.ControllerDowntime{}).
		Where("zone_id = ? AND resolved_at IS NULL", zoneID).
		Update("resolved_at", at).Error
}

func (r *downtimePgRepository) GetByZone(zoneID uint) ([]entities.ControllerDowntime, error) {
	var downtimes []entities.ControllerDowntime
	err := r.db.GetDB().Where("zone_id = ?", zoneID).Order("detected_at DESC").Find(&downtimes).Error
	return downtimes, err
}
