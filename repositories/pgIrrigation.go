package repositories

import (
	"time"

	"irrigation-server/db"
	"irrigation-server/entities"

	"gorm.io/gorm"
)

type irrigationPgRepository struct {
	db db.Database
}

func NewIrrigationPgRepository(database db.Database) IrrigationRepository {
	return &irrigationPgRepository{db: database}
}

func (r *irrigationPgRepository) CreateRequest(req *entities.ManualIrrigationRequest) error {
	return r.db.GetDB().Create(req).Error
}

// PendingBySubZone returns unexecuted requests newer than since,
// oldest first.
func (r *irrigationPgRepository) PendingBySubZone(subZoneID uint, since time.Time) ([]entities.ManualIrrigationRequest, error) {
	var requests []entities.ManualIrrigationRequest
	err := r.db.GetDB().
		Where("sub_zone_id = ? AND executed = ? AND requested_at > ?", subZoneID, false, since).
		Order("requested_at ASC").Find(&requests).Error
	return requests, err
}

func (r *irrigationPgRepository) MarkExecuted(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.GetDB().Model(&entities.ManualIrrigationRequest{}).
		Where("id IN ?", ids).Update("executed", true).Error
}

func (r *irrigationPgRepository) CreateHistory(h *entities.IrrigationHistory) error {
	return r.db.GetDB().Create(h).Error
}

func (r *irrigationPgRepository) LatestHistoryBySubZone(subZoneID uint) (*entities.IrrigationHistory, error) {
	var history entities.IrrigationHistory
	err := r.db.GetDB().Where("sub_zone_id = ?", subZoneID).
		Order("start_time DESC").First(&history).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &history, nil
}
