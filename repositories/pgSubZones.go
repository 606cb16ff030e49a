package repositories

import (
	"irrigation-server/db"
	"irrigation-server/entities"
)

type subZonePgRepository struct {
	db db.Database
}

func NewSubZonePgRepository(database db.Database) SubZoneRepository {
	return &subZonePgRepository{db: database}
}

func (r *subZonePgRepository) GetByID(id uint) (*entities.SubZone, error) {
	var subZone entities.SubZone
	err := r.db.GetDB().
		Preload("PlantType").
		Preload("SoilType").
		Where("id = ?", id).First(&subZone).Error
	if err != nil {
		return nil, err
	}
	return &subZone, nil
}

func (r *subZonePgRepository) GetByZoneID(zoneID uint) ([]entities.SubZone, error) {
	var subZones []entities.SubZone
	err := r.db.GetDB().Where("zone_id = ?", zoneID).Order("subzone_index").Find(&subZones).Error
	return subZones, err
}

func (r *subZonePgRepository) Update(subZone *entities.SubZone) error {
	return r.db.GetDB().Save(subZone).Error
}
