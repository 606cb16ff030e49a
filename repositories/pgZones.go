package repositories

import (
	"irrigation-server/db"
	"irrigation-server/entities"
)

type zonePgRepository struct {
	db db.Database
}

func NewZonePgRepository(database db.Database) ZoneRepository {
	return &zonePgRepository{db: database}
}

func (r *zonePgRepository) Create(zone *entities.Zone) error {
	return r.db.GetDB().Create(zone).Error
}

func (r *zonePgRepository) GetByID(id uint) (*entities.Zone, error) {
	var zone entities.Zone
	err := r.db.GetDB().
		Preload("SubZones").
		Preload("SubZones.PlantType").
		Preload("SubZones.SoilType").
		Where("id = ?", id).First(&zone).Error
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *zonePgRepository) GetAll() ([]entities.Zone, error) {
	var zones []entities.Zone
	err := r.db.GetDB().
		Preload("SubZones").
		Preload("SubZones.PlantType").
		Preload("SubZones.SoilType").
		Order("id").Find(&zones).Error
	return zones, err
}

func (r *zonePgRepository) GetByControllerUID(uid string) (*entities.Zone, error) {
	var zone entities.Zone
	err := r.db.GetDB().Preload("SubZones").Where("controller_uid = ?", uid).First(&zone).Error
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *zonePgRepository) Update(zone *entities.Zone) error {
	return r.db.GetDB().Save(zone).Error
}

func (r *zonePgRepository) Delete(id uint) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.Zone{}).Error
}
