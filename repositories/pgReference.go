package repositories

import (
	"irrigation-server/db"
	"irrigation-server/entities"
)

type plantTypePgRepository struct {
	db db.Database
}

func NewPlantTypePgRepository(database db.Database) PlantTypeRepository {
	return &plantTypePgRepository{db: database}
}

func (r *plantTypePgRepository) Create(pt *entities.PlantType) error {
	return r.db.GetDB().Create(pt).Error
}

func (r *plantTypePgRepository) GetByID(id uint) (*entities.PlantType, error) {
	var pt entities.PlantType
	err := r.db.GetDB().Where("id = ?", id).First(&pt).Error
	if err != nil {
		return nil, err
	}
	return &pt, nil
}

func (r *plantTypePgRepository) GetAll() ([]entities.PlantType, error) {
	var pts []entities.PlantType
	err := r.db.GetDB().Order("id").Find(&pts).Error
	return pts, err
}

func (r *plantTypePgRepository) Update(pt *entities.PlantType) error {
	return r.db.GetDB().Save(pt).Error
}

func (r *plantTypePgRepository) Delete(id uint) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.PlantType{}).Error
}

type soilTypePgRepository struct {
	db db.Database
}

func NewSoilTypePgRepository(database db.Database) SoilTypeRepository {
	return &soilTypePgRepository{db: database}
}

func (r *soilTypePgRepository) Create(st *entities.SoilType) error {
	return r.db.GetDB().Create(st).Error
}

func (r *soilTypePgRepository) GetByID(id uint) (*entities.SoilType, error) {
	var st entities.SoilType
	err := r.db.GetDB().Where("id = ?", id).First(&st).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *soilTypePgRepository) GetAll() ([]entities.SoilType, error) {
	var sts []entities.SoilType
	err := r.db.GetDB().Order("id").Find(&sts).Error
	return sts, err
}

func (r *soilTypePgRepository) Update(st *entities.SoilType) error {
	return r.db.GetDB().Save(st).Error
}

func (r *soilTypePgRepository) Delete(id uint) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.SoilType{}).Error
}
