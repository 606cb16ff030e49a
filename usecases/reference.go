package usecases

import (
	"errors"

	"irrigation-server/entities"
	"irrigation-server/repositories"

	"gorm.io/gorm"
)

// ReferenceUseCase covers the plant and soil type catalogs.
type ReferenceUseCase struct {
	PlantTypeRepo repositories.PlantTypeRepository
	SoilTypeRepo  repositories.SoilTypeRepository
}

func NewReferenceUseCase(plantTypeRepo repositories.PlantTypeRepository, soilTypeRepo repositories.SoilTypeRepository) *ReferenceUseCase {
	return &ReferenceUseCase{PlantTypeRepo: plantTypeRepo, SoilTypeRepo: soilTypeRepo}
}

func (uc *ReferenceUseCase) GetAllPlantTypes() ([]entities.PlantType, error) {
	return uc.PlantTypeRepo.GetAll()
}

func (uc *ReferenceUseCase) GetPlantType(id uint) (*entities.PlantType, error) {
	pt, err := uc.PlantTypeRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return pt, nil
}

func (uc *ReferenceUseCase) CreatePlantType(pt *entities.PlantType) error {
	if pt.Name == "" {
		return errors.New("plant type name is required")
	}
	return uc.PlantTypeRepo.Create(pt)
}

func (uc *ReferenceUseCase) UpdatePlantType(id uint, incoming *entities.PlantType) (*entities.PlantType, error) {
	existing, err := uc.GetPlantType(id)
	if err != nil {
		return nil, err
	}
	existing.Name = incoming.Name
	existing.Description = incoming.Description
	existing.OptimalMoistureMin = incoming.OptimalMoistureMin
	existing.OptimalMoistureMax = incoming.OptimalMoistureMax
	if err := uc.PlantTypeRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (uc *ReferenceUseCase) DeletePlantType(id uint) error {
	if _, err := uc.GetPlantType(id); err != nil {
		return err
	}
	return uc.PlantTypeRepo.Delete(id)
}

func (uc *ReferenceUseCase) GetAllSoilTypes() ([]entities.SoilType, error) {
	return uc.SoilTypeRepo.GetAll()
}

func (uc *ReferenceUseCase) GetSoilType(id uint) (*entities.SoilType, error) {
	st, err := uc.SoilTypeRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return st, nil
}

func (uc *ReferenceUseCase) CreateSoilType(st *entities.SoilType) error {
	if st.Name == "" {
		return errors.New("soil type name is required")
	}
	return uc.SoilTypeRepo.Create(st)
}

func (uc *ReferenceUseCase) UpdateSoilType(id uint, incoming *entities.SoilType) (*entities.SoilType, error) {
	existing, err := uc.GetSoilType(id)
	if err != nil {
		return nil, err
	}
	existing.Name = incoming.Name
	existing.Description = incoming.Description
	if err := uc.SoilTypeRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (uc *ReferenceUseCase) DeleteSoilType(id uint) error {
	if _, err := uc.GetSoilType(id); err != nil {
		return err
	}
	return uc.SoilTypeRepo.Delete(id)
}
