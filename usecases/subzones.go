package usecases

import (
	"errors"
	"fmt"
	"time"

	"irrigation-server/entities"
	"irrigation-server/repositories"

	"gorm.io/gorm"
)

var ErrUnknownPlantType = errors.New("unknown plant type id")
var ErrUnknownSoilType = errors.New("unknown soil type id")
var ErrInvalidDuration = errors.New("irrigation duration must be positive")

// SubZoneUpdate carries the editable subzone fields. Nil type ids
// clear the association.
type SubZoneUpdate struct {
	Name                               string `json:"name"`
	ExtraInfo                          string `json:"extraInfo"`
	DefaultIrrigationDurationInSeconds int    `json:"defaultIrrigationDurationInSeconds"`
	PlantTypeID                        *uint  `json:"plantTypeId"`
	SoilTypeID                         *uint  `json:"soilTypeId"`
}

type MoisturePoint struct {
	RecordedAt          time.Time `json:"recordedAt"`
	SoilMoisturePercent int       `json:"soilMoisturePercent"`
}

// SubZoneUseCase covers subzone editing, reading history and the
// manual irrigation triggers.
type SubZoneUseCase struct {
	SubZoneRepo    repositories.SubZoneRepository
	ReadingRepo    repositories.ReadingRepository
	IrrigationRepo repositories.IrrigationRepository
	PlantTypeRepo  repositories.PlantTypeRepository
	SoilTypeRepo   repositories.SoilTypeRepository
	loc            *time.Location
}

func NewSubZoneUseCase(
	subZoneRepo repositories.SubZoneRepository,
	readingRepo repositories.ReadingRepository,
	irrigationRepo repositories.IrrigationRepository,
	plantTypeRepo repositories.PlantTypeRepository,
	soilTypeRepo repositories.SoilTypeRepository,
	loc *time.Location,
) *SubZoneUseCase {
	return &SubZoneUseCase{
		SubZoneRepo:    subZoneRepo,
		ReadingRepo:    readingRepo,
		IrrigationRepo: irrigationRepo,
		PlantTypeRepo:  plantTypeRepo,
		SoilTypeRepo:   soilTypeRepo,
		loc:            loc,
	}
}

func (uc *SubZoneUseCase) GetSubZone(id uint) (*entities.SubZone, error) {
	subZone, err := uc.SubZoneRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return subZone, nil
}

// UpdateSubZone applies the editable fields, re-resolving the plant and
// soil type ids. A supplied id that doesn't exist rejects the whole
// update.
func (uc *SubZoneUseCase) UpdateSubZone(id uint, update SubZoneUpdate) (*entities.SubZone, error) {
	existing, err := uc.GetSubZone(id)
	if err != nil {
		return nil, err
	}

	existing.Name = update.Name
	existing.ExtraInfo = update.ExtraInfo
	existing.DefaultIrrigationDurationInSeconds = update.DefaultIrrigationDurationInSeconds

	if update.PlantTypeID != nil {
		plant, err := uc.PlantTypeRepo.GetByID(*update.PlantTypeID)
		if err != nil {
			return nil, fmt.Errorf("%w: %d", ErrUnknownPlantType, *update.PlantTypeID)
		}
		existing.PlantTypeID = &plant.ID
		existing.PlantType = plant
	} else {
		existing.PlantTypeID = nil
		existing.PlantType = nil
	}

	if update.SoilTypeID != nil {
		soil, err := uc.SoilTypeRepo.GetByID(*update.SoilTypeID)
		if err != nil {
			return nil, fmt.Errorf("%w: %d", ErrUnknownSoilType, *update.SoilTypeID)
		}
		existing.SoilTypeID = &soil.ID
		existing.SoilType = soil
	} else {
		existing.SoilTypeID = nil
		existing.SoilType = nil
	}

	if err := uc.SubZoneRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// FixIssue clears the irrigation issue flag after an operator resolved
// whatever the controller reported.
func (uc *SubZoneUseCase) FixIssue(id uint) (*entities.SubZone, error) {
	existing, err := uc.GetSubZone(id)
	if err != nil {
		return nil, err
	}
	existing.HasIrrigationIssue = false
	existing.LastIrrigationIssue = ""
	if err := uc.SubZoneRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// SoilReadings returns the full moisture series, oldest first.
func (uc *SubZoneUseCase) SoilReadings(id uint) ([]MoisturePoint, error) {
	if _, err := uc.GetSubZone(id); err != nil {
		return nil, err
	}
	readings, err := uc.ReadingRepo.MoistureBySubZoneAsc(id)
	if err != nil {
		return nil, err
	}
	points := make([]MoisturePoint, len(readings))
	for i, r := range readings {
		points[i] = MoisturePoint{RecordedAt: r.RecordedAt, SoilMoisturePercent: r.MoisturePercent}
	}
	return points, nil
}

// MoistureHistory returns the latest readings, newest first.
func (uc *SubZoneUseCase) MoistureHistory(id uint, limit int) ([]entities.SoilMoistureReading, error) {
	if _, err := uc.GetSubZone(id); err != nil {
		return nil, err
	}
	return uc.ReadingRepo.LatestMoistureBySubZone(id, limit)
}

// TriggerIrrigation writes a manual request with an explicit duration.
// Manual intent overrides the auto debounce, so there is no check
// against existing pending requests.
func (uc *SubZoneUseCase) TriggerIrrigation(id uint, durationSeconds int) (*entities.ManualIrrigationRequest, error) {
	if durationSeconds <= 0 {
		return nil, ErrInvalidDuration
	}
	subZone, err := uc.GetSubZone(id)
	if err != nil {
		return nil, err
	}
	request := entities.ManualIrrigationRequest{
		SubZoneID:       subZone.ID,
		RequestedAt:     time.Now().In(uc.loc),
		DurationSeconds: durationSeconds,
		TriggeredBy:     entities.TriggeredByManual,
	}
	if err := uc.IrrigationRepo.CreateRequest(&request); err != nil {
		return nil, err
	}
	return &request, nil
}

// TriggerDefaultIrrigation uses the subzone's configured duration.
func (uc *SubZoneUseCase) TriggerDefaultIrrigation(id uint) (*entities.ManualIrrigationRequest, error) {
	subZone, err := uc.GetSubZone(id)
	if err != nil {
		return nil, err
	}
	return uc.TriggerIrrigation(id, subZone.DefaultIrrigationDurationInSeconds)
}
