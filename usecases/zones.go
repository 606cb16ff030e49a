package usecases

import (
	"errors"

	"irrigation-server/entities"
	"irrigation-server/repositories"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// ZoneUseCase covers the zone directory plus its downtime log.
type ZoneUseCase struct {
	ZoneRepo     repositories.ZoneRepository
	DowntimeRepo repositories.DowntimeRepository
}

func NewZoneUseCase(zoneRepo repositories.ZoneRepository, downtimeRepo repositories.DowntimeRepository) *ZoneUseCase {
	return &ZoneUseCase{ZoneRepo: zoneRepo, DowntimeRepo: downtimeRepo}
}

func (uc *ZoneUseCase) GetAllZones() ([]entities.Zone, error) {
	return uc.ZoneRepo.GetAll()
}

func (uc *ZoneUseCase) GetZone(id uint) (*entities.Zone, error) {
	zone, err := uc.ZoneRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return zone, nil
}

// UpdateZone overwrites the editable fields; controller uid and the
// subzone set are not touched here. Nil coordinates mean "leave
// unchanged" so a payload without them cannot wipe a placed zone.
func (uc *ZoneUseCase) UpdateZone(id uint, incoming *entities.Zone) (*entities.Zone, error) {
	existing, err := uc.GetZone(id)
	if err != nil {
		return nil, err
	}

	existing.Name = incoming.Name
	if incoming.Latitude != nil {
		existing.Latitude = incoming.Latitude
	}
	if incoming.Longitude != nil {
		existing.Longitude = incoming.Longitude
	}
	existing.ExtraInfo = incoming.ExtraInfo

	if err := uc.ZoneRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteZone removes the zone; subzones and their readings, requests
// and history go with it through the cascade constraints.
func (uc *ZoneUseCase) DeleteZone(id uint) error {
	if _, err := uc.GetZone(id); err != nil {
		return err
	}
	return uc.ZoneRepo.Delete(id)
}

func (uc *ZoneUseCase) GetDowntimes(zoneID uint) ([]entities.ControllerDowntime, error) {
	if _, err := uc.GetZone(zoneID); err != nil {
		return nil, err
	}
	return uc.DowntimeRepo.GetByZone(zoneID)
}
