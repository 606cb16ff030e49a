package repositories

import (
	"time"

	"irrigation-server/entities"
)

type ZoneRepository interface {
	Create(zone *entities.Zone) error
	GetByID(id uint) (*entities.Zone, error)
	GetAll() ([]entities.Zone, error)
	GetByControllerUID(uid string) (*entities.Zone, error)
	Update(zone *entities.Zone) error
	Delete(id uint) error
}

type SubZoneRepository interface {
	GetByID(id uint) (*entities.SubZone, error)
	GetByZoneID(zoneID uint) ([]entities.SubZone, error)
	Update(subZone *entities.SubZone) error
}

type ReadingRepository interface {
	MoistureBySubZoneAsc(subZoneID uint) ([]entities.SoilMoistureReading, error)
	LatestMoistureBySubZone(subZoneID uint, limit int) ([]entities.SoilMoistureReading, error)
	LatestRecordedAtByZone(zoneID uint) (*time.Time, error)
}

type IrrigationRepository interface {
	CreateRequest(req *entities.ManualIrrigationRequest) error
	PendingBySubZone(subZoneID uint, since time.Time) ([]entities.ManualIrrigationRequest, error)
	MarkExecuted(ids []uint) error
	CreateHistory(h *entities.IrrigationHistory) error
	LatestHistoryBySubZone(subZoneID uint) (*entities.IrrigationHistory, error)
}

type PlantTypeRepository interface {
	Create(pt *entities.PlantType) error
	GetByID(id uint) (*entities.PlantType, error)
	GetAll() ([]entities.PlantType, error)
	Update(pt *entities.PlantType) error
	Delete(id uint) error
}

type SoilTypeRepository interface {
	Create(st *entities.SoilType) error
	GetByID(id uint) (*entities.SoilType, error)
	GetAll() ([]entities.SoilType, error)
	Update(st *entities.SoilType) error
	Delete(id uint) error
}

type UserRepository interface {
	Create(user *entities.User) error
	GetByID(id uint) (*entities.User, error)
	GetAll() ([]entities.User, error)
	GetByUsername(username string) (*entities.User, error)
	Update(user *entities.User) error
	Delete(id uint) error
	Roles() ([]entities.Role, error)
	RoleByID(id uint) (*entities.Role, error)
}

type DowntimeRepository interface {
	Create(d *entities.ControllerDowntime) error
	OpenByZone(zoneID uint) (*entities.ControllerDowntime, error)
	ResolveOpen(zoneID uint, at time.Time) error
	GetByZone(zoneID uint) ([]entities.ControllerDowntime, error)
}
