package usecases

import (
	"errors"
	"time"

	"irrigation-server/db"
	"irrigation-server/entities"
	"irrigation-server/repositories"

	"gorm.io/gorm"
)

// SensorBatch is one POST from a controller: its uid plus a reading
// per subzone it serves.
type SensorBatch struct {
	ControllerUID string           `json:"controllerUid" binding:"required"`
	SubZones      []SubzoneReading `json:"subZones" binding:"required"`
}

type SubzoneReading struct {
	SubzoneIndex        int  `json:"subzoneIndex"`
	SoilMoisturePercent int  `json:"soilMoisturePercent"`
	RainDetected        bool `json:"rainDetected"`
}

// SubZonePlan is the planned irrigation duration reported back to the
// controller for one subzone.
type SubZonePlan struct {
	SubzoneIndex                       int `json:"subzoneIndex"`
	PlannedIrrigationDurationInSeconds int `json:"plannedIrrigationDurationInSeconds"`
}

// ReadingEvent is pushed to live feed subscribers after a batch commits.
type ReadingEvent struct {
	ControllerUID   string    `json:"controllerUid"`
	SubzoneIndex    int       `json:"subzoneIndex"`
	MoisturePercent int       `json:"moisturePercent"`
	RainDetected    bool      `json:"rainDetected"`
	RecordedAt      time.Time `json:"recordedAt"`
}

// ReadingBroadcaster fans a reading event out to connected dashboards.
type ReadingBroadcaster interface {
	BroadcastReading(event ReadingEvent)
}

var ErrInvalidSensorData = errors.New("sensor data request must carry a controller uid and at least one subzone reading")

// Windows for the auto-trigger debounce and the plan pull.
const (
	pendingRequestWindow = 24 * time.Hour
	recentHistoryWindow  = time.Hour
)

// IngestUseCase handles sensor batches from controllers: it upserts
// the zone/subzone hierarchy, records readings, evaluates the
// auto-irrigation policy and computes planned irrigation for the
// controller to execute.
type IngestUseCase struct {
	db   db.Database
	loc  *time.Location
	feed ReadingBroadcaster
}

func NewIngestUseCase(database db.Database, loc *time.Location, feed ReadingBroadcaster) *IngestUseCase {
	return &IngestUseCase{db: database, loc: loc, feed: feed}
}

// now returns the current time in the configured irrigation time zone.
// Readings are stamped in local wall-clock time, matching the fields
// the controllers and the dashboard expect.
func (uc *IngestUseCase) now() time.Time {
	return time.Now().In(uc.loc)
}

// Ingest processes one sensor batch. The whole batch commits or rolls
// back as a unit: zone and subzone upserts, both readings per entry and
// any auto-triggered irrigation requests. Repository access inside the
// transaction goes through repositories bound to the tx handle.
func (uc *IngestUseCase) Ingest(batch SensorBatch) error {
	if batch.ControllerUID == "" || len(batch.SubZones) == 0 {
		return ErrInvalidSensorData
	}

	now := uc.now()
	var events []ReadingEvent

	err := uc.db.GetDB().Transaction(func(tx *gorm.DB) error {
		txDB := &db.GormDatabase{DB: tx}
		zoneRepo := repositories.NewZonePgRepository(txDB)
		plantTypeRepo := repositories.NewPlantTypePgRepository(txDB)
		irrigationRepo := repositories.NewIrrigationPgRepository(txDB)
		downtimeRepo := repositories.NewDowntimePgRepository(txDB)

		zone, err := findOrCreateZone(zoneRepo, batch.ControllerUID)
		if err != nil {
			return err
		}

		for _, entry := range batch.SubZones {
			subZone, err := findOrCreateSubZone(tx, zone.ID, entry.SubzoneIndex)
			if err != nil {
				return err
			}

			rain := entities.RainSensorReading{
				SubZoneID:  subZone.ID,
				Raining:    entry.RainDetected,
				RecordedAt: now,
			}
			if err := tx.Create(&rain).Error; err != nil {
				return err
			}

			moisture := entities.SoilMoistureReading{
				SubZoneID:       subZone.ID,
				MoisturePercent: entry.SoilMoisturePercent,
				RecordedAt:      now,
			}
			if err := tx.Create(&moisture).Error; err != nil {
				return err
			}

			if err := evaluateAutoTrigger(plantTypeRepo, irrigationRepo, subZone, entry, now); err != nil {
				return err
			}

			events = append(events, ReadingEvent{
				ControllerUID:   batch.ControllerUID,
				SubzoneIndex:    entry.SubzoneIndex,
				MoisturePercent: entry.SoilMoisturePercent,
				RainDetected:    entry.RainDetected,
				RecordedAt:      now,
			})
		}

		// A batch arriving means the controller is back; close any open
		// downtime window for its zone.
		return downtimeRepo.ResolveOpen(zone.ID, now)
	})
	if err != nil {
		return err
	}

	if uc.feed != nil {
		for _, event := range events {
			uc.feed.BroadcastReading(event)
		}
	}
	return nil
}

// evaluateAutoTrigger applies the threshold + debounce policy for one
// subzone. A request is created only when moisture is below the plant's
// minimum and no suppressing condition holds: rain right now, a flagged
// irrigation issue, a pending request, or a run within the last hour.
func evaluateAutoTrigger(
	plantTypeRepo repositories.PlantTypeRepository,
	irrigationRepo repositories.IrrigationRepository,
	subZone *entities.SubZone,
	entry SubzoneReading,
	now time.Time,
) error {
	if subZone.PlantTypeID == nil {
		return nil
	}

	plant, err := plantTypeRepo.GetByID(*subZone.PlantTypeID)
	if err != nil {
		return err
	}
	if entry.SoilMoisturePercent >= plant.OptimalMoistureMin {
		return nil
	}

	if entry.RainDetected || subZone.HasIrrigationIssue {
		return nil
	}

	pending, err := irrigationRepo.PendingBySubZone(subZone.ID, now.Add(-pendingRequestWindow))
	if err != nil {
		return err
	}
	if len(pending) > 0 {
		return nil
	}

	lastRun, err := irrigationRepo.LatestHistoryBySubZone(subZone.ID)
	if err != nil {
		return err
	}
	if lastRun != nil && lastRun.StartTime.After(now.Add(-recentHistoryWindow)) {
		return nil
	}

	request := entities.ManualIrrigationRequest{
		SubZoneID:       subZone.ID,
		RequestedAt:     now,
		DurationSeconds: subZone.DefaultIrrigationDurationInSeconds,
		TriggeredBy:     entities.TriggeredByAuto,
	}
	return irrigationRepo.CreateRequest(&request)
}

// PlannedIrrigation computes the plan for every subzone of the zone
// behind controllerUID. For each subzone the most recent pending
// request wins; its duration is reported and historized, then every
// pending request is marked executed. Earlier queued requests are
// dropped without a history row -- a carried-over defect, see the
// known limitations in the README.
func (uc *IngestUseCase) PlannedIrrigation(controllerUID string) ([]SubZonePlan, error) {
	now := uc.now()
	var plans []SubZonePlan

	err := uc.db.GetDB().Transaction(func(tx *gorm.DB) error {
		txDB := &db.GormDatabase{DB: tx}
		zoneRepo := repositories.NewZonePgRepository(txDB)
		subZoneRepo := repositories.NewSubZonePgRepository(txDB)
		irrigationRepo := repositories.NewIrrigationPgRepository(txDB)

		zone, err := zoneRepo.GetByControllerUID(controllerUID)
		if err != nil {
			return err
		}

		subZones, err := subZoneRepo.GetByZoneID(zone.ID)
		if err != nil {
			return err
		}

		for _, subZone := range subZones {
			pending, err := irrigationRepo.PendingBySubZone(subZone.ID, now.Add(-pendingRequestWindow))
			if err != nil {
				return err
			}

			duration := 0
			if len(pending) > 0 {
				last := pending[len(pending)-1]
				duration = last.DurationSeconds

				history := entities.IrrigationHistory{
					SubZoneID:       subZone.ID,
					StartTime:       now,
					DurationSeconds: last.DurationSeconds,
					TriggeredBy:     last.TriggeredBy,
				}
				if err := irrigationRepo.CreateHistory(&history); err != nil {
					return err
				}

				ids := make([]uint, len(pending))
				for i, req := range pending {
					ids[i] = req.ID
				}
				if err := irrigationRepo.MarkExecuted(ids); err != nil {
					return err
				}
			}

			plans = append(plans, SubZonePlan{
				SubzoneIndex:                       subZone.SubzoneIndex,
				PlannedIrrigationDurationInSeconds: duration,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func findOrCreateZone(zoneRepo repositories.ZoneRepository, controllerUID string) (*entities.Zone, error) {
	zone, err := zoneRepo.GetByControllerUID(controllerUID)
	if err == nil {
		return zone, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	// The unique index on controller_uid makes the loser of a
	// concurrent first-seen race fail its transaction instead of
	// creating a duplicate.
	created := entities.Zone{ControllerUID: controllerUID}
	if err := zoneRepo.Create(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

func findOrCreateSubZone(tx *gorm.DB, zoneID uint, index int) (*entities.SubZone, error) {
	var subZone entities.SubZone
	err := tx.Where("zone_id = ? AND subzone_index = ?", zoneID, index).First(&subZone).Error
	if err == nil {
		return &subZone, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	subZone = entities.SubZone{ZoneID: zoneID, SubzoneIndex: index}
	if err := tx.Create(&subZone).Error; err != nil {
		return nil, err
	}
	return &subZone, nil
}
