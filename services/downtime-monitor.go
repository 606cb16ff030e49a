package services

import (
	"log"
	"time"

	"irrigation-server/entities"
	"irrigation-server/repositories"
)

// DowntimeMonitor periodically checks every zone's latest reading and
// opens a downtime record when a controller has been silent longer
// than the configured threshold. Ingestion closes the record when the
// controller comes back.
type DowntimeMonitor struct {
	zoneRepo     repositories.ZoneRepository
	readingRepo  repositories.ReadingRepository
	downtimeRepo repositories.DowntimeRepository
	silenceAfter time.Duration
	interval     time.Duration
	loc          *time.Location
	stop         chan struct{}
}

func NewDowntimeMonitor(
	zoneRepo repositories.ZoneRepository,
	readingRepo repositories.ReadingRepository,
	downtimeRepo repositories.DowntimeRepository,
	silenceAfter, interval time.Duration,
	loc *time.Location,
) *DowntimeMonitor {
	return &DowntimeMonitor{
		zoneRepo:     zoneRepo,
		readingRepo:  readingRepo,
		downtimeRepo: downtimeRepo,
		silenceAfter: silenceAfter,
		interval:     interval,
		loc:          loc,
	}
}

// Start sweeps on the configured interval until Stop is called.
func (m *DowntimeMonitor) Start() {
	m.stop = make(chan struct{})
	stop := m.stop
	ticker := time.NewTicker(m.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.CheckOnce()
			case <-stop:
				return
			}
		}
	}()
}

// Stop ends the sweep goroutine. Safe to call more than once.
func (m *DowntimeMonitor) Stop() {
	if m.stop != nil {
		close(m.stop)
		m.stop = nil
	}
}

// CheckOnce runs a single sweep over all zones.
func (m *DowntimeMonitor) CheckOnce() {
	zones, err := m.zoneRepo.GetAll()
	if err != nil {
		log.Printf("downtime sweep: failed to list zones: %v", err)
		return
	}

	now := time.Now().In(m.loc)
	for _, zone := range zones {
		latest, err := m.readingRepo.LatestRecordedAtByZone(zone.ID)
		if err != nil {
			log.Printf("downtime sweep: zone %d: %v", zone.ID, err)
			continue
		}
		// Zones that never reported are not treated as down; there is
		// nothing to compare silence against.
		if latest == nil {
			continue
		}
		if now.Sub(*latest) < m.silenceAfter {
			continue
		}

		open, err := m.downtimeRepo.OpenByZone(zone.ID)
		if err != nil {
			log.Printf("downtime sweep: zone %d: %v", zone.ID, err)
			continue
		}
		if open != nil {
			continue
		}

		downtime := entities.ControllerDowntime{
			ZoneID:     zone.ID,
			DetectedAt: now,
			Reason:     "no sensor readings since " + latest.Format(time.RFC3339),
		}
		if err := m.downtimeRepo.Create(&downtime); err != nil {
			log.Printf("downtime sweep: zone %d: %v", zone.ID, err)
			continue
		}
		log.Printf("controller for zone %d (%s) flagged as down, last reading %s",
			zone.ID, zone.ControllerUID, latest.Format(time.RFC3339))
	}
}
