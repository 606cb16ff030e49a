package services

import (
	"strings"
	"testing"
	"time"

	"irrigation-server/db"
	"irrigation-server/entities"
	"irrigation-server/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMonitorTestDB(t *testing.T) db.Database {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	database, err := db.OpenSQLite("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	return database
}

func newMonitor(database db.Database, silenceAfter time.Duration) *DowntimeMonitor {
	return NewDowntimeMonitor(
		repositories.NewZonePgRepository(database),
		repositories.NewReadingPgRepository(database),
		repositories.NewDowntimePgRepository(database),
		silenceAfter,
		time.Minute,
		time.UTC,
	)
}

func seedZoneWithReading(t *testing.T, database db.Database, uid string, recordedAt time.Time) *entities.Zone {
	t.Helper()
	zone := entities.Zone{ControllerUID: uid, Name: uid}
	require.NoError(t, database.GetDB().Create(&zone).Error)
	subZone := entities.SubZone{ZoneID: zone.ID, SubzoneIndex: 0}
	require.NoError(t, database.GetDB().Create(&subZone).Error)
	reading := entities.SoilMoistureReading{
		SubZoneID:       subZone.ID,
		MoisturePercent: 50,
		RecordedAt:      recordedAt,
	}
	require.NoError(t, database.GetDB().Create(&reading).Error)
	return &zone
}

func openDowntimes(t *testing.T, database db.Database, zoneID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, database.GetDB().Model(&entities.ControllerDowntime{}).
		Where("zone_id = ? AND resolved_at IS NULL", zoneID).Count(&count).Error)
	return count
}

func TestCheckOnceFlagsSilentZone(t *testing.T) {
	database := newMonitorTestDB(t)
	zone := seedZoneWithReading(t, database, "esp-silent", time.Now().UTC().Add(-2*time.Hour))

	newMonitor(database, 30*time.Minute).CheckOnce()

	assert.EqualValues(t, 1, openDowntimes(t, database, zone.ID))

	var downtime entities.ControllerDowntime
	require.NoError(t, database.GetDB().Where("zone_id = ?", zone.ID).First(&downtime).Error)
	assert.Contains(t, downtime.Reason, "no sensor readings since")
}

func TestCheckOnceSkipsFreshZone(t *testing.T) {
	database := newMonitorTestDB(t)
	zone := seedZoneWithReading(t, database, "esp-fresh", time.Now().UTC().Add(-time.Minute))

	newMonitor(database, 30*time.Minute).CheckOnce()

	assert.Zero(t, openDowntimes(t, database, zone.ID))
}

func TestCheckOnceSkipsZoneThatNeverReported(t *testing.T) {
	database := newMonitorTestDB(t)
	zone := entities.Zone{ControllerUID: "esp-new", Name: "esp-new"}
	require.NoError(t, database.GetDB().Create(&zone).Error)

	newMonitor(database, 30*time.Minute).CheckOnce()

	assert.Zero(t, openDowntimes(t, database, zone.ID))
}

func TestCheckOnceDoesNotDuplicateOpenRecord(t *testing.T) {
	database := newMonitorTestDB(t)
	zone := seedZoneWithReading(t, database, "esp-silent", time.Now().UTC().Add(-2*time.Hour))

	monitor := newMonitor(database, 30*time.Minute)
	monitor.CheckOnce()
	monitor.CheckOnce()

	assert.EqualValues(t, 1, openDowntimes(t, database, zone.ID))
}

func TestMonitorSweepsUntilStopped(t *testing.T) {
	database := newMonitorTestDB(t)
	zone := seedZoneWithReading(t, database, "esp-silent", time.Now().UTC().Add(-2*time.Hour))

	monitor := NewDowntimeMonitor(
		repositories.NewZonePgRepository(database),
		repositories.NewReadingPgRepository(database),
		repositories.NewDowntimePgRepository(database),
		30*time.Minute,
		10*time.Millisecond,
		time.UTC,
	)
	monitor.Start()
	t.Cleanup(monitor.Stop)

	require.Eventually(t, func() bool {
		var count int64
		database.GetDB().Model(&entities.ControllerDowntime{}).
			Where("zone_id = ? AND resolved_at IS NULL", zone.ID).Count(&count)
		return count == 1
	}, time.Second, 20*time.Millisecond)

	monitor.Stop()
	monitor.Stop() // second call must be a no-op
}

func TestCheckOnceReopensAfterResolution(t *testing.T) {
	database := newMonitorTestDB(t)
	zone := seedZoneWithReading(t, database, "esp-flappy", time.Now().UTC().Add(-2*time.Hour))

	monitor := newMonitor(database, 30*time.Minute)
	monitor.CheckOnce()

	downtimeRepo := repositories.NewDowntimePgRepository(database)
	require.NoError(t, downtimeRepo.ResolveOpen(zone.ID, time.Now().UTC()))
	require.Zero(t, openDowntimes(t, database, zone.ID))

	// Still silent on the next sweep, so a fresh record opens.
	monitor.CheckOnce()
	assert.EqualValues(t, 1, openDowntimes(t, database, zone.ID))

	var total int64
	require.NoError(t, database.GetDB().Model(&entities.ControllerDowntime{}).
		Where("zone_id = ?", zone.ID).Count(&total).Error)
	assert.EqualValues(t, 2, total)
}
