package usecases

import (
	"strings"
	"testing"
	"time"

	"irrigation-server/db"
	"irrigation-server/entities"

	"github.com/stretchr/testify/require"
)

// newTestDB opens a fresh in-memory sqlite database for one test,
// named after the test so parallel suites don't share state.
func newTestDB(t *testing.T) db.Database {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	database, err := db.OpenSQLite("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	return database
}

// createPlantType inserts a plant type and returns it.
func createPlantType(t *testing.T, database db.Database, name string, min, max int) *entities.PlantType {
	t.Helper()
	pt := entities.PlantType{Name: name, OptimalMoistureMin: min, OptimalMoistureMax: max}
	require.NoError(t, database.GetDB().Create(&pt).Error)
	return &pt
}

// ingestOnce posts a single-subzone batch and returns the subzone.
func ingestOnce(t *testing.T, uc *IngestUseCase, database db.Database, uid string, moisture int, rain bool) *entities.SubZone {
	t.Helper()
	err := uc.Ingest(SensorBatch{
		ControllerUID: uid,
		SubZones:      []SubzoneReading{{SubzoneIndex: 1, SoilMoisturePercent: moisture, RainDetected: rain}},
	})
	require.NoError(t, err)

	var subZone entities.SubZone
	require.NoError(t, database.GetDB().
		Joins("JOIN zones ON zones.id = sub_zones.zone_id").
		Where("zones.controller_uid = ? AND sub_zones.subzone_index = ?", uid, 1).
		First(&subZone).Error)
	return &subZone
}

func newIngest(database db.Database) *IngestUseCase {
	return NewIngestUseCase(database, time.UTC, nil)
}
