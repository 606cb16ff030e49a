package usecases

import (
	"testing"
	"time"

	"irrigation-server/db"
	"irrigation-server/entities"
	"irrigation-server/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubZoneUC(database db.Database) *SubZoneUseCase {
	return NewSubZoneUseCase(
		repositories.NewSubZonePgRepository(database),
		repositories.NewReadingPgRepository(database),
		repositories.NewIrrigationPgRepository(database),
		repositories.NewPlantTypePgRepository(database),
		repositories.NewSoilTypePgRepository(database),
		time.UTC,
	)
}

func TestUpdateSubZoneResolvesTypeIDs(t *testing.T) {
	database := newTestDB(t)
	ingest := newIngest(database)
	uc := newSubZoneUC(database)

	subZone := ingestOnce(t, ingest, database, "esp-1", 50, false)
	plant := createPlantType(t, database, "Cucumber", 40, 80)
	soil := entities.SoilType{Name: "Loam"}
	require.NoError(t, database.GetDB().Create(&soil).Error)

	updated, err := uc.UpdateSubZone(subZone.ID, SubZoneUpdate{
		Name:                               "Row A",
		DefaultIrrigationDurationInSeconds: 120,
		PlantTypeID:                        &plant.ID,
		SoilTypeID:                         &soil.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Row A", updated.Name)
	require.NotNil(t, updated.PlantTypeID)
	assert.Equal(t, plant.ID, *updated.PlantTypeID)
	require.NotNil(t, updated.SoilTypeID)
	assert.Equal(t, soil.ID, *updated.SoilTypeID)

	// nil ids clear the associations
	updated, err = uc.UpdateSubZone(subZone.ID, SubZoneUpdate{Name: "Row A"})
	require.NoError(t, err)
	assert.Nil(t, updated.PlantTypeID)
	assert.Nil(t, updated.SoilTypeID)
}

func TestUpdateSubZoneRejectsUnknownTypeIDs(t *testing.T) {
	database := newTestDB(t)
	ingest := newIngest(database)
	uc := newSubZoneUC(database)

	subZone := ingestOnce(t, ingest, database, "esp-1", 50, false)

	badID := uint(9999)
	_, err := uc.UpdateSubZone(subZone.ID, SubZoneUpdate{PlantTypeID: &badID})
	assert.ErrorIs(t, err, ErrUnknownPlantType)

	_, err = uc.UpdateSubZone(subZone.ID, SubZoneUpdate{SoilTypeID: &badID})
	assert.ErrorIs(t, err, ErrUnknownSoilType)

	// The failed updates must not have changed the row.
	fresh, err := uc.GetSubZone(subZone.ID)
	require.NoError(t, err)
	assert.Nil(t, fresh.PlantTypeID)
	assert.Nil(t, fresh.SoilTypeID)
}

func TestFixIssueClearsFlag(t *testing.T) {
	database := newTestDB(t)
	ingest := newIngest(database)
	uc := newSubZoneUC(database)

	subZone := ingestOnce(t, ingest, database, "esp-1", 50, false)
	require.NoError(t, database.GetDB().Model(subZone).
		Updates(map[string]interface{}{
			"has_irrigation_issue":  true,
			"last_irrigation_issue": "valve stuck",
		}).Error)

	fixed, err := uc.FixIssue(subZone.ID)
	require.NoError(t, err)
	assert.False(t, fixed.HasIrrigationIssue)
	assert.Empty(t, fixed.LastIrrigationIssue)
}

func TestManualIrrigationSkipsDebounce(t *testing.T) {
	database := newTestDB(t)
	ingest := newIngest(database)
	uc := newSubZoneUC(database)

	subZone := ingestOnce(t, ingest, database, "esp-1", 50, false)

	// Two manual triggers in a row both create requests; manual intent
	// is never deduped against pending ones.
	first, err := uc.TriggerIrrigation(subZone.ID, 45)
	require.NoError(t, err)
	second, err := uc.TriggerIrrigation(subZone.ID, 90)
	require.NoError(t, err)

	assert.Equal(t, entities.TriggeredByManual, first.TriggeredBy)
	assert.Equal(t, 45, first.DurationSeconds)
	assert.Equal(t, 90, second.DurationSeconds)

	var count int64
	database.GetDB().Model(&entities.ManualIrrigationRequest{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestManualIrrigationValidation(t *testing.T) {
	database := newTestDB(t)
	ingest := newIngest(database)
	uc := newSubZoneUC(database)

	subZone := ingestOnce(t, ingest, database, "esp-1", 50, false)

	_, err := uc.TriggerIrrigation(subZone.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = uc.TriggerIrrigation(9999, 60)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTriggerDefaultIrrigationUsesConfiguredDuration(t *testing.T) {
	database := newTestDB(t)
	ingest := newIngest(database)
	uc := newSubZoneUC(database)

	subZone := ingestOnce(t, ingest, database, "esp-1", 50, false)
	require.NoError(t, database.GetDB().Model(subZone).
		Update("default_irrigation_duration_in_seconds", 240).Error)

	request, err := uc.TriggerDefaultIrrigation(subZone.ID)
	require.NoError(t, err)
	assert.Equal(t, 240, request.DurationSeconds)
	assert.Equal(t, entities.TriggeredByManual, request.TriggeredBy)
}

func TestMoistureHistoryReturnsLatestFirst(t *testing.T) {
	database := newTestDB(t)
	ingest := newIngest(database)
	uc := newSubZoneUC(database)

	subZone := ingestOnce(t, ingest, database, "esp-1", 50, false)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		reading := entities.SoilMoistureReading{
			SubZoneID:       subZone.ID,
			MoisturePercent: i,
			RecordedAt:      base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, database.GetDB().Create(&reading).Error)
	}

	readings, err := uc.MoistureHistory(subZone.ID, 20)
	require.NoError(t, err)
	require.Len(t, readings, 20)
	assert.True(t, readings[0].RecordedAt.After(readings[1].RecordedAt), "newest first")
}

func TestSoilReadingsAscending(t *testing.T) {
	database := newTestDB(t)
	ingest := newIngest(database)
	uc := newSubZoneUC(database)

	subZone := ingestOnce(t, ingest, database, "esp-1", 50, false)
	ingestOnce(t, ingest, database, "esp-1", 55, false)

	points, err := uc.SoilReadings(subZone.ID)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.False(t, points[0].RecordedAt.After(points[1].RecordedAt))
}
