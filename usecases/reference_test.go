package usecases

import (
	"testing"

	"irrigation-server/db"
	"irrigation-server/entities"
	"irrigation-server/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReferenceUC(database db.Database) *ReferenceUseCase {
	return NewReferenceUseCase(
		repositories.NewPlantTypePgRepository(database),
		repositories.NewSoilTypePgRepository(database),
	)
}

func TestPlantTypeCRUD(t *testing.T) {
	database := newTestDB(t)
	uc := newReferenceUC(database)

	pt := entities.PlantType{Name: "Tomato", OptimalMoistureMin: 35, OptimalMoistureMax: 70}
	require.NoError(t, uc.CreatePlantType(&pt))
	require.NotZero(t, pt.ID)

	updated, err := uc.UpdatePlantType(pt.ID, &entities.PlantType{
		Name:               "Tomato",
		Description:        "greenhouse cultivar",
		OptimalMoistureMin: 40,
		OptimalMoistureMax: 75,
	})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.OptimalMoistureMin)
	assert.Equal(t, "greenhouse cultivar", updated.Description)

	require.NoError(t, uc.DeletePlantType(pt.ID))
	_, err = uc.GetPlantType(pt.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePlantTypeRequiresName(t *testing.T) {
	database := newTestDB(t)
	uc := newReferenceUC(database)

	err := uc.CreatePlantType(&entities.PlantType{OptimalMoistureMin: 10})
	assert.Error(t, err)
}

func TestDeletePlantTypeDetachesSubZones(t *testing.T) {
	database := newTestDB(t)
	ingest := newIngest(database)
	uc := newReferenceUC(database)
	subZones := newSubZoneUC(database)

	subZone := ingestOnce(t, ingest, database, "esp-1", 50, false)
	plant := createPlantType(t, database, "Basil", 30, 60)
	_, err := subZones.UpdateSubZone(subZone.ID, SubZoneUpdate{Name: "Row A", PlantTypeID: &plant.ID})
	require.NoError(t, err)

	require.NoError(t, uc.DeletePlantType(plant.ID))

	// The subzone survives with the plant type reference cleared.
	fresh, err := subZones.GetSubZone(subZone.ID)
	require.NoError(t, err)
	assert.Nil(t, fresh.PlantTypeID)
}

func TestSoilTypeCRUD(t *testing.T) {
	database := newTestDB(t)
	uc := newReferenceUC(database)

	st := entities.SoilType{Name: "Sandy", Description: "drains fast"}
	require.NoError(t, uc.CreateSoilType(&st))

	all, err := uc.GetAllSoilTypes()
	require.NoError(t, err)
	require.Len(t, all, 1)

	updated, err := uc.UpdateSoilType(st.ID, &entities.SoilType{Name: "Sandy loam"})
	require.NoError(t, err)
	assert.Equal(t, "Sandy loam", updated.Name)

	require.NoError(t, uc.DeleteSoilType(st.ID))
	_, err = uc.GetSoilType(st.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
