package tests

import (
	"context"
	"testing"
	"time"

	"github.com/Davisit00/aviges/app/dto"
	businessflow "github.com/Davisit00/aviges/business_flow"
	"github.com/Davisit00/aviges/models"
	"github.com/Davisit00/aviges/repository"
	testingutil "github.com/Davisit00/aviges/testing"
	"github.com/Davisit00/aviges/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFarmFlow(testDB *testingutil.TestDB, clock utils.Clock) businessflow.FarmFlow {
	return businessflow.NewFarmFlow(
		repository.NewFarmRepository(testDB.DB),
		repository.NewShedRepository(testDB.DB),
		repository.NewBatchRepository(testDB.DB),
		repository.NewPersonRepository(testDB.DB),
		newResolver(testDB, clock),
		clock,
		testDB.DB,
	)
}

func TestFarmsAndBatches(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := context.Background()
		clock := utils.FixedClock{Time: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)}
		flow := newFarmFlow(testDB, clock)

		owner := dto.PersonInput{
			FirstName:      "Carmen",
			LastName:       "Hernandez",
			NationalIDType: models.NationalIDTypeVenezuelan,
			NationalID:     "12444555",
			Address:        dto.AddressInput{State: "Aragua", Municipality: "Zamora", Sector: "Villa de Cura"},
		}

		var shedID uint

		t.Run("CreateFarmWithSheds", func(t *testing.T) {
			capacity := 18000
			farm, err := flow.CreateFarm(ctx, &dto.CreateFarmRequest{
				Name:    "Granja Santa Rosa",
				Owner:   owner,
				Address: dto.AddressInput{State: "Aragua", Municipality: "Zamora", Sector: "El Cortijo"},
				Sheds: []dto.ShedInput{
					{Number: 1, Capacity: &capacity},
					{Number: 2},
				},
			}, nil)
			require.NoError(t, err)
			assert.Equal(t, "Granja Santa Rosa", farm.Name)
			assert.Equal(t, "Carmen", farm.Owner.FirstName)
			require.Len(t, farm.Sheds, 2)
			assert.Equal(t, 1, farm.Sheds[0].Number)
			shedID = farm.Sheds[0].ID

			fetched, err := flow.GetFarm(ctx, farm.ID)
			require.NoError(t, err)
			assert.Len(t, fetched.Sheds, 2)
		})

		t.Run("DuplicateFarmNameRejected", func(t *testing.T) {
			_, err := flow.CreateFarm(ctx, &dto.CreateFarmRequest{
				Name:    "Granja Santa Rosa",
				Owner:   owner,
				Address: dto.AddressInput{State: "Aragua", Municipality: "Zamora", Sector: "El Cortijo"},
			}, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsConflictError(err))
		})

		t.Run("BatchReportsFlockAge", func(t *testing.T) {
			placement := clock.Time.AddDate(0, 0, -35)
			batch, err := flow.CreateBatch(ctx, &dto.CreateBatchRequest{
				ShedID:        shedID,
				Code:          "L2025-0042",
				PlacementDate: placement,
				BirdsPlaced:   17500,
			}, nil)
			require.NoError(t, err)
			assert.Equal(t, shedID, batch.ShedID)
			assert.Equal(t, 35, batch.AgeDays)
		})

		t.Run("BatchRequiresExistingShed", func(t *testing.T) {
			_, err := flow.CreateBatch(ctx, &dto.CreateBatchRequest{
				ShedID:        999999,
				Code:          "L2025-0099",
				PlacementDate: clock.Time,
				BirdsPlaced:   1000,
			}, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsNotFoundError(err))
		})

		t.Run("DuplicateBatchCodeRejected", func(t *testing.T) {
			_, err := flow.CreateBatch(ctx, &dto.CreateBatchRequest{
				ShedID:        shedID,
				Code:          "L2025-0042",
				PlacementDate: clock.Time,
				BirdsPlaced:   1000,
			}, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsConflictError(err))
		})

		return nil
	})
	require.NoError(t, err)
}
