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

func newCatalogFlow(testDB *testingutil.TestDB, clock utils.Clock) businessflow.CatalogFlow {
	return businessflow.NewCatalogFlow(
		repository.NewLocationRepository(testDB.DB),
		repository.NewProductRepository(testDB.DB),
		newResolver(testDB, clock),
		clock,
		testDB.DB,
	)
}

func TestCatalog(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := context.Background()
		clock := utils.FixedClock{Time: time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)}
		flow := newCatalogFlow(testDB, clock)

		t.Run("CreateAndListLocations", func(t *testing.T) {
			location, err := flow.CreateLocation(ctx, &dto.CreateLocationRequest{
				Name:    "Planta Beneficio Maracay",
				Type:    models.LocationTypeSlaughter,
				Address: dto.AddressInput{State: "Aragua", Municipality: "Girardot", Sector: "Zona Industrial"},
			}, nil)
			require.NoError(t, err)
			assert.Equal(t, models.LocationTypeSlaughter, location.Type)
			require.NotNil(t, location.Address)

			listed, err := flow.ListLocations(ctx)
			require.NoError(t, err)
			require.Len(t, listed, 1)
			assert.Equal(t, location.ID, listed[0].ID)
		})

		t.Run("UnknownLocationTypeRejected", func(t *testing.T) {
			_, err := flow.CreateLocation(ctx, &dto.CreateLocationRequest{
				Name:    "Sitio Desconocido",
				Type:    "spaceport",
				Address: dto.AddressInput{State: "Aragua", Municipality: "Girardot", Sector: "Centro"},
			}, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsValidationError(err))
		})

		t.Run("DuplicateLocationNameRejected", func(t *testing.T) {
			_, err := flow.CreateLocation(ctx, &dto.CreateLocationRequest{
				Name:    "Planta Beneficio Maracay",
				Type:    models.LocationTypeSlaughter,
				Address: dto.AddressInput{State: "Aragua", Municipality: "Girardot", Sector: "Zona Industrial"},
			}, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsConflictError(err))
		})

		t.Run("CreateAndListProducts", func(t *testing.T) {
			product, err := flow.CreateProduct(ctx, &dto.CreateProductRequest{
				Code: "PV-001",
				Name: "Pollo Vivo",
			}, nil)
			require.NoError(t, err)

			_, err = flow.CreateProduct(ctx, &dto.CreateProductRequest{
				Code: "PV-001",
				Name: "Pollo Vivo Segundo",
			}, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsConflictError(err))

			listed, err := flow.ListProducts(ctx)
			require.NoError(t, err)
			require.Len(t, listed, 1)
			assert.Equal(t, product.Code, listed[0].Code)
		})

		return nil
	})
	require.NoError(t, err)
}
