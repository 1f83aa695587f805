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

func newCompanyFlow(testDB *testingutil.TestDB, clock utils.Clock) businessflow.CompanyFlow {
	return businessflow.NewCompanyFlow(
		repository.NewTransportCompanyRepository(testDB.DB),
		repository.NewVehicleRepository(testDB.DB),
		repository.NewDriverRepository(testDB.DB),
		repository.NewAddressRepository(testDB.DB),
		newResolver(testDB, clock),
		clock,
		testDB.DB,
	)
}

func companyRequest(name, taxNumber string) *dto.CreateTransportCompanyRequest {
	return &dto.CreateTransportCompanyRequest{
		Name:  name,
		TaxID: dto.TaxIDInput{Type: models.TaxIDTypeLegalEntity, Number: taxNumber},
		Address: dto.AddressInput{
			State:        "Aragua",
			Municipality: "Girardot",
			Sector:       "Zona Industrial",
		},
		// Phones are exclusive shared entities, so each company gets its own.
		Phones: []dto.PhoneInput{
			{Carrier: "Movilnet", Number: "0416" + taxNumber[2:], Category: models.PhoneCategoryWork},
		},
	}
}

func TestTransportCompanies(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := context.Background()
		clock := utils.FixedClock{Time: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
		flow := newCompanyFlow(testDB, clock)

		companyRepo := repository.NewTransportCompanyRepository(testDB.DB)

		t.Run("CreateCompanyClaimsTaxIDAndPhones", func(t *testing.T) {
			company, err := flow.CreateTransportCompany(ctx, companyRequest("Transportes El Llano CA", "300111222"), nil)
			require.NoError(t, err)
			assert.Equal(t, "Transportes El Llano CA", company.Name)
			require.NotNil(t, company.TaxID)
			assert.Equal(t, "300111222", company.TaxID.Number)
			require.NotNil(t, company.Address)
			require.Len(t, company.Phones, 1)
			assert.Equal(t, "04160111222", company.Phones[0].Number)

			fetched, err := flow.GetTransportCompany(ctx, company.ID)
			require.NoError(t, err)
			require.NotNil(t, fetched.TaxID)
			assert.Equal(t, company.TaxID.ID, fetched.TaxID.ID)
		})

		t.Run("DuplicateCompanyNameRejected", func(t *testing.T) {
			_, err := flow.CreateTransportCompany(ctx, companyRequest("Transportes Duplicados CA", "300333444"), nil)
			require.NoError(t, err)

			_, err = flow.CreateTransportCompany(ctx, companyRequest("Transportes Duplicados CA", "300555666"), nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsConflictError(err))
		})

		t.Run("TaxIDHeldByOtherCompanyAbortsRegistration", func(t *testing.T) {
			_, err := flow.CreateTransportCompany(ctx, companyRequest("Transportes Primero CA", "300777888"), nil)
			require.NoError(t, err)

			_, err = flow.CreateTransportCompany(ctx, companyRequest("Transportes Segundo CA", "300777888"), nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsConflictError(err))
			assert.True(t, businessflow.IsSharedEntityHeldByOther(err))

			// The transaction rolled back; no half-registered company remains.
			count, err := companyRepo.Count(ctx, models.TransportCompanyFilter{Name: utils.ToPtr("Transportes Segundo CA")})
			require.NoError(t, err)
			assert.Equal(t, int64(0), count)
		})

		t.Run("VehiclePlateIsUniquePerActiveFleet", func(t *testing.T) {
			company, err := flow.CreateTransportCompany(ctx, companyRequest("Transportes Flota CA", "300999000"), nil)
			require.NoError(t, err)

			vehicle, err := flow.CreateVehicle(ctx, &dto.CreateVehicleRequest{
				TransportCompanyID: company.ID,
				Plate:              "A12BC34D",
				Model:              "Ford Cargo 1721",
			}, nil)
			require.NoError(t, err)
			assert.Equal(t, company.ID, vehicle.TransportCompanyID)

			_, err = flow.CreateVehicle(ctx, &dto.CreateVehicleRequest{
				TransportCompanyID: company.ID,
				Plate:              "A12BC34D",
				Model:              "Chevrolet NPR",
			}, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsConflictError(err))
		})

		t.Run("VehicleRequiresExistingCompany", func(t *testing.T) {
			_, err := flow.CreateVehicle(ctx, &dto.CreateVehicleRequest{
				TransportCompanyID: 999999,
				Plate:              "Z99XY88W",
				Model:              "Ford Cargo 1721",
			}, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsNotFoundError(err))
		})

		t.Run("DriverRegistrationResolvesPerson", func(t *testing.T) {
			company, err := flow.CreateTransportCompany(ctx, companyRequest("Transportes Choferes CA", "301111222"), nil)
			require.NoError(t, err)

			driver, err := flow.CreateDriver(ctx, &dto.CreateDriverRequest{
				TransportCompanyID: company.ID,
				Person: dto.PersonInput{
					FirstName:      "Pedro",
					LastName:       "Ramirez",
					NationalIDType: models.NationalIDTypeVenezuelan,
					NationalID:     "15666777",
					Address:        dto.AddressInput{State: "Aragua", Municipality: "Girardot", Sector: "La Coromoto"},
				},
			}, nil)
			require.NoError(t, err)
			assert.Equal(t, company.ID, driver.TransportCompanyID)
			assert.Equal(t, "Pedro", driver.Person.FirstName)
		})

		t.Run("KnownDriverMovesToNewEmployer", func(t *testing.T) {
			first, err := flow.CreateTransportCompany(ctx, companyRequest("Transportes Origen CA", "302333444"), nil)
			require.NoError(t, err)
			second, err := flow.CreateTransportCompany(ctx, companyRequest("Transportes Destino CA", "302555666"), nil)
			require.NoError(t, err)

			person := dto.PersonInput{
				FirstName:      "Luis",
				LastName:       "Mendoza",
				NationalIDType: models.NationalIDTypeVenezuelan,
				NationalID:     "17888999",
				Address:        dto.AddressInput{State: "Aragua", Municipality: "Girardot", Sector: "San Jose"},
			}

			hired, err := flow.CreateDriver(ctx, &dto.CreateDriverRequest{TransportCompanyID: first.ID, Person: person}, nil)
			require.NoError(t, err)

			moved, err := flow.CreateDriver(ctx, &dto.CreateDriverRequest{TransportCompanyID: second.ID, Person: person}, nil)
			require.NoError(t, err)

			// Same driver row, new employer; the national id resolved to one person.
			assert.Equal(t, hired.ID, moved.ID)
			assert.Equal(t, second.ID, moved.TransportCompanyID)
			assert.Equal(t, hired.Person.ID, moved.Person.ID)
		})

		return nil
	})
	require.NoError(t, err)
}
