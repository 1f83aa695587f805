package tests

import (
	"context"
	"sync"
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

func newResolver(testDB *testingutil.TestDB, clock utils.Clock) *businessflow.EntityResolver {
	return businessflow.NewEntityResolver(
		repository.NewAddressRepository(testDB.DB),
		repository.NewPersonRepository(testDB.DB),
		repository.NewPhoneRepository(testDB.DB),
		repository.NewTaxIDRepository(testDB.DB),
		repository.NewAssociationRepository(testDB.DB),
		clock,
	)
}

func TestEntityResolution(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := context.Background()
		clock := utils.FixedClock{Time: time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)}
		resolver := newResolver(testDB, clock)

		phoneRepo := repository.NewPhoneRepository(testDB.DB)
		taxIDRepo := repository.NewTaxIDRepository(testDB.DB)
		personRepo := repository.NewPersonRepository(testDB.DB)
		associationRepo := repository.NewAssociationRepository(testDB.DB)

		t.Run("ResolvePhoneTwiceReturnsSameRow", func(t *testing.T) {
			input := dto.PhoneInput{
				Carrier:  "Movilnet",
				Number:   "04161234567",
				Category: models.PhoneCategoryMobile,
			}

			first, err := resolver.ResolvePhone(ctx, input)
			require.NoError(t, err)
			require.NotNil(t, first)
			assert.Equal(t, "+58", first.CountryCode)

			second, err := resolver.ResolvePhone(ctx, input)
			require.NoError(t, err)
			assert.Equal(t, first.ID, second.ID)

			count, err := phoneRepo.Count(ctx, models.PhoneFilter{Number: utils.ToPtr("04161234567")})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})

		t.Run("ResolveTaxIDTwiceReturnsSameRow", func(t *testing.T) {
			input := dto.TaxIDInput{Type: models.TaxIDTypeLegalEntity, Number: "123456789"}

			first, err := resolver.ResolveTaxID(ctx, input)
			require.NoError(t, err)

			second, err := resolver.ResolveTaxID(ctx, input)
			require.NoError(t, err)
			assert.Equal(t, first.ID, second.ID)

			count, err := taxIDRepo.Count(ctx, models.TaxIDFilter{Number: utils.ToPtr("123456789")})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})

		t.Run("ResolvePersonUpdatesInPlace", func(t *testing.T) {
			address := dto.AddressInput{State: "Aragua", Municipality: "Girardot", Sector: "Centro"}

			first, err := resolver.ResolvePerson(ctx, dto.PersonInput{
				FirstName:      "Maria",
				LastName:       "Gonzalez",
				NationalIDType: models.NationalIDTypeVenezuelan,
				NationalID:     "18222333",
				Address:        address,
			})
			require.NoError(t, err)

			// Same national id with a corrected surname updates the row.
			second, err := resolver.ResolvePerson(ctx, dto.PersonInput{
				FirstName:      "Maria",
				LastName:       "Gonzalez de Perez",
				NationalIDType: models.NationalIDTypeVenezuelan,
				NationalID:     "18222333",
				Address:        address,
			})
			require.NoError(t, err)
			assert.Equal(t, first.ID, second.ID)
			assert.Equal(t, "Gonzalez de Perez", second.LastName)

			count, err := personRepo.Count(ctx, models.PersonFilter{NationalID: utils.ToPtr("18222333")})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)

			stored, err := personRepo.ByNationalID(ctx, "18222333")
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, "Gonzalez de Perez", stored.LastName)
		})

		t.Run("ExclusiveSharedEntityRefusesSecondOwner", func(t *testing.T) {
			phone, err := resolver.ResolvePhone(ctx, dto.PhoneInput{
				Carrier:  "Digitel",
				Number:   "04127654321",
				Category: models.PhoneCategoryMobile,
			})
			require.NoError(t, err)

			require.NoError(t, resolver.Associate(ctx, models.OwnerTypePerson, 101, models.SharedTypePhone, phone.ID))

			// Re-associating the same owner is a no-op.
			require.NoError(t, resolver.Associate(ctx, models.OwnerTypePerson, 101, models.SharedTypePhone, phone.ID))

			err = resolver.Associate(ctx, models.OwnerTypeTransportCompany, 7, models.SharedTypePhone, phone.ID)
			require.Error(t, err)
			assert.True(t, businessflow.IsConflictError(err))
			assert.True(t, businessflow.IsSharedEntityHeldByOther(err))
		})

		t.Run("AddressIsShareableByManyOwners", func(t *testing.T) {
			addr, err := resolver.ResolveAddress(ctx, dto.AddressInput{
				State: "Carabobo", Municipality: "Valencia", Sector: "San Blas",
			})
			require.NoError(t, err)

			require.NoError(t, resolver.Associate(ctx, models.OwnerTypePerson, 201, models.SharedTypeAddress, addr.ID))
			require.NoError(t, resolver.Associate(ctx, models.OwnerTypeTransportCompany, 202, models.SharedTypeAddress, addr.ID))
		})

		t.Run("DissociateThenAssociateReactivatesLink", func(t *testing.T) {
			phone, err := resolver.ResolvePhone(ctx, dto.PhoneInput{
				Carrier:  "Movistar",
				Number:   "04249998877",
				Category: models.PhoneCategoryWork,
			})
			require.NoError(t, err)

			require.NoError(t, resolver.Associate(ctx, models.OwnerTypePerson, 301, models.SharedTypePhone, phone.ID))
			require.NoError(t, resolver.Dissociate(ctx, models.OwnerTypePerson, 301, models.SharedTypePhone, phone.ID))

			// While released, another owner may claim it.
			holder, err := associationRepo.ActiveBySharedEntity(ctx, models.SharedTypePhone, phone.ID)
			require.NoError(t, err)
			assert.Nil(t, holder)

			require.NoError(t, resolver.Associate(ctx, models.OwnerTypePerson, 301, models.SharedTypePhone, phone.ID))

			// The old soft-deleted row was reactivated, not duplicated.
			links, err := associationRepo.ByFilter(ctx, models.AssociationFilter{
				OwnerType:  utils.ToPtr(models.OwnerTypePerson),
				OwnerID:    utils.ToPtr(uint(301)),
				SharedType: utils.ToPtr(models.SharedTypePhone),
				SharedID:   utils.ToPtr(phone.ID),
			}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, links, 1)
			assert.False(t, links[0].IsDeleted)
		})

		t.Run("ConcurrentAssociationAdmitsOneOwner", func(t *testing.T) {
			phone, err := resolver.ResolvePhone(ctx, dto.PhoneInput{
				Carrier:  "Movistar",
				Number:   "04241230099",
				Category: models.PhoneCategoryMobile,
			})
			require.NoError(t, err)

			// Two owners race for the same exclusive entity. Whichever side
			// loses, by the holder check or by the partial unique index, must
			// come back as a conflict.
			var wg sync.WaitGroup
			start := make(chan struct{})
			errs := make([]error, 2)

			wg.Add(2)
			go func() {
				defer wg.Done()
				<-start
				errs[0] = resolver.Associate(ctx, models.OwnerTypePerson, 501, models.SharedTypePhone, phone.ID)
			}()
			go func() {
				defer wg.Done()
				<-start
				errs[1] = resolver.Associate(ctx, models.OwnerTypeTransportCompany, 502, models.SharedTypePhone, phone.ID)
			}()
			close(start)
			wg.Wait()

			winners := 0
			for _, e := range errs {
				if e == nil {
					winners++
					continue
				}
				assert.True(t, businessflow.IsConflictError(e))
				assert.True(t, businessflow.IsSharedEntityHeldByOther(e))
			}
			assert.Equal(t, 1, winners)

			holder, err := associationRepo.ActiveBySharedEntity(ctx, models.SharedTypePhone, phone.ID)
			require.NoError(t, err)
			require.NotNil(t, holder)
		})

		t.Run("ExplicitIDReusesRowAsIs", func(t *testing.T) {
			phone, err := resolver.ResolvePhone(ctx, dto.PhoneInput{
				Carrier:  "Digitel",
				Number:   "04121112233",
				Category: models.PhoneCategoryMobile,
			})
			require.NoError(t, err)

			// An ID-only payload loads the row and ignores the other fields.
			byID, err := resolver.ResolvePhone(ctx, dto.PhoneInput{ID: utils.ToPtr(phone.ID)})
			require.NoError(t, err)
			assert.Equal(t, phone.ID, byID.ID)
			assert.Equal(t, "Digitel", byID.Carrier)

			person, err := resolver.ResolvePerson(ctx, dto.PersonInput{
				FirstName:      "Pedro",
				LastName:       "Lameda",
				NationalIDType: models.NationalIDTypeVenezuelan,
				NationalID:     "14555666",
				Address:        dto.AddressInput{State: "Lara", Municipality: "Iribarren", Sector: "Este"},
			})
			require.NoError(t, err)

			// Loading by ID does not run the update-in-place path.
			reloaded, err := resolver.ResolvePerson(ctx, dto.PersonInput{ID: utils.ToPtr(person.ID), LastName: "Ignored"})
			require.NoError(t, err)
			assert.Equal(t, person.ID, reloaded.ID)
			assert.Equal(t, "Lameda", reloaded.LastName)
		})

		t.Run("ExplicitIDMustExist", func(t *testing.T) {
			_, err := resolver.ResolveTaxID(ctx, dto.TaxIDInput{ID: utils.ToPtr(uint(999999))})
			require.Error(t, err)
			assert.True(t, businessflow.IsNotFoundError(err))

			_, err = resolver.ResolveAddress(ctx, dto.AddressInput{ID: utils.ToPtr(uint(999999))})
			require.Error(t, err)
			assert.True(t, businessflow.IsNotFoundError(err))
		})

		t.Run("MissingRequiredFieldsAreNamed", func(t *testing.T) {
			_, err := resolver.ResolveAddress(ctx, dto.AddressInput{State: "Miranda"})
			require.Error(t, err)
			assert.True(t, businessflow.IsValidationError(err))
			assert.Contains(t, err.Error(), "municipality")
			assert.Contains(t, err.Error(), "sector")
			assert.NotContains(t, err.Error(), "state")

			_, err = resolver.ResolvePhone(ctx, dto.PhoneInput{Number: "04140001122"})
			require.Error(t, err)
			assert.True(t, businessflow.IsValidationError(err))
			assert.Contains(t, err.Error(), "carrier")
			assert.Contains(t, err.Error(), "category")

			_, err = resolver.ResolvePerson(ctx, dto.PersonInput{FirstName: "Ana"})
			require.Error(t, err)
			assert.True(t, businessflow.IsValidationError(err))
			assert.Contains(t, err.Error(), "national_id")
		})

		t.Run("FixedClockStampsCreation", func(t *testing.T) {
			phone, err := resolver.ResolvePhone(ctx, dto.PhoneInput{
				Carrier:  "Movilnet",
				Number:   "04165550001",
				Category: models.PhoneCategoryHome,
			})
			require.NoError(t, err)
			assert.Equal(t, clock.Time, phone.CreatedAt.UTC())
		})

		return nil
	})
	require.NoError(t, err)
}
