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

func newUserFlow(testDB *testingutil.TestDB, clock utils.Clock) businessflow.UserFlow {
	return businessflow.NewUserFlow(
		repository.NewUserRepository(testDB.DB),
		repository.NewRoleRepository(testDB.DB),
		repository.NewPersonRepository(testDB.DB),
		newResolver(testDB, clock),
		clock,
		testDB.DB,
	)
}

func TestUserRegistration(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := context.Background()
		clock := utils.FixedClock{Time: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
		flow := newUserFlow(testDB, clock)

		person := dto.PersonInput{
			FirstName:      "Jose",
			LastName:       "Quintero",
			NationalIDType: models.NationalIDTypeVenezuelan,
			NationalID:     "19555666",
			Address:        dto.AddressInput{State: "Aragua", Municipality: "Girardot", Sector: "La Barraca"},
		}

		t.Run("CreateUserResolvesPerson", func(t *testing.T) {
			user, err := flow.CreateUser(ctx, &dto.CreateUserRequest{
				Username: "jquintero",
				Password: "SecurePass123!",
				RoleName: models.RoleOperator,
				Person:   person,
			}, nil)
			require.NoError(t, err)
			assert.Equal(t, "jquintero", user.Username)
			assert.Equal(t, models.RoleOperator, user.Role)
			assert.Equal(t, "19555666", user.Person.NationalID)

			fetched, err := flow.GetUser(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, user.Person.ID, fetched.Person.ID)
		})

		t.Run("DuplicateUsernameRejected", func(t *testing.T) {
			_, err := flow.CreateUser(ctx, &dto.CreateUserRequest{
				Username: "jquintero",
				Password: "OtherPass123!",
				RoleName: models.RoleViewer,
				Person:   person,
			}, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsConflictError(err))
			assert.True(t, businessflow.IsUsernameAlreadyExists(err))
		})

		t.Run("UnknownRoleRejected", func(t *testing.T) {
			_, err := flow.CreateUser(ctx, &dto.CreateUserRequest{
				Username: "secondaccount",
				Password: "SecurePass123!",
				RoleName: "superuser",
				Person:   person,
			}, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsNotFoundError(err))
		})

		t.Run("SecondAccountReusesKnownPerson", func(t *testing.T) {
			first, err := flow.CreateUser(ctx, &dto.CreateUserRequest{
				Username: "jquintero2",
				Password: "SecurePass123!",
				RoleName: models.RoleViewer,
				Person:   person,
			}, nil)
			require.NoError(t, err)

			second, err := flow.CreateUser(ctx, &dto.CreateUserRequest{
				Username: "jquintero3",
				Password: "SecurePass123!",
				RoleName: models.RoleViewer,
				Person:   person,
			}, nil)
			require.NoError(t, err)
			assert.Equal(t, first.Person.ID, second.Person.ID)
		})

		return nil
	})
	require.NoError(t, err)
}
