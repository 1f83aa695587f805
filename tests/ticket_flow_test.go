package tests

import (
	"context"
	"fmt"
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

func newTicketFlow(testDB *testingutil.TestDB, clock utils.Clock) businessflow.TicketFlow {
	return businessflow.NewTicketFlow(
		repository.NewWeighingTicketRepository(testDB.DB),
		repository.NewAssignmentRepository(testDB.DB),
		repository.NewDriverRepository(testDB.DB),
		repository.NewVehicleRepository(testDB.DB),
		repository.NewProductRepository(testDB.DB),
		repository.NewLocationRepository(testDB.DB),
		clock,
		testDB.DB,
	)
}

func createTicketRequest(scaffold *testingutil.TicketScaffold) *dto.CreateTicketRequest {
	return &dto.CreateTicketRequest{
		Type:                  models.TicketTypeEntry,
		DriverID:              scaffold.Driver.ID,
		VehicleID:             scaffold.Vehicle.ID,
		ProductID:             scaffold.Product.ID,
		OriginLocationID:      scaffold.Origin.ID,
		DestinationLocationID: scaffold.Destination.ID,
	}
}

func TestTicketLifecycle(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := context.Background()
		clock := utils.FixedClock{Time: time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)}
		flow := newTicketFlow(testDB, clock)
		fixtures := testingutil.NewTestFixtures(testDB)

		scaffold, err := fixtures.CreateTicketScaffold()
		require.NoError(t, err)

		t.Run("TicketNumbersAreSequentialZeroPadded", func(t *testing.T) {
			var numbers []string
			for i := 0; i < 3; i++ {
				ticket, err := flow.CreateTicket(ctx, createTicketRequest(scaffold), scaffold.User.ID, nil)
				require.NoError(t, err)
				require.Len(t, ticket.TicketNumber, 8)
				assert.Equal(t, fmt.Sprintf("%08d", ticket.ID), ticket.TicketNumber)
				assert.Equal(t, models.TicketStatusInProgress, ticket.Status)
				numbers = append(numbers, ticket.TicketNumber)
			}
			assert.True(t, numbers[0] < numbers[1] && numbers[1] < numbers[2])
		})

		t.Run("GrossThenTareFinishesTicket", func(t *testing.T) {
			ticket, err := flow.CreateTicket(ctx, createTicketRequest(scaffold), scaffold.User.ID, nil)
			require.NoError(t, err)

			ticket, err = flow.RecordWeight(ctx, ticket.ID, &dto.RecordWeightRequest{Kind: models.WeightKindGross, Weight: 500}, scaffold.User.ID)
			require.NoError(t, err)
			assert.Equal(t, models.TicketStatusInProgress, ticket.Status)
			require.NotNil(t, ticket.GrossWeight)
			assert.Nil(t, ticket.NetWeight)
			require.NotNil(t, ticket.GrossRecordedAt)
			assert.Equal(t, clock.Time, ticket.GrossRecordedAt.UTC())
			require.NotNil(t, ticket.GrossRecordedByUserID)
			assert.Equal(t, scaffold.User.ID, *ticket.GrossRecordedByUserID)

			ticket, err = flow.RecordWeight(ctx, ticket.ID, &dto.RecordWeightRequest{Kind: models.WeightKindTare, Weight: 150}, scaffold.User.ID)
			require.NoError(t, err)
			assert.Equal(t, models.TicketStatusFinished, ticket.Status)
			require.NotNil(t, ticket.NetWeight)
			assert.Equal(t, 350.0, *ticket.NetWeight)
			require.NotNil(t, ticket.FinishedAt)
		})

		t.Run("TareBeforeGrossAlsoWorks", func(t *testing.T) {
			ticket, err := flow.CreateTicket(ctx, createTicketRequest(scaffold), scaffold.User.ID, nil)
			require.NoError(t, err)

			ticket, err = flow.RecordWeight(ctx, ticket.ID, &dto.RecordWeightRequest{Kind: models.WeightKindTare, Weight: 150}, scaffold.User.ID)
			require.NoError(t, err)
			assert.Equal(t, models.TicketStatusInProgress, ticket.Status)

			ticket, err = flow.RecordWeight(ctx, ticket.ID, &dto.RecordWeightRequest{Kind: models.WeightKindGross, Weight: 500}, scaffold.User.ID)
			require.NoError(t, err)
			assert.Equal(t, models.TicketStatusFinished, ticket.Status)
			require.NotNil(t, ticket.NetWeight)
			assert.Equal(t, 350.0, *ticket.NetWeight)
		})

		t.Run("ReweighingOverwritesWhileOpen", func(t *testing.T) {
			ticket, err := flow.CreateTicket(ctx, createTicketRequest(scaffold), scaffold.User.ID, nil)
			require.NoError(t, err)

			ticket, err = flow.RecordWeight(ctx, ticket.ID, &dto.RecordWeightRequest{Kind: models.WeightKindGross, Weight: 480}, scaffold.User.ID)
			require.NoError(t, err)
			ticket, err = flow.RecordWeight(ctx, ticket.ID, &dto.RecordWeightRequest{Kind: models.WeightKindGross, Weight: 505}, scaffold.User.ID)
			require.NoError(t, err)
			require.NotNil(t, ticket.GrossWeight)
			assert.Equal(t, 505.0, *ticket.GrossWeight)
			assert.Equal(t, models.TicketStatusInProgress, ticket.Status)
		})

		t.Run("FinishedTicketRejectsFurtherWeights", func(t *testing.T) {
			ticket, err := flow.CreateTicket(ctx, createTicketRequest(scaffold), scaffold.User.ID, nil)
			require.NoError(t, err)
			_, err = flow.RecordWeight(ctx, ticket.ID, &dto.RecordWeightRequest{Kind: models.WeightKindGross, Weight: 500}, scaffold.User.ID)
			require.NoError(t, err)
			_, err = flow.RecordWeight(ctx, ticket.ID, &dto.RecordWeightRequest{Kind: models.WeightKindTare, Weight: 150}, scaffold.User.ID)
			require.NoError(t, err)

			_, err = flow.RecordWeight(ctx, ticket.ID, &dto.RecordWeightRequest{Kind: models.WeightKindGross, Weight: 510}, scaffold.User.ID)
			require.Error(t, err)
			assert.True(t, businessflow.IsConflictError(err))
			assert.True(t, businessflow.IsTicketAlreadyFinished(err))
		})

		t.Run("WeightMustBeWithinScaleRange", func(t *testing.T) {
			ticket, err := flow.CreateTicket(ctx, createTicketRequest(scaffold), scaffold.User.ID, nil)
			require.NoError(t, err)

			_, err = flow.RecordWeight(ctx, ticket.ID, &dto.RecordWeightRequest{Kind: models.WeightKindGross, Weight: utils.MaxScaleWeight + 1}, scaffold.User.ID)
			require.Error(t, err)
			assert.True(t, businessflow.IsValidationError(err))
			assert.True(t, businessflow.IsWeightOutOfRange(err))
		})

		t.Run("SameOriginAndDestinationRejected", func(t *testing.T) {
			req := createTicketRequest(scaffold)
			req.DestinationLocationID = req.OriginLocationID

			_, err := flow.CreateTicket(ctx, req, scaffold.User.ID, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsValidationError(err))
			assert.True(t, businessflow.IsSameOriginDestination(err))
		})

		t.Run("DriverAndVehicleMustShareCompany", func(t *testing.T) {
			otherCompany, err := fixtures.CreateTestTransportCompany()
			require.NoError(t, err)
			otherVehicle, err := fixtures.CreateTestVehicle(otherCompany.ID)
			require.NoError(t, err)

			req := createTicketRequest(scaffold)
			req.VehicleID = otherVehicle.ID

			_, err = flow.CreateTicket(ctx, req, scaffold.User.ID, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsValidationError(err))
			assert.True(t, businessflow.IsDriverCompanyMismatch(err))
		})

		t.Run("AssignmentIsReusedAcrossTickets", func(t *testing.T) {
			first, err := flow.CreateTicket(ctx, createTicketRequest(scaffold), scaffold.User.ID, nil)
			require.NoError(t, err)
			second, err := flow.CreateTicket(ctx, createTicketRequest(scaffold), scaffold.User.ID, nil)
			require.NoError(t, err)
			assert.Equal(t, first.AssignmentID, second.AssignmentID)
		})

		t.Run("VoidRequiresReasonAndHappensOnce", func(t *testing.T) {
			ticket, err := flow.CreateTicket(ctx, createTicketRequest(scaffold), scaffold.User.ID, nil)
			require.NoError(t, err)

			voided, err := flow.VoidTicket(ctx, ticket.ID, &dto.VoidTicketRequest{Reason: "truck left before weighing"})
			require.NoError(t, err)
			assert.True(t, voided.Voided)
			require.NotNil(t, voided.VoidReason)
			assert.Equal(t, "truck left before weighing", *voided.VoidReason)

			_, err = flow.VoidTicket(ctx, ticket.ID, &dto.VoidTicketRequest{Reason: "voiding again"})
			require.Error(t, err)
			assert.True(t, businessflow.IsConflictError(err))

			// A voided ticket no longer accepts scale readings.
			_, err = flow.RecordWeight(ctx, ticket.ID, &dto.RecordWeightRequest{Kind: models.WeightKindGross, Weight: 500}, scaffold.User.ID)
			require.Error(t, err)
			assert.True(t, businessflow.IsTicketVoided(err))
		})

		t.Run("ReprintCountsEveryCopy", func(t *testing.T) {
			ticket, err := flow.CreateTicket(ctx, createTicketRequest(scaffold), scaffold.User.ID, nil)
			require.NoError(t, err)

			// A still-open ticket can be reprinted for the waiting truck.
			first, err := flow.ReprintTicket(ctx, ticket.ID)
			require.NoError(t, err)
			assert.Equal(t, 1, first.ReprintCount)

			_, err = flow.RecordWeight(ctx, ticket.ID, &dto.RecordWeightRequest{Kind: models.WeightKindGross, Weight: 500}, scaffold.User.ID)
			require.NoError(t, err)
			_, err = flow.RecordWeight(ctx, ticket.ID, &dto.RecordWeightRequest{Kind: models.WeightKindTare, Weight: 150}, scaffold.User.ID)
			require.NoError(t, err)

			second, err := flow.ReprintTicket(ctx, ticket.ID)
			require.NoError(t, err)
			assert.Equal(t, 2, second.ReprintCount)

			// A voided ticket is the only state that refuses a copy.
			voided, err := flow.CreateTicket(ctx, createTicketRequest(scaffold), scaffold.User.ID, nil)
			require.NoError(t, err)
			_, err = flow.VoidTicket(ctx, voided.ID, &dto.VoidTicketRequest{Reason: "wrong driver on ticket"})
			require.NoError(t, err)

			_, err = flow.ReprintTicket(ctx, voided.ID)
			require.Error(t, err)
			assert.True(t, businessflow.IsConflictError(err))
			assert.True(t, businessflow.IsTicketVoided(err))
		})

		t.Run("ListTicketsFiltersAndPaginates", func(t *testing.T) {
			listed, err := flow.ListTickets(ctx, &dto.ListTicketsRequest{
				Status:   utils.ToPtr(models.TicketStatusFinished),
				PageSize: 5,
			})
			require.NoError(t, err)
			assert.LessOrEqual(t, len(listed.Tickets), 5)
			assert.Greater(t, listed.Pagination.TotalItems, int64(0))
			for _, tk := range listed.Tickets {
				assert.Equal(t, models.TicketStatusFinished, tk.Status)
			}
		})

		t.Run("PendingBoardListsOpenTicketsOnly", func(t *testing.T) {
			open, err := flow.CreateTicket(ctx, createTicketRequest(scaffold), scaffold.User.ID, nil)
			require.NoError(t, err)

			finished, err := flow.CreateTicket(ctx, createTicketRequest(scaffold), scaffold.User.ID, nil)
			require.NoError(t, err)
			_, err = flow.RecordWeight(ctx, finished.ID, &dto.RecordWeightRequest{Kind: models.WeightKindGross, Weight: 500}, scaffold.User.ID)
			require.NoError(t, err)
			_, err = flow.RecordWeight(ctx, finished.ID, &dto.RecordWeightRequest{Kind: models.WeightKindTare, Weight: 150}, scaffold.User.ID)
			require.NoError(t, err)

			pending, err := flow.ListPendingTickets(ctx, 100)
			require.NoError(t, err)

			ids := make(map[uint]bool, len(pending))
			for _, tk := range pending {
				assert.Equal(t, models.TicketStatusInProgress, tk.Status)
				assert.False(t, tk.Voided)
				ids[tk.ID] = true
			}
			assert.True(t, ids[open.ID])
			assert.False(t, ids[finished.ID])
		})

		t.Run("TicketFoundByPrintedNumber", func(t *testing.T) {
			ticket, err := flow.CreateTicket(ctx, createTicketRequest(scaffold), scaffold.User.ID, nil)
			require.NoError(t, err)

			found, err := flow.GetTicketByNumber(ctx, ticket.TicketNumber)
			require.NoError(t, err)
			assert.Equal(t, ticket.ID, found.ID)

			_, err = flow.GetTicketByNumber(ctx, "99999999")
			require.Error(t, err)
			assert.True(t, businessflow.IsTicketNotFound(err))
		})

		t.Run("ConcurrentTicketsGetDistinctNumbers", func(t *testing.T) {
			const trucks = 8

			var wg sync.WaitGroup
			start := make(chan struct{})
			results := make([]*dto.TicketDTO, trucks)
			errs := make([]error, trucks)

			for i := 0; i < trucks; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					<-start
					results[i], errs[i] = flow.CreateTicket(ctx, createTicketRequest(scaffold), scaffold.User.ID, nil)
				}(i)
			}
			close(start)
			wg.Wait()

			numbers := make(map[string]struct{}, trucks)
			for i := 0; i < trucks; i++ {
				require.NoError(t, errs[i])
				assert.Equal(t, fmt.Sprintf("%08d", results[i].ID), results[i].TicketNumber)
				numbers[results[i].TicketNumber] = struct{}{}
			}
			assert.Len(t, numbers, trucks)
		})

		t.Run("GetUnknownTicketIsNotFound", func(t *testing.T) {
			_, err := flow.GetTicket(ctx, 999999)
			require.Error(t, err)
			assert.True(t, businessflow.IsNotFoundError(err))
			assert.True(t, businessflow.IsTicketNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}
