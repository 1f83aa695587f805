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

func newTripFlow(testDB *testingutil.TestDB, clock utils.Clock) businessflow.TripFlow {
	return businessflow.NewTripFlow(
		repository.NewWeighingTicketRepository(testDB.DB),
		repository.NewTripTimingRepository(testDB.DB),
		repository.NewTripCountRepository(testDB.DB),
		repository.NewTripOriginRepository(testDB.DB),
		repository.NewBatchRepository(testDB.DB),
		clock,
		testDB.DB,
	)
}

func TestTripEnrichment(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := context.Background()
		clock := utils.FixedClock{Time: time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)}
		ticketFlow := newTicketFlow(testDB, clock)
		tripFlow := newTripFlow(testDB, clock)
		fixtures := testingutil.NewTestFixtures(testDB)

		scaffold, err := fixtures.CreateTicketScaffold()
		require.NoError(t, err)

		openTicket := func(t *testing.T) *dto.TicketDTO {
			ticket, err := ticketFlow.CreateTicket(ctx, createTicketRequest(scaffold), scaffold.User.ID, nil)
			require.NoError(t, err)
			return ticket
		}

		base := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
		at := func(minutes int) *time.Time {
			stamp := base.Add(time.Duration(minutes) * time.Minute)
			return &stamp
		}

		t.Run("TimingsMergeIncrementally", func(t *testing.T) {
			ticket := openTicket(t)

			timing, err := tripFlow.RecordTripTimings(ctx, ticket.ID, &dto.RecordTripTimingsRequest{
				FarmDepartureAt: at(0),
			})
			require.NoError(t, err)
			require.NotNil(t, timing.FarmDepartureAt)
			assert.Nil(t, timing.PlantArrivalAt)

			// A later request fills more stamps without touching the first.
			timing, err = tripFlow.RecordTripTimings(ctx, ticket.ID, &dto.RecordTripTimingsRequest{
				PlantArrivalAt: at(90),
				UnloadStartAt:  at(110),
			})
			require.NoError(t, err)
			require.NotNil(t, timing.FarmDepartureAt)
			assert.True(t, timing.FarmDepartureAt.Equal(base))
			require.NotNil(t, timing.TransitSeconds)
			assert.Equal(t, int64(90*60), *timing.TransitSeconds)
			require.NotNil(t, timing.WaitSeconds)
			assert.Equal(t, int64(20*60), *timing.WaitSeconds)
		})

		t.Run("OutOfOrderTimingsRejected", func(t *testing.T) {
			ticket := openTicket(t)

			_, err := tripFlow.RecordTripTimings(ctx, ticket.ID, &dto.RecordTripTimingsRequest{
				FarmDepartureAt: at(60),
				PlantArrivalAt:  at(30),
			})
			require.Error(t, err)
			assert.True(t, businessflow.IsValidationError(err))
			assert.True(t, businessflow.IsTimingsOutOfOrder(err))

			// The merged result is validated, not just the request.
			_, err = tripFlow.RecordTripTimings(ctx, ticket.ID, &dto.RecordTripTimingsRequest{
				PlantArrivalAt: at(90),
			})
			require.NoError(t, err)
			_, err = tripFlow.RecordTripTimings(ctx, ticket.ID, &dto.RecordTripTimingsRequest{
				UnloadStartAt: at(45),
			})
			require.Error(t, err)
			assert.True(t, businessflow.IsTimingsOutOfOrder(err))
		})

		t.Run("CountsDeriveMissingBirds", func(t *testing.T) {
			ticket := openTicket(t)

			count, err := tripFlow.RecordTripCounts(ctx, ticket.ID, &dto.RecordTripCountsRequest{
				BirdsOnGuide:  4000,
				BirdsReceived: 3960,
				BirdsDOA:      25,
			})
			require.NoError(t, err)
			assert.Equal(t, 40, count.BirdsMissing)
			assert.Equal(t, 25, count.BirdsDOA)

			// Re-recording replaces the previous counts.
			count, err = tripFlow.RecordTripCounts(ctx, ticket.ID, &dto.RecordTripCountsRequest{
				BirdsOnGuide:  4000,
				BirdsReceived: 3980,
				BirdsDOA:      25,
			})
			require.NoError(t, err)
			assert.Equal(t, 20, count.BirdsMissing)
		})

		t.Run("InconsistentCountsRejected", func(t *testing.T) {
			ticket := openTicket(t)

			_, err := tripFlow.RecordTripCounts(ctx, ticket.ID, &dto.RecordTripCountsRequest{
				BirdsOnGuide:  4000,
				BirdsReceived: 4100,
			})
			require.Error(t, err)
			assert.True(t, businessflow.IsCountsInconsistent(err))

			_, err = tripFlow.RecordTripCounts(ctx, ticket.ID, &dto.RecordTripCountsRequest{
				BirdsOnGuide:  4000,
				BirdsReceived: 3900,
				BirdsDOA:      3950,
			})
			require.Error(t, err)
			assert.True(t, businessflow.IsCountsInconsistent(err))
		})

		t.Run("OriginReportsFlockAge", func(t *testing.T) {
			ticket := openTicket(t)
			_, batch, err := fixtures.CreateTestFarmWithBatch()
			require.NoError(t, err)

			origin, err := tripFlow.SetTripOrigin(ctx, ticket.ID, &dto.SetTripOriginRequest{BatchID: batch.ID})
			require.NoError(t, err)
			assert.Equal(t, batch.ID, origin.BatchID)
			assert.Equal(t, batch.AgeInDays(clock.Now()), origin.FlockAge)

			// Pointing the ticket at another batch replaces the link.
			_, otherBatch, err := fixtures.CreateTestFarmWithBatch()
			require.NoError(t, err)
			origin, err = tripFlow.SetTripOrigin(ctx, ticket.ID, &dto.SetTripOriginRequest{BatchID: otherBatch.ID})
			require.NoError(t, err)
			assert.Equal(t, otherBatch.ID, origin.BatchID)
		})

		t.Run("BatchTripsListEveryLoad", func(t *testing.T) {
			_, batch, err := fixtures.CreateTestFarmWithBatch()
			require.NoError(t, err)

			first := openTicket(t)
			second := openTicket(t)
			_, err = tripFlow.SetTripOrigin(ctx, first.ID, &dto.SetTripOriginRequest{BatchID: batch.ID})
			require.NoError(t, err)
			_, err = tripFlow.SetTripOrigin(ctx, second.ID, &dto.SetTripOriginRequest{BatchID: batch.ID})
			require.NoError(t, err)

			trips, err := tripFlow.ListBatchTrips(ctx, batch.ID)
			require.NoError(t, err)
			require.Len(t, trips, 2)
			for _, trip := range trips {
				assert.Equal(t, batch.ID, trip.BatchID)
				assert.Equal(t, batch.AgeInDays(clock.Now()), trip.FlockAge)
			}
			assert.Equal(t, first.ID, trips[0].TicketID)
			assert.Equal(t, second.ID, trips[1].TicketID)

			_, err = tripFlow.ListBatchTrips(ctx, 999999)
			require.Error(t, err)
			assert.True(t, businessflow.IsNotFoundError(err))
		})

		t.Run("OriginRequiresExistingBatch", func(t *testing.T) {
			ticket := openTicket(t)

			_, err := tripFlow.SetTripOrigin(ctx, ticket.ID, &dto.SetTripOriginRequest{BatchID: 999999})
			require.Error(t, err)
			assert.True(t, businessflow.IsNotFoundError(err))
		})

		t.Run("StatisticsDerivedFromCountsAndNetWeight", func(t *testing.T) {
			ticket := openTicket(t)

			_, err := ticketFlow.RecordWeight(ctx, ticket.ID, &dto.RecordWeightRequest{Kind: models.WeightKindGross, Weight: 12000}, scaffold.User.ID)
			require.NoError(t, err)
			_, err = ticketFlow.RecordWeight(ctx, ticket.ID, &dto.RecordWeightRequest{Kind: models.WeightKindTare, Weight: 4000}, scaffold.User.ID)
			require.NoError(t, err)

			_, err = tripFlow.RecordTripCounts(ctx, ticket.ID, &dto.RecordTripCountsRequest{
				BirdsOnGuide:  4000,
				BirdsReceived: 3900,
				BirdsDOA:      39,
			})
			require.NoError(t, err)

			stats, err := tripFlow.GetTripStatistics(ctx, ticket.ID)
			require.NoError(t, err)
			require.NotNil(t, stats.MortalityPercent)
			assert.InDelta(t, 1.0, *stats.MortalityPercent, 0.0001)
			require.NotNil(t, stats.MissingPercent)
			assert.InDelta(t, 2.5, *stats.MissingPercent, 0.0001)
			require.NotNil(t, stats.AvgBirdWeight)
			assert.InDelta(t, 8000.0/3900.0, *stats.AvgBirdWeight, 0.0001)
			require.NotNil(t, stats.NetWeight)
			assert.Equal(t, 8000.0, *stats.NetWeight)
		})

		t.Run("StatisticsWithoutCountsAreEmpty", func(t *testing.T) {
			ticket := openTicket(t)

			stats, err := tripFlow.GetTripStatistics(ctx, ticket.ID)
			require.NoError(t, err)
			assert.Nil(t, stats.MortalityPercent)
			assert.Nil(t, stats.MissingPercent)
			assert.Nil(t, stats.AvgBirdWeight)
			assert.Nil(t, stats.NetWeight)
		})

		t.Run("VoidedTicketRejectsEnrichment", func(t *testing.T) {
			ticket := openTicket(t)
			_, err := ticketFlow.VoidTicket(ctx, ticket.ID, &dto.VoidTicketRequest{Reason: "operator error"})
			require.NoError(t, err)

			_, err = tripFlow.RecordTripCounts(ctx, ticket.ID, &dto.RecordTripCountsRequest{
				BirdsOnGuide:  100,
				BirdsReceived: 100,
			})
			require.Error(t, err)
			assert.True(t, businessflow.IsTicketVoided(err))
		})

		return nil
	})
	require.NoError(t, err)
}
