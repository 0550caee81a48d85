package shipmentrepo_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/shipmentrepo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id any, aggregate any) {
	m.Called(id, aggregate)
}

// ShipmentRepositoryIntegrationTestSuite provides integration tests for
// ShipmentRepository using PostgreSQL containers to verify persistence of the
// aggregate, its optimistic version check, and the append-only history table.
type ShipmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *shipmentrepo.GormShipmentRepository
	tracker    *MockAggregateTracker
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.ShipmentHistoryDTO{},
	))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shipments, shipment_history").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = shipmentrepo.NewGormShipmentRepository(suite.db, suite.tracker)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_ValidShipment_Success() {
	ctx := context.Background()
	testShipment := suite.createTestShipment()

	err := suite.repository.Add(ctx, testShipment)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testShipment.ID())
	suite.Require().NoError(err)
	suite.True(testShipment.IsEqual(retrieved))
	suite.Equal(shipment.Intake, retrieved.Status())
	suite.Equal("PO-2024-0042", retrieved.OrderReference())
	suite.Equal(12, retrieved.WeekNumber())
	suite.Equal(500, retrieved.ExpectedQuantity())
	suite.Equal(1, retrieved.Version())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestRoundTrip_UninspectedShipment() {
	ctx := context.Background()
	testShipment := suite.createTestShipment()

	err := suite.repository.Add(ctx, testShipment)
	suite.Require().NoError(err)

	var dto shipmentrepo.ShipmentDTO
	suite.Require().NoError(suite.db.First(&dto, "id = ?", testShipment.ID().Bytes()).Error)
	suite.Equal("", dto.InspectionResult)

	retrieved, err := suite.repository.Get(ctx, testShipment.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.InspectionResultUnknown, retrieved.InspectionResult())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_NilShipment_ReturnsError() {
	ctx := context.Background()

	err := suite.repository.Add(ctx, nil)
	suite.Require().Error(err)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGet_NonExistentShipment_ReturnsNotFoundError() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_TransitionPersistsFieldsAndHistory() {
	ctx := context.Background()
	actor := suite.createTestActor()

	testShipment := suite.createTestShipment()
	suite.Require().NoError(suite.repository.Add(ctx, testShipment))

	_, err := testShipment.TransitionTo(shipment.PlannedAirfreight, actor, shipment.TransitionDetails{
		Note: "booked on KL592",
	})
	suite.Require().NoError(err)

	err = suite.repository.Update(ctx, testShipment)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testShipment.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.PlannedAirfreight, retrieved.Status())
	suite.Equal(2, retrieved.Version())

	var histories []shipmentrepo.ShipmentHistoryDTO
	err = suite.db.Find(&histories, "shipment_id = ?", testShipment.ID().Bytes()).Error
	suite.Require().NoError(err)
	suite.Require().Len(histories, 1)
	suite.Equal(shipment.Intake.String(), histories[0].FromStatus)
	suite.Equal(shipment.PlannedAirfreight.String(), histories[0].ToStatus)
	suite.Equal(actor.Name(), histories[0].Actor)
	suite.Equal("booked on KL592", histories[0].Note)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsVersionError() {
	ctx := context.Background()
	actor := suite.createTestActor()

	testShipment := suite.createTestShipment()
	suite.Require().NoError(suite.repository.Add(ctx, testShipment))

	// Load two copies of the same shipment, both at version 1.
	first, err := suite.repository.Get(ctx, testShipment.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testShipment.ID())
	suite.Require().NoError(err)

	_, err = first.TransitionTo(shipment.PlannedAirfreight, actor, shipment.TransitionDetails{})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	_, err = second.TransitionTo(shipment.PlannedSeafreight, actor, shipment.TransitionDetails{})
	suite.Require().NoError(err)

	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	// The losing write left no trace.
	final, err := suite.repository.Get(ctx, testShipment.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.PlannedAirfreight, final.Status())
	suite.Equal(2, final.Version())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestRoundTrip_PostArrivalFields() {
	ctx := context.Background()

	received := 480
	warehouseName := "KLM"
	startedAt := time.Now().UTC().Truncate(time.Microsecond)
	completedAt := startedAt.Add(45 * time.Minute)

	restored, err := shipment.RestoreShipment(shipment.RestoreShipmentParams{
		ID:                   kernel.NewUUID(),
		SupplierID:           kernel.NewUUID(),
		OrderReference:       "PO-2024-0107",
		WeekNumber:           31,
		Status:               shipment.Stored,
		ReceivingWarehouse:   &warehouseName,
		UnloadingStartedAt:   &startedAt,
		UnloadingCompletedAt: &completedAt,
		InspectionActor:      "p.smit",
		InspectionResult:     shipment.InspectionPass,
		InspectionNotes:      "minor bruising on outer boxes",
		ReinspectionCount:    1,
		ReceivingActor:       "m.visser",
		ReceivedQuantity:     &received,
		ExpectedQuantity:     500,
		Version:              4,
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, restored))

	retrieved, err := suite.repository.Get(ctx, restored.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.Stored, retrieved.Status())
	suite.Require().NotNil(retrieved.ReceivingWarehouse())
	suite.Equal("KLM", *retrieved.ReceivingWarehouse())
	suite.Require().NotNil(retrieved.UnloadingStartedAt())
	suite.WithinDuration(startedAt, *retrieved.UnloadingStartedAt(), time.Millisecond)
	suite.Equal(shipment.InspectionPass, retrieved.InspectionResult())
	suite.Equal("minor bruising on outer boxes", retrieved.InspectionNotes())
	suite.Equal(1, retrieved.ReinspectionCount())
	suite.Require().NotNil(retrieved.ReceivedQuantity())
	suite.Equal(480, *retrieved.ReceivedQuantity())
	suite.True(retrieved.HasDiscrepancy())
	suite.Equal(4, retrieved.Version())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_ReinspectionClearsUnloadingCompletedAt() {
	ctx := context.Background()
	actor := suite.createTestActor()

	warehouseName := "KLM"
	startedAt := time.Now().UTC().Truncate(time.Microsecond)
	completedAt := startedAt.Add(45 * time.Minute)

	failed, err := shipment.RestoreShipment(shipment.RestoreShipmentParams{
		ID:                   kernel.NewUUID(),
		SupplierID:           kernel.NewUUID(),
		OrderReference:       "PO-2024-0113",
		WeekNumber:           33,
		Status:               shipment.InspectionFailed,
		ReceivingWarehouse:   &warehouseName,
		UnloadingStartedAt:   &startedAt,
		UnloadingCompletedAt: &completedAt,
		InspectionActor:      "p.smit",
		InspectionResult:     shipment.InspectionFail,
		InspectionNotes:      "crushed cartons on pallet 3",
		ExpectedQuantity:     500,
		Version:              7,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, failed))

	_, err = failed.TransitionTo(shipment.Unloading, actor, shipment.TransitionDetails{Note: "pallet 3 repacked"})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, failed))

	var dto shipmentrepo.ShipmentDTO
	suite.Require().NoError(suite.db.First(&dto, "id = ?", failed.ID().Bytes()).Error)
	suite.Nil(dto.UnloadingCompletedAt)

	retrieved, err := suite.repository.Get(ctx, failed.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.Unloading, retrieved.Status())
	suite.Nil(retrieved.UnloadingCompletedAt())
	suite.Equal(1, retrieved.ReinspectionCount())
	suite.Equal(8, retrieved.Version())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetForUpdate_ReturnsShipment() {
	ctx := context.Background()

	testShipment := suite.createTestShipment()
	suite.Require().NoError(suite.repository.Add(ctx, testShipment))

	// Without a surrounding transaction the lock is acquired and released
	// immediately; this verifies the locking query path itself.
	retrieved, err := suite.repository.GetForUpdate(ctx, testShipment.ID())
	suite.Require().NoError(err)
	suite.Equal(testShipment.ID(), retrieved.ID())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetForUpdate_NonExistentShipment_ReturnsNotFoundError() {
	ctx := context.Background()

	_, err := suite.repository.GetForUpdate(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetAllActive_FiltersTerminalStatuses() {
	ctx := context.Background()

	active := suite.createShipmentWithStatus(shipment.InWarehouse)
	inTransit := suite.createShipmentWithStatus(shipment.InTransitSeafreight)
	stored := suite.createShipmentWithStatus(shipment.Stored)
	rejected := suite.createShipmentWithStatus(shipment.Rejected)
	archived := suite.createShipmentWithStatus(shipment.Archived)

	for _, s := range []*shipment.Shipment{active, inTransit, stored, rejected, archived} {
		suite.Require().NoError(suite.repository.Add(ctx, s))
	}

	shipments, err := suite.repository.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(shipments, 2)

	ids := map[kernel.UUID]bool{}
	for _, s := range shipments {
		ids[s.ID()] = true
	}
	suite.True(ids[active.ID()], "InWarehouse shipment should be active")
	suite.True(ids[inTransit.ID()], "InTransit shipment should be active")
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetAllActive_Empty_ReturnsEmptySlice() {
	ctx := context.Background()

	shipments, err := suite.repository.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Empty(shipments)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) createTestActor() kernel.Actor {
	actor, err := kernel.NewActor("j.deboer", kernel.RoleOperator)
	suite.Require().NoError(err)
	return actor
}

func (suite *ShipmentRepositoryIntegrationTestSuite) createTestShipment() *shipment.Shipment {
	testShipment, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), "PO-2024-0042", 12, 500)
	suite.Require().NoError(err)
	return testShipment
}

func (suite *ShipmentRepositoryIntegrationTestSuite) createShipmentWithStatus(status shipment.Status) *shipment.Shipment {
	var rejectionReason *string
	if status == shipment.Rejected {
		reason := "failed final inspection"
		rejectionReason = &reason
	}

	testShipment, err := shipment.RestoreShipment(shipment.RestoreShipmentParams{
		ID:               kernel.NewUUID(),
		SupplierID:       kernel.NewUUID(),
		OrderReference:   "PO-2024-0042",
		WeekNumber:       12,
		Status:           status,
		ExpectedQuantity: 500,
		RejectionReason:  rejectionReason,
		Version:          1,
	})
	suite.Require().NoError(err)
	return testShipment
}

func TestShipmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShipmentRepositoryIntegrationTestSuite))
}
