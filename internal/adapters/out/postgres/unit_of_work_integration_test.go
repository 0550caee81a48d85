package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/shipmentrepo"
	"freight/internal/adapters/out/postgres/supplierrepo"
	"freight/internal/adapters/out/postgres/warehouserepo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/supplier"
	"freight/internal/core/domain/model/warehouse"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&supplierrepo.SupplierDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.ShipmentHistoryDTO{},
		&warehouserepo.WarehouseDTO{},
		&warehouserepo.CapacityHistoryDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
// Truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE suppliers, shipments, shipment_history, warehouses, warehouse_capacity_history",
	).Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.ShipmentRepository(), "First instance should provide shipment repository")
	suite.NotNil(uow1.WarehouseRepository(), "First instance should provide warehouse repository")
	suite.NotNil(uow1.SupplierRepository(), "First instance should provide supplier repository")
	suite.NotNil(uow2.ShipmentRepository(), "Second instance should provide shipment repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_SingleRepositoryTransaction verifies repository operations
// within a single transaction boundary work correctly.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testSupplier := createTestSupplier()
	testShipment := createTestShipment(testSupplier.ID())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.SupplierRepository().Add(ctx, testSupplier)
	suite.Require().NoError(err)

	err = uow.ShipmentRepository().Add(ctx, testShipment)
	suite.Require().NoError(err)

	retrieved, err := uow.ShipmentRepository().Get(ctx, testShipment.ID())
	suite.Require().NoError(err)
	suite.Equal(testShipment.ID(), retrieved.ID())

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err = newUow.ShipmentRepository().Get(ctx, testShipment.ID())
	suite.Require().NoError(err)
	suite.Equal(testShipment.ID(), retrieved.ID())
	suite.Equal(shipment.Intake, retrieved.Status())
}

// TestUnitOfWork_StoringWorkflow verifies the core transactional guarantee:
// the status change to Stored, the bin reservation, and both audit trails
// commit together in one transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_StoringWorkflow() {
	ctx := context.Background()
	actor := createTestActor()

	testSupplier := createTestSupplier()
	testShipment := createShipmentAt(suite.T(), testSupplier.ID(), shipment.ReceivingGoods)
	testWarehouse := createTestWarehouse("KLM", 10)

	setupUow := suite.factory.Create()
	suite.Require().NoError(setupUow.SupplierRepository().Add(ctx, testSupplier))
	suite.Require().NoError(setupUow.ShipmentRepository().Add(ctx, testShipment))
	suite.Require().NoError(setupUow.WarehouseRepository().Add(ctx, testWarehouse))

	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	locked, err := uow.ShipmentRepository().GetForUpdate(ctx, testShipment.ID())
	suite.Require().NoError(err)

	received := 500
	effect, err := locked.TransitionTo(shipment.Stored, actor, shipment.TransitionDetails{
		ReceivedQuantity: &received,
		Warehouse:        "KLM",
	})
	suite.Require().NoError(err)
	suite.Equal(shipment.CapacityReserve, effect)

	lockedWarehouse, err := uow.WarehouseRepository().GetForUpdate(ctx, "KLM")
	suite.Require().NoError(err)
	err = lockedWarehouse.Reserve(1, actor, "shipment stored")
	suite.Require().NoError(err)

	err = uow.ShipmentRepository().Update(ctx, locked)
	suite.Require().NoError(err)
	err = uow.WarehouseRepository().Update(ctx, lockedWarehouse)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	storedShipment, err := newUow.ShipmentRepository().Get(ctx, testShipment.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.Stored, storedShipment.Status())
	suite.Require().NotNil(storedShipment.ReceivedQuantity())
	suite.Equal(500, *storedShipment.ReceivedQuantity())
	suite.Equal(locked.Version()+1, storedShipment.Version())

	reservedWarehouse, err := newUow.WarehouseRepository().Get(ctx, "KLM")
	suite.Require().NoError(err)
	suite.Equal(1, reservedWarehouse.BinsUsed())

	var historyCount int64
	err = suite.db.Table("shipment_history").
		Where("shipment_id = ?", testShipment.ID().Bytes()).
		Count(&historyCount).Error
	suite.Require().NoError(err)
	suite.Equal(int64(1), historyCount, "Transition should write one history line")

	var capacityHistoryCount int64
	err = suite.db.Table("warehouse_capacity_history").
		Where("warehouse_name = ?", "KLM").
		Count(&capacityHistoryCount).Error
	suite.Require().NoError(err)
	suite.Equal(int64(1), capacityHistoryCount, "Reservation should write one ledger record")
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction across multiple repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testSupplier := createTestSupplier()
	testShipment := createTestShipment(testSupplier.ID())
	testWarehouse := createTestWarehouse("PTA", 5)

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.SupplierRepository().Add(ctx, testSupplier)
	suite.Require().NoError(err)
	err = uow.ShipmentRepository().Add(ctx, testShipment)
	suite.Require().NoError(err)
	err = uow.WarehouseRepository().Add(ctx, testWarehouse)
	suite.Require().NoError(err)

	_, err = uow.ShipmentRepository().Get(ctx, testShipment.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	_, err = newUow.ShipmentRepository().Get(ctx, testShipment.ID())
	suite.Require().Error(err, "Shipment should not exist after rollback")

	_, err = newUow.WarehouseRepository().Get(ctx, "PTA")
	suite.Require().Error(err, "Warehouse should not exist after rollback")

	_, err = newUow.SupplierRepository().Get(ctx, testSupplier.ID())
	suite.Require().Error(err, "Supplier should not exist after rollback")
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	supplier1 := createTestSupplier()
	supplier2 := createTestSupplier()
	shipment1 := createTestShipment(supplier1.ID())
	shipment2 := createTestShipment(supplier2.ID())

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)
	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	suite.Require().NoError(uow1.SupplierRepository().Add(ctx, supplier1))
	suite.Require().NoError(uow1.ShipmentRepository().Add(ctx, shipment1))
	suite.Require().NoError(uow2.SupplierRepository().Add(ctx, supplier2))
	suite.Require().NoError(uow2.ShipmentRepository().Add(ctx, shipment2))

	_, err = uow1.ShipmentRepository().Get(ctx, shipment1.ID())
	suite.Require().NoError(err, "UOW1 should see shipment1")

	_, err = uow1.ShipmentRepository().Get(ctx, shipment2.ID())
	suite.Require().Error(err, "UOW1 should not see shipment2")

	_, err = uow2.ShipmentRepository().Get(ctx, shipment2.ID())
	suite.Require().NoError(err, "UOW2 should see shipment2")

	_, err = uow2.ShipmentRepository().Get(ctx, shipment1.ID())
	suite.Require().Error(err, "UOW2 should not see shipment1")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.ShipmentRepository().Get(ctx, shipment1.ID())
	suite.Require().NoError(err, "Shipment1 should persist after commit")

	_, err = newUow.ShipmentRepository().Get(ctx, shipment2.ID())
	suite.Require().Error(err, "Shipment2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testSupplier := createTestSupplier()
	testShipment := createTestShipment(testSupplier.ID())

	err := uow.SupplierRepository().Add(ctx, testSupplier)
	suite.Require().NoError(err)
	err = uow.ShipmentRepository().Add(ctx, testShipment)
	suite.Require().NoError(err)

	retrieved, err := uow.ShipmentRepository().Get(ctx, testShipment.ID())
	suite.Require().NoError(err)
	suite.Equal(testShipment.ID(), retrieved.ID())

	newUow := suite.factory.Create()
	retrieved, err = newUow.ShipmentRepository().Get(ctx, testShipment.ID())
	suite.Require().NoError(err)
	suite.Equal(testShipment.ID(), retrieved.ID())
}

// TestUnitOfWork_StaleVersionUpdate verifies the optimistic concurrency check:
// an update based on an outdated aggregate version fails and writes nothing.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_StaleVersionUpdate() {
	ctx := context.Background()
	actor := createTestActor()

	testSupplier := createTestSupplier()
	testShipment := createTestShipment(testSupplier.ID())

	setupUow := suite.factory.Create()
	suite.Require().NoError(setupUow.SupplierRepository().Add(ctx, testSupplier))
	suite.Require().NoError(setupUow.ShipmentRepository().Add(ctx, testShipment))

	// Two actors load the same shipment.
	first, err := suite.factory.Create().ShipmentRepository().Get(ctx, testShipment.ID())
	suite.Require().NoError(err)
	second, err := suite.factory.Create().ShipmentRepository().Get(ctx, testShipment.ID())
	suite.Require().NoError(err)

	// First actor transitions and persists.
	_, err = first.TransitionTo(shipment.PlannedAirfreight, actor, shipment.TransitionDetails{})
	suite.Require().NoError(err)
	err = suite.factory.Create().ShipmentRepository().Update(ctx, first)
	suite.Require().NoError(err)

	// Second actor's write is now based on a stale version.
	_, err = second.TransitionTo(shipment.PlannedSeafreight, actor, shipment.TransitionDetails{})
	suite.Require().NoError(err)
	err = suite.factory.Create().ShipmentRepository().Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	// The first write won.
	final, err := suite.factory.Create().ShipmentRepository().Get(ctx, testShipment.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.PlannedAirfreight, final.Status())
}

// TestUnitOfWork_RowLockTimeout verifies that a transaction waiting on a row
// lock held by another transaction gives up within the configured bound and
// surfaces the sentinel instead of queueing indefinitely.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RowLockTimeout() {
	ctx := context.Background()

	testWarehouse := createTestWarehouse("KLM", 10)
	setupUow := suite.factory.Create()
	suite.Require().NoError(setupUow.WarehouseRepository().Add(ctx, testWarehouse))

	holder := suite.factory.Create()
	err := holder.Begin(ctx)
	suite.Require().NoError(err)
	defer holder.Rollback(ctx)

	_, err = holder.WarehouseRepository().GetForUpdate(ctx, "KLM")
	suite.Require().NoError(err)

	waiter := suite.factory.Create()
	err = waiter.Begin(ctx)
	suite.Require().NoError(err)
	defer waiter.Rollback(ctx)

	_, err = waiter.WarehouseRepository().GetForUpdate(ctx, "KLM")
	suite.Require().ErrorIs(err, ports.ErrRowLockTimeout)
}

// createTestActor creates a valid operator actor for testing purposes.
func createTestActor() kernel.Actor {
	actor, _ := kernel.NewActor("j.deboer", kernel.RoleOperator)
	return actor
}

// createTestSupplier creates a valid supplier for testing purposes.
func createTestSupplier() *supplier.Supplier {
	testSupplier, _ := supplier.NewSupplier(kernel.NewUUID(), "Fresh Blooms BV")
	return testSupplier
}

// createTestShipment creates a valid intake shipment for testing purposes.
func createTestShipment(supplierID kernel.UUID) *shipment.Shipment {
	testShipment, _ := shipment.NewShipment(kernel.NewUUID(), supplierID, "PO-2024-0042", 12, 500)
	return testShipment
}

// createShipmentAt restores a shipment at the given status for testing purposes.
func createShipmentAt(t *testing.T, supplierID kernel.UUID, status shipment.Status) *shipment.Shipment {
	t.Helper()

	testShipment, err := shipment.RestoreShipment(shipment.RestoreShipmentParams{
		ID:               kernel.NewUUID(),
		SupplierID:       supplierID,
		OrderReference:   "PO-2024-0042",
		WeekNumber:       12,
		Status:           status,
		ExpectedQuantity: 500,
		Version:          1,
	})
	if err != nil {
		t.Fatalf("restore shipment: %v", err)
	}
	return testShipment
}

// createTestWarehouse creates a valid empty warehouse for testing purposes.
func createTestWarehouse(name string, capacity int) *warehouse.Warehouse {
	testWarehouse, _ := warehouse.NewWarehouse(name, capacity)
	return testWarehouse
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
