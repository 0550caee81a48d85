package cmd

import (
	"freight/internal/adapters/out/postgres"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/services"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB             *gorm.DB
	uowFactory         postgres.GormUnitOfWorkFactory
	reinspectionPolicy services.ReinspectionPolicy
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:             gormDB,
		uowFactory:         *postgres.NewGormUnitOfWorkFactory(gormDB),
		reinspectionPolicy: services.NewReinspectionPolicy(config.ReinspectionMax),
	}
}

func (c *CompositionRoot) CreateCreateSupplierCommandHandler() commands.CreateSupplierCommandHandler {
	var f commands.SupplierUoWFactory = FuncSupplierUoWFactory(func() commands.SupplierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateSupplierCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateWarehouseCommandHandler() commands.CreateWarehouseCommandHandler {
	var f commands.WarehouseUoWFactory = FuncWarehouseUoWFactory(func() commands.WarehouseUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateWarehouseCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.IntakeUoWFactory = FuncIntakeUoWFactory(func() commands.IntakeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionShipmentCommandHandler() commands.TransitionShipmentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionShipmentCommandHandler(f, c.reinspectionPolicy)
}

func (c *CompositionRoot) CreateRejectShipmentCommandHandler() commands.RejectShipmentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectShipmentCommandHandler(f)
}

func (c *CompositionRoot) CreateRecordDiscrepancyCommandHandler() commands.RecordDiscrepancyCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordDiscrepancyCommandHandler(f)
}

func (c *CompositionRoot) CreateAdjustCapacityCommandHandler() commands.AdjustCapacityCommandHandler {
	var f commands.WarehouseUoWFactory = FuncWarehouseUoWFactory(func() commands.WarehouseUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdjustCapacityCommandHandler(f)
}

func (c *CompositionRoot) CreateGetWarehouseCapacityQueryHandler() queries.GetWarehouseCapacityQueryHandler {
	return queries.NewGetWarehouseCapacityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCapacityHistoryQueryHandler() queries.GetCapacityHistoryQueryHandler {
	return queries.NewGetCapacityHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveShipmentsQueryHandler() queries.GetActiveShipmentsQueryHandler {
	return queries.NewGetActiveShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCapacityDriftQueryHandler() queries.GetCapacityDriftQueryHandler {
	return queries.NewGetCapacityDriftQueryHandler(c.gormDB)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncWarehouseUoWFactory func() commands.WarehouseUoW

func (f FuncWarehouseUoWFactory) Create() commands.WarehouseUoW {
	return f()
}

type FuncSupplierUoWFactory func() commands.SupplierUoW

func (f FuncSupplierUoWFactory) Create() commands.SupplierUoW {
	return f()
}

type FuncIntakeUoWFactory func() commands.IntakeUoW

func (f FuncIntakeUoWFactory) Create() commands.IntakeUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
