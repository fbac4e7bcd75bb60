package cmd

import (
	"time"

	httpin "warehouse/internal/adapters/in/http"
	"warehouse/internal/adapters/out/postgres"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      commands.Clock
}

func NewCompositionRoot(gormDB *gorm.DB, log *zap.Logger) CompositionRoot {
	clock := func() time.Time { return time.Now().UTC() }
	return CompositionRoot{
		gormDB: gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB,
			postgres.WithClock(clock),
			postgres.WithLogger(log),
		),
		clock: clock,
	}
}

func (c *CompositionRoot) uows() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) markerUoWs() commands.MarkerUoWFactory {
	return FuncMarkerUoWFactory(func() commands.MarkerUoW {
		return c.uowFactory.Create()
	})
}

// Handlers wires every use case for the HTTP transport.
func (c *CompositionRoot) Handlers() httpin.Handlers {
	uows, markers := c.uows(), c.markerUoWs()
	return httpin.Handlers{
		CreateDelivery:  commands.NewCreateDeliveryCommandHandler(uows, c.clock),
		EditDelivery:    commands.NewEditDeliveryCommandHandler(uows, c.clock),
		ApproveDelivery: commands.NewApproveDeliveryCommandHandler(uows, c.clock),
		DeleteDelivery:  commands.NewDeleteDeliveryCommandHandler(uows),
		RestoreDelivery: commands.NewRestoreDeliveryCommandHandler(uows),

		CreateEntries:         commands.NewCreateEntriesCommandHandler(uows, c.clock),
		EditEntry:             commands.NewEditEntryCommandHandler(uows, c.clock),
		MoveEntry:             commands.NewMoveEntryCommandHandler(uows, c.clock),
		StartEntryProcessing:  commands.NewStartEntryProcessingCommandHandler(uows, c.clock),
		FinishEntryProcessing: commands.NewFinishEntryProcessingCommandHandler(uows, c.clock),
		DeleteEntry:           commands.NewDeleteEntryCommandHandler(uows),
		RestoreEntry:          commands.NewRestoreEntryCommandHandler(uows),

		CreateVendor:  commands.NewCreateVendorCommandHandler(uows, c.clock),
		EditVendor:    commands.NewEditVendorCommandHandler(uows, c.clock),
		DeleteVendor:  commands.NewDeleteVendorCommandHandler(uows),
		RestoreVendor: commands.NewRestoreVendorCommandHandler(uows),

		CreateZone:  commands.NewCreateZoneCommandHandler(uows, c.clock),
		EditZone:    commands.NewEditZoneCommandHandler(uows, c.clock),
		DeleteZone:  commands.NewDeleteZoneCommandHandler(uows),
		RestoreZone: commands.NewRestoreZoneCommandHandler(uows),

		CreateMarker:  commands.NewCreateMarkerCommandHandler(markers, c.clock),
		RenameMarker:  commands.NewRenameMarkerCommandHandler(markers, c.clock),
		DeleteMarker:  commands.NewDeleteMarkerCommandHandler(markers),
		RestoreMarker: commands.NewRestoreMarkerCommandHandler(markers),

		GetDelivery:        queries.NewGetDeliveryQueryHandler(c.gormDB),
		ListDeliveries:     queries.NewListDeliveriesQueryHandler(c.gormDB),
		GetDeliveryHistory: queries.NewGetDeliveryHistoryQueryHandler(c.gormDB),
		GetEntry:           queries.NewGetEntryQueryHandler(c.gormDB),
		ListEntries:        queries.NewListEntriesQueryHandler(c.gormDB),
		GetVendor:          queries.NewGetVendorQueryHandler(c.gormDB),
		ListVendors:        queries.NewListVendorsQueryHandler(c.gormDB),
		GetZone:            queries.NewGetZoneQueryHandler(c.gormDB),
		ListZones:          queries.NewListZonesQueryHandler(c.gormDB),
		GetMarker:          queries.NewGetMarkerQueryHandler(c.gormDB),
		ListMarkers:        queries.NewListMarkersQueryHandler(c.gormDB),
	}
}

type FuncMarkerUoWFactory func() commands.MarkerUoW

func (f FuncMarkerUoWFactory) Create() commands.MarkerUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
