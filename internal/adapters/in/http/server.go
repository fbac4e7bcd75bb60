// Package http exposes the warehouse use cases over REST.
package http

import (
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Handlers is every use case the transport dispatches to.
type Handlers struct {
	CreateDelivery  commands.CreateDeliveryCommandHandler
	EditDelivery    commands.EditDeliveryCommandHandler
	ApproveDelivery commands.ApproveDeliveryCommandHandler
	DeleteDelivery  commands.DeleteDeliveryCommandHandler
	RestoreDelivery commands.RestoreDeliveryCommandHandler

	CreateEntries         commands.CreateEntriesCommandHandler
	EditEntry             commands.EditEntryCommandHandler
	MoveEntry             commands.MoveEntryCommandHandler
	StartEntryProcessing  commands.StartEntryProcessingCommandHandler
	FinishEntryProcessing commands.FinishEntryProcessingCommandHandler
	DeleteEntry           commands.DeleteEntryCommandHandler
	RestoreEntry          commands.RestoreEntryCommandHandler

	CreateVendor  commands.CreateVendorCommandHandler
	EditVendor    commands.EditVendorCommandHandler
	DeleteVendor  commands.DeleteVendorCommandHandler
	RestoreVendor commands.RestoreVendorCommandHandler

	CreateZone  commands.CreateZoneCommandHandler
	EditZone    commands.EditZoneCommandHandler
	DeleteZone  commands.DeleteZoneCommandHandler
	RestoreZone commands.RestoreZoneCommandHandler

	CreateMarker  commands.CreateMarkerCommandHandler
	RenameMarker  commands.RenameMarkerCommandHandler
	DeleteMarker  commands.DeleteMarkerCommandHandler
	RestoreMarker commands.RestoreMarkerCommandHandler

	GetDelivery        queries.GetDeliveryQueryHandler
	ListDeliveries     queries.ListDeliveriesQueryHandler
	GetDeliveryHistory queries.GetDeliveryHistoryQueryHandler
	GetEntry           queries.GetEntryQueryHandler
	ListEntries        queries.ListEntriesQueryHandler
	GetVendor          queries.GetVendorQueryHandler
	ListVendors        queries.ListVendorsQueryHandler
	GetZone            queries.GetZoneQueryHandler
	ListZones          queries.ListZonesQueryHandler
	GetMarker          queries.GetMarkerQueryHandler
	ListMarkers        queries.ListMarkersQueryHandler
}

// Server coordinates between HTTP requests and the application use cases.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// Register mounts every route on g. Callers put authentication in front of g.
func (s *Server) Register(g *echo.Group) {
	g.GET("/deliveries", s.ListDeliveries)
	g.POST("/deliveries", s.CreateDelivery)
	g.GET("/deliveries/deleted", s.ListDeletedDeliveries)
	g.GET("/deliveries/:id", s.GetDelivery)
	g.PUT("/deliveries/:id", s.EditDelivery)
	g.DELETE("/deliveries/:id", s.DeleteDelivery)
	g.POST("/deliveries/:id/restore", s.RestoreDelivery)
	g.POST("/deliveries/:id/approve", s.ApproveDelivery)
	g.GET("/deliveries/:id/history", s.GetDeliveryHistory)
	g.POST("/deliveries/:id/entries", s.CreateEntries)

	g.GET("/entries", s.ListEntries)
	g.GET("/entries/:id", s.GetEntry)
	g.PUT("/entries/:id", s.EditEntry)
	g.DELETE("/entries/:id", s.DeleteEntry)
	g.POST("/entries/:id/move", s.MoveEntry)
	g.POST("/entries/:id/start", s.StartEntryProcessing)
	g.POST("/entries/:id/finish", s.FinishEntryProcessing)
	g.POST("/entries/:id/restore", s.RestoreEntry)

	g.GET("/vendors", s.ListVendors)
	g.POST("/vendors", s.CreateVendor)
	g.GET("/vendors/:id", s.GetVendor)
	g.PUT("/vendors/:id", s.EditVendor)
	g.DELETE("/vendors/:id", s.DeleteVendor)
	g.POST("/vendors/:id/restore", s.RestoreVendor)

	g.GET("/zones", s.ListZones)
	g.POST("/zones", s.CreateZone)
	g.GET("/zones/:id", s.GetZone)
	g.PUT("/zones/:id", s.EditZone)
	g.DELETE("/zones/:id", s.DeleteZone)
	g.POST("/zones/:id/restore", s.RestoreZone)

	g.GET("/markers", s.ListMarkers)
	g.POST("/markers", s.CreateMarker)
	g.GET("/markers/:id", s.GetMarker)
	g.PUT("/markers/:id", s.RenameMarker)
	g.DELETE("/markers/:id", s.DeleteMarker)
	g.POST("/markers/:id/restore", s.RestoreMarker)
}

// Created is the body of a successful create.
type Created struct {
	ID int64 `json:"id"`
}

type CreatedMany struct {
	IDs []int64 `json:"ids"`
}
