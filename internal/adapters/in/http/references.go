package http

import (
	"context"
	"net/http"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/vendor"

	"github.com/labstack/echo/v4"
)

type VendorRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	SystemNumber string  `json:"systemNumber" validate:"max=255"`
	MarkerIDs    []int64 `json:"markerIds" validate:"dive,gt=0"`
	ZoneIDs      []int64 `json:"zoneIds" validate:"dive,gt=0"`
}

func (r VendorRequest) toDomain() vendor.Details {
	return vendor.Details{
		Name:         r.Name,
		SystemNumber: r.SystemNumber,
		MarkerIDs:    r.MarkerIDs,
		ZoneIDs:      r.ZoneIDs,
	}
}

type ZoneRequest struct {
	Name      string  `json:"name" validate:"required,max=255"`
	IsFinal   bool    `json:"isFinal"`
	MarkerIDs []int64 `json:"markerIds" validate:"dive,gt=0"`
}

func (r ZoneRequest) toDetails() commands.ZoneDetails {
	return commands.ZoneDetails{Name: r.Name, IsFinal: r.IsFinal, MarkerIDs: r.MarkerIDs}
}

type MarkerRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (s *Server) CreateVendor(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	var req VendorRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewCreateVendorCommand(actor, req.toDomain())
	if err != nil {
		return err
	}
	id, err := s.h.CreateVendor.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id})
}

func (s *Server) EditVendor(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req VendorRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewEditVendorCommand(actor, id, req.toDomain())
	if err != nil {
		return err
	}
	if err := s.h.EditVendor.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) DeleteVendor(c echo.Context) error {
	return vendorCommand(c, s.h.DeleteVendor.Handle)
}

func (s *Server) RestoreVendor(c echo.Context) error {
	return vendorCommand(c, s.h.RestoreVendor.Handle)
}

func (s *Server) GetVendor(c echo.Context) error {
	return getOne(c, s.h.GetVendor.Handle)
}

func (s *Server) ListVendors(c echo.Context) error {
	return listAll(c, s.h.ListVendors.Handle)
}

func (s *Server) CreateZone(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	var req ZoneRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewCreateZoneCommand(actor, req.toDetails())
	if err != nil {
		return err
	}
	id, err := s.h.CreateZone.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id})
}

func (s *Server) EditZone(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req ZoneRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewEditZoneCommand(actor, id, req.toDetails())
	if err != nil {
		return err
	}
	if err := s.h.EditZone.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) DeleteZone(c echo.Context) error {
	return zoneCommand(c, s.h.DeleteZone.Handle)
}

func (s *Server) RestoreZone(c echo.Context) error {
	return zoneCommand(c, s.h.RestoreZone.Handle)
}

func (s *Server) GetZone(c echo.Context) error {
	return getOne(c, s.h.GetZone.Handle)
}

func (s *Server) ListZones(c echo.Context) error {
	return listAll(c, s.h.ListZones.Handle)
}

func (s *Server) CreateMarker(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	var req MarkerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewCreateMarkerCommand(actor, req.Name)
	if err != nil {
		return err
	}
	id, err := s.h.CreateMarker.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id})
}

func (s *Server) RenameMarker(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req MarkerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewRenameMarkerCommand(actor, id, req.Name)
	if err != nil {
		return err
	}
	if err := s.h.RenameMarker.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) DeleteMarker(c echo.Context) error {
	return markerCommand(c, s.h.DeleteMarker.Handle)
}

func (s *Server) RestoreMarker(c echo.Context) error {
	return markerCommand(c, s.h.RestoreMarker.Handle)
}

func (s *Server) GetMarker(c echo.Context) error {
	return getOne(c, s.h.GetMarker.Handle)
}

func (s *Server) ListMarkers(c echo.Context) error {
	return listAll(c, s.h.ListMarkers.Handle)
}

func vendorCommand(c echo.Context, handle func(context.Context, commands.VendorCommand) error) error {
	return idCommand(c, commands.NewVendorCommand, handle)
}

func zoneCommand(c echo.Context, handle func(context.Context, commands.ZoneCommand) error) error {
	return idCommand(c, commands.NewZoneCommand, handle)
}

func markerCommand(c echo.Context, handle func(context.Context, commands.MarkerCommand) error) error {
	return idCommand(c, commands.NewMarkerCommand, handle)
}

// idCommand runs a command that needs nothing but the actor and the id from the path.
func idCommand[C any](
	c echo.Context,
	build func(actorID string, id int64) (C, error),
	handle func(context.Context, C) error,
) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cmd, err := build(actor, id)
	if err != nil {
		return err
	}
	if err := handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func getOne[T any](c echo.Context, handle func(context.Context, queries.GetByIDQuery) (T, error)) error {
	query, err := getByIDQuery(c)
	if err != nil {
		return err
	}
	out, err := handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func listAll[T any](c echo.Context, handle func(context.Context, queries.ListQuery) ([]T, error)) error {
	visibility, err := queryVisibility(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListQuery(visibility)
	if err != nil {
		return err
	}
	out, err := handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
