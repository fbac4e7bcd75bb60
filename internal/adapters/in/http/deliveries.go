package http

import (
	"context"
	"net/http"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/delivery"
	"warehouse/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type QuantitiesRequest struct {
	Pallets  int `json:"pallets" validate:"gte=0"`
	Packages int `json:"packages" validate:"gte=0"`
	Pieces   int `json:"pieces" validate:"gte=0"`
}

func (r QuantitiesRequest) toDomain() (kernel.Quantities, error) {
	return kernel.NewQuantities(r.Pallets, r.Packages, r.Pieces)
}

type DeliveryRequest struct {
	QuantitiesRequest

	VendorID        int64     `json:"vendorId" validate:"required,gt=0"`
	SystemNumber    string    `json:"systemNumber" validate:"max=255"`
	ReceptionNumber string    `json:"receptionNumber" validate:"max=255"`
	TruckNumber     string    `json:"truckNumber" validate:"max=255"`
	Cmr             string    `json:"cmr" validate:"max=255"`
	DeliveryTime    time.Time `json:"deliveryTime" validate:"required"`
	MarkerIDs       []int64   `json:"markerIds" validate:"dive,gt=0"`
}

func (r DeliveryRequest) toDomain() (delivery.Details, error) {
	q, err := r.QuantitiesRequest.toDomain()
	if err != nil {
		return delivery.Details{}, err
	}
	return delivery.Details{
		VendorID:        r.VendorID,
		SystemNumber:    r.SystemNumber,
		ReceptionNumber: r.ReceptionNumber,
		TruckNumber:     r.TruckNumber,
		Cmr:             r.Cmr,
		DeliveryTime:    r.DeliveryTime,
		Quantities:      q,
		MarkerIDs:       r.MarkerIDs,
	}, nil
}

// CreateDelivery handles POST /api/v1/deliveries.
func (s *Server) CreateDelivery(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	var req DeliveryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	details, err := req.toDomain()
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateDeliveryCommand(actor, details)
	if err != nil {
		return err
	}
	id, err := s.h.CreateDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id})
}

// EditDelivery handles PUT /api/v1/deliveries/{id}.
func (s *Server) EditDelivery(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req DeliveryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	details, err := req.toDomain()
	if err != nil {
		return err
	}
	cmd, err := commands.NewEditDeliveryCommand(actor, id, details)
	if err != nil {
		return err
	}
	if err := s.h.EditDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) ApproveDelivery(c echo.Context) error {
	return s.deliveryCommand(c, s.h.ApproveDelivery.Handle)
}

func (s *Server) DeleteDelivery(c echo.Context) error {
	return s.deliveryCommand(c, s.h.DeleteDelivery.Handle)
}

func (s *Server) RestoreDelivery(c echo.Context) error {
	return s.deliveryCommand(c, s.h.RestoreDelivery.Handle)
}

func (s *Server) GetDelivery(c echo.Context) error {
	query, err := getByIDQuery(c)
	if err != nil {
		return err
	}
	d, err := s.h.GetDelivery.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

// ListDeliveries handles GET /api/v1/deliveries?page=&pageSize=&visibility=&vendorId=.
func (s *Server) ListDeliveries(c echo.Context) error {
	visibility, err := queryVisibility(c)
	if err != nil {
		return err
	}
	return s.listDeliveries(c, visibility)
}

func (s *Server) ListDeletedDeliveries(c echo.Context) error {
	return s.listDeliveries(c, queries.OnlyDeleted)
}

func (s *Server) listDeliveries(c echo.Context, visibility queries.Visibility) error {
	page, err := queryPage(c)
	if err != nil {
		return err
	}
	vendorID, err := queryInt(c, "vendorId")
	if err != nil {
		return err
	}
	query, err := queries.NewListDeliveriesQuery(page, visibility, vendorID)
	if err != nil {
		return err
	}
	result, err := s.h.ListDeliveries.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) GetDeliveryHistory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	query, err := queries.NewDeliveryHistoryQuery(id)
	if err != nil {
		return err
	}
	history, err := s.h.GetDeliveryHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, history)
}

func (s *Server) deliveryCommand(c echo.Context, handle func(context.Context, commands.DeliveryCommand) error) error {
	return idCommand(c, commands.NewDeliveryCommand, handle)
}

func getByIDQuery(c echo.Context) (queries.GetByIDQuery, error) {
	id, err := pathID(c)
	if err != nil {
		return queries.GetByIDQuery{}, err
	}
	visibility, err := queryVisibility(c)
	if err != nil {
		return queries.GetByIDQuery{}, err
	}
	return queries.NewGetByIDQuery(id, visibility)
}
