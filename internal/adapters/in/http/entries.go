package http

import (
	"context"
	"net/http"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

type EntryRequest struct {
	QuantitiesRequest

	ZoneID int64 `json:"zoneId" validate:"required,gt=0"`
}

type EntriesRequest struct {
	Entries []EntryRequest `json:"entries" validate:"required,min=1,dive"`
}

type MoveRequest struct {
	ZoneID int64 `json:"zoneId" validate:"required,gt=0"`
}

// CreateEntries handles POST /api/v1/deliveries/{id}/entries. The batch is all or nothing.
func (s *Server) CreateEntries(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	deliveryID, err := pathID(c)
	if err != nil {
		return err
	}
	var req EntriesRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	batch := make([]commands.NewEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		q, err := e.QuantitiesRequest.toDomain()
		if err != nil {
			return err
		}
		batch = append(batch, commands.NewEntry{ZoneID: e.ZoneID, Quantities: q})
	}
	cmd, err := commands.NewCreateEntriesCommand(actor, deliveryID, batch)
	if err != nil {
		return err
	}
	ids, err := s.h.CreateEntries.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedMany{IDs: ids})
}

func (s *Server) EditEntry(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req QuantitiesRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	q, err := req.toDomain()
	if err != nil {
		return err
	}
	cmd, err := commands.NewEditEntryCommand(actor, id, q)
	if err != nil {
		return err
	}
	if err := s.h.EditEntry.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) MoveEntry(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req MoveRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewMoveEntryCommand(actor, id, req.ZoneID)
	if err != nil {
		return err
	}
	if err := s.h.MoveEntry.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) StartEntryProcessing(c echo.Context) error {
	return s.entryCommand(c, s.h.StartEntryProcessing.Handle)
}

func (s *Server) FinishEntryProcessing(c echo.Context) error {
	return s.entryCommand(c, s.h.FinishEntryProcessing.Handle)
}

func (s *Server) DeleteEntry(c echo.Context) error {
	return s.entryCommand(c, s.h.DeleteEntry.Handle)
}

func (s *Server) RestoreEntry(c echo.Context) error {
	return s.entryCommand(c, s.h.RestoreEntry.Handle)
}

func (s *Server) GetEntry(c echo.Context) error {
	query, err := getByIDQuery(c)
	if err != nil {
		return err
	}
	e, err := s.h.GetEntry.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// ListEntries handles GET /api/v1/entries?deliveryId=&zoneId=&status=&visibility=.
func (s *Server) ListEntries(c echo.Context) error {
	deliveryID, err := queryInt(c, "deliveryId")
	if err != nil {
		return err
	}
	zoneID, err := queryInt(c, "zoneId")
	if err != nil {
		return err
	}
	statuses, err := queryStatuses(c)
	if err != nil {
		return err
	}
	visibility, err := queryVisibility(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListEntriesQuery(deliveryID, zoneID, statuses, visibility)
	if err != nil {
		return err
	}
	entries, err := s.h.ListEntries.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

func (s *Server) entryCommand(c echo.Context, handle func(context.Context, commands.EntryCommand) error) error {
	return idCommand(c, commands.NewEntryCommand, handle)
}
