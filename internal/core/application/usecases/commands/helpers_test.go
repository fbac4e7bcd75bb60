package commands_test

import (
	"testing"
	"time"

	postgres_adapter "warehouse/internal/adapters/out/postgres"
	"warehouse/internal/adapters/out/postgres/testdb"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/delivery"
	"warehouse/internal/core/domain/model/entry"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/vendor"
	"warehouse/internal/core/ports"

	"github.com/stretchr/testify/require"
)

const actor = "user-1"

var now = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func clock() time.Time {
	return now
}

type uowFactory struct {
	inner ports.UnitOfWorkFactory
}

func (f uowFactory) Create() commands.UoW {
	return f.inner.Create()
}

type markerUoWFactory struct {
	inner ports.UnitOfWorkFactory
}

func (f markerUoWFactory) Create() commands.MarkerUoW {
	return f.inner.Create()
}

// store runs handlers against an in-memory database and reads back through plain repositories.
type store struct {
	t       *testing.T
	db      ports.UnitOfWorkFactory
	uows    commands.UoWFactory
	markers commands.MarkerUoWFactory
}

func newStore(t *testing.T) *store {
	db := postgres_adapter.NewGormUnitOfWorkFactory(testdb.NewSQLite(t), postgres_adapter.WithClock(clock))
	return &store{
		t:       t,
		db:      db,
		uows:    uowFactory{inner: db},
		markers: markerUoWFactory{inner: db},
	}
}

func (s *store) read() ports.UnitOfWork {
	return s.db.Create()
}

func quantities(t *testing.T, pallets, packages, pieces int) kernel.Quantities {
	q, err := kernel.NewQuantities(pallets, packages, pieces)
	require.NoError(t, err)
	return q
}

func (s *store) createMarker(name string) int64 {
	cmd, err := commands.NewCreateMarkerCommand(actor, name)
	require.NoError(s.t, err)
	id, err := commands.NewCreateMarkerCommandHandler(s.markers, clock).Handle(s.t.Context(), cmd)
	require.NoError(s.t, err)
	return id
}

func (s *store) createZone(name string, isFinal bool) int64 {
	cmd, err := commands.NewCreateZoneCommand(actor, commands.ZoneDetails{Name: name, IsFinal: isFinal})
	require.NoError(s.t, err)
	id, err := commands.NewCreateZoneCommandHandler(s.uows, clock).Handle(s.t.Context(), cmd)
	require.NoError(s.t, err)
	return id
}

func (s *store) createVendor(name string) int64 {
	cmd, err := commands.NewCreateVendorCommand(actor, vendor.Details{Name: name})
	require.NoError(s.t, err)
	id, err := commands.NewCreateVendorCommandHandler(s.uows, clock).Handle(s.t.Context(), cmd)
	require.NoError(s.t, err)
	return id
}

func deliveryDetails(t *testing.T, vendorID int64, markerIDs ...int64) delivery.Details {
	return delivery.Details{
		VendorID:     vendorID,
		SystemNumber: "SN-1",
		TruckNumber:  "CA1234",
		DeliveryTime: now,
		Quantities:   quantities(t, 10, 20, 30),
		MarkerIDs:    markerIDs,
	}
}

func (s *store) createDelivery(vendorID int64, markerIDs ...int64) int64 {
	cmd, err := commands.NewCreateDeliveryCommand(actor, deliveryDetails(s.t, vendorID, markerIDs...))
	require.NoError(s.t, err)
	id, err := commands.NewCreateDeliveryCommandHandler(s.uows, clock).Handle(s.t.Context(), cmd)
	require.NoError(s.t, err)
	return id
}

func (s *store) tryCreateEntries(deliveryID int64, entries ...commands.NewEntry) ([]int64, error) {
	cmd, err := commands.NewCreateEntriesCommand(actor, deliveryID, entries)
	require.NoError(s.t, err)
	return commands.NewCreateEntriesCommandHandler(s.uows, clock).Handle(s.t.Context(), cmd)
}

// createEntry allocates one unit of everything into zoneID.
func (s *store) createEntry(deliveryID, zoneID int64) int64 {
	ids, err := s.tryCreateEntries(deliveryID, commands.NewEntry{ZoneID: zoneID, Quantities: quantities(s.t, 1, 1, 1)})
	require.NoError(s.t, err)
	require.Len(s.t, ids, 1)
	return ids[0]
}

func (s *store) deliveryCommand(id int64) commands.DeliveryCommand {
	cmd, err := commands.NewDeliveryCommand(actor, id)
	require.NoError(s.t, err)
	return cmd
}

func (s *store) entryCommand(id int64) commands.EntryCommand {
	cmd, err := commands.NewEntryCommand(actor, id)
	require.NoError(s.t, err)
	return cmd
}

func (s *store) delivery(id int64) *delivery.Delivery {
	d, err := s.read().DeliveryRepository().GetWithDeleted(s.t.Context(), id)
	require.NoError(s.t, err)
	return d
}

func (s *store) entry(id int64) *entry.Entry {
	e, err := s.read().EntryRepository().GetWithDeleted(s.t.Context(), id)
	require.NoError(s.t, err)
	return e
}

func (s *store) startEntry(id int64) error {
	return commands.NewStartEntryProcessingCommandHandler(s.uows, clock).Handle(s.t.Context(), s.entryCommand(id))
}

func (s *store) finishEntry(id int64) error {
	return commands.NewFinishEntryProcessingCommandHandler(s.uows, clock).Handle(s.t.Context(), s.entryCommand(id))
}

// requireDeletionTriple checks that the deletion flag, timestamp and actor are set or cleared together.
func requireDeletionTriple(t *testing.T, e kernel.SoftDeletable, deletedAt *time.Time, deletedBy *string) {
	t.Helper()
	if e.IsDeleted() {
		require.NotNil(t, deletedAt)
		require.NotNil(t, deletedBy)
		return
	}
	require.Nil(t, deletedAt)
	require.Nil(t, deletedBy)
}
