package commands_test

import (
	"testing"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/marker"
	"warehouse/internal/core/domain/model/vendor"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVendorCommandHandler_Handle_ValidatesMarkersAndZones(t *testing.T) {
	// Arrange
	s := newStore(t)
	markerID := s.createMarker("fragile")
	zoneID := s.createZone("Z1", false)

	cmd, err := commands.NewCreateVendorCommand(actor, vendor.Details{
		Name:      "Acme",
		MarkerIDs: []int64{markerID, markerID + 50},
		ZoneIDs:   []int64{zoneID + 50, zoneID},
	})
	require.NoError(t, err)

	// Act
	_, err = commands.NewCreateVendorCommandHandler(s.uows, clock).Handle(t.Context(), cmd)

	// Assert
	require.ErrorIs(t, err, errs.ErrValidation)
	assert.ErrorContains(t, err, "markerIds not found")
	assert.ErrorContains(t, err, "zoneIds not found")
	vendors, err := s.read().VendorRepository().ListWithDeleted(t.Context())
	require.NoError(t, err)
	assert.Empty(t, vendors)
}

func TestEditVendorCommandHandler_Handle_ReplacesLinks(t *testing.T) {
	// Arrange
	s := newStore(t)
	markerID := s.createMarker("fragile")
	zoneID := s.createZone("Z1", false)
	vendorID := s.createVendor("Acme")

	cmd, err := commands.NewEditVendorCommand("user-2", vendorID, vendor.Details{
		Name:         "Acme Logistics",
		SystemNumber: "V-100",
		MarkerIDs:    []int64{markerID},
		ZoneIDs:      []int64{zoneID},
	})
	require.NoError(t, err)

	// Act
	err = commands.NewEditVendorCommandHandler(s.uows, clock).Handle(t.Context(), cmd)

	// Assert
	require.NoError(t, err)
	v, err := s.read().VendorRepository().Get(t.Context(), vendorID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Logistics", v.Name())
	assert.Equal(t, []int64{markerID}, v.MarkerIDs())
	assert.Equal(t, []int64{zoneID}, v.ZoneIDs())
	require.NotNil(t, v.LastModifiedByUserID())
	assert.Equal(t, "user-2", *v.LastModifiedByUserID())
}

func TestDeleteVendorCommandHandler_Handle_CascadesToDeliveriesAndEntries(t *testing.T) {
	// Arrange
	s := newStore(t)
	zoneID := s.createZone("Z1", false)
	vendorID := s.createVendor("Acme")
	otherVendorID := s.createVendor("Other")
	deliveryID := s.createDelivery(vendorID)
	otherDeliveryID := s.createDelivery(otherVendorID)
	entryID := s.createEntry(deliveryID, zoneID)

	cmd, err := commands.NewVendorCommand(actor, vendorID)
	require.NoError(t, err)

	// Act
	err = commands.NewDeleteVendorCommandHandler(s.uows).Handle(t.Context(), cmd)

	// Assert
	require.NoError(t, err)
	assert.True(t, s.delivery(deliveryID).IsDeleted())
	assert.True(t, s.entry(entryID).IsDeleted())
	assert.False(t, s.delivery(otherDeliveryID).IsDeleted())

	// Restoring the vendor leaves its deliveries deleted.
	require.NoError(t, commands.NewRestoreVendorCommandHandler(s.uows).Handle(t.Context(), cmd))
	exists, err := s.read().VendorRepository().ExistsByID(t.Context(), vendorID)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.True(t, s.delivery(deliveryID).IsDeleted())
}

func TestCreateZoneCommandHandler_Handle_NamesAreUniqueAmongLiveZones(t *testing.T) {
	// Arrange
	s := newStore(t)
	zoneID := s.createZone("Dock A", false)
	handler := commands.NewCreateZoneCommandHandler(s.uows, clock)

	clash, err := commands.NewCreateZoneCommand(actor, commands.ZoneDetails{Name: "dock a"})
	require.NoError(t, err)

	// Act
	_, err = handler.Handle(t.Context(), clash)

	// Assert
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, err, commands.ErrZoneNameIsTaken)

	// A deleted zone frees its name, and cannot come back while the name is taken.
	zoneCmd, err := commands.NewZoneCommand(actor, zoneID)
	require.NoError(t, err)
	require.NoError(t, commands.NewDeleteZoneCommandHandler(s.uows).Handle(t.Context(), zoneCmd))

	_, err = handler.Handle(t.Context(), clash)
	require.NoError(t, err)

	err = commands.NewRestoreZoneCommandHandler(s.uows).Handle(t.Context(), zoneCmd)
	require.ErrorIs(t, err, commands.ErrZoneNameIsTaken)
}

func TestEditZoneCommandHandler_Handle_KeepsItsOwnName(t *testing.T) {
	// Arrange
	s := newStore(t)
	markerID := s.createMarker("cold")
	zoneID := s.createZone("Dock A", false)

	cmd, err := commands.NewEditZoneCommand(actor, zoneID, commands.ZoneDetails{
		Name:      "DOCK A",
		IsFinal:   true,
		MarkerIDs: []int64{markerID},
	})
	require.NoError(t, err)

	// Act
	err = commands.NewEditZoneCommandHandler(s.uows, clock).Handle(t.Context(), cmd)

	// Assert
	require.NoError(t, err)
	z, err := s.read().ZoneRepository().Get(t.Context(), zoneID)
	require.NoError(t, err)
	assert.Equal(t, "DOCK A", z.Name())
	assert.True(t, z.IsFinal())
	assert.Equal(t, []int64{markerID}, z.MarkerIDs())
}

func TestDeleteZoneCommandHandler_Handle_RefusesOccupiedZone(t *testing.T) {
	// Arrange
	s := newStore(t)
	zoneID := s.createZone("Z1", false)
	deliveryID := s.createDelivery(s.createVendor("Acme"))
	entryID := s.createEntry(deliveryID, zoneID)

	cmd, err := commands.NewZoneCommand(actor, zoneID)
	require.NoError(t, err)
	handler := commands.NewDeleteZoneCommandHandler(s.uows)

	// Act
	err = handler.Handle(t.Context(), cmd)

	// Assert
	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)

	require.NoError(t, commands.NewDeleteEntryCommandHandler(s.uows).Handle(t.Context(), s.entryCommand(entryID)))
	require.NoError(t, handler.Handle(t.Context(), cmd))

	exists, err := s.read().ZoneRepository().ExistsByID(t.Context(), zoneID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRestoreEntryCommandHandler_Handle_RequiresLiveZone(t *testing.T) {
	// Arrange
	s := newStore(t)
	zoneID := s.createZone("Z1", false)
	deliveryID := s.createDelivery(s.createVendor("Acme"))
	entryID := s.createEntry(deliveryID, zoneID)
	require.NoError(t, commands.NewDeleteEntryCommandHandler(s.uows).Handle(t.Context(), s.entryCommand(entryID)))

	zoneCmd, err := commands.NewZoneCommand(actor, zoneID)
	require.NoError(t, err)
	require.NoError(t, commands.NewDeleteZoneCommandHandler(s.uows).Handle(t.Context(), zoneCmd))

	// Act
	err = commands.NewRestoreEntryCommandHandler(s.uows).Handle(t.Context(), s.entryCommand(entryID))

	// Assert
	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "zoneId", validationErr.ParamName)
	assert.Equal(t, []int64{zoneID}, validationErr.IDs)
}

func TestReferenceChanges_AreFiledUnderTheirOwnAggregate(t *testing.T) {
	s := newStore(t)
	markerID := s.createMarker("fragile")

	history, err := s.read().ChangeLogRepository().History(t.Context(), marker.EntityType, markerID)

	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, markerID, history[0].EntityID)
	assert.Equal(t, "fragile", history[0].Details["name"])
}

func TestCommandConstructors_RejectMissingActorAndIDs(t *testing.T) {
	tests := []struct {
		name  string
		build func() error
		param string
	}{
		{"delivery actor", func() error { _, err := commands.NewDeliveryCommand("", 1); return err }, "actorId"},
		{"delivery id", func() error { _, err := commands.NewDeliveryCommand(actor, 0); return err }, "deliveryId"},
		{"entry id", func() error { _, err := commands.NewEntryCommand(actor, -1); return err }, "entryId"},
		{"move zone", func() error { _, err := commands.NewMoveEntryCommand(actor, 1, 0); return err }, "zoneId"},
		{"vendor id", func() error { _, err := commands.NewVendorCommand(actor, 0); return err }, "vendorId"},
		{"zone id", func() error { _, err := commands.NewZoneCommand(actor, 0); return err }, "zoneId"},
		{"marker id", func() error { _, err := commands.NewMarkerCommand(actor, 0); return err }, "markerId"},
		{"batch zone", func() error {
			_, err := commands.NewCreateEntriesCommand(actor, 1, []commands.NewEntry{{ZoneID: 0}})
			return err
		}, "zoneId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()

			require.ErrorIs(t, err, errs.ErrValueIsRequired)
			assert.ErrorContains(t, err, tt.param)
		})
	}
}
