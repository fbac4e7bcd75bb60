package commands_test

import (
	"testing"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/delivery"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDeliveryCommandHandler_Handle_CreatesPendingDelivery(t *testing.T) {
	// Arrange
	s := newStore(t)
	markerID := s.createMarker("fragile")
	vendorID := s.createVendor("Acme")

	// Act
	id := s.createDelivery(vendorID, markerID)

	// Assert
	d := s.delivery(id)
	assert.Equal(t, delivery.Pending, d.Status())
	assert.False(t, d.IsApproved())
	assert.Nil(t, d.ApprovedOn())
	assert.Equal(t, []int64{markerID}, d.MarkerIDs())
	assert.Equal(t, actor, d.CreatedByUserID())
	assert.True(t, now.Equal(d.CreatedAt()))
	assert.Nil(t, d.LastModifiedAt())
	assert.False(t, d.IsDeleted())
	requireDeletionTriple(t, d, d.DeletedAt(), d.DeletedByUserID())
}

func TestCreateDeliveryCommandHandler_Handle_ReportsExactlyTheMissingMarkers(t *testing.T) {
	// Arrange
	s := newStore(t)
	present := s.createMarker("fragile")
	missing := present + 100
	vendorID := s.createVendor("Acme")

	cmd, err := commands.NewCreateDeliveryCommand(actor, deliveryDetails(t, vendorID, present, missing))
	require.NoError(t, err)

	// Act
	_, err = commands.NewCreateDeliveryCommandHandler(s.uows, clock).Handle(t.Context(), cmd)

	// Assert
	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "markerIds", validationErr.ParamName)
	assert.Equal(t, []int64{missing}, validationErr.IDs)

	deliveries, err := s.read().DeliveryRepository().ListWithDeleted(t.Context())
	require.NoError(t, err)
	assert.Empty(t, deliveries)
}

func TestCreateDeliveryCommandHandler_Handle_ReportsVendorAndMarkersTogether(t *testing.T) {
	// Arrange
	s := newStore(t)
	cmd, err := commands.NewCreateDeliveryCommand(actor, deliveryDetails(t, 42, 9))
	require.NoError(t, err)

	// Act
	_, err = commands.NewCreateDeliveryCommandHandler(s.uows, clock).Handle(t.Context(), cmd)

	// Assert
	require.ErrorIs(t, err, errs.ErrValidation)
	assert.ErrorContains(t, err, "vendorId not found: 42")
	assert.ErrorContains(t, err, "markerIds not found: 9")
}

func TestCreateDeliveryCommandHandler_Handle_DeletedVendorDoesNotResolve(t *testing.T) {
	// Arrange
	s := newStore(t)
	vendorID := s.createVendor("Acme")
	vendorCmd, err := commands.NewVendorCommand(actor, vendorID)
	require.NoError(t, err)
	require.NoError(t, commands.NewDeleteVendorCommandHandler(s.uows).Handle(t.Context(), vendorCmd))

	cmd, err := commands.NewCreateDeliveryCommand(actor, deliveryDetails(t, vendorID))
	require.NoError(t, err)

	// Act
	_, err = commands.NewCreateDeliveryCommandHandler(s.uows, clock).Handle(t.Context(), cmd)

	// Assert
	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "vendorId", validationErr.ParamName)
	assert.Equal(t, []int64{vendorID}, validationErr.IDs)
}

func TestCreateDeliveryCommandHandler_Handle_InvalidCommand(t *testing.T) {
	s := newStore(t)
	var cmd commands.CreateDeliveryCommand

	_, err := commands.NewCreateDeliveryCommandHandler(s.uows, clock).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, commands.ErrCreateDeliveryCommandIsNotConstructed)
}

func TestEditDeliveryCommandHandler_Handle_StampsLastModified(t *testing.T) {
	// Arrange
	s := newStore(t)
	vendorID := s.createVendor("Acme")
	id := s.createDelivery(vendorID)

	details := deliveryDetails(t, vendorID)
	details.TruckNumber = "CB9999"
	cmd, err := commands.NewEditDeliveryCommand("user-2", id, details)
	require.NoError(t, err)
	later := func() time.Time { return now.Add(time.Hour) }

	// Act
	err = commands.NewEditDeliveryCommandHandler(s.uows, later).Handle(t.Context(), cmd)

	// Assert
	require.NoError(t, err)
	d := s.delivery(id)
	assert.Equal(t, "CB9999", d.TruckNumber())
	require.NotNil(t, d.LastModifiedAt())
	assert.True(t, now.Add(time.Hour).Equal(*d.LastModifiedAt()))
	require.NotNil(t, d.LastModifiedByUserID())
	assert.Equal(t, "user-2", *d.LastModifiedByUserID())
	assert.Equal(t, actor, d.CreatedByUserID())
	assert.True(t, now.Equal(d.CreatedAt()))
}

func TestEditDeliveryCommandHandler_Handle_RevalidatesMarkers(t *testing.T) {
	// Arrange
	s := newStore(t)
	vendorID := s.createVendor("Acme")
	id := s.createDelivery(vendorID)

	cmd, err := commands.NewEditDeliveryCommand(actor, id, deliveryDetails(t, vendorID, 5, 9))
	require.NoError(t, err)

	// Act
	err = commands.NewEditDeliveryCommandHandler(s.uows, clock).Handle(t.Context(), cmd)

	// Assert
	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []int64{5, 9}, validationErr.IDs)
	assert.Empty(t, s.delivery(id).MarkerIDs())
}

func TestEditDeliveryCommandHandler_Handle_RejectedOnceApproved(t *testing.T) {
	// Arrange
	s := newStore(t)
	vendorID := s.createVendor("Acme")
	id := s.createDelivery(vendorID)
	require.NoError(t, commands.NewApproveDeliveryCommandHandler(s.uows, clock).Handle(t.Context(), s.deliveryCommand(id)))

	cmd, err := commands.NewEditDeliveryCommand(actor, id, deliveryDetails(t, vendorID))
	require.NoError(t, err)

	// Act
	err = commands.NewEditDeliveryCommandHandler(s.uows, clock).Handle(t.Context(), cmd)

	// Assert
	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
}

func TestApproveDeliveryCommandHandler_Handle_ApprovesOnce(t *testing.T) {
	// Arrange
	s := newStore(t)
	id := s.createDelivery(s.createVendor("Acme"))
	handler := commands.NewApproveDeliveryCommandHandler(s.uows, clock)

	// Act
	err := handler.Handle(t.Context(), s.deliveryCommand(id))

	// Assert
	require.NoError(t, err)
	d := s.delivery(id)
	assert.True(t, d.IsApproved())
	require.NotNil(t, d.ApprovedOn())
	assert.True(t, now.Equal(*d.ApprovedOn()))
	assert.Equal(t, delivery.Approved, d.Status())

	// Approving again is not a silent no-op.
	err = handler.Handle(t.Context(), s.deliveryCommand(id))
	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	assert.Equal(t, 1, s.delivery(id).Version())
}

func TestApproveDeliveryCommandHandler_Handle_DeletedDeliveryIsNotFound(t *testing.T) {
	s := newStore(t)
	id := s.createDelivery(s.createVendor("Acme"))
	require.NoError(t, commands.NewDeleteDeliveryCommandHandler(s.uows).Handle(t.Context(), s.deliveryCommand(id)))

	err := commands.NewApproveDeliveryCommandHandler(s.uows, clock).Handle(t.Context(), s.deliveryCommand(id))

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestDeleteDeliveryCommandHandler_Handle_CascadesAndRestoreDoesNot(t *testing.T) {
	// Arrange
	s := newStore(t)
	zoneID := s.createZone("Z1", false)
	id := s.createDelivery(s.createVendor("Acme"))
	first := s.createEntry(id, zoneID)
	second := s.createEntry(id, zoneID)

	// Act
	err := commands.NewDeleteDeliveryCommandHandler(s.uows).Handle(t.Context(), s.deliveryCommand(id))

	// Assert
	require.NoError(t, err)
	_, err = s.read().DeliveryRepository().Get(t.Context(), id)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	d := s.delivery(id)
	assert.True(t, d.IsDeleted())
	requireDeletionTriple(t, d, d.DeletedAt(), d.DeletedByUserID())
	assert.Equal(t, actor, *d.DeletedByUserID())

	for _, entryID := range []int64{first, second} {
		e := s.entry(entryID)
		assert.True(t, e.IsDeleted())
		requireDeletionTriple(t, e, e.DeletedAt(), e.DeletedByUserID())
	}

	// Restore brings back the delivery only.
	err = commands.NewRestoreDeliveryCommandHandler(s.uows).Handle(t.Context(), s.deliveryCommand(id))
	require.NoError(t, err)

	d = s.delivery(id)
	assert.False(t, d.IsDeleted())
	requireDeletionTriple(t, d, d.DeletedAt(), d.DeletedByUserID())
	assert.True(t, s.entry(first).IsDeleted())
	assert.True(t, s.entry(second).IsDeleted())
}

func TestDeleteDeliveryCommandHandler_Handle_TwiceIsNotFound(t *testing.T) {
	s := newStore(t)
	id := s.createDelivery(s.createVendor("Acme"))
	handler := commands.NewDeleteDeliveryCommandHandler(s.uows)
	require.NoError(t, handler.Handle(t.Context(), s.deliveryCommand(id)))

	err := handler.Handle(t.Context(), s.deliveryCommand(id))

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestRestoreDeliveryCommandHandler_Handle_LiveDeliveryIsRejected(t *testing.T) {
	s := newStore(t)
	id := s.createDelivery(s.createVendor("Acme"))

	err := commands.NewRestoreDeliveryCommandHandler(s.uows).Handle(t.Context(), s.deliveryCommand(id))

	require.ErrorIs(t, err, kernel.ErrNotDeleted)
	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
}

func TestRestoreDeliveryCommandHandler_Handle_RequiresLiveVendor(t *testing.T) {
	// Arrange
	s := newStore(t)
	vendorID := s.createVendor("Acme")
	id := s.createDelivery(vendorID)
	vendorCmd, err := commands.NewVendorCommand(actor, vendorID)
	require.NoError(t, err)
	require.NoError(t, commands.NewDeleteVendorCommandHandler(s.uows).Handle(t.Context(), vendorCmd))
	require.True(t, s.delivery(id).IsDeleted())

	// Act
	err = commands.NewRestoreDeliveryCommandHandler(s.uows).Handle(t.Context(), s.deliveryCommand(id))

	// Assert
	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "vendorId", validationErr.ParamName)
	assert.True(t, s.delivery(id).IsDeleted())
}

func TestDeliveryHistory_RecordsLifecycleInOrder(t *testing.T) {
	// Arrange
	s := newStore(t)
	zoneID := s.createZone("Z1", false)
	id := s.createDelivery(s.createVendor("Acme"))
	require.NoError(t, commands.NewApproveDeliveryCommandHandler(s.uows, clock).Handle(t.Context(), s.deliveryCommand(id)))
	entryID := s.createEntry(id, zoneID)

	// Act
	require.NoError(t, commands.NewDeleteDeliveryCommandHandler(s.uows).Handle(t.Context(), s.deliveryCommand(id)))

	// Assert
	history, err := s.read().ChangeLogRepository().History(t.Context(), delivery.EntityType, id)
	require.NoError(t, err)
	require.Len(t, history, 5)

	type step struct {
		entityID int64
		action   kernel.Action
	}
	got := make([]step, 0, len(history))
	for _, c := range history {
		got = append(got, step{entityID: c.EntityID, action: c.Action})
		assert.Equal(t, actor, c.ActorID)
	}
	assert.Equal(t, []step{
		{id, kernel.ActionCreated},
		{id, kernel.ActionApproved},
		{entryID, kernel.ActionCreated},
		{entryID, kernel.ActionDeleted},
		{id, kernel.ActionDeleted},
	}, got)
	assert.Equal(t, history[3].ChangeSetID, history[4].ChangeSetID)
	assert.NotEqual(t, history[0].ChangeSetID, history[1].ChangeSetID)
}
